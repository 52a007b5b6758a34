package texture

import (
	"os"
	"path/filepath"
	"strings"
)

// extPriority ranks formats when several files share a stem. Lower wins.
var extPriority = map[string]int{
	".tga":  0,
	".png":  1,
	".ppm":  2,
	".bmp":  3,
	".tif":  4,
	".tiff": 4,
	".jpg":  5,
	".jpeg": 5,
}

// Index maps lowercase texture stems to filesystem paths.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex walks every dir recursively for decodable texture files.
// Unreadable directories are skipped.
func BuildIndex(dirs ...string) *Index {
	idx := &Index{entries: make(map[string]string)}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			rank, ok := extPriority[ext]
			if !ok {
				return nil
			}
			stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

			existing, exists := idx.entries[stem]
			if !exists || rank < extPriority[strings.ToLower(filepath.Ext(existing))] {
				idx.entries[stem] = path
			}
			return nil
		})
	}

	return idx
}

// ResolvePath returns the filesystem path for a texture name, or ("", false).
// Directory prefixes and extensions in name are ignored.
func (idx *Index) ResolvePath(texName string) (string, bool) {
	if idx == nil {
		return "", false
	}
	texName = strings.ReplaceAll(texName, "\\", "/")
	base := filepath.Base(texName)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}
