package mesh

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat reports a model file extension with no loader.
var ErrUnknownFormat = errors.New("mesh: unknown format")

// Load reads a model file, choosing the loader by extension.
func Load(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return ParseOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}
