package texture

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound reports a texture name that matched no file.
var ErrNotFound = errors.New("texture: not found")

// Resolver resolves a texture name to a decoded texture, or nil when the
// texture is unavailable.
type Resolver interface {
	Resolve(texName string) *Texture
}

// Cache is a concurrency-safe texture cache. Names are tried as a path
// (absolute, then relative to the base directory) and then by stem through
// the index.
type Cache struct {
	mu      sync.RWMutex
	items   map[string]*Texture // nil records a failed load
	index   *Index
	baseDir string
}

// NewCache creates a texture cache. index may be nil.
func NewCache(index *Index, baseDir string) *Cache {
	return &Cache{
		items:   make(map[string]*Texture),
		index:   index,
		baseDir: baseDir,
	}
}

// Put registers an already decoded texture under name.
func (c *Cache) Put(name string, tex *Texture) {
	c.mu.Lock()
	c.items[name] = tex
	c.mu.Unlock()
}

// Resolve loads and caches a texture by name. Returns nil if not found or
// undecodable; the failure is remembered.
func (c *Cache) Resolve(texName string) *Texture {
	if texName == "" {
		return nil
	}

	// Fast path: read lock
	c.mu.RLock()
	if tex, exists := c.items[texName]; exists {
		c.mu.RUnlock()
		return tex
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	tex, err := c.load(texName)
	if err != nil {
		logger().Warn("texture unavailable", "name", texName, "err", err)
	}

	// Write lock with double-check
	c.mu.Lock()
	if cached, exists := c.items[texName]; exists {
		c.mu.Unlock()
		return cached
	}
	c.items[texName] = tex
	c.mu.Unlock()

	return tex
}

// Len returns the number of names resolved so far, including misses.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) load(texName string) (*Texture, error) {
	for _, p := range c.candidates(texName) {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return Load(p)
		}
	}
	return nil, ErrNotFound
}

func (c *Cache) candidates(texName string) []string {
	var paths []string
	if filepath.IsAbs(texName) {
		paths = append(paths, texName)
	} else {
		if c.baseDir != "" {
			paths = append(paths, filepath.Join(c.baseDir, texName))
		}
		paths = append(paths, texName)
	}
	if p, ok := c.index.ResolvePath(texName); ok {
		paths = append(paths, p)
	}
	return paths
}
