package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"mesh-rasterizer/internal/mathutil"
	"mesh-rasterizer/internal/mesh"
	"mesh-rasterizer/internal/raster"
	"mesh-rasterizer/internal/rgb"
)

// Defaults for the raster scene.
const (
	DefaultWidth  = 1200
	DefaultHeight = 900
	DefaultOutput = "raster_scene.tga"
)

// DefaultEye looks at the origin from above the +x/-y quadrant.
var DefaultEye = mathutil.Vec3{5.0029999, -5.29348290, 5.102934}

// Config describes one render.
type Config struct {
	// BaseDir anchors relative mesh and texture paths. Load sets it to the
	// config file's directory when empty.
	BaseDir string `json:"base_dir"`
	Name    string `json:"name"`
	Output  string `json:"output"`

	Width       int `json:"width"`
	Height      int `json:"height"`
	Supersample int `json:"supersample"`

	Camera     Camera              `json:"camera"`
	ViewVolume mathutil.ViewVolume `json:"view_volume"`
	Background *[3]uint8           `json:"background"`
	Lights     []raster.Light      `json:"lights"`
	Meshes     []MeshSpec          `json:"meshes"`
	TextureDir string              `json:"texture_dir"`
	Axes       bool                `json:"axes"`

	Gamma          float64 `json:"gamma"`
	AmbientDamping float64 `json:"ambient_damping"`

	Workers       int  `json:"workers"`
	Thumbnail     int  `json:"thumbnail"`
	Caption       bool `json:"caption"`
	FormatQuality int  `json:"format_quality"`
}

// Camera places the eye; the camera always looks at the world origin.
type Camera struct {
	Eye *mathutil.Vec3 `json:"eye"`
}

// MeshSpec names a model file and how to place it.
type MeshSpec struct {
	Path string `json:"path"`
	mesh.Transform
	Material *MaterialOverride `json:"material"`
}

// MaterialOverride replaces material terms on every face of a mesh. Nil
// fields keep the loaded values.
type MaterialOverride struct {
	Ambient *rgb.RGB `json:"ambient"`
	Diffuse *rgb.RGB `json:"diffuse"`
	Texture string   `json:"texture"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.BaseDir == "" {
		cfg.BaseDir = filepath.Dir(path)
	} else if !filepath.IsAbs(cfg.BaseDir) {
		cfg.BaseDir = filepath.Join(filepath.Dir(path), cfg.BaseDir)
	}
	if abs, err := filepath.Abs(cfg.BaseDir); err == nil {
		cfg.BaseDir = abs
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Axes {
		c.Axes = true
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		for i := range c.Meshes {
			c.Meshes[i].Path = c.abs(c.Meshes[i].Path)
		}
		if c.TextureDir != "" {
			c.TextureDir = c.abs(c.TextureDir)
		}
	}

	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(c.Output), filepath.Ext(c.Output))
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Camera.Eye == nil {
		eye := DefaultEye
		c.Camera.Eye = &eye
	}
	if c.ViewVolume.IsZero() {
		c.ViewVolume = mathutil.DefaultViewVolume()
	}
	if c.Background == nil {
		c.Background = &[3]uint8{255, 255, 255}
	}
	if len(c.Lights) == 0 {
		c.Lights = []raster.Light{raster.DefaultLight()}
	}
	if c.Gamma <= 0 {
		c.Gamma = rgb.MonitorGamma
	}
	if c.AmbientDamping <= 0 {
		c.AmbientDamping = raster.AmbientDamping
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Output     string
	Width      int
	Height     int
	Workers    int
	Axes       bool
	TextureDir string
}

func (c *Config) abs(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}
