package config

import (
	"encoding/json"
	"fmt"
	"os"

	"mesh-rasterizer/internal/mathutil"
	"mesh-rasterizer/internal/raster"
	"mesh-rasterizer/internal/raycast"
	"mesh-rasterizer/internal/rgb"
)

// Ray-cast demo defaults.
const (
	DefaultRaycastWidth  = 1024
	DefaultRaycastHeight = 768
	DefaultRaycastOutput = "raycast_scene.tga"
)

// RaycastConfig describes a ray-cast render. An empty shape list renders
// the default red sphere.
type RaycastConfig struct {
	Output    string         `json:"output"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Eye       *mathutil.Vec3 `json:"eye"`
	Lights    []raster.Light `json:"lights"`
	Spheres   []SphereSpec   `json:"spheres"`
	Triangles []TriangleSpec `json:"triangles"`
	Ambient   float64        `json:"ambient"`
}

// SphereSpec is a sphere in a ray-cast scene.
type SphereSpec struct {
	Center mathutil.Vec3 `json:"center"`
	Radius float64       `json:"radius"`
	Color  rgb.RGB       `json:"color"`
}

// TriangleSpec is a triangle in a ray-cast scene.
type TriangleSpec struct {
	A     mathutil.Vec3 `json:"a"`
	B     mathutil.Vec3 `json:"b"`
	C     mathutil.Vec3 `json:"c"`
	Color rgb.RGB       `json:"color"`
}

// LoadRaycast reads a ray-cast config file.
func LoadRaycast(path string) (RaycastConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RaycastConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg RaycastConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return RaycastConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve fills defaults and applies flag overrides.
func (c *RaycastConfig) Resolve(flags Flags) {
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}

	if c.Output == "" {
		c.Output = DefaultRaycastOutput
	}
	if c.Width <= 0 {
		c.Width = DefaultRaycastWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultRaycastHeight
	}
	if c.Ambient <= 0 {
		c.Ambient = raycast.AmbientScale
	}
}

// Scene builds the ray-cast scene, starting from the default scene and
// replacing whatever the config sets.
func (c *RaycastConfig) Scene() raycast.Scene {
	sc := raycast.DefaultScene()
	sc.AmbientScale = c.Ambient
	if c.Eye != nil {
		sc.Eye = *c.Eye
	}
	if len(c.Lights) > 0 {
		sc.Lights = c.Lights
	}
	if len(c.Spheres) > 0 || len(c.Triangles) > 0 {
		sc.Shapes = nil
		for _, s := range c.Spheres {
			sc.Shapes = append(sc.Shapes, raycast.Sphere{Center: s.Center, Radius: s.Radius, Color: s.Color})
		}
		for _, t := range c.Triangles {
			sc.Shapes = append(sc.Shapes, raycast.Triangle{A: t.A, B: t.B, C: t.C, Color: t.Color})
		}
	}
	return sc
}
