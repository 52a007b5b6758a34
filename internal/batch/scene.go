package batch

import (
	"fmt"
	"image/color"

	"mesh-rasterizer/internal/config"
	"mesh-rasterizer/internal/mesh"
	"mesh-rasterizer/internal/raster"
)

// BuildScene loads every mesh named in cfg and assembles a raster scene.
// cfg must already be resolved.
func BuildScene(cfg config.Config) (*raster.Scene, error) {
	sc := &raster.Scene{
		Lights: cfg.Lights,
		View:   cfg.ViewVolume,
		Axes:   cfg.Axes,
	}
	if cfg.Camera.Eye != nil {
		sc.Eye = *cfg.Camera.Eye
	}
	if bg := cfg.Background; bg != nil {
		sc.Background = color.RGBA{R: bg[0], G: bg[1], B: bg[2], A: 255}
	}

	for _, spec := range cfg.Meshes {
		m, err := mesh.Load(spec.Path)
		if err != nil {
			return nil, fmt.Errorf("batch: scene %s: %w", cfg.Name, err)
		}
		m.Apply(spec.Transform)
		if spec.Material != nil {
			overrideMaterials(m, spec.Material)
		}
		sc.Meshes = append(sc.Meshes, m)
	}
	return sc, nil
}

func overrideMaterials(m *mesh.Mesh, o *config.MaterialOverride) {
	seen := make(map[*mesh.Material]bool)
	for _, f := range m.Faces {
		mtl := f.Material
		if mtl == nil || seen[mtl] {
			continue
		}
		seen[mtl] = true
		if o.Ambient != nil {
			mtl.Ambient = *o.Ambient
		}
		if o.Diffuse != nil {
			mtl.Diffuse = *o.Diffuse
		}
		if o.Texture != "" {
			mtl.Texture = o.Texture
		}
	}
}
