package batch

import (
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mesh-rasterizer/internal/config"
	"mesh-rasterizer/internal/rgb"
	"mesh-rasterizer/internal/texture"
)

const triOBJ = `mtllib tri.mtl
v -1 -1 0
v 1 -1 0
v 0 1 0
vn 0 0 1
usemtl grey
f 1//1 2//1 3//1
`

const triMTL = `newmtl grey
Ka 0.1 0.1 0.1
Kd 0.8 0.8 0.8
`

func writeScene(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range map[string]string{"tri.obj": triOBJ, "tri.mtl": triMTL} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func job(dir, name, meshPath string) config.Config {
	cfg := config.Config{
		BaseDir: dir,
		Name:    name,
		Output:  filepath.Join(dir, "out", name+".png"),
		Width:   60,
		Height:  45,
		Meshes:  []config.MeshSpec{{Path: meshPath}},
	}
	cfg.Resolve(config.Flags{})
	return cfg
}

func TestRun(t *testing.T) {
	dir := writeScene(t)

	good := job(dir, "good", "tri.obj")
	good.Thumbnail = 20
	good.Caption = true
	super := job(dir, "super", "tri.obj")
	super.Supersample = 2
	green := rgb.RGB{0, 1, 0}
	recolored := job(dir, "recolored", "tri.obj")
	recolored.Meshes[0].Material = &config.MaterialOverride{Diffuse: &green}
	missing := job(dir, "missing", "nope.obj")

	jobs := []config.Config{good, missing, super, recolored}
	results := Run(Config{
		TexResolver: texture.NewCache(nil, dir),
		Workers:     2,
		Progress:    time.Millisecond,
	}, jobs)

	if len(results) != len(jobs) {
		t.Fatalf("got %d results, want %d", len(results), len(jobs))
	}
	for i, r := range results {
		if r.Name != jobs[i].Name {
			t.Errorf("result %d name = %q, want %q", i, r.Name, jobs[i].Name)
		}
	}

	if r := results[1]; r.Success || r.Error == "" {
		t.Errorf("missing mesh result = %+v, want failure", r)
	}

	for _, i := range []int{0, 2, 3} {
		r := results[i]
		if !r.Success {
			t.Fatalf("%s failed: %s", r.Name, r.Error)
		}
		if r.Stats.Faces != 1 || r.Stats.Fragments == 0 {
			t.Errorf("%s stats = %+v", r.Name, r.Stats)
		}
		f, err := os.Open(r.Output)
		if err != nil {
			t.Fatalf("%s: %v", r.Name, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s decode: %v", r.Name, err)
		}
		if img.Bounds().Dx() != 60 || img.Bounds().Dy() != 45 {
			t.Errorf("%s size = %v", r.Name, img.Bounds())
		}
	}

	if results[2].Stats.Fragments <= results[0].Stats.Fragments {
		t.Errorf("supersampled render drew %d fragments, plain drew %d",
			results[2].Stats.Fragments, results[0].Stats.Fragments)
	}

	if _, err := os.Stat(ThumbnailPath(good.Output)); err != nil {
		t.Errorf("thumbnail not written: %v", err)
	}
}

func TestBuildSceneOverride(t *testing.T) {
	dir := writeScene(t)
	green := rgb.RGB{0, 1, 0}
	cfg := job(dir, "x", "tri.obj")
	cfg.Meshes[0].Material = &config.MaterialOverride{Diffuse: &green, Texture: "checker.tga"}
	cfg.Meshes[0].Translate[2] = 2

	sc, err := BuildScene(cfg)
	if err != nil {
		t.Fatal(err)
	}
	m := sc.Meshes[0]
	mtl := m.Faces[0].Material
	if mtl.Diffuse != green || mtl.Texture != "checker.tga" {
		t.Errorf("material = %+v", mtl)
	}
	if mtl.Ambient != rgb.Grey(0.1) {
		t.Errorf("ambient changed to %v", mtl.Ambient)
	}
	if m.Verts[0][2] != 2 {
		t.Errorf("translate not applied: %v", m.Verts[0])
	}
	if sc.Background.R != 255 || sc.Eye != *cfg.Camera.Eye {
		t.Errorf("scene = %+v", sc)
	}
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "manifest.json")
	results := []Result{
		{Name: "a", Output: "a.tga", Width: 4, Height: 3, Success: true},
		{Name: "b", Error: "boom"},
	}
	if err := WriteManifest(path, results); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got Manifest
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Total != 2 || got.Succeeded != 1 || got.Failed != 1 {
		t.Errorf("manifest counts = %+v", got)
	}
	if got.Results[1].Error != "boom" || got.Results[0].Output != "a.tga" {
		t.Errorf("results = %+v", got.Results)
	}
}

func TestThumbnailPath(t *testing.T) {
	tests := map[string]string{
		"out/scene.tga": "out/scene_thumb.webp",
		"scene.png":     "scene_thumb.webp",
		"noext":         "noext_thumb.webp",
	}
	for in, want := range tests {
		if got := ThumbnailPath(in); got != want {
			t.Errorf("ThumbnailPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRunRejectsOversizedSurface(t *testing.T) {
	dir := writeScene(t)
	huge := job(dir, "huge", "tri.obj")
	huge.Width, huge.Height = 1<<20, 1<<20

	results := Run(Config{Workers: 1}, []config.Config{huge})
	r := results[0]
	if r.Success || !strings.Contains(r.Error, "invalid surface size") {
		t.Fatalf("result = %+v, want surface size failure", r)
	}
	if _, err := os.Stat(huge.Output); !os.IsNotExist(err) {
		t.Errorf("output written despite failure: %v", err)
	}
}
