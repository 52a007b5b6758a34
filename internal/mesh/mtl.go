package mesh

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"mesh-rasterizer/internal/rgb"
)

// DecodeMTL parses a Wavefront material library into mtls. A material that
// already exists is reset and updated in place, so faces holding it see the
// library's values. Texture names in map_Kd are resolved relative
// to the library's directory. Statements other than newmtl, Ka, Kd, Ks, Ns
// and map_Kd are ignored.
func DecodeMTL(r io.Reader, name string, mtls map[string]*Material) error {
	dir := filepath.Dir(name)
	var cur *Material

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(stripComment(sc.Text()))
		if len(fields) == 0 {
			continue
		}
		args := fields[1:]

		fail := func(format string, a ...any) error {
			return fmt.Errorf("mesh: parse %s:%d: "+format, append([]any{name, lineNo}, a...)...)
		}

		if fields[0] == "newmtl" {
			if len(args) == 0 {
				return fail("newmtl: missing name")
			}
			cur = resetMaterial(mtls, strings.Join(args, " "))
			continue
		}

		switch fields[0] {
		case "Ka", "Kd", "Ks", "Ns", "map_Kd":
		default:
			continue
		}
		if cur == nil {
			cur = resetMaterial(mtls, DefaultMaterialName)
		}

		switch fields[0] {
		case "Ka", "Kd", "Ks":
			c, err := parseRGB(args)
			if err != nil {
				return fail("%s: %v", fields[0], err)
			}
			switch fields[0] {
			case "Ka":
				cur.Ambient = c
			case "Kd":
				cur.Diffuse = c
			case "Ks":
				cur.Specular = c
			}
		case "Ns":
			if len(args) != 1 {
				return fail("Ns: want 1 value")
			}
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil || v < 0 {
				return fail("Ns: %q", args[0])
			}
			cur.SpecExp = v
		case "map_Kd":
			if len(args) == 0 {
				return fail("map_Kd: missing file name")
			}
			// Options such as -s or -o precede the file name; the name is last.
			tex := args[len(args)-1]
			if !filepath.IsAbs(tex) {
				tex = filepath.Join(dir, tex)
			}
			cur.Texture = tex
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("mesh: read %s: %w", name, err)
	}
	return nil
}

func parseRGB(args []string) (rgb.RGB, error) {
	if len(args) != 3 {
		return rgb.RGB{}, fmt.Errorf("want 3 components, got %d", len(args))
	}
	var c rgb.RGB
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return rgb.RGB{}, err
		}
		c[i] = v
	}
	return c, nil
}

func resetMaterial(mtls map[string]*Material, name string) *Material {
	if mtl, ok := mtls[name]; ok {
		*mtl = *DefaultMaterial(name)
		return mtl
	}
	mtl := DefaultMaterial(name)
	mtls[name] = mtl
	return mtl
}
