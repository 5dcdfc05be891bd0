package wavefront

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Material is a material descriptor as declared in an MTL file.
// Texture references are the literal strings of the file and may be empty.
type Material struct {
	Name           string
	Ambient        [3]float32
	Diffuse        [3]float32
	Specular       [3]float32
	Shininess      float32
	OpticalDensity float32
	Dissolve       float32
	Illumination   int

	AmbientTexture   string
	DiffuseTexture   string
	SpecularTexture  string
	NormalTexture    string
	ShininessTexture string
	DissolveTexture  string

	// UnknownParams holds statements this parser does not interpret, keyed by keyword.
	UnknownParams map[string]string
}

func newMaterial(name string) Material {
	return Material{
		Name:          name,
		Dissolve:      1,
		UnknownParams: make(map[string]string),
	}
}

// ParseMtl parses a material library. A library without any newmtl statement
// yields no materials.
func ParseMtl(r io.Reader) ([]Material, error) {
	var materials []Material
	var current *Material

	err := scanLines(r, "mtl", func(line int, fields []string) error {
		keyword, args := fields[0], fields[1:]
		if keyword == "newmtl" {
			if len(args) < 1 {
				return &SyntaxError{Format: "mtl", Line: line, Msg: "newmtl with no fields"}
			}
			materials = append(materials, newMaterial(strings.Join(args, " ")))
			current = &materials[len(materials)-1]
			return nil
		}
		if current == nil {
			return &SyntaxError{Format: "mtl", Line: line, Msg: fmt.Sprintf("'%s' before newmtl", keyword)}
		}
		return parseMtlStatement(current, line, keyword, args)
	})
	if err != nil {
		return nil, err
	}
	return materials, nil
}

func parseMtlStatement(m *Material, line int, keyword string, args []string) error {
	switch keyword {
	case "Ka":
		return parseColor(line, keyword, args, &m.Ambient)
	case "Kd":
		return parseColor(line, keyword, args, &m.Diffuse)
	case "Ks":
		return parseColor(line, keyword, args, &m.Specular)
	case "Ns":
		return parseScalar(line, keyword, args, &m.Shininess)
	case "Ni":
		return parseScalar(line, keyword, args, &m.OpticalDensity)
	case "d":
		return parseScalar(line, keyword, args, &m.Dissolve)
	case "Tr":
		var tr float32
		if err := parseScalar(line, keyword, args, &tr); err != nil {
			return err
		}
		m.Dissolve = 1 - tr
	case "illum":
		if len(args) < 1 {
			return &SyntaxError{Format: "mtl", Line: line, Msg: "'illum' with no fields"}
		}
		val, err := strconv.Atoi(args[0])
		if err != nil {
			return &SyntaxError{Format: "mtl", Line: line, Msg: fmt.Sprintf("'illum' invalid value %q", args[0])}
		}
		m.Illumination = val
	case "map_Ka":
		return parseTexture(line, keyword, args, &m.AmbientTexture)
	case "map_Kd":
		return parseTexture(line, keyword, args, &m.DiffuseTexture)
	case "map_Ks":
		return parseTexture(line, keyword, args, &m.SpecularTexture)
	case "map_Ns":
		return parseTexture(line, keyword, args, &m.ShininessTexture)
	case "map_d":
		return parseTexture(line, keyword, args, &m.DissolveTexture)
	case "map_Bump", "map_bump", "bump", "norm":
		return parseTexture(line, keyword, args, &m.NormalTexture)
	default:
		m.UnknownParams[keyword] = strings.Join(args, " ")
	}
	return nil
}

// parseColor accepts "r g b" or a single value applied to every channel.
func parseColor(line int, keyword string, args []string, out *[3]float32) error {
	switch {
	case len(args) >= 3:
		return parseFloats("mtl", line, keyword, args, out[:])
	case len(args) == 1:
		var v [1]float32
		if err := parseFloats("mtl", line, keyword, args, v[:]); err != nil {
			return err
		}
		*out = [3]float32{v[0], v[0], v[0]}
		return nil
	default:
		return &SyntaxError{Format: "mtl", Line: line, Msg: fmt.Sprintf("'%s' expects 1 or 3 values, got %d", keyword, len(args))}
	}
}

func parseScalar(line int, keyword string, args []string, out *float32) error {
	if len(args) < 1 {
		return &SyntaxError{Format: "mtl", Line: line, Msg: fmt.Sprintf("'%s' with no fields", keyword)}
	}
	var v [1]float32
	if err := parseFloats("mtl", line, keyword, args, v[:]); err != nil {
		return err
	}
	*out = v[0]
	return nil
}

// textureOptionArgs is the argument count of each map statement option.
// -o, -s and -t take one to three numbers.
var textureOptionArgs = map[string]int{
	"-blendu":  1,
	"-blendv":  1,
	"-bm":      1,
	"-boost":   1,
	"-cc":      1,
	"-clamp":   1,
	"-imfchan": 1,
	"-mm":      2,
	"-texres":  1,
	"-type":    1,
	"-o":       3,
	"-s":       3,
	"-t":       3,
}

// parseTexture keeps the file name of a map statement:
// map_Kd [-options args] <filename>
// Options are skipped and the remaining fields, spaces included, are the file name.
// A bare statement leaves the reference empty.
func parseTexture(line int, keyword string, args []string, out *string) error {
	if len(args) < 1 {
		*out = ""
		return nil
	}
	rest := args
	for len(rest) > 0 && strings.HasPrefix(rest[0], "-") {
		n, ok := textureOptionArgs[rest[0]]
		if !ok {
			n = 1
		}
		rest = rest[1:]
		for i := 0; i < n && len(rest) > 0; i++ {
			if n == 3 && i > 0 {
				if _, err := strconv.ParseFloat(rest[0], 32); err != nil {
					break
				}
			}
			rest = rest[1:]
		}
	}
	if len(rest) == 0 {
		return &SyntaxError{Format: "mtl", Line: line, Msg: fmt.Sprintf("'%s' with no file name", keyword)}
	}
	*out = strings.Join(rest, " ")
	return nil
}
