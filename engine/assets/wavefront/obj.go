package wavefront

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const defaultModelName = "unnamed_object"

// Mesh holds flat vertex attributes addressed by Indices.
// Normals and Texcoords are empty when the source declared none for the model.
type Mesh struct {
	Positions []float32
	Normals   []float32
	Texcoords []float32
	Indices   []uint32
	// MaterialID indexes the material slice returned by ParseObj; nil when unset.
	MaterialID *int
}

// Model is one object or group of an OBJ file.
type Model struct {
	Name string
	Mesh Mesh
}

// MaterialResolver returns the materials of the library referenced by a
// mtllib statement. The string is passed exactly as written in the file.
type MaterialResolver func(path string) ([]Material, error)

type vertexKey struct {
	v, vt, vn int
}

// modelBuilder collects one model. A model split by usemtl continues under
// base.part: base, base.1, base.2.
type modelBuilder struct {
	name       string
	base       string
	part       int
	mesh       Mesh
	vertices   map[vertexKey]uint32
	hasNormals bool
	hasUVs     bool
}

type objDecoder struct {
	resolve MaterialResolver

	positions []float32
	normals   []float32
	texcoords []float32

	materials     []Material
	materialIndex map[string]int
	materialID    *int

	models  []Model
	current *modelBuilder
}

// ParseObj parses OBJ text. Material libraries are requested through resolve
// when a mtllib statement is met; their materials are flattened, in order, in
// the returned slice. Errors returned by resolve are wrapped unchanged.
func ParseObj(r io.Reader, resolve MaterialResolver) ([]Model, []Material, error) {
	dec := &objDecoder{
		resolve:       resolve,
		materialIndex: make(map[string]int),
	}
	dec.current = dec.newModel(defaultModelName)

	if err := scanLines(r, "obj", dec.parseLine); err != nil {
		return nil, nil, err
	}
	dec.finishModel()

	return dec.models, dec.materials, nil
}

func (dec *objDecoder) parseLine(line int, fields []string) error {
	keyword, args := fields[0], fields[1:]
	switch keyword {
	case "v":
		return dec.parseAttribute(line, keyword, args, 3, 3, &dec.positions)
	case "vn":
		return dec.parseAttribute(line, keyword, args, 3, 3, &dec.normals)
	case "vt":
		return dec.parseAttribute(line, keyword, args, 1, 2, &dec.texcoords)
	case "f":
		return dec.parseFace(line, args)
	case "o", "g":
		name := defaultModelName
		if len(args) > 0 {
			name = strings.Join(args, " ")
		}
		dec.startModel(name)
	case "usemtl":
		if len(args) < 1 {
			return &SyntaxError{Format: "obj", Line: line, Msg: "usemtl with no fields"}
		}
		dec.useMaterial(strings.Join(args, " "))
	case "mtllib":
		if len(args) < 1 {
			return &SyntaxError{Format: "obj", Line: line, Msg: "mtllib with no fields"}
		}
		return dec.loadLibrary(args[0])
	default:
		// s, l, p, curves and surfaces carry nothing a triangle mesh needs.
	}
	return nil
}

// parseAttribute appends `width` values, reading at least `required` of them.
// Missing trailing values are zero.
func (dec *objDecoder) parseAttribute(line int, keyword string, args []string, required, width int, out *[]float32) error {
	if len(args) < required {
		return &SyntaxError{Format: "obj", Line: line, Msg: fmt.Sprintf("'%s' expects %d values, got %d", keyword, width, len(args))}
	}
	vals := make([]float32, width)
	n := width
	if len(args) < n {
		n = len(args)
	}
	if err := parseFloats("obj", line, keyword, args, vals[:n]); err != nil {
		return err
	}
	*out = append(*out, vals...)
	return nil
}

func (dec *objDecoder) newModel(name string) *modelBuilder {
	mb := &modelBuilder{
		name:     name,
		base:     name,
		vertices: make(map[vertexKey]uint32),
	}
	mb.mesh.MaterialID = dec.materialID
	return mb
}

func (dec *objDecoder) startModel(name string) {
	if len(dec.current.mesh.Indices) == 0 {
		dec.current.name = name
		dec.current.base = name
		dec.current.part = 0
		return
	}
	dec.finishModel()
	dec.current = dec.newModel(name)
}

func (dec *objDecoder) finishModel() {
	mb := dec.current
	if mb == nil || len(mb.mesh.Indices) == 0 {
		return
	}
	if !mb.hasNormals {
		mb.mesh.Normals = nil
	}
	if !mb.hasUVs {
		mb.mesh.Texcoords = nil
	}
	dec.models = append(dec.models, Model{Name: mb.name, Mesh: mb.mesh})
}

func (dec *objDecoder) useMaterial(name string) {
	var id *int
	if idx, ok := dec.materialIndex[name]; ok {
		id = &idx
	}
	dec.materialID = id

	if len(dec.current.mesh.Indices) == 0 {
		dec.current.mesh.MaterialID = id
		return
	}
	if sameMaterial(dec.current.mesh.MaterialID, id) {
		return
	}
	// a material switch inside a model splits it
	prev := dec.current
	dec.finishModel()
	dec.current = dec.newModel(fmt.Sprintf("%s.%d", prev.base, prev.part+1))
	dec.current.base = prev.base
	dec.current.part = prev.part + 1
}

func sameMaterial(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (dec *objDecoder) loadLibrary(path string) error {
	if dec.resolve == nil {
		return fmt.Errorf("wavefront: mtllib %q: no material resolver", path)
	}
	materials, err := dec.resolve(path)
	if err != nil {
		return fmt.Errorf("wavefront: mtllib %q: %w", path, err)
	}
	for _, m := range materials {
		if _, ok := dec.materialIndex[m.Name]; ok {
			continue
		}
		dec.materialIndex[m.Name] = len(dec.materials)
		dec.materials = append(dec.materials, m)
	}
	return nil
}

// parseFace parses a face description line and fan-triangulates it:
// f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (dec *objDecoder) parseFace(line int, args []string) error {
	if len(args) < 3 {
		return &SyntaxError{Format: "obj", Line: line, Msg: "face with less than 3 vertices"}
	}
	corners := make([]uint32, len(args))
	for i, field := range args {
		key, err := dec.parseFaceVertex(line, field)
		if err != nil {
			return err
		}
		corners[i] = dec.vertex(key)
	}
	mesh := &dec.current.mesh
	for i := 2; i < len(corners); i++ {
		mesh.Indices = append(mesh.Indices, corners[0], corners[i-1], corners[i])
	}
	return nil
}

func (dec *objDecoder) parseFaceVertex(line int, field string) (vertexKey, error) {
	parts := strings.Split(field, "/")
	if len(parts) > 3 {
		return vertexKey{}, &SyntaxError{Format: "obj", Line: line, Msg: fmt.Sprintf("invalid face vertex %q", field)}
	}
	key := vertexKey{v: -1, vt: -1, vn: -1}

	var err error
	if key.v, err = resolveIndex(line, parts[0], len(dec.positions)/3); err != nil {
		return key, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if key.vt, err = resolveIndex(line, parts[1], len(dec.texcoords)/2); err != nil {
			return key, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if key.vn, err = resolveIndex(line, parts[2], len(dec.normals)/3); err != nil {
			return key, err
		}
	}
	return key, nil
}

// resolveIndex turns a 1-based or negative (relative) OBJ index into a
// 0-based index below count.
func resolveIndex(line int, field string, count int) (int, error) {
	val, err := strconv.Atoi(field)
	if err != nil {
		return 0, &SyntaxError{Format: "obj", Line: line, Msg: fmt.Sprintf("invalid index %q", field)}
	}
	idx := val - 1
	if val < 0 {
		idx = count + val
	}
	if val == 0 || idx < 0 || idx >= count {
		return 0, &SyntaxError{Format: "obj", Line: line, Msg: fmt.Sprintf("index %d out of range (%d defined)", val, count)}
	}
	return idx, nil
}

// vertex returns the model-local index of key, appending its attributes on first use.
func (dec *objDecoder) vertex(key vertexKey) uint32 {
	mb := dec.current
	if idx, ok := mb.vertices[key]; ok {
		return idx
	}
	idx := uint32(len(mb.mesh.Positions) / 3)
	mb.vertices[key] = idx

	mb.mesh.Positions = append(mb.mesh.Positions, dec.positions[key.v*3:key.v*3+3]...)
	if key.vn >= 0 {
		mb.hasNormals = true
		mb.mesh.Normals = append(mb.mesh.Normals, dec.normals[key.vn*3:key.vn*3+3]...)
	} else {
		mb.mesh.Normals = append(mb.mesh.Normals, 0, 0, 0)
	}
	if key.vt >= 0 {
		mb.hasUVs = true
		mb.mesh.Texcoords = append(mb.mesh.Texcoords, dec.texcoords[key.vt*2:key.vt*2+2]...)
	} else {
		mb.mesh.Texcoords = append(mb.mesh.Texcoords, 0, 0)
	}
	return idx
}
