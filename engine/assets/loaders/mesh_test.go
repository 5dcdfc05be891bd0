package loaders

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/anima-obj/engine/assets/wavefront"
	"github.com/spaghettifunk/anima-obj/engine/math"
)

func TestBuildMesh(t *testing.T) {
	model := wavefront.Model{
		Name: "tri",
		Mesh: wavefront.Mesh{
			Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
			Texcoords: []float32{0, 0, 1, 0, 0, 1},
			Indices:   []uint32{0, 1, 2},
		},
	}

	mesh, err := buildMesh(model)
	if err != nil {
		t.Fatalf("buildMesh() error = %v", err)
	}
	if mesh.Name != "tri" || mesh.VertexCount() != 3 {
		t.Fatalf("mesh = %+v", mesh)
	}
	if mesh.Positions[1] != (math.Vec3{1, 0, 0}) {
		t.Fatalf("Positions[1] = %v", mesh.Positions[1])
	}
	if mesh.UVs[2] != (math.Vec2{0, 1}) {
		t.Fatalf("UVs[2] = %v", mesh.UVs[2])
	}
	if len(mesh.Normals) != 0 {
		t.Fatalf("Normals = %v, want none", mesh.Normals)
	}

	model.Mesh.Indices[0] = 2
	if mesh.Indices[0] != 0 {
		t.Fatal("indices must be copied")
	}
}

func TestBuildMeshEmpty(t *testing.T) {
	mesh, err := buildMesh(wavefront.Model{Name: "empty"})
	if err != nil {
		t.Fatalf("buildMesh() error = %v", err)
	}
	if mesh.VertexCount() != 0 || len(mesh.Indices) != 0 {
		t.Fatalf("mesh = %+v", mesh)
	}
}

func TestBuildMeshErrors(t *testing.T) {
	tests := []struct {
		name string
		mesh wavefront.Mesh
		want error
	}{
		{
			name: "positions not divisible by 3",
			mesh: wavefront.Mesh{Positions: []float32{0, 0, 0, 1}},
			want: math.ErrUnevenChunk,
		},
		{
			name: "normals not divisible by 3",
			mesh: wavefront.Mesh{Positions: []float32{0, 0, 0}, Normals: []float32{0, 1}},
			want: math.ErrUnevenChunk,
		},
		{
			name: "texcoords not divisible by 2",
			mesh: wavefront.Mesh{Positions: []float32{0, 0, 0}, Texcoords: []float32{0}},
			want: math.ErrUnevenChunk,
		},
		{
			name: "normal count mismatch",
			mesh: wavefront.Mesh{Positions: []float32{0, 0, 0, 1, 1, 1}, Normals: []float32{0, 1, 0}},
			want: errAttributeCount,
		},
		{
			name: "index out of bounds",
			mesh: wavefront.Mesh{Positions: []float32{0, 0, 0}, Indices: []uint32{0, 1}},
			want: errIndexOutOfBounds,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildMesh(wavefront.Model{Name: "bad", Mesh: tt.mesh})
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
