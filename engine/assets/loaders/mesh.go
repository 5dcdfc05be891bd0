package loaders

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/anima-obj/engine/assets/wavefront"
	"github.com/spaghettifunk/anima-obj/engine/math"
	"github.com/spaghettifunk/anima-obj/engine/renderer/metadata"
)

var (
	errAttributeCount   = errors.New("attribute count does not match vertex count")
	errIndexOutOfBounds = errors.New("index out of bounds")
)

// buildMesh turns the flat attributes of a parsed model into a triangle list mesh.
func buildMesh(model wavefront.Model) (*metadata.Mesh, error) {
	positions, err := math.ChunkVec3(model.Mesh.Positions)
	if err != nil {
		return nil, fmt.Errorf("mesh '%s' positions: %w", model.Name, err)
	}
	normals, err := math.ChunkVec3(model.Mesh.Normals)
	if err != nil {
		return nil, fmt.Errorf("mesh '%s' normals: %w", model.Name, err)
	}
	uvs, err := math.ChunkVec2(model.Mesh.Texcoords)
	if err != nil {
		return nil, fmt.Errorf("mesh '%s' texcoords: %w", model.Name, err)
	}

	count := len(positions)
	if len(normals) != 0 && len(normals) != count {
		return nil, fmt.Errorf("mesh '%s' normals: %w (%d != %d)", model.Name, errAttributeCount, len(normals), count)
	}
	if len(uvs) != 0 && len(uvs) != count {
		return nil, fmt.Errorf("mesh '%s' texcoords: %w (%d != %d)", model.Name, errAttributeCount, len(uvs), count)
	}

	indices := make([]uint32, len(model.Mesh.Indices))
	for i, index := range model.Mesh.Indices {
		if int(index) >= count {
			return nil, fmt.Errorf("mesh '%s': %w: %d >= %d", model.Name, errIndexOutOfBounds, index, count)
		}
		indices[i] = index
	}

	return &metadata.Mesh{
		Name:      model.Name,
		Topology:  metadata.PrimitiveTopologyTriangleList,
		Positions: positions,
		Normals:   normals,
		UVs:       uvs,
		Indices:   indices,
	}, nil
}
