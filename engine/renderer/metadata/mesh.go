package metadata

import "github.com/spaghettifunk/anima-obj/engine/math"

/** @brief The primitive topology of a mesh. */
type PrimitiveTopology int

const (
	PrimitiveTopologyTriangleList PrimitiveTopology = iota
)

/**
 * @brief Renderer-ready geometry of one OBJ object or group.
 * Positions, Normals and UVs are indexed by Indices. Normals and UVs are
 * either empty or as long as Positions.
 */
type Mesh struct {
	Name      string
	Topology  PrimitiveTopology
	Positions []math.Vec3
	Normals   []math.Vec3
	UVs       []math.Vec2
	Indices   []uint32
}

func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

/** @brief Pairs a mesh with its optional material. One per OBJ object or group. */
type ObjMesh struct {
	Mesh Handle
	/** @brief nil when the object had no material. */
	Material *Handle
}

/** @brief The aggregate description of a loaded OBJ file. */
type Obj struct {
	Materials []Handle
	/** @brief Handles of the ObjMesh assets, in file order. */
	Meshes []Handle
}
