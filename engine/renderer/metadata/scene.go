package metadata

import "github.com/spaghettifunk/anima-obj/engine/math"

/** @brief A node of the scene graph produced by a load. */
type SceneNode struct {
	Transform math.Mat4
	/** @brief nil on the root node. */
	Mesh     *Handle
	Material *Handle
	Children []*SceneNode
}

/** @brief The scene graph asset: one identity root with one child per sub-mesh. */
type Scene struct {
	Root *SceneNode
}

// Walk visits every node depth first, parents before children.
func (s *Scene) Walk(fn func(node *SceneNode, depth int)) {
	if s == nil || s.Root == nil {
		return
	}
	var walk func(n *SceneNode, depth int)
	walk = func(n *SceneNode, depth int) {
		fn(n, depth)
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(s.Root, 0)
}
