package loaders

import (
	"fmt"
	"sort"

	"github.com/spaghettifunk/anima-obj/engine/assets/wavefront"
	"github.com/spaghettifunk/anima-obj/engine/math"
	"github.com/spaghettifunk/anima-obj/engine/renderer/metadata"
)

const (
	LabelObj   = "Obj"
	LabelScene = "Scene"
)

// ObjMeshLabel is the label of the i-th mesh and material pair of a load.
func ObjMeshLabel(i int) string {
	return fmt.Sprintf("ObjMesh%d", i)
}

// assembleScene stages every asset of the load. models and meshes are parallel slices.
func assembleScene(lc LoadContext, textures map[string]*metadata.Texture, materials []*metadata.Material, models []wavefront.Model, meshes []*metadata.Mesh) error {
	refs := make([]string, 0, len(textures))
	for ref := range textures {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	for _, ref := range refs {
		if _, err := lc.SetLabeledAsset(ref, textures[ref]); err != nil {
			return err
		}
	}

	obj := &metadata.Obj{
		Materials: make([]metadata.Handle, 0, len(materials)),
		Meshes:    make([]metadata.Handle, 0, len(meshes)),
	}
	for _, material := range materials {
		handle, err := lc.SetLabeledAsset(material.Name, material)
		if err != nil {
			return err
		}
		obj.Materials = append(obj.Materials, handle)
	}

	root := &metadata.SceneNode{Transform: math.Mat4Identity()}
	for i, mesh := range meshes {
		meshHandle, err := lc.SetLabeledAsset(models[i].Name, mesh)
		if err != nil {
			return err
		}

		var materialHandle *metadata.Handle
		if id := models[i].Mesh.MaterialID; id != nil && *id >= 0 && *id < len(obj.Materials) {
			h := obj.Materials[*id]
			materialHandle = &h
		}

		pairHandle, err := lc.SetLabeledAsset(ObjMeshLabel(i), &metadata.ObjMesh{
			Mesh:     meshHandle,
			Material: materialHandle,
		})
		if err != nil {
			return err
		}
		obj.Meshes = append(obj.Meshes, pairHandle)

		nodeMesh := meshHandle
		root.Children = append(root.Children, &metadata.SceneNode{
			Transform: math.Mat4Identity(),
			Mesh:      &nodeMesh,
			Material:  materialHandle,
		})
	}

	if _, err := lc.SetLabeledAsset(LabelObj, obj); err != nil {
		return err
	}
	_, err := lc.SetLabeledAsset(LabelScene, &metadata.Scene{Root: root})
	return err
}
