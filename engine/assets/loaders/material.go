package loaders

import (
	"context"

	"github.com/spaghettifunk/anima-obj/engine/assets/wavefront"
	"github.com/spaghettifunk/anima-obj/engine/math"
	"github.com/spaghettifunk/anima-obj/engine/renderer/metadata"
	"golang.org/x/sync/errgroup"
)

// buildMaterials builds every material concurrently. Each one resolves its own
// textures before its record is created.
func buildMaterials(ctx context.Context, lc LoadContext, descriptors []wavefront.Material, textures *textureResolver) ([]*metadata.Material, error) {
	materials := make([]*metadata.Material, len(descriptors))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lc.MaxConcurrentFetches())
	for i, descriptor := range descriptors {
		g.Go(func() error {
			material, err := buildMaterial(gctx, descriptor, textures)
			if err != nil {
				return err
			}
			materials[i] = material
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return materials, nil
}

func buildMaterial(ctx context.Context, descriptor wavefront.Material, textures *textureResolver) (*metadata.Material, error) {
	baseColorTexture, err := textures.Resolve(ctx, descriptor.DiffuseTexture)
	if err != nil {
		return nil, err
	}
	normalMap, err := textures.Resolve(ctx, descriptor.NormalTexture)
	if err != nil {
		return nil, err
	}
	metallicRoughness, err := textures.Resolve(ctx, descriptor.SpecularTexture)
	if err != nil {
		return nil, err
	}
	occlusion, err := textures.Resolve(ctx, descriptor.AmbientTexture)
	if err != nil {
		return nil, err
	}

	material := metadata.DefaultMaterial()
	material.Name = descriptor.Name
	material.BaseColor = math.Vec4{
		math.Clamp(descriptor.Diffuse[0], 0, 1),
		math.Clamp(descriptor.Diffuse[1], 0, 1),
		math.Clamp(descriptor.Diffuse[2], 0, 1),
		1,
	}
	// Ns is not a reflectance, the value is kept as is
	material.Reflectance = descriptor.Shininess
	material.BaseColorTexture = baseColorTexture
	material.NormalMap = normalMap
	material.MetallicRoughnessTexture = metallicRoughness
	material.OcclusionTexture = occlusion

	return &material, nil
}
