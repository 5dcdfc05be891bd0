package metadata

import "github.com/spaghettifunk/anima-obj/engine/math"

type AlphaMode int

const (
	AlphaModeOpaque AlphaMode = iota
	AlphaModeBlend
)

/**
 * @brief A physically based material record.
 * Built from an MTL descriptor: Kd becomes the base colour, Ns the reflectance,
 * and the diffuse/bump/specular/ambient maps become base colour, normal,
 * metallic-roughness and occlusion textures. This channel mapping is a
 * heuristic and not a physically correct conversion.
 */
type Material struct {
	/** @brief The material name, as declared by newmtl. */
	Name string
	/** @brief Linear RGBA base colour. */
	BaseColor                math.Vec4
	BaseColorTexture         *Handle
	Emissive                 math.Vec4
	PerceptualRoughness      float32
	Metallic                 float32
	MetallicRoughnessTexture *Handle
	Reflectance              float32
	NormalMap                *Handle
	OcclusionTexture         *Handle
	DoubleSided              bool
	Unlit                    bool
	AlphaMode                AlphaMode
}

// DefaultMaterial returns the engine defaults every built material starts from.
func DefaultMaterial() Material {
	return Material{
		BaseColor:           math.Vec4{1, 1, 1, 1},
		Emissive:            math.Vec4{0, 0, 0, 1},
		PerceptualRoughness: 0.089,
		Metallic:            0.01,
		Reflectance:         0.5,
		AlphaMode:           AlphaModeOpaque,
	}
}
