package math

import "github.com/go-gl/mathgl/mgl32"

// Vec2 represents a 2D vector
type Vec2 = mgl32.Vec2

// Vec3 represents a 3D vector
type Vec3 = mgl32.Vec3

// Vec4 represents a 4D vector
type Vec4 = mgl32.Vec4

/** @brief a 4x4 matrix, typically used to represent object transformations. */
type Mat4 = mgl32.Mat4

// Mat4Identity returns the identity transform.
func Mat4Identity() Mat4 {
	return mgl32.Ident4()
}
