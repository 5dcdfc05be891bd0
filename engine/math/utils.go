package math

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

var ErrUnevenChunk = errors.New("slice length is not a multiple of the tuple width")

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// ChunkVec3 groups a flat slice into 3-element vectors.
// An empty slice yields an empty result.
func ChunkVec3[T constraints.Float](v []T) ([]Vec3, error) {
	if len(v)%3 != 0 {
		return nil, fmt.Errorf("%w: len=%d width=3", ErrUnevenChunk, len(v))
	}
	out := make([]Vec3, len(v)/3)
	for i := range out {
		out[i] = Vec3{float32(v[i*3]), float32(v[i*3+1]), float32(v[i*3+2])}
	}
	return out, nil
}

// ChunkVec2 groups a flat slice into 2-element vectors.
func ChunkVec2[T constraints.Float](v []T) ([]Vec2, error) {
	if len(v)%2 != 0 {
		return nil, fmt.Errorf("%w: len=%d width=2", ErrUnevenChunk, len(v))
	}
	out := make([]Vec2, len(v)/2)
	for i := range out {
		out[i] = Vec2{float32(v[i*2]), float32(v[i*2+1])}
	}
	return out, nil
}
