package math

import (
	"errors"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{-0.5, 0},
		{0.25, 0.25},
		{1.5, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in, 0, 1); got != tt.want {
			t.Errorf("Clamp(%v, 0, 1) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestChunkVec3(t *testing.T) {
	got, err := ChunkVec3([]float32{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != (Vec3{1, 2, 3}) || got[1] != (Vec3{4, 5, 6}) {
		t.Fatalf("unexpected chunks: %v", got)
	}

	empty, err := ChunkVec3([]float32{})
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty input: got %v, %v; want no tuples and no error", empty, err)
	}

	if _, err := ChunkVec3([]float32{1, 2, 3, 4}); !errors.Is(err, ErrUnevenChunk) {
		t.Fatalf("expected ErrUnevenChunk, got %v", err)
	}
}

func TestChunkVec2(t *testing.T) {
	got, err := ChunkVec2([]float64{0.5, 1, 0, 0.25})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[1] != (Vec2{0, 0.25}) {
		t.Fatalf("unexpected chunks: %v", got)
	}
	if _, err := ChunkVec2([]float32{1}); !errors.Is(err, ErrUnevenChunk) {
		t.Fatalf("expected ErrUnevenChunk, got %v", err)
	}
}
