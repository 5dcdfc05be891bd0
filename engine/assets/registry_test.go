package assets

import (
	"testing"

	"github.com/spaghettifunk/anima-obj/engine/renderer/metadata"
)

func entry(path, label string, asset interface{}) registryEntry {
	return registryEntry{handle: metadata.NewHandle(path, label), asset: asset}
}

func TestRegistryCommitReplacesPath(t *testing.T) {
	r := NewRegistry()

	first := entry("a.obj", "Obj", &metadata.Obj{})
	stale := entry("a.obj", "old", &metadata.Mesh{Name: "old"})
	other := entry("b.obj", "Obj", &metadata.Obj{})
	r.commit("a.obj", []registryEntry{first, stale})
	r.commit("b.obj", []registryEntry{other})

	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}

	second := entry("a.obj", "Obj", &metadata.Obj{})
	r.commit("a.obj", []registryEntry{second})

	if _, ok := r.Get(first.handle); ok {
		t.Fatal("handles of the previous commit must be gone")
	}
	if _, ok := r.Labeled("a.obj", "old"); ok {
		t.Fatal("labels of the previous commit must be gone")
	}
	h, ok := r.Labeled("a.obj", "Obj")
	if !ok || h.ID != second.handle.ID {
		t.Fatalf("Labeled() = %v, %v", h, ok)
	}
	if _, ok := r.Get(other.handle); !ok {
		t.Fatal("other paths must be untouched")
	}
	if got := r.Paths(); len(got) != 2 || got[0] != "a.obj" || got[1] != "b.obj" {
		t.Fatalf("Paths() = %v", got)
	}

	r.Remove("a.obj")
	if r.Len() != 1 || len(r.Labels("a.obj")) != 0 {
		t.Fatalf("after Remove: Len() = %d, labels = %v", r.Len(), r.Labels("a.obj"))
	}
}

func TestRegistryGenericGet(t *testing.T) {
	r := NewRegistry()
	mesh := entry("a.obj", "cube", &metadata.Mesh{Name: "cube"})
	r.commit("a.obj", []registryEntry{mesh})

	got, ok := Get[*metadata.Mesh](r, mesh.handle)
	if !ok || got.Name != "cube" {
		t.Fatalf("Get[*Mesh]() = %v, %v", got, ok)
	}
	if _, ok := Get[*metadata.Material](r, mesh.handle); ok {
		t.Fatal("Get with the wrong type must fail")
	}
	if _, ok := Get[*metadata.Mesh](r, metadata.NewHandle("a.obj", "cube")); ok {
		t.Fatal("Get with an unknown handle must fail")
	}
}
