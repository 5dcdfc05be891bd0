package loaders

import (
	"context"
	"errors"
	"testing"

	"github.com/spaghettifunk/anima-obj/engine/core"
)

func TestScanMaterialLibraries(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"none", "v 0 0 0\nf 1 1 1\n", []string{}},
		{"in order with duplicates", "mtllib a.mtl\nv 0 0 0\nmtllib b.mtl extra.mtl\n  mtllib a.mtl\n", []string{"a.mtl", "b.mtl", "a.mtl"}},
		{"comment is ignored", "# mtllib hidden.mtl\nmtllib shown.mtl\n", []string{"shown.mtl"}},
		{"keyword must match exactly", "mtllibs x.mtl\n", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScanMaterialLibraries([]byte(tt.src))
			if err != nil {
				t.Fatalf("ScanMaterialLibraries() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestScanMaterialLibrariesInvalid(t *testing.T) {
	for name, src := range map[string][]byte{
		"missing path": []byte("mtllib\n"),
		"invalid utf8": {'v', ' ', 0xff, 0xfe, '\n'},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ScanMaterialLibraries(src)
			if !errors.Is(err, core.ErrInvalidFormat) {
				t.Fatalf("error = %v, want ErrInvalidFormat", err)
			}
		})
	}
}

func TestMaterialLibraryIndexResolve(t *testing.T) {
	idx := NewMaterialLibraryIndex(nil)
	if idx.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", idx.Len())
	}

	_, err := idx.Resolve("missing.mtl")
	if !errors.Is(err, core.ErrReference) {
		t.Fatalf("error = %v, want ErrReference", err)
	}
	var loadErr *core.LoadError
	if !errors.As(err, &loadErr) || loadErr.Path != "missing.mtl" {
		t.Fatalf("error = %#v, want a LoadError for missing.mtl", err)
	}
}

func TestResolveMaterialLibraries(t *testing.T) {
	mc := newMemoryContext("models/cube.obj", map[string][]byte{
		"models/a.mtl":         []byte("newmtl red\nKd 1 0 0\n"),
		"models/sub/b.mtl":     []byte("newmtl blue\nKd 0 0 1\nnewmtl green\nKd 0 1 0\n"),
		"models/empty.mtl":     []byte(""),
		"models/broken.mtl":    []byte("Kd 1 1 1\n"),
		"models/unrelated.mtl": []byte("newmtl x\n"),
	})
	ol := NewObjLoader()

	t.Run("zero libraries", func(t *testing.T) {
		idx, err := ol.resolveMaterialLibraries(context.Background(), mc, []string{})
		if err != nil {
			t.Fatal(err)
		}
		if idx.Len() != 0 {
			t.Fatalf("Len() = %d, want 0", idx.Len())
		}
	})

	t.Run("indexed by literal path", func(t *testing.T) {
		idx, err := ol.resolveMaterialLibraries(context.Background(), mc, []string{"a.mtl", "sub/b.mtl", "a.mtl", "empty.mtl"})
		if err != nil {
			t.Fatal(err)
		}
		if idx.Len() != 3 {
			t.Fatalf("Len() = %d, want 3", idx.Len())
		}
		b, err := idx.Resolve("sub/b.mtl")
		if err != nil {
			t.Fatal(err)
		}
		if len(b) != 2 || b[0].Name != "blue" || b[1].Name != "green" {
			t.Fatalf("sub/b.mtl = %+v", b)
		}
		if idx.Has("models/a.mtl") {
			t.Fatal("index must use the literal mtllib string, not the joined path")
		}
		if got := mc.fetchCount("models/a.mtl"); got != 1 {
			t.Fatalf("a.mtl fetched %d times, want 1", got)
		}
		if got := mc.fetchCount("models/unrelated.mtl"); got != 0 {
			t.Fatalf("unrelated.mtl fetched %d times, want 0", got)
		}
	})

	t.Run("missing library", func(t *testing.T) {
		_, err := ol.resolveMaterialLibraries(context.Background(), mc, []string{"a.mtl", "missing.mtl"})
		if !errors.Is(err, core.ErrFetch) {
			t.Fatalf("error = %v, want ErrFetch", err)
		}
		if !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("error = %v, want the ErrNotFound cause", err)
		}
	})

	t.Run("broken library", func(t *testing.T) {
		_, err := ol.resolveMaterialLibraries(context.Background(), mc, []string{"broken.mtl"})
		if !errors.Is(err, core.ErrInvalidFormat) {
			t.Fatalf("error = %v, want ErrInvalidFormat", err)
		}
	})
}
