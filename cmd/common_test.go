package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spaghettifunk/anima-obj/engine/assets"
	"github.com/spaghettifunk/anima-obj/engine/core"
)

func TestPrintSummary(t *testing.T) {
	fsys := fstest.MapFS{
		"cube.obj": {Data: []byte("mtllib cube.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 0\no side\nusemtl grey\nf 1 2 4 3\n")},
		"cube.mtl": {Data: []byte("newmtl grey\nKd 0.5 0.5 0.5\n")},
	}
	am, err := assets.NewAssetManager(core.DefaultConfig(), assets.WithFetcher(assets.NewFSFetcher(fsys)))
	if err != nil {
		t.Fatal(err)
	}
	defer am.Shutdown()

	h, err := am.LoadAsset(context.Background(), "cube.obj")
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	printSummary(&out, am.Registry(), h)

	got := out.String()
	for _, want := range []string{
		"cube.obj: 1 meshes, 1 materials, 0 textures",
		"ObjMesh0",
		"vertices=4 triangles=2 material=grey",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary %q does not contain %q", got, want)
		}
	}
}
