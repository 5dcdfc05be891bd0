package assets

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/spaghettifunk/anima-obj/engine/core"
)

func TestFSFetcher(t *testing.T) {
	fetcher := NewFSFetcher(fstest.MapFS{
		"models/cube.obj": {Data: []byte("v 0 0 0\n")},
	})

	tests := []struct {
		name string
		path string
		want string
		err  error
	}{
		{"plain", "models/cube.obj", "v 0 0 0\n", nil},
		{"cleaned", "./models/../models/cube.obj", "v 0 0 0\n", nil},
		{"leading slash", "/models/cube.obj", "v 0 0 0\n", nil},
		{"missing", "models/none.obj", "", core.ErrNotFound},
		{"empty", "", "", core.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := fetcher.Fetch(context.Background(), tt.path)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("error = %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch() error = %v", err)
			}
			if string(data) != tt.want {
				t.Fatalf("data = %q, want %q", data, tt.want)
			}
		})
	}
}

func TestFSFetcherCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFSFetcher(fstest.MapFS{"a.obj": {}}).Fetch(ctx, "a.obj")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
