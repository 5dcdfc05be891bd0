package loaders

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"

	"github.com/spaghettifunk/anima-obj/engine/core"
	"github.com/spaghettifunk/anima-obj/engine/renderer/metadata"
)

// memoryContext is a LoadContext serving files from a map.
type memoryContext struct {
	path  string
	files map[string][]byte

	mu      sync.Mutex
	fetches map[string]int
	handles map[string]metadata.Handle
	assets  map[string]interface{}
}

func newMemoryContext(path string, files map[string][]byte) *memoryContext {
	return &memoryContext{
		path:    path,
		files:   files,
		fetches: make(map[string]int),
		handles: make(map[string]metadata.Handle),
		assets:  make(map[string]interface{}),
	}
}

func (mc *memoryContext) Path() string { return mc.path }

func (mc *memoryContext) MaxConcurrentFetches() int { return 4 }

func (mc *memoryContext) ReadAssetBytes(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.fetches[path]++
	data, ok := mc.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, path)
	}
	return data, nil
}

func (mc *memoryContext) Handle(label string) metadata.Handle {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.handle(label)
}

func (mc *memoryContext) handle(label string) metadata.Handle {
	if h, ok := mc.handles[label]; ok {
		return h
	}
	h := metadata.NewHandle(mc.path, label)
	mc.handles[label] = h
	return h
}

func (mc *memoryContext) SetLabeledAsset(label string, asset interface{}) (metadata.Handle, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.assets[label] = asset
	return mc.handle(label), nil
}

func (mc *memoryContext) fetchCount(path string) int {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.fetches[path]
}

func encodePNG(w, h int, c color.NRGBA) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
