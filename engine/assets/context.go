package assets

import (
	"context"
	"fmt"
	"path"
	"sort"
	"sync"

	"github.com/spaghettifunk/anima-obj/engine/core"
	"github.com/spaghettifunk/anima-obj/engine/renderer/metadata"
)

// LoadContext stages the labeled assets of one load until it is committed.
// It is safe for concurrent use by the stages of a loader.
type LoadContext struct {
	path                 string
	fetcher              ByteFetcher
	policy               core.DuplicateLabelPolicy
	maxConcurrentFetches int

	mu           sync.Mutex
	handles      map[string]metadata.Handle
	assets       map[string]interface{}
	order        []string
	dependencies map[string]struct{}
}

func newLoadContext(p string, fetcher ByteFetcher, cfg core.LoaderConfig) *LoadContext {
	fetches := cfg.MaxConcurrentFetches
	if fetches <= 0 {
		fetches = 1
	}
	return &LoadContext{
		path:                 p,
		fetcher:              fetcher,
		policy:               cfg.DuplicateLabels,
		maxConcurrentFetches: fetches,
		handles:              make(map[string]metadata.Handle),
		assets:               make(map[string]interface{}),
		dependencies:         make(map[string]struct{}),
	}
}

func (lc *LoadContext) Path() string {
	return lc.path
}

func (lc *LoadContext) MaxConcurrentFetches() int {
	return lc.maxConcurrentFetches
}

func (lc *LoadContext) ReadAssetBytes(ctx context.Context, p string) ([]byte, error) {
	p = path.Clean(p)

	lc.mu.Lock()
	lc.dependencies[p] = struct{}{}
	lc.mu.Unlock()

	return lc.fetcher.Fetch(ctx, p)
}

func (lc *LoadContext) Handle(label string) metadata.Handle {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.handle(label)
}

func (lc *LoadContext) handle(label string) metadata.Handle {
	if h, ok := lc.handles[label]; ok {
		return h
	}
	h := metadata.NewHandle(lc.path, label)
	lc.handles[label] = h
	return h
}

func (lc *LoadContext) SetLabeledAsset(label string, asset interface{}) (metadata.Handle, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if _, exists := lc.assets[label]; exists {
		if lc.policy == core.DuplicateLabelsError {
			return metadata.Handle{}, fmt.Errorf("%w: '%s' in '%s'", core.ErrLabelCollision, label, lc.path)
		}
		core.LogWarn("label '%s' set twice while loading '%s', keeping the last asset", label, lc.path)
	} else {
		lc.order = append(lc.order, label)
	}
	lc.assets[label] = asset
	return lc.handle(label), nil
}

// Dependencies returns the sorted paths fetched through the context.
func (lc *LoadContext) Dependencies() []string {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	deps := make([]string, 0, len(lc.dependencies))
	for p := range lc.dependencies {
		deps = append(deps, p)
	}
	sort.Strings(deps)
	return deps
}

// entries returns the staged assets in the order they were first set.
// Every reserved handle must have received an asset.
func (lc *LoadContext) entries() ([]registryEntry, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	for label := range lc.handles {
		if _, ok := lc.assets[label]; !ok {
			return nil, fmt.Errorf("handle '%s' of '%s' was reserved but never set", label, lc.path)
		}
	}

	entries := make([]registryEntry, 0, len(lc.order))
	for _, label := range lc.order {
		entries = append(entries, registryEntry{handle: lc.handles[label], asset: lc.assets[label]})
	}
	return entries, nil
}
