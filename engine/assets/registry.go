package assets

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/spaghettifunk/anima-obj/engine/renderer/metadata"
)

type registryEntry struct {
	handle metadata.Handle
	asset  interface{}
}

// Registry stores the labeled assets of every committed load.
type Registry struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]registryEntry
	byPath map[string]map[string]metadata.Handle
}

func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[uuid.UUID]registryEntry),
		byPath: make(map[string]map[string]metadata.Handle),
	}
}

// commit replaces every labeled asset of path at once.
func (r *Registry) commit(path string, entries []registryEntry) {
	labels := make(map[string]metadata.Handle, len(entries))

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, h := range r.byPath[path] {
		delete(r.byID, h.ID)
	}
	for _, e := range entries {
		r.byID[e.handle.ID] = e
		labels[e.handle.Label] = e.handle
	}
	r.byPath[path] = labels
}

// Remove drops every labeled asset of path.
func (r *Registry) Remove(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, h := range r.byPath[path] {
		delete(r.byID, h.ID)
	}
	delete(r.byPath, path)
}

func (r *Registry) Get(h metadata.Handle) (interface{}, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[h.ID]
	if !ok {
		return nil, false
	}
	return e.asset, true
}

// Labeled returns the handle registered for label under path.
func (r *Registry) Labeled(path, label string) (metadata.Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.byPath[path][label]
	return h, ok
}

// Labels returns the sorted labels registered under path.
func (r *Registry) Labels(path string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	labels := make([]string, 0, len(r.byPath[path]))
	for label := range r.byPath[path] {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Paths returns the sorted source paths with committed assets.
func (r *Registry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	paths := make([]string, 0, len(r.byPath))
	for p := range r.byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Len is the number of labeled assets across every path.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Get returns the asset of h if it is registered with type T.
func Get[T any](r *Registry, h metadata.Handle) (T, bool) {
	var zero T
	asset, ok := r.Get(h)
	if !ok {
		return zero, false
	}
	v, ok := asset.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
