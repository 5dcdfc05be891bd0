package loaders

import (
	"context"

	"github.com/spaghettifunk/anima-obj/engine/renderer/metadata"
)

// LoadContext is the view a loader has of the load it is running.
// Labeled assets set on it are only visible to others once the load committed.
type LoadContext interface {
	// Path is the asset path of the source being loaded.
	Path() string
	// ReadAssetBytes fetches another asset and records it as a dependency of the load.
	ReadAssetBytes(ctx context.Context, path string) ([]byte, error)
	// Handle returns the handle of label, reserving it when no asset was set yet.
	Handle(label string) metadata.Handle
	// SetLabeledAsset stages asset under label and returns its handle.
	SetLabeledAsset(label string, asset interface{}) (metadata.Handle, error)
	// MaxConcurrentFetches bounds the fan-out of a single stage.
	MaxConcurrentFetches() int
}
