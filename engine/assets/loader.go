package assets

import (
	"context"

	"github.com/spaghettifunk/anima-obj/engine/assets/loaders"
)

// Loader turns the bytes of a source file into labeled assets.
type Loader interface {
	// Extensions lists the lowercase file extensions, without the dot, the loader handles.
	Extensions() []string
	// RootLabel is the label returned when a source is loaded without one.
	RootLabel() string
	Load(ctx context.Context, lc loaders.LoadContext, data []byte) error
}
