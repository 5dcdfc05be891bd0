package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/spaghettifunk/anima-obj/engine/core"
)

// ByteFetcher returns the bytes stored at an asset path.
// A missing asset is reported with an error matching core.ErrNotFound.
type ByteFetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// FSFetcher reads assets from a file system, usually os.DirFS of the asset directory.
type FSFetcher struct {
	fsys fs.FS
}

func NewFSFetcher(fsys fs.FS) *FSFetcher {
	return &FSFetcher{fsys: fsys}
}

type fetchResult struct {
	data []byte
	err  error
}

func (f *FSFetcher) Fetch(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := cleanAssetPath(p)
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: invalid asset path %q", core.ErrNotFound, p)
	}

	ch := make(chan fetchResult, 1)
	go func() {
		data, err := fs.ReadFile(f.fsys, name)
		ch <- fetchResult{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if errors.Is(res.err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", core.ErrNotFound, p)
		}
		return res.data, res.err
	}
}

// cleanAssetPath turns a slash separated asset path into an fs.FS name.
func cleanAssetPath(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}
