package loaders

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/spaghettifunk/anima-obj/engine/assets/wavefront"
	"github.com/spaghettifunk/anima-obj/engine/core"
	"golang.org/x/sync/errgroup"
)

const maxLineSize = 16 * 1024 * 1024

// ScanMaterialLibraries returns the path of every mtllib statement of an OBJ
// source, in order and with duplicates. Only the first path of a statement counts.
func ScanMaterialLibraries(data []byte) ([]string, error) {
	libs := []string{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if !utf8.ValidString(text) {
			return nil, fmt.Errorf("%w: line %d is not valid UTF-8", core.ErrInvalidFormat, line)
		}
		fields := strings.Fields(text)
		if len(fields) == 0 || fields[0] != "mtllib" {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d: mtllib without a path", core.ErrInvalidFormat, line)
		}
		libs = append(libs, fields[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidFormat, err)
	}
	return libs, nil
}

// MaterialLibraryIndex maps the literal mtllib strings of a source to the
// materials of the library. It is read-only once built.
type MaterialLibraryIndex struct {
	libraries map[string][]wavefront.Material
}

func NewMaterialLibraryIndex(libraries map[string][]wavefront.Material) *MaterialLibraryIndex {
	if libraries == nil {
		libraries = make(map[string][]wavefront.Material)
	}
	return &MaterialLibraryIndex{libraries: libraries}
}

// Resolve is the wavefront.MaterialResolver of a load.
func (idx *MaterialLibraryIndex) Resolve(p string) ([]wavefront.Material, error) {
	if materials, ok := idx.libraries[p]; ok {
		return materials, nil
	}
	return nil, core.NewLoadError(core.ErrorKindReference, core.LoadStageParseGeometry, p,
		fmt.Errorf("material library %q was not resolved before parsing", p))
}

func (idx *MaterialLibraryIndex) Len() int {
	return len(idx.libraries)
}

func (idx *MaterialLibraryIndex) Has(p string) bool {
	_, ok := idx.libraries[p]
	return ok
}

// resolveMaterialLibraries fetches and parses every library, each distinct path
// once, and joins all of them before returning.
func (ol *ObjLoader) resolveMaterialLibraries(ctx context.Context, lc LoadContext, libs []string) (*MaterialLibraryIndex, error) {
	distinct := make([]string, 0, len(libs))
	seen := make(map[string]struct{}, len(libs))
	for _, lib := range libs {
		if _, ok := seen[lib]; ok {
			continue
		}
		seen[lib] = struct{}{}
		distinct = append(distinct, lib)
	}

	dir := path.Dir(lc.Path())
	results := make([][]wavefront.Material, len(distinct))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lc.MaxConcurrentFetches())
	for i, lib := range distinct {
		g.Go(func() error {
			p := path.Join(dir, lib)
			core.LogDebug("fetching material library '%s'", p)

			data, err := lc.ReadAssetBytes(gctx, p)
			if err != nil {
				return core.NewLoadError(core.ErrorKindFetch, core.LoadStageResolveMaterialLibs, p, err)
			}
			materials, err := ol.parseMtl(bytes.NewReader(data))
			if err != nil {
				return core.NewLoadError(core.ErrorKindInvalidFormat, core.LoadStageResolveMaterialLibs, p, err)
			}
			results[i] = materials
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	libraries := make(map[string][]wavefront.Material, len(distinct))
	for i, lib := range distinct {
		libraries[lib] = results[i]
	}
	return NewMaterialLibraryIndex(libraries), nil
}
