package loaders

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/spaghettifunk/anima-obj/engine/assets/wavefront"
	"github.com/spaghettifunk/anima-obj/engine/core"
	"github.com/spaghettifunk/anima-obj/engine/renderer/metadata"
)

type ObjParseFunc func(r io.Reader, resolve wavefront.MaterialResolver) ([]wavefront.Model, []wavefront.Material, error)

type MtlParseFunc func(r io.Reader) ([]wavefront.Material, error)

// ObjLoader loads a Wavefront OBJ file with its material libraries and textures.
type ObjLoader struct {
	parseObj    ObjParseFunc
	parseMtl    MtlParseFunc
	decodeImage ImageDecodeFunc
}

type ObjLoaderOption func(*ObjLoader)

// WithObjParser replaces the OBJ grammar.
func WithObjParser(fn ObjParseFunc) ObjLoaderOption {
	return func(ol *ObjLoader) {
		ol.parseObj = fn
	}
}

// WithMtlParser replaces the MTL grammar.
func WithMtlParser(fn MtlParseFunc) ObjLoaderOption {
	return func(ol *ObjLoader) {
		ol.parseMtl = fn
	}
}

// WithImageDecoder replaces the image decoder used for textures.
func WithImageDecoder(fn ImageDecodeFunc) ObjLoaderOption {
	return func(ol *ObjLoader) {
		ol.decodeImage = fn
	}
}

func NewObjLoader(options ...ObjLoaderOption) *ObjLoader {
	ol := &ObjLoader{
		parseObj:    wavefront.ParseObj,
		parseMtl:    wavefront.ParseMtl,
		decodeImage: DecodeImage,
	}
	for _, opt := range options {
		opt(ol)
	}
	return ol
}

func (ol *ObjLoader) Extensions() []string {
	return []string{"obj"}
}

// RootLabel is the label returned when the source is loaded without one.
func (ol *ObjLoader) RootLabel() string {
	return LabelObj
}

// objLoad is the state of one run of the loader.
type objLoad struct {
	loader *ObjLoader
	lc     LoadContext
	stage  core.LoadStage

	meshes    int
	materials int
	textures  int
}

func (ol *ObjLoader) Load(ctx context.Context, lc LoadContext, data []byte) error {
	clock := core.NewClock()
	clock.Start()

	l := &objLoad{loader: ol, lc: lc, stage: core.LoadStageScan}
	core.LogDebug("loading '%s': %s", lc.Path(), l.stage)

	if err := l.run(ctx, data); err != nil {
		failedAt := l.stage
		l.transition(core.LoadStageFailed)
		core.LogError("failed to load '%s' during %s: %s", lc.Path(), failedAt, err.Error())
		return err
	}
	l.transition(core.LoadStageDone)

	clock.Update()
	core.LogInfo("loaded '%s': %d meshes, %d materials, %d textures in %.2fms",
		lc.Path(), l.meshes, l.materials, l.textures, clock.ElapsedMS())
	return nil
}

func (l *objLoad) transition(stage core.LoadStage) {
	core.LogDebug("loading '%s': %s -> %s", l.lc.Path(), l.stage, stage)
	l.stage = stage
}

func (l *objLoad) run(ctx context.Context, data []byte) error {
	path := l.lc.Path()

	libs, err := ScanMaterialLibraries(data)
	if err != nil {
		return core.NewLoadError(core.ErrorKindInvalidFormat, core.LoadStageScan, path, err)
	}

	l.transition(core.LoadStageResolveMaterialLibs)
	index, err := l.loader.resolveMaterialLibraries(ctx, l.lc, libs)
	if err != nil {
		return err
	}

	l.transition(core.LoadStageParseGeometry)
	models, descriptors, err := l.loader.parseObj(bytes.NewReader(data), index.Resolve)
	if err != nil {
		var loadErr *core.LoadError
		if errors.As(err, &loadErr) {
			return err
		}
		return core.NewLoadError(core.ErrorKindInvalidFormat, core.LoadStageParseGeometry, path, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	l.transition(core.LoadStageResolveTextures)
	textures := newTextureResolver(l.lc, l.loader.decodeImage)
	materials, err := buildMaterials(ctx, l.lc, descriptors, textures)
	if err != nil {
		return err
	}

	l.transition(core.LoadStageBuildMeshes)
	meshes := make([]*metadata.Mesh, len(models))
	for i, model := range models {
		mesh, err := buildMesh(model)
		if err != nil {
			return core.NewLoadError(core.ErrorKindChunk, core.LoadStageBuildMeshes, path, err)
		}
		meshes[i] = mesh
	}

	l.transition(core.LoadStageAssembleScene)
	loaded := textures.Textures()
	if err := assembleScene(l.lc, loaded, materials, models, meshes); err != nil {
		if errors.Is(err, core.ErrLabelCollision) {
			return core.NewLoadError(core.ErrorKindLabelCollision, core.LoadStageAssembleScene, path, err)
		}
		return err
	}

	l.meshes, l.materials, l.textures = len(meshes), len(materials), len(loaded)
	return nil
}
