package loaders

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"path"
	"strings"
	"sync"

	"github.com/ftrvxmtrx/tga"
	"github.com/spaghettifunk/anima-obj/engine/core"
	"github.com/spaghettifunk/anima-obj/engine/renderer/metadata"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"
)

var ErrUnsupportedImage = errors.New("unsupported image extension")

// ImageDecodeFunc decodes image bytes; ext is the file extension without the dot.
type ImageDecodeFunc func(data []byte, ext string) (image.Image, error)

// DecodeImage picks a decoder from the file extension.
func DecodeImage(data []byte, ext string) (image.Image, error) {
	r := bytes.NewReader(data)
	switch strings.ToLower(ext) {
	case "png":
		return png.Decode(r)
	case "jpg", "jpeg":
		return jpeg.Decode(r)
	case "gif":
		return gif.Decode(r)
	case "bmp":
		return bmp.Decode(r)
	case "tif", "tiff":
		return tiff.Decode(r)
	case "webp":
		return webp.Decode(r)
	case "tga":
		return tga.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedImage, ext)
	}
}

// newTexture converts any decoded image to a tightly packed NRGBA texture.
func newTexture(name string, img image.Image) *metadata.Texture {
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)

	transparent := false
	for i := 3; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] < 0xff {
			transparent = true
			break
		}
	}

	return &metadata.Texture{
		Name:            name,
		Width:           uint32(bounds.Dx()),
		Height:          uint32(bounds.Dy()),
		ChannelCount:    4,
		HasTransparency: transparent,
		Format:          metadata.TextureFormatRGBA8UnormSrgb,
		Sampler:         metadata.LinearSampler(),
		Pixels:          dst.Pix,
	}
}

// textureResolver loads each texture reference of a load at most once.
type textureResolver struct {
	lc     LoadContext
	dir    string
	decode ImageDecodeFunc

	group    singleflight.Group
	mu       sync.Mutex
	textures map[string]*metadata.Texture
}

func newTextureResolver(lc LoadContext, decode ImageDecodeFunc) *textureResolver {
	return &textureResolver{
		lc:       lc,
		dir:      path.Dir(lc.Path()),
		decode:   decode,
		textures: make(map[string]*metadata.Texture),
	}
}

// Resolve returns the reserved handle of ref, nil for an empty reference.
func (tr *textureResolver) Resolve(ctx context.Context, ref string) (*metadata.Handle, error) {
	if ref == "" {
		return nil, nil
	}

	_, err, _ := tr.group.Do(ref, func() (interface{}, error) {
		tr.mu.Lock()
		_, done := tr.textures[ref]
		tr.mu.Unlock()
		if done {
			return nil, nil
		}

		texture, err := tr.load(ctx, ref)
		if err != nil {
			return nil, err
		}

		tr.mu.Lock()
		tr.textures[ref] = texture
		tr.mu.Unlock()
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	handle := tr.lc.Handle(ref)
	return &handle, nil
}

func (tr *textureResolver) load(ctx context.Context, ref string) (*metadata.Texture, error) {
	p := path.Join(tr.dir, ref)
	core.LogDebug("fetching texture '%s'", p)

	data, err := tr.lc.ReadAssetBytes(ctx, p)
	if err != nil {
		return nil, core.NewLoadError(core.ErrorKindFetch, core.LoadStageResolveTextures, p, err)
	}
	img, err := tr.decode(data, strings.TrimPrefix(path.Ext(ref), "."))
	if err != nil {
		return nil, core.NewLoadError(core.ErrorKindDecode, core.LoadStageResolveTextures, p, err)
	}
	return newTexture(ref, img), nil
}

// Textures returns the loaded textures keyed by reference string.
func (tr *textureResolver) Textures() map[string]*metadata.Texture {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	out := make(map[string]*metadata.Texture, len(tr.textures))
	for ref, texture := range tr.textures {
		out[ref] = texture
	}
	return out
}
