package metadata

/** @brief Pixel formats a texture can be stored in. */
type TextureFormat int

const (
	/** @brief 8 bits per channel RGBA, sampled with sRGB to linear conversion. */
	TextureFormatRGBA8UnormSrgb TextureFormat = iota
	/** @brief 8 bits per channel RGBA, sampled as linear values. */
	TextureFormatRGBA8Unorm
)

/** @brief Represents supported texture filtering modes. */
type TextureFilter int

const (
	/** @brief Nearest-neighbor filtering. */
	TextureFilterModeNearest TextureFilter = 0x0
	/** @brief Linear (i.e. bilinear) filtering.*/
	TextureFilterModeLinear TextureFilter = 0x1
)

type TextureRepeat int

const (
	TextureRepeatRepeat         TextureRepeat = 0x1
	TextureRepeatMirroredRepeat TextureRepeat = 0x2
	TextureRepeatClampToEdge    TextureRepeat = 0x3
	TextureRepeatClampToBorder  TextureRepeat = 0x4
)

/** @brief How a texture is sampled. */
type Sampler struct {
	/** @brief Texture filtering mode for minification. */
	FilterMinify TextureFilter
	/** @brief Texture filtering mode for magnification. */
	FilterMagnify TextureFilter
	/** @brief The repeat mode on the U axis (or X, or S) */
	RepeatU TextureRepeat
	/** @brief The repeat mode on the V axis (or Y, or T) */
	RepeatV TextureRepeat
}

// LinearSampler is the sampler every texture loaded from a material library uses.
func LinearSampler() Sampler {
	return Sampler{
		FilterMinify:  TextureFilterModeLinear,
		FilterMagnify: TextureFilterModeLinear,
		RepeatU:       TextureRepeatRepeat,
		RepeatV:       TextureRepeatRepeat,
	}
}

/**
 * @brief A decoded texture.
 * Pixels are always 4 channels, 8 bits each, non-premultiplied, row-major
 * from the top-left corner.
 */
type Texture struct {
	/** @brief The texture Name, the literal reference string used in the material library. */
	Name string
	/** @brief The texture Width. */
	Width uint32
	/** @brief The texture Height. */
	Height uint32
	/** @brief The number of channels in the texture. Always 4. */
	ChannelCount uint8
	/** @brief Indicates if any pixel is not fully opaque. */
	HasTransparency bool
	Format          TextureFormat
	Sampler         Sampler
	/** @brief The raw texture data (pixels). */
	Pixels []uint8
}
