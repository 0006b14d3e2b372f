package pixel

import "github.com/gogpu/gputypes"

var gpuFormats = map[Format]gputypes.TextureFormat{
	{R, UnormInt8}:    gputypes.TextureFormatR8Unorm,
	{R, SnormInt8}:    gputypes.TextureFormatR8Snorm,
	{R, UnsignedInt8}: gputypes.TextureFormatR8Uint,
	{R, SignedInt8}:   gputypes.TextureFormatR8Sint,

	{R, UnormInt16}:     gputypes.TextureFormatR16Unorm,
	{R, SnormInt16}:     gputypes.TextureFormatR16Snorm,
	{R, UnsignedInt16}:  gputypes.TextureFormatR16Uint,
	{R, SignedInt16}:    gputypes.TextureFormatR16Sint,
	{R, HalfFloat}:      gputypes.TextureFormatR16Float,
	{RG, UnormInt8}:     gputypes.TextureFormatRG8Unorm,
	{RG, SnormInt8}:     gputypes.TextureFormatRG8Snorm,
	{RG, UnsignedInt8}:  gputypes.TextureFormatRG8Uint,
	{RG, SignedInt8}:    gputypes.TextureFormatRG8Sint,
	{R, UnsignedInt32}:  gputypes.TextureFormatR32Uint,
	{R, SignedInt32}:    gputypes.TextureFormatR32Sint,
	{R, Float}:          gputypes.TextureFormatR32Float,
	{RG, UnormInt16}:    gputypes.TextureFormatRG16Unorm,
	{RG, SnormInt16}:    gputypes.TextureFormatRG16Snorm,
	{RG, UnsignedInt16}: gputypes.TextureFormatRG16Uint,
	{RG, SignedInt16}:   gputypes.TextureFormatRG16Sint,
	{RG, HalfFloat}:     gputypes.TextureFormatRG16Float,

	{RGBA, UnormInt8}:             gputypes.TextureFormatRGBA8Unorm,
	{SRGBA, UnormInt8}:            gputypes.TextureFormatRGBA8UnormSrgb,
	{RGBA, SnormInt8}:             gputypes.TextureFormatRGBA8Snorm,
	{RGBA, UnsignedInt8}:          gputypes.TextureFormatRGBA8Uint,
	{RGBA, SignedInt8}:            gputypes.TextureFormatRGBA8Sint,
	{BGRA, UnormInt8}:             gputypes.TextureFormatBGRA8Unorm,
	{RGBA, UnormInt1010102Rev}:    gputypes.TextureFormatRGB10A2Unorm,
	{RGBA, UnsignedInt1010102Rev}: gputypes.TextureFormatRGB10A2Uint,

	{RG, UnsignedInt32}:   gputypes.TextureFormatRG32Uint,
	{RG, SignedInt32}:     gputypes.TextureFormatRG32Sint,
	{RG, Float}:           gputypes.TextureFormatRG32Float,
	{RGBA, UnormInt16}:    gputypes.TextureFormatRGBA16Unorm,
	{RGBA, SnormInt16}:    gputypes.TextureFormatRGBA16Snorm,
	{RGBA, UnsignedInt16}: gputypes.TextureFormatRGBA16Uint,
	{RGBA, SignedInt16}:   gputypes.TextureFormatRGBA16Sint,
	{RGBA, HalfFloat}:     gputypes.TextureFormatRGBA16Float,

	{RGBA, UnsignedInt32}: gputypes.TextureFormatRGBA32Uint,
	{RGBA, SignedInt32}:   gputypes.TextureFormatRGBA32Sint,
	{RGBA, Float}:         gputypes.TextureFormatRGBA32Float,

	{S, UnsignedInt8}:               gputypes.TextureFormatStencil8,
	{D, UnormInt16}:                 gputypes.TextureFormatDepth16Unorm,
	{D, UnsignedInt248}:             gputypes.TextureFormatDepth24Plus,
	{DS, UnsignedInt248}:            gputypes.TextureFormatDepth24PlusStencil8,
	{D, Float}:                      gputypes.TextureFormatDepth32Float,
	{DS, Float32UnsignedInt248Rev}: gputypes.TextureFormatDepth32FloatStencil8,
}

var formatsByGPU = func() map[gputypes.TextureFormat]Format {
	m := make(map[gputypes.TextureFormat]Format, len(gpuFormats))
	for f, g := range gpuFormats {
		m[g] = f
	}
	return m
}()

// GPUFormat returns the WebGPU texture format with the same storage, if any.
// Formats with no WebGPU equivalent (RGB8, 565, luminance, ...) report false.
func (f Format) GPUFormat() (gputypes.TextureFormat, bool) {
	g, ok := gpuFormats[f]
	return g, ok
}

// FromGPUFormat returns the storage format matching a WebGPU texture format.
func FromGPUFormat(g gputypes.TextureFormat) (Format, bool) {
	f, ok := formatsByGPU[g]
	return f, ok
}
