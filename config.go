package glref

import (
	"fmt"
	"math/bits"

	"github.com/gogpu/glref/internal/pixel"
	"github.com/gogpu/glref/internal/texture"
	"github.com/gogpu/glref/rr"
)

// subpixelBits is the precision of the rasterizer's fixed-point window
// coordinates (26.6).
const subpixelBits = 6

// Limits are the implementation limits reported by GetIntegerv and enforced
// by validation.
type Limits struct {
	MaxTextureSize      int `toml:"max_texture_size"`
	Max3DTextureSize    int `toml:"max_3d_texture_size"`
	MaxCubeMapSize      int `toml:"max_cube_map_size"`
	MaxArrayLayers      int `toml:"max_array_layers"`
	MaxTextureUnits     int `toml:"max_texture_units"`
	MaxVertexAttribs    int `toml:"max_vertex_attribs"`
	MaxDrawBuffers      int `toml:"max_draw_buffers"`
	MaxRenderbufferSize int `toml:"max_renderbuffer_size"`
	MaxSamples          int `toml:"max_samples"`
}

// DefaultLimits returns the limits of an OpenGL ES 3.2 minimum implementation.
func DefaultLimits() Limits {
	return Limits{
		MaxTextureSize:      2048,
		Max3DTextureSize:    256,
		MaxCubeMapSize:      2048,
		MaxArrayLayers:      256,
		MaxTextureUnits:     16,
		MaxVertexAttribs:    16,
		MaxDrawBuffers:      4,
		MaxRenderbufferSize: 2048,
		MaxSamples:          4,
	}
}

// Validate checks that every limit is positive and within what the
// rasterizer and level storage support.
func (l Limits) Validate() error {
	maxSize := 1 << (texture.MaxLevels - 1)
	checks := []struct {
		name  string
		v, hi int
	}{
		{"max_texture_size", l.MaxTextureSize, maxSize},
		{"max_3d_texture_size", l.Max3DTextureSize, maxSize},
		{"max_cube_map_size", l.MaxCubeMapSize, maxSize},
		{"max_array_layers", l.MaxArrayLayers, 1 << 16},
		{"max_texture_units", l.MaxTextureUnits, 256},
		{"max_vertex_attribs", l.MaxVertexAttribs, 256},
		{"max_draw_buffers", l.MaxDrawBuffers, 32},
		{"max_renderbuffer_size", l.MaxRenderbufferSize, maxSize},
		{"max_samples", l.MaxSamples, rr.MaxSamples},
	}
	for _, c := range checks {
		if c.v <= 0 || c.v > c.hi {
			return fmt.Errorf("%w: %s = %d, want 1..%d", ErrInvalidConfig, c.name, c.v, c.hi)
		}
	}
	return nil
}

// maxLevels returns the number of mipmap levels of the largest texture of
// the given maximum size.
func maxLevels(maxSize int) int {
	return bits.Len(uint(maxSize))
}

// SurfaceConfig describes the default framebuffer.
type SurfaceConfig struct {
	Width       int `toml:"width"`
	Height      int `toml:"height"`
	Samples     int `toml:"samples"`
	RedBits     int `toml:"red_bits"`
	GreenBits   int `toml:"green_bits"`
	BlueBits    int `toml:"blue_bits"`
	AlphaBits   int `toml:"alpha_bits"`
	DepthBits   int `toml:"depth_bits"`
	StencilBits int `toml:"stencil_bits"`
}

// Config is the complete description of a reference context.
type Config struct {
	Limits  Limits        `toml:"limits"`
	Surface SurfaceConfig `toml:"surface"`
}

// DefaultConfig returns default limits and a 256x256 RGBA8 surface with a
// 24-bit depth and 8-bit stencil buffer.
func DefaultConfig() Config {
	return Config{
		Limits: DefaultLimits(),
		Surface: SurfaceConfig{
			Width: 256, Height: 256,
			RedBits: 8, GreenBits: 8, BlueBits: 8, AlphaBits: 8,
			DepthBits: 24, StencilBits: 8,
		},
	}
}

// Validate checks the limits and that the surface maps onto storable formats.
func (c Config) Validate() error {
	if err := c.Limits.Validate(); err != nil {
		return err
	}
	_, err := c.Surface.formats()
	return err
}

// surfaceFormats are the storage formats of the default framebuffer.
// A combined depth/stencil buffer sets depth and stencil to the same format.
type surfaceFormats struct {
	color, depth, stencil pixel.Format
	hasColor, hasDepth    bool
	hasStencil, combined  bool
}

var colorSurfaceFormats = map[[4]int]pixel.Format{
	{8, 8, 8, 8}:     {Order: pixel.RGBA, Type: pixel.UnormInt8},
	{8, 8, 8, 0}:     {Order: pixel.RGB, Type: pixel.UnormInt8},
	{5, 6, 5, 0}:     {Order: pixel.RGB, Type: pixel.UnormShort565},
	{4, 4, 4, 4}:     {Order: pixel.RGBA, Type: pixel.UnormShort4444},
	{5, 5, 5, 1}:     {Order: pixel.RGBA, Type: pixel.UnormShort5551},
	{10, 10, 10, 2}:  {Order: pixel.RGBA, Type: pixel.UnormInt1010102Rev},
	{16, 16, 16, 16}: {Order: pixel.RGBA, Type: pixel.HalfFloat},
	{32, 32, 32, 32}: {Order: pixel.RGBA, Type: pixel.Float},
}

func (s SurfaceConfig) formats() (surfaceFormats, error) {
	var f surfaceFormats
	if s.Width < 0 || s.Height < 0 || s.Samples < 0 || s.Samples > rr.MaxSamples {
		return f, fmt.Errorf("%w: surface %dx%d with %d samples", ErrInvalidConfig, s.Width, s.Height, s.Samples)
	}

	rgba := [4]int{s.RedBits, s.GreenBits, s.BlueBits, s.AlphaBits}
	if rgba != [4]int{} {
		cf, ok := colorSurfaceFormats[rgba]
		if !ok {
			return f, fmt.Errorf("%w: unsupported color bits %v", ErrInvalidConfig, rgba)
		}
		f.color, f.hasColor = cf, true
	}

	switch {
	case s.DepthBits == 24 && s.StencilBits == 8:
		ds := pixel.Format{Order: pixel.DS, Type: pixel.UnsignedInt248}
		f.depth, f.stencil = ds, ds
		f.hasDepth, f.hasStencil, f.combined = true, true, true
		return f, nil
	case s.DepthBits == 32 && s.StencilBits == 8:
		ds := pixel.Format{Order: pixel.DS, Type: pixel.Float32UnsignedInt248Rev}
		f.depth, f.stencil = ds, ds
		f.hasDepth, f.hasStencil, f.combined = true, true, true
		return f, nil
	}

	switch s.DepthBits {
	case 0:
	case 16:
		f.depth, f.hasDepth = pixel.Format{Order: pixel.D, Type: pixel.UnormInt16}, true
	case 24:
		f.depth, f.hasDepth = pixel.Format{Order: pixel.D, Type: pixel.UnsignedInt248}, true
	case 32:
		f.depth, f.hasDepth = pixel.Format{Order: pixel.D, Type: pixel.Float}, true
	default:
		return f, fmt.Errorf("%w: unsupported depth bits %d", ErrInvalidConfig, s.DepthBits)
	}
	switch s.StencilBits {
	case 0:
	case 8:
		f.stencil, f.hasStencil = pixel.Format{Order: pixel.S, Type: pixel.UnsignedInt8}, true
	default:
		return f, fmt.Errorf("%w: unsupported stencil bits %d", ErrInvalidConfig, s.StencilBits)
	}
	return f, nil
}
