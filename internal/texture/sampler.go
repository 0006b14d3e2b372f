package texture

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glref/vec"
)

// WrapMode selects how out-of-range texel coordinates are resolved.
type WrapMode uint8

const (
	Repeat WrapMode = iota
	ClampToEdge
	MirroredRepeat
	ClampToBorder
)

// FilterMode is a GL minification or magnification filter.
type FilterMode uint8

const (
	Nearest FilterMode = iota
	Linear
	NearestMipmapNearest
	LinearMipmapNearest
	NearestMipmapLinear
	LinearMipmapLinear
)

// String returns a string representation of the filter mode.
func (f FilterMode) String() string {
	switch f {
	case Nearest:
		return "Nearest"
	case Linear:
		return "Linear"
	case NearestMipmapNearest:
		return "NearestMipmapNearest"
	case LinearMipmapNearest:
		return "LinearMipmapNearest"
	case NearestMipmapLinear:
		return "NearestMipmapLinear"
	case LinearMipmapLinear:
		return "LinearMipmapLinear"
	default:
		return "Unknown"
	}
}

// UsesMipmaps reports whether the filter reads levels beyond the base.
func (f FilterMode) UsesMipmaps() bool {
	return f >= NearestMipmapNearest
}

// levelFilter returns the filter used inside one level.
func (f FilterMode) levelFilter() FilterMode {
	switch f {
	case Linear, LinearMipmapNearest, LinearMipmapLinear:
		return Linear
	}
	return Nearest
}

// CompareMode enables depth comparison for depth textures.
type CompareMode uint8

const (
	CompareNone CompareMode = iota
	CompareRefToTexture
)

// DepthStencilMode selects which component of a depth/stencil texture is sampled.
type DepthStencilMode uint8

const (
	SampleDepth DepthStencilMode = iota
	SampleStencil
)

// Swizzle selects the source of one sampled component.
type Swizzle uint8

const (
	SwizzleRed Swizzle = iota
	SwizzleGreen
	SwizzleBlue
	SwizzleAlpha
	SwizzleZero
	SwizzleOne
)

// Sampler is the sampling state of a texture.
type Sampler struct {
	WrapS, WrapT, WrapR WrapMode
	MinFilter           FilterMode
	MagFilter           FilterMode

	MinLod  float32
	MaxLod  float32
	LodBias float32

	BorderColor vec.Vec4

	CompareMode CompareMode
	CompareFunc gputypes.CompareFunction

	// Seamless enables filtering across cube map face edges.
	Seamless bool

	DepthStencilMode DepthStencilMode
	Swizzle          [4]Swizzle
}

// DefaultSampler returns the initial GL sampler state.
func DefaultSampler() Sampler {
	return Sampler{
		WrapS:       Repeat,
		WrapT:       Repeat,
		WrapR:       Repeat,
		MinFilter:   NearestMipmapLinear,
		MagFilter:   Linear,
		MinLod:      -1000,
		MaxLod:      1000,
		CompareMode: CompareNone,
		CompareFunc: gputypes.CompareFunctionLessEqual,
		Swizzle:     [4]Swizzle{SwizzleRed, SwizzleGreen, SwizzleBlue, SwizzleAlpha},
	}
}

func (s *Sampler) applySwizzle(c vec.Vec4) vec.Vec4 {
	var out vec.Vec4
	for i, sw := range s.Swizzle {
		switch sw {
		case SwizzleZero:
			out[i] = 0
		case SwizzleOne:
			out[i] = 1
		default:
			out[i] = c[sw]
		}
	}
	return out
}

// CompareDepth evaluates a compare function as GL depth and shadow tests do:
// the function passes when ref <op> stored holds.
func CompareDepth(fn gputypes.CompareFunction, ref, stored float32) bool {
	switch fn {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionLess:
		return ref < stored
	case gputypes.CompareFunctionEqual:
		return ref == stored
	case gputypes.CompareFunctionLessEqual:
		return ref <= stored
	case gputypes.CompareFunctionGreater:
		return ref > stored
	case gputypes.CompareFunctionNotEqual:
		return ref != stored
	case gputypes.CompareFunctionGreaterEqual:
		return ref >= stored
	case gputypes.CompareFunctionAlways:
		return true
	}
	return false
}
