// Package blend implements GL color blending on float colors: fixed-function
// blend factors and equations, and the KHR_blend_equation_advanced modes.
package blend

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glref/vec"
)

// Factor is a fixed-function blend factor.
type Factor uint8

const (
	Zero Factor = iota
	One
	SrcColor
	OneMinusSrcColor
	DstColor
	OneMinusDstColor
	SrcAlpha
	OneMinusSrcAlpha
	DstAlpha
	OneMinusDstAlpha
	ConstantColor
	OneMinusConstantColor
	ConstantAlpha
	OneMinusConstantAlpha
	SrcAlphaSaturate
)

// Component is the blend setup of either the RGB or the alpha channels.
type Component struct {
	Src Factor
	Dst Factor
	Op  gputypes.BlendOperation
}

// State is the full fixed-function blend setup.
type State struct {
	RGB   Component
	Alpha Component
}

// DefaultState returns GL's initial blend state: ONE, ZERO, FUNC_ADD.
func DefaultState() State {
	c := Component{Src: One, Dst: Zero, Op: gputypes.BlendOperationAdd}
	return State{RGB: c, Alpha: c}
}

// Fixed blends src over dst with the fixed-function equation. Inputs are
// expected to be clamped already when the target is fixed-point.
func Fixed(st State, src, dst, constant vec.Vec4) vec.Vec4 {
	var out vec.Vec4
	for i := range 3 {
		sf := factor(st.RGB.Src, i, src, dst, constant)
		df := factor(st.RGB.Dst, i, src, dst, constant)
		out[i] = equation(st.RGB.Op, src[i], dst[i], sf, df)
	}
	sf := factor(st.Alpha.Src, 3, src, dst, constant)
	df := factor(st.Alpha.Dst, 3, src, dst, constant)
	out[3] = equation(st.Alpha.Op, src[3], dst[3], sf, df)
	return out
}

func equation(op gputypes.BlendOperation, s, d, sf, df float32) float32 {
	switch op {
	case gputypes.BlendOperationSubtract:
		return s*sf - d*df
	case gputypes.BlendOperationReverseSubtract:
		return d*df - s*sf
	case gputypes.BlendOperationMin:
		return min(s, d)
	case gputypes.BlendOperationMax:
		return max(s, d)
	default:
		return s*sf + d*df
	}
}

// factor returns the weight for channel i.
func factor(f Factor, i int, src, dst, constant vec.Vec4) float32 {
	switch f {
	case Zero:
		return 0
	case One:
		return 1
	case SrcColor:
		return src[i]
	case OneMinusSrcColor:
		return 1 - src[i]
	case DstColor:
		return dst[i]
	case OneMinusDstColor:
		return 1 - dst[i]
	case SrcAlpha:
		return src[3]
	case OneMinusSrcAlpha:
		return 1 - src[3]
	case DstAlpha:
		return dst[3]
	case OneMinusDstAlpha:
		return 1 - dst[3]
	case ConstantColor:
		return constant[i]
	case OneMinusConstantColor:
		return 1 - constant[i]
	case ConstantAlpha:
		return constant[3]
	case OneMinusConstantAlpha:
		return 1 - constant[3]
	case SrcAlphaSaturate:
		if i == 3 {
			return 1
		}
		return min(src[3], 1-dst[3])
	}
	return 0
}
