package rr

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glref/internal/blend"
	"github.com/gogpu/glref/vec"
)

// WindowRect is a rectangle in window coordinates (origin bottom-left).
type WindowRect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether pixel (x, y) lies inside the rectangle.
func (r WindowRect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.Width && y < r.Y+r.Height
}

// Intersect returns the overlap of two rectangles.
func (r WindowRect) Intersect(o WindowRect) WindowRect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.Width, o.X+o.Width), min(r.Y+r.Height, o.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return WindowRect{X: x0, Y: y0}
	}
	return WindowRect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Empty reports whether the rectangle covers no pixels.
func (r WindowRect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// StencilState is the stencil configuration of one face.
type StencilState struct {
	gputypes.StencilFaceState
	Ref       int
	CompMask  uint32
	WriteMask uint32
}

// DefaultStencilState returns GL's initial stencil state.
func DefaultStencilState() StencilState {
	return StencilState{
		StencilFaceState: gputypes.StencilFaceState{
			Compare:     gputypes.CompareFunctionAlways,
			FailOp:      gputypes.StencilOperationKeep,
			DepthFailOp: gputypes.StencilOperationKeep,
			PassOp:      gputypes.StencilOperationKeep,
		},
		CompMask:  ^uint32(0),
		WriteMask: ^uint32(0),
	}
}

// Face indexes per-face state.
type Face int

const (
	FaceFront Face = iota
	FaceBack
)

// BlendMode selects between no blending and the two blend models.
type BlendMode uint8

const (
	BlendNone BlendMode = iota
	BlendStandard
	BlendAdvanced
)

// FragmentOperationState configures the per-fragment pipeline.
type FragmentOperationState struct {
	ScissorTestEnabled bool
	ScissorRect        WindowRect

	StencilTestEnabled bool
	Stencil            [2]StencilState

	DepthTestEnabled bool
	DepthFunc        gputypes.CompareFunction
	DepthMask        bool

	BlendMode     BlendMode
	Blend         blend.State
	BlendColor    vec.Vec4
	AdvancedBlend blend.Advanced

	ColorMask gputypes.ColorWriteMask
}

// ViewportState maps normalized device coordinates to the window.
type ViewportState struct {
	Rect  WindowRect
	ZNear float32
	ZFar  float32
}

// PolygonOffsetState configures depth offset for triangles.
type PolygonOffsetState struct {
	Enabled bool
	Factor  float32
	Units   float32
}

// RestartState configures primitive restart.
type RestartState struct {
	Enabled bool
	Index   uint32
}

// RenderState is the complete fixed-function state of a draw call.
type RenderState struct {
	FrontFace        gputypes.FrontFace
	CullMode         gputypes.CullMode
	CullFrontAndBack bool

	Viewport      ViewportState
	PolygonOffset PolygonOffsetState
	Restart       RestartState
	LineWidth     float32

	FragOps FragmentOperationState
}

// NewRenderState returns GL's initial state for a viewport.
func NewRenderState(viewport WindowRect) RenderState {
	return RenderState{
		FrontFace: gputypes.FrontFaceCCW,
		CullMode:  gputypes.CullModeNone,
		Viewport:  ViewportState{Rect: viewport, ZNear: 0, ZFar: 1},
		LineWidth: 1,
		FragOps: FragmentOperationState{
			ScissorRect: viewport,
			Stencil:     [2]StencilState{DefaultStencilState(), DefaultStencilState()},
			DepthFunc:   gputypes.CompareFunctionLess,
			DepthMask:   true,
			Blend:       blend.DefaultState(),
			ColorMask:   gputypes.ColorWriteMaskAll,
		},
	}
}
