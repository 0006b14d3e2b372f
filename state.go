package glref

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glref/internal/blend"
	"github.com/gogpu/glref/rr"
	"github.com/gogpu/glref/vec"
)

// Viewport sets the viewport rectangle.
func (c *ReferenceContext) Viewport(x, y, width, height int) {
	c.enter("Viewport")
	if width < 0 || height < 0 {
		c.setError(InvalidValue)
		return
	}
	c.viewport = rr.WindowRect{X: x, Y: y, Width: width, Height: height}
}

// Scissor sets the scissor box.
func (c *ReferenceContext) Scissor(x, y, width, height int) {
	c.enter("Scissor")
	if width < 0 || height < 0 {
		c.setError(InvalidValue)
		return
	}
	c.scissor = rr.WindowRect{X: x, Y: y, Width: width, Height: height}
}

// DepthRangef sets the depth range, clamped to [0, 1].
func (c *ReferenceContext) DepthRangef(near, far float32) {
	c.enter("DepthRangef")
	c.depthNear = clamp01(near)
	c.depthFar = clamp01(far)
}

// ClearColor sets the color used by Clear.
func (c *ReferenceContext) ClearColor(r, g, b, a float32) {
	c.enter("ClearColor")
	c.clearColor = gputypes.Color{R: float64(r), G: float64(g), B: float64(b), A: float64(a)}
}

// ClearDepthf sets the depth used by Clear, clamped to [0, 1].
func (c *ReferenceContext) ClearDepthf(d float32) {
	c.enter("ClearDepthf")
	c.clearDepth = clamp01(d)
}

// ClearStencil sets the stencil value used by Clear.
func (c *ReferenceContext) ClearStencil(s int32) {
	c.enter("ClearStencil")
	c.clearStencil = s
}

// ColorMask enables or disables writing of each color channel.
func (c *ReferenceContext) ColorMask(r, g, b, a bool) {
	c.enter("ColorMask")
	c.colorMask = [4]bool{r, g, b, a}
}

// DepthMask enables or disables depth writes.
func (c *ReferenceContext) DepthMask(flag bool) {
	c.enter("DepthMask")
	c.depthMask = flag
}

// DepthFunc sets the depth comparison.
func (c *ReferenceContext) DepthFunc(fn Enum) {
	c.enter("DepthFunc")
	if _, ok := compareFunction(fn); !ok {
		c.setError(InvalidEnum)
		return
	}
	c.depthFunc = fn
}

// stencilFaces returns the faces selected by a GL face enum.
func (c *ReferenceContext) stencilFaces(face Enum) []*stencilFace {
	switch face {
	case Front:
		return []*stencilFace{&c.stencil[rr.FaceFront]}
	case Back:
		return []*stencilFace{&c.stencil[rr.FaceBack]}
	case FrontAndBack:
		return []*stencilFace{&c.stencil[rr.FaceFront], &c.stencil[rr.FaceBack]}
	}
	c.setError(InvalidEnum)
	return nil
}

// StencilMask sets the stencil write mask of both faces.
func (c *ReferenceContext) StencilMask(mask uint32) {
	c.enter("StencilMask")
	c.stencilMask(FrontAndBack, mask)
}

// StencilMaskSeparate sets the stencil write mask of one or both faces.
func (c *ReferenceContext) StencilMaskSeparate(face Enum, mask uint32) {
	c.enter("StencilMaskSeparate")
	c.stencilMask(face, mask)
}

func (c *ReferenceContext) stencilMask(face Enum, mask uint32) {
	for _, f := range c.stencilFaces(face) {
		f.writeMask = mask
	}
}

// StencilFunc sets the stencil test of both faces.
func (c *ReferenceContext) StencilFunc(fn Enum, ref int32, mask uint32) {
	c.enter("StencilFunc")
	c.stencilFunc(FrontAndBack, fn, ref, mask)
}

// StencilFuncSeparate sets the stencil test of one or both faces.
func (c *ReferenceContext) StencilFuncSeparate(face, fn Enum, ref int32, mask uint32) {
	c.enter("StencilFuncSeparate")
	c.stencilFunc(face, fn, ref, mask)
}

func (c *ReferenceContext) stencilFunc(face, fn Enum, ref int32, mask uint32) {
	if _, ok := compareFunction(fn); !ok {
		c.setError(InvalidEnum)
		return
	}
	for _, f := range c.stencilFaces(face) {
		f.fn, f.ref, f.valueMask = fn, ref, mask
	}
}

var stencilOps = map[Enum]gputypes.StencilOperation{
	Keep:     gputypes.StencilOperationKeep,
	Zero:     gputypes.StencilOperationZero,
	Replace:  gputypes.StencilOperationReplace,
	Incr:     gputypes.StencilOperationIncrementClamp,
	Decr:     gputypes.StencilOperationDecrementClamp,
	Invert:   gputypes.StencilOperationInvert,
	IncrWrap: gputypes.StencilOperationIncrementWrap,
	DecrWrap: gputypes.StencilOperationDecrementWrap,
}

// StencilOp sets the stencil operations of both faces.
func (c *ReferenceContext) StencilOp(sfail, dpfail, dppass Enum) {
	c.enter("StencilOp")
	c.stencilOp(FrontAndBack, sfail, dpfail, dppass)
}

// StencilOpSeparate sets the stencil operations of one or both faces.
func (c *ReferenceContext) StencilOpSeparate(face, sfail, dpfail, dppass Enum) {
	c.enter("StencilOpSeparate")
	c.stencilOp(face, sfail, dpfail, dppass)
}

func (c *ReferenceContext) stencilOp(face, sfail, dpfail, dppass Enum) {
	for _, op := range []Enum{sfail, dpfail, dppass} {
		if _, ok := stencilOps[op]; !ok {
			c.setError(InvalidEnum)
			return
		}
	}
	for _, f := range c.stencilFaces(face) {
		f.sfail, f.dpfail, f.dppass = sfail, dpfail, dppass
	}
}

var (
	blendOperations = map[Enum]gputypes.BlendOperation{
		FuncAdd:             gputypes.BlendOperationAdd,
		FuncSubtract:        gputypes.BlendOperationSubtract,
		FuncReverseSubtract: gputypes.BlendOperationReverseSubtract,
		FuncMin:             gputypes.BlendOperationMin,
		FuncMax:             gputypes.BlendOperationMax,
	}
	advancedModes = map[Enum]blend.Advanced{
		Multiply:      blend.Multiply,
		Screen:        blend.Screen,
		Overlay:       blend.Overlay,
		Darken:        blend.Darken,
		Lighten:       blend.Lighten,
		ColorDodge:    blend.ColorDodge,
		ColorBurn:     blend.ColorBurn,
		HardLight:     blend.HardLight,
		SoftLight:     blend.SoftLight,
		Difference:    blend.Difference,
		Exclusion:     blend.Exclusion,
		HSLHue:        blend.HSLHue,
		HSLSaturation: blend.HSLSaturation,
		HSLColor:      blend.HSLColor,
		HSLLuminosity: blend.HSLLuminosity,
	}
	blendFactors = map[Enum]blend.Factor{
		Zero:                  blend.Zero,
		One:                   blend.One,
		SrcColor:              blend.SrcColor,
		OneMinusSrcColor:      blend.OneMinusSrcColor,
		DstColor:              blend.DstColor,
		OneMinusDstColor:      blend.OneMinusDstColor,
		SrcAlpha:              blend.SrcAlpha,
		OneMinusSrcAlpha:      blend.OneMinusSrcAlpha,
		DstAlpha:              blend.DstAlpha,
		OneMinusDstAlpha:      blend.OneMinusDstAlpha,
		ConstantColor:         blend.ConstantColor,
		OneMinusConstantColor: blend.OneMinusConstantColor,
		ConstantAlpha:         blend.ConstantAlpha,
		OneMinusConstantAlpha: blend.OneMinusConstantAlpha,
		SrcAlphaSaturate:      blend.SrcAlphaSaturate,
	}
)

// BlendEquation sets the RGB and alpha blend equations. Advanced modes are
// only accepted here and apply to all channels.
func (c *ReferenceContext) BlendEquation(mode Enum) {
	c.enter("BlendEquation")
	_, fixed := blendOperations[mode]
	_, advanced := advancedModes[mode]
	if !fixed && !advanced {
		c.setError(InvalidEnum)
		return
	}
	c.blendEqRGB, c.blendEqAlpha = mode, mode
}

// BlendEquationSeparate sets the RGB and alpha blend equations separately.
func (c *ReferenceContext) BlendEquationSeparate(modeRGB, modeAlpha Enum) {
	c.enter("BlendEquationSeparate")
	_, okRGB := blendOperations[modeRGB]
	_, okAlpha := blendOperations[modeAlpha]
	if !okRGB || !okAlpha {
		c.setError(InvalidEnum)
		return
	}
	c.blendEqRGB, c.blendEqAlpha = modeRGB, modeAlpha
}

// BlendFunc sets the source and destination factors of all channels.
func (c *ReferenceContext) BlendFunc(src, dst Enum) {
	c.enter("BlendFunc")
	c.blendFunc(src, dst, src, dst)
}

// BlendFuncSeparate sets the RGB and alpha factors separately.
func (c *ReferenceContext) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha Enum) {
	c.enter("BlendFuncSeparate")
	c.blendFunc(srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (c *ReferenceContext) blendFunc(srcRGB, dstRGB, srcAlpha, dstAlpha Enum) {
	for _, f := range []Enum{srcRGB, dstRGB, srcAlpha, dstAlpha} {
		if _, ok := blendFactors[f]; !ok {
			c.setError(InvalidEnum)
			return
		}
	}
	c.blendSrcRGB, c.blendDstRGB = srcRGB, dstRGB
	c.blendSrcA, c.blendDstA = srcAlpha, dstAlpha
}

// BlendColor sets the constant blend color.
func (c *ReferenceContext) BlendColor(r, g, b, a float32) {
	c.enter("BlendColor")
	c.blendColor = gputypes.Color{R: float64(r), G: float64(g), B: float64(b), A: float64(a)}
}

// CullFace selects the faces removed when culling is enabled.
func (c *ReferenceContext) CullFace(mode Enum) {
	c.enter("CullFace")
	switch mode {
	case Front, Back, FrontAndBack:
		c.cullFace = mode
	default:
		c.setError(InvalidEnum)
	}
}

// FrontFace sets the winding of front-facing triangles.
func (c *ReferenceContext) FrontFace(mode Enum) {
	c.enter("FrontFace")
	switch mode {
	case CW, CCW:
		c.frontFace = mode
	default:
		c.setError(InvalidEnum)
	}
}

// PolygonOffset sets the depth offset applied to triangles.
func (c *ReferenceContext) PolygonOffset(factor, units float32) {
	c.enter("PolygonOffset")
	c.polyFactor, c.polyUnits = factor, units
}

// LineWidth sets the line width. Only width 1 is rasterized; other
// positive widths are accepted and stored.
func (c *ReferenceContext) LineWidth(width float32) {
	c.enter("LineWidth")
	if width <= 0 {
		c.setError(InvalidValue)
		return
	}
	c.lineWidth = width
}

// PrimitiveRestartIndex sets the index that restarts strips and fans when
// PRIMITIVE_RESTART is enabled.
func (c *ReferenceContext) PrimitiveRestartIndex(index uint32) {
	c.enter("PrimitiveRestartIndex")
	c.restartIndex = index
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}

func colorVec(c gputypes.Color) vec.Vec4 {
	return vec.V4(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
}

// colorWriteMask converts the ColorMask flags.
func (c *ReferenceContext) colorWriteMask() gputypes.ColorWriteMask {
	var m gputypes.ColorWriteMask
	bits := [4]gputypes.ColorWriteMask{
		gputypes.ColorWriteMaskRed, gputypes.ColorWriteMaskGreen,
		gputypes.ColorWriteMaskBlue, gputypes.ColorWriteMaskAlpha,
	}
	for i, on := range c.colorMask {
		if on {
			m |= bits[i]
		}
	}
	return m
}

// renderState builds the rasterizer state for a draw with restart index
// restart. The restart index only matters for indexed draws.
func (c *ReferenceContext) renderState(restart rr.RestartState) *rr.RenderState {
	st := rr.NewRenderState(c.viewport)
	st.Viewport.ZNear, st.Viewport.ZFar = c.depthNear, c.depthFar
	if c.frontFace == CW {
		st.FrontFace = gputypes.FrontFaceCW
	}
	if c.caps[CullFace] {
		switch c.cullFace {
		case Front:
			st.CullMode = gputypes.CullModeFront
		case Back:
			st.CullMode = gputypes.CullModeBack
		case FrontAndBack:
			st.CullFrontAndBack = true
		}
	}
	st.PolygonOffset = rr.PolygonOffsetState{
		Enabled: c.caps[PolygonOffsetFill],
		Factor:  c.polyFactor,
		Units:   c.polyUnits,
	}
	st.Restart = restart
	st.LineWidth = c.lineWidth

	ops := &st.FragOps
	ops.ScissorTestEnabled = c.caps[ScissorTest]
	ops.ScissorRect = c.scissor
	ops.StencilTestEnabled = c.caps[StencilTest]
	for i, f := range c.stencil {
		fn, _ := compareFunction(f.fn)
		ops.Stencil[i] = rr.StencilState{
			StencilFaceState: gputypes.StencilFaceState{
				Compare:     fn,
				FailOp:      stencilOps[f.sfail],
				DepthFailOp: stencilOps[f.dpfail],
				PassOp:      stencilOps[f.dppass],
			},
			Ref:       int(f.ref),
			CompMask:  f.valueMask,
			WriteMask: f.writeMask,
		}
	}
	ops.DepthTestEnabled = c.caps[DepthTest]
	ops.DepthFunc, _ = compareFunction(c.depthFunc)
	ops.DepthMask = c.depthMask
	ops.BlendColor = colorVec(c.blendColor)
	if c.caps[Blend] {
		if mode, ok := advancedModes[c.blendEqRGB]; ok {
			ops.BlendMode = rr.BlendAdvanced
			ops.AdvancedBlend = mode
		} else {
			ops.BlendMode = rr.BlendStandard
			ops.Blend = blend.State{
				RGB:   blend.Component{Src: blendFactors[c.blendSrcRGB], Dst: blendFactors[c.blendDstRGB], Op: blendOperations[c.blendEqRGB]},
				Alpha: blend.Component{Src: blendFactors[c.blendSrcA], Dst: blendFactors[c.blendDstA], Op: blendOperations[c.blendEqAlpha]},
			}
		}
	}
	ops.ColorMask = c.colorWriteMask()
	return &st
}
