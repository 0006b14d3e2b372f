package rr

import (
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glref/internal/blend"
	"github.com/gogpu/glref/internal/pixel"
	"github.com/gogpu/glref/internal/texture"
	"github.com/gogpu/glref/vec"
)

// FragmentProcessor applies the per-sample operations to shaded packets:
// stencil test, depth test, blending, color mask and the final write.
// Scissoring happens earlier, during rasterization, so culled fragments
// never reach the processor.
type FragmentProcessor struct{}

// FragmentBatch is a set of shaded packets from one primitive.
type FragmentBatch struct {
	Packets     []FragmentPacket
	Context     *FragmentShadingContext
	OutputTypes []GenericVecType
	WritesDepth bool
	Face        Face
}

// Render processes every covered sample of the batch in packet order.
func (fp *FragmentProcessor) Render(target *RenderTarget, state *FragmentOperationState, in *FragmentBatch) {
	n := target.NumSamples()
	st := &state.Stencil[in.Face]
	stencilOn := state.StencilTestEnabled && !target.Stencil.Empty()
	depthOn := state.DepthTestEnabled && !target.Depth.Empty()

	for pi := range in.Packets {
		p := &in.Packets[pi]
		for lane := range 4 {
			if !p.LaneCovered(lane, n) {
				continue
			}
			x, y := p.Position[0]+lane&1, p.Position[1]+lane>>1
			for s := range n {
				if p.Coverage&(1<<(lane*n+s)) == 0 {
					continue
				}
				depth := p.depth[lane*n+s]
				if in.WritesDepth {
					depth = in.Context.depths[pi*4+lane]
				}
				if stencilOn && !stencilTest(target.Stencil, st, s, x, y) {
					updateStencil(target.Stencil, st, st.FailOp, s, x, y)
					continue
				}
				if depthOn {
					if !depthTest(target.Depth, state, depth, s, x, y) {
						if stencilOn {
							updateStencil(target.Stencil, st, st.DepthFailOp, s, x, y)
						}
						continue
					}
					if state.DepthMask {
						target.Depth.Raw().SetPixDepth(depth, s, x, y)
					}
				}
				if stencilOn {
					updateStencil(target.Stencil, st, st.PassOp, s, x, y)
				}
				for o, dst := range target.Color {
					if dst.Empty() || o >= len(in.OutputTypes) {
						continue
					}
					writeColor(dst, state, in.Context.output(pi, lane, o), s, x, y)
				}
			}
		}
	}
}

func stencilMax(buf MultisampleAccess) int32 {
	return int32(1)<<buf.Format().StencilBits() - 1
}

func stencilTest(buf MultisampleAccess, st *StencilState, s, x, y int) bool {
	maxv := stencilMax(buf)
	ref := clampInt32(int32(st.Ref), 0, maxv)
	mask := int32(st.CompMask) & maxv
	stored := buf.Raw().PixStencil(s, x, y)
	return compareInt(st.Compare, ref&mask, stored&mask)
}

// updateStencil applies op and writes the result through the write mask.
// Wrapping operations wrap at the buffer's bit width.
func updateStencil(buf MultisampleAccess, st *StencilState, op gputypes.StencilOperation, s, x, y int) {
	maxv := stencilMax(buf)
	old := buf.Raw().PixStencil(s, x, y)
	v := StencilOp(op, old, clampInt32(int32(st.Ref), 0, maxv), maxv)
	wm := int32(st.WriteMask) & maxv
	buf.Raw().SetPixStencil(old&^wm|v&wm, s, x, y)
}

// StencilOp computes the new stencil value for a buffer whose largest value
// is maxv (2^bits - 1).
func StencilOp(op gputypes.StencilOperation, v, ref, maxv int32) int32 {
	switch op {
	case gputypes.StencilOperationZero:
		return 0
	case gputypes.StencilOperationReplace:
		return ref
	case gputypes.StencilOperationInvert:
		return ^v & maxv
	case gputypes.StencilOperationIncrementClamp:
		return min(v+1, maxv)
	case gputypes.StencilOperationDecrementClamp:
		return max(v-1, 0)
	case gputypes.StencilOperationIncrementWrap:
		return (v + 1) & maxv
	case gputypes.StencilOperationDecrementWrap:
		return (v - 1) & maxv
	}
	return v
}

func depthTest(buf MultisampleAccess, state *FragmentOperationState, depth float32, s, x, y int) bool {
	d := quantizeDepth(buf.Format(), depth)
	return texture.CompareDepth(state.DepthFunc, d, buf.Raw().PixDepth(s, x, y))
}

// quantizeDepth clamps depth to [0, 1] and rounds it to the buffer's
// precision so comparisons see the value that would be stored.
func quantizeDepth(f pixel.Format, d float32) float32 {
	d = min(max(d, 0), 1)
	if f.Type == pixel.Float || f.Type == pixel.Float32UnsignedInt248Rev {
		return d
	}
	m := float64(uint64(1)<<f.DepthBits() - 1)
	return float32(math.Floor(float64(d)*m+0.5) / m)
}

func compareInt(fn gputypes.CompareFunction, ref, stored int32) bool {
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
	}
	return true
}

func clampInt32(v, lo, hi int32) int32 {
	return min(max(v, lo), hi)
}

func writeColor(dst MultisampleAccess, state *FragmentOperationState, src GenericVec4, s, x, y int) {
	mask := state.ColorMask
	if mask == gputypes.ColorWriteMaskNone {
		return
	}
	raw := dst.Raw()
	switch dst.Format().Class() {
	case pixel.ClassSignedInteger:
		c := src.Int()
		if mask != gputypes.ColorWriteMaskAll {
			old := raw.PixelInt(s, x, y)
			for i := range 4 {
				if !channelWritten(mask, i) {
					c[i] = old[i]
				}
			}
		}
		raw.SetPixelInt(c, s, x, y)
		return
	case pixel.ClassUnsignedInteger:
		c := src.Uint()
		if mask != gputypes.ColorWriteMaskAll {
			old := raw.PixelUint(s, x, y)
			for i := range 4 {
				if !channelWritten(mask, i) {
					c[i] = old[i]
				}
			}
		}
		raw.SetPixelUint(c, s, x, y)
		return
	}

	c := src.Float()
	constant := state.BlendColor
	switch dst.Format().Class() {
	case pixel.ClassUnorm:
		c = c.Clamp(0, 1)
		constant = constant.Clamp(0, 1)
	case pixel.ClassSnorm:
		c = c.Clamp(-1, 1)
		constant = constant.Clamp(-1, 1)
	}

	var old vec.Vec4
	if state.BlendMode != BlendNone || mask != gputypes.ColorWriteMaskAll {
		old = raw.Pixel(s, x, y)
	}
	switch state.BlendMode {
	case BlendStandard:
		c = blend.Fixed(state.Blend, c, old, constant)
	case BlendAdvanced:
		c = blend.BlendAdvanced(state.AdvancedBlend, c.Clamp(0, 1), old.Clamp(0, 1))
	}
	for i := range 4 {
		if !channelWritten(mask, i) {
			c[i] = old[i]
		}
	}
	raw.SetPixel(c, s, x, y)
}

func channelWritten(mask gputypes.ColorWriteMask, i int) bool {
	return mask&(gputypes.ColorWriteMaskRed<<i) != 0
}
