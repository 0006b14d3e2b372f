package glref

import (
	"github.com/gogpu/glref/internal/pixel"
	"github.com/gogpu/glref/rr"
	"github.com/gogpu/glref/vec"
)

// clearTarget validates the draw framebuffer for a clear and returns its
// surfaces and the rectangle to clear. ok is false when nothing is to be
// done.
func (c *ReferenceContext) clearTarget() (t rr.RenderTarget, rect rr.WindowRect, ok bool) {
	if status := framebufferStatus(c.drawFBO); status != FramebufferComplete {
		c.setError(InvalidFramebufferOperation)
		c.logger().Warn("glref: clear of incomplete framebuffer", "call", c.call, "status", status.String())
		return t, rect, false
	}
	if c.caps[RasterizerDiscard] {
		return t, rect, false
	}
	t = c.drawTarget()
	w, h := t.Size()
	rect = rr.WindowRect{Width: w, Height: h}
	if c.caps[ScissorTest] {
		rect = rect.Intersect(c.scissor)
	}
	return t, rect, !rect.Empty()
}

// Clear sets the selected buffers of the draw framebuffer to their clear
// values, honoring the scissor test and the write masks.
func (c *ReferenceContext) Clear(mask Enum) {
	c.enter("Clear")
	if mask&^(ColorBufferBit|DepthBufferBit|StencilBufferBit) != 0 {
		c.setError(InvalidValue)
		return
	}
	t, rect, ok := c.clearTarget()
	if !ok {
		return
	}
	if mask&ColorBufferBit != 0 {
		cv := colorVec(c.clearColor)
		for _, dst := range t.Color {
			if dst.Empty() || dst.Format().IsInteger() {
				continue
			}
			rr.ClearColor(dst, rect, cv, c.colorWriteMask())
		}
	}
	if mask&DepthBufferBit != 0 && c.depthMask && !t.Depth.Empty() {
		rr.ClearDepth(t.Depth, rect, c.clearDepth)
	}
	if mask&StencilBufferBit != 0 && !t.Stencil.Empty() {
		rr.ClearStencil(t.Stencil, rect, c.clearStencil, c.stencil[rr.FaceFront].writeMask)
	}
	c.logger().Debug("glref: clear", "mask", uint32(mask), "x", rect.X, "y", rect.Y, "width", rect.Width, "height", rect.Height)
}

// clearColorBuffer returns draw buffer i of t for a ClearBuffer call, or an
// empty surface when it is not of class want.
func (c *ReferenceContext) clearColorBuffer(t rr.RenderTarget, i int, want func(pixel.Format) bool) rr.MultisampleAccess {
	if i >= len(t.Color) || t.Color[i].Empty() || !want(t.Color[i].Format()) {
		return rr.MultisampleAccess{}
	}
	return t.Color[i]
}

func (c *ReferenceContext) validDrawBuffer(drawBuffer int) bool {
	if drawBuffer < 0 || drawBuffer >= c.cfg.Limits.MaxDrawBuffers {
		c.setError(InvalidValue)
		return false
	}
	return true
}

// ClearBufferiv clears a signed integer color buffer or the stencil buffer.
func (c *ReferenceContext) ClearBufferiv(buffer Enum, drawBuffer int, value []int32) {
	c.enter("ClearBufferiv")
	switch buffer {
	case Color:
		if !c.validDrawBuffer(drawBuffer) {
			return
		}
		if len(value) < 4 {
			c.setError(InvalidValue)
			return
		}
		t, rect, ok := c.clearTarget()
		if !ok {
			return
		}
		isSigned := func(f pixel.Format) bool { return f.Class() == pixel.ClassSignedInteger }
		if dst := c.clearColorBuffer(t, drawBuffer, isSigned); !dst.Empty() {
			rr.ClearColorInt(dst, rect, vec.IVec4{value[0], value[1], value[2], value[3]}, c.colorWriteMask())
		}
	case Stencil:
		if drawBuffer != 0 || len(value) < 1 {
			c.setError(InvalidValue)
			return
		}
		t, rect, ok := c.clearTarget()
		if ok && !t.Stencil.Empty() {
			rr.ClearStencil(t.Stencil, rect, value[0], c.stencil[rr.FaceFront].writeMask)
		}
	default:
		c.setError(InvalidEnum)
	}
}

// ClearBufferuiv clears an unsigned integer color buffer.
func (c *ReferenceContext) ClearBufferuiv(buffer Enum, drawBuffer int, value []uint32) {
	c.enter("ClearBufferuiv")
	if buffer != Color {
		c.setError(InvalidEnum)
		return
	}
	if !c.validDrawBuffer(drawBuffer) {
		return
	}
	if len(value) < 4 {
		c.setError(InvalidValue)
		return
	}
	t, rect, ok := c.clearTarget()
	if !ok {
		return
	}
	isUnsigned := func(f pixel.Format) bool { return f.Class() == pixel.ClassUnsignedInteger }
	if dst := c.clearColorBuffer(t, drawBuffer, isUnsigned); !dst.Empty() {
		rr.ClearColorUint(dst, rect, vec.UVec4{value[0], value[1], value[2], value[3]}, c.colorWriteMask())
	}
}

// ClearBufferfv clears a floating-point or normalized color buffer, or the
// depth buffer.
func (c *ReferenceContext) ClearBufferfv(buffer Enum, drawBuffer int, value []float32) {
	c.enter("ClearBufferfv")
	switch buffer {
	case Color:
		if !c.validDrawBuffer(drawBuffer) {
			return
		}
		if len(value) < 4 {
			c.setError(InvalidValue)
			return
		}
		t, rect, ok := c.clearTarget()
		if !ok {
			return
		}
		isFloat := func(f pixel.Format) bool { return !f.IsInteger() }
		if dst := c.clearColorBuffer(t, drawBuffer, isFloat); !dst.Empty() {
			rr.ClearColor(dst, rect, vec.V4(value[0], value[1], value[2], value[3]), c.colorWriteMask())
		}
	case Depth:
		if drawBuffer != 0 || len(value) < 1 {
			c.setError(InvalidValue)
			return
		}
		t, rect, ok := c.clearTarget()
		if ok && c.depthMask && !t.Depth.Empty() {
			rr.ClearDepth(t.Depth, rect, clamp01(value[0]))
		}
	default:
		c.setError(InvalidEnum)
	}
}

// ClearBufferfi clears the depth and stencil buffers together.
func (c *ReferenceContext) ClearBufferfi(buffer Enum, drawBuffer int, depth float32, stencil int32) {
	c.enter("ClearBufferfi")
	if buffer != DepthStencil {
		c.setError(InvalidEnum)
		return
	}
	if drawBuffer != 0 {
		c.setError(InvalidValue)
		return
	}
	t, rect, ok := c.clearTarget()
	if !ok {
		return
	}
	if c.depthMask && !t.Depth.Empty() {
		rr.ClearDepth(t.Depth, rect, clamp01(depth))
	}
	if !t.Stencil.Empty() {
		rr.ClearStencil(t.Stencil, rect, stencil, c.stencil[rr.FaceFront].writeMask)
	}
}
