package glref

import (
	"math"

	"github.com/gogpu/glref/internal/pixel"
	"github.com/gogpu/glref/rr"
	"github.com/gogpu/glref/vec"
)

// blitRect is a blit rectangle given by two corners. x0 > x1 or y0 > y1
// flips the image.
type blitRect struct{ x0, y0, x1, y1 int }

type blitJob struct {
	kind Enum
	src  rr.MultisampleAccess
	dst  []rr.MultisampleAccess
}

// BlitFramebuffer copies a rectangle of the read framebuffer to the draw
// framebuffer, scaling and flipping as the rectangles require. Reading a
// multisampled framebuffer resolves it; the rectangles must then match.
// Only the scissor test applies.
func (c *ReferenceContext) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int, mask, filter Enum) {
	c.enter("BlitFramebuffer")
	if mask&^(ColorBufferBit|DepthBufferBit|StencilBufferBit) != 0 {
		c.setError(InvalidValue)
		return
	}
	if filter != Nearest && filter != Linear {
		c.setError(InvalidEnum)
		return
	}
	if filter == Linear && mask&(DepthBufferBit|StencilBufferBit) != 0 {
		c.setError(InvalidOperation)
		return
	}
	if framebufferStatus(c.readFBO) != FramebufferComplete || framebufferStatus(c.drawFBO) != FramebufferComplete {
		c.setError(InvalidFramebufferOperation)
		return
	}
	target := c.drawTarget()
	if target.NumSamples() > 1 {
		c.setError(InvalidOperation)
		return
	}

	var jobs []blitJob
	if mask&ColorBufferBit != 0 {
		src, _ := c.readBufferSurface(Color)
		if !src.Empty() {
			job := blitJob{kind: Color, src: src}
			for _, d := range target.Color {
				if d.Empty() {
					continue
				}
				if d.Format().IsInteger() != src.Format().IsInteger() ||
					d.Format().IsInteger() && d.Format().Class() != src.Format().Class() {
					c.setError(InvalidOperation)
					return
				}
				job.dst = append(job.dst, d)
			}
			if src.Format().IsInteger() && filter == Linear {
				c.setError(InvalidOperation)
				return
			}
			jobs = append(jobs, job)
		}
	}
	for _, kind := range []Enum{Depth, Stencil} {
		bit, dst := DepthBufferBit, target.Depth
		if kind == Stencil {
			bit, dst = StencilBufferBit, target.Stencil
		}
		if mask&bit == 0 {
			continue
		}
		src, _ := c.readBufferSurface(kind)
		if src.Empty() || dst.Empty() {
			continue
		}
		if src.Format() != dst.Format() {
			c.setError(InvalidOperation)
			return
		}
		jobs = append(jobs, blitJob{kind: kind, src: src, dst: []rr.MultisampleAccess{dst}})
	}

	s := blitRect{srcX0, srcY0, srcX1, srcY1}
	d := blitRect{dstX0, dstY0, dstX1, dstY1}
	for _, job := range jobs {
		if job.src.NumSamples() > 1 && s != d {
			c.setError(InvalidOperation)
			return
		}
	}

	w, h := target.Size()
	clip := rr.WindowRect{Width: w, Height: h}
	if c.caps[ScissorTest] {
		clip = clip.Intersect(c.scissor)
	}
	for _, job := range jobs {
		var src pixel.Access
		if job.src.NumSamples() > 1 {
			src = resolved(job.src)
		} else {
			src = job.src.ToSinglesample()
		}
		for _, dst := range job.dst {
			blitImage(dst.ToSinglesample(), d, src, s, clip, job.kind, filter)
		}
	}
	c.logger().Debug("glref: blit",
		"src", []int{srcX0, srcY0, srcX1, srcY1},
		"dst", []int{dstX0, dstY0, dstX1, dstY1},
		"mask", uint32(mask),
		"filter", filter.String())
}

// blitImage maps each pixel center of d to s and copies the selected
// channel. Destination pixels whose source falls outside src are left
// unchanged.
func blitImage(dst pixel.Access, d blitRect, src pixel.Access, s blitRect, clip rr.WindowRect, kind, filter Enum) {
	if d.x0 == d.x1 || d.y0 == d.y1 || s.x0 == s.x1 || s.y0 == s.y1 {
		return
	}
	sx := float64(s.x1-s.x0) / float64(d.x1-d.x0)
	sy := float64(s.y1-s.y0) / float64(d.y1-d.y0)
	x0, x1 := max(min(d.x0, d.x1), clip.X, 0), min(max(d.x0, d.x1), clip.X+clip.Width, dst.Width())
	y0, y1 := max(min(d.y0, d.y1), clip.Y, 0), min(max(d.y0, d.y1), clip.Y+clip.Height, dst.Height())
	class := src.Format().Class()
	for y := y0; y < y1; y++ {
		fy := float64(s.y0) + (float64(y)+0.5-float64(d.y0))*sy
		iy := int(math.Floor(fy))
		if iy < 0 || iy >= src.Height() {
			continue
		}
		for x := x0; x < x1; x++ {
			fx := float64(s.x0) + (float64(x)+0.5-float64(d.x0))*sx
			ix := int(math.Floor(fx))
			if ix < 0 || ix >= src.Width() {
				continue
			}
			switch {
			case kind == Depth:
				dst.SetPixDepth(src.PixDepth(ix, iy, 0), x, y, 0)
			case kind == Stencil:
				dst.SetPixStencil(src.PixStencil(ix, iy, 0), x, y, 0)
			case class == pixel.ClassSignedInteger:
				dst.SetPixelInt(src.PixelInt(ix, iy, 0), x, y, 0)
			case class == pixel.ClassUnsignedInteger:
				dst.SetPixelUint(src.PixelUint(ix, iy, 0), x, y, 0)
			case filter == Linear:
				dst.SetPixel(bilinear(src, fx-0.5, fy-0.5), x, y, 0)
			default:
				dst.SetPixel(src.Pixel(ix, iy, 0), x, y, 0)
			}
		}
	}
}

// bilinear filters src at texel-space (u, v), clamping to the edges.
func bilinear(src pixel.Access, u, v float64) vec.Vec4 {
	fu, fv := math.Floor(u), math.Floor(v)
	a, b := float32(u-fu), float32(v-fv)
	x0, y0 := int(fu), int(fv)
	at := func(x, y int) vec.Vec4 {
		return src.Pixel(min(max(x, 0), src.Width()-1), min(max(y, 0), src.Height()-1), 0)
	}
	top := at(x0, y0).Scale(1 - a).Add(at(x0+1, y0).Scale(a))
	bottom := at(x0, y0+1).Scale(1 - a).Add(at(x0+1, y0+1).Scale(a))
	return top.Scale(1 - b).Add(bottom.Scale(b))
}
