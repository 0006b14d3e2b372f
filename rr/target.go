package rr

import (
	"fmt"

	"github.com/gogpu/glref/internal/pixel"
	"github.com/gogpu/glref/vec"
)

// MultisampleAccess views a render target surface with samples as the
// innermost dimension: the underlying access is numSamples wide, width tall
// and height deep.
type MultisampleAccess struct {
	acc pixel.Access
}

// NewMultisampleAccess wraps an access laid out as samples x width x height.
func NewMultisampleAccess(acc pixel.Access) MultisampleAccess {
	if acc.Width() > MaxSamples {
		panic(fmt.Sprintf("rr: %d samples exceeds %d", acc.Width(), MaxSamples))
	}
	return MultisampleAccess{acc: acc}
}

// FromSinglesample views a 2D access as a one-sample surface.
func FromSinglesample(a pixel.Access) MultisampleAccess {
	if a.Empty() {
		return MultisampleAccess{}
	}
	ps := a.Format().PixelSize()
	return MultisampleAccess{
		acc: pixel.NewAccessWithPitch(a.Format(), 1, a.Width(), a.Height(), ps, a.RowPitch(), a.Data()),
	}
}

// AllocMultisample allocates a zeroed multisampled surface.
func AllocMultisample(format pixel.Format, samples, width, height int) MultisampleAccess {
	return NewMultisampleAccess(pixel.Alloc(format, samples, width, height))
}

// Raw returns the underlying samples x width x height access.
func (m MultisampleAccess) Raw() pixel.Access { return m.acc }

// Empty reports whether the surface has no storage.
func (m MultisampleAccess) Empty() bool { return m.acc.Empty() }

// Format returns the pixel format.
func (m MultisampleAccess) Format() pixel.Format { return m.acc.Format() }

// NumSamples returns the sample count.
func (m MultisampleAccess) NumSamples() int { return m.acc.Width() }

// Width returns the surface width in pixels.
func (m MultisampleAccess) Width() int { return m.acc.Height() }

// Height returns the surface height in pixels.
func (m MultisampleAccess) Height() int { return m.acc.Depth() }

// ToSinglesample returns a 2D view of a one-sample surface.
func (m MultisampleAccess) ToSinglesample() pixel.Access {
	if m.NumSamples() != 1 {
		panic(fmt.Sprintf("rr: ToSinglesample on %d-sample surface", m.NumSamples()))
	}
	a := m.acc
	return pixel.NewAccessWithPitch(a.Format(), a.Height(), a.Depth(), 1, a.SlicePitch(), a.SlicePitch()*a.Depth(), a.Data())
}

// Subregion restricts the surface to a window rectangle.
func (m MultisampleAccess) Subregion(r WindowRect) MultisampleAccess {
	return MultisampleAccess{acc: m.acc.Subregion(0, r.X, r.Y, m.NumSamples(), r.Width, r.Height)}
}

// Pixel reads one sample.
func (m MultisampleAccess) Pixel(sample, x, y int) vec.Vec4 { return m.acc.Pixel(sample, x, y) }

// SetPixel writes one sample.
func (m MultisampleAccess) SetPixel(c vec.Vec4, sample, x, y int) { m.acc.SetPixel(c, sample, x, y) }

// ResolveMultisample averages the samples of src into dst with a box filter.
// Integer formats take sample 0. Both surfaces must be the same size.
func ResolveMultisample(dst pixel.Access, src MultisampleAccess) {
	if dst.Width() != src.Width() || dst.Height() != src.Height() {
		panic(fmt.Sprintf("rr: resolve %dx%d into %dx%d", src.Width(), src.Height(), dst.Width(), dst.Height()))
	}
	n := src.NumSamples()
	f := src.Format()
	for y := range src.Height() {
		for x := range src.Width() {
			switch {
			case f.HasDepth() || f.HasStencil():
				resolveDepthStencil(dst, src, x, y)
			case f.Class() == pixel.ClassSignedInteger:
				dst.SetPixelInt(src.acc.PixelInt(0, x, y), x, y, 0)
			case f.Class() == pixel.ClassUnsignedInteger:
				dst.SetPixelUint(src.acc.PixelUint(0, x, y), x, y, 0)
			default:
				var sum vec.Vec4
				for s := range n {
					sum = sum.Add(src.acc.Pixel(s, x, y))
				}
				dst.SetPixel(sum.Scale(1/float32(n)), x, y, 0)
			}
		}
	}
	slogger().Debug("rr: multisample resolve", "samples", n, "width", src.Width(), "height", src.Height())
}

func resolveDepthStencil(dst pixel.Access, src MultisampleAccess, x, y int) {
	if src.Format().HasDepth() && dst.Format().HasDepth() {
		dst.SetPixDepth(src.acc.PixDepth(0, x, y), x, y, 0)
	}
	if src.Format().HasStencil() && dst.Format().HasStencil() {
		dst.SetPixStencil(src.acc.PixStencil(0, x, y), x, y, 0)
	}
}

// RenderTarget is the set of surfaces a draw call writes to. Color[i] is the
// destination of fragment output i; empty entries are not written.
type RenderTarget struct {
	Color   []MultisampleAccess
	Depth   MultisampleAccess
	Stencil MultisampleAccess
}

// NumSamples returns the common sample count of the attached surfaces.
func (t *RenderTarget) NumSamples() int {
	for _, c := range t.Color {
		if !c.Empty() {
			return c.NumSamples()
		}
	}
	if !t.Depth.Empty() {
		return t.Depth.NumSamples()
	}
	if !t.Stencil.Empty() {
		return t.Stencil.NumSamples()
	}
	return 1
}

// Size returns the common size of the attached surfaces.
func (t *RenderTarget) Size() (int, int) {
	for _, c := range t.Color {
		if !c.Empty() {
			return c.Width(), c.Height()
		}
	}
	if !t.Depth.Empty() {
		return t.Depth.Width(), t.Depth.Height()
	}
	if !t.Stencil.Empty() {
		return t.Stencil.Width(), t.Stencil.Height()
	}
	return 0, 0
}

// SamplePosition returns the offset of a sample inside its pixel. Samples
// sit on a regular grid of ceil(sqrt(n)) columns.
func SamplePosition(numSamples, sample int) vec.Vec2 {
	if numSamples <= 1 {
		return vec.Vec2{0.5, 0.5}
	}
	cols := 1
	for cols*cols < numSamples {
		cols++
	}
	rows := (numSamples + cols - 1) / cols
	col, row := sample%cols, sample/cols
	return vec.Vec2{
		(float32(col) + 0.5) / float32(cols),
		(float32(row) + 0.5) / float32(rows),
	}
}
