package pixel

import (
	"bytes"
	"fmt"

	"github.com/gogpu/glref/vec"
)

// Copy converts every pixel of src into dst. Both views must have the same
// size. Integer formats copy through integer values, depth and stencil
// formats copy the components both sides share, everything else converts
// through float. sRGB encoding is not applied in either direction.
func Copy(dst, src Access) {
	if dst.width != src.width || dst.height != src.height || dst.depth != src.depth {
		panic(fmt.Sprintf("pixel: copy size mismatch %dx%dx%d vs %dx%dx%d",
			dst.width, dst.height, dst.depth, src.width, src.height, src.depth))
	}
	if dst.Empty() {
		return
	}

	if dst.format == src.format {
		copyRaw(dst, src)
		return
	}

	d := dst.linearView()
	s := src.linearView()
	sf, df := s.format, d.format

	switch {
	case sf.HasDepth() || sf.HasStencil() || df.HasDepth() || df.HasStencil():
		copyDepthStencil(d, s)
	case sf.IsInteger() && df.IsInteger():
		if sf.Class() == ClassUnsignedInteger {
			forEach(d, func(x, y, z int) { d.SetPixelUint(s.PixelUint(x, y, z), x, y, z) })
		} else {
			forEach(d, func(x, y, z int) { d.SetPixelInt(s.PixelInt(x, y, z), x, y, z) })
		}
	default:
		forEach(d, func(x, y, z int) { d.SetPixel(s.Pixel(x, y, z), x, y, z) })
	}
}

// linearView reinterprets sRGB formats as their linear counterparts.
func (a Access) linearView() Access {
	a.format = a.format.WithoutSRGB()
	return a
}

func copyRaw(dst, src Access) {
	rowBytes := dst.width * dst.format.PixelSize()
	for z := range dst.depth {
		for y := range dst.height {
			do := z*dst.slicePitch + y*dst.rowPitch
			so := z*src.slicePitch + y*src.rowPitch
			copy(dst.data[do:do+rowBytes], src.data[so:so+rowBytes])
		}
	}
}

func copyDepthStencil(dst, src Access) {
	sf, df := src.format, dst.format
	depth := sf.HasDepth() && df.HasDepth()
	stencil := sf.HasStencil() && df.HasStencil()
	if !depth && !stencil {
		panic(fmt.Sprintf("pixel: cannot copy %v to %v", sf, df))
	}
	forEach(dst, func(x, y, z int) {
		if depth {
			dst.SetPixDepth(src.PixDepth(x, y, z), x, y, z)
		}
		if stencil {
			dst.SetPixStencil(src.PixStencil(x, y, z), x, y, z)
		}
	})
}

func forEach(a Access, fn func(x, y, z int)) {
	for z := range a.depth {
		for y := range a.height {
			for x := range a.width {
				fn(x, y, z)
			}
		}
	}
}

// Clear fills the view with a float color. Depth formats take c[0] as the
// depth value.
func Clear(a Access, c vec.Vec4) {
	if a.Empty() {
		return
	}
	if a.format.HasDepth() {
		ClearDepth(a, c[0])
		return
	}
	a.SetPixel(c, 0, 0, 0)
	fillFromFirst(a)
}

// ClearInt fills the view with an integer color.
func ClearInt(a Access, c vec.IVec4) {
	if a.Empty() {
		return
	}
	a.SetPixelInt(c, 0, 0, 0)
	fillFromFirst(a)
}

// ClearUint fills the view with an unsigned integer color.
func ClearUint(a Access, c vec.UVec4) {
	if a.Empty() {
		return
	}
	a.SetPixelUint(c, 0, 0, 0)
	fillFromFirst(a)
}

// ClearDepth writes d to every pixel, leaving stencil untouched.
func ClearDepth(a Access, d float32) {
	forEach(a, func(x, y, z int) { a.SetPixDepth(d, x, y, z) })
}

// ClearStencil writes s to every pixel, leaving depth untouched.
func ClearStencil(a Access, s int32) {
	forEach(a, func(x, y, z int) { a.SetPixStencil(s, x, y, z) })
}

// fillFromFirst replicates the pixel at the origin over the whole view.
func fillFromFirst(a Access) {
	ps := a.format.PixelSize()
	first := bytes.Clone(a.data[:ps])
	rowBytes := a.width * ps
	row := bytes.Repeat(first, a.width)
	for z := range a.depth {
		for y := range a.height {
			off := z*a.slicePitch + y*a.rowPitch
			copy(a.data[off:off+rowBytes], row)
		}
	}
}
