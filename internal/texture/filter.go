package texture

import (
	"math"

	"github.com/gogpu/glref/internal/pixel"
	"github.com/gogpu/glref/vec"
)

// borderTexel marks a texel coordinate that resolves to the border color.
const borderTexel = -1

func floorf(v float32) float32 { return float32(math.Floor(float64(v))) }
func ceilf(v float32) float32  { return float32(math.Ceil(float64(v))) }

func imod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func mirror(a int) int {
	if a >= 0 {
		return a
	}
	return -(1 + a)
}

// wrapTexel resolves an integer texel coordinate against a level size.
func wrapTexel(mode WrapMode, c, size int) int {
	switch mode {
	case ClampToEdge:
		return min(max(c, 0), size-1)
	case ClampToBorder:
		if c < 0 || c >= size {
			return borderTexel
		}
		return c
	case MirroredRepeat:
		return (size - 1) - mirror(imod(c, 2*size)-size)
	default:
		return imod(c, size)
	}
}

// unnormalize converts a normalized coordinate to texel space, guarding
// against values too large to floor into an int.
func unnormalize(u float32, size int) float32 {
	const limit = 1 << 24
	return min(max(u*float32(size), -limit), limit)
}

// fetch reads one texel as seen by the sampler, applying border, depth or
// stencil selection and the optional depth comparison.
func fetch(s *Sampler, a pixel.Access, x, y, z int, ref *float32) vec.Vec4 {
	if x == borderTexel || y == borderTexel || z == borderTexel {
		c := s.BorderColor
		if ref != nil {
			return compareResult(s, *ref, c[0])
		}
		return c
	}

	f := a.Format()
	switch {
	case f.Order == pixel.S || (f.Order == pixel.DS && s.DepthStencilMode == SampleStencil):
		return vec.Vec4{float32(a.PixStencil(x, y, z)), 0, 0, 1}
	case f.HasDepth():
		d := a.PixDepth(x, y, z)
		if ref != nil {
			return compareResult(s, *ref, d)
		}
		return vec.Vec4{d, 0, 0, 1}
	}
	return a.Pixel(x, y, z)
}

func compareResult(s *Sampler, ref, stored float32) vec.Vec4 {
	if s.CompareMode == CompareRefToTexture && !CompareDepth(s.CompareFunc, ref, stored) {
		return vec.Vec4{0, 0, 0, 1}
	}
	if s.CompareMode == CompareNone {
		return vec.Vec4{stored, 0, 0, 1}
	}
	return vec.Vec4{1, 0, 0, 1}
}

// sample2D filters one 2D image (or one layer of an array image). For 1D
// textures v is ignored and row 0 is used.
func sample2D(s *Sampler, a pixel.Access, layer int, filter FilterMode, u, v float32, ref *float32, oneD bool) vec.Vec4 {
	w, h := a.Width(), a.Height()
	fu := unnormalize(u, w)
	fv := unnormalize(v, h)

	if filter == Nearest {
		x := wrapTexel(s.WrapS, int(floorf(fu)), w)
		y := 0
		if !oneD {
			y = wrapTexel(s.WrapT, int(floorf(fv)), h)
		}
		return fetch(s, a, x, y, layer, ref)
	}

	fu -= 0.5
	fv -= 0.5
	i0 := int(floorf(fu))
	j0 := int(floorf(fv))
	alpha := fu - floorf(fu)
	beta := fv - floorf(fv)

	x0 := wrapTexel(s.WrapS, i0, w)
	x1 := wrapTexel(s.WrapS, i0+1, w)
	if oneD {
		c0 := fetch(s, a, x0, 0, layer, ref)
		c1 := fetch(s, a, x1, 0, layer, ref)
		return c0.Lerp(c1, alpha)
	}
	y0 := wrapTexel(s.WrapT, j0, h)
	y1 := wrapTexel(s.WrapT, j0+1, h)

	c00 := fetch(s, a, x0, y0, layer, ref)
	c10 := fetch(s, a, x1, y0, layer, ref)
	c01 := fetch(s, a, x0, y1, layer, ref)
	c11 := fetch(s, a, x1, y1, layer, ref)
	return bilerp(c00, c10, c01, c11, alpha, beta)
}

func sample3D(s *Sampler, a pixel.Access, filter FilterMode, u, v, r float32, ref *float32) vec.Vec4 {
	w, h, d := a.Width(), a.Height(), a.Depth()
	fu := unnormalize(u, w)
	fv := unnormalize(v, h)
	fr := unnormalize(r, d)

	if filter == Nearest {
		x := wrapTexel(s.WrapS, int(floorf(fu)), w)
		y := wrapTexel(s.WrapT, int(floorf(fv)), h)
		z := wrapTexel(s.WrapR, int(floorf(fr)), d)
		return fetch(s, a, x, y, z, ref)
	}

	fu -= 0.5
	fv -= 0.5
	fr -= 0.5
	i0, j0, k0 := int(floorf(fu)), int(floorf(fv)), int(floorf(fr))
	alpha, beta, gamma := fu-floorf(fu), fv-floorf(fv), fr-floorf(fr)

	x0, x1 := wrapTexel(s.WrapS, i0, w), wrapTexel(s.WrapS, i0+1, w)
	y0, y1 := wrapTexel(s.WrapT, j0, h), wrapTexel(s.WrapT, j0+1, h)
	z0, z1 := wrapTexel(s.WrapR, k0, d), wrapTexel(s.WrapR, k0+1, d)

	front := bilerp(fetch(s, a, x0, y0, z0, ref), fetch(s, a, x1, y0, z0, ref),
		fetch(s, a, x0, y1, z0, ref), fetch(s, a, x1, y1, z0, ref), alpha, beta)
	back := bilerp(fetch(s, a, x0, y0, z1, ref), fetch(s, a, x1, y0, z1, ref),
		fetch(s, a, x0, y1, z1, ref), fetch(s, a, x1, y1, z1, ref), alpha, beta)
	return front.Lerp(back, gamma)
}

func bilerp(c00, c10, c01, c11 vec.Vec4, alpha, beta float32) vec.Vec4 {
	var out vec.Vec4
	for i := range out {
		out[i] = c00[i]*(1-alpha)*(1-beta) + c10[i]*alpha*(1-beta) +
			c01[i]*(1-alpha)*beta + c11[i]*alpha*beta
	}
	return out
}
