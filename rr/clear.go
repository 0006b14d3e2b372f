package rr

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glref/internal/pixel"
	"github.com/gogpu/glref/vec"
)

// ClearColor fills rect of every sample with c through the color mask.
func ClearColor(dst MultisampleAccess, rect WindowRect, c vec.Vec4, mask gputypes.ColorWriteMask) {
	region := dst.Subregion(rect)
	if mask == gputypes.ColorWriteMaskAll {
		pixel.Clear(region.Raw(), c)
		return
	}
	forEachSample(region, func(s, x, y int) {
		old := region.Raw().Pixel(s, x, y)
		v := c
		for i := range 4 {
			if !channelWritten(mask, i) {
				v[i] = old[i]
			}
		}
		region.Raw().SetPixel(v, s, x, y)
	})
}

// ClearColorInt fills rect of a signed integer surface.
func ClearColorInt(dst MultisampleAccess, rect WindowRect, c vec.IVec4, mask gputypes.ColorWriteMask) {
	region := dst.Subregion(rect)
	forEachSample(region, func(s, x, y int) {
		v := c
		if mask != gputypes.ColorWriteMaskAll {
			old := region.Raw().PixelInt(s, x, y)
			for i := range 4 {
				if !channelWritten(mask, i) {
					v[i] = old[i]
				}
			}
		}
		region.Raw().SetPixelInt(v, s, x, y)
	})
}

// ClearColorUint fills rect of an unsigned integer surface.
func ClearColorUint(dst MultisampleAccess, rect WindowRect, c vec.UVec4, mask gputypes.ColorWriteMask) {
	region := dst.Subregion(rect)
	forEachSample(region, func(s, x, y int) {
		v := c
		if mask != gputypes.ColorWriteMaskAll {
			old := region.Raw().PixelUint(s, x, y)
			for i := range 4 {
				if !channelWritten(mask, i) {
					v[i] = old[i]
				}
			}
		}
		region.Raw().SetPixelUint(v, s, x, y)
	})
}

// ClearDepth fills rect with a depth value clamped to [0, 1].
func ClearDepth(dst MultisampleAccess, rect WindowRect, d float32) {
	pixel.ClearDepth(dst.Subregion(rect).Raw(), d)
}

// ClearStencil fills rect with s through the write mask.
func ClearStencil(dst MultisampleAccess, rect WindowRect, s int32, writeMask uint32) {
	region := dst.Subregion(rect)
	maxv := stencilMax(dst)
	wm := int32(writeMask) & maxv
	if wm == maxv {
		pixel.ClearStencil(region.Raw(), s&maxv)
		return
	}
	forEachSample(region, func(smp, x, y int) {
		old := region.Raw().PixStencil(smp, x, y)
		region.Raw().SetPixStencil(old&^wm|s&wm, smp, x, y)
	})
}

func forEachSample(m MultisampleAccess, fn func(s, x, y int)) {
	for y := range m.Height() {
		for x := range m.Width() {
			for s := range m.NumSamples() {
				fn(s, x, y)
			}
		}
	}
}
