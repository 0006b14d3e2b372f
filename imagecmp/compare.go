// Package imagecmp compares a rendered image against a reference with
// per-channel tolerances and produces an error mask highlighting the
// pixels that failed.
//
// Images are addressed bottom-up, the way GL reads them back: row 0 is the
// bottom row. Error masks are standard top-down [image.RGBA] values so they
// can be written with the imageio package directly.
package imagecmp

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/gogpu/glref/vec"
)

// ErrSizeMismatch is returned when the reference and the result differ in
// size.
var ErrSizeMismatch = errors.New("imagecmp: image sizes differ")

// Mask colors. Passing pixels are green, failing ones red.
var (
	maskPass = color.RGBA{0, 255, 0, 255}
	maskFail = color.RGBA{255, 0, 0, 255}
)

// Surface is a readable bottom-up image. Pixel returns normalized or float
// values, PixelUint the stored integers. Texture and renderbuffer pixel
// accesses satisfy it, as do the RGBA8 wrappers returned by FromImage and
// FromPixels.
type Surface interface {
	Width() int
	Height() int
	Pixel(x, y, z int) vec.Vec4
	PixelUint(x, y, z int) vec.UVec4
}

// rgba8 is a bottom-up, tightly packed RGBA8 image.
type rgba8 struct {
	w, h int
	pix  []byte
}

func (s rgba8) Width() int  { return s.w }
func (s rgba8) Height() int { return s.h }

func (s rgba8) Pixel(x, y, _ int) vec.Vec4 {
	u := s.PixelUint(x, y, 0)
	return vec.V4(float32(u[0])/255, float32(u[1])/255, float32(u[2])/255, float32(u[3])/255)
}

// PixelUint returns the stored bytes.
func (s rgba8) PixelUint(x, y, _ int) vec.UVec4 {
	p := s.pix[(y*s.w+x)*4:]
	return vec.UVec4{uint32(p[0]), uint32(p[1]), uint32(p[2]), uint32(p[3])}
}

// FromPixels wraps tightly packed RGBA8 data as returned by ReadPixels with
// PACK_ALIGNMENT 4 or less.
func FromPixels(data []byte, width, height int) (Surface, error) {
	if width < 0 || height < 0 || len(data) < width*height*4 {
		return nil, fmt.Errorf("imagecmp: %d bytes is too short for %dx%d RGBA8", len(data), width, height)
	}
	return rgba8{w: width, h: height, pix: data}, nil
}

// FromImage converts img to a bottom-up RGBA8 surface. The top row of img
// becomes the last row of the surface.
func FromImage(img image.Image) Surface {
	b := img.Bounds()
	s := rgba8{w: b.Dx(), h: b.Dy(), pix: make([]byte, b.Dx()*b.Dy()*4)}
	for y := range s.h {
		row := s.pix[(s.h-1-y)*s.w*4:]
		for x := range s.w {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			copy(row[x*4:], []byte{c.R, c.G, c.B, c.A})
		}
	}
	return s
}

// Result is the outcome of a comparison.
type Result struct {
	Passed    bool
	BadPixels int
	// MaxDiff is the largest per-channel difference seen anywhere in the
	// image, in the units of the comparison.
	MaxDiff   vec.Vec4
	ErrorMask *image.RGBA
}

// LogValue implements [slog.LogValuer].
func (r Result) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("passed", r.Passed),
		slog.Int("bad_pixels", r.BadPixels),
		slog.Any("max_diff", r.MaxDiff),
	)
}

// FloatThresholdCompare compares the float value of every channel. A pixel
// fails when any channel differs by more than the matching threshold
// component.
func FloatThresholdCompare(ref, result Surface, threshold vec.Vec4) (Result, error) {
	return compare(ref, result, 0, func(x, y int) vec.Vec4 {
		return absDiff(ref.Pixel(x, y, 0), result.Pixel(x, y, 0))
	}, threshold)
}

// IntThresholdCompare compares the stored integer channel values.
func IntThresholdCompare(ref, result Surface, threshold vec.UVec4) (Result, error) {
	return compare(ref, result, 0, func(x, y int) vec.Vec4 {
		return uintDiff(ref.PixelUint(x, y, 0), result.PixelUint(x, y, 0))
	}, uintToFloat(threshold))
}

// PixelThresholdCompare quantizes both images to eight bits per channel and
// passes when at most maxBadPixels pixels exceed the threshold.
func PixelThresholdCompare(ref, result Surface, threshold vec.UVec4, maxBadPixels int) (Result, error) {
	return compare(ref, result, maxBadPixels, func(x, y int) vec.Vec4 {
		return uintDiff(quantize(ref.Pixel(x, y, 0)), quantize(result.Pixel(x, y, 0)))
	}, uintToFloat(threshold))
}

func compare(ref, result Surface, maxBad int, diff func(x, y int) vec.Vec4, threshold vec.Vec4) (Result, error) {
	w, h := ref.Width(), ref.Height()
	if result.Width() != w || result.Height() != h {
		return Result{}, fmt.Errorf("%w: reference %dx%d, result %dx%d", ErrSizeMismatch, w, h, result.Width(), result.Height())
	}
	r := Result{ErrorMask: image.NewRGBA(image.Rect(0, 0, w, h))}
	for y := range h {
		for x := range w {
			d := diff(x, y)
			bad := false
			for i := range d {
				r.MaxDiff[i] = max(r.MaxDiff[i], d[i])
				bad = bad || d[i] > threshold[i]
			}
			c := maskPass
			if bad {
				r.BadPixels++
				c = maskFail
			}
			r.ErrorMask.SetRGBA(x, h-1-y, c)
		}
	}
	r.Passed = r.BadPixels <= maxBad
	return r, nil
}

func absDiff(a, b vec.Vec4) vec.Vec4 {
	var d vec.Vec4
	for i := range a {
		d[i] = float32(math.Abs(float64(a[i] - b[i])))
	}
	return d
}

func uintDiff(a, b vec.UVec4) vec.Vec4 {
	var d vec.Vec4
	for i := range a {
		if a[i] > b[i] {
			d[i] = float32(a[i] - b[i])
		} else {
			d[i] = float32(b[i] - a[i])
		}
	}
	return d
}

func uintToFloat(u vec.UVec4) vec.Vec4 {
	return vec.Vec4{float32(u[0]), float32(u[1]), float32(u[2]), float32(u[3])}
}

// quantize maps a normalized color to eight bits per channel.
func quantize(c vec.Vec4) vec.UVec4 {
	var q vec.UVec4
	for i, v := range c {
		q[i] = uint32(math.Round(float64(min(max(v, 0), 1)) * 255))
	}
	return q
}
