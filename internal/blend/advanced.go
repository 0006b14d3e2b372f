package blend

import (
	"math"

	"github.com/gogpu/glref/vec"
)

// Advanced is a KHR_blend_equation_advanced blend mode.
type Advanced uint8

const (
	Multiply Advanced = iota + 1
	Screen
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion
	HSLHue
	HSLSaturation
	HSLColor
	HSLLuminosity
)

var advancedNames = map[Advanced]string{
	Multiply: "Multiply", Screen: "Screen", Overlay: "Overlay", Darken: "Darken",
	Lighten: "Lighten", ColorDodge: "ColorDodge", ColorBurn: "ColorBurn",
	HardLight: "HardLight", SoftLight: "SoftLight", Difference: "Difference",
	Exclusion: "Exclusion", HSLHue: "HSLHue", HSLSaturation: "HSLSaturation",
	HSLColor: "HSLColor", HSLLuminosity: "HSLLuminosity",
}

// String returns the mode name.
func (m Advanced) String() string {
	if s, ok := advancedNames[m]; ok {
		return s
	}
	return "Unknown"
}

// BlendAdvanced applies an advanced equation to premultiplied src and dst.
//
// With unpremultiplied colors Cs, Cd and the overlap weights
//
//	p0 = As*Ad, p1 = As*(1-Ad), p2 = Ad*(1-As)
//
// the result is RGB = f(Cs, Cd)*p0 + Cs*p1 + Cd*p2 and A = p0 + p1 + p2.
func BlendAdvanced(mode Advanced, src, dst vec.Vec4) vec.Vec4 {
	as, ad := src[3], dst[3]
	cs := unpremultiply(src)
	cd := unpremultiply(dst)

	p0 := as * ad
	p1 := as * (1 - ad)
	p2 := ad * (1 - as)

	var f vec.Vec3
	switch mode {
	case HSLHue:
		f = setLum(setSat(cs, sat(cd)), lum(cd))
	case HSLSaturation:
		f = setLum(setSat(cd, sat(cs)), lum(cd))
	case HSLColor:
		f = setLum(cs, lum(cd))
	case HSLLuminosity:
		f = setLum(cd, lum(cs))
	default:
		fn := separable(mode)
		for i := range 3 {
			f[i] = fn(cs[i], cd[i])
		}
	}

	var out vec.Vec4
	for i := range 3 {
		out[i] = f[i]*p0 + cs[i]*p1 + cd[i]*p2
	}
	out[3] = p0 + p1 + p2
	return out
}

func unpremultiply(c vec.Vec4) vec.Vec3 {
	if c[3] == 0 {
		return vec.Vec3{}
	}
	return vec.Vec3{c[0] / c[3], c[1] / c[3], c[2] / c[3]}
}

func separable(mode Advanced) func(s, d float32) float32 {
	switch mode {
	case Multiply:
		return func(s, d float32) float32 { return s * d }
	case Screen:
		return func(s, d float32) float32 { return s + d - s*d }
	case Overlay:
		return func(s, d float32) float32 { return hardLight(d, s) }
	case Darken:
		return func(s, d float32) float32 { return min(s, d) }
	case Lighten:
		return func(s, d float32) float32 { return max(s, d) }
	case ColorDodge:
		return colorDodge
	case ColorBurn:
		return colorBurn
	case HardLight:
		return hardLight
	case SoftLight:
		return softLight
	case Difference:
		return func(s, d float32) float32 { return float32(math.Abs(float64(d - s))) }
	case Exclusion:
		return func(s, d float32) float32 { return s + d - 2*s*d }
	}
	panic("blend: unknown advanced mode " + mode.String())
}

// hardLight is Multiply or Screen depending on the source.
func hardLight(s, d float32) float32 {
	if s <= 0.5 {
		return 2 * s * d
	}
	return 1 - 2*(1-s)*(1-d)
}

func colorDodge(s, d float32) float32 {
	switch {
	case d <= 0:
		return 0
	case s < 1:
		return min(1, d/(1-s))
	default:
		return 1
	}
}

func colorBurn(s, d float32) float32 {
	switch {
	case d >= 1:
		return 1
	case s > 0:
		return 1 - min(1, (1-d)/s)
	default:
		return 0
	}
}

func softLight(s, d float32) float32 {
	switch {
	case s <= 0.5:
		return d - (1-2*s)*d*(1-d)
	case d <= 0.25:
		return d + (2*s-1)*d*((16*d-12)*d+3)
	default:
		return d + (2*s-1)*(float32(math.Sqrt(float64(d)))-d)
	}
}
