// Package color provides the sRGB transfer functions used by sRGB-encoded
// texture and renderbuffer formats.
//
// Texel fetches from sRGB formats are linearised before filtering, and
// fragment outputs written to sRGB color attachments are encoded after
// blending. Alpha is always linear.
package color

import (
	"math"

	"github.com/gogpu/glref/vec"
)

// SRGBToLinear converts an sRGB component to linear (EOTF).
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4)
func SRGBToLinear(s float32) float32 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return float32(math.Pow(float64((s+0.055)/1.055), 2.4))
}

// LinearToSRGB converts a linear component to sRGB (OETF).
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055
// The input is clamped to [0, 1] first, as GL requires for fixed-point targets.
func LinearToSRGB(l float32) float32 {
	l = min(max(l, 0), 1)
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*float32(math.Pow(float64(l), 1.0/2.4)) - 0.055
}

// SRGBToLinearVec converts the RGB components of c to linear.
func SRGBToLinearVec(c vec.Vec4) vec.Vec4 {
	return vec.Vec4{SRGBToLinear(c[0]), SRGBToLinear(c[1]), SRGBToLinear(c[2]), c[3]}
}

// LinearToSRGBVec converts the RGB components of c to sRGB.
func LinearToSRGBVec(c vec.Vec4) vec.Vec4 {
	return vec.Vec4{LinearToSRGB(c[0]), LinearToSRGB(c[1]), LinearToSRGB(c[2]), c[3]}
}
