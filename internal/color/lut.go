package color

// sRGBToLinearLUT provides O(1) decode of 8-bit sRGB texels.
// Pre-computed 256 entries, 1KB memory cost.
var sRGBToLinearLUT [256]float32

func init() {
	for i := range sRGBToLinearLUT {
		sRGBToLinearLUT[i] = SRGBToLinear(float32(i) / 255.0)
	}
}

// SRGB8ToLinear decodes an 8-bit sRGB value to a linear float in [0, 1].
//
// SRGB8 and SRGB8_ALPHA8 texels are always 8-bit, so every fetch from those
// formats goes through this table instead of math.Pow.
func SRGB8ToLinear(s uint8) float32 {
	return sRGBToLinearLUT[s]
}
