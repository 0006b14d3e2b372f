package color

import (
	"math"
	"testing"
)

// TestSRGB8LUTAccuracy tests that the LUT matches the math.Pow implementation.
func TestSRGB8LUTAccuracy(t *testing.T) {
	for i := 0; i < 256; i++ {
		fast := SRGB8ToLinear(uint8(i))
		slow := SRGBToLinear(float32(i) / 255.0)
		if diff := math.Abs(float64(fast - slow)); diff > 1e-6 {
			t.Errorf("sRGB %d: lut=%f, pow=%f", i, fast, slow)
		}
	}
}

func TestSRGBRoundTrip(t *testing.T) {
	for i := 0; i <= 100; i++ {
		l := float32(i) / 100
		got := SRGBToLinear(LinearToSRGB(l))
		if math.Abs(float64(got-l)) > 1e-4 {
			t.Errorf("round trip %f -> %f", l, got)
		}
	}
}

func TestSRGBKnownValues(t *testing.T) {
	tests := []struct {
		name   string
		linear float32
		srgb   float32
	}{
		{"black", 0, 0},
		{"white", 1, 1},
		{"mid gray", 0.2140411, 0.5},
		{"linear segment", 0.001, 0.01292},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LinearToSRGB(tt.linear); math.Abs(float64(got-tt.srgb)) > 1e-4 {
				t.Errorf("LinearToSRGB(%f) = %f, want %f", tt.linear, got, tt.srgb)
			}
		})
	}
}

func TestLinearToSRGBClamps(t *testing.T) {
	if got := LinearToSRGB(-1); got != 0 {
		t.Errorf("LinearToSRGB(-1) = %f, want 0", got)
	}
	if got := LinearToSRGB(2); math.Abs(float64(got-1)) > 1e-6 {
		t.Errorf("LinearToSRGB(2) = %f, want 1", got)
	}
}
