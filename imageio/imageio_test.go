package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

// checker returns an opaque 4x2 image with distinct pixels.
func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := range 2 {
		for x := range 4 {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 60), uint8(y * 200), uint8(x + y), 255})
		}
	}
	return img
}

func samePixels(t *testing.T, got, want *image.NRGBA) {
	t.Helper()
	if got.Rect.Dx() != want.Rect.Dx() || got.Rect.Dy() != want.Rect.Dy() {
		t.Fatalf("size %v, want %v", got.Rect, want.Rect)
	}
	for y := range want.Rect.Dy() {
		for x := range want.Rect.Dx() {
			if g, w := got.NRGBAAt(x, y), want.NRGBAAt(x, y); g != w {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, g, w)
			}
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, f := range []Format{PNG, WebP} {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, checker(), f); err != nil {
				t.Fatal(err)
			}
			got, err := DecodeBytes(buf.Bytes())
			if err != nil {
				t.Fatal(err)
			}
			samePixels(t, got, checker())
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "result.png")
	if err := Save(path, checker()); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	samePixels(t, got, checker())

	if err := Save(filepath.Join(t.TempDir(), "x.bmp"), checker()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(.bmp) err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"a.png", PNG, true},
		{"dir/b.WEBP", WebP, true},
		{"c.jpg", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err == nil) != tt.ok || got != tt.want {
				t.Errorf("FormatFromPath(%q) = %v, %v", tt.path, got, err)
			}
		})
	}
}

func TestDecodeBytesEmpty(t *testing.T) {
	if _, err := DecodeBytes(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("err = %v, want ErrEmptyData", err)
	}
}

func TestBottomUpConversion(t *testing.T) {
	// Two rows, bottom row first: red then blue.
	data := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FromBottomUp(data, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("top pixel = %v, want blue", got)
	}
	if got := ToBottomUp(img); !bytes.Equal(got, data) {
		t.Errorf("ToBottomUp = %v, want %v", got, data)
	}
	if _, err := FromBottomUp(data[:7], 1, 2); err == nil {
		t.Error("FromBottomUp accepted short data")
	}
}

func TestToNRGBAOffsetOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.SetRGBA(6, 5, color.RGBA{10, 20, 30, 255})
	got := ToNRGBA(src)
	if got.Rect != image.Rect(0, 0, 2, 1) {
		t.Fatalf("Rect = %v", got.Rect)
	}
	if c := got.NRGBAAt(1, 0); c != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("pixel = %v", c)
	}
}
