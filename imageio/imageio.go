// Package imageio loads reference images and writes rendered results,
// reference images and error masks for inspection.
//
// Decoding accepts PNG, JPEG, TGA and WebP and always returns [image.NRGBA].
// Encoding writes PNG or lossless WebP.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	_ "github.com/ftrvxmtrx/tga" // register TGA decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the output format is unknown.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")
)

// Format selects an output encoding.
type Format int

const (
	PNG Format = iota
	WebP
)

// String returns the file extension without the dot.
func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case WebP:
		return "webp"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFromPath picks an output format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".webp":
		return WebP, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader) (*image.NRGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode: %w", err)
	}
	return ToNRGBA(img), nil
}

// DecodeBytes decodes an image held in memory.
func DecodeBytes(data []byte) (*image.NRGBA, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Load reads and decodes the image file at path.
func Load(path string) (*image.NRGBA, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// ToNRGBA converts any image to a zero-origin NRGBA image. NRGBA input with
// a zero origin is returned as is.
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Encode writes img to w in the given format. WebP output is lossless.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("imageio: encode PNG: %w", err)
		}
	case WebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("imageio: encode WebP: %w", err)
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	return nil
}

// Save writes img to path, choosing the format from the extension.
func Save(path string, img image.Image) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	return save(path, img, f)
}

// SavePNG writes img to path as PNG.
func SavePNG(path string, img image.Image) error {
	return save(path, img, PNG)
}

// SaveWebP writes img to path as lossless WebP.
func SaveWebP(path string, img image.Image) error {
	return save(path, img, WebP)
}

func save(path string, img image.Image, format Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("imageio: %w", err)
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}
	if err := Encode(f, img, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// FromBottomUp converts tightly packed RGBA8 rows, bottom row first as
// ReadPixels returns them, into a top-down image.
func FromBottomUp(data []byte, width, height int) (*image.NRGBA, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("imageio: negative size %dx%d", width, height)
	}
	stride := width * 4
	if len(data) < stride*height {
		return nil, fmt.Errorf("imageio: %d bytes is too short for %dx%d RGBA8", len(data), width, height)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		copy(img.Pix[y*img.Stride:y*img.Stride+stride], data[(height-1-y)*stride:])
	}
	return img, nil
}

// ToBottomUp is the inverse of FromBottomUp. It returns tightly packed
// RGBA8 rows suitable for TexImage2D with UNPACK_ALIGNMENT 4 or less.
func ToBottomUp(img image.Image) []byte {
	n := ToNRGBA(img)
	w, h := n.Rect.Dx(), n.Rect.Dy()
	data := make([]byte, w*h*4)
	for y := range h {
		copy(data[(h-1-y)*w*4:(h-y)*w*4], n.Pix[y*n.Stride:])
	}
	return data
}
