package pixel

import (
	"math"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glref/vec"
)

func TestFormatPixelSize(t *testing.T) {
	tests := []struct {
		format Format
		want   int
	}{
		{Format{RGBA, UnormInt8}, 4},
		{Format{RGB, UnormInt8}, 3},
		{Format{RGB, UnormShort565}, 2},
		{Format{RGBA, UnormShort4444}, 2},
		{Format{RGBA, UnormInt1010102Rev}, 4},
		{Format{RGBA, Float}, 16},
		{Format{RG, HalfFloat}, 4},
		{Format{D, UnormInt16}, 2},
		{Format{DS, UnsignedInt248}, 4},
		{Format{DS, Float32UnsignedInt248Rev}, 8},
		{Format{S, UnsignedInt8}, 1},
		{Format{LA, UnormInt8}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.PixelSize(); got != tt.want {
				t.Errorf("PixelSize() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatIsValid(t *testing.T) {
	if (Format{RGBA, UnormShort565}).IsValid() {
		t.Error("RGBA 565 should be invalid")
	}
	if (Format{DS, Float}).IsValid() {
		t.Error("DS Float should be invalid")
	}
	if !(Format{SRGBA, UnormInt8}).IsValid() {
		t.Error("sRGBA8 should be valid")
	}
}

func TestRoundTripRGBA8(t *testing.T) {
	a := Alloc(Format{RGBA, UnormInt8}, 2, 2, 1)
	a.SetPixel(vec.V4(1, 0.5, 0, 1), 1, 0, 0)

	data := a.Data()
	want := []byte{255, 128, 0, 255}
	for i, b := range want {
		if data[4+i] != b {
			t.Fatalf("byte %d = %d, want %d", i, data[4+i], b)
		}
	}
	got := a.Pixel(1, 0, 0)
	if !got.Equal(vec.V4(1, 128.0/255, 0, 1), 1e-6) {
		t.Errorf("Pixel() = %v", got)
	}
	if got := a.Pixel(0, 1, 0); got != (vec.Vec4{}) {
		t.Errorf("untouched pixel = %v, want zero", got)
	}
}

func TestPackedFormats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		in     vec.Vec4
		raw    uint32
	}{
		{"565 red", Format{RGB, UnormShort565}, vec.V4(1, 0, 0, 1), 0xf800},
		{"565 green", Format{RGB, UnormShort565}, vec.V4(0, 1, 0, 1), 0x07e0},
		{"4444 alpha", Format{RGBA, UnormShort4444}, vec.V4(0, 0, 0, 1), 0x000f},
		{"5551 alpha", Format{RGBA, UnormShort5551}, vec.V4(0, 0, 0, 1), 0x0001},
		{"5551 red", Format{RGBA, UnormShort5551}, vec.V4(1, 0, 0, 0), 0xf800},
		{"1010102 red", Format{RGBA, UnormInt1010102Rev}, vec.V4(1, 0, 0, 0), 0x3ff},
		{"1010102 alpha", Format{RGBA, UnormInt1010102Rev}, vec.V4(0, 0, 0, 1), 0xc0000000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Alloc(tt.format, 1, 1, 1)
			a.SetPixel(tt.in, 0, 0, 0)
			if got := readPacked(a.Data(), tt.format.PixelSize()); got != tt.raw {
				t.Errorf("raw = %#x, want %#x", got, tt.raw)
			}
			if got := a.Pixel(0, 0, 0); !got.Equal(tt.in, 1e-6) {
				t.Errorf("Pixel() = %v, want %v", got, tt.in)
			}
		})
	}
}

func TestSnormReadClampsMinimum(t *testing.T) {
	a := NewAccess(Format{R, SnormInt8}, 1, 1, 1, []byte{0x80})
	if got := a.Pixel(0, 0, 0)[0]; got != -1 {
		t.Errorf("snorm -128 = %v, want -1", got)
	}
}

func TestHalfFloat(t *testing.T) {
	a := Alloc(Format{RGBA, HalfFloat}, 1, 1, 1)
	in := vec.V4(0.5, -2, 1024, 0.25)
	a.SetPixel(in, 0, 0, 0)
	if got := a.Pixel(0, 0, 0); got != in {
		t.Errorf("Pixel() = %v, want %v", got, in)
	}
}

func TestSRGBEncodesOnWrite(t *testing.T) {
	a := Alloc(Format{SRGBA, UnormInt8}, 1, 1, 1)
	a.SetPixel(vec.V4(0.5, 0, 1, 0.5), 0, 0, 0)
	if got := a.Data()[0]; got != 188 {
		t.Errorf("encoded red = %d, want 188", got)
	}
	if got := a.Data()[3]; got != 128 {
		t.Errorf("alpha = %d, want 128 (alpha stays linear)", got)
	}
	if got := a.Pixel(0, 0, 0); math.Abs(float64(got[0]-0.5028865)) > 1e-4 {
		t.Errorf("decoded red = %v", got[0])
	}
}

func TestIntegerSaturation(t *testing.T) {
	a := Alloc(Format{RGBA, SignedInt8}, 1, 1, 1)
	a.SetPixelInt(vec.IVec4{300, -300, 5, -5}, 0, 0, 0)
	want := vec.IVec4{127, -128, 5, -5}
	if got := a.PixelInt(0, 0, 0); got != want {
		t.Errorf("PixelInt() = %v, want %v", got, want)
	}

	u := Alloc(Format{RGBA, UnsignedInt32}, 1, 1, 1)
	u.SetPixelUint(vec.UVec4{math.MaxUint32, 1, 2, 3}, 0, 0, 0)
	if got := u.PixelUint(0, 0, 0); got != (vec.UVec4{math.MaxUint32, 1, 2, 3}) {
		t.Errorf("PixelUint() = %v", got)
	}
}

func TestDepthStencilPreserve(t *testing.T) {
	formats := []Format{
		{DS, UnsignedInt248},
		{DS, Float32UnsignedInt248Rev},
	}
	for _, f := range formats {
		t.Run(f.String(), func(t *testing.T) {
			a := Alloc(f, 1, 1, 1)
			a.SetPixStencil(0xab, 0, 0, 0)
			a.SetPixDepth(1, 0, 0, 0)
			if got := a.PixStencil(0, 0, 0); got != 0xab {
				t.Errorf("stencil = %#x after depth write", got)
			}
			a.SetPixStencil(0x12, 0, 0, 0)
			if got := a.PixDepth(0, 0, 0); got != 1 {
				t.Errorf("depth = %v after stencil write", got)
			}
		})
	}
}

func TestDepthClamp(t *testing.T) {
	a := Alloc(Format{D, Float}, 1, 1, 1)
	a.SetPixDepth(1.5, 0, 0, 0)
	if got := a.PixDepth(0, 0, 0); got != 1 {
		t.Errorf("depth = %v, want 1", got)
	}
}

func TestSubregionAliases(t *testing.T) {
	a := Alloc(Format{R, UnormInt8}, 4, 4, 1)
	sub := a.Subregion(1, 2, 0, 2, 2, 1)
	sub.SetPixel(vec.V4(1, 0, 0, 0), 1, 1, 0)
	if got := a.Data()[3*4+2]; got != 255 {
		t.Errorf("parent byte = %d, want 255", got)
	}
}

func TestCopyConvertsAndKeepsSRGBEncoding(t *testing.T) {
	src := Alloc(Format{SRGBA, UnormInt8}, 2, 1, 1)
	copy(src.Data(), []byte{10, 20, 30, 40, 50, 60, 70, 80})

	dst := Alloc(Format{RGBA, UnormInt8}, 2, 1, 1)
	Copy(dst, src)
	for i, b := range src.Data() {
		if dst.Data()[i] != b {
			t.Fatalf("byte %d = %d, want %d", i, dst.Data()[i], b)
		}
	}

	f := Alloc(Format{RGBA, Float}, 2, 1, 1)
	Copy(f, src)
	if got := f.Pixel(0, 0, 0)[0]; math.Abs(float64(got-10.0/255)) > 1e-6 {
		t.Errorf("float red = %v, want %v", got, 10.0/255)
	}
}

func TestCopyDepthToTransfer(t *testing.T) {
	src := Alloc(Format{DS, UnsignedInt248}, 1, 1, 1)
	src.SetPixDepth(0.5, 0, 0, 0)
	src.SetPixStencil(7, 0, 0, 0)

	d := Alloc(Format{D, Float}, 1, 1, 1)
	Copy(d, src)
	if got := d.PixDepth(0, 0, 0); math.Abs(float64(got-0.5)) > 1e-6 {
		t.Errorf("depth = %v, want 0.5", got)
	}

	s := Alloc(Format{S, UnsignedInt8}, 1, 1, 1)
	Copy(s, src)
	if got := s.PixStencil(0, 0, 0); got != 7 {
		t.Errorf("stencil = %d, want 7", got)
	}
}

func TestClear(t *testing.T) {
	a := Alloc(Format{RGBA, UnormInt8}, 3, 2, 1)
	Clear(a.Subregion(1, 0, 0, 2, 2, 1), vec.V4(1, 0, 0, 1))
	for y := range 2 {
		for x := range 3 {
			want := vec.V4(1, 0, 0, 1)
			if x == 0 {
				want = vec.Vec4{}
			}
			if got := a.Pixel(x, y, 0); got != want {
				t.Errorf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestBitDepth(t *testing.T) {
	tests := []struct {
		format Format
		want   [4]int
	}{
		{Format{RGBA, UnormInt8}, [4]int{8, 8, 8, 8}},
		{Format{RGB, UnormShort565}, [4]int{5, 6, 5, 0}},
		{Format{RGBA, UnormShort5551}, [4]int{5, 5, 5, 1}},
		{Format{DS, UnsignedInt248}, [4]int{24, 8, 0, 0}},
		{Format{A, UnormInt8}, [4]int{0, 0, 0, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.BitDepth(); got != tt.want {
				t.Errorf("BitDepth() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGPUFormatMapping(t *testing.T) {
	g, ok := Format{SRGBA, UnormInt8}.GPUFormat()
	if !ok || g != gputypes.TextureFormatRGBA8UnormSrgb {
		t.Errorf("GPUFormat() = %v, %v", g, ok)
	}
	if _, ok := (Format{RGB, UnormInt8}).GPUFormat(); ok {
		t.Error("RGB8 has no WebGPU equivalent")
	}
	f, ok := FromGPUFormat(gputypes.TextureFormatDepth24PlusStencil8)
	if !ok || f != (Format{DS, UnsignedInt248}) {
		t.Errorf("FromGPUFormat() = %v, %v", f, ok)
	}
}
