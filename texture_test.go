package glref

import (
	"testing"

	"github.com/gogpu/glref/vec"
)

func TestRedefiningBaseLevelClearsMipmaps(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		internal   Enum
		keepLevel1 bool
	}{
		{"same size and format", 4, 4, RGBA8, true},
		{"new size", 8, 8, RGBA8, false},
		{"new format", 4, 4, RGBA32F, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t, 2, 2)
			newTexture2D(t, c, RGBA8, 4, 4, RGBA, UnsignedByte, nil)
			c.TexImage2D(Texture2D, 1, RGBA8, 2, 2, 0, RGBA, UnsignedByte, nil)
			expectError(t, c, NoError)

			typ := Enum(UnsignedByte)
			if tt.internal == RGBA32F {
				typ = Float
			}
			c.TexImage2D(Texture2D, 0, tt.internal, tt.w, tt.h, 0, RGBA, typ, nil)
			expectError(t, c, NoError)
			if got := c.boundTexture(kind2D).tex.HasLevel(1); got != tt.keepLevel1 {
				t.Errorf("HasLevel(1) = %v, want %v", got, tt.keepLevel1)
			}
		})
	}
}

func TestTexImageErrors(t *testing.T) {
	c := newTestContext(t, 2, 2)
	c.BindTexture(Texture2D, c.GenTextures(1)[0])

	tests := []struct {
		name string
		call func()
		want Enum
	}{
		{"bad target", func() { c.TexImage2D(Texture3D, 0, RGBA8, 1, 1, 0, RGBA, UnsignedByte, nil) }, InvalidEnum},
		{"bad type", func() { c.TexImage2D(Texture2D, 0, RGBA8, 1, 1, 0, RGBA, Texture2D, nil) }, InvalidEnum},
		{"negative size", func() { c.TexImage2D(Texture2D, 0, RGBA8, -1, 1, 0, RGBA, UnsignedByte, nil) }, InvalidValue},
		{"border", func() { c.TexImage2D(Texture2D, 0, RGBA8, 1, 1, 1, RGBA, UnsignedByte, nil) }, InvalidValue},
		{"too large", func() { c.TexImage2D(Texture2D, 0, RGBA8, 4096, 1, 0, RGBA, UnsignedByte, nil) }, InvalidValue},
		{"integer from normalized", func() { c.TexImage2D(Texture2D, 0, RGBA8UI, 1, 1, 0, RGBA, UnsignedByte, nil) }, InvalidOperation},
		{"short data", func() { c.TexImage2D(Texture2D, 0, RGBA8, 2, 2, 0, RGBA, UnsignedByte, make([]byte, 15)) }, InvalidOperation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.call()
			expectError(t, c, tt.want)
		})
	}
}

func TestBindTextureKindIsFixed(t *testing.T) {
	c := newTestContext(t, 2, 2)
	name := c.GenTextures(1)[0]
	if c.IsTexture(name) {
		t.Error("IsTexture true before first bind")
	}
	c.BindTexture(Texture2D, name)
	if !c.IsTexture(name) {
		t.Error("IsTexture false after bind")
	}
	c.BindTexture(TextureCubeMap, name)
	expectError(t, c, InvalidOperation)
}

func TestImmutableStorage(t *testing.T) {
	c := newTestContext(t, 2, 2)
	c.BindTexture(Texture2D, c.GenTextures(1)[0])
	c.TexStorage2D(Texture2D, 3, RGBA8, 4, 4)
	expectError(t, c, NoError)

	tex := c.boundTexture(kind2D).tex
	for level := range 3 {
		if !tex.HasLevel(level) {
			t.Errorf("level %d missing after TexStorage2D", level)
		}
	}
	c.TexImage2D(Texture2D, 0, RGBA8, 4, 4, 0, RGBA, UnsignedByte, nil)
	expectError(t, c, InvalidOperation)
	c.TexStorage2D(Texture2D, 1, RGBA8, 4, 4)
	expectError(t, c, InvalidOperation)

	c.TexSubImage2D(Texture2D, 2, 0, 0, 1, 1, RGBA, UnsignedByte, []byte{1, 2, 3, 4})
	expectError(t, c, NoError)
	c.TexSubImage2D(Texture2D, 2, 1, 0, 1, 1, RGBA, UnsignedByte, []byte{1, 2, 3, 4})
	expectError(t, c, InvalidValue)
}

func TestCopyTexImage2D(t *testing.T) {
	c := newTestContext(t, 4, 4)
	c.ClearColor(0, 1, 0, 1)
	c.Clear(ColorBufferBit)

	c.BindTexture(Texture2D, c.GenTextures(1)[0])
	c.CopyTexImage2D(Texture2D, 0, RGBA, 2, 2, 4, 4, 0)
	expectError(t, c, NoError)

	img := c.boundTexture(kind2D).tex.Levels().Level(0)
	if img.Width() != 4 || img.Height() != 4 {
		t.Fatalf("level 0 is %dx%d, want 4x4", img.Width(), img.Height())
	}
	if got := img.Pixel(0, 0, 0); got != vec.V4(0, 1, 0, 1) {
		t.Errorf("copied pixel = %v, want green", got)
	}
	if got := img.Pixel(3, 3, 0); got != (vec.Vec4{}) {
		t.Errorf("pixel outside the read surface = %v, want zero", got)
	}
}

func TestUploadFromUnpackBufferOffset(t *testing.T) {
	c := newTestContext(t, 2, 2)
	c.BindTexture(Texture2D, c.GenTextures(1)[0])
	c.TexImage2DFromBuffer(Texture2D, 0, RGBA8, 2, 1, 0, RGBA, UnsignedByte, 0)
	expectError(t, c, InvalidOperation)

	// Four bytes of padding, then a red and a green pixel.
	data := []byte{0, 0, 0, 0, 255, 0, 0, 255, 0, 255, 0, 255}
	c.BindBuffer(PixelUnpackBuffer, c.GenBuffers(1)[0])
	c.BufferData(PixelUnpackBuffer, len(data), data, StaticDraw)
	c.TexImage2DFromBuffer(Texture2D, 0, RGBA8, 2, 1, 0, RGBA, UnsignedByte, 4)
	expectError(t, c, NoError)

	img := c.boundTexture(kind2D).tex.Levels().Level(0)
	if got := img.Pixel(0, 0, 0); got != vec.V4(1, 0, 0, 1) {
		t.Errorf("texel 0 = %v, want red", got)
	}
	if got := img.Pixel(1, 0, 0); got != vec.V4(0, 1, 0, 1) {
		t.Errorf("texel 1 = %v, want green", got)
	}

	c.TexSubImage2DFromBuffer(Texture2D, 0, 0, 0, 1, 1, RGBA, UnsignedByte, 8)
	expectError(t, c, NoError)
	if got := img.Pixel(0, 0, 0); got != vec.V4(0, 1, 0, 1) {
		t.Errorf("texel 0 after sub-image = %v, want green", got)
	}

	tests := []struct {
		name   string
		upload func()
		want   Enum
	}{
		{"overruns buffer", func() { c.TexSubImage2DFromBuffer(Texture2D, 0, 0, 0, 1, 1, RGBA, UnsignedByte, 12) }, InvalidOperation},
		{"negative offset", func() { c.TexSubImage2DFromBuffer(Texture2D, 0, 0, 0, 1, 1, RGBA, UnsignedByte, -4) }, InvalidValue},
		{"client memory with buffer bound", func() { c.TexSubImage2D(Texture2D, 0, 0, 0, 1, 1, RGBA, UnsignedByte, data[:4]) }, InvalidOperation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.upload()
			expectError(t, c, tt.want)
		})
	}
}

func TestGenerateMipmapCompletesTexture(t *testing.T) {
	c := newTestContext(t, 2, 2)
	newTexture2D(t, c, RGBA8, 4, 2, RGBA, UnsignedByte, make([]byte, 4*4*2))
	tex := c.boundTexture(kind2D).tex
	if tex.IsComplete() {
		t.Fatal("single-level texture with a mipmapped filter should be incomplete")
	}
	c.GenerateMipmap(Texture2D)
	expectError(t, c, NoError)
	if !tex.IsComplete() {
		t.Error("texture incomplete after GenerateMipmap")
	}
	if !tex.HasLevel(2) || tex.HasLevel(3) {
		t.Error("GenerateMipmap should define levels 1 and 2 only")
	}
}

func TestTexParameterErrors(t *testing.T) {
	c := newTestContext(t, 2, 2)
	c.BindTexture(Texture2D, c.GenTextures(1)[0])
	tests := []struct {
		name  string
		pname Enum
		param int32
		want  Enum
	}{
		{"min filter", TextureMinFilter, int32(Linear), NoError},
		{"bad filter", TextureMagFilter, int32(LinearMipmapLinear), InvalidEnum},
		{"bad wrap", TextureWrapS, int32(Nearest), InvalidEnum},
		{"unknown name", Texture2D, 0, InvalidEnum},
		{"negative base level", TextureBaseLevel, -1, InvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.TexParameteri(Texture2D, tt.pname, tt.param)
			expectError(t, c, tt.want)
		})
	}
}

func TestVertexArrayBindings(t *testing.T) {
	c := newTestContext(t, 2, 2)
	c.BindVertexArray(42)
	expectError(t, c, InvalidOperation)

	vao := c.GenVertexArrays(1)[0]
	c.BindVertexArray(vao)
	if !c.IsVertexArray(vao) {
		t.Error("IsVertexArray false after bind")
	}
	c.VertexAttribPointer(0, 4, Float, false, 0, 0)
	expectError(t, c, InvalidOperation) // no array buffer

	b := c.GenBuffers(1)[0]
	c.BindBuffer(ArrayBuffer, b)
	c.VertexAttribPointer(0, 5, Float, false, 0, 0)
	expectError(t, c, InvalidValue)
	c.VertexAttribPointer(0, 3, Int2101010Rev, false, 0, 0)
	expectError(t, c, InvalidOperation)
	c.VertexAttribIPointer(0, 4, Float, 0, 0)
	expectError(t, c, InvalidEnum)
	c.VertexAttribPointer(0, 4, Float, false, 0, 0)
	expectError(t, c, NoError)

	c.DeleteBuffers(b)
	v := make([]int32, 1)
	c.GetIntegerv(ArrayBufferBinding, v)
	if v[0] != 0 {
		t.Errorf("ARRAY_BUFFER_BINDING = %d after delete, want 0", v[0])
	}
	if c.IsBuffer(b) {
		t.Error("IsBuffer true after delete")
	}

	c.DeleteVertexArrays(vao)
	c.GetIntegerv(VertexArrayBinding, v)
	if v[0] != 0 {
		t.Errorf("VERTEX_ARRAY_BINDING = %d after delete, want 0", v[0])
	}
}
