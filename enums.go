package glref

import "fmt"

// Enum is a GL enumerant. Values match the GL headers so that call traces
// can be replayed against a real driver unchanged.
type Enum uint32

// Error codes.
const (
	NoError                     Enum = 0
	InvalidEnum                 Enum = 0x0500
	InvalidValue                Enum = 0x0501
	InvalidOperation            Enum = 0x0502
	OutOfMemory                 Enum = 0x0505
	InvalidFramebufferOperation Enum = 0x0506
)

// Capabilities for Enable, Disable and IsEnabled.
const (
	Blend                      Enum = 0x0BE2
	CullFace                   Enum = 0x0B44
	DepthTest                  Enum = 0x0B71
	StencilTest                Enum = 0x0B90
	ScissorTest                Enum = 0x0C11
	Dither                     Enum = 0x0BD0
	PolygonOffsetFill          Enum = 0x8037
	PrimitiveRestart           Enum = 0x8F9D
	PrimitiveRestartFixedIndex Enum = 0x8D69
	RasterizerDiscard          Enum = 0x8C89
	TextureCubeMapSeamless     Enum = 0x884F
)

// Primitive modes.
const (
	Points        Enum = 0x0000
	Lines         Enum = 0x0001
	LineLoop      Enum = 0x0002
	LineStrip     Enum = 0x0003
	Triangles     Enum = 0x0004
	TriangleStrip Enum = 0x0005
	TriangleFan   Enum = 0x0006
)

// Data types.
const (
	Byte                     Enum = 0x1400
	UnsignedByte             Enum = 0x1401
	Short                    Enum = 0x1402
	UnsignedShort            Enum = 0x1403
	Int                      Enum = 0x1404
	UnsignedInt              Enum = 0x1405
	Float                    Enum = 0x1406
	HalfFloat                Enum = 0x140B
	Fixed                    Enum = 0x140C
	UnsignedShort4444        Enum = 0x8033
	UnsignedShort5551        Enum = 0x8034
	UnsignedShort565         Enum = 0x8363
	UnsignedInt2101010Rev    Enum = 0x8368
	Int2101010Rev            Enum = 0x8D9F
	UnsignedInt248           Enum = 0x84FA
	Float32UnsignedInt248Rev Enum = 0x8DAD
)

// Transfer formats.
const (
	StencilIndex   Enum = 0x1901
	DepthComponent Enum = 0x1902
	Red            Enum = 0x1903
	Green          Enum = 0x1904
	Blue           Enum = 0x1905
	Alpha          Enum = 0x1906
	RGB            Enum = 0x1907
	RGBA           Enum = 0x1908
	Luminance      Enum = 0x1909
	LuminanceAlpha Enum = 0x190A
	RG             Enum = 0x8227
	RGInteger      Enum = 0x8228
	RedInteger     Enum = 0x8D94
	RGBInteger     Enum = 0x8D98
	RGBAInteger    Enum = 0x8D99
	DepthStencil   Enum = 0x84F9
)

// Sized internal formats.
const (
	R8                Enum = 0x8229
	RG8               Enum = 0x822B
	RGB8              Enum = 0x8051
	RGBA8             Enum = 0x8058
	SRGB8             Enum = 0x8C41
	SRGB8Alpha8       Enum = 0x8C43
	RGB565            Enum = 0x8D62
	RGBA4             Enum = 0x8056
	RGB5A1            Enum = 0x8057
	RGB10A2           Enum = 0x8059
	R16F              Enum = 0x822D
	RG16F             Enum = 0x822F
	RGBA16F           Enum = 0x881A
	R32F              Enum = 0x822E
	RG32F             Enum = 0x8230
	RGBA32F           Enum = 0x8814
	R8I               Enum = 0x8231
	R8UI              Enum = 0x8232
	R16I              Enum = 0x8233
	R16UI             Enum = 0x8234
	R32I              Enum = 0x8235
	R32UI             Enum = 0x8236
	RGBA8I            Enum = 0x8D8E
	RGBA8UI           Enum = 0x8D7C
	RGBA16I           Enum = 0x8D88
	RGBA16UI          Enum = 0x8D76
	RGBA32I           Enum = 0x8D82
	RGBA32UI          Enum = 0x8D70
	Alpha8            Enum = 0x803C
	Luminance8        Enum = 0x8040
	Luminance8Alpha8  Enum = 0x8045
	DepthComponent16  Enum = 0x81A5
	DepthComponent24  Enum = 0x81A6
	DepthComponent32F Enum = 0x8CAC
	Depth24Stencil8   Enum = 0x88F0
	Depth32FStencil8  Enum = 0x8CAD
	StencilIndex8     Enum = 0x8D48
)

// Texture targets.
const (
	Texture1D               Enum = 0x0DE0
	Texture2D               Enum = 0x0DE1
	Texture3D               Enum = 0x806F
	Texture2DArray          Enum = 0x8C1A
	TextureCubeMap          Enum = 0x8513
	TextureCubeMapPositiveX Enum = 0x8515
	TextureCubeMapNegativeX Enum = 0x8516
	TextureCubeMapPositiveY Enum = 0x8517
	TextureCubeMapNegativeY Enum = 0x8518
	TextureCubeMapPositiveZ Enum = 0x8519
	TextureCubeMapNegativeZ Enum = 0x851A
	TextureCubeMapArray     Enum = 0x9009
	Texture0                Enum = 0x84C0
)

// Texture parameters and their values.
const (
	TextureMagFilter        Enum = 0x2800
	TextureMinFilter        Enum = 0x2801
	TextureWrapS            Enum = 0x2802
	TextureWrapT            Enum = 0x2803
	TextureWrapR            Enum = 0x8072
	TextureBorderColor      Enum = 0x1004
	TextureMinLod           Enum = 0x813A
	TextureMaxLod           Enum = 0x813B
	TextureBaseLevel        Enum = 0x813C
	TextureMaxLevel         Enum = 0x813D
	TextureLodBias          Enum = 0x8501
	TextureCompareMode      Enum = 0x884C
	TextureCompareFunc      Enum = 0x884D
	TextureSwizzleR         Enum = 0x8E42
	TextureSwizzleG         Enum = 0x8E43
	TextureSwizzleB         Enum = 0x8E44
	TextureSwizzleA         Enum = 0x8E45
	DepthStencilTextureMode Enum = 0x90EA

	Nearest              Enum = 0x2600
	Linear               Enum = 0x2601
	NearestMipmapNearest Enum = 0x2700
	LinearMipmapNearest  Enum = 0x2701
	NearestMipmapLinear  Enum = 0x2702
	LinearMipmapLinear   Enum = 0x2703
	Repeat               Enum = 0x2901
	ClampToEdge          Enum = 0x812F
	ClampToBorder        Enum = 0x812D
	MirroredRepeat       Enum = 0x8370
	CompareRefToTexture  Enum = 0x884E
)

// Comparison functions.
const (
	Never    Enum = 0x0200
	Less     Enum = 0x0201
	Equal    Enum = 0x0202
	Lequal   Enum = 0x0203
	Greater  Enum = 0x0204
	Notequal Enum = 0x0205
	Gequal   Enum = 0x0206
	Always   Enum = 0x0207
)

// Stencil operations.
const (
	Keep     Enum = 0x1E00
	Replace  Enum = 0x1E01
	Incr     Enum = 0x1E02
	Decr     Enum = 0x1E03
	Invert   Enum = 0x150A
	IncrWrap Enum = 0x8507
	DecrWrap Enum = 0x8508
)

// Blend equations, including KHR_blend_equation_advanced.
const (
	FuncAdd             Enum = 0x8006
	FuncMin             Enum = 0x8007
	FuncMax             Enum = 0x8008
	FuncSubtract        Enum = 0x800A
	FuncReverseSubtract Enum = 0x800B

	Multiply      Enum = 0x9294
	Screen        Enum = 0x9295
	Overlay       Enum = 0x9296
	Darken        Enum = 0x9297
	Lighten       Enum = 0x9298
	ColorDodge    Enum = 0x9299
	ColorBurn     Enum = 0x929A
	HardLight     Enum = 0x929B
	SoftLight     Enum = 0x929C
	Difference    Enum = 0x929E
	Exclusion     Enum = 0x92A0
	HSLHue        Enum = 0x92AD
	HSLSaturation Enum = 0x92AE
	HSLColor      Enum = 0x92AF
	HSLLuminosity Enum = 0x92B0
)

// Blend factors.
const (
	Zero                  Enum = 0
	One                   Enum = 1
	SrcColor              Enum = 0x0300
	OneMinusSrcColor      Enum = 0x0301
	SrcAlpha              Enum = 0x0302
	OneMinusSrcAlpha      Enum = 0x0303
	DstAlpha              Enum = 0x0304
	OneMinusDstAlpha      Enum = 0x0305
	DstColor              Enum = 0x0306
	OneMinusDstColor      Enum = 0x0307
	SrcAlphaSaturate      Enum = 0x0308
	ConstantColor         Enum = 0x8001
	OneMinusConstantColor Enum = 0x8002
	ConstantAlpha         Enum = 0x8003
	OneMinusConstantAlpha Enum = 0x8004
)

// Faces and winding.
const (
	None         Enum = 0
	Front        Enum = 0x0404
	Back         Enum = 0x0405
	FrontAndBack Enum = 0x0408
	CW           Enum = 0x0900
	CCW          Enum = 0x0901
)

// Buffer targets and usages.
const (
	ArrayBuffer        Enum = 0x8892
	ElementArrayBuffer Enum = 0x8893
	PixelPackBuffer    Enum = 0x88EB
	PixelUnpackBuffer  Enum = 0x88EC
	CopyReadBuffer     Enum = 0x8F36
	CopyWriteBuffer    Enum = 0x8F37
	UniformBuffer      Enum = 0x8A11

	StreamDraw  Enum = 0x88E0
	StreamRead  Enum = 0x88E1
	StreamCopy  Enum = 0x88E2
	StaticDraw  Enum = 0x88E4
	StaticRead  Enum = 0x88E5
	StaticCopy  Enum = 0x88E6
	DynamicDraw Enum = 0x88E8
	DynamicRead Enum = 0x88E9
	DynamicCopy Enum = 0x88EA
)

// Framebuffers and renderbuffers.
const (
	Framebuffer            Enum = 0x8D40
	ReadFramebuffer        Enum = 0x8CA8
	DrawFramebuffer        Enum = 0x8CA9
	Renderbuffer           Enum = 0x8D41
	ColorAttachment0       Enum = 0x8CE0
	DepthAttachment        Enum = 0x8D00
	StencilAttachment      Enum = 0x8D20
	DepthStencilAttachment Enum = 0x821A

	FramebufferComplete                    Enum = 0x8CD5
	FramebufferIncompleteAttachment        Enum = 0x8CD6
	FramebufferIncompleteMissingAttachment Enum = 0x8CD7
	FramebufferIncompleteDimensions        Enum = 0x8CD9
	FramebufferUnsupported                 Enum = 0x8CDD
	FramebufferIncompleteMultisample       Enum = 0x8D56

	// Buffers of the default framebuffer and ClearBuffer targets.
	Color   Enum = 0x1800
	Depth   Enum = 0x1801
	Stencil Enum = 0x1802
)

// Clear mask bits.
const (
	DepthBufferBit   Enum = 0x00000100
	StencilBufferBit Enum = 0x00000400
	ColorBufferBit   Enum = 0x00004000
)

// Pixel storage parameters.
const (
	UnpackRowLength   Enum = 0x0CF2
	UnpackSkipRows    Enum = 0x0CF3
	UnpackSkipPixels  Enum = 0x0CF4
	UnpackAlignment   Enum = 0x0CF5
	UnpackSkipImages  Enum = 0x806D
	UnpackImageHeight Enum = 0x806E
	PackRowLength     Enum = 0x0D02
	PackSkipRows      Enum = 0x0D03
	PackSkipPixels    Enum = 0x0D04
	PackAlignment     Enum = 0x0D05
)

// Strings.
const (
	Vendor                 Enum = 0x1F00
	Renderer               Enum = 0x1F01
	Version                Enum = 0x1F02
	ShadingLanguageVersion Enum = 0x8B8C
)

// Integer queries.
const (
	SubpixelBits          Enum = 0x0D50
	RedBits               Enum = 0x0D52
	GreenBits             Enum = 0x0D53
	BlueBits              Enum = 0x0D54
	AlphaBits             Enum = 0x0D55
	DepthBits             Enum = 0x0D56
	StencilBits           Enum = 0x0D57
	MaxTextureSize        Enum = 0x0D33
	Max3DTextureSize      Enum = 0x8073
	MaxCubeMapTextureSize Enum = 0x851C
	MaxArrayTextureLayers Enum = 0x88FF
	MaxTextureImageUnits  Enum = 0x8872
	MaxVertexAttribs      Enum = 0x8869
	MaxDrawBuffers        Enum = 0x8824
	MaxColorAttachments   Enum = 0x8CDF
	MaxRenderbufferSize   Enum = 0x84E8
	MaxSamples            Enum = 0x8D57
	Samples               Enum = 0x80A9
	Viewport              Enum = 0x0BA2
	ScissorBox            Enum = 0x0C10
	ActiveTexture         Enum = 0x84E0
	DrawFramebufferBind   Enum = 0x8CA6
	ReadFramebufferBind   Enum = 0x8CAA
	RenderbufferBinding   Enum = 0x8CA7
	ArrayBufferBinding    Enum = 0x8894
	VertexArrayBinding    Enum = 0x85B5
	CurrentProgram        Enum = 0x8B8D
	TextureBinding2D      Enum = 0x8069
	StencilRef            Enum = 0x0B97
	StencilWriteMask      Enum = 0x0B98
	DepthFuncQuery        Enum = 0x0B74
	BlendEquationRGB      Enum = 0x8009
	BlendEquationAlpha    Enum = 0x883D
	PrimitiveRestartIndex Enum = 0x8F9E
)

// Sync objects.
const (
	SyncGPUCommandsComplete Enum = 0x9117
	AlreadySignaled         Enum = 0x911A
	TimeoutExpired          Enum = 0x911B
	ConditionSatisfied      Enum = 0x911C
	WaitFailed              Enum = 0x911D
	SyncFlushCommandsBit    Enum = 0x00000001
)

var enumNames = map[Enum]string{
	InvalidEnum:                            "INVALID_ENUM",
	InvalidValue:                           "INVALID_VALUE",
	InvalidOperation:                       "INVALID_OPERATION",
	OutOfMemory:                            "OUT_OF_MEMORY",
	InvalidFramebufferOperation:            "INVALID_FRAMEBUFFER_OPERATION",
	FramebufferComplete:                    "FRAMEBUFFER_COMPLETE",
	FramebufferIncompleteAttachment:        "FRAMEBUFFER_INCOMPLETE_ATTACHMENT",
	FramebufferIncompleteMissingAttachment: "FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT",
	FramebufferIncompleteDimensions:        "FRAMEBUFFER_INCOMPLETE_DIMENSIONS",
	FramebufferUnsupported:                 "FRAMEBUFFER_UNSUPPORTED",
	FramebufferIncompleteMultisample:       "FRAMEBUFFER_INCOMPLETE_MULTISAMPLE",
}

// String returns the GL name of error codes and framebuffer statuses, and
// the hex value of everything else. Many enumerants share values, so a
// general reverse mapping is not possible.
func (e Enum) String() string {
	if e == NoError {
		return "NO_ERROR"
	}
	if s, ok := enumNames[e]; ok {
		return s
	}
	return fmt.Sprintf("0x%04X", uint32(e))
}
