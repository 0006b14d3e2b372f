package glref

import "github.com/gogpu/gpucontext"

// Context is the GL-shaped rendering API shared by the reference
// implementation and driver-backed contexts.
//
// Methods follow the GL entry points of the same name. Precondition
// violations record an error code for GetError and leave all state
// unchanged.
type Context interface {
	// Errors and queries.
	GetError() Enum
	GetIntegerv(pname Enum, params []int32)
	GetString(name Enum) string
	IsEnabled(capability Enum) bool
	IsTexture(name uint32) bool
	IsBuffer(name uint32) bool
	IsFramebuffer(name uint32) bool
	IsRenderbuffer(name uint32) bool
	IsVertexArray(name uint32) bool
	IsProgram(name uint32) bool
	IsSync(sync uint32) bool
	RendererInfo() gpucontext.AdapterInfo

	// Fixed-function state.
	Enable(capability Enum)
	Disable(capability Enum)
	Viewport(x, y, width, height int)
	Scissor(x, y, width, height int)
	DepthRangef(near, far float32)
	ClearColor(r, g, b, a float32)
	ClearDepthf(d float32)
	ClearStencil(s int32)
	ColorMask(r, g, b, a bool)
	DepthMask(flag bool)
	DepthFunc(fn Enum)
	StencilMask(mask uint32)
	StencilMaskSeparate(face Enum, mask uint32)
	StencilFunc(fn Enum, ref int32, mask uint32)
	StencilFuncSeparate(face, fn Enum, ref int32, mask uint32)
	StencilOp(sfail, dpfail, dppass Enum)
	StencilOpSeparate(face, sfail, dpfail, dppass Enum)
	BlendEquation(mode Enum)
	BlendEquationSeparate(modeRGB, modeAlpha Enum)
	BlendFunc(src, dst Enum)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha Enum)
	BlendColor(r, g, b, a float32)
	CullFace(mode Enum)
	FrontFace(mode Enum)
	PolygonOffset(factor, units float32)
	LineWidth(width float32)
	PrimitiveRestartIndex(index uint32)
	PixelStorei(pname Enum, param int32)
	ActiveTexture(unit Enum)

	// Textures.
	GenTextures(n int) []uint32
	DeleteTextures(names ...uint32)
	BindTexture(target Enum, name uint32)
	TexImage1D(target Enum, level int, internalFormat Enum, width, border int, format, typ Enum, pixels []byte)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height, border int, format, typ Enum, pixels []byte)
	TexImage2DFromBuffer(target Enum, level int, internalFormat Enum, width, height, border int, format, typ Enum, offset int)
	TexImage3D(target Enum, level int, internalFormat Enum, width, height, depth, border int, format, typ Enum, pixels []byte)
	TexSubImage1D(target Enum, level, xoffset, width int, format, typ Enum, pixels []byte)
	TexSubImage2D(target Enum, level, xoffset, yoffset, width, height int, format, typ Enum, pixels []byte)
	TexSubImage2DFromBuffer(target Enum, level, xoffset, yoffset, width, height int, format, typ Enum, offset int)
	TexSubImage3D(target Enum, level, xoffset, yoffset, zoffset, width, height, depth int, format, typ Enum, pixels []byte)
	TexStorage1D(target Enum, levels int, internalFormat Enum, width int)
	TexStorage2D(target Enum, levels int, internalFormat Enum, width, height int)
	TexStorage3D(target Enum, levels int, internalFormat Enum, width, height, depth int)
	CopyTexImage2D(target Enum, level int, internalFormat Enum, x, y, width, height, border int)
	CopyTexSubImage2D(target Enum, level, xoffset, yoffset, x, y, width, height int)
	TexParameteri(target, pname Enum, param int32)
	TexParameterf(target, pname Enum, param float32)
	TexParameterfv(target, pname Enum, params []float32)
	GenerateMipmap(target Enum)

	// Buffers.
	GenBuffers(n int) []uint32
	DeleteBuffers(names ...uint32)
	BindBuffer(target Enum, name uint32)
	BufferData(target Enum, size int, data []byte, usage Enum)
	BufferSubData(target Enum, offset int, data []byte)
	GetBufferSubData(target Enum, offset int, data []byte)

	// Vertex arrays.
	GenVertexArrays(n int) []uint32
	DeleteVertexArrays(names ...uint32)
	BindVertexArray(name uint32)
	VertexAttribPointer(index uint32, size int, typ Enum, normalized bool, stride, offset int)
	VertexAttribIPointer(index uint32, size int, typ Enum, stride, offset int)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribDivisor(index uint32, divisor int)
	VertexAttrib4f(index uint32, x, y, z, w float32)
	VertexAttribI4i(index uint32, x, y, z, w int32)
	VertexAttribI4ui(index uint32, x, y, z, w uint32)

	// Framebuffers and renderbuffers.
	GenFramebuffers(n int) []uint32
	DeleteFramebuffers(names ...uint32)
	BindFramebuffer(target Enum, name uint32)
	FramebufferTexture2D(target, attachment, texTarget Enum, texture uint32, level int)
	FramebufferTextureLayer(target, attachment Enum, texture uint32, level, layer int)
	FramebufferRenderbuffer(target, attachment, rbTarget Enum, renderbuffer uint32)
	CheckFramebufferStatus(target Enum) Enum
	DrawBuffers(bufs []Enum)
	ReadBuffer(src Enum)
	InvalidateFramebuffer(target Enum, attachments []Enum)
	BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int, mask, filter Enum)
	GenRenderbuffers(n int) []uint32
	DeleteRenderbuffers(names ...uint32)
	BindRenderbuffer(target Enum, name uint32)
	RenderbufferStorage(target, internalFormat Enum, width, height int)
	RenderbufferStorageMultisample(target Enum, samples int, internalFormat Enum, width, height int)

	// Programs.
	CreateProgram(p ShaderProgram) (uint32, error)
	DeleteProgram(name uint32)
	UseProgram(name uint32)
	GetUniformLocation(program uint32, name string) int
	Uniform1i(location int, v int32)
	Uniform1f(location int, v float32)
	Uniform4f(location int, x, y, z, w float32)
	Uniform4fv(location int, v []float32)
	UniformMatrix4fv(location int, transpose bool, v []float32)

	// Clears and draws.
	Clear(mask Enum)
	ClearBufferiv(buffer Enum, drawBuffer int, value []int32)
	ClearBufferuiv(buffer Enum, drawBuffer int, value []uint32)
	ClearBufferfv(buffer Enum, drawBuffer int, value []float32)
	ClearBufferfi(buffer Enum, drawBuffer int, depth float32, stencil int32)
	DrawArrays(mode Enum, first, count int)
	DrawArraysInstanced(mode Enum, first, count, instances int)
	DrawElements(mode Enum, count int, typ Enum, offset int)
	DrawElementsInstanced(mode Enum, count int, typ Enum, offset, instances int)
	DrawRangeElements(mode Enum, start, end uint32, count int, typ Enum, offset int)

	// Readback.
	ReadPixels(x, y, width, height int, format, typ Enum, dst []byte)
	ReadPixelsToBuffer(x, y, width, height int, format, typ Enum, offset int)

	// Synchronization.
	FenceSync(condition, flags Enum) uint32
	ClientWaitSync(sync uint32, flags Enum, timeout uint64) Enum
	DeleteSync(sync uint32)
	Finish()

	// Destroy releases every object. The context must not be used afterwards.
	Destroy()
}
