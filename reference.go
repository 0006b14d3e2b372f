package glref

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glref/internal/texture"
	"github.com/gogpu/glref/rr"
	"github.com/gogpu/glref/vec"
)

// textureKind indexes the per-unit binding slots.
type textureKind int

const (
	kind1D textureKind = iota
	kind2D
	kindCube
	kind2DArray
	kind3D
	kindCubeArray

	numTextureKinds
)

// textureUnit holds the texture bound to each target of one unit. A nil
// slot selects the default texture of that target.
type textureUnit [numTextureKinds]*textureObject

// defaultFramebuffer is the window-system surface of the context.
type defaultFramebuffer struct {
	formats               surfaceFormats
	color, depth, stencil rr.MultisampleAccess
	drawBuffer            Enum
	readBuffer            Enum
}

// stencilFace is the GL stencil state of one face.
type stencilFace struct {
	fn                    Enum
	ref                   int32
	valueMask, writeMask  uint32
	sfail, dpfail, dppass Enum
}

// ReferenceContext is the software implementation of Context.
//
// A ReferenceContext is not safe for concurrent use.
type ReferenceContext struct {
	cfg       Config
	log       *slog.Logger
	call      string
	destroyed bool
	err       Enum

	textures      *objectManager[*textureObject]
	buffers       *objectManager[*bufferObject]
	framebuffers  *objectManager[*framebufferObject]
	renderbuffers *objectManager[*renderbufferObject]
	vertexArrays  *objectManager[*vertexArrayObject]
	programs      *objectManager[*programObject]
	syncs         map[uint32]bool
	nextSync      uint32

	defaultTextures [numTextureKinds]*textureObject
	units           []textureUnit
	activeUnit      int

	arrayBuffer       *bufferObject
	pixelPackBuffer   *bufferObject
	pixelUnpackBuffer *bufferObject
	copyReadBuffer    *bufferObject
	copyWriteBuffer   *bufferObject
	uniformBuffer     *bufferObject

	defaultVAO     *vertexArrayObject
	vao            *vertexArrayObject
	genericAttribs []rr.GenericVec4

	drawFBO      *framebufferObject
	readFBO      *framebufferObject
	renderbuffer *renderbufferObject
	program      *programObject

	surface defaultFramebuffer

	caps         map[Enum]bool
	viewport     rr.WindowRect
	scissor      rr.WindowRect
	depthNear    float32
	depthFar     float32
	clearColor   gputypes.Color
	clearDepth   float32
	clearStencil int32
	colorMask    [4]bool
	depthMask    bool
	depthFunc    Enum
	stencil      [2]stencilFace
	blendEqRGB   Enum
	blendEqAlpha Enum
	blendSrcRGB  Enum
	blendDstRGB  Enum
	blendSrcA    Enum
	blendDstA    Enum
	blendColor   gputypes.Color
	cullFace     Enum
	frontFace    Enum
	polyFactor   float32
	polyUnits    float32
	lineWidth    float32
	restartIndex uint32
	pack         pixelStore
	unpack       pixelStore

	renderer rr.Renderer
}

var _ Context = (*ReferenceContext)(nil)

// capabilities lists the valid Enable targets and their initial values.
var capabilities = map[Enum]bool{
	Blend:                      false,
	CullFace:                   false,
	DepthTest:                  false,
	StencilTest:                false,
	ScissorTest:                false,
	Dither:                     true,
	PolygonOffsetFill:          false,
	PrimitiveRestart:           false,
	PrimitiveRestartFixedIndex: false,
	RasterizerDiscard:          false,
	TextureCubeMapSeamless:     true,
}

// NewReferenceContext creates a reference context. Options are applied on
// top of cfg before it is validated.
func NewReferenceContext(cfg Config, opts ...Option) (*ReferenceContext, error) {
	o := contextOptions{cfg: cfg}
	for _, opt := range opts {
		opt(&o)
	}
	cfg = o.cfg
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	formats, _ := cfg.Surface.formats()

	c := &ReferenceContext{
		cfg:           cfg,
		log:           o.logger,
		textures:      newObjectManager[*textureObject]("texture"),
		buffers:       newObjectManager[*bufferObject]("buffer"),
		framebuffers:  newObjectManager[*framebufferObject]("framebuffer"),
		renderbuffers: newObjectManager[*renderbufferObject]("renderbuffer"),
		vertexArrays:  newObjectManager[*vertexArrayObject]("vertex array"),
		programs:      newObjectManager[*programObject]("program"),
		syncs:         make(map[uint32]bool),
		nextSync:      1,
		units:         make([]textureUnit, cfg.Limits.MaxTextureUnits),
		caps:          make(map[Enum]bool, len(capabilities)),
	}
	for k := range numTextureKinds {
		c.defaultTextures[k] = &textureObject{kind: k, bound: true, tex: texture.New(kindDimensions[k])}
	}
	c.defaultVAO = newVertexArrayObject(0, cfg.Limits.MaxVertexAttribs)
	c.genericAttribs = make([]rr.GenericVec4, cfg.Limits.MaxVertexAttribs)
	for i := range c.genericAttribs {
		c.genericAttribs[i] = rr.FromVec4(vec.V4(0, 0, 0, 1))
	}

	c.surface = newDefaultFramebuffer(cfg.Surface, formats)
	c.resetState()

	c.logger().Info("glref: context created",
		"width", cfg.Surface.Width,
		"height", cfg.Surface.Height,
		"samples", cfg.Surface.Samples,
		"maxTextureSize", cfg.Limits.MaxTextureSize)
	return c, nil
}

func newDefaultFramebuffer(s SurfaceConfig, f surfaceFormats) defaultFramebuffer {
	samples := max(1, s.Samples)
	fb := defaultFramebuffer{formats: f, drawBuffer: Back, readBuffer: Back}
	if f.hasColor {
		fb.color = rr.AllocMultisample(f.color, samples, s.Width, s.Height)
	} else {
		fb.drawBuffer, fb.readBuffer = None, None
	}
	if f.hasDepth {
		fb.depth = rr.AllocMultisample(f.depth, samples, s.Width, s.Height)
	}
	switch {
	case f.combined:
		fb.stencil = fb.depth
	case f.hasStencil:
		fb.stencil = rr.AllocMultisample(f.stencil, samples, s.Width, s.Height)
	}
	return fb
}

// resetState sets every fixed-function value to its GL initial value.
func (c *ReferenceContext) resetState() {
	for k, v := range capabilities {
		c.caps[k] = v
	}
	full := rr.WindowRect{Width: c.cfg.Surface.Width, Height: c.cfg.Surface.Height}
	c.viewport, c.scissor = full, full
	c.depthNear, c.depthFar = 0, 1
	c.clearColor = gputypes.Color{}
	c.clearDepth = 1
	c.clearStencil = 0
	c.colorMask = [4]bool{true, true, true, true}
	c.depthMask = true
	c.depthFunc = Less
	for i := range c.stencil {
		c.stencil[i] = stencilFace{
			fn: Always, valueMask: ^uint32(0), writeMask: ^uint32(0),
			sfail: Keep, dpfail: Keep, dppass: Keep,
		}
	}
	c.blendEqRGB, c.blendEqAlpha = FuncAdd, FuncAdd
	c.blendSrcRGB, c.blendSrcA = One, One
	c.blendDstRGB, c.blendDstA = Zero, Zero
	c.blendColor = gputypes.Color{}
	c.cullFace, c.frontFace = Back, CCW
	c.lineWidth = 1
	c.pack, c.unpack = defaultPixelStore(), defaultPixelStore()
}

// logger returns the per-context logger, falling back to the package logger
// so that SetLogger applies to contexts created earlier.
func (c *ReferenceContext) logger() *slog.Logger {
	if c.log != nil {
		return c.log
	}
	return Logger()
}

// enter marks the start of a public call.
func (c *ReferenceContext) enter(call string) {
	if c.destroyed {
		panic(fmt.Sprintf("glref: %s called on destroyed context", call))
	}
	c.call = call
}

// setError records a GL error. The first error is kept until GetError.
func (c *ReferenceContext) setError(code Enum) {
	c.logger().Debug("glref: error", "call", c.call, "error", code.String())
	if c.err == NoError {
		c.err = code
	}
}

// GetError returns and clears the recorded error.
func (c *ReferenceContext) GetError() Enum {
	c.enter("GetError")
	e := c.err
	c.err = NoError
	return e
}

// RendererInfo describes the implementation.
func (c *ReferenceContext) RendererInfo() gpucontext.AdapterInfo {
	c.enter("RendererInfo")
	return referenceAdapter
}

// Config returns the configuration the context was created with.
func (c *ReferenceContext) Config() Config { return c.cfg }

// DefaultFramebuffer returns the window surface, for callers that size
// their own buffers from it.
func (c *ReferenceContext) DefaultFramebuffer() gpucontext.Texture {
	return surfaceSize{c.cfg.Surface.Width, c.cfg.Surface.Height}
}

type surfaceSize struct{ w, h int }

func (s surfaceSize) Width() int  { return s.w }
func (s surfaceSize) Height() int { return s.h }

// GetString returns implementation strings.
func (c *ReferenceContext) GetString(name Enum) string {
	c.enter("GetString")
	switch name {
	case Vendor:
		return "gogpu"
	case Renderer:
		return referenceAdapter.Name
	case Version:
		return "OpenGL ES 3.2 glref"
	case ShadingLanguageVersion:
		return "Go packet shaders"
	}
	c.setError(InvalidEnum)
	return ""
}

// Enable turns a capability on.
func (c *ReferenceContext) Enable(capability Enum) {
	c.enter("Enable")
	c.setCapability(capability, true)
}

// Disable turns a capability off.
func (c *ReferenceContext) Disable(capability Enum) {
	c.enter("Disable")
	c.setCapability(capability, false)
}

func (c *ReferenceContext) setCapability(capability Enum, on bool) {
	if _, ok := capabilities[capability]; !ok {
		c.setError(InvalidEnum)
		return
	}
	c.caps[capability] = on
}

// IsEnabled reports whether a capability is on.
func (c *ReferenceContext) IsEnabled(capability Enum) bool {
	c.enter("IsEnabled")
	if _, ok := capabilities[capability]; !ok {
		c.setError(InvalidEnum)
		return false
	}
	return c.caps[capability]
}

// Finish returns immediately: every call has already completed.
func (c *ReferenceContext) Finish() {
	c.enter("Finish")
}

// GetIntegerv writes the integer state named by pname into params.
func (c *ReferenceContext) GetIntegerv(pname Enum, params []int32) {
	c.enter("GetIntegerv")
	v, ok := c.integerState(pname)
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	if len(params) < len(v) {
		c.setError(InvalidValue)
		return
	}
	copy(params, v)
}

func (c *ReferenceContext) integerState(pname Enum) ([]int32, bool) {
	one := func(v int) []int32 { return []int32{int32(v)} }
	name := func(o interface{ base() *object }) []int32 {
		return []int32{int32(o.base().name)}
	}
	l := c.cfg.Limits
	bits := c.readSurfaceBits()

	switch pname {
	case MaxTextureSize:
		return one(l.MaxTextureSize), true
	case Max3DTextureSize:
		return one(l.Max3DTextureSize), true
	case MaxCubeMapTextureSize:
		return one(l.MaxCubeMapSize), true
	case MaxArrayTextureLayers:
		return one(l.MaxArrayLayers), true
	case MaxTextureImageUnits:
		return one(l.MaxTextureUnits), true
	case MaxVertexAttribs:
		return one(l.MaxVertexAttribs), true
	case MaxDrawBuffers, MaxColorAttachments:
		return one(l.MaxDrawBuffers), true
	case MaxRenderbufferSize:
		return one(l.MaxRenderbufferSize), true
	case MaxSamples:
		return one(l.MaxSamples), true
	case SubpixelBits:
		return one(subpixelBits), true
	case RedBits, GreenBits, BlueBits, AlphaBits:
		return one(bits[pname-RedBits]), true
	case DepthBits:
		return one(bits[4]), true
	case StencilBits:
		return one(bits[5]), true
	case Samples:
		return one(c.drawSamples()), true
	case Viewport:
		r := c.viewport
		return []int32{int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height)}, true
	case ScissorBox:
		r := c.scissor
		return []int32{int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height)}, true
	case ActiveTexture:
		return one(int(Texture0) + c.activeUnit), true
	case DrawFramebufferBind:
		if c.drawFBO == nil {
			return []int32{0}, true
		}
		return name(c.drawFBO), true
	case ReadFramebufferBind:
		if c.readFBO == nil {
			return []int32{0}, true
		}
		return name(c.readFBO), true
	case RenderbufferBinding:
		if c.renderbuffer == nil {
			return []int32{0}, true
		}
		return name(c.renderbuffer), true
	case ArrayBufferBinding:
		if c.arrayBuffer == nil {
			return []int32{0}, true
		}
		return name(c.arrayBuffer), true
	case VertexArrayBinding:
		if c.vao == nil {
			return []int32{0}, true
		}
		return name(c.vao), true
	case CurrentProgram:
		if c.program == nil {
			return []int32{0}, true
		}
		return name(c.program), true
	case TextureBinding2D:
		if t := c.units[c.activeUnit][kind2D]; t != nil {
			return name(t), true
		}
		return []int32{0}, true
	case StencilRef:
		return []int32{c.stencil[rr.FaceFront].ref}, true
	case StencilWriteMask:
		return []int32{int32(c.stencil[rr.FaceFront].writeMask)}, true
	case DepthFuncQuery:
		return one(int(c.depthFunc)), true
	case BlendEquationRGB:
		return one(int(c.blendEqRGB)), true
	case BlendEquationAlpha:
		return one(int(c.blendEqAlpha)), true
	case PrimitiveRestartIndex:
		return []int32{int32(c.restartIndex)}, true
	case UnpackAlignment:
		return one(c.unpack.alignment), true
	case PackAlignment:
		return one(c.pack.alignment), true
	}
	return nil, false
}

// readSurfaceBits returns the R, G, B, A, depth and stencil bit depths of
// the current draw framebuffer.
func (c *ReferenceContext) readSurfaceBits() [6]int {
	var out [6]int
	t := c.drawTarget()
	for _, col := range t.Color {
		if !col.Empty() {
			b := col.Format().BitDepth()
			copy(out[:4], b[:])
			break
		}
	}
	if !t.Depth.Empty() {
		out[4] = t.Depth.Format().DepthBits()
	}
	if !t.Stencil.Empty() {
		out[5] = t.Stencil.Format().StencilBits()
	}
	return out
}

// Destroy deletes every object and releases the default framebuffer.
func (c *ReferenceContext) Destroy() {
	c.enter("Destroy")
	c.BindVertexArray(0)
	c.deleteVertexArrays(c.vertexArrays.names())
	c.bindFramebuffer(Framebuffer, nil)
	c.deleteFramebuffers(c.framebuffers.names())
	c.useProgram(nil)
	for _, name := range c.programs.names() {
		c.programs.remove(name)
	}
	c.deleteTextures(c.textures.names())
	c.rebindRenderbuffer(nil)
	c.deleteRenderbuffers(c.renderbuffers.names())
	c.deleteVertexArrayBuffers(c.defaultVAO)
	c.deleteBuffers(c.buffers.names())
	clear(c.syncs)

	c.surface = defaultFramebuffer{}
	c.logger().Info("glref: context destroyed")
	c.destroyed = true
}
