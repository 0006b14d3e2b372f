package glref

import (
	"github.com/gogpu/glref/internal/pixel"
	"github.com/gogpu/glref/internal/texture"
	"github.com/gogpu/glref/rr"
)

// renderbufferObject is a named, possibly multisampled, image.
type renderbufferObject struct {
	object
	bound          bool
	internalFormat Enum
	samples        int
	storage        rr.MultisampleAccess
}

func (r *renderbufferObject) free() { r.storage = rr.MultisampleAccess{} }

// Width returns the width of the storage in pixels.
func (r *renderbufferObject) Width() int { return r.storage.Width() }

// Height returns the height of the storage in pixels.
func (r *renderbufferObject) Height() int { return r.storage.Height() }

type attachmentType uint8

const (
	attachNone attachmentType = iota
	attachTexture
	attachRenderbuffer
)

// attachment is one attachment point of a framebuffer. It holds a
// reference on the attached object.
type attachment struct {
	typ   attachmentType
	tex   *textureObject
	rbo   *renderbufferObject
	level int
	face  texture.CubeFace
	layer int
}

// surface returns the attached image, or an empty access when the image
// does not exist.
func (a *attachment) surface() rr.MultisampleAccess {
	switch a.typ {
	case attachRenderbuffer:
		return a.rbo.storage
	case attachTexture:
		if a.tex.tex == nil {
			return rr.MultisampleAccess{}
		}
		la := a.tex.levels(a.face)
		if !la.HasLevel(a.level) {
			return rr.MultisampleAccess{}
		}
		img := la.Level(a.level)
		switch a.tex.kind {
		case kind2DArray, kind3D, kindCubeArray:
			if a.layer >= img.Depth() {
				return rr.MultisampleAccess{}
			}
			img = img.Layer(a.layer)
		}
		return rr.FromSinglesample(img)
	}
	return rr.MultisampleAccess{}
}

// framebufferObject is a named set of attachments.
type framebufferObject struct {
	object
	bound          bool
	color          []attachment
	depth, stencil attachment
	drawBuffers    []Enum
	readBuffer     Enum
}

// free is a no-op: attachments are released when the framebuffer is
// deleted, which also unbinds it.
func (f *framebufferObject) free() {}

func newFramebufferObject(name uint32, maxDrawBuffers int) *framebufferObject {
	return &framebufferObject{
		object:      object{name: name},
		color:       make([]attachment, maxDrawBuffers),
		drawBuffers: []Enum{ColorAttachment0},
		readBuffer:  ColorAttachment0,
	}
}

// attachments returns every attachment point.
func (f *framebufferObject) attachments() []*attachment {
	out := make([]*attachment, 0, len(f.color)+2)
	for i := range f.color {
		out = append(out, &f.color[i])
	}
	return append(out, &f.depth, &f.stencil)
}

// GenFramebuffers returns n unused framebuffer names.
func (c *ReferenceContext) GenFramebuffers(n int) []uint32 {
	c.enter("GenFramebuffers")
	if n < 0 {
		c.setError(InvalidValue)
		return nil
	}
	names := make([]uint32, n)
	for i := range names {
		names[i] = c.framebuffers.allocName()
		c.framebuffers.insert(newFramebufferObject(names[i], c.cfg.Limits.MaxDrawBuffers))
	}
	return names
}

// DeleteFramebuffers deletes framebuffers. Bound framebuffers revert to the
// default framebuffer.
func (c *ReferenceContext) DeleteFramebuffers(names ...uint32) {
	c.enter("DeleteFramebuffers")
	c.deleteFramebuffers(names)
}

func (c *ReferenceContext) deleteFramebuffers(names []uint32) {
	for _, name := range names {
		fb, ok := c.framebuffers.find(name)
		if !ok {
			continue
		}
		if c.drawFBO == fb {
			rebind(c.framebuffers, &c.drawFBO, nil)
		}
		if c.readFBO == fb {
			rebind(c.framebuffers, &c.readFBO, nil)
		}
		c.detachMatching(fb, func(*attachment) bool { return true })
		c.framebuffers.remove(name)
	}
}

// IsFramebuffer reports whether name is a framebuffer that has been bound.
func (c *ReferenceContext) IsFramebuffer(name uint32) bool {
	c.enter("IsFramebuffer")
	fb, ok := c.framebuffers.find(name)
	return ok && fb.bound
}

// BindFramebuffer binds a framebuffer for drawing, reading or both. Binding
// a name that was never generated creates it.
func (c *ReferenceContext) BindFramebuffer(target Enum, name uint32) {
	c.enter("BindFramebuffer")
	switch target {
	case Framebuffer, DrawFramebuffer, ReadFramebuffer:
	default:
		c.setError(InvalidEnum)
		return
	}
	var fb *framebufferObject
	if name != 0 {
		var ok bool
		fb, ok = c.framebuffers.find(name)
		if !ok {
			fb = newFramebufferObject(name, c.cfg.Limits.MaxDrawBuffers)
			c.framebuffers.insert(fb)
		}
		fb.bound = true
	}
	c.bindFramebuffer(target, fb)
}

func (c *ReferenceContext) bindFramebuffer(target Enum, fb *framebufferObject) {
	if target == Framebuffer || target == DrawFramebuffer {
		rebind(c.framebuffers, &c.drawFBO, fb)
	}
	if target == Framebuffer || target == ReadFramebuffer {
		rebind(c.framebuffers, &c.readFBO, fb)
	}
}

// boundFramebuffers returns the distinct bound framebuffer objects.
func (c *ReferenceContext) boundFramebuffers() []*framebufferObject {
	var out []*framebufferObject
	if c.drawFBO != nil {
		out = append(out, c.drawFBO)
	}
	if c.readFBO != nil && c.readFBO != c.drawFBO {
		out = append(out, c.readFBO)
	}
	return out
}

// targetFramebuffer returns the framebuffer bound to target. Nil means the
// default framebuffer.
func (c *ReferenceContext) targetFramebuffer(target Enum) (*framebufferObject, bool) {
	switch target {
	case Framebuffer, DrawFramebuffer:
		return c.drawFBO, true
	case ReadFramebuffer:
		return c.readFBO, true
	}
	return nil, false
}

// setAttachment replaces an attachment, moving the object references.
func (c *ReferenceContext) setAttachment(a *attachment, n attachment) {
	rebind(c.textures, &a.tex, n.tex)
	rebind(c.renderbuffers, &a.rbo, n.rbo)
	a.typ, a.level, a.face, a.layer = n.typ, n.level, n.face, n.layer
}

// detachMatching clears every attachment of fb for which match is true.
func (c *ReferenceContext) detachMatching(fb *framebufferObject, match func(*attachment) bool) {
	for _, a := range fb.attachments() {
		if a.typ != attachNone && match(a) {
			c.setAttachment(a, attachment{})
		}
	}
}

// attachTarget resolves the framebuffer and attachment points of an attach
// call, recording the error if they are invalid.
func (c *ReferenceContext) attachTarget(target, point Enum) (*framebufferObject, []*attachment) {
	fb, ok := c.targetFramebuffer(target)
	if !ok {
		c.setError(InvalidEnum)
		return nil, nil
	}
	var slots []*attachment
	switch {
	case point == DepthAttachment:
		if fb != nil {
			slots = []*attachment{&fb.depth}
		}
	case point == StencilAttachment:
		if fb != nil {
			slots = []*attachment{&fb.stencil}
		}
	case point == DepthStencilAttachment:
		if fb != nil {
			slots = []*attachment{&fb.depth, &fb.stencil}
		}
	case point >= ColorAttachment0 && point < ColorAttachment0+32:
		if int(point-ColorAttachment0) >= c.cfg.Limits.MaxDrawBuffers {
			c.setError(InvalidOperation)
			return nil, nil
		}
		if fb != nil {
			slots = []*attachment{&fb.color[point-ColorAttachment0]}
		}
	default:
		c.setError(InvalidEnum)
		return nil, nil
	}
	if fb == nil {
		c.setError(InvalidOperation)
		return nil, nil
	}
	return fb, slots
}

// FramebufferTexture2D attaches a level of a 2D texture or cube map face.
// Texture zero detaches.
func (c *ReferenceContext) FramebufferTexture2D(target, point, texTarget Enum, name uint32, level int) {
	c.enter("FramebufferTexture2D")
	fb, slots := c.attachTarget(target, point)
	if fb == nil {
		return
	}
	if name == 0 {
		for _, a := range slots {
			c.setAttachment(a, attachment{})
		}
		return
	}
	kind, face, ok := imageTarget(texTarget, 2)
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	t, ok := c.textures.find(name)
	if !ok || !t.bound || t.kind != kind {
		c.setError(InvalidOperation)
		return
	}
	if level < 0 || level >= maxLevels(c.maxTextureSize(kind)) {
		c.setError(InvalidValue)
		return
	}
	for _, a := range slots {
		c.setAttachment(a, attachment{typ: attachTexture, tex: t, level: level, face: face})
	}
}

// FramebufferTextureLayer attaches one layer of an array or 3D texture. For
// cube map arrays the layer indexes layer-faces.
func (c *ReferenceContext) FramebufferTextureLayer(target, point Enum, name uint32, level, layer int) {
	c.enter("FramebufferTextureLayer")
	fb, slots := c.attachTarget(target, point)
	if fb == nil {
		return
	}
	if name == 0 {
		for _, a := range slots {
			c.setAttachment(a, attachment{})
		}
		return
	}
	t, ok := c.textures.find(name)
	if !ok || !t.bound {
		c.setError(InvalidOperation)
		return
	}
	var maxLayers int
	switch t.kind {
	case kind2DArray, kindCubeArray:
		maxLayers = c.cfg.Limits.MaxArrayLayers
	case kind3D:
		maxLayers = c.cfg.Limits.Max3DTextureSize
	default:
		c.setError(InvalidOperation)
		return
	}
	if level < 0 || level >= maxLevels(c.maxTextureSize(t.kind)) || layer < 0 || layer >= maxLayers {
		c.setError(InvalidValue)
		return
	}
	for _, a := range slots {
		c.setAttachment(a, attachment{typ: attachTexture, tex: t, level: level, layer: layer})
	}
}

// FramebufferRenderbuffer attaches a renderbuffer. Renderbuffer zero
// detaches.
func (c *ReferenceContext) FramebufferRenderbuffer(target, point, rbTarget Enum, name uint32) {
	c.enter("FramebufferRenderbuffer")
	if rbTarget != Renderbuffer {
		c.setError(InvalidEnum)
		return
	}
	fb, slots := c.attachTarget(target, point)
	if fb == nil {
		return
	}
	var n attachment
	if name != 0 {
		r, ok := c.renderbuffers.find(name)
		if !ok {
			c.setError(InvalidOperation)
			return
		}
		n = attachment{typ: attachRenderbuffer, rbo: r}
	}
	for _, a := range slots {
		c.setAttachment(a, n)
	}
}

// CheckFramebufferStatus returns the completeness status of the framebuffer
// bound to target.
func (c *ReferenceContext) CheckFramebufferStatus(target Enum) Enum {
	c.enter("CheckFramebufferStatus")
	fb, ok := c.targetFramebuffer(target)
	if !ok {
		c.setError(InvalidEnum)
		return 0
	}
	return framebufferStatus(fb)
}

// framebufferStatus applies the completeness rules. The default
// framebuffer is always complete.
func framebufferStatus(fb *framebufferObject) Enum {
	if fb == nil {
		return FramebufferComplete
	}

	type image struct {
		surf rr.MultisampleAccess
		ok   func(pixel.Format) bool
	}
	var images []image
	for i := range fb.color {
		if fb.color[i].typ != attachNone {
			images = append(images, image{fb.color[i].surface(), colorRenderable})
		}
	}
	if fb.depth.typ != attachNone {
		images = append(images, image{fb.depth.surface(), pixel.Format.HasDepth})
	}
	if fb.stencil.typ != attachNone {
		images = append(images, image{fb.stencil.surface(), pixel.Format.HasStencil})
	}

	for _, img := range images {
		if img.surf.Empty() || !img.ok(img.surf.Format()) {
			return FramebufferIncompleteAttachment
		}
	}
	if len(images) == 0 {
		return FramebufferIncompleteMissingAttachment
	}
	first := images[0].surf
	for _, img := range images[1:] {
		if img.surf.Width() != first.Width() || img.surf.Height() != first.Height() {
			return FramebufferIncompleteDimensions
		}
	}
	for _, img := range images[1:] {
		if img.surf.NumSamples() != first.NumSamples() {
			return FramebufferIncompleteMultisample
		}
	}
	if fb.depth.typ != attachNone && fb.stencil.typ != attachNone && fb.depth != fb.stencil {
		return FramebufferUnsupported
	}
	return FramebufferComplete
}

// drawTarget returns the surfaces the current draw framebuffer writes to.
// Color[i] follows the draw buffer list.
func (c *ReferenceContext) drawTarget() rr.RenderTarget {
	fb := c.drawFBO
	if fb == nil {
		s := &c.surface
		t := rr.RenderTarget{Depth: s.depth, Stencil: s.stencil}
		if s.drawBuffer == Back && !s.color.Empty() {
			t.Color = []rr.MultisampleAccess{s.color}
		}
		return t
	}
	t := rr.RenderTarget{Color: make([]rr.MultisampleAccess, len(fb.drawBuffers))}
	for i, b := range fb.drawBuffers {
		if b != None {
			t.Color[i] = fb.color[b-ColorAttachment0].surface()
		}
	}
	if d := fb.depth.surface(); !d.Empty() && d.Format().HasDepth() {
		t.Depth = d
	}
	if s := fb.stencil.surface(); !s.Empty() && s.Format().HasStencil() {
		t.Stencil = s
	}
	return t
}

// drawSamples returns the SAMPLES value of the draw framebuffer: zero when
// it is not multisampled.
func (c *ReferenceContext) drawSamples() int {
	if framebufferStatus(c.drawFBO) != FramebufferComplete {
		return 0
	}
	t := c.drawTarget()
	if n := t.NumSamples(); n > 1 {
		return n
	}
	return 0
}

// readBufferSurface returns the buffer of the read framebuffer selected by
// kind (Color, Depth or Stencil). A color read buffer of None gives an
// empty surface.
func (c *ReferenceContext) readBufferSurface(kind Enum) (rr.MultisampleAccess, Enum) {
	fb := c.readFBO
	if framebufferStatus(fb) != FramebufferComplete {
		return rr.MultisampleAccess{}, InvalidFramebufferOperation
	}
	switch {
	case kind == Color && fb == nil:
		if c.surface.readBuffer == None {
			return rr.MultisampleAccess{}, NoError
		}
		return c.surface.color, NoError
	case kind == Color:
		if fb.readBuffer == None {
			return rr.MultisampleAccess{}, NoError
		}
		return fb.color[fb.readBuffer-ColorAttachment0].surface(), NoError
	case kind == Depth && fb == nil:
		return c.surface.depth, NoError
	case kind == Depth:
		return fb.depth.surface(), NoError
	case fb == nil:
		return c.surface.stencil, NoError
	}
	return fb.stencil.surface(), NoError
}

// readSurface returns a single-sampled view of a read buffer. A
// multisampled default framebuffer is resolved into a temporary image; a
// multisampled framebuffer object cannot be read.
func (c *ReferenceContext) readSurface(kind Enum) (pixel.Access, Enum) {
	src, code := c.readBufferSurface(kind)
	if code != NoError {
		return pixel.Access{}, code
	}
	if src.Empty() {
		return pixel.Access{}, InvalidOperation
	}
	if src.NumSamples() == 1 {
		return src.ToSinglesample(), NoError
	}
	if c.readFBO != nil {
		return pixel.Access{}, InvalidOperation
	}
	return resolved(src), NoError
}

// resolved returns a single-sampled copy of a multisampled surface.
func resolved(src rr.MultisampleAccess) pixel.Access {
	tmp := pixel.Alloc(src.Format(), src.Width(), src.Height(), 1)
	rr.ResolveMultisample(tmp, src)
	return tmp
}

// readColorSurface returns the color read buffer.
func (c *ReferenceContext) readColorSurface() (pixel.Access, Enum) {
	return c.readSurface(Color)
}

// DrawBuffers selects the color buffers fragment outputs are written to.
func (c *ReferenceContext) DrawBuffers(bufs []Enum) {
	c.enter("DrawBuffers")
	fb := c.drawFBO
	if fb == nil {
		if len(bufs) != 1 {
			c.setError(InvalidOperation)
			return
		}
		switch bufs[0] {
		case Back, None:
		case Front, FrontAndBack:
			c.setError(InvalidOperation)
			return
		default:
			if bufs[0] >= ColorAttachment0 && bufs[0] < ColorAttachment0+32 {
				c.setError(InvalidOperation)
			} else {
				c.setError(InvalidEnum)
			}
			return
		}
		if bufs[0] == Back && c.surface.color.Empty() {
			c.setError(InvalidOperation)
			return
		}
		c.surface.drawBuffer = bufs[0]
		return
	}
	if len(bufs) > c.cfg.Limits.MaxDrawBuffers {
		c.setError(InvalidValue)
		return
	}
	for i, b := range bufs {
		switch {
		case b == None, b == ColorAttachment0+Enum(i):
		case b == Back || b >= ColorAttachment0 && b < ColorAttachment0+32:
			c.setError(InvalidOperation)
			return
		default:
			c.setError(InvalidEnum)
			return
		}
	}
	fb.drawBuffers = append(fb.drawBuffers[:0:0], bufs...)
}

// ReadBuffer selects the color buffer read by ReadPixels, CopyTexImage and
// BlitFramebuffer.
func (c *ReferenceContext) ReadBuffer(src Enum) {
	c.enter("ReadBuffer")
	isColor := src >= ColorAttachment0 && src < ColorAttachment0+32
	if src != None && src != Back && !isColor {
		c.setError(InvalidEnum)
		return
	}
	fb := c.readFBO
	if fb == nil {
		if isColor || src == Back && c.surface.color.Empty() {
			c.setError(InvalidOperation)
			return
		}
		c.surface.readBuffer = src
		return
	}
	if src == Back || isColor && int(src-ColorAttachment0) >= c.cfg.Limits.MaxDrawBuffers {
		c.setError(InvalidOperation)
		return
	}
	fb.readBuffer = src
}

// InvalidateFramebuffer validates its arguments. Attachment contents are
// left unchanged.
func (c *ReferenceContext) InvalidateFramebuffer(target Enum, attachments []Enum) {
	c.enter("InvalidateFramebuffer")
	fb, ok := c.targetFramebuffer(target)
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	for _, a := range attachments {
		if fb == nil {
			switch a {
			case Color, Depth, Stencil:
				continue
			}
			c.setError(InvalidEnum)
			return
		}
		switch {
		case a == DepthAttachment, a == StencilAttachment, a == DepthStencilAttachment:
		case a >= ColorAttachment0 && a < ColorAttachment0+32:
			if int(a-ColorAttachment0) >= c.cfg.Limits.MaxDrawBuffers {
				c.setError(InvalidOperation)
				return
			}
		default:
			c.setError(InvalidEnum)
			return
		}
	}
}

// GenRenderbuffers returns n unused renderbuffer names.
func (c *ReferenceContext) GenRenderbuffers(n int) []uint32 {
	c.enter("GenRenderbuffers")
	if n < 0 {
		c.setError(InvalidValue)
		return nil
	}
	names := make([]uint32, n)
	for i := range names {
		names[i] = c.renderbuffers.allocName()
		c.renderbuffers.insert(&renderbufferObject{object: object{name: names[i]}})
	}
	return names
}

// DeleteRenderbuffers deletes renderbuffers, unbinding them and detaching
// them from the bound framebuffers.
func (c *ReferenceContext) DeleteRenderbuffers(names ...uint32) {
	c.enter("DeleteRenderbuffers")
	c.deleteRenderbuffers(names)
}

func (c *ReferenceContext) deleteRenderbuffers(names []uint32) {
	for _, name := range names {
		r, ok := c.renderbuffers.find(name)
		if !ok {
			continue
		}
		if c.renderbuffer == r {
			c.rebindRenderbuffer(nil)
		}
		for _, fb := range c.boundFramebuffers() {
			c.detachMatching(fb, func(a *attachment) bool { return a.rbo == r })
		}
		c.renderbuffers.remove(name)
	}
}

func (c *ReferenceContext) rebindRenderbuffer(r *renderbufferObject) {
	rebind(c.renderbuffers, &c.renderbuffer, r)
}

// IsRenderbuffer reports whether name is a renderbuffer that has been bound.
func (c *ReferenceContext) IsRenderbuffer(name uint32) bool {
	c.enter("IsRenderbuffer")
	r, ok := c.renderbuffers.find(name)
	return ok && r.bound
}

// BindRenderbuffer binds a renderbuffer. Binding a name that was never
// generated creates it.
func (c *ReferenceContext) BindRenderbuffer(target Enum, name uint32) {
	c.enter("BindRenderbuffer")
	if target != Renderbuffer {
		c.setError(InvalidEnum)
		return
	}
	if name == 0 {
		c.rebindRenderbuffer(nil)
		return
	}
	r, ok := c.renderbuffers.find(name)
	if !ok {
		r = &renderbufferObject{object: object{name: name}}
		c.renderbuffers.insert(r)
	}
	r.bound = true
	c.rebindRenderbuffer(r)
}

// RenderbufferStorage allocates single-sampled storage for the bound
// renderbuffer.
func (c *ReferenceContext) RenderbufferStorage(target, internalFormat Enum, width, height int) {
	c.enter("RenderbufferStorage")
	c.renderbufferStorage(target, 0, internalFormat, width, height)
}

// RenderbufferStorageMultisample allocates storage with the given sample
// count for the bound renderbuffer.
func (c *ReferenceContext) RenderbufferStorageMultisample(target Enum, samples int, internalFormat Enum, width, height int) {
	c.enter("RenderbufferStorageMultisample")
	c.renderbufferStorage(target, samples, internalFormat, width, height)
}

func (c *ReferenceContext) renderbufferStorage(target Enum, samples int, internalFormat Enum, w, h int) {
	if target != Renderbuffer {
		c.setError(InvalidEnum)
		return
	}
	f, ok := sizedFormats[internalFormat]
	if !ok || !colorRenderable(f) && f.IsColor() {
		c.setError(InvalidEnum)
		return
	}
	limit := c.cfg.Limits.MaxRenderbufferSize
	if samples < 0 || w < 0 || h < 0 || w > limit || h > limit {
		c.setError(InvalidValue)
		return
	}
	if samples > c.cfg.Limits.MaxSamples || samples > 0 && f.IsInteger() {
		c.setError(InvalidOperation)
		return
	}
	r := c.renderbuffer
	if r == nil {
		c.setError(InvalidOperation)
		return
	}
	r.internalFormat = internalFormat
	r.samples = samples
	r.storage = rr.AllocMultisample(f, max(1, samples), w, h)
}
