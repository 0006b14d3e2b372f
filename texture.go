package glref

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glref/internal/pixel"
	"github.com/gogpu/glref/internal/texture"
)

var kindDimensions = [numTextureKinds]gputypes.TextureViewDimension{
	kind1D:        gputypes.TextureViewDimension1D,
	kind2D:        gputypes.TextureViewDimension2D,
	kindCube:      gputypes.TextureViewDimensionCube,
	kind2DArray:   gputypes.TextureViewDimension2DArray,
	kind3D:        gputypes.TextureViewDimension3D,
	kindCubeArray: gputypes.TextureViewDimensionCubeArray,
}

var kindTargets = [numTextureKinds]Enum{
	kind1D:        Texture1D,
	kind2D:        Texture2D,
	kindCube:      TextureCubeMap,
	kind2DArray:   Texture2DArray,
	kind3D:        Texture3D,
	kindCubeArray: TextureCubeMapArray,
}

// textureKindOf maps a bind target to its slot.
func textureKindOf(target Enum) (textureKind, bool) {
	for k, t := range kindTargets {
		if t == target {
			return textureKind(k), true
		}
	}
	return 0, false
}

// imageTarget resolves the target of a TexImage call with the given number
// of dimensions. Cube face targets select a face of the bound cube map.
func imageTarget(target Enum, dims int) (textureKind, texture.CubeFace, bool) {
	switch dims {
	case 1:
		if target == Texture1D {
			return kind1D, 0, true
		}
	case 2:
		if target == Texture2D {
			return kind2D, 0, true
		}
		if target >= TextureCubeMapPositiveX && target <= TextureCubeMapNegativeZ {
			return kindCube, texture.CubeFace(target - TextureCubeMapPositiveX), true
		}
	case 3:
		switch target {
		case Texture3D:
			return kind3D, 0, true
		case Texture2DArray:
			return kind2DArray, 0, true
		case TextureCubeMapArray:
			return kindCubeArray, 0, true
		}
	}
	return 0, 0, false
}

// textureObject is a named texture. The storage is created on first bind,
// when the target and therefore the kind become known.
type textureObject struct {
	object
	kind  textureKind
	bound bool
	tex   *texture.Texture
}

func (t *textureObject) free() { t.tex = nil }

// levels returns the level storage of one image of the texture.
func (t *textureObject) levels(face texture.CubeFace) *texture.LevelArray {
	if t.kind == kindCube {
		return t.tex.Face(face)
	}
	return t.tex.Levels()
}

// boundTexture returns the texture bound to kind on the active unit.
func (c *ReferenceContext) boundTexture(kind textureKind) *textureObject {
	return c.unitTexture(c.activeUnit, kind)
}

func (c *ReferenceContext) unitTexture(unit int, kind textureKind) *textureObject {
	if t := c.units[unit][kind]; t != nil {
		return t
	}
	return c.defaultTextures[kind]
}

// maxTextureSize returns the largest base level dimension for a kind.
func (c *ReferenceContext) maxTextureSize(kind textureKind) int {
	switch kind {
	case kind3D:
		return c.cfg.Limits.Max3DTextureSize
	case kindCube, kindCubeArray:
		return c.cfg.Limits.MaxCubeMapSize
	}
	return c.cfg.Limits.MaxTextureSize
}

// GenTextures returns n unused texture names.
func (c *ReferenceContext) GenTextures(n int) []uint32 {
	c.enter("GenTextures")
	if n < 0 {
		c.setError(InvalidValue)
		return nil
	}
	names := make([]uint32, n)
	for i := range names {
		names[i] = c.textures.allocName()
		c.textures.insert(&textureObject{object: object{name: names[i]}})
	}
	return names
}

// DeleteTextures deletes textures. Bindings on every unit revert to the
// default texture and attachments of the bound framebuffers are detached.
// Unknown names and zero are ignored.
func (c *ReferenceContext) DeleteTextures(names ...uint32) {
	c.enter("DeleteTextures")
	c.deleteTextures(names)
}

func (c *ReferenceContext) deleteTextures(names []uint32) {
	for _, name := range names {
		t, ok := c.textures.find(name)
		if !ok {
			continue
		}
		for u := range c.units {
			for k := range c.units[u] {
				if c.units[u][k] == t {
					rebind(c.textures, &c.units[u][k], nil)
				}
			}
		}
		for _, fb := range c.boundFramebuffers() {
			c.detachMatching(fb, func(a *attachment) bool { return a.tex == t })
		}
		c.textures.remove(name)
	}
}

// IsTexture reports whether name is a texture that has been bound.
func (c *ReferenceContext) IsTexture(name uint32) bool {
	c.enter("IsTexture")
	t, ok := c.textures.find(name)
	return ok && t.bound
}

// BindTexture binds a texture to a target of the active unit. Binding a
// name that was never generated creates it.
func (c *ReferenceContext) BindTexture(target Enum, name uint32) {
	c.enter("BindTexture")
	kind, ok := textureKindOf(target)
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	slot := &c.units[c.activeUnit][kind]
	if name == 0 {
		rebind(c.textures, slot, nil)
		return
	}
	t, ok := c.textures.find(name)
	if !ok {
		t = &textureObject{object: object{name: name}}
		c.textures.insert(t)
	}
	if t.bound && t.kind != kind {
		c.setError(InvalidOperation)
		return
	}
	if !t.bound {
		t.kind = kind
		t.bound = true
		t.tex = texture.New(kindDimensions[kind])
	}
	rebind(c.textures, slot, t)
}

// ActiveTexture selects the unit affected by texture binding calls.
func (c *ReferenceContext) ActiveTexture(unit Enum) {
	c.enter("ActiveTexture")
	n := int(unit) - int(Texture0)
	if n < 0 || n >= len(c.units) {
		c.setError(InvalidEnum)
		return
	}
	c.activeUnit = n
}

// TexImage1D specifies a level of a 1D texture.
func (c *ReferenceContext) TexImage1D(target Enum, level int, internalFormat Enum, width, border int, format, typ Enum, pixels []byte) {
	c.enter("TexImage1D")
	kind, face, ok := imageTarget(target, 1)
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	c.texImage(kind, face, level, internalFormat, width, 1, 1, border, format, typ, pixels, 0)
}

// TexImage2D specifies a level of a 2D texture or of one cube map face.
func (c *ReferenceContext) TexImage2D(target Enum, level int, internalFormat Enum, width, height, border int, format, typ Enum, pixels []byte) {
	c.enter("TexImage2D")
	kind, face, ok := imageTarget(target, 2)
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	c.texImage(kind, face, level, internalFormat, width, height, 1, border, format, typ, pixels, 0)
}

// TexImage2DFromBuffer is TexImage2D sourcing its pixels from the bound
// PIXEL_UNPACK_BUFFER, starting offset bytes into the buffer.
func (c *ReferenceContext) TexImage2DFromBuffer(target Enum, level int, internalFormat Enum, width, height, border int, format, typ Enum, offset int) {
	c.enter("TexImage2DFromBuffer")
	kind, face, ok := imageTarget(target, 2)
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	if !c.validBufferOffset(c.pixelUnpackBuffer, offset) {
		return
	}
	c.texImage(kind, face, level, internalFormat, width, height, 1, border, format, typ, nil, offset)
}

// TexImage3D specifies a level of a 3D, 2D array or cube map array
// texture. Cube map arrays take depth as the number of layer-faces.
func (c *ReferenceContext) TexImage3D(target Enum, level int, internalFormat Enum, width, height, depth, border int, format, typ Enum, pixels []byte) {
	c.enter("TexImage3D")
	kind, face, ok := imageTarget(target, 3)
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	c.texImage(kind, face, level, internalFormat, width, height, depth, border, format, typ, pixels, 0)
}

// validImageSize checks the dimensions of a level against the limits.
func (c *ReferenceContext) validImageSize(kind textureKind, level, w, h, d int) bool {
	if level < 0 || level >= min(maxLevels(c.maxTextureSize(kind)), texture.MaxLevels) {
		return false
	}
	if w < 0 || h < 0 || d < 0 {
		return false
	}
	limit := c.maxTextureSize(kind) >> level
	switch kind {
	case kind1D:
		return w <= limit
	case kind2D:
		return w <= limit && h <= limit
	case kindCube:
		return w == h && w <= limit
	case kind2DArray:
		return w <= limit && h <= limit && d <= c.cfg.Limits.MaxArrayLayers
	case kind3D:
		return w <= limit && h <= limit && d <= limit
	case kindCubeArray:
		return w == h && w <= limit && d%6 == 0 && d <= c.cfg.Limits.MaxArrayLayers
	}
	return false
}

func (c *ReferenceContext) texImage(kind textureKind, face texture.CubeFace, level int, internalFormat Enum, w, h, d, border int, format, typ Enum, pixels []byte, offset int) {
	transfer, code := transferFormat(format, typ)
	if code == InvalidEnum {
		c.setError(code)
		return
	}
	if !c.validImageSize(kind, level, w, h, d) || border != 0 {
		c.setError(InvalidValue)
		return
	}
	if code != NoError {
		c.setError(code)
		return
	}
	storage, code := storageFormat(internalFormat, format, transfer)
	if code != NoError {
		c.setError(code)
		return
	}
	if !transferCompatible(storage, transfer) {
		c.setError(InvalidOperation)
		return
	}
	t := c.boundTexture(kind)
	if t.tex.Immutable() {
		c.setError(InvalidOperation)
		return
	}
	src, ok := c.unpackView(transfer, w, h, d, kind, pixels, offset)
	if !ok {
		c.setError(InvalidOperation)
		return
	}

	la := t.levels(face)
	if level == 0 && la.HasLevel(0) {
		old := la.Level(0)
		if old.Format() != storage || old.Width() != w || old.Height() != h || old.Depth() != d {
			la.ClearAll()
		}
	}
	la.AllocLevel(level, storage, w, h, d)
	if !src.Empty() && src.Data() != nil {
		pixel.Copy(la.Level(level), src)
	}
}

// unpackView returns the source of an upload. With a pixel unpack buffer
// bound the data comes from the buffer at offset and pixels must be nil;
// otherwise a nil pixels slice leaves the image zeroed.
func (c *ReferenceContext) unpackView(f pixel.Format, w, h, d int, kind textureKind, pixels []byte, offset int) (pixel.Access, bool) {
	ps := c.unpack
	if kind != kind3D && kind != kind2DArray && kind != kindCubeArray {
		ps.imageHeight, ps.skipImages = 0, 0
	}
	if c.pixelUnpackBuffer == nil && pixels == nil {
		return pixel.Access{}, true
	}
	data, ok := transferData(c.pixelUnpackBuffer, pixels, offset)
	if !ok {
		return pixel.Access{}, false
	}
	return ps.view(f, w, h, d, data)
}

// TexSubImage1D replaces part of a 1D texture level.
func (c *ReferenceContext) TexSubImage1D(target Enum, level, xoffset, width int, format, typ Enum, pixels []byte) {
	c.enter("TexSubImage1D")
	kind, face, ok := imageTarget(target, 1)
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	c.texSubImage(kind, face, level, [3]int{xoffset, 0, 0}, [3]int{width, 1, 1}, format, typ, pixels, 0)
}

// TexSubImage2D replaces part of a 2D texture or cube face level.
func (c *ReferenceContext) TexSubImage2D(target Enum, level, xoffset, yoffset, width, height int, format, typ Enum, pixels []byte) {
	c.enter("TexSubImage2D")
	kind, face, ok := imageTarget(target, 2)
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	c.texSubImage(kind, face, level, [3]int{xoffset, yoffset, 0}, [3]int{width, height, 1}, format, typ, pixels, 0)
}

// TexSubImage2DFromBuffer is TexSubImage2D sourcing its pixels from the
// bound PIXEL_UNPACK_BUFFER, starting offset bytes into the buffer.
func (c *ReferenceContext) TexSubImage2DFromBuffer(target Enum, level, xoffset, yoffset, width, height int, format, typ Enum, offset int) {
	c.enter("TexSubImage2DFromBuffer")
	kind, face, ok := imageTarget(target, 2)
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	if !c.validBufferOffset(c.pixelUnpackBuffer, offset) {
		return
	}
	c.texSubImage(kind, face, level, [3]int{xoffset, yoffset, 0}, [3]int{width, height, 1}, format, typ, nil, offset)
}

// validBufferOffset records an error unless buf is bound and offset is
// non-negative.
func (c *ReferenceContext) validBufferOffset(buf *bufferObject, offset int) bool {
	switch {
	case buf == nil:
		c.setError(InvalidOperation)
		return false
	case offset < 0:
		c.setError(InvalidValue)
		return false
	}
	return true
}

// TexSubImage3D replaces part of a 3D or array texture level.
func (c *ReferenceContext) TexSubImage3D(target Enum, level, xoffset, yoffset, zoffset, width, height, depth int, format, typ Enum, pixels []byte) {
	c.enter("TexSubImage3D")
	kind, face, ok := imageTarget(target, 3)
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	c.texSubImage(kind, face, level, [3]int{xoffset, yoffset, zoffset}, [3]int{width, height, depth}, format, typ, pixels, 0)
}

func (c *ReferenceContext) texSubImage(kind textureKind, face texture.CubeFace, level int, off, size [3]int, format, typ Enum, pixels []byte, offset int) {
	transfer, code := transferFormat(format, typ)
	if code == InvalidEnum {
		c.setError(code)
		return
	}
	if level < 0 || level >= texture.MaxLevels {
		c.setError(InvalidValue)
		return
	}
	if code != NoError {
		c.setError(code)
		return
	}
	la := c.boundTexture(kind).levels(face)
	if !la.HasLevel(level) {
		c.setError(InvalidOperation)
		return
	}
	dst := la.Level(level)
	if !boxInside(off, size, dst) {
		c.setError(InvalidValue)
		return
	}
	if !transferCompatible(dst.Format(), transfer) {
		c.setError(InvalidOperation)
		return
	}
	src, ok := c.unpackView(transfer, size[0], size[1], size[2], kind, pixels, offset)
	if !ok {
		c.setError(InvalidOperation)
		return
	}
	if src.Empty() || src.Data() == nil {
		return
	}
	pixel.Copy(dst.Subregion(off[0], off[1], off[2], size[0], size[1], size[2]), src)
}

// boxInside reports whether the box lies within the access.
func boxInside(off, size [3]int, a pixel.Access) bool {
	dims := [3]int{a.Width(), a.Height(), a.Depth()}
	for i := range 3 {
		if off[i] < 0 || size[i] < 0 || off[i]+size[i] > dims[i] {
			return false
		}
	}
	return true
}

// TexStorage1D allocates an immutable 1D texture.
func (c *ReferenceContext) TexStorage1D(target Enum, levels int, internalFormat Enum, width int) {
	c.enter("TexStorage1D")
	if target != Texture1D {
		c.setError(InvalidEnum)
		return
	}
	c.texStorage(kind1D, levels, internalFormat, width, 1, 1)
}

// TexStorage2D allocates an immutable 2D texture or cube map.
func (c *ReferenceContext) TexStorage2D(target Enum, levels int, internalFormat Enum, width, height int) {
	c.enter("TexStorage2D")
	var kind textureKind
	switch target {
	case Texture2D:
		kind = kind2D
	case TextureCubeMap:
		kind = kindCube
	default:
		c.setError(InvalidEnum)
		return
	}
	c.texStorage(kind, levels, internalFormat, width, height, 1)
}

// TexStorage3D allocates an immutable 3D, 2D array or cube map array texture.
func (c *ReferenceContext) TexStorage3D(target Enum, levels int, internalFormat Enum, width, height, depth int) {
	c.enter("TexStorage3D")
	kind, _, ok := imageTarget(target, 3)
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	c.texStorage(kind, levels, internalFormat, width, height, depth)
}

func (c *ReferenceContext) texStorage(kind textureKind, levels int, internalFormat Enum, w, h, d int) {
	storage, ok := sizedFormats[internalFormat]
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	if levels < 1 || w < 1 || h < 1 || d < 1 || !c.validImageSize(kind, 0, w, h, d) {
		c.setError(InvalidValue)
		return
	}
	largest := w
	if kind != kind1D {
		largest = max(largest, h)
	}
	if kind == kind3D {
		largest = max(largest, d)
	}
	if levels > maxLevels(largest) {
		c.setError(InvalidOperation)
		return
	}
	t := c.boundTexture(kind)
	if t.tex.Immutable() {
		c.setError(InvalidOperation)
		return
	}

	alloc := func(la *texture.LevelArray) {
		la.ClearAll()
		for l := range levels {
			lw, lh, ld := texture.MipSize(w, l), texture.MipSize(h, l), d
			if kind == kind1D {
				lh = 1
			}
			if kind == kind3D {
				ld = texture.MipSize(d, l)
			}
			la.AllocLevel(l, storage, lw, lh, ld)
		}
	}
	if kind == kindCube {
		for f := texture.FacePositiveX; f <= texture.FaceNegativeZ; f++ {
			alloc(t.tex.Face(f))
		}
	} else {
		alloc(t.tex.Levels())
	}
	t.tex.SetImmutable(levels)
}

// CopyTexImage2D defines a texture level from the read framebuffer.
// Pixels outside the read surface are left zero.
func (c *ReferenceContext) CopyTexImage2D(target Enum, level int, internalFormat Enum, x, y, width, height, border int) {
	c.enter("CopyTexImage2D")
	kind, face, ok := imageTarget(target, 2)
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	if sized, ok := unsizedCopyFormats[internalFormat]; ok {
		internalFormat = sized
	}
	storage, ok := sizedFormats[internalFormat]
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	if !c.validImageSize(kind, level, width, height, 1) || border != 0 {
		c.setError(InvalidValue)
		return
	}
	if !storage.IsColor() {
		c.setError(InvalidOperation)
		return
	}
	src, code := c.readColorSurface()
	if code != NoError {
		c.setError(code)
		return
	}
	if storage.IsInteger() != src.Format().IsInteger() {
		c.setError(InvalidOperation)
		return
	}
	t := c.boundTexture(kind)
	if t.tex.Immutable() {
		c.setError(InvalidOperation)
		return
	}

	la := t.levels(face)
	if level == 0 && la.HasLevel(0) {
		old := la.Level(0)
		if old.Format() != storage || old.Width() != width || old.Height() != height {
			la.ClearAll()
		}
	}
	la.AllocLevel(level, storage, width, height, 1)
	copyRect(la.Level(level), 0, 0, src, x, y, width, height)
}

// CopyTexSubImage2D replaces part of a texture level from the read
// framebuffer.
func (c *ReferenceContext) CopyTexSubImage2D(target Enum, level, xoffset, yoffset, x, y, width, height int) {
	c.enter("CopyTexSubImage2D")
	kind, face, ok := imageTarget(target, 2)
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	if level < 0 || level >= texture.MaxLevels {
		c.setError(InvalidValue)
		return
	}
	la := c.boundTexture(kind).levels(face)
	if !la.HasLevel(level) {
		c.setError(InvalidOperation)
		return
	}
	dst := la.Level(level)
	if !boxInside([3]int{xoffset, yoffset, 0}, [3]int{width, height, 1}, dst) {
		c.setError(InvalidValue)
		return
	}
	src, code := c.readColorSurface()
	if code != NoError {
		c.setError(code)
		return
	}
	if !dst.Format().IsColor() || dst.Format().IsInteger() != src.Format().IsInteger() {
		c.setError(InvalidOperation)
		return
	}
	copyRect(dst, xoffset, yoffset, src, x, y, width, height)
}

// copyRect copies the w x h rectangle at (x, y) of src to (dx, dy) of dst,
// skipping the part that falls outside src.
func copyRect(dst pixel.Access, dx, dy int, src pixel.Access, x, y, w, h int) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, src.Width()), min(y+h, src.Height())
	if x1 <= x0 || y1 <= y0 {
		return
	}
	pixel.Copy(
		dst.Subregion(dx+x0-x, dy+y0-y, 0, x1-x0, y1-y0, 1),
		src.Subregion(x0, y0, 0, x1-x0, y1-y0, 1),
	)
}

// TexParameteri sets an integer texture parameter.
func (c *ReferenceContext) TexParameteri(target, pname Enum, param int32) {
	c.enter("TexParameteri")
	c.texParameter(target, pname, []float64{float64(param)})
}

// TexParameterf sets a float texture parameter.
func (c *ReferenceContext) TexParameterf(target, pname Enum, param float32) {
	c.enter("TexParameterf")
	c.texParameter(target, pname, []float64{float64(param)})
}

// TexParameterfv sets a texture parameter from a vector, as needed for
// TEXTURE_BORDER_COLOR.
func (c *ReferenceContext) TexParameterfv(target, pname Enum, params []float32) {
	c.enter("TexParameterfv")
	v := make([]float64, len(params))
	for i, p := range params {
		v[i] = float64(p)
	}
	c.texParameter(target, pname, v)
}

var (
	filterModes = map[Enum]texture.FilterMode{
		Nearest:              texture.Nearest,
		Linear:               texture.Linear,
		NearestMipmapNearest: texture.NearestMipmapNearest,
		LinearMipmapNearest:  texture.LinearMipmapNearest,
		NearestMipmapLinear:  texture.NearestMipmapLinear,
		LinearMipmapLinear:   texture.LinearMipmapLinear,
	}
	wrapModes = map[Enum]texture.WrapMode{
		Repeat:         texture.Repeat,
		ClampToEdge:    texture.ClampToEdge,
		MirroredRepeat: texture.MirroredRepeat,
		ClampToBorder:  texture.ClampToBorder,
	}
	swizzles = map[Enum]texture.Swizzle{
		Red:   texture.SwizzleRed,
		Green: texture.SwizzleGreen,
		Blue:  texture.SwizzleBlue,
		Alpha: texture.SwizzleAlpha,
		Zero:  texture.SwizzleZero,
		One:   texture.SwizzleOne,
	}
)

func (c *ReferenceContext) texParameter(target, pname Enum, v []float64) {
	kind, ok := textureKindOf(target)
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	if len(v) == 0 {
		c.setError(InvalidValue)
		return
	}
	t := c.boundTexture(kind).tex
	s := &t.Sampler
	e := Enum(v[0])

	switch pname {
	case TextureMinFilter:
		m, ok := filterModes[e]
		if !ok {
			c.setError(InvalidEnum)
			return
		}
		s.MinFilter = m
	case TextureMagFilter:
		if e != Nearest && e != Linear {
			c.setError(InvalidEnum)
			return
		}
		s.MagFilter = filterModes[e]
	case TextureWrapS, TextureWrapT, TextureWrapR:
		m, ok := wrapModes[e]
		if !ok {
			c.setError(InvalidEnum)
			return
		}
		switch pname {
		case TextureWrapS:
			s.WrapS = m
		case TextureWrapT:
			s.WrapT = m
		default:
			s.WrapR = m
		}
	case TextureMinLod:
		s.MinLod = float32(v[0])
	case TextureMaxLod:
		s.MaxLod = float32(v[0])
	case TextureLodBias:
		s.LodBias = float32(v[0])
	case TextureBaseLevel, TextureMaxLevel:
		if v[0] < 0 {
			c.setError(InvalidValue)
			return
		}
		if pname == TextureBaseLevel {
			t.BaseLevel = int(v[0])
		} else {
			t.MaxLevel = int(v[0])
		}
	case TextureCompareMode:
		switch e {
		case None:
			s.CompareMode = texture.CompareNone
		case CompareRefToTexture:
			s.CompareMode = texture.CompareRefToTexture
		default:
			c.setError(InvalidEnum)
			return
		}
	case TextureCompareFunc:
		fn, ok := compareFunction(e)
		if !ok {
			c.setError(InvalidEnum)
			return
		}
		s.CompareFunc = fn
	case TextureSwizzleR, TextureSwizzleG, TextureSwizzleB, TextureSwizzleA:
		sw, ok := swizzles[e]
		if !ok {
			c.setError(InvalidEnum)
			return
		}
		s.Swizzle[pname-TextureSwizzleR] = sw
	case DepthStencilTextureMode:
		switch e {
		case DepthComponent:
			s.DepthStencilMode = texture.SampleDepth
		case StencilIndex:
			s.DepthStencilMode = texture.SampleStencil
		default:
			c.setError(InvalidEnum)
			return
		}
	case TextureBorderColor:
		if len(v) < 4 {
			c.setError(InvalidValue)
			return
		}
		for i := range 4 {
			s.BorderColor[i] = float32(v[i])
		}
	default:
		c.setError(InvalidEnum)
	}
}

// GenerateMipmap builds the mipmap chain of the bound texture from its base
// level.
func (c *ReferenceContext) GenerateMipmap(target Enum) {
	c.enter("GenerateMipmap")
	kind, ok := textureKindOf(target)
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	t := c.boundTexture(kind)
	base := t.tex.BaseLevel
	if t.tex.Immutable() {
		base = min(base, t.tex.ImmutableLevels()-1)
	}
	if !t.tex.HasLevel(base) {
		c.setError(InvalidOperation)
		return
	}
	ref := t.levels(texture.FacePositiveX).Level(base)
	f := ref.Format()
	if f.IsInteger() || !f.IsColor() {
		c.setError(InvalidOperation)
		return
	}
	if kind == kindCube {
		for face := texture.FacePositiveX; face <= texture.FaceNegativeZ; face++ {
			a := t.tex.Face(face).Level(base)
			if a.Width() != ref.Width() || a.Height() != ref.Width() || a.Format() != f {
				c.setError(InvalidOperation)
				return
			}
		}
	}
	t.tex.GenerateMipmap()
	c.logger().Debug("glref: mipmaps generated",
		"texture", t.name,
		"base", base,
		"levels", levelChain(t.levels(texture.FacePositiveX)))
}

// levelChain counts the contiguous levels allocated from level 0.
func levelChain(la *texture.LevelArray) int {
	var buf [texture.MaxLevels]pixel.Access
	return la.Update(buf[:])
}

// compareFunction converts a GL comparison function.
func compareFunction(e Enum) (gputypes.CompareFunction, bool) {
	if e < Never || e > Always {
		return 0, false
	}
	return gputypes.CompareFunction(e-Never) + gputypes.CompareFunctionNever, true
}
