package glref

import "github.com/gogpu/glref/internal/pixel"

// sizedFormats maps sized internal formats to storage formats.
var sizedFormats = map[Enum]pixel.Format{
	R8:                {Order: pixel.R, Type: pixel.UnormInt8},
	RG8:               {Order: pixel.RG, Type: pixel.UnormInt8},
	RGB8:              {Order: pixel.RGB, Type: pixel.UnormInt8},
	RGBA8:             {Order: pixel.RGBA, Type: pixel.UnormInt8},
	SRGB8:             {Order: pixel.SRGB, Type: pixel.UnormInt8},
	SRGB8Alpha8:       {Order: pixel.SRGBA, Type: pixel.UnormInt8},
	RGB565:            {Order: pixel.RGB, Type: pixel.UnormShort565},
	RGBA4:             {Order: pixel.RGBA, Type: pixel.UnormShort4444},
	RGB5A1:            {Order: pixel.RGBA, Type: pixel.UnormShort5551},
	RGB10A2:           {Order: pixel.RGBA, Type: pixel.UnormInt1010102Rev},
	R16F:              {Order: pixel.R, Type: pixel.HalfFloat},
	RG16F:             {Order: pixel.RG, Type: pixel.HalfFloat},
	RGBA16F:           {Order: pixel.RGBA, Type: pixel.HalfFloat},
	R32F:              {Order: pixel.R, Type: pixel.Float},
	RG32F:             {Order: pixel.RG, Type: pixel.Float},
	RGBA32F:           {Order: pixel.RGBA, Type: pixel.Float},
	R8I:               {Order: pixel.R, Type: pixel.SignedInt8},
	R8UI:              {Order: pixel.R, Type: pixel.UnsignedInt8},
	R16I:              {Order: pixel.R, Type: pixel.SignedInt16},
	R16UI:             {Order: pixel.R, Type: pixel.UnsignedInt16},
	R32I:              {Order: pixel.R, Type: pixel.SignedInt32},
	R32UI:             {Order: pixel.R, Type: pixel.UnsignedInt32},
	RGBA8I:            {Order: pixel.RGBA, Type: pixel.SignedInt8},
	RGBA8UI:           {Order: pixel.RGBA, Type: pixel.UnsignedInt8},
	RGBA16I:           {Order: pixel.RGBA, Type: pixel.SignedInt16},
	RGBA16UI:          {Order: pixel.RGBA, Type: pixel.UnsignedInt16},
	RGBA32I:           {Order: pixel.RGBA, Type: pixel.SignedInt32},
	RGBA32UI:          {Order: pixel.RGBA, Type: pixel.UnsignedInt32},
	Alpha8:            {Order: pixel.A, Type: pixel.UnormInt8},
	Luminance8:        {Order: pixel.L, Type: pixel.UnormInt8},
	Luminance8Alpha8:  {Order: pixel.LA, Type: pixel.UnormInt8},
	DepthComponent16:  {Order: pixel.D, Type: pixel.UnormInt16},
	DepthComponent24:  {Order: pixel.D, Type: pixel.UnsignedInt248},
	DepthComponent32F: {Order: pixel.D, Type: pixel.Float},
	Depth24Stencil8:   {Order: pixel.DS, Type: pixel.UnsignedInt248},
	Depth32FStencil8:  {Order: pixel.DS, Type: pixel.Float32UnsignedInt248Rev},
	StencilIndex8:     {Order: pixel.S, Type: pixel.UnsignedInt8},
}

// unsizedCopyFormats maps the unsized formats CopyTexImage2D accepts.
var unsizedCopyFormats = map[Enum]Enum{
	RGBA:           RGBA8,
	RGB:            RGB8,
	Red:            R8,
	RG:             RG8,
	Alpha:          Alpha8,
	Luminance:      Luminance8,
	LuminanceAlpha: Luminance8Alpha8,
}

var transferOrders = map[Enum]pixel.ChannelOrder{
	Red:            pixel.R,
	RedInteger:     pixel.R,
	RG:             pixel.RG,
	RGInteger:      pixel.RG,
	RGB:            pixel.RGB,
	RGBInteger:     pixel.RGB,
	RGBA:           pixel.RGBA,
	RGBAInteger:    pixel.RGBA,
	Alpha:          pixel.A,
	Luminance:      pixel.L,
	LuminanceAlpha: pixel.LA,
	DepthComponent: pixel.D,
	StencilIndex:   pixel.S,
	DepthStencil:   pixel.DS,
}

var integerTransferFormats = map[Enum]bool{
	RedInteger:  true,
	RGInteger:   true,
	RGBInteger:  true,
	RGBAInteger: true,
}

// transferTypes gives the channel type of each transfer type for normalized
// (first) and integer (second) transfer formats.
var transferTypes = map[Enum][2]pixel.ChannelType{
	UnsignedByte:  {pixel.UnormInt8, pixel.UnsignedInt8},
	Byte:          {pixel.SnormInt8, pixel.SignedInt8},
	UnsignedShort: {pixel.UnormInt16, pixel.UnsignedInt16},
	Short:         {pixel.SnormInt16, pixel.SignedInt16},
	UnsignedInt:   {pixel.UnormInt32, pixel.UnsignedInt32},
	Int:           {pixel.SignedInt32, pixel.SignedInt32},
	HalfFloat:     {pixel.HalfFloat, pixel.HalfFloat},
	Float:         {pixel.Float, pixel.Float},
}

// packedTransfers lists the packed types and the formats they combine with.
var packedTransfers = map[[2]Enum]pixel.Format{
	{RGB, UnsignedShort565}:                  {Order: pixel.RGB, Type: pixel.UnormShort565},
	{RGBA, UnsignedShort4444}:                {Order: pixel.RGBA, Type: pixel.UnormShort4444},
	{RGBA, UnsignedShort5551}:                {Order: pixel.RGBA, Type: pixel.UnormShort5551},
	{RGBA, UnsignedInt2101010Rev}:            {Order: pixel.RGBA, Type: pixel.UnormInt1010102Rev},
	{RGBAInteger, UnsignedInt2101010Rev}:     {Order: pixel.RGBA, Type: pixel.UnsignedInt1010102Rev},
	{DepthComponent, UnsignedInt248}:         {Order: pixel.D, Type: pixel.UnsignedInt248},
	{DepthStencil, UnsignedInt248}:           {Order: pixel.DS, Type: pixel.UnsignedInt248},
	{DepthStencil, Float32UnsignedInt248Rev}: {Order: pixel.DS, Type: pixel.Float32UnsignedInt248Rev},
}

// transferFormat resolves a (format, type) pair used for pixel transfers.
// It returns InvalidEnum for unknown values and InvalidOperation for known
// values that do not combine.
func transferFormat(format, typ Enum) (pixel.Format, Enum) {
	order, ok := transferOrders[format]
	if !ok {
		return pixel.Format{}, InvalidEnum
	}
	if f, ok := packedTransfers[[2]Enum{format, typ}]; ok {
		return f, NoError
	}
	types, ok := transferTypes[typ]
	if !ok {
		if isPackedType(typ) {
			return pixel.Format{}, InvalidOperation
		}
		return pixel.Format{}, InvalidEnum
	}
	switch order {
	case pixel.DS:
		return pixel.Format{}, InvalidOperation
	case pixel.D:
		switch typ {
		case UnsignedShort, UnsignedInt, Float:
		default:
			return pixel.Format{}, InvalidOperation
		}
	case pixel.S:
		if typ != UnsignedByte {
			return pixel.Format{}, InvalidOperation
		}
		return pixel.Format{Order: pixel.S, Type: pixel.UnsignedInt8}, NoError
	}
	integer := integerTransferFormats[format]
	if integer && (typ == HalfFloat || typ == Float) || !integer && typ == Int {
		return pixel.Format{}, InvalidOperation
	}
	t := types[0]
	if integer {
		t = types[1]
	}
	f := pixel.Format{Order: order, Type: t}
	if !f.IsValid() {
		return pixel.Format{}, InvalidOperation
	}
	return f, NoError
}

func isPackedType(typ Enum) bool {
	switch typ {
	case UnsignedShort565, UnsignedShort4444, UnsignedShort5551,
		UnsignedInt2101010Rev, UnsignedInt248, Float32UnsignedInt248Rev:
		return true
	}
	return false
}

// storageFormat resolves the internal format of a TexImage call. Unsized
// formats take their storage from the transfer format.
func storageFormat(internalFormat, format Enum, transfer pixel.Format) (pixel.Format, Enum) {
	if f, ok := sizedFormats[internalFormat]; ok {
		return f, NoError
	}
	if _, ok := transferOrders[internalFormat]; !ok {
		return pixel.Format{}, InvalidValue
	}
	if internalFormat != format || integerTransferFormats[format] {
		return pixel.Format{}, InvalidOperation
	}
	return transfer, NoError
}

// transferCompatible reports whether data in the transfer format can be
// stored into (or read from) the storage format.
func transferCompatible(storage, transfer pixel.Format) bool {
	switch {
	case storage.HasDepth() || storage.HasStencil():
		return storage.HasDepth() == transfer.HasDepth() && storage.HasStencil() == transfer.HasStencil()
	case transfer.HasDepth() || transfer.HasStencil():
		return false
	case storage.IsInteger() || transfer.IsInteger():
		return storage.IsInteger() && transfer.IsInteger() && storage.Class() == transfer.Class()
	}
	return true
}

// readCompatible is transferCompatible for reads, where a depth or stencil
// transfer may select one aspect of a combined depth/stencil surface.
func readCompatible(storage, transfer pixel.Format) bool {
	switch transfer.Order {
	case pixel.D:
		return storage.HasDepth()
	case pixel.S:
		return storage.HasStencil()
	}
	return transferCompatible(storage, transfer)
}

// colorRenderable reports whether a format can be a color attachment.
func colorRenderable(f pixel.Format) bool {
	if !f.IsColor() {
		return false
	}
	switch f.Order {
	case pixel.A, pixel.L, pixel.LA, pixel.SRGB:
		return false
	}
	return f.Class() != pixel.ClassSnorm
}

// pixelStore holds the PACK_* or UNPACK_* parameters.
type pixelStore struct {
	alignment   int
	rowLength   int
	skipRows    int
	skipPixels  int
	imageHeight int
	skipImages  int
}

func defaultPixelStore() pixelStore {
	return pixelStore{alignment: 4}
}

// layout returns the byte offset of the first pixel, the row and slice
// pitches, and the total number of bytes a w x h x d transfer touches.
func (ps pixelStore) layout(f pixel.Format, w, h, d int) (offset, rowPitch, slicePitch, size int) {
	psz := f.PixelSize()
	rowPixels := w
	if ps.rowLength > 0 {
		rowPixels = ps.rowLength
	}
	rowPitch = alignUp(rowPixels*psz, ps.alignment)
	rows := h
	if ps.imageHeight > 0 {
		rows = ps.imageHeight
	}
	slicePitch = rows * rowPitch
	offset = ps.skipImages*slicePitch + ps.skipRows*rowPitch + ps.skipPixels*psz
	if w == 0 || h == 0 || d == 0 {
		return offset, rowPitch, slicePitch, 0
	}
	size = offset + (d-1)*slicePitch + (h-1)*rowPitch + w*psz
	return offset, rowPitch, slicePitch, size
}

// view returns an access over data laid out by the store parameters, or
// false if data is too short.
func (ps pixelStore) view(f pixel.Format, w, h, d int, data []byte) (pixel.Access, bool) {
	offset, rowPitch, slicePitch, size := ps.layout(f, w, h, d)
	if size == 0 {
		return pixel.NewAccessWithPitch(f, w, h, d, rowPitch, slicePitch, nil), true
	}
	if size > len(data) {
		return pixel.Access{}, false
	}
	return pixel.NewAccessWithPitch(f, w, h, d, rowPitch, slicePitch, data[offset:]), true
}

// transferData returns the memory a transfer uses: client when no buffer is
// bound, otherwise the buffer store from offset. Client memory together with
// a bound buffer fails, as does an offset past the end of the store.
func transferData(buf *bufferObject, client []byte, offset int) ([]byte, bool) {
	if buf == nil {
		return client, true
	}
	if client != nil || offset > len(buf.data) {
		return nil, false
	}
	return buf.data[offset:], true
}

func (ps *pixelStore) set(pname Enum, v int) bool {
	switch pname {
	case UnpackAlignment, PackAlignment:
		ps.alignment = v
	case UnpackRowLength, PackRowLength:
		ps.rowLength = v
	case UnpackSkipRows, PackSkipRows:
		ps.skipRows = v
	case UnpackSkipPixels, PackSkipPixels:
		ps.skipPixels = v
	case UnpackImageHeight:
		ps.imageHeight = v
	case UnpackSkipImages:
		ps.skipImages = v
	default:
		return false
	}
	return true
}

func alignUp(v, a int) int {
	return (v + a - 1) / a * a
}

// PixelStorei sets a pixel pack or unpack parameter.
func (c *ReferenceContext) PixelStorei(pname Enum, param int32) {
	c.enter("PixelStorei")
	v := int(param)
	var ps *pixelStore
	switch pname {
	case PackAlignment, PackRowLength, PackSkipRows, PackSkipPixels:
		ps = &c.pack
	case UnpackAlignment, UnpackRowLength, UnpackSkipRows, UnpackSkipPixels,
		UnpackImageHeight, UnpackSkipImages:
		ps = &c.unpack
	default:
		c.setError(InvalidEnum)
		return
	}
	if v < 0 {
		c.setError(InvalidValue)
		return
	}
	if pname == PackAlignment || pname == UnpackAlignment {
		switch v {
		case 1, 2, 4, 8:
		default:
			c.setError(InvalidValue)
			return
		}
	}
	ps.set(pname, v)
}
