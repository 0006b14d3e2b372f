// Package pixel describes texel storage formats and provides typed access to
// raw pixel buffers.
//
// A Format is the pair (channel order, channel type), mirroring how GL
// internal formats and transfer format/type pairs decompose. Every texture
// level, renderbuffer, default framebuffer surface and client transfer buffer
// in the reference context is viewed through an Access.
package pixel

import "fmt"

// ChannelOrder describes which components a format stores and in what order.
type ChannelOrder uint8

const (
	R ChannelOrder = iota
	A
	RG
	RGB
	RGBA
	BGRA
	L
	LA
	SRGB
	SRGBA
	D
	S
	DS

	orderCount
)

// ChannelType describes how each component (or a packed group of components)
// is encoded.
type ChannelType uint8

const (
	SnormInt8 ChannelType = iota
	SnormInt16
	UnormInt8
	UnormInt16
	UnormInt32
	UnormShort565
	UnormShort4444
	UnormShort5551
	UnormInt1010102Rev
	SignedInt8
	SignedInt16
	SignedInt32
	UnsignedInt8
	UnsignedInt16
	UnsignedInt32
	UnsignedInt1010102Rev
	UnsignedInt248
	HalfFloat
	Float
	Float32UnsignedInt248Rev

	typeCount
)

// Class groups channel types by how their values behave in the pipeline.
type Class uint8

const (
	// ClassFloat covers floating-point types.
	ClassFloat Class = iota
	// ClassUnorm covers unsigned normalized fixed-point types.
	ClassUnorm
	// ClassSnorm covers signed normalized fixed-point types.
	ClassSnorm
	// ClassSignedInteger covers pure signed integer types.
	ClassSignedInteger
	// ClassUnsignedInteger covers pure unsigned integer types.
	ClassUnsignedInteger
)

// Format is a texel storage format.
type Format struct {
	Order ChannelOrder
	Type  ChannelType
}

// typeInfo contains metadata for a channel type.
type typeInfo struct {
	// size is the number of bytes per channel, or per pixel for packed types.
	size   int
	packed bool
	class  Class
	bits   int
}

var typeInfoTable = [typeCount]typeInfo{
	SnormInt8:                {size: 1, class: ClassSnorm, bits: 8},
	SnormInt16:               {size: 2, class: ClassSnorm, bits: 16},
	UnormInt8:                {size: 1, class: ClassUnorm, bits: 8},
	UnormInt16:               {size: 2, class: ClassUnorm, bits: 16},
	UnormInt32:               {size: 4, class: ClassUnorm, bits: 32},
	UnormShort565:            {size: 2, packed: true, class: ClassUnorm},
	UnormShort4444:           {size: 2, packed: true, class: ClassUnorm},
	UnormShort5551:           {size: 2, packed: true, class: ClassUnorm},
	UnormInt1010102Rev:       {size: 4, packed: true, class: ClassUnorm},
	SignedInt8:               {size: 1, class: ClassSignedInteger, bits: 8},
	SignedInt16:              {size: 2, class: ClassSignedInteger, bits: 16},
	SignedInt32:              {size: 4, class: ClassSignedInteger, bits: 32},
	UnsignedInt8:             {size: 1, class: ClassUnsignedInteger, bits: 8},
	UnsignedInt16:            {size: 2, class: ClassUnsignedInteger, bits: 16},
	UnsignedInt32:            {size: 4, class: ClassUnsignedInteger, bits: 32},
	UnsignedInt1010102Rev:    {size: 4, packed: true, class: ClassUnsignedInteger},
	UnsignedInt248:           {size: 4, packed: true, class: ClassUnorm},
	HalfFloat:                {size: 2, class: ClassFloat, bits: 16},
	Float:                    {size: 4, class: ClassFloat, bits: 32},
	Float32UnsignedInt248Rev: {size: 8, packed: true, class: ClassFloat},
}

// field is one bit field of a packed pixel value.
type field struct {
	shift, bits uint
}

// packedLayout lists the bit fields of packed types in storage channel order.
var packedLayout = map[ChannelType][]field{
	UnormShort565:         {{11, 5}, {5, 6}, {0, 5}},
	UnormShort4444:        {{12, 4}, {8, 4}, {4, 4}, {0, 4}},
	UnormShort5551:        {{11, 5}, {6, 5}, {1, 5}, {0, 1}},
	UnormInt1010102Rev:    {{0, 10}, {10, 10}, {20, 10}, {30, 2}},
	UnsignedInt1010102Rev: {{0, 10}, {10, 10}, {20, 10}, {30, 2}},
}

// numChannels is the number of stored channels per order.
var numChannels = [orderCount]int{
	R: 1, A: 1, RG: 2, RGB: 3, RGBA: 4, BGRA: 4, L: 1, LA: 2,
	SRGB: 3, SRGBA: 4, D: 1, S: 1, DS: 2,
}

const (
	swzZero int8 = -1
	swzOne  int8 = -2
)

// readSwizzle maps RGBA output components to stored channel indices.
var readSwizzle = [orderCount][4]int8{
	R:     {0, swzZero, swzZero, swzOne},
	A:     {swzZero, swzZero, swzZero, 0},
	RG:    {0, 1, swzZero, swzOne},
	RGB:   {0, 1, 2, swzOne},
	RGBA:  {0, 1, 2, 3},
	BGRA:  {2, 1, 0, 3},
	L:     {0, 0, 0, swzOne},
	LA:    {0, 0, 0, 1},
	SRGB:  {0, 1, 2, swzOne},
	SRGBA: {0, 1, 2, 3},
	D:     {0, swzZero, swzZero, swzOne},
	S:     {0, swzZero, swzZero, swzOne},
	DS:    {0, 1, swzZero, swzOne},
}

// writeSwizzle maps stored channels to the RGBA input component they take.
var writeSwizzle = [orderCount][]int{
	R:     {0},
	A:     {3},
	RG:    {0, 1},
	RGB:   {0, 1, 2},
	RGBA:  {0, 1, 2, 3},
	BGRA:  {2, 1, 0, 3},
	L:     {0},
	LA:    {0, 3},
	SRGB:  {0, 1, 2},
	SRGBA: {0, 1, 2, 3},
	D:     {0},
	S:     {0},
	DS:    {0, 1},
}

// IsValid reports whether the order/type combination is a storable format.
func (f Format) IsValid() bool {
	if f.Order >= orderCount || f.Type >= typeCount {
		return false
	}
	switch f.Type {
	case UnormShort565:
		return f.Order == RGB
	case UnormShort4444, UnormShort5551, UnormInt1010102Rev, UnsignedInt1010102Rev:
		return f.Order == RGBA
	case UnsignedInt248:
		return f.Order == D || f.Order == DS
	case Float32UnsignedInt248Rev:
		return f.Order == DS
	}
	switch f.Order {
	case D:
		return f.Type == UnormInt16 || f.Type == UnormInt32 || f.Type == Float
	case S:
		return f.Type == UnsignedInt8
	case DS:
		return false
	case SRGB, SRGBA:
		return f.Type == UnormInt8
	}
	return true
}

// PixelSize returns the number of bytes per pixel.
func (f Format) PixelSize() int {
	info := typeInfoTable[f.Type]
	if info.packed {
		return info.size
	}
	return info.size * numChannels[f.Order]
}

// NumChannels returns the number of stored channels.
func (f Format) NumChannels() int {
	return numChannels[f.Order]
}

// Class returns the channel class of the format. Depth formats report the
// class of their depth component.
func (f Format) Class() Class {
	return typeInfoTable[f.Type].class
}

// IsInteger reports whether the format holds pure (non-normalized) integers.
func (f Format) IsInteger() bool {
	c := f.Class()
	return c == ClassSignedInteger || c == ClassUnsignedInteger
}

// HasDepth reports whether the format stores depth.
func (f Format) HasDepth() bool {
	return f.Order == D || f.Order == DS
}

// HasStencil reports whether the format stores stencil.
func (f Format) HasStencil() bool {
	return f.Order == S || f.Order == DS
}

// IsColor reports whether the format stores color data.
func (f Format) IsColor() bool {
	return !f.HasDepth() && !f.HasStencil()
}

// IsSRGB reports whether color channels are sRGB encoded.
func (f Format) IsSRGB() bool {
	return f.Order == SRGB || f.Order == SRGBA
}

// WithoutSRGB returns the same format with a linear channel order.
// Transfers between client memory and sRGB images move the encoded values
// unchanged, so conversions use this view.
func (f Format) WithoutSRGB() Format {
	switch f.Order {
	case SRGB:
		return Format{RGB, f.Type}
	case SRGBA:
		return Format{RGBA, f.Type}
	}
	return f
}

// BitDepth returns the number of bits of each RGBA output component.
// Components that are not stored report zero.
func (f Format) BitDepth() [4]int {
	var stored []int
	switch f.Type {
	case UnsignedInt248:
		stored = []int{24, 8}
	case Float32UnsignedInt248Rev:
		stored = []int{32, 8}
	default:
		if layout, ok := packedLayout[f.Type]; ok {
			for _, fl := range layout {
				stored = append(stored, int(fl.bits))
			}
		} else {
			for range numChannels[f.Order] {
				stored = append(stored, typeInfoTable[f.Type].bits)
			}
		}
	}

	var bits [4]int
	for i, s := range readSwizzle[f.Order] {
		if s >= 0 && int(s) < len(stored) {
			bits[i] = stored[s]
		}
	}
	return bits
}

// StencilBits returns the stencil width, or zero.
func (f Format) StencilBits() int {
	switch {
	case f.Order == S:
		return 8
	case f.Order == DS:
		return 8
	}
	return 0
}

// DepthBits returns the depth width, or zero.
func (f Format) DepthBits() int {
	if !f.HasDepth() {
		return 0
	}
	return f.BitDepth()[0]
}

var orderNames = [orderCount]string{
	R: "R", A: "A", RG: "RG", RGB: "RGB", RGBA: "RGBA", BGRA: "BGRA", L: "L", LA: "LA",
	SRGB: "sRGB", SRGBA: "sRGBA", D: "D", S: "S", DS: "DS",
}

var typeNames = [typeCount]string{
	SnormInt8: "SnormInt8", SnormInt16: "SnormInt16", UnormInt8: "UnormInt8",
	UnormInt16: "UnormInt16", UnormInt32: "UnormInt32", UnormShort565: "UnormShort565",
	UnormShort4444: "UnormShort4444", UnormShort5551: "UnormShort5551",
	UnormInt1010102Rev: "UnormInt1010102Rev", SignedInt8: "SignedInt8",
	SignedInt16: "SignedInt16", SignedInt32: "SignedInt32", UnsignedInt8: "UnsignedInt8",
	UnsignedInt16: "UnsignedInt16", UnsignedInt32: "UnsignedInt32",
	UnsignedInt1010102Rev: "UnsignedInt1010102Rev", UnsignedInt248: "UnsignedInt248",
	HalfFloat: "HalfFloat", Float: "Float", Float32UnsignedInt248Rev: "Float32UnsignedInt248Rev",
}

// String returns a string representation of the format.
func (f Format) String() string {
	if f.Order >= orderCount || f.Type >= typeCount {
		return fmt.Sprintf("Format(%d, %d)", f.Order, f.Type)
	}
	return orderNames[f.Order] + "_" + typeNames[f.Type]
}
