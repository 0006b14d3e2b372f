package pixel

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/x448/float16"

	"github.com/gogpu/glref/internal/color"
	"github.com/gogpu/glref/vec"
)

// Access is a view of a 3D pixel buffer in a given format.
//
// Rows run bottom-up as in GL: y = 0 addresses the first row in memory.
// Multi-byte values are stored little-endian. An Access never owns its
// data; copies of an Access alias the same bytes.
type Access struct {
	format     Format
	width      int
	height     int
	depth      int
	rowPitch   int
	slicePitch int
	data       []byte
}

// NewAccess returns a tightly packed view of data.
func NewAccess(format Format, width, height, depth int, data []byte) Access {
	rowPitch := width * format.PixelSize()
	return NewAccessWithPitch(format, width, height, depth, rowPitch, rowPitch*height, data)
}

// NewAccessWithPitch returns a view of data with explicit row and slice pitches.
func NewAccessWithPitch(format Format, width, height, depth, rowPitch, slicePitch int, data []byte) Access {
	if !format.IsValid() {
		panic(fmt.Sprintf("pixel: invalid format %v", format))
	}
	if width < 0 || height < 0 || depth < 0 {
		panic(fmt.Sprintf("pixel: negative size %dx%dx%d", width, height, depth))
	}
	if width > 0 && height > 0 && depth > 0 {
		need := (depth-1)*slicePitch + (height-1)*rowPitch + width*format.PixelSize()
		if need > len(data) {
			panic(fmt.Sprintf("pixel: buffer of %d bytes too small for %dx%dx%d %v", len(data), width, height, depth, format))
		}
	}
	return Access{
		format:     format,
		width:      width,
		height:     height,
		depth:      depth,
		rowPitch:   rowPitch,
		slicePitch: slicePitch,
		data:       data,
	}
}

// Alloc allocates a zeroed, tightly packed buffer and returns a view of it.
func Alloc(format Format, width, height, depth int) Access {
	return NewAccess(format, width, height, depth, make([]byte, width*height*depth*format.PixelSize()))
}

// Format returns the pixel format.
func (a Access) Format() Format { return a.format }

// Width returns the width in pixels.
func (a Access) Width() int { return a.width }

// Height returns the height in pixels.
func (a Access) Height() int { return a.height }

// Depth returns the number of slices.
func (a Access) Depth() int { return a.depth }

// RowPitch returns the byte distance between rows.
func (a Access) RowPitch() int { return a.rowPitch }

// SlicePitch returns the byte distance between slices.
func (a Access) SlicePitch() int { return a.slicePitch }

// Data returns the underlying bytes.
func (a Access) Data() []byte { return a.data }

// Empty reports whether the view covers no pixels.
func (a Access) Empty() bool {
	return a.width == 0 || a.height == 0 || a.depth == 0
}

// Subregion returns a view of the box starting at (x, y, z).
func (a Access) Subregion(x, y, z, width, height, depth int) Access {
	if x < 0 || y < 0 || z < 0 || x+width > a.width || y+height > a.height || z+depth > a.depth {
		panic(fmt.Sprintf("pixel: subregion (%d,%d,%d)+(%d,%d,%d) outside %dx%dx%d",
			x, y, z, width, height, depth, a.width, a.height, a.depth))
	}
	if width == 0 || height == 0 || depth == 0 {
		return Access{format: a.format, width: width, height: height, depth: depth,
			rowPitch: a.rowPitch, slicePitch: a.slicePitch}
	}
	off := a.offset(x, y, z)
	return Access{
		format:     a.format,
		width:      width,
		height:     height,
		depth:      depth,
		rowPitch:   a.rowPitch,
		slicePitch: a.slicePitch,
		data:       a.data[off:],
	}
}

// Layer returns the 2D view of slice z.
func (a Access) Layer(z int) Access {
	return a.Subregion(0, 0, z, a.width, a.height, 1)
}

func (a Access) offset(x, y, z int) int {
	if uint(x) >= uint(a.width) || uint(y) >= uint(a.height) || uint(z) >= uint(a.depth) {
		panic(fmt.Sprintf("pixel: (%d,%d,%d) outside %dx%dx%d", x, y, z, a.width, a.height, a.depth))
	}
	return z*a.slicePitch + y*a.rowPitch + x*a.format.PixelSize()
}

func (a Access) pixelBytes(x, y, z int) []byte {
	off := a.offset(x, y, z)
	return a.data[off : off+a.format.PixelSize()]
}

// Pixel reads the pixel at (x, y, z) as floats.
// sRGB formats are decoded to linear. Depth formats return (d, 0, 0, 1).
func (a Access) Pixel(x, y, z int) vec.Vec4 {
	p := a.pixelBytes(x, y, z)
	f := a.format

	switch f.Type {
	case UnsignedInt248:
		v := binary.LittleEndian.Uint32(p)
		d := float32(float64(v>>8) / float64(1<<24-1))
		if f.Order == DS {
			return vec.Vec4{d, float32(v & 0xff), 0, 1}
		}
		return vec.Vec4{d, 0, 0, 1}
	case Float32UnsignedInt248Rev:
		d := math.Float32frombits(binary.LittleEndian.Uint32(p))
		return vec.Vec4{d, float32(p[4]), 0, 1}
	}

	var raw [4]float32
	n := f.NumChannels()
	if layout, ok := packedLayout[f.Type]; ok {
		v := readPacked(p, typeInfoTable[f.Type].size)
		for i, fl := range layout {
			bits := (v >> fl.shift) & (1<<fl.bits - 1)
			if f.Class() == ClassUnorm {
				raw[i] = float32(float64(bits) / float64(uint64(1)<<fl.bits-1))
			} else {
				raw[i] = float32(bits)
			}
		}
	} else {
		size := typeInfoTable[f.Type].size
		for i := range n {
			raw[i] = channelToFloat(p[i*size:], f.Type)
		}
	}

	if f.Order == SRGB || f.Order == SRGBA {
		for i := range 3 {
			raw[i] = color.SRGB8ToLinear(p[i])
		}
	}
	return swizzleFloat(raw, f.Order)
}

// PixelInt reads the pixel at (x, y, z) as integers. Normalized and float
// formats are converted by truncation.
func (a Access) PixelInt(x, y, z int) vec.IVec4 {
	f := a.format
	if !f.IsInteger() {
		v := a.Pixel(x, y, z)
		return vec.IVec4{int32(v[0]), int32(v[1]), int32(v[2]), int32(v[3])}
	}

	p := a.pixelBytes(x, y, z)
	var raw [4]int32
	if layout, ok := packedLayout[f.Type]; ok {
		v := readPacked(p, typeInfoTable[f.Type].size)
		for i, fl := range layout {
			raw[i] = int32((v >> fl.shift) & (1<<fl.bits - 1))
		}
	} else {
		size := typeInfoTable[f.Type].size
		for i := range f.NumChannels() {
			raw[i] = channelToInt(p[i*size:], f.Type)
		}
	}

	var out vec.IVec4
	for i, s := range readSwizzle[f.Order] {
		switch {
		case s == swzZero:
			out[i] = 0
		case s == swzOne:
			out[i] = 1
		default:
			out[i] = raw[s]
		}
	}
	return out
}

// PixelUint reads the pixel at (x, y, z) as unsigned integers.
func (a Access) PixelUint(x, y, z int) vec.UVec4 {
	return a.PixelInt(x, y, z).ToUVec4()
}

// SetPixel writes a float color at (x, y, z). Values are clamped to the
// representable range of normalized formats and encoded for sRGB formats.
func (a Access) SetPixel(c vec.Vec4, x, y, z int) {
	p := a.pixelBytes(x, y, z)
	f := a.format

	if f.HasDepth() || f.HasStencil() {
		if f.HasDepth() {
			a.SetPixDepth(c[0], x, y, z)
		} else {
			a.SetPixStencil(int32(c[0]), x, y, z)
		}
		return
	}

	if f.IsSRGB() {
		c = color.LinearToSRGBVec(c)
	}

	swz := writeSwizzle[f.Order]
	if layout, ok := packedLayout[f.Type]; ok {
		var v uint32
		for i, fl := range layout {
			maxv := uint32(1)<<fl.bits - 1
			var bits uint32
			if f.Class() == ClassUnorm {
				bits = uint32(roundHalfUp(clamp01(c[swz[i]]) * float32(maxv)))
			} else {
				bits = uint32(clampInt(int64(c[swz[i]]), 0, int64(maxv)))
			}
			v |= (bits & maxv) << fl.shift
		}
		writePacked(p, typeInfoTable[f.Type].size, v)
		return
	}

	size := typeInfoTable[f.Type].size
	for i, src := range swz {
		floatToChannel(p[i*size:], f.Type, c[src])
	}
}

// SetPixelInt writes an integer color at (x, y, z), saturating to the
// channel range.
func (a Access) SetPixelInt(c vec.IVec4, x, y, z int) {
	f := a.format
	if !f.IsInteger() {
		a.SetPixel(c.ToVec4(), x, y, z)
		return
	}

	p := a.pixelBytes(x, y, z)
	swz := writeSwizzle[f.Order]
	if layout, ok := packedLayout[f.Type]; ok {
		var v uint32
		for i, fl := range layout {
			maxv := int64(1)<<fl.bits - 1
			v |= uint32(clampInt(int64(c[swz[i]]), 0, maxv)) << fl.shift
		}
		writePacked(p, typeInfoTable[f.Type].size, v)
		return
	}

	size := typeInfoTable[f.Type].size
	for i, src := range swz {
		intToChannel(p[i*size:], f.Type, int64(c[src]))
	}
}

// SetPixelUint writes an unsigned integer color at (x, y, z).
func (a Access) SetPixelUint(c vec.UVec4, x, y, z int) {
	f := a.format
	if f.Class() != ClassUnsignedInteger {
		a.SetPixelInt(c.ToIVec4(), x, y, z)
		return
	}
	// Route through int64 so values above MaxInt32 survive.
	p := a.pixelBytes(x, y, z)
	swz := writeSwizzle[f.Order]
	if layout, ok := packedLayout[f.Type]; ok {
		var v uint32
		for i, fl := range layout {
			maxv := uint32(1)<<fl.bits - 1
			v |= min(c[swz[i]], maxv) << fl.shift
		}
		writePacked(p, typeInfoTable[f.Type].size, v)
		return
	}
	size := typeInfoTable[f.Type].size
	for i, src := range swz {
		intToChannel(p[i*size:], f.Type, int64(c[src]))
	}
}

// PixDepth reads the depth value at (x, y, z).
func (a Access) PixDepth(x, y, z int) float32 {
	f := a.format
	if !f.HasDepth() {
		panic(fmt.Sprintf("pixel: PixDepth on %v", f))
	}
	p := a.pixelBytes(x, y, z)
	switch f.Type {
	case UnsignedInt248:
		return float32(float64(binary.LittleEndian.Uint32(p)>>8) / float64(1<<24-1))
	case Float32UnsignedInt248Rev:
		return math.Float32frombits(binary.LittleEndian.Uint32(p))
	}
	return channelToFloat(p, f.Type)
}

// PixStencil reads the stencil value at (x, y, z).
func (a Access) PixStencil(x, y, z int) int32 {
	f := a.format
	p := a.pixelBytes(x, y, z)
	switch {
	case f.Order == S:
		return int32(p[0])
	case f.Type == UnsignedInt248:
		return int32(p[0])
	case f.Type == Float32UnsignedInt248Rev:
		return int32(p[4])
	}
	panic(fmt.Sprintf("pixel: PixStencil on %v", f))
}

// SetPixDepth writes a depth value at (x, y, z), clamped to [0, 1].
// The stencil part of combined formats is preserved.
func (a Access) SetPixDepth(d float32, x, y, z int) {
	f := a.format
	if !f.HasDepth() {
		panic(fmt.Sprintf("pixel: SetPixDepth on %v", f))
	}
	d = clamp01(d)
	p := a.pixelBytes(x, y, z)
	switch f.Type {
	case UnsignedInt248:
		v := binary.LittleEndian.Uint32(p)
		dv := uint32(roundHalfUp(d * float32(1<<24-1)))
		binary.LittleEndian.PutUint32(p, dv<<8|v&0xff)
	case Float32UnsignedInt248Rev:
		binary.LittleEndian.PutUint32(p, math.Float32bits(d))
	default:
		floatToChannel(p, f.Type, d)
	}
}

// SetPixStencil writes a stencil value at (x, y, z). Only the low 8 bits are
// stored. The depth part of combined formats is preserved.
func (a Access) SetPixStencil(s int32, x, y, z int) {
	f := a.format
	p := a.pixelBytes(x, y, z)
	switch {
	case f.Order == S, f.Type == UnsignedInt248:
		p[0] = byte(s)
	case f.Type == Float32UnsignedInt248Rev:
		p[4] = byte(s)
		p[5], p[6], p[7] = 0, 0, 0
	default:
		panic(fmt.Sprintf("pixel: SetPixStencil on %v", f))
	}
}

func swizzleFloat(raw [4]float32, order ChannelOrder) vec.Vec4 {
	var out vec.Vec4
	for i, s := range readSwizzle[order] {
		switch {
		case s == swzZero:
			out[i] = 0
		case s == swzOne:
			out[i] = 1
		default:
			out[i] = raw[s]
		}
	}
	return out
}

func readPacked(p []byte, size int) uint32 {
	if size == 2 {
		return uint32(binary.LittleEndian.Uint16(p))
	}
	return binary.LittleEndian.Uint32(p)
}

func writePacked(p []byte, size int, v uint32) {
	if size == 2 {
		binary.LittleEndian.PutUint16(p, uint16(v))
		return
	}
	binary.LittleEndian.PutUint32(p, v)
}

func channelToFloat(p []byte, t ChannelType) float32 {
	switch t {
	case SnormInt8:
		return max(float32(int8(p[0]))/127, -1)
	case SnormInt16:
		return max(float32(int16(binary.LittleEndian.Uint16(p)))/32767, -1)
	case UnormInt8:
		return float32(p[0]) / 255
	case UnormInt16:
		return float32(binary.LittleEndian.Uint16(p)) / 65535
	case UnormInt32:
		return float32(float64(binary.LittleEndian.Uint32(p)) / math.MaxUint32)
	case SignedInt8:
		return float32(int8(p[0]))
	case SignedInt16:
		return float32(int16(binary.LittleEndian.Uint16(p)))
	case SignedInt32:
		return float32(int32(binary.LittleEndian.Uint32(p)))
	case UnsignedInt8:
		return float32(p[0])
	case UnsignedInt16:
		return float32(binary.LittleEndian.Uint16(p))
	case UnsignedInt32:
		return float32(binary.LittleEndian.Uint32(p))
	case HalfFloat:
		return float16.Frombits(binary.LittleEndian.Uint16(p)).Float32()
	case Float:
		return math.Float32frombits(binary.LittleEndian.Uint32(p))
	}
	panic(fmt.Sprintf("pixel: unexpected channel type %v", typeNames[t]))
}

func channelToInt(p []byte, t ChannelType) int32 {
	switch t {
	case SignedInt8:
		return int32(int8(p[0]))
	case SignedInt16:
		return int32(int16(binary.LittleEndian.Uint16(p)))
	case SignedInt32:
		return int32(binary.LittleEndian.Uint32(p))
	case UnsignedInt8:
		return int32(p[0])
	case UnsignedInt16:
		return int32(binary.LittleEndian.Uint16(p))
	case UnsignedInt32:
		return int32(binary.LittleEndian.Uint32(p))
	}
	return int32(channelToFloat(p, t))
}

func floatToChannel(p []byte, t ChannelType, v float32) {
	switch t {
	case SnormInt8:
		p[0] = byte(int8(roundHalfUp(clampf(v, -1, 1) * 127)))
	case SnormInt16:
		binary.LittleEndian.PutUint16(p, uint16(int16(roundHalfUp(clampf(v, -1, 1)*32767))))
	case UnormInt8:
		p[0] = byte(roundHalfUp(clamp01(v) * 255))
	case UnormInt16:
		binary.LittleEndian.PutUint16(p, uint16(roundHalfUp(clamp01(v)*65535)))
	case UnormInt32:
		binary.LittleEndian.PutUint32(p, uint32(math.Floor(float64(clamp01(v))*math.MaxUint32+0.5)))
	case HalfFloat:
		binary.LittleEndian.PutUint16(p, float16.Fromfloat32(v).Bits())
	case Float:
		binary.LittleEndian.PutUint32(p, math.Float32bits(v))
	default:
		if math.IsNaN(float64(v)) {
			v = 0
		}
		intToChannel(p, t, int64(v))
	}
}

func intToChannel(p []byte, t ChannelType, v int64) {
	switch t {
	case SignedInt8:
		p[0] = byte(int8(clampInt(v, math.MinInt8, math.MaxInt8)))
	case SignedInt16:
		binary.LittleEndian.PutUint16(p, uint16(int16(clampInt(v, math.MinInt16, math.MaxInt16))))
	case SignedInt32:
		binary.LittleEndian.PutUint32(p, uint32(int32(clampInt(v, math.MinInt32, math.MaxInt32))))
	case UnsignedInt8:
		p[0] = byte(clampInt(v, 0, math.MaxUint8))
	case UnsignedInt16:
		binary.LittleEndian.PutUint16(p, uint16(clampInt(v, 0, math.MaxUint16)))
	case UnsignedInt32:
		binary.LittleEndian.PutUint32(p, uint32(clampInt(v, 0, math.MaxUint32)))
	default:
		floatToChannel(p, t, float32(v))
	}
}

func clamp01(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	return min(v, 1)
}

func clampf(v, lo, hi float32) float32 {
	if math.IsNaN(float64(v)) {
		return 0
	}
	return min(max(v, lo), hi)
}

func clampInt(v, lo, hi int64) int64 {
	return min(max(v, lo), hi)
}

func roundHalfUp(v float32) float32 {
	return float32(math.Floor(float64(v) + 0.5))
}
