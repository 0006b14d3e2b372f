package rr

import (
	"encoding/binary"
	"math"

	"github.com/x448/float16"

	"github.com/gogpu/glref/vec"
)

// VertexAttribType is the storage type of a vertex attribute component.
type VertexAttribType uint8

const (
	VertexAttribFloat VertexAttribType = iota
	VertexAttribHalfFloat
	VertexAttribFixed
	VertexAttribByte
	VertexAttribUnsignedByte
	VertexAttribShort
	VertexAttribUnsignedShort
	VertexAttribInt
	VertexAttribUnsignedInt
	VertexAttribInt2101010Rev
	VertexAttribUnsignedInt2101010Rev
)

// ComponentSize returns the byte size of one component; packed types
// report the size of the whole packed value.
func (t VertexAttribType) ComponentSize() int {
	switch t {
	case VertexAttribByte, VertexAttribUnsignedByte:
		return 1
	case VertexAttribHalfFloat, VertexAttribShort, VertexAttribUnsignedShort:
		return 2
	default:
		return 4
	}
}

// IsPacked reports whether all components share one 32-bit word.
func (t VertexAttribType) IsPacked() bool {
	return t == VertexAttribInt2101010Rev || t == VertexAttribUnsignedInt2101010Rev
}

// VertexAttrib describes where the vertex stage reads one input from.
//
// An attribute with a nil Pointer reads Generic for every vertex. This is the
// path for disabled arrays and for arrays whose buffer has been deleted.
type VertexAttrib struct {
	Type       VertexAttribType
	Size       int // components, 1..4
	Normalized bool
	Pure       bool // integer fetch without conversion to float
	Stride     int  // 0 means tightly packed
	Divisor    int  // 0 means per-vertex

	Pointer []byte // data starting at the first element
	Generic GenericVec4
}

// ElementSize returns the byte size of one element.
func (a *VertexAttrib) ElementSize() int {
	if a.Type.IsPacked() {
		return 4
	}
	return a.Size * a.Type.ComponentSize()
}

func (a *VertexAttrib) element(instanceNdx, vertexNdx int) []byte {
	if a.Pointer == nil {
		return nil
	}
	ndx := vertexNdx
	if a.Divisor > 0 {
		ndx = instanceNdx / a.Divisor
	}
	stride := a.Stride
	if stride == 0 {
		stride = a.ElementSize()
	}
	off := ndx * stride
	size := a.ElementSize()
	if ndx < 0 || off+size > len(a.Pointer) {
		return nil
	}
	return a.Pointer[off : off+size]
}

// ReadVertexAttribFloat fetches the attribute as floats. Components beyond
// Size default to (0, 0, 0, 1). Out-of-range elements read as zero.
func ReadVertexAttribFloat(a *VertexAttrib, instanceNdx, vertexNdx int) vec.Vec4 {
	if a.Pointer == nil {
		return a.Generic.Float()
	}
	p := a.element(instanceNdx, vertexNdx)
	out := vec.V4(0, 0, 0, 1)
	if p == nil {
		return out
	}
	if a.Type.IsPacked() {
		return unpackFloat2101010(a, binary.LittleEndian.Uint32(p))
	}
	cs := a.Type.ComponentSize()
	for i := range a.Size {
		out[i] = componentToFloat(a.Type, a.Normalized, p[i*cs:])
	}
	return out
}

// ReadVertexAttribInt fetches a pure integer attribute.
func ReadVertexAttribInt(a *VertexAttrib, instanceNdx, vertexNdx int) vec.IVec4 {
	if a.Pointer == nil {
		return a.Generic.Int()
	}
	out := vec.IVec4{0, 0, 0, 1}
	p := a.element(instanceNdx, vertexNdx)
	if p == nil {
		return out
	}
	cs := a.Type.ComponentSize()
	for i := range a.Size {
		out[i] = componentToInt(a.Type, p[i*cs:])
	}
	return out
}

// ReadVertexAttribUint fetches a pure unsigned integer attribute.
func ReadVertexAttribUint(a *VertexAttrib, instanceNdx, vertexNdx int) vec.UVec4 {
	if a.Pointer == nil {
		return a.Generic.Uint()
	}
	return ReadVertexAttribInt(a, instanceNdx, vertexNdx).ToUVec4()
}

// ReadVertexAttrib fetches the attribute as the declared input type.
func ReadVertexAttrib(a *VertexAttrib, t GenericVecType, instanceNdx, vertexNdx int) GenericVec4 {
	switch t {
	case GenericVecTypeInt32:
		return FromIVec4(ReadVertexAttribInt(a, instanceNdx, vertexNdx))
	case GenericVecTypeUint32:
		return FromUVec4(ReadVertexAttribUint(a, instanceNdx, vertexNdx))
	}
	return FromVec4(ReadVertexAttribFloat(a, instanceNdx, vertexNdx))
}

func componentToInt(t VertexAttribType, p []byte) int32 {
	switch t {
	case VertexAttribByte:
		return int32(int8(p[0]))
	case VertexAttribUnsignedByte:
		return int32(p[0])
	case VertexAttribShort:
		return int32(int16(binary.LittleEndian.Uint16(p)))
	case VertexAttribUnsignedShort:
		return int32(binary.LittleEndian.Uint16(p))
	default:
		return int32(binary.LittleEndian.Uint32(p))
	}
}

func componentToFloat(t VertexAttribType, normalized bool, p []byte) float32 {
	switch t {
	case VertexAttribFloat:
		return math.Float32frombits(binary.LittleEndian.Uint32(p))
	case VertexAttribHalfFloat:
		return float16.Frombits(binary.LittleEndian.Uint16(p)).Float32()
	case VertexAttribFixed:
		return float32(float64(int32(binary.LittleEndian.Uint32(p))) / 65536)
	case VertexAttribByte:
		return intToFloat(int64(int8(p[0])), 8, true, normalized)
	case VertexAttribUnsignedByte:
		return intToFloat(int64(p[0]), 8, false, normalized)
	case VertexAttribShort:
		return intToFloat(int64(int16(binary.LittleEndian.Uint16(p))), 16, true, normalized)
	case VertexAttribUnsignedShort:
		return intToFloat(int64(binary.LittleEndian.Uint16(p)), 16, false, normalized)
	case VertexAttribInt:
		return intToFloat(int64(int32(binary.LittleEndian.Uint32(p))), 32, true, normalized)
	case VertexAttribUnsignedInt:
		return intToFloat(int64(binary.LittleEndian.Uint32(p)), 32, false, normalized)
	}
	return 0
}

// intToFloat converts an integer component. Signed normalized values use
// the GL ES 3 rule max(c / (2^(b-1) - 1), -1).
func intToFloat(v int64, bits uint, signed, normalized bool) float32 {
	if !normalized {
		return float32(v)
	}
	if signed {
		m := float64(int64(1)<<(bits-1) - 1)
		return float32(max(float64(v)/m, -1))
	}
	return float32(float64(v) / float64(uint64(1)<<bits-1))
}

func unpackFloat2101010(a *VertexAttrib, v uint32) vec.Vec4 {
	signed := a.Type == VertexAttribInt2101010Rev
	var out vec.Vec4
	for i := range 4 {
		bits := uint(10)
		if i == 3 {
			bits = 2
		}
		raw := int64(v>>(10*uint(i))) & (1<<bits - 1)
		if signed && raw >= 1<<(bits-1) {
			raw -= 1 << bits
		}
		out[i] = intToFloat(raw, bits, signed, a.Normalized)
	}
	return out
}
