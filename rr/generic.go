package rr

import (
	"math"

	"github.com/gogpu/glref/vec"
)

// GenericVecType is the component type of a shader input or output.
type GenericVecType uint8

const (
	GenericVecTypeFloat GenericVecType = iota
	GenericVecTypeInt32
	GenericVecTypeUint32
)

// String returns the type name.
func (t GenericVecType) String() string {
	switch t {
	case GenericVecTypeFloat:
		return "float"
	case GenericVecTypeInt32:
		return "int32"
	case GenericVecTypeUint32:
		return "uint32"
	}
	return "unknown"
}

// GenericVec4 holds four 32-bit components whose interpretation (float,
// signed or unsigned integer) is given by the declared GenericVecType.
type GenericVec4 [4]uint32

// FromVec4 stores float components.
func FromVec4(v vec.Vec4) GenericVec4 {
	var g GenericVec4
	for i, c := range v {
		g[i] = math.Float32bits(c)
	}
	return g
}

// FromIVec4 stores signed integer components.
func FromIVec4(v vec.IVec4) GenericVec4 {
	var g GenericVec4
	for i, c := range v {
		g[i] = uint32(c)
	}
	return g
}

// FromUVec4 stores unsigned integer components.
func FromUVec4(v vec.UVec4) GenericVec4 {
	return GenericVec4(v)
}

// Float reinterprets the components as floats.
func (g GenericVec4) Float() vec.Vec4 {
	var v vec.Vec4
	for i, c := range g {
		v[i] = math.Float32frombits(c)
	}
	return v
}

// Int reinterprets the components as signed integers.
func (g GenericVec4) Int() vec.IVec4 {
	var v vec.IVec4
	for i, c := range g {
		v[i] = int32(c)
	}
	return v
}

// Uint returns the components as unsigned integers.
func (g GenericVec4) Uint() vec.UVec4 {
	return vec.UVec4(g)
}
