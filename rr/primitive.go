package rr

import (
	"encoding/binary"
	"fmt"
)

// PrimitiveType is the topology of a draw call.
type PrimitiveType uint8

const (
	PrimitivePoints PrimitiveType = iota
	PrimitiveLines
	PrimitiveLineStrip
	PrimitiveLineLoop
	PrimitiveTriangles
	PrimitiveTriangleStrip
	PrimitiveTriangleFan
)

// String returns the GL name of the topology.
func (t PrimitiveType) String() string {
	switch t {
	case PrimitivePoints:
		return "POINTS"
	case PrimitiveLines:
		return "LINES"
	case PrimitiveLineStrip:
		return "LINE_STRIP"
	case PrimitiveLineLoop:
		return "LINE_LOOP"
	case PrimitiveTriangles:
		return "TRIANGLES"
	case PrimitiveTriangleStrip:
		return "TRIANGLE_STRIP"
	case PrimitiveTriangleFan:
		return "TRIANGLE_FAN"
	}
	return fmt.Sprintf("PrimitiveType(%d)", uint8(t))
}

// IsTriangle reports whether the topology produces triangles.
func (t PrimitiveType) IsTriangle() bool {
	return t >= PrimitiveTriangles
}

// IsLine reports whether the topology produces lines.
func (t PrimitiveType) IsLine() bool {
	return t >= PrimitiveLines && t <= PrimitiveLineLoop
}

// IndexType is the storage type of an index buffer.
type IndexType uint8

const (
	IndexUint8 IndexType = iota
	IndexUint16
	IndexUint32
)

// Size returns the byte size of one index.
func (t IndexType) Size() int {
	switch t {
	case IndexUint8:
		return 1
	case IndexUint16:
		return 2
	}
	return 4
}

// DrawIndices is the index source of an indexed draw.
type DrawIndices struct {
	Data       []byte // starts at the first index
	Type       IndexType
	BaseVertex int
}

// PrimitiveList names the vertices of a draw call: either First..First+Count
// or Count indices read from Indices.
type PrimitiveList struct {
	Type    PrimitiveType
	Count   int
	First   int
	Indices *DrawIndices
}

// element returns the raw index and the vertex index of element i.
func (l *PrimitiveList) element(i int) (uint32, int) {
	if l.Indices == nil {
		return uint32(l.First + i), l.First + i
	}
	d := l.Indices
	var raw uint32
	switch d.Type {
	case IndexUint8:
		raw = uint32(d.Data[i])
	case IndexUint16:
		raw = uint32(binary.LittleEndian.Uint16(d.Data[2*i:]))
	default:
		raw = binary.LittleEndian.Uint32(d.Data[4*i:])
	}
	return raw, int(raw) + d.BaseVertex
}

// Triangle, Line and Point hold assembled primitives. The provoking vertex
// is always the last one.
type (
	Triangle struct{ V [3]*VertexPacket }
	Line     struct{ V [2]*VertexPacket }
	Point    struct{ V *VertexPacket }
)

// assembleTriangles builds triangles from one restart-free run of vertices.
func assembleTriangles(t PrimitiveType, v []*VertexPacket, out []Triangle) []Triangle {
	switch t {
	case PrimitiveTriangles:
		for i := 0; i+2 < len(v); i += 3 {
			out = append(out, Triangle{[3]*VertexPacket{v[i], v[i+1], v[i+2]}})
		}
	case PrimitiveTriangleStrip:
		for i := 0; i+2 < len(v); i++ {
			if i%2 == 0 {
				out = append(out, Triangle{[3]*VertexPacket{v[i], v[i+1], v[i+2]}})
			} else {
				out = append(out, Triangle{[3]*VertexPacket{v[i+1], v[i], v[i+2]}})
			}
		}
	case PrimitiveTriangleFan:
		for i := 1; i+1 < len(v); i++ {
			out = append(out, Triangle{[3]*VertexPacket{v[0], v[i], v[i+1]}})
		}
	}
	return out
}

// assembleLines builds lines from one restart-free run of vertices.
func assembleLines(t PrimitiveType, v []*VertexPacket, out []Line) []Line {
	switch t {
	case PrimitiveLines:
		for i := 0; i+1 < len(v); i += 2 {
			out = append(out, Line{[2]*VertexPacket{v[i], v[i+1]}})
		}
	case PrimitiveLineStrip, PrimitiveLineLoop:
		for i := 0; i+1 < len(v); i++ {
			out = append(out, Line{[2]*VertexPacket{v[i], v[i+1]}})
		}
		if t == PrimitiveLineLoop && len(v) > 1 {
			out = append(out, Line{[2]*VertexPacket{v[len(v)-1], v[0]}})
		}
	}
	return out
}

// splitRestart splits a vertex sequence at nil entries, which mark restart
// indices.
func splitRestart(v []*VertexPacket) [][]*VertexPacket {
	var runs [][]*VertexPacket
	start := 0
	for i, p := range v {
		if p == nil {
			if i > start {
				runs = append(runs, v[start:i])
			}
			start = i + 1
		}
	}
	if start < len(v) {
		runs = append(runs, v[start:])
	}
	return runs
}
