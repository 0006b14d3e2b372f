// Package vec provides the small fixed-size vector and matrix types shared by
// the reference rasterizer, its samplers and user-supplied shaders.
//
// The types are plain arrays so that the compiler can keep them in registers
// and index them in loops, in the same spirit as the lane types used by the
// packetized shading code.
package vec

import "math"

// Vec2 is a two-component float vector.
type Vec2 [2]float32

// Vec3 is a three-component float vector.
type Vec3 [3]float32

// Vec4 is a four-component float vector. Colors are stored as (R, G, B, A),
// positions as (X, Y, Z, W).
type Vec4 [4]float32

// IVec4 is a four-component signed integer vector.
type IVec4 [4]int32

// UVec4 is a four-component unsigned integer vector.
type UVec4 [4]uint32

// BVec4 is a four-component boolean vector.
type BVec4 [4]bool

// V4 creates a Vec4.
func V4(x, y, z, w float32) Vec4 {
	return Vec4{x, y, z, w}
}

// Splat4 creates a Vec4 with every component set to v.
func Splat4(v float32) Vec4 {
	return Vec4{v, v, v, v}
}

// X returns the first component.
func (v Vec4) X() float32 { return v[0] }

// Y returns the second component.
func (v Vec4) Y() float32 { return v[1] }

// Z returns the third component.
func (v Vec4) Z() float32 { return v[2] }

// W returns the fourth component.
func (v Vec4) W() float32 { return v[3] }

// XYZ returns the first three components.
func (v Vec4) XYZ() Vec3 { return Vec3{v[0], v[1], v[2]} }

// Add returns the component-wise sum.
func (v Vec4) Add(w Vec4) Vec4 {
	var r Vec4
	for i := range v {
		r[i] = v[i] + w[i]
	}
	return r
}

// Sub returns the component-wise difference.
func (v Vec4) Sub(w Vec4) Vec4 {
	var r Vec4
	for i := range v {
		r[i] = v[i] - w[i]
	}
	return r
}

// Mul returns the component-wise product.
func (v Vec4) Mul(w Vec4) Vec4 {
	var r Vec4
	for i := range v {
		r[i] = v[i] * w[i]
	}
	return r
}

// Scale returns the vector multiplied by s.
func (v Vec4) Scale(s float32) Vec4 {
	var r Vec4
	for i := range v {
		r[i] = v[i] * s
	}
	return r
}

// Dot returns the dot product.
func (v Vec4) Dot(w Vec4) float32 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] + v[3]*w[3]
}

// Lerp interpolates between v (t=0) and w (t=1).
func (v Vec4) Lerp(w Vec4, t float32) Vec4 {
	var r Vec4
	for i := range v {
		r[i] = v[i] + (w[i]-v[i])*t
	}
	return r
}

// Clamp clamps every component to [lo, hi].
func (v Vec4) Clamp(lo, hi float32) Vec4 {
	var r Vec4
	for i := range v {
		r[i] = min(max(v[i], lo), hi)
	}
	return r
}

// Abs returns the component-wise absolute value.
func (v Vec4) Abs() Vec4 {
	var r Vec4
	for i := range v {
		r[i] = float32(math.Abs(float64(v[i])))
	}
	return r
}

// Max returns the component-wise maximum.
func (v Vec4) Max(w Vec4) Vec4 {
	var r Vec4
	for i := range v {
		r[i] = max(v[i], w[i])
	}
	return r
}

// Min returns the component-wise minimum.
func (v Vec4) Min(w Vec4) Vec4 {
	var r Vec4
	for i := range v {
		r[i] = min(v[i], w[i])
	}
	return r
}

// Equal reports whether every component of v and w differs by at most eps.
func (v Vec4) Equal(w Vec4, eps float32) bool {
	for i := range v {
		if float32(math.Abs(float64(v[i]-w[i]))) > eps {
			return false
		}
	}
	return true
}

// ToIVec4 truncates every component to int32.
func (v Vec4) ToIVec4() IVec4 {
	return IVec4{int32(v[0]), int32(v[1]), int32(v[2]), int32(v[3])}
}

// ToVec4 converts to float components.
func (v IVec4) ToVec4() Vec4 {
	return Vec4{float32(v[0]), float32(v[1]), float32(v[2]), float32(v[3])}
}

// ToUVec4 reinterprets the components as unsigned.
func (v IVec4) ToUVec4() UVec4 {
	return UVec4{uint32(v[0]), uint32(v[1]), uint32(v[2]), uint32(v[3])}
}

// ToIVec4 reinterprets the components as signed.
func (v UVec4) ToIVec4() IVec4 {
	return IVec4{int32(v[0]), int32(v[1]), int32(v[2]), int32(v[3])}
}

// ToVec4 converts to float components.
func (v UVec4) ToVec4() Vec4 {
	return Vec4{float32(v[0]), float32(v[1]), float32(v[2]), float32(v[3])}
}

// Add returns the component-wise sum.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]} }

// Sub returns the component-wise difference.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]} }

// Scale returns the vector multiplied by s.
func (v Vec3) Scale(s float32) Vec3 { return Vec3{v[0] * s, v[1] * s, v[2] * s} }

// Dot returns the dot product.
func (v Vec3) Dot(w Vec3) float32 { return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] }

// Add returns the component-wise sum.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v[0] + w[0], v[1] + w[1]} }

// Sub returns the component-wise difference.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v[0] - w[0], v[1] - w[1]} }

// Scale returns the vector multiplied by s.
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v[0] * s, v[1] * s} }
