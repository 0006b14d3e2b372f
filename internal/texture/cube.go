package texture

import "github.com/gogpu/glref/vec"

// SelectCubeFace returns the face a direction points at: the axis with the
// largest magnitude, preferring X then Y on ties.
func SelectCubeFace(d vec.Vec3) CubeFace {
	ax, ay, az := absf(d[0]), absf(d[1]), absf(d[2])
	switch {
	case ax >= ay && ax >= az:
		if d[0] >= 0 {
			return FacePositiveX
		}
		return FaceNegativeX
	case ay >= ax && ay >= az:
		if d[1] >= 0 {
			return FacePositiveY
		}
		return FaceNegativeY
	default:
		if d[2] >= 0 {
			return FacePositiveZ
		}
		return FaceNegativeZ
	}
}

// projectToFace returns the face coordinates (sc/|ma|, tc/|ma|) in [-1, 1]
// of direction d on the given face.
func projectToFace(face CubeFace, d vec.Vec3) (float32, float32) {
	rx, ry, rz := d[0], d[1], d[2]
	var sc, tc, ma float32
	switch face {
	case FacePositiveX:
		sc, tc, ma = -rz, -ry, rx
	case FaceNegativeX:
		sc, tc, ma = rz, -ry, rx
	case FacePositiveY:
		sc, tc, ma = rx, rz, ry
	case FaceNegativeY:
		sc, tc, ma = rx, -rz, ry
	case FacePositiveZ:
		sc, tc, ma = rx, -ry, rz
	default:
		sc, tc, ma = -rx, -ry, rz
	}
	ma = absf(ma)
	if ma == 0 {
		return 0, 0
	}
	return sc / ma, tc / ma
}

// faceToDir is the inverse of projectToFace for a unit major axis.
func faceToDir(face CubeFace, u, v float32) vec.Vec3 {
	switch face {
	case FacePositiveX:
		return vec.Vec3{1, -v, -u}
	case FaceNegativeX:
		return vec.Vec3{-1, -v, u}
	case FacePositiveY:
		return vec.Vec3{u, 1, v}
	case FaceNegativeY:
		return vec.Vec3{u, -1, -v}
	case FacePositiveZ:
		return vec.Vec3{u, -v, 1}
	default:
		return vec.Vec3{-u, -v, -1}
	}
}

// CubeFaceCoords maps a direction to its face and normalized (s, t) in [0, 1].
func CubeFaceCoords(d vec.Vec3) (CubeFace, float32, float32) {
	face := SelectCubeFace(d)
	u, v := projectToFace(face, d)
	return face, (u + 1) / 2, (v + 1) / 2
}

// cubeTexel is one texel of a cube footprint after edge resolution.
type cubeTexel struct {
	face   CubeFace
	x, y   int
	corner bool
}

// resolveCubeTexel maps a possibly out-of-range texel of face to the texel
// of the adjacent face that shares the edge. Texels beyond both edges
// (corners) have no single source and are flagged.
func resolveCubeTexel(face CubeFace, x, y, size int) cubeTexel {
	outX := x < 0 || x >= size
	outY := y < 0 || y >= size
	switch {
	case !outX && !outY:
		return cubeTexel{face: face, x: x, y: y}
	case outX && outY:
		return cubeTexel{corner: true}
	}

	n := float32(size)
	u := 2*(float32(x)+0.5)/n - 1
	v := 2*(float32(y)+0.5)/n - 1

	over := faceToDir(face, u, v)
	next := SelectCubeFace(over)
	edge := faceToDir(face, min(max(u, -1), 1), min(max(v, -1), 1))
	nu, nv := projectToFace(next, edge)

	nx := min(max(int(floorf((nu+1)/2*n)), 0), size-1)
	ny := min(max(int(floorf((nv+1)/2*n)), 0), size-1)
	return cubeTexel{face: next, x: nx, y: ny}
}

// sampleCube filters one level of a cube map (or one cube of a cube array).
func (t *Texture) sampleCube(level, layer int, filter FilterMode, coord vec.Vec4, ref *float32) vec.Vec4 {
	s := &t.Sampler
	face, fs, ft := CubeFaceCoords(coord.XYZ())
	a := t.cubeFaceAccess(level, layer, face)

	if !s.Seamless || filter == Nearest {
		if !s.Seamless {
			return sample2D(s, a, 0, filter, fs, ft, ref, false)
		}
		size := a.Width()
		x := min(max(int(floorf(unnormalize(fs, size))), 0), size-1)
		y := min(max(int(floorf(unnormalize(ft, size))), 0), size-1)
		return fetch(s, a, x, y, 0, ref)
	}

	size := a.Width()
	fu := unnormalize(fs, size) - 0.5
	fv := unnormalize(ft, size) - 0.5
	i0, j0 := int(floorf(fu)), int(floorf(fv))
	alpha, beta := fu-floorf(fu), fv-floorf(fv)

	texels := [4]cubeTexel{
		resolveCubeTexel(face, i0, j0, size),
		resolveCubeTexel(face, i0+1, j0, size),
		resolveCubeTexel(face, i0, j0+1, size),
		resolveCubeTexel(face, i0+1, j0+1, size),
	}

	var c [4]vec.Vec4
	cornerIdx := -1
	for i, tx := range texels {
		if tx.corner {
			cornerIdx = i
			continue
		}
		c[i] = fetch(s, t.cubeFaceAccess(level, layer, tx.face), tx.x, tx.y, 0, ref)
	}
	if cornerIdx >= 0 {
		var sum vec.Vec4
		for i := range c {
			if i != cornerIdx {
				sum = sum.Add(c[i])
			}
		}
		c[cornerIdx] = sum.Scale(1.0 / 3)
	}
	return bilerp(c[0], c[1], c[2], c[3], alpha, beta)
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
