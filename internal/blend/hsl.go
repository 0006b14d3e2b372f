package blend

import "github.com/gogpu/glref/vec"

// lum returns the luminosity of a color: 0.30*r + 0.59*g + 0.11*b.
func lum(c vec.Vec3) float32 {
	return 0.30*c[0] + 0.59*c[1] + 0.11*c[2]
}

// sat returns max(r, g, b) - min(r, g, b).
func sat(c vec.Vec3) float32 {
	return max(c[0], c[1], c[2]) - min(c[0], c[1], c[2])
}

// clipColor pulls out-of-range components back into [0, 1] toward the
// luminosity, keeping the luminosity unchanged.
func clipColor(c vec.Vec3) vec.Vec3 {
	l := lum(c)
	n := min(c[0], c[1], c[2])
	x := max(c[0], c[1], c[2])

	if n < 0 {
		for i := range c {
			c[i] = l + (c[i]-l)*l/(l-n)
		}
	}
	if x > 1 {
		for i := range c {
			c[i] = l + (c[i]-l)*(1-l)/(x-l)
		}
	}
	return c
}

// setLum shifts c to luminosity l.
func setLum(c vec.Vec3, l float32) vec.Vec3 {
	d := l - lum(c)
	return clipColor(vec.Vec3{c[0] + d, c[1] + d, c[2] + d})
}

// setSat rescales c to saturation s, keeping the order of its components.
// Gray input has no hue and becomes black.
func setSat(c vec.Vec3, s float32) vec.Vec3 {
	lo, mid, hi := order3(c)
	var out vec.Vec3
	if c[hi] > c[lo] {
		out[mid] = (c[mid] - c[lo]) * s / (c[hi] - c[lo])
		out[hi] = s
	}
	return out
}

// order3 returns the indices of the smallest, middle and largest components.
func order3(c vec.Vec3) (lo, mid, hi int) {
	switch {
	case c[0] <= c[1] && c[1] <= c[2]:
		return 0, 1, 2
	case c[0] <= c[2] && c[2] <= c[1]:
		return 0, 2, 1
	case c[2] <= c[0] && c[0] <= c[1]:
		return 2, 0, 1
	case c[1] <= c[0] && c[0] <= c[2]:
		return 1, 0, 2
	case c[1] <= c[2] && c[2] <= c[0]:
		return 1, 2, 0
	default:
		return 2, 1, 0
	}
}
