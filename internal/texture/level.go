// Package texture implements texture level storage and GL sampling: wrap
// modes, nearest/linear filtering, mipmap selection from derivatives,
// seamless cube maps and depth comparison.
package texture

import (
	"fmt"

	"github.com/gogpu/glref/internal/pixel"
)

// MaxLevels is the number of mipmap levels a LevelArray can hold.
const MaxLevels = 16

// LevelArray owns the pixel storage for the mipmap levels of one image
// (a 2D texture, one cube face, or a whole array/3D texture).
type LevelArray struct {
	levels [MaxLevels]pixel.Access
	has    [MaxLevels]bool
}

// AllocLevel allocates zeroed storage for a level, replacing any existing
// allocation.
func (la *LevelArray) AllocLevel(level int, format pixel.Format, width, height, depth int) {
	checkLevel(level)
	la.levels[level] = pixel.Alloc(format, width, height, depth)
	la.has[level] = true
}

// HasLevel reports whether the level has storage.
func (la *LevelArray) HasLevel(level int) bool {
	return level >= 0 && level < MaxLevels && la.has[level]
}

// Level returns the storage of an allocated level. Accessing a level that
// was never allocated is a contract violation and panics.
func (la *LevelArray) Level(level int) pixel.Access {
	if !la.HasLevel(level) {
		panic(fmt.Sprintf("texture: level %d is not allocated", level))
	}
	return la.levels[level]
}

// ClearLevel releases the storage of a level.
func (la *LevelArray) ClearLevel(level int) {
	checkLevel(level)
	la.levels[level] = pixel.Access{}
	la.has[level] = false
}

// ClearAll releases every level.
func (la *LevelArray) ClearAll() {
	for i := range la.levels {
		la.ClearLevel(i)
	}
}

// Empty reports whether no level is allocated.
func (la *LevelArray) Empty() bool {
	for _, h := range la.has {
		if h {
			return false
		}
	}
	return true
}

// Update fills levels with views of the contiguous chain starting at level 0
// and returns how many were written. The chain ends at the first missing
// level or when levels is full.
func (la *LevelArray) Update(levels []pixel.Access) int {
	n := 0
	for n < len(levels) && la.HasLevel(n) {
		levels[n] = la.levels[n]
		n++
	}
	return n
}

func checkLevel(level int) {
	if level < 0 || level >= MaxLevels {
		panic(fmt.Sprintf("texture: level %d out of range [0, %d)", level, MaxLevels))
	}
}

// MipSize returns the size of a level given the base size, never below 1.
func MipSize(base, level int) int {
	return max(1, base>>level)
}
