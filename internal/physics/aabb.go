package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned box in world space.
type AABB struct {
	Min, Max mgl32.Vec3
}

// BlockAABB returns the unit box of the block at integer world coords.
func BlockAABB(x, y, z int) AABB {
	min := mgl32.Vec3{float32(x), float32(y), float32(z)}
	return AABB{Min: min, Max: min.Add(mgl32.Vec3{1, 1, 1})}
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X() < b.Max.X() && a.Max.X() > b.Min.X() &&
		a.Min.Y() < b.Max.Y() && a.Max.Y() > b.Min.Y() &&
		a.Min.Z() < b.Max.Z() && a.Max.Z() > b.Min.Z()
}

func (a AABB) Translate(d mgl32.Vec3) AABB {
	return AABB{Min: a.Min.Add(d), Max: a.Max.Add(d)}
}

// Sweep moves box a by displacement d against static box b. It returns
// the entry time in [0,1) and the hit normal, or ok=false when the
// boxes never touch during the move.
func Sweep(a AABB, d mgl32.Vec3, b AABB) (entry float32, normal [3]int, ok bool) {
	var entryT, exitT [3]float32
	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			// No motion on this axis: the boxes must already overlap
			// on it for any contact to happen.
			if a.Max[i] <= b.Min[i] || a.Min[i] >= b.Max[i] {
				return 0, normal, false
			}
			entryT[i] = float32(math.Inf(-1))
			exitT[i] = float32(math.Inf(1))
			continue
		}
		if d[i] > 0 {
			entryT[i] = (b.Min[i] - a.Max[i]) / d[i]
			exitT[i] = (b.Max[i] - a.Min[i]) / d[i]
		} else {
			entryT[i] = (b.Max[i] - a.Min[i]) / d[i]
			exitT[i] = (b.Min[i] - a.Max[i]) / d[i]
		}
	}

	entry = entryT[0]
	axis := 0
	for i := 1; i < 3; i++ {
		if entryT[i] > entry {
			entry = entryT[i]
			axis = i
		}
	}
	exit := float32(math.Min(float64(exitT[0]), math.Min(float64(exitT[1]), float64(exitT[2]))))

	if entry > exit || entry < 0 || entry >= 1 {
		return 0, normal, false
	}
	if d[axis] > 0 {
		normal[axis] = -1
	} else {
		normal[axis] = 1
	}
	return entry, normal, true
}

// Penetration returns, per axis, the smallest push that separates a
// from b. Only meaningful when the boxes intersect.
func Penetration(a, b AABB) mgl32.Vec3 {
	var p mgl32.Vec3
	for i := 0; i < 3; i++ {
		pos := b.Max[i] - a.Min[i]
		neg := b.Min[i] - a.Max[i]
		if pos < -neg {
			p[i] = pos
		} else {
			p[i] = neg
		}
	}
	return p
}
