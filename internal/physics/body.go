package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/aykamko/minecrust/internal/world"
)

const (
	// contactSkin keeps resolved bodies a hair away from surfaces so
	// the next sweep does not start inside the block.
	contactSkin = 0.001

	maxResolveIterations = 3

	// candidateRange is the half-extent of the block scan around the
	// body, in blocks.
	candidateRange = 3
)

// Body is a physics-driven box. Position is the bottom center; Velocity
// is the displacement applied per tick.
type Body struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Width    float32
	Height   float32

	OnGround bool
	Flying   bool
}

// Box returns the body's world-space AABB.
func (b *Body) Box() AABB {
	half := b.Width / 2
	return AABB{
		Min: mgl32.Vec3{b.Position.X() - half, b.Position.Y(), b.Position.Z() - half},
		Max: mgl32.Vec3{b.Position.X() + half, b.Position.Y() + b.Height, b.Position.Z() + half},
	}
}

// solidAt treats blocks in unloaded chunks as solid so bodies cannot
// fall through terrain that has not streamed in yet.
func solidAt(w *world.World, x, y, z int) bool {
	t, loaded := w.GetBlock(x, y, z)
	if !loaded {
		return true
	}
	return t.Solid()
}

// overlapsUnloaded reports whether the box spans any cell of an
// unloaded chunk.
func overlapsUnloaded(w *world.World, box AABB) bool {
	for x := int(math.Floor(float64(box.Min.X()))); x < int(math.Ceil(float64(box.Max.X()))); x++ {
		for y := int(math.Floor(float64(box.Min.Y()))); y < int(math.Ceil(float64(box.Max.Y()))); y++ {
			for z := int(math.Floor(float64(box.Min.Z()))); z < int(math.Ceil(float64(box.Max.Z()))); z++ {
				if _, loaded := w.GetBlock(x, y, z); !loaded {
					return true
				}
			}
		}
	}
	return false
}

// candidates collects solid block boxes near the body.
func candidates(w *world.World, box AABB) []AABB {
	cx := int(math.Floor(float64(box.Min.X()+box.Max.X()) / 2))
	cy := int(math.Floor(float64(box.Min.Y()+box.Max.Y()) / 2))
	cz := int(math.Floor(float64(box.Min.Z()+box.Max.Z()) / 2))

	var out []AABB
	for x := cx - candidateRange; x <= cx+candidateRange; x++ {
		for y := cy - candidateRange; y <= cy+candidateRange; y++ {
			for z := cz - candidateRange; z <= cz+candidateRange; z++ {
				if solidAt(w, x, y, z) {
					out = append(out, BlockAABB(x, y, z))
				}
			}
		}
	}
	return out
}

// Step applies gravity and moves the body by its velocity, resolving
// collisions axis by axis: sweep to the earliest contact, cancel the
// blocked axis, repeat with the remaining displacement.
func (b *Body) Step(w *world.World, gravity float32) {
	if !b.Flying {
		b.Velocity[1] -= gravity
	}
	b.OnGround = false

	// A body inside not-yet-streamed terrain holds still until the
	// chunks arrive; pushing out of phantom blocks would fling it.
	if overlapsUnloaded(w, b.Box()) {
		b.Velocity = mgl32.Vec3{}
		return
	}

	b.resolveOverlap(w)

	disp := b.Velocity
	for iter := 0; iter < maxResolveIterations; iter++ {
		if disp == (mgl32.Vec3{}) {
			break
		}
		box := b.Box()

		earliest := float32(math.Inf(1))
		var hitNormal [3]int
		hit := false
		for _, blk := range candidates(w, box) {
			if entry, normal, ok := Sweep(box, disp, blk); ok && entry < earliest {
				earliest, hitNormal, hit = entry, normal, true
			}
		}
		if !hit {
			break
		}

		move := earliest - contactSkin
		if move < 0 {
			move = 0
		}
		b.Position = b.Position.Add(disp.Mul(move))
		remaining := 1 - move
		for i := 0; i < 3; i++ {
			disp[i] *= remaining
			if hitNormal[i] != 0 {
				disp[i] = 0
				b.Velocity[i] = 0
			}
		}
		if hitNormal[1] > 0 {
			b.OnGround = true
		}
	}
	b.Position = b.Position.Add(disp)
}

// resolveOverlap pushes the body out of any block it already
// intersects, along the axis of least penetration.
func (b *Body) resolveOverlap(w *world.World) {
	box := b.Box()
	for _, blk := range candidates(w, box) {
		if !box.Intersects(blk) {
			continue
		}
		p := Penetration(box, blk)
		axis := 0
		for i := 1; i < 3; i++ {
			if abs(p[i]) < abs(p[axis]) {
				axis = i
			}
		}
		var push mgl32.Vec3
		push[axis] = p[axis] + sign(p[axis])*contactSkin
		b.Position = b.Position.Add(push)
		b.Velocity[axis] = 0
		if axis == 1 && p[axis] > 0 {
			b.OnGround = true
		}
		box = b.Box()
	}
}

// Damp scales horizontal velocity toward zero; vertical velocity keeps
// a lighter air damping so falls still terminate.
func (b *Body) Damp(ground, air float32) {
	b.Velocity[0] *= ground
	b.Velocity[2] *= ground
	b.Velocity[1] *= air
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
