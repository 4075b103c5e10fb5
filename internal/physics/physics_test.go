package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aykamko/minecrust/internal/block"
	"github.com/aykamko/minecrust/internal/world"
)

const gravity = 0.02

// flatWorld installs a loaded chunk at origin and its neighbors with a
// stone floor at y=4.
func flatWorld(t *testing.T) *world.World {
	t.Helper()
	w := world.New()
	for cx := int32(-1); cx <= 1; cx++ {
		for cz := int32(-1); cz <= 1; cz++ {
			require.True(t, w.Install(world.NewChunk(world.ChunkCoord{X: cx, Y: 0, Z: cz})))
		}
	}
	for x := -16; x < 32; x++ {
		for z := -16; z < 32; z++ {
			w.SetBlock(x, 4, z, block.Stone)
		}
	}
	return w
}

func playerBody(pos mgl32.Vec3) Body {
	return Body{Position: pos, Width: 0.6, Height: 1.8}
}

func TestSweepHitsAlongVelocity(t *testing.T) {
	a := AABB{Min: mgl32.Vec3{0, 2, 0}, Max: mgl32.Vec3{1, 3, 1}}
	b := BlockAABB(0, 0, 0)

	entry, normal, ok := Sweep(a, mgl32.Vec3{0, -2, 0}, b)
	require.True(t, ok)
	assert.InDelta(t, 0.5, entry, 1e-6)
	assert.Equal(t, [3]int{0, 1, 0}, normal)
}

func TestSweepMissesWhenStoppingShort(t *testing.T) {
	a := AABB{Min: mgl32.Vec3{0, 2, 0}, Max: mgl32.Vec3{1, 3, 1}}
	b := BlockAABB(0, 0, 0)

	_, _, ok := Sweep(a, mgl32.Vec3{0, -0.5, 0}, b)
	assert.False(t, ok)
}

func TestSweepZeroVelocityAxis(t *testing.T) {
	a := AABB{Min: mgl32.Vec3{5, 0, 0}, Max: mgl32.Vec3{6, 1, 1}}
	b := BlockAABB(0, 0, 0)

	_, _, ok := Sweep(a, mgl32.Vec3{0, 0, 0}, b)
	assert.False(t, ok)
}

func TestSweepSidewaysNormal(t *testing.T) {
	a := AABB{Min: mgl32.Vec3{3, 0, 0}, Max: mgl32.Vec3{4, 1, 1}}
	b := BlockAABB(0, 0, 0)

	entry, normal, ok := Sweep(a, mgl32.Vec3{-4, 0, 0}, b)
	require.True(t, ok)
	assert.InDelta(t, 0.5, entry, 1e-6)
	assert.Equal(t, [3]int{1, 0, 0}, normal)
}

func TestCandidatesCollectNearbySolids(t *testing.T) {
	w := flatWorld(t)
	b := playerBody(mgl32.Vec3{8, 5, 8})

	boxes := candidates(w, b.Box())
	require.NotEmpty(t, boxes)
	// The floor cell directly under the body is a candidate, and
	// nothing outside the scan range leaks in.
	assert.Contains(t, boxes, BlockAABB(8, 4, 8))
	center := b.Box().Min.Add(b.Box().Max).Mul(0.5)
	for _, blk := range boxes {
		for i := 0; i < 3; i++ {
			assert.LessOrEqual(t, abs(blk.Min[i]-center[i]), float32(candidateRange+1))
		}
	}
}

func TestCandidatesTreatUnloadedAsSolid(t *testing.T) {
	w := world.New()
	b := playerBody(mgl32.Vec3{8, 8, 8})
	boxes := candidates(w, b.Box())
	// Every cell in the scan cube counts as solid in an unloaded world.
	n := 2*candidateRange + 1
	assert.Len(t, boxes, n*n*n)
}

func TestBodyFallsAndLands(t *testing.T) {
	w := flatWorld(t)
	b := playerBody(mgl32.Vec3{8, 9, 8})

	for i := 0; i < 200; i++ {
		b.Step(w, gravity)
	}
	assert.True(t, b.OnGround)
	assert.InDelta(t, 5, b.Position.Y(), 0.01, "body rests on top of the floor")
	assert.Zero(t, b.Velocity.Y())
}

func TestBodyNeverPenetratesFloor(t *testing.T) {
	w := flatWorld(t)
	b := playerBody(mgl32.Vec3{8, 12, 8})
	// A deliberately large downward velocity must still stop at the
	// surface.
	b.Velocity = mgl32.Vec3{0, -3, 0}

	for i := 0; i < 50; i++ {
		b.Step(w, gravity)
		assert.GreaterOrEqual(t, b.Position.Y(), float32(5)-0.01)
	}
}

func TestHorizontalBlockedVerticalFree(t *testing.T) {
	w := flatWorld(t)
	// Wall in front of the body.
	for y := 5; y < 9; y++ {
		w.SetBlock(10, y, 8, block.Stone)
		w.SetBlock(10, y, 7, block.Stone)
		w.SetBlock(10, y, 9, block.Stone)
	}
	b := playerBody(mgl32.Vec3{8.5, 5, 8.5})
	b.Velocity = mgl32.Vec3{2, 0, 0}

	b.Step(w, gravity)
	assert.Less(t, b.Position.X(), float32(10)-0.3+0.01, "wall stops x movement")
	assert.Zero(t, b.Velocity.X())
}

func TestUnloadedChunksAreSolid(t *testing.T) {
	w := world.New()
	b := playerBody(mgl32.Vec3{8, 8, 8})

	for i := 0; i < 10; i++ {
		b.Step(w, gravity)
	}
	assert.InDelta(t, 8, b.Position.Y(), 0.05, "body must not fall through unloaded terrain")
}

func TestOverlapPushOut(t *testing.T) {
	w := flatWorld(t)
	// Body lowered into the floor: least penetration is upward.
	b := playerBody(mgl32.Vec3{8, 4.7, 8})

	b.Step(w, gravity)
	assert.GreaterOrEqual(t, b.Position.Y(), float32(5)-0.01)
	assert.True(t, b.OnGround)
}

func TestGroundedFlagClearsInAir(t *testing.T) {
	w := flatWorld(t)
	b := playerBody(mgl32.Vec3{8, 5.001, 8})
	for i := 0; i < 5; i++ {
		b.Step(w, gravity)
	}
	require.True(t, b.OnGround)

	b.Velocity = mgl32.Vec3{0, 0.3, 0}
	b.Step(w, gravity)
	assert.False(t, b.OnGround)
}

func TestFlyingIgnoresGravity(t *testing.T) {
	w := flatWorld(t)
	b := playerBody(mgl32.Vec3{8, 9, 8})
	b.Flying = true

	for i := 0; i < 20; i++ {
		b.Step(w, gravity)
	}
	assert.InDelta(t, 9, b.Position.Y(), 1e-4)
}

func TestDamp(t *testing.T) {
	b := playerBody(mgl32.Vec3{})
	b.Velocity = mgl32.Vec3{1, 1, 1}
	b.Damp(0.5, 0.9)
	assert.Equal(t, mgl32.Vec3{0.5, 0.9, 0.5}, b.Velocity)
}

func TestPenetration(t *testing.T) {
	a := AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 2, 1}}
	b := AABB{Min: mgl32.Vec3{0.8, -1, 0}, Max: mgl32.Vec3{1.8, 3, 1}}
	p := Penetration(a, b)
	// Cheapest separation on x is pushing a left by 0.2.
	assert.InDelta(t, -0.2, p.X(), 1e-6)
}
