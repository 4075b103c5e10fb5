package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aykamko/minecrust/internal/block"
	"github.com/aykamko/minecrust/internal/world"
)

func installedWorld(coords ...world.ChunkCoord) *world.World {
	w := world.New()
	for _, c := range coords {
		w.Install(world.NewChunk(c))
	}
	return w
}

var origin = world.ChunkCoord{X: 0, Y: 0, Z: 0}

// originNeighbors is origin plus its six face neighbors.
var originNeighbors = []world.ChunkCoord{
	origin,
	{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
}

func TestBuildUnloaded(t *testing.T) {
	w := world.New()
	_, ok := Build(w, origin)
	assert.False(t, ok)
}

func TestBuildEmptyChunk(t *testing.T) {
	w := installedWorld(origin)
	m, ok := Build(w, origin)
	require.True(t, ok)
	assert.Zero(t, m.FaceCount())
}

func TestSingleBlockSixFaces(t *testing.T) {
	w := installedWorld(origin)
	w.SetBlock(8, 8, 8, block.Stone)

	m, ok := Build(w, origin)
	require.True(t, ok)
	assert.Equal(t, 6, m.FaceCount())
	assert.Empty(t, m.Translucent)

	// All six instances sit at the block center.
	for _, inst := range m.Opaque {
		assert.Equal(t, mgl32.Vec4{8.5, 8.5, 8.5, 1}, inst.Position)
	}
}

func TestEnclosedBlockEmitsNothing(t *testing.T) {
	w := installedWorld(origin)
	// 3x3x3 solid cube; the center block is fully enclosed.
	for x := 7; x <= 9; x++ {
		for y := 7; y <= 9; y++ {
			for z := 7; z <= 9; z++ {
				w.SetBlock(x, y, z, block.Stone)
			}
		}
	}

	m, ok := Build(w, origin)
	require.True(t, ok)
	// 9 faces per side of the cube.
	assert.Equal(t, 54, m.FaceCount())
	center := mgl32.Vec4{8.5, 8.5, 8.5, 1}
	for _, inst := range m.Opaque {
		assert.NotEqual(t, center, inst.Position, "enclosed block must emit no faces")
	}
}

func TestSingleExposedNeighborSingleFace(t *testing.T) {
	w := installedWorld(origin)
	for x := 7; x <= 9; x++ {
		for y := 7; y <= 9; y++ {
			for z := 7; z <= 9; z++ {
				w.SetBlock(x, y, z, block.Stone)
			}
		}
	}
	// Open one cell above the center: the center block now has exactly
	// one visible face, pointing up.
	w.SetBlock(8, 9, 8, block.Air)

	m, ok := Build(w, origin)
	require.True(t, ok)
	center := mgl32.Vec4{8.5, 8.5, 8.5, 1}
	var centerFaces []FaceInstance
	for _, inst := range m.Opaque {
		if inst.Position == center {
			centerFaces = append(centerFaces, inst)
		}
	}
	require.Len(t, centerFaces, 1)
	assert.Equal(t, FaceRotation(block.FaceTop), centerFaces[0].Rotation)
}

func TestUnloadedNeighborSkipsBoundaryFaces(t *testing.T) {
	w := installedWorld(origin)
	w.SetBlock(0, 8, 8, block.Stone)

	m, ok := Build(w, origin)
	require.True(t, ok)
	// The -X face borders an unloaded chunk and is skipped.
	assert.Equal(t, 5, m.FaceCount())
	for _, inst := range m.Opaque {
		assert.NotEqual(t, FaceRotation(block.FaceWest), inst.Rotation)
	}
}

func TestLoadedEmptyNeighborEmitsBoundaryFace(t *testing.T) {
	w := installedWorld(originNeighbors...)
	w.SetBlock(0, 8, 8, block.Stone)

	m, ok := Build(w, origin)
	require.True(t, ok)
	assert.Equal(t, 6, m.FaceCount())
}

func TestSolidNeighborAcrossChunkOccludes(t *testing.T) {
	w := installedWorld(origin, world.ChunkCoord{X: -1})
	w.SetBlock(0, 8, 8, block.Stone)
	w.SetBlock(-1, 8, 8, block.Stone)

	m, ok := Build(w, origin)
	require.True(t, ok)
	assert.Equal(t, 5, m.FaceCount())
}

func TestWaterDoesNotOccludeItself(t *testing.T) {
	w := installedWorld(origin)
	w.SetBlock(8, 8, 8, block.Water)
	w.SetBlock(9, 8, 8, block.Water)

	m, ok := Build(w, origin)
	require.True(t, ok)
	assert.Empty(t, m.Opaque)
	// 6+6 faces minus the two shared ones.
	assert.Len(t, m.Translucent, 10)
}

func TestWaterBehindStoneCulled(t *testing.T) {
	w := installedWorld(origin)
	w.SetBlock(8, 8, 8, block.Water)
	w.SetBlock(9, 8, 8, block.Stone)

	m, ok := Build(w, origin)
	require.True(t, ok)
	// Water loses its +X face against the stone; stone keeps all six
	// because water does not occlude.
	assert.Len(t, m.Translucent, 5)
	assert.Len(t, m.Opaque, 6)
}

func TestAtlasOffsetsPerFace(t *testing.T) {
	w := installedWorld(origin)
	w.SetBlock(8, 8, 8, block.Grass)

	m, ok := Build(w, origin)
	require.True(t, ok)
	require.Equal(t, 6, m.FaceCount())

	byRotation := map[mgl32.Quat]mgl32.Vec2{}
	for _, inst := range m.Opaque {
		byRotation[inst.Rotation] = inst.AtlasOffset
	}
	top := block.Grass.FaceOffset(block.FaceTop)
	bottom := block.Grass.FaceOffset(block.FaceBottom)
	side := block.Grass.FaceOffset(block.FaceSouth)
	assert.Equal(t, mgl32.Vec2{top.U, top.V}, byRotation[FaceRotation(block.FaceTop)])
	assert.Equal(t, mgl32.Vec2{bottom.U, bottom.V}, byRotation[FaceRotation(block.FaceBottom)])
	assert.Equal(t, mgl32.Vec2{side.U, side.V}, byRotation[FaceRotation(block.FaceEast)])
}

func TestRawLayout(t *testing.T) {
	inst := FaceInstance{
		Position:    mgl32.Vec4{1, 2, 3, 1},
		Rotation:    FaceRotation(block.FaceTop),
		AtlasOffset: mgl32.Vec2{2, 0},
		ColorAdjust: mgl32.Vec4{0.5, 0.6, 0.7, 1},
	}
	raw := inst.Raw()
	assert.Equal(t, float32(1), raw[0])
	assert.Equal(t, float32(3), raw[2])
	// Identity quaternion packs as (0,0,0,1).
	assert.Equal(t, [4]float32{0, 0, 0, 1}, [4]float32{raw[4], raw[5], raw[6], raw[7]})
	assert.Equal(t, float32(2), raw[8])
	assert.Equal(t, float32(1), raw[13])
}
