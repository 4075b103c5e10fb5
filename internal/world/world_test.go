package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aykamko/minecrust/internal/block"
)

func TestGetBlockUnloaded(t *testing.T) {
	w := New()
	bt, loaded := w.GetBlock(0, 0, 0)
	assert.Equal(t, block.Air, bt)
	assert.False(t, loaded)
}

func TestSetBlockUnloadedDropped(t *testing.T) {
	w := New()
	assert.False(t, w.SetBlock(0, 0, 0, block.Stone))
}

func TestSetGetBlock(t *testing.T) {
	w := New()
	require.True(t, w.Install(NewChunk(ChunkCoord{0, 0, 0})))
	require.True(t, w.Install(NewChunk(ChunkCoord{-1, -1, -1})))

	assert.True(t, w.SetBlock(3, 4, 5, block.Stone))
	bt, loaded := w.GetBlock(3, 4, 5)
	assert.True(t, loaded)
	assert.Equal(t, block.Stone, bt)

	assert.True(t, w.SetBlock(-1, -2, -3, block.Dirt))
	bt, loaded = w.GetBlock(-1, -2, -3)
	assert.True(t, loaded)
	assert.Equal(t, block.Dirt, bt)
}

func TestBorderEditDirtiesNeighbor(t *testing.T) {
	w := New()
	a := NewChunk(ChunkCoord{0, 0, 0})
	b := NewChunk(ChunkCoord{1, 0, 0})
	require.True(t, w.Install(a))
	require.True(t, w.Install(b))
	a.ClearDirty()
	b.ClearDirty()

	w.SetBlock(15, 8, 8, block.Stone)
	assert.True(t, a.Dirty())
	assert.True(t, b.Dirty(), "neighbor across the shared face must re-mesh")
}

func TestInteriorEditKeepsNeighborClean(t *testing.T) {
	w := New()
	a := NewChunk(ChunkCoord{0, 0, 0})
	b := NewChunk(ChunkCoord{1, 0, 0})
	require.True(t, w.Install(a))
	require.True(t, w.Install(b))
	a.ClearDirty()
	b.ClearDirty()

	w.SetBlock(8, 8, 8, block.Stone)
	assert.True(t, a.Dirty())
	assert.False(t, b.Dirty())
}

func TestInstallDirtiesNeighbors(t *testing.T) {
	w := New()
	a := NewChunk(ChunkCoord{0, 0, 0})
	require.True(t, w.Install(a))
	a.ClearDirty()

	require.True(t, w.Install(NewChunk(ChunkCoord{0, 1, 0})))
	assert.True(t, a.Dirty(), "existing chunk must re-mesh against the new neighbor")
}

func TestInstallKeepsExisting(t *testing.T) {
	w := New()
	a := NewChunk(ChunkCoord{0, 0, 0})
	require.True(t, w.Install(a))
	w.SetBlock(1, 1, 1, block.Sand)

	assert.False(t, w.Install(NewChunk(ChunkCoord{0, 0, 0})), "late generation result must not clobber edits")
	bt, _ := w.GetBlock(1, 1, 1)
	assert.Equal(t, block.Sand, bt)
}

func TestRemove(t *testing.T) {
	w := New()
	a := NewChunk(ChunkCoord{2, 0, 2})
	require.True(t, w.Install(a))

	assert.Same(t, a, w.Remove(ChunkCoord{2, 0, 2}))
	assert.False(t, w.Loaded(ChunkCoord{2, 0, 2}))
	assert.Nil(t, w.Remove(ChunkCoord{2, 0, 2}))
}

func TestChunkBlockCount(t *testing.T) {
	c := NewChunk(ChunkCoord{0, 0, 0})
	assert.True(t, c.Empty())
	c.Set(1, 2, 3, block.Stone)
	assert.False(t, c.Empty())
	c.Set(1, 2, 3, block.Air)
	assert.True(t, c.Empty())
}

func TestDirtyChunks(t *testing.T) {
	w := New()
	a := NewChunk(ChunkCoord{0, 0, 0})
	b := NewChunk(ChunkCoord{5, 0, 5})
	require.True(t, w.Install(a))
	require.True(t, w.Install(b))
	a.ClearDirty()
	b.ClearDirty()
	assert.Empty(t, w.DirtyChunks())

	b.MarkDirty()
	assert.Equal(t, []ChunkCoord{{5, 0, 5}}, w.DirtyChunks())
}
