package world

import "github.com/aykamko/minecrust/internal/block"

// Chunk is a fixed 16x16x16 slab of blocks. Blocks are stored in a flat
// array indexed x-major, then z, then y. All fields are guarded by the
// owning World's lock.
type Chunk struct {
	Coord      ChunkCoord
	blocks     [BlocksPerChunk]block.Type
	blockCount int
	dirty      bool
}

func NewChunk(coord ChunkCoord) *Chunk {
	return &Chunk{Coord: coord, dirty: true}
}

func blockIndex(lx, ly, lz int) int {
	return (lx*ChunkSize+lz)*ChunkSize + ly
}

// Get returns the block at local coords. Out-of-range coords read as Air.
func (c *Chunk) Get(lx, ly, lz int) block.Type {
	if lx < 0 || lx >= ChunkSize || ly < 0 || ly >= ChunkSize || lz < 0 || lz >= ChunkSize {
		return block.Air
	}
	return c.blocks[blockIndex(lx, ly, lz)]
}

// Set writes the block at local coords and marks the chunk dirty.
func (c *Chunk) Set(lx, ly, lz int, t block.Type) {
	if lx < 0 || lx >= ChunkSize || ly < 0 || ly >= ChunkSize || lz < 0 || lz >= ChunkSize {
		return
	}
	i := blockIndex(lx, ly, lz)
	old := c.blocks[i]
	if old == t {
		return
	}
	if old != block.Air {
		c.blockCount--
	}
	if t != block.Air {
		c.blockCount++
	}
	c.blocks[i] = t
	c.dirty = true
}

// Empty reports whether the chunk holds only air, which lets the mesher
// skip it outright.
func (c *Chunk) Empty() bool { return c.blockCount == 0 }

func (c *Chunk) Dirty() bool { return c.dirty }
func (c *Chunk) MarkDirty()  { c.dirty = true }
func (c *Chunk) ClearDirty() { c.dirty = false }
