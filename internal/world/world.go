package world

import (
	"sync"

	"github.com/aykamko/minecrust/internal/block"
)

// World owns the loaded chunk set. It is safe for concurrent use; the
// generation workers install chunks while the game loop reads them.
type World struct {
	mu     sync.RWMutex
	chunks map[ChunkCoord]*Chunk
}

func New() *World {
	return &World{chunks: make(map[ChunkCoord]*Chunk)}
}

// Chunk returns the loaded chunk at coord, or nil.
func (w *World) Chunk(coord ChunkCoord) *Chunk {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.chunks[coord]
}

// Loaded reports whether the chunk at coord is present.
func (w *World) Loaded(coord ChunkCoord) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.chunks[coord]
	return ok
}

// ChunkCount returns the number of loaded chunks.
func (w *World) ChunkCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// GetBlock returns the block at world coords and whether its chunk is
// loaded. Unloaded reads as Air, false.
func (w *World) GetBlock(x, y, z int) (block.Type, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c := w.chunks[ChunkCoordAt(x, y, z)]
	if c == nil {
		return block.Air, false
	}
	lx, ly, lz := LocalAt(x, y, z)
	return c.Get(lx, ly, lz), true
}

// SetBlock writes the block at world coords. Writes into unloaded
// chunks are dropped. Edits on a chunk border also dirty the adjacent
// chunk so its face culling gets recomputed.
func (w *World) SetBlock(x, y, z int, t block.Type) bool {
	coord := ChunkCoordAt(x, y, z)
	lx, ly, lz := LocalAt(x, y, z)

	w.mu.Lock()
	defer w.mu.Unlock()
	c := w.chunks[coord]
	if c == nil {
		return false
	}
	c.Set(lx, ly, lz, t)

	markNeighbor := func(dx, dy, dz int32) {
		if n := w.chunks[coord.Offset(dx, dy, dz)]; n != nil {
			n.MarkDirty()
		}
	}
	if lx == 0 {
		markNeighbor(-1, 0, 0)
	}
	if lx == ChunkSize-1 {
		markNeighbor(1, 0, 0)
	}
	if ly == 0 {
		markNeighbor(0, -1, 0)
	}
	if ly == ChunkSize-1 {
		markNeighbor(0, 1, 0)
	}
	if lz == 0 {
		markNeighbor(0, 0, -1)
	}
	if lz == ChunkSize-1 {
		markNeighbor(0, 0, 1)
	}
	return true
}

// Install adds a generated chunk, keeping any existing chunk (edits may
// have landed while generation was in flight). Neighbors are dirtied so
// faces against the former unloaded boundary get meshed.
func (w *World) Install(c *Chunk) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.chunks[c.Coord]; ok {
		return false
	}
	w.chunks[c.Coord] = c
	for _, d := range [6][3]int32{{-1, 0, 0}, {1, 0, 0}, {0, -1, 0}, {0, 1, 0}, {0, 0, -1}, {0, 0, 1}} {
		if n := w.chunks[c.Coord.Offset(d[0], d[1], d[2])]; n != nil {
			n.MarkDirty()
		}
	}
	return true
}

// Remove unloads the chunk at coord, returning it if it was present.
func (w *World) Remove(coord ChunkCoord) *Chunk {
	w.mu.Lock()
	defer w.mu.Unlock()
	c := w.chunks[coord]
	delete(w.chunks, coord)
	return c
}

// EachChunk calls fn for every loaded chunk under the read lock.
func (w *World) EachChunk(fn func(*Chunk)) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, c := range w.chunks {
		fn(c)
	}
}

// DirtyChunks returns the coords of all chunks flagged dirty.
func (w *World) DirtyChunks() []ChunkCoord {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var out []ChunkCoord
	for coord, c := range w.chunks {
		if c.dirty {
			out = append(out, coord)
		}
	}
	return out
}
