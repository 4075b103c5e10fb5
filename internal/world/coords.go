package world

// ChunkCoord addresses a chunk in chunk units.
type ChunkCoord struct {
	X, Y, Z int32
}

const (
	// ChunkSize is the edge length of a cubic chunk in blocks.
	ChunkSize = 16
	// BlocksPerChunk is ChunkSize cubed.
	BlocksPerChunk = ChunkSize * ChunkSize * ChunkSize
)

// floorDiv divides rounding toward negative infinity, so block -1 lands
// in chunk -1 rather than chunk 0.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// mod returns the remainder in [0, b).
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// ChunkCoordAt returns the chunk containing the block at world coords.
func ChunkCoordAt(x, y, z int) ChunkCoord {
	return ChunkCoord{
		X: int32(floorDiv(x, ChunkSize)),
		Y: int32(floorDiv(y, ChunkSize)),
		Z: int32(floorDiv(z, ChunkSize)),
	}
}

// LocalAt returns the block's offset within its chunk, each in [0, ChunkSize).
func LocalAt(x, y, z int) (lx, ly, lz int) {
	return mod(x, ChunkSize), mod(y, ChunkSize), mod(z, ChunkSize)
}

// Origin returns the world coords of the chunk's minimal corner, the
// inverse of ChunkCoordAt+LocalAt.
func (c ChunkCoord) Origin() (x, y, z int) {
	return int(c.X) * ChunkSize, int(c.Y) * ChunkSize, int(c.Z) * ChunkSize
}

// Offset returns the coord shifted by whole chunks.
func (c ChunkCoord) Offset(dx, dy, dz int32) ChunkCoord {
	return ChunkCoord{c.X + dx, c.Y + dy, c.Z + dz}
}
