package terrain

import (
	"math"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/aykamko/minecrust/internal/block"
	"github.com/aykamko/minecrust/internal/world"
)

const (
	baseFrequency = 5.0 / 16.0
	numOctaves    = 4
	lacunarity    = 2.0
	persistence   = 0.5
	sharpness     = 1.4

	minElevation = -16
	maxElevation = 48
	SeaLevel     = 4
	snowLine     = 36

	dirtDepth = 4

	caveScale     = 0.06
	caveThreshold = 0.44
	caveCeiling   = SeaLevel - 2

	treeScale     = 0.71
	treeThreshold = 0.62
	trunkHeight   = 5
)

// Generator produces chunks deterministically from a seed. It is
// stateless after construction and safe for concurrent use.
type Generator struct {
	seed      int64
	noise     opensimplex.Noise32
	caveNoise opensimplex.Noise32
	trees     *perlin.Perlin
}

func New(seed int64) *Generator {
	return &Generator{
		seed:      seed,
		noise:     opensimplex.New32(seed),
		caveNoise: opensimplex.New32(seed + 1),
		trees:     perlin.NewPerlin(2, 2, 3, seed+2),
	}
}

func (g *Generator) Seed() int64 { return g.seed }

// HeightAt returns the terrain surface height for a column, layering
// octaves with halved amplitude and sharpening the normalized result so
// valleys flatten and peaks steepen.
func (g *Generator) HeightAt(x, z int) int {
	var sum, norm float32
	freq := float32(baseFrequency) / world.ChunkSize
	amp := float32(1)
	for i := 0; i < numOctaves; i++ {
		sum += amp * g.noise.Eval2(float32(x)*freq, float32(z)*freq)
		norm += amp
		freq *= lacunarity
		amp *= persistence
	}
	e := float64(sum/norm+1) / 2
	e = math.Pow(e, sharpness)
	return minElevation + int(e*float64(maxElevation-minElevation))
}

func (g *Generator) caveAt(x, y, z int) bool {
	if y > caveCeiling {
		return false
	}
	v := g.caveNoise.Eval3(float32(x)*caveScale, float32(y)*caveScale, float32(z)*caveScale)
	return v > caveThreshold
}

// treeAt reports whether a trunk stands on the column. Trees only grow
// on grass above sea level and below the snow line.
func (g *Generator) treeAt(x, z int, height int) bool {
	if height <= SeaLevel || height >= snowLine {
		return false
	}
	return g.trees.Noise2D(float64(x)*treeScale, float64(z)*treeScale) > treeThreshold
}

// columnBlock picks the base terrain block for a cell given its column
// surface height.
func columnBlock(y, height int) block.Type {
	switch {
	case y > height:
		if y <= SeaLevel {
			return block.Water
		}
		return block.Air
	case y == height:
		switch {
		case height >= snowLine:
			return block.Snow
		case height <= SeaLevel:
			return block.Sand
		default:
			return block.Grass
		}
	case y > height-dirtDepth:
		if height <= SeaLevel {
			return block.Sand
		}
		return block.Dirt
	default:
		return block.Stone
	}
}

// Generate fills the chunk at coord. The result depends only on the
// seed and the coord; callers on different goroutines may generate the
// same coord and get identical chunks.
func (g *Generator) Generate(coord world.ChunkCoord) *world.Chunk {
	c := world.NewChunk(coord)
	ox, oy, oz := coord.Origin()

	// Heights for the chunk's columns plus a 2-block apron, so leaves
	// from trees rooted in neighbor columns land in this chunk too.
	const apron = 2
	var heights [world.ChunkSize + 2*apron][world.ChunkSize + 2*apron]int
	for lx := -apron; lx < world.ChunkSize+apron; lx++ {
		for lz := -apron; lz < world.ChunkSize+apron; lz++ {
			heights[lx+apron][lz+apron] = g.HeightAt(ox+lx, oz+lz)
		}
	}

	for lx := 0; lx < world.ChunkSize; lx++ {
		for lz := 0; lz < world.ChunkSize; lz++ {
			height := heights[lx+apron][lz+apron]
			for ly := 0; ly < world.ChunkSize; ly++ {
				y := oy + ly
				t := columnBlock(y, height)
				if t.Solid() && g.caveAt(ox+lx, y, oz+lz) {
					t = block.Air
				}
				if t == block.Air {
					t = g.treeBlock(ox+lx, y, oz+lz, &heights, lx, lz)
				}
				if t != block.Air {
					c.Set(lx, ly, lz, t)
				}
			}
		}
	}
	return c
}

// treeBlock returns Wood or Leaf when the cell falls inside a tree, Air
// otherwise. Trunks occupy their own column; leaves spread 2 columns
// out around the crown, so the decision only needs the apron heights.
func (g *Generator) treeBlock(x, y, z int, heights *[world.ChunkSize + 4][world.ChunkSize + 4]int, lx, lz int) block.Type {
	const apron = 2
	for dx := -apron; dx <= apron; dx++ {
		for dz := -apron; dz <= apron; dz++ {
			h := heights[lx+apron+dx][lz+apron+dz]
			if !g.treeAt(x+dx, z+dz, h) {
				continue
			}
			base := h + 1
			if dx == 0 && dz == 0 && y >= base && y < base+trunkHeight {
				return block.Wood
			}
			crown := base + trunkHeight - 2
			dy := y - crown
			if dy >= 0 && dy <= 2 {
				r := apron - dy
				if dx >= -r && dx <= r && dz >= -r && dz <= r && !(dx == 0 && dz == 0 && dy == 0) {
					return block.Leaf
				}
			}
		}
	}
	return block.Air
}
