package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/aykamko/minecrust/internal/block"
	"github.com/aykamko/minecrust/internal/world"
)

// FaceInstance is one visible block face. Every face is the same
// canonical quad, a unit square at y=+0.5 facing +Y, rotated about the
// block center and translated to Position. The layout mirrors the
// per-instance vertex buffer.
type FaceInstance struct {
	Position    mgl32.Vec4
	Rotation    mgl32.Quat
	AtlasOffset mgl32.Vec2
	ColorAdjust mgl32.Vec4
}

// RawSize is the number of floats one instance packs to.
const RawSize = 14

// Raw packs the instance for buffer upload: position, quaternion
// (x,y,z,w), atlas offset, color adjust.
func (f FaceInstance) Raw() [RawSize]float32 {
	return [RawSize]float32{
		f.Position[0], f.Position[1], f.Position[2], f.Position[3],
		f.Rotation.V[0], f.Rotation.V[1], f.Rotation.V[2], f.Rotation.W,
		f.AtlasOffset[0], f.AtlasOffset[1],
		f.ColorAdjust[0], f.ColorAdjust[1], f.ColorAdjust[2], f.ColorAdjust[3],
	}
}

// faceRotations maps each cardinal face to the quaternion taking the
// canonical +Y quad onto it.
var faceRotations = [6]mgl32.Quat{
	block.FaceTop:    mgl32.QuatIdent(),
	block.FaceBottom: mgl32.QuatRotate(math.Pi, mgl32.Vec3{1, 0, 0}),
	block.FaceNorth:  mgl32.QuatRotate(-math.Pi/2, mgl32.Vec3{1, 0, 0}),
	block.FaceSouth:  mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{1, 0, 0}),
	block.FaceWest:   mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 0, 1}),
	block.FaceEast:   mgl32.QuatRotate(-math.Pi/2, mgl32.Vec3{0, 0, 1}),
}

// FaceRotation returns the rotation for a cardinal face.
func FaceRotation(f block.Face) mgl32.Quat { return faceRotations[f] }

var faceDirs = [6][3]int{
	block.FaceTop:    {0, 1, 0},
	block.FaceBottom: {0, -1, 0},
	block.FaceNorth:  {0, 0, -1},
	block.FaceSouth:  {0, 0, 1},
	block.FaceWest:   {-1, 0, 0},
	block.FaceEast:   {1, 0, 0},
}

// Mesh is the CPU-side mesh of one chunk, split so translucent faces
// can be drawn after the opaque pass.
type Mesh struct {
	Coord       world.ChunkCoord
	Opaque      []FaceInstance
	Translucent []FaceInstance
}

// FaceCount returns the total number of faces in the mesh.
func (m *Mesh) FaceCount() int { return len(m.Opaque) + len(m.Translucent) }

// faceVisible decides whether a face of `self` against neighbor `nb`
// is emitted. Opaque neighbors occlude; water does not occlude itself.
func faceVisible(self, nb block.Type) bool {
	if nb.Solid() && !nb.Transparent() {
		return false
	}
	if self == block.Water && nb == block.Water {
		return false
	}
	return true
}

// Build computes the face instances for the chunk at coord. It returns
// false when the chunk is not loaded. Faces bordering an unloaded
// chunk are skipped; installing that neighbor dirties this chunk and
// the faces appear on the re-mesh.
func Build(w *world.World, coord world.ChunkCoord) (Mesh, bool) {
	c := w.Chunk(coord)
	if c == nil {
		return Mesh{}, false
	}
	m := Mesh{Coord: coord}
	if c.Empty() {
		return m, true
	}

	var neighbors [6]*world.Chunk
	for f, d := range faceDirs {
		neighbors[f] = w.Chunk(coord.Offset(int32(d[0]), int32(d[1]), int32(d[2])))
	}

	ox, oy, oz := coord.Origin()
	for lx := 0; lx < world.ChunkSize; lx++ {
		for ly := 0; ly < world.ChunkSize; ly++ {
			for lz := 0; lz < world.ChunkSize; lz++ {
				self := c.Get(lx, ly, lz)
				if self == block.Air {
					continue
				}
				for f := block.FaceTop; f <= block.FaceEast; f++ {
					d := faceDirs[f]
					nx, ny, nz := lx+d[0], ly+d[1], lz+d[2]

					var nb block.Type
					if nx >= 0 && nx < world.ChunkSize && ny >= 0 && ny < world.ChunkSize && nz >= 0 && nz < world.ChunkSize {
						nb = c.Get(nx, ny, nz)
					} else {
						nc := neighbors[f]
						if nc == nil {
							continue
						}
						nb = nc.Get(
							(nx+world.ChunkSize)%world.ChunkSize,
							(ny+world.ChunkSize)%world.ChunkSize,
							(nz+world.ChunkSize)%world.ChunkSize,
						)
					}
					if !faceVisible(self, nb) {
						continue
					}

					off := self.FaceOffset(f)
					inst := FaceInstance{
						Position: mgl32.Vec4{
							float32(ox+lx) + 0.5,
							float32(oy+ly) + 0.5,
							float32(oz+lz) + 0.5,
							1,
						},
						Rotation:    faceRotations[f],
						AtlasOffset: mgl32.Vec2{off.U, off.V},
						ColorAdjust: block.Props(self).ColorAdjust,
					}
					if self.Transparent() {
						m.Translucent = append(m.Translucent, inst)
					} else {
						m.Opaque = append(m.Opaque, inst)
					}
				}
			}
		}
	}
	return m, true
}
