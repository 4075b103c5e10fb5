package render

import (
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/aykamko/minecrust/internal/mesh"
	"github.com/aykamko/minecrust/internal/world"
)

// quad is the canonical face: a unit square at y=+0.5 facing +Y, with
// UVs. Every visible block face is an instanced rotation of it.
var quad = []float32{
	// x, y, z, u, v
	-0.5, 0.5, -0.5, 0, 0,
	-0.5, 0.5, 0.5, 0, 1,
	0.5, 0.5, 0.5, 1, 1,
	-0.5, 0.5, -0.5, 0, 0,
	0.5, 0.5, 0.5, 1, 1,
	0.5, 0.5, -0.5, 1, 0,
}

// passBuffers is one instanced draw: a VAO over the shared quad plus a
// per-instance VBO.
type passBuffers struct {
	vao   uint32
	vbo   uint32
	count int32
}

type chunkBuffers struct {
	opaque      passBuffers
	translucent passBuffers
}

// GL renders chunk meshes with one instanced draw per chunk and pass.
// It implements the mesh sink the chunk manager uploads to.
type GL struct {
	program uint32
	quadVBO uint32
	atlas   uint32
	viewLoc int32
	projLoc int32
	chunks  map[world.ChunkCoord]*chunkBuffers
	sky     *sky
}

// NewGL compiles the block shaders and loads the texture atlas. It
// must be called with the GL context current.
func NewGL(atlasPath string) (*GL, error) {
	program, err := newProgram(blockVertexShader, blockFragmentShader)
	if err != nil {
		return nil, err
	}

	atlas, err := loadAtlas(atlasPath)
	if err != nil {
		log.Printf("render: %v", err)
	}

	r := &GL{
		program: program,
		atlas:   atlas,
		chunks:  make(map[world.ChunkCoord]*chunkBuffers),
	}

	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.UseProgram(program)
	r.viewLoc = gl.GetUniformLocation(program, gl.Str("view\x00"))
	r.projLoc = gl.GetUniformLocation(program, gl.Str("projection\x00"))
	cell := float32(1) / atlasCells
	gl.Uniform2f(gl.GetUniformLocation(program, gl.Str("atlasCell\x00")), cell, cell)
	gl.Uniform1i(gl.GetUniformLocation(program, gl.Str("atlas\x00")), 0)

	r.sky, err = newSky()
	if err != nil {
		log.Printf("render: sky disabled: %v", err)
		r.sky = nil
	}
	return r, nil
}

func (r *GL) initPass(p *passBuffers) {
	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 5*4, nil)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 5*4, uintptr(3*4))

	gl.GenBuffers(1, &p.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	stride := int32(mesh.RawSize * 4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, nil)
	gl.VertexAttribDivisor(2, 1)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointerWithOffset(3, 4, gl.FLOAT, false, stride, uintptr(4*4))
	gl.VertexAttribDivisor(3, 1)
	gl.EnableVertexAttribArray(4)
	gl.VertexAttribPointerWithOffset(4, 2, gl.FLOAT, false, stride, uintptr(8*4))
	gl.VertexAttribDivisor(4, 1)
	gl.EnableVertexAttribArray(5)
	gl.VertexAttribPointerWithOffset(5, 4, gl.FLOAT, false, stride, uintptr(10*4))
	gl.VertexAttribDivisor(5, 1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func uploadPass(p *passBuffers, instances []mesh.FaceInstance) {
	p.count = int32(len(instances))
	if p.count == 0 {
		return
	}
	data := make([]float32, 0, len(instances)*mesh.RawSize)
	for _, inst := range instances {
		raw := inst.Raw()
		data = append(data, raw[:]...)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Upload replaces the mesh buffers for a chunk.
func (r *GL) Upload(m mesh.Mesh) {
	bufs, ok := r.chunks[m.Coord]
	if !ok {
		bufs = &chunkBuffers{}
		r.initPass(&bufs.opaque)
		r.initPass(&bufs.translucent)
		r.chunks[m.Coord] = bufs
	}
	uploadPass(&bufs.opaque, m.Opaque)
	uploadPass(&bufs.translucent, m.Translucent)
}

// Release frees the buffers of an unloaded chunk.
func (r *GL) Release(coord world.ChunkCoord) {
	bufs, ok := r.chunks[coord]
	if !ok {
		return
	}
	for _, p := range []*passBuffers{&bufs.opaque, &bufs.translucent} {
		gl.DeleteBuffers(1, &p.vbo)
		gl.DeleteVertexArrays(1, &p.vao)
	}
	delete(r.chunks, coord)
}

// Draw renders the sky and all uploaded chunk meshes, opaque pass then
// translucent pass.
func (r *GL) Draw(view, projection mgl32.Mat4) {
	if r.sky != nil {
		r.sky.draw(view, projection)
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.viewLoc, 1, false, &view[0])
	gl.UniformMatrix4fv(r.projLoc, 1, false, &projection[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.atlas)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)

	for _, bufs := range r.chunks {
		if bufs.opaque.count == 0 {
			continue
		}
		gl.BindVertexArray(bufs.opaque.vao)
		gl.DrawArraysInstanced(gl.TRIANGLES, 0, 6, bufs.opaque.count)
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	for _, bufs := range r.chunks {
		if bufs.translucent.count == 0 {
			continue
		}
		gl.BindVertexArray(bufs.translucent.vao)
		gl.DrawArraysInstanced(gl.TRIANGLES, 0, 6, bufs.translucent.count)
	}
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}

// MeshCount returns the number of chunk meshes currently uploaded.
func (r *GL) MeshCount() int { return len(r.chunks) }
