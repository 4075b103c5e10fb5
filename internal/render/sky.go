package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const skyVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;

uniform mat4 view;
uniform mat4 projection;

out vec3 Dir;

void main() {
    Dir = aPos;
    mat4 rotOnly = mat4(mat3(view));
    vec4 pos = projection * rotOnly * vec4(aPos, 1.0);
    gl_Position = pos.xyww;
}
` + "\x00"

const skyFragmentShader = `#version 410 core
in vec3 Dir;

out vec4 FragColor;

void main() {
    float t = clamp(normalize(Dir).y * 0.5 + 0.5, 0.0, 1.0);
    vec3 horizon = vec3(0.75, 0.85, 0.95);
    vec3 zenith = vec3(0.47, 0.65, 1.0);
    FragColor = vec4(mix(horizon, zenith, t), 1.0);
}
` + "\x00"

// sky draws a gradient cube around the camera, behind everything else.
type sky struct {
	vao     uint32
	vbo     uint32
	program uint32
	viewLoc int32
	projLoc int32
}

func newSky() (*sky, error) {
	// Unit cube, 12 triangles, positions only.
	cubeVertices := []float32{
		1, -1, -1, 1, 1, -1, 1, 1, 1,
		1, -1, -1, 1, 1, 1, 1, -1, 1,
		-1, -1, -1, -1, -1, 1, -1, 1, 1,
		-1, -1, -1, -1, 1, 1, -1, 1, -1,
		-1, 1, -1, 1, 1, -1, 1, 1, 1,
		-1, 1, -1, 1, 1, 1, -1, 1, 1,
		-1, -1, -1, -1, -1, 1, 1, -1, 1,
		-1, -1, -1, 1, -1, 1, 1, -1, -1,
		-1, -1, 1, 1, -1, 1, 1, 1, 1,
		-1, -1, 1, 1, 1, 1, -1, 1, 1,
		-1, -1, -1, 1, -1, -1, 1, 1, -1,
		-1, -1, -1, 1, 1, -1, -1, 1, -1,
	}

	program, err := newProgram(skyVertexShader, skyFragmentShader)
	if err != nil {
		return nil, err
	}

	s := &sky{program: program}
	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)

	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVertices)*4, gl.Ptr(cubeVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	s.viewLoc = gl.GetUniformLocation(program, gl.Str("view\x00"))
	s.projLoc = gl.GetUniformLocation(program, gl.Str("projection\x00"))
	return s, nil
}

// draw renders the sky without writing depth so the world draws over it.
func (s *sky) draw(view, projection mgl32.Mat4) {
	gl.DepthMask(false)
	gl.DepthFunc(gl.LEQUAL)
	gl.Disable(gl.CULL_FACE)

	gl.UseProgram(s.program)
	gl.UniformMatrix4fv(s.viewLoc, 1, false, &view[0])
	gl.UniformMatrix4fv(s.projLoc, 1, false, &projection[0])

	gl.BindVertexArray(s.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 36)
	gl.BindVertexArray(0)

	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
}
