package render

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const blockVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aUV;
layout (location = 2) in vec4 iPosition;
layout (location = 3) in vec4 iRotation;
layout (location = 4) in vec2 iAtlasOffset;
layout (location = 5) in vec4 iColorAdjust;

uniform mat4 view;
uniform mat4 projection;
uniform vec2 atlasCell;

out vec2 TexCoord;
out vec4 ColorAdjust;

vec3 rotate(vec4 q, vec3 v) {
    return v + 2.0 * cross(q.xyz, cross(q.xyz, v) + q.w * v);
}

void main() {
    vec3 world = rotate(iRotation, aPos) + iPosition.xyz;
    gl_Position = projection * view * vec4(world, 1.0);
    TexCoord = (iAtlasOffset + aUV) * atlasCell;
    ColorAdjust = iColorAdjust;
}
` + "\x00"

const blockFragmentShader = `#version 410 core
in vec2 TexCoord;
in vec4 ColorAdjust;

uniform sampler2D atlas;

out vec4 FragColor;

void main() {
    vec4 tex = texture(atlas, TexCoord);
    if (tex.a < 0.1) {
        discard;
    }
    vec3 rgb = mix(tex.rgb, tex.rgb * ColorAdjust.rgb, ColorAdjust.a);
    FragColor = vec4(rgb, tex.a);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("compile shader: %v", log)
	}
	return shader, nil
}

func newProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vert, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	frag, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)
	gl.DetachShader(program, vert)
	gl.DetachShader(program, frag)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("link program: %v", log)
	}
	return program, nil
}
