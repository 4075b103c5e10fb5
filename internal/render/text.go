package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/golang/freetype"
	"golang.org/x/image/font"
)

const overlayVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aUV;

uniform vec2 offset;
uniform vec2 scale;

out vec2 TexCoord;

void main() {
    gl_Position = vec4(aPos.xy * scale + offset, 0.0, 1.0);
    TexCoord = vec2(aUV.x, 1.0 - aUV.y);
}
` + "\x00"

const overlayFragmentShader = `#version 410 core
in vec2 TexCoord;

uniform sampler2D overlay;

out vec4 FragColor;

void main() {
    FragColor = texture(overlay, TexCoord);
}
` + "\x00"

const overlayCanvasSize = 512

// Overlay draws debug text in the corner of the screen with a
// freetype-rendered canvas uploaded as a texture.
type Overlay struct {
	ctx     *freetype.Context
	canvas  *image.RGBA
	texture uint32
	vao     uint32
	vbo     uint32
	program uint32
	lines   []string
	stale   bool
}

// NewOverlay loads the font and sets up the screen quad. A missing
// font file disables the overlay rather than failing startup.
func NewOverlay(fontPath string) (*Overlay, error) {
	fontData, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("load font %s: %w", fontPath, err)
	}
	f, err := freetype.ParseFont(fontData)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", fontPath, err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, overlayCanvasSize, overlayCanvasSize))
	ctx := freetype.NewContext()
	ctx.SetFont(f)
	ctx.SetFontSize(18)
	ctx.SetDst(canvas)
	ctx.SetClip(canvas.Bounds())
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	program, err := newProgram(overlayVertexShader, overlayFragmentShader)
	if err != nil {
		return nil, err
	}

	o := &Overlay{ctx: ctx, canvas: canvas, program: program, stale: true}

	quad := []float32{
		0, 1, 0, 0, 1,
		0, 0, 0, 0, 0,
		1, 0, 0, 1, 0,
		0, 1, 0, 0, 1,
		1, 0, 0, 1, 0,
		1, 1, 0, 1, 1,
	}
	gl.GenVertexArrays(1, &o.vao)
	gl.BindVertexArray(o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 5*4, nil)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 5*4, uintptr(3*4))
	gl.BindVertexArray(0)

	gl.GenTextures(1, &o.texture)
	gl.BindTexture(gl.TEXTURE_2D, o.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return o, nil
}

// SetLines replaces the overlay text. The texture re-renders on the
// next Draw only if the content changed.
func (o *Overlay) SetLines(lines ...string) {
	if len(lines) == len(o.lines) {
		same := true
		for i := range lines {
			if lines[i] != o.lines[i] {
				same = false
				break
			}
		}
		if same {
			return
		}
	}
	o.lines = append(o.lines[:0], lines...)
	o.stale = true
}

func (o *Overlay) render() error {
	draw.Draw(o.canvas, o.canvas.Bounds(), &image.Uniform{C: color.Transparent}, image.Point{}, draw.Src)
	pt := freetype.Pt(8, 24)
	for _, line := range o.lines {
		if _, err := o.ctx.DrawString(line, pt); err != nil {
			return err
		}
		pt.Y += o.ctx.PointToFixed(24)
	}
	gl.BindTexture(gl.TEXTURE_2D, o.texture)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGBA,
		overlayCanvasSize, overlayCanvasSize,
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(o.canvas.Pix),
	)
	return nil
}

// Draw blits the overlay over the frame.
func (o *Overlay) Draw() {
	if o.stale {
		if err := o.render(); err != nil {
			return
		}
		o.stale = false
	}

	gl.UseProgram(o.program)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.Uniform2f(gl.GetUniformLocation(o.program, gl.Str("offset\x00")), -1, 0)
	gl.Uniform2f(gl.GetUniformLocation(o.program, gl.Str("scale\x00")), 1, 1)
	gl.Uniform1i(gl.GetUniformLocation(o.program, gl.Str("overlay\x00")), 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, o.texture)

	gl.BindVertexArray(o.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}
