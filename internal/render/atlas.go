package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	stbi "neilpa.me/go-stbi"
)

// atlasCells is the atlas grid size; each texture occupies one cell.
const atlasCells = 4

// loadAtlas reads the texture atlas and uploads it as a GL texture.
// When the file is missing a flat placeholder atlas is generated so the
// game still runs.
func loadAtlas(path string) (uint32, error) {
	img, err := stbi.Load(path)
	if err != nil {
		img = placeholderAtlas()
		err = fmt.Errorf("load atlas %s: %w (using placeholder)", path, err)
	}

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Rect.Size().X), int32(img.Rect.Size().Y),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix),
	)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return texture, err
}

// placeholderAtlas is a grid of distinct flat colors, one per cell.
func placeholderAtlas() *image.RGBA {
	const cellPx = 16
	img := image.NewRGBA(image.Rect(0, 0, atlasCells*cellPx, atlasCells*cellPx))
	palette := [atlasCells * atlasCells]color.RGBA{
		{110, 110, 110, 255}, {90, 160, 70, 255}, {120, 85, 58, 255}, {128, 128, 128, 255},
		{219, 207, 163, 255}, {52, 108, 202, 255}, {102, 81, 49, 255}, {151, 122, 73, 255},
		{64, 128, 48, 255}, {240, 240, 250, 255}, {200, 200, 210, 255}, {255, 0, 255, 255},
		{255, 0, 255, 255}, {255, 0, 255, 255}, {255, 0, 255, 255}, {255, 0, 255, 255},
	}
	for y := 0; y < img.Rect.Dy(); y++ {
		for x := 0; x < img.Rect.Dx(); x++ {
			cell := (y/cellPx)*atlasCells + x/cellPx
			img.SetRGBA(x, y, palette[cell])
		}
	}
	return img
}
