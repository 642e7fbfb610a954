package render

import (
	"image"
	"image/color"
	"math/rand"

	"golang.org/x/image/draw"
)

// NewNoiseTexture builds a tileSize x tileSize grayscale noise tile and
// composites it, repeated, into a w x h texture by copying the tile with
// x/image/draw's draw.Draw (draw.Src) at every tile offset — feeding the shadow system's
// PostShadow modulation (§4.8 step 4). Grounded on the teacher's indirect
// golang.org/x/image dependency (pulled in transitively for ebiten's font
// decoding), promoted here to a direct, visible use.
func NewNoiseTexture(w, h, tileSize int, seed int64) *Texture {
	if tileSize < 1 {
		tileSize = 1
	}
	tile := image.NewGray(image.Rect(0, 0, tileSize, tileSize))
	rng := rand.New(rand.NewSource(seed))
	for y := 0; y < tileSize; y++ {
		for x := 0; x < tileSize; x++ {
			tile.SetGray(x, y, color.Gray{Y: uint8(rng.Intn(256))})
		}
	}

	full := image.NewRGBA(image.Rect(0, 0, w, h))
	for ty := 0; ty < h; ty += tileSize {
		for tx := 0; tx < w; tx += tileSize {
			dstRect := image.Rect(tx, ty, tx+tileSize, ty+tileSize).Intersect(full.Bounds())
			draw.Draw(full, dstRect, tile, image.Point{}, draw.Src)
		}
	}

	tex := NewTexture(w, h, TargetColor)
	tex.Img.WritePixels(full.Pix)
	return tex
}
