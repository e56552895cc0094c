//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter updates a single RGBA image based on binary cell data.
type GridPainter struct {
	w, h, scale int
	img         *ebiten.Image
	buf         []byte
}

// NewGridPainter allocates a painter for a w*h window drawn at scale pixels
// per cell.
func NewGridPainter(w, h, scale int) *GridPainter {
	if scale <= 0 {
		scale = 1
	}
	gp := &GridPainter{w: w, h: h, scale: scale, buf: make([]byte, 4*w*h*scale*scale)}
	gp.img = ebiten.NewImage(w*scale, h*scale)
	return gp
}

// Blit uploads the provided cells into the painter image and draws it.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, on, off, gutter color.Color) {
	if len(cells) != gp.w*gp.h {
		return
	}
	fillScaledRGBA(gp.buf, cells, gp.w, gp.h, gp.scale, on, off, gutter)
	gp.img.WritePixels(gp.buf)
	dst.DrawImage(gp.img, &ebiten.DrawImageOptions{})
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w * gp.scale, gp.h * gp.scale }
