//go:build ebiten

package ui

import (
	"image/color"

	"lifeboard/internal/viewport"
	cell "lifeboard/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the origin axes and the coordinate under the cursor.
type Overlay struct {
	view  *viewport.Viewport
	scale int
	show  bool
	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(view *viewport.Viewport, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{view: view, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the overlay with G.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.show = !o.show
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	size := o.view.Size()
	axis := color.RGBA{R: 90, G: 140, B: 220, A: 140}
	if x, _, ok := o.view.ToScreen(originOnRow(o.view)); ok {
		o.fill(screen, float64(x*o.scale), 0, 1, float64(size.H*o.scale), axis)
	}
	if _, y, ok := o.view.ToScreen(originOnCol(o.view)); ok {
		o.fill(screen, 0, float64(y*o.scale), float64(size.W*o.scale), 1, axis)
	}

	mx, my := ebiten.CursorPosition()
	c, ok := o.view.ToLogical(mx/o.scale, my/o.scale)
	if !ok || mx < 0 || my < 0 {
		return
	}
	label := c.Key()
	face := basicfont.Face7x13
	w := text.BoundString(face, label).Dx()
	o.fill(screen, 4, 4, float64(w+8), 18, color.RGBA{A: 180})
	text.Draw(screen, label, face, 8, 17, color.White)
}

// originOnRow returns column 0 on the first visible row.
func originOnRow(v *viewport.Viewport) cell.Coord {
	return cell.Coord{Row: -v.Offset().Top, Col: 0}
}

// originOnCol returns row 0 on the first visible column.
func originOnCol(v *viewport.Viewport) cell.Coord {
	return cell.Coord{Row: 0, Col: -v.Offset().Left}
}

func (o *Overlay) fill(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
