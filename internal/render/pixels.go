package render

import "image/color"

// fillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// fillScaledRGBA draws each cell as a scale×scale block with a one-pixel
// gutter on its right and bottom edges when scale > 2, so individual cells
// stay distinguishable. dst must hold 4*(w*scale)*(h*scale) bytes.
func fillScaledRGBA(dst []byte, cells []uint8, w, h, scale int, on, off, gutter color.Color) {
	if scale <= 1 {
		fillBinaryRGBA(dst, cells, on, off)
		return
	}
	stride := w * scale
	colors := [3][4]uint8{rgba(off), rgba(on), rgba(gutter)}
	for py := 0; py < h*scale; py++ {
		cy, iy := py/scale, py%scale
		for px := 0; px < stride; px++ {
			cx, ix := px/scale, px%scale
			pick := 0
			if cells[cy*w+cx] != 0 {
				pick = 1
			}
			if scale > 2 && (ix == scale-1 || iy == scale-1) {
				pick = 2
			}
			base := (py*stride + px) * 4
			copy(dst[base:base+4], colors[pick][:])
		}
	}
}

func rgba(c color.Color) [4]uint8 {
	r, g, b, a := c.RGBA()
	return [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}
