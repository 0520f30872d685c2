package render

import (
	"image"
	"image/color"
)

// fillRGBA paints every pixel of buf with c.
func fillRGBA(buf []byte, c color.NRGBA) {
	r, g, b, a := premultiply(c)
	for base := 0; base+3 < len(buf); base += 4 {
		buf[base+0] = r
		buf[base+1] = g
		buf[base+2] = b
		buf[base+3] = a
	}
}

// blendPixel composites c over the pixel at (x, y). Out-of-bounds writes are
// ignored.
func blendPixel(img *image.RGBA, x, y int, c color.NRGBA) {
	if !(image.Point{X: x, Y: y}.In(img.Rect)) || c.A == 0 {
		return
	}
	base := img.PixOffset(x, y)
	pix := img.Pix[base : base+4 : base+4]
	r, g, b, a := premultiply(c)
	if a == 255 {
		pix[0], pix[1], pix[2], pix[3] = r, g, b, a
		return
	}
	inv := uint32(255 - a)
	pix[0] = r + uint8(uint32(pix[0])*inv/255)
	pix[1] = g + uint8(uint32(pix[1])*inv/255)
	pix[2] = b + uint8(uint32(pix[2])*inv/255)
	pix[3] = a + uint8(uint32(pix[3])*inv/255)
}

func premultiply(c color.NRGBA) (r, g, b, a uint8) {
	a32 := uint32(c.A)
	return uint8(uint32(c.R) * a32 / 255), uint8(uint32(c.G) * a32 / 255), uint8(uint32(c.B) * a32 / 255), c.A
}

// sampleRow reads the gradient texture's first row at t in [0, 1].
func sampleRow(tex *image.NRGBA, t float64) color.NRGBA {
	if tex == nil || tex.Rect.Dx() == 0 {
		return color.NRGBA{}
	}
	w := tex.Rect.Dx()
	i := int(t * float64(w))
	if i < 0 {
		i = 0
	}
	if i >= w {
		i = w - 1
	}
	return tex.NRGBAAt(tex.Rect.Min.X+i, tex.Rect.Min.Y)
}
