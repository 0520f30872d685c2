//go:build ebiten

package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// FramePainter uploads rendered canvases and draws them scaled to the screen.
type FramePainter struct {
	w, h int
	img  *ebiten.Image
}

// NewFramePainter returns a painter with no canvas allocated yet.
func NewFramePainter() *FramePainter { return &FramePainter{} }

// Upload copies canvas into the painter image, reallocating on size change.
func (fp *FramePainter) Upload(canvas *image.RGBA) {
	w, h := canvas.Rect.Dx(), canvas.Rect.Dy()
	if fp.img == nil || fp.w != w || fp.h != h {
		if fp.img != nil {
			fp.img.Deallocate()
		}
		fp.img = ebiten.NewImage(w, h)
		fp.w, fp.h = w, h
	}
	fp.img.WritePixels(canvas.Pix)
}

// Blit draws the last upload stretched over a dstW x dstH area with nearest
// filtering so art pixels stay crisp.
func (fp *FramePainter) Blit(dst *ebiten.Image, dstW, dstH int) {
	if fp.img == nil || fp.w == 0 || fp.h == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterNearest}
	op.GeoM.Scale(float64(dstW)/float64(fp.w), float64(dstH)/float64(fp.h))
	dst.DrawImage(fp.img, op)
}

// Size returns the dimensions of the underlying image.
func (fp *FramePainter) Size() (int, int) { return fp.w, fp.h }
