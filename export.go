package pxedit

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Rasterize composites every visible layer, bottom first, onto a new image
// covering the editor's global boundings. The image rectangle is in canvas
// coordinates, so it may have a negative origin. Layers are stacked with
// source-over compositing.
func (ed *Editor) Rasterize() *image.NRGBA {
	r := ed.bounds.Rect()
	dst := image.NewNRGBA(r)
	for _, id := range ed.order {
		l := ed.arena[id]
		if !l.visible || l.composite.bounds.IsEmpty() {
			continue
		}
		src := l.composite.nrgba()
		draw.Draw(dst, src.Rect, src, src.Rect.Min, draw.Over)
	}
	return dst
}

// RasterizeScaled is like Rasterize but upscales each canvas pixel to a
// scale x scale block. The result's origin is (0, 0).
func (ed *Editor) RasterizeScaled(scale int) *image.NRGBA {
	src := ed.Rasterize()
	scale = max(scale, 1)
	w, h := src.Rect.Dx()*scale, src.Rect.Dy()*scale
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Rect, src, src.Rect, draw.Src, nil)
	return dst
}

// InsertImage places img with its top-left corner at (x, y) on a layer,
// recorded as a KindInsertImage command. Alpha is quantized to one decimal.
// Fully transparent images return ErrEmptyBatch.
func (ed *Editor) InsertImage(id LayerID, img image.Image, x, y int) error {
	if ed.IsInActiveState() {
		return ErrGestureActive
	}
	l, err := ed.editableLayer(id)
	if err != nil {
		return err
	}
	sr := img.Bounds()
	w, h := sr.Dx(), sr.Dy()
	if w == 0 || h == 0 {
		return ErrEmptyBatch
	}
	if err := ed.checkCoordinate(x, y); err != nil {
		return err
	}
	if err := ed.checkCoordinate(x+w-1, y+h-1); err != nil {
		return err
	}

	src := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Copy(src, image.Point{}, img, sr, draw.Src, nil)

	b := ed.newBatch(l, newPixelBuffer(NewBoundings(x, y, w, h), true))
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			p := src.Pix[src.PixOffset(i, j):]
			c := Color{R: p[0], G: p[1], B: p[2], A: ByteToAlpha(p[3])}
			if c.IsEmpty() {
				continue
			}
			b.DrawPixelFast(x+i, y+j, c)
		}
	}
	if err := ed.Enqueue(KindInsertImage, b); err != nil {
		return fmt.Errorf("pxedit: insert image: %w", err)
	}
	return nil
}

// nrgba wraps the buffer's forward pixels without copying.
func (p *pixelBuffer) nrgba() *image.NRGBA {
	return &image.NRGBA{Pix: p.data, Stride: p.bounds.W * 4, Rect: p.bounds.Rect()}
}
