// Package compose builds canvases and composites resampled artwork onto
// them.
package compose

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// NewTransparent returns a fully transparent w x h canvas.
func NewTransparent(w, h int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

// NewSolid returns a w x h canvas filled with c.
func NewSolid(w, h int, c color.Color) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return dst
}

// ToNRGBA copies any image into a new canvas whose origin is (0,0).
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Clone returns a deep copy of c.
func Clone(c *image.NRGBA) *image.NRGBA {
	out := &image.NRGBA{
		Pix:    make([]uint8, len(c.Pix)),
		Stride: c.Stride,
		Rect:   c.Rect,
	}
	copy(out.Pix, c.Pix)
	return out
}

// AlphaBounds returns the smallest rectangle holding every pixel with
// non-zero alpha. It is empty when the canvas is fully transparent.
func AlphaBounds(c *image.NRGBA) image.Rectangle {
	var r image.Rectangle
	b := c.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c.NRGBAAt(x, y).A == 0 {
				continue
			}
			r = r.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return r
}
