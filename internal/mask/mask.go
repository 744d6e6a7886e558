// Package mask crops canvases to the circle inscribed in them.
package mask

import (
	"image"
	"math"

	"golang.org/x/image/vector"

	"iconforge/internal/compose"
)

// kappa places cubic control points so four segments approximate a circle.
const kappa = 0.5522847498307936

// Circle returns the coverage mask of the circle inscribed in a w x h
// canvas: centered, with radius min(w,h)/2. Edge pixels are anti-aliased;
// any pixel whose center lies outside the radius is fully transparent.
func Circle(w, h int) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return m
	}
	cx, cy := float64(w)/2, float64(h)/2
	r := float64(min(w, h)) / 2

	var z vector.Rasterizer
	z.Reset(w, h)
	addCircle(&z, float32(cx), float32(cy), float32(r))
	z.Draw(m, m.Bounds(), image.Opaque, image.Point{})

	// The rasterizer credits partial area to pixels straddling the edge;
	// clip them by pixel center so nothing outside the radius survives.
	for y := 0; y < h; y++ {
		dy := float64(y) + 0.5 - cy
		for x := 0; x < w; x++ {
			dx := float64(x) + 0.5 - cx
			if math.Hypot(dx, dy) > r {
				m.Pix[y*m.Stride+x] = 0
			}
		}
	}
	return m
}

func addCircle(z *vector.Rasterizer, cx, cy, r float32) {
	k := r * kappa
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}

// ApplyCircular returns a copy of c whose alpha is min(alpha, coverage)
// of the inscribed circle. Color channels are kept, so cropping never
// makes a pixel more opaque.
func ApplyCircular(c *image.NRGBA) *image.NRGBA {
	b := c.Bounds()
	m := Circle(b.Dx(), b.Dy())
	out := compose.Clone(c)
	for y := 0; y < b.Dy(); y++ {
		row := out.Pix[y*out.Stride:]
		mrow := m.Pix[y*m.Stride:]
		for x := 0; x < b.Dx(); x++ {
			if a := mrow[x]; a < row[x*4+3] {
				row[x*4+3] = a
			}
		}
	}
	return out
}
