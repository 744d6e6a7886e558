// Package artwork draws the decorative canvases used around derived
// assets: gradients, the node-graph logo, the launcher glyph, network
// patterns and captions. Every generator returns a plain *image.NRGBA, so
// its output can be used anywhere a loaded source image can.
package artwork

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"iconforge/internal/compose"
)

// Brand colors of the node-graph logo.
var (
	Indigo     = color.NRGBA{R: 63, G: 81, B: 181, A: 0xff}
	LightBlue  = color.NRGBA{R: 100, G: 120, B: 200, A: 0xff}
	Green      = color.NRGBA{R: 76, G: 175, B: 80, A: 0xff}
	Pink       = color.NRGBA{R: 233, G: 30, B: 99, A: 0xff}
	Orange     = color.NRGBA{R: 255, G: 152, B: 0, A: 0xff}
	Purple     = color.NRGBA{R: 156, G: 39, B: 176, A: 0xff}
	Connection = color.NRGBA{R: 60, G: 60, B: 60, A: 0xff}
)

func canvasOf(dc *gg.Context) *image.NRGBA {
	return compose.ToNRGBA(dc.Image())
}

// Gradient returns a w x h canvas shading from top to bottom.
func Gradient(w, h int, top, bottom color.Color) *image.NRGBA {
	dc := gg.NewContext(w, h)
	g := gg.NewLinearGradient(0, 0, 0, float64(h))
	g.AddColorStop(0, top)
	g.AddColorStop(1, bottom)
	dc.SetFillStyle(g)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	dc.Fill()
	return canvasOf(dc)
}

// NodeGraph draws the node-graph logo on a transparent size x size canvas:
// a shaded central node joined to three colored orbital nodes.
func NodeGraph(size int) *image.NRGBA {
	dc := gg.NewContext(size, size)
	s := float64(size)
	cx, cy := s/2, s/2
	central := s * 0.2
	orbit := s * 0.34
	node := s * 0.12

	orbitals := []struct {
		angle float64
		color color.Color
	}{
		{-60, Pink},
		{180, Green},
		{60, Orange},
	}

	dc.SetColor(Connection)
	dc.SetLineWidth(math.Max(3, s*0.02))
	for _, o := range orbitals {
		x, y := polar(cx, cy, orbit, o.angle)
		dc.DrawLine(cx, cy, x, y)
		dc.Stroke()
	}

	// Concentric rings from the lighter rim inwards shade the center node.
	steps := max(1, int(central))
	for i := steps; i > 0; i-- {
		t := float64(i) / float64(steps)
		dc.SetColor(lerp(LightBlue, Indigo, 1-t))
		dc.DrawCircle(cx, cy, central*t)
		dc.Fill()
	}

	shadow := math.Max(2, s*0.01)
	for _, o := range orbitals {
		x, y := polar(cx, cy, orbit, o.angle)
		dc.SetColor(color.NRGBA{A: 50})
		dc.DrawCircle(x+shadow, y+shadow, node)
		dc.Fill()
		dc.SetColor(o.color)
		dc.DrawCircle(x, y, node)
		dc.Fill()
	}
	return canvasOf(dc)
}

// LauncherGlyph draws the fallback launcher icon: an indigo to purple
// gradient square with a white "L".
func LauncherGlyph(size int) *image.NRGBA {
	dc := gg.NewContextForRGBA(rgbaOf(Gradient(size, size, Indigo, Purple)))
	margin := float64(size / 6)
	line := float64(size / 8)
	s := float64(size)

	dc.SetColor(color.White)
	dc.DrawRectangle(margin, margin, line, s-2*margin-line)
	dc.DrawRectangle(margin, s-margin-line, s-2*margin, line)
	dc.Fill()
	return canvasOf(dc)
}

// Network draws a faint pattern of linked nodes on a transparent canvas.
// The layout is fixed by seed.
func Network(w, h int, seed int64) *image.NRGBA {
	dc := gg.NewContext(w, h)
	rng := rand.New(rand.NewSource(seed))
	pad := 50
	if w <= 2*pad || h <= 2*pad {
		pad = 0
	}
	points := make([]gg.Point, 15)
	for i := range points {
		points[i] = gg.Point{
			X: float64(pad + rng.Intn(max(1, w-2*pad))),
			Y: float64(pad + rng.Intn(max(1, h-2*pad))),
		}
	}

	dc.SetColor(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 30})
	dc.SetLineWidth(1)
	for i, p := range points {
		for _, q := range points[i+1 : min(i+4, len(points))] {
			dc.DrawLine(p.X, p.Y, q.X, q.Y)
			dc.Stroke()
		}
	}
	dc.SetColor(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 50})
	for _, p := range points {
		dc.DrawCircle(p.X, p.Y, 8)
		dc.Fill()
	}
	return canvasOf(dc)
}

func polar(cx, cy, r, degrees float64) (float64, float64) {
	rad := gg.Radians(degrees)
	return cx + r*math.Cos(rad), cy + r*math.Sin(rad)
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x)*(1-t) + float64(y)*t))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

func rgbaOf(c *image.NRGBA) *image.RGBA {
	b := c.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), c, b.Min, draw.Src)
	return dst
}
