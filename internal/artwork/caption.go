package artwork

import (
	"image"
	"image/color"
	"log/slog"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// LoadFace returns a face for path at the given size. A missing or broken
// font is not an error: it falls back to the embedded Go Regular font and,
// failing that, to the fixed 7x13 bitmap face.
func LoadFace(path string, points float64, logger *slog.Logger) font.Face {
	if logger == nil {
		logger = slog.Default()
	}
	if path != "" {
		face, err := gg.LoadFontFace(path, points)
		if err == nil {
			return face
		}
		logger.Warn("caption font unavailable, using built-in font", "path", path, "error", err)
	}

	face, err := goFace(points)
	if err != nil {
		logger.Warn("built-in font failed, using bitmap font", "error", err)
		return basicfont.Face7x13
	}
	return face
}

func goFace(points float64) (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Caption is a line of text drawn onto a canvas.
type Caption struct {
	Text string
	Face font.Face
	// Y is the vertical center of the line as a fraction of canvas height.
	Y      float64
	Color  color.Color
	Shadow bool
}

// faceMu serializes text drawing: faces are shared between render jobs and
// font.Face implementations are not safe for concurrent use.
var faceMu sync.Mutex

// DrawCaptions returns a copy of c with the captions drawn horizontally
// centered.
func DrawCaptions(c *image.NRGBA, captions ...Caption) *image.NRGBA {
	faceMu.Lock()
	defer faceMu.Unlock()

	dc := gg.NewContextForRGBA(rgbaOf(c))
	w := float64(dc.Width())
	h := float64(dc.Height())
	for _, line := range captions {
		if line.Text == "" || line.Face == nil {
			continue
		}
		dc.SetFontFace(line.Face)
		y := h * line.Y
		if line.Shadow {
			dc.SetColor(color.NRGBA{A: 128})
			dc.DrawStringAnchored(line.Text, w/2+3, y+3, 0.5, 0.5)
		}
		fg := line.Color
		if fg == nil {
			fg = color.White
		}
		dc.SetColor(fg)
		dc.DrawStringAnchored(line.Text, w/2, y, 0.5, 0.5)
	}
	return canvasOf(dc)
}
