// Package geometry computes how source artwork is sized and placed on a
// target canvas: the aspect-preserving fit, the safe-zone budget and the
// centering offset.
package geometry

import (
	"fmt"
	"image"
	"math"
)

// floorEpsilon absorbs float error in products such as 108*(66.0/108.0).
const floorEpsilon = 1e-9

// Fit is the size the artwork is resampled to.
type Fit struct {
	Width  int
	Height int
}

// FitWithin returns the largest size with the source aspect ratio that fits
// a budget x budget box. Each side is rounded to the nearest pixel and
// clamped to [1, budget].
func FitWithin(sourceW, sourceH, budget int) (Fit, error) {
	if sourceW <= 0 || sourceH <= 0 {
		return Fit{}, fmt.Errorf("fit: source size %dx%d must be positive", sourceW, sourceH)
	}
	if budget <= 0 {
		return Fit{}, fmt.Errorf("fit: budget %d must be positive", budget)
	}
	if sourceW == sourceH {
		return Fit{Width: budget, Height: budget}, nil
	}

	scale := math.Min(float64(budget)/float64(sourceW), float64(budget)/float64(sourceH))
	return Fit{
		Width:  clamp(int(math.Round(float64(sourceW)*scale)), 1, budget),
		Height: clamp(int(math.Round(float64(sourceH)*scale)), 1, budget),
	}, nil
}

// SafeBudget returns floor(size * ratio), the side of the square the
// artwork has to fit in.
func SafeBudget(size int, ratio float64) int {
	return int(math.Floor(float64(size)*ratio + floorEpsilon))
}

// CenterOffset centers fit on a w x h canvas. Odd remainders leave the
// extra pixel on the right and bottom.
func CenterOffset(w, h int, fit Fit) image.Point {
	return image.Point{X: (w - fit.Width) / 2, Y: (h - fit.Height) / 2}
}

// Plan places fitted artwork on a canvas.
type Plan struct {
	Offset image.Point
	Fit    Fit
}

// Rect is the canvas rectangle covered by the artwork.
func (p Plan) Rect() image.Rectangle {
	return image.Rect(p.Offset.X, p.Offset.Y, p.Offset.X+p.Fit.Width, p.Offset.Y+p.Fit.Height)
}

// NewPlan fits a sourceW x sourceH image inside the safe zone of a
// canvasW x canvasH canvas and centers it. The budget is taken from the
// smaller canvas side so the safe zone is always a square.
func NewPlan(sourceW, sourceH, canvasW, canvasH int, ratio float64) (Plan, error) {
	if canvasW <= 0 || canvasH <= 0 {
		return Plan{}, fmt.Errorf("plan: canvas size %dx%d must be positive", canvasW, canvasH)
	}
	if !(ratio > 0 && ratio <= 1) {
		return Plan{}, fmt.Errorf("plan: safe zone ratio %v outside (0,1]", ratio)
	}
	budget := SafeBudget(min(canvasW, canvasH), ratio)
	if budget < 1 {
		return Plan{}, fmt.Errorf("plan: %dx%d canvas at ratio %v leaves no room for artwork", canvasW, canvasH, ratio)
	}
	fit, err := FitWithin(sourceW, sourceH, budget)
	if err != nil {
		return Plan{}, err
	}
	return Plan{Offset: CenterOffset(canvasW, canvasH, fit), Fit: fit}, nil
}

// SafeZone returns the centered square of the canvas the artwork must stay
// inside.
func SafeZone(canvasW, canvasH int, ratio float64) image.Rectangle {
	budget := SafeBudget(min(canvasW, canvasH), ratio)
	off := CenterOffset(canvasW, canvasH, Fit{Width: budget, Height: budget})
	return image.Rect(off.X, off.Y, off.X+budget, off.Y+budget)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
