package compose

import (
	"image"

	"golang.org/x/image/draw"

	"iconforge/internal/geometry"
)

// Compose resamples src to plan.Fit and composites it over a copy of
// background at plan.Offset. Neither input is modified.
func Compose(background, src *image.NRGBA, plan geometry.Plan, r Resampler) *image.NRGBA {
	out := Clone(background)
	if plan.Fit.Width <= 0 || plan.Fit.Height <= 0 {
		return out
	}
	if r == nil {
		r = DefaultResampler
	}
	art := r.Resample(src, plan.Fit.Width, plan.Fit.Height)
	Over(out, art, plan.Offset)
	return out
}

// Over composites src onto dst with its top-left corner at at, using
// src's alpha as the blend weight.
func Over(dst *image.NRGBA, src image.Image, at image.Point) {
	sb := src.Bounds()
	r := image.Rectangle{Min: at, Max: at.Add(sb.Size())}
	draw.Draw(dst, r.Add(dst.Bounds().Min), src, sb.Min, draw.Over)
}
