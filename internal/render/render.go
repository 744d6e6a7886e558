// Package render turns one (spec, shape) job into a finished pixel buffer.
package render

import (
	"fmt"
	"image"

	"iconforge/internal/artwork"
	"iconforge/internal/catalog"
	"iconforge/internal/compose"
	"iconforge/internal/geometry"
	"iconforge/internal/mask"
	"iconforge/internal/source"
)

// Job is one asset to render.
type Job struct {
	Spec   catalog.ResolutionSpec
	Shape  catalog.Shape
	Source *source.Image
}

func (j Job) String() string {
	return fmt.Sprintf("%s/%s/%s", j.Spec.Family, j.Spec.ClassID, j.Shape)
}

// Renderer is a rendering strategy. Implementations must not modify the
// job's source and must be safe for concurrent use.
type Renderer interface {
	Name() string
	Supports(job Job) bool
	Render(job Job) (*image.NRGBA, error)
}

// Decor is extra decoration drawn on the assets of a family: a network
// pattern over the background and captions over the artwork.
type Decor struct {
	Network     bool
	NetworkSeed int64
	Captions    []artwork.Caption
}

// Builtin renders every family in process.
type Builtin struct {
	Resampler compose.Resampler
	Decor     map[catalog.Family]Decor
}

// NewBuiltin returns a builtin renderer using r, or the default resampler
// when r is nil.
func NewBuiltin(r compose.Resampler) *Builtin {
	if r == nil {
		r = compose.DefaultResampler
	}
	return &Builtin{Resampler: r}
}

func (b *Builtin) Name() string { return "builtin" }

func (b *Builtin) Supports(Job) bool { return true }

func (b *Builtin) Render(job Job) (*image.NRGBA, error) {
	spec := job.Spec
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	decor := b.Decor[spec.Family]

	out := Background(spec)
	if decor.Network {
		compose.Over(out, artwork.Network(spec.Width, spec.Height, decor.NetworkSeed), image.Point{})
	}

	if spec.Family.HasArtwork() {
		if job.Source == nil || job.Source.Pixels == nil {
			return nil, fmt.Errorf("render %s: no source image", job)
		}
		plan, err := geometry.NewPlan(job.Source.Width(), job.Source.Height(), spec.Width, spec.Height, spec.SafeZoneRatio)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", job, err)
		}
		out = compose.Compose(out, job.Source.Pixels, plan, b.Resampler)
	}

	if len(decor.Captions) > 0 {
		out = artwork.DrawCaptions(out, decor.Captions...)
	}

	if job.Shape == catalog.ShapeRound {
		out = mask.ApplyCircular(out)
	}
	return out, nil
}

// Background produces the canvas a spec's artwork is composited onto.
func Background(spec catalog.ResolutionSpec) *image.NRGBA {
	switch spec.Fill.Kind {
	case catalog.FillSolid:
		return compose.NewSolid(spec.Width, spec.Height, spec.Fill.From)
	case catalog.FillGradient:
		return artwork.Gradient(spec.Width, spec.Height, spec.Fill.From, spec.Fill.To)
	}
	return compose.NewTransparent(spec.Width, spec.Height)
}

// Chain picks, per job, the first renderer that supports it. Put the
// preferred strategy first and a renderer that supports everything last.
type Chain []Renderer

// For returns the renderer for job.
func (c Chain) For(job Job) (Renderer, error) {
	for _, r := range c {
		if r != nil && r.Supports(job) {
			return r, nil
		}
	}
	return nil, fmt.Errorf("no renderer supports %s", job)
}

// Names lists the renderers in order.
func (c Chain) Names() []string {
	names := make([]string, 0, len(c))
	for _, r := range c {
		if r != nil {
			names = append(names, r.Name())
		}
	}
	return names
}
