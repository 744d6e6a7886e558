// Package magick renders icons by shelling out to ImageMagick. It covers the
// plain icon families only; everything else is left to the builtin renderer.
package magick

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sys/execabs"

	"iconforge/internal/catalog"
	"iconforge/internal/compose"
	"iconforge/internal/geometry"
	"iconforge/internal/render"
)

// ErrBackendUnavailable is returned when no ImageMagick binary is found.
var ErrBackendUnavailable = errors.New("imagemagick not available")

// DefaultTimeout bounds a single convert invocation.
const DefaultTimeout = 30 * time.Second

// Backend is a render.Renderer driving the ImageMagick command line.
type Backend struct {
	// Binary is the resolved path of "magick" or "convert".
	Binary  string
	Filter  string
	Timeout time.Duration
}

// candidates lists binaries in preference order. On Windows "convert" is
// the system disk tool, not ImageMagick.
func candidates() []string {
	if runtime.GOOS == "windows" {
		return []string{"magick"}
	}
	return []string{"magick", "convert"}
}

// Probe looks up an ImageMagick binary on PATH.
func Probe() (*Backend, error) {
	var tried []string
	for _, name := range candidates() {
		path, err := execabs.LookPath(name)
		if err == nil {
			return &Backend{Binary: path, Filter: "Lanczos", Timeout: DefaultTimeout}, nil
		}
		tried = append(tried, name)
	}
	return nil, fmt.Errorf("%w: looked for %s", ErrBackendUnavailable, strings.Join(tried, ", "))
}

func (b *Backend) Name() string { return "magick" }

// Supports reports whether the job can be handed to ImageMagick: a legacy
// or store icon on a solid background, from a source that exists on disk.
func (b *Backend) Supports(job render.Job) bool {
	switch job.Spec.Family {
	case catalog.LegacyIcon:
		if job.Shape != catalog.ShapeSquare && job.Shape != catalog.ShapeRound {
			return false
		}
	case catalog.StoreIcon:
		if job.Shape != catalog.ShapeSquare {
			return false
		}
	default:
		return false
	}
	if job.Spec.Fill.Kind != catalog.FillSolid {
		return false
	}
	src := job.Source
	return src != nil && src.Path != "" && src.Format != "canvas"
}

// Args builds the argument list for job. The artwork is resized to the
// planned fit and placed at the planned offset, so the layout matches the
// builtin renderer.
func (b *Backend) Args(job render.Job) ([]string, error) {
	spec := job.Spec
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if job.Source == nil || job.Source.Path == "" {
		return nil, fmt.Errorf("magick %s: source has no file path", job)
	}
	plan, err := geometry.NewPlan(job.Source.Width(), job.Source.Height(), spec.Width, spec.Height, spec.SafeZoneRatio)
	if err != nil {
		return nil, fmt.Errorf("magick %s: %w", job, err)
	}
	filter := b.Filter
	if filter == "" {
		filter = "Lanczos"
	}

	args := []string{
		"-size", fmt.Sprintf("%dx%d", spec.Width, spec.Height),
		"xc:" + hexColor(spec.Fill.From),
		"(", job.Source.Path, "-filter", filter,
		"-resize", fmt.Sprintf("%dx%d!", plan.Fit.Width, plan.Fit.Height), ")",
		"-geometry", fmt.Sprintf("+%d+%d", plan.Offset.X, plan.Offset.Y),
		"-compose", "over", "-composite",
	}
	if job.Shape == catalog.ShapeRound {
		cx, cy := spec.Width/2, spec.Height/2
		r := min(spec.Width, spec.Height) / 2
		args = append(args,
			"(", "-size", fmt.Sprintf("%dx%d", spec.Width, spec.Height), "xc:none",
			"-fill", "white", "-draw", fmt.Sprintf("circle %d,%d %d,%d", cx, cy, cx+r, cy), ")",
			"-alpha", "set", "-compose", "DstIn", "-composite",
		)
	}
	return append(args, "png32:-"), nil
}

// Render runs ImageMagick for job and decodes the PNG it writes to stdout.
func (b *Backend) Render(job render.Job) (*image.NRGBA, error) {
	args, err := b.Args(job)
	if err != nil {
		return nil, err
	}
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := execabs.CommandContext(ctx, b.Binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("magick %s: %w", job, err)
		}
		return nil, fmt.Errorf("magick %s: %w: %s", job, err, msg)
	}

	img, err := png.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("magick %s: decode output: %w", job, err)
	}
	out := compose.ToNRGBA(img)
	if got := out.Bounds().Size(); got.X != job.Spec.Width || got.Y != job.Spec.Height {
		return nil, fmt.Errorf("magick %s: output is %dx%d, want %dx%d", job, got.X, got.Y, job.Spec.Width, job.Spec.Height)
	}
	return out, nil
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
