// Package emit plans, renders and writes a full asset set.
//
// Emission is all or nothing: every job is rendered before the first byte
// is written, and a single failed job aborts the run with no output.
package emit

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/zeebo/blake3"

	"iconforge/internal/catalog"
	"iconforge/internal/render"
	"iconforge/internal/source"
)

// Asset is one rendered, encoded file.
type Asset struct {
	Family   catalog.Family
	ClassID  string
	Shape    catalog.Shape
	Path     string
	Renderer string
	Pixels   *image.NRGBA
	PNG      []byte
	// Digest is the hex BLAKE3-256 of PNG.
	Digest string
}

// Result is what one Emit call produced.
type Result struct {
	Assets []Asset
	// Extra lists the non-image files written: adaptive icon descriptors
	// and the manifest.
	Extra []string
}

// Emitter derives every asset of Specs from one source.
type Emitter struct {
	Specs     []catalog.ResolutionSpec
	Layout    catalog.Layout
	Renderers render.Chain
	Writer    Writer
	// Workers bounds concurrent renders; zero means runtime.NumCPU().
	Workers int
	Logger  *slog.Logger
	// Manifest is written under Layout.Root unless empty.
	Manifest string
}

type job struct {
	render.Job
	path     string
	renderer render.Renderer
}

type outcome struct {
	pixels *image.NRGBA
	err    error
}

// Plan validates the layout and expands Specs into jobs, in catalog order
// and then shape order. Nothing is rendered.
func (e *Emitter) Plan(src *source.Image) ([]render.Job, []string, error) {
	if err := e.Layout.Validate(e.Specs); err != nil {
		return nil, nil, err
	}
	var jobs []render.Job
	var paths []string
	for _, spec := range e.Specs {
		for _, shape := range spec.Family.Shapes() {
			path, err := e.Layout.Path(spec, shape)
			if err != nil {
				return nil, nil, err
			}
			jobs = append(jobs, render.Job{Spec: spec, Shape: shape, Source: src})
			paths = append(paths, path)
		}
	}
	return jobs, paths, nil
}

// Emit renders every job and, only if all succeed, writes the assets, the
// adaptive icon descriptors and the manifest.
func (e *Emitter) Emit(ctx context.Context, src *source.Image) (*Result, error) {
	logger := e.logger()
	if e.Writer == nil {
		return nil, errors.New("emit: no writer configured")
	}
	planned, paths, err := e.Plan(src)
	if err != nil {
		return nil, err
	}

	jobs := make([]job, len(planned))
	for i, j := range planned {
		r, err := e.Renderers.For(j)
		if err != nil {
			return nil, err
		}
		jobs[i] = job{Job: j, path: paths[i], renderer: r}
	}
	logger.Info("rendering assets", "jobs", len(jobs), "renderers", e.Renderers.Names())

	outcomes := e.renderAll(ctx, logger, jobs)
	var errs []error
	for i, o := range outcomes {
		if o.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", jobs[i].Job, o.err))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%d of %d assets failed, nothing written: %w", len(errs), len(jobs), errors.Join(errs...))
	}

	assets := make([]Asset, len(jobs))
	for i, j := range jobs {
		a, err := encode(j, outcomes[i].pixels)
		if err != nil {
			return nil, err
		}
		assets[i] = a
	}

	if err := e.writeAll(assets); err != nil {
		return nil, err
	}
	res := &Result{Assets: assets}

	xmls, err := e.writeAdaptiveXML()
	if err != nil {
		return res, err
	}
	res.Extra = append(res.Extra, xmls...)

	if e.Manifest != "" {
		path, err := e.writeManifest(assets)
		if err != nil {
			return res, err
		}
		res.Extra = append(res.Extra, path)
	}
	logger.Info("assets written", "assets", len(assets), "extra", len(res.Extra))
	return res, nil
}

func (e *Emitter) renderAll(ctx context.Context, logger *slog.Logger, jobs []job) []outcome {
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, max(1, len(jobs)))

	outcomes := make([]outcome, len(jobs))
	workCh := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workCh {
				j := jobs[i]
				if err := ctx.Err(); err != nil {
					outcomes[i] = outcome{err: err}
					continue
				}
				px, err := j.renderer.Render(j.Job)
				if err == nil && (px.Bounds().Dx() != j.Spec.Width || px.Bounds().Dy() != j.Spec.Height) {
					err = fmt.Errorf("%s renderer produced %v, want %dx%d", j.renderer.Name(), px.Bounds().Size(), j.Spec.Width, j.Spec.Height)
				}
				outcomes[i] = outcome{pixels: px, err: err}
				logger.Debug("rendered", "job", j.Job.String(), "renderer", j.renderer.Name(), "error", err)
			}
		}()
	}
	for i := range jobs {
		workCh <- i
	}
	close(workCh)
	wg.Wait()
	return outcomes
}

func (e *Emitter) writeAll(assets []Asset) error {
	errCh := make(chan error, len(assets))
	var wg sync.WaitGroup
	for i := range assets {
		wg.Add(1)
		go func(a *Asset) {
			defer wg.Done()
			if err := e.Writer.WriteFile(a.Path, a.PNG); err != nil {
				errCh <- fmt.Errorf("write %s: %w", a.Path, err)
			}
		}(&assets[i])
	}
	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (e *Emitter) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e.Logger
}

func encode(j job, px *image.NRGBA) (Asset, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, px); err != nil {
		return Asset{}, fmt.Errorf("encode %s: %w", j.Job, err)
	}
	sum := blake3.Sum256(buf.Bytes())
	return Asset{
		Family:   j.Spec.Family,
		ClassID:  j.Spec.ClassID,
		Shape:    j.Shape,
		Path:     j.path,
		Renderer: j.renderer.Name(),
		Pixels:   px,
		PNG:      buf.Bytes(),
		Digest:   hex.EncodeToString(sum[:]),
	}, nil
}
