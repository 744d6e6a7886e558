package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"iconforge/internal/artwork"
	"iconforge/internal/emit"
	"iconforge/internal/magick"
	"iconforge/internal/render"
	"iconforge/internal/source"
	"iconforge/internal/ui"
)

// demoSize is the side of the drawn demo artwork, large enough for the
// biggest derived asset.
const demoSize = 1024

// generate runs one full derivation. It returns the local files the run
// depended on, for watch mode.
func generate(ctx context.Context, o *options, console *ui.Console, logger *slog.Logger) ([]string, error) {
	start := time.Now()
	cfg, cfgPath, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	var inputs []string
	if cfgPath != "" {
		inputs = append(inputs, cfgPath)
	}

	src, cleanup, err := loadSource(ctx, o.demo, cfg.Source)
	if err != nil {
		return inputs, err
	}
	defer cleanup()
	if o.demo == "" && !source.IsRemote(cfg.Source) {
		inputs = append(inputs, cfg.Source)
	}
	if !o.quiet {
		console.Info(fmt.Sprintf("Source %s (%dx%d, %s)", src.Path, src.Width(), src.Height(), src.Format))
	}

	specs, err := cfg.Specs()
	if err != nil {
		return inputs, err
	}
	layout, err := cfg.Layout()
	if err != nil {
		return inputs, err
	}
	resampler, err := cfg.Resampler()
	if err != nil {
		return inputs, err
	}
	builtin := render.NewBuiltin(resampler)
	builtin.Decor = cfg.Decor(logger)
	chain, err := renderers(cfg.Render.Backend, builtin, console, o.quiet)
	if err != nil {
		return inputs, err
	}

	var writer emit.Writer = emit.DirWriter{}
	var archive *emit.ZipWriter
	if o.zip != "" {
		archive = &emit.ZipWriter{Root: layout.Root}
		writer = archive
	}

	e := &emit.Emitter{
		Specs:     specs,
		Layout:    layout,
		Renderers: chain,
		Writer:    writer,
		Workers:   cfg.Render.Workers,
		Logger:    logger,
		Manifest:  cfg.Output.Manifest,
	}
	res, err := e.Emit(ctx, src)
	if err != nil {
		return inputs, err
	}

	if archive != nil {
		if err := writeArchive(o.zip, archive); err != nil {
			return inputs, err
		}
	}

	if !o.quiet {
		console.Header("Assets")
		for _, a := range res.Assets {
			b := a.Pixels.Bounds()
			console.Asset(a.Path, b.Dx(), b.Dy(), a.Renderer)
		}
		for _, path := range res.Extra {
			console.Info("Wrote " + path)
		}
		dest := layout.Root
		if o.zip != "" {
			dest = o.zip
		}
		console.Success(fmt.Sprintf("%d assets in %s (%s)", len(res.Assets), dest, time.Since(start).Round(time.Millisecond)))
	}
	return inputs, nil
}

func loadSource(ctx context.Context, demo, ref string) (*source.Image, func(), error) {
	switch demo {
	case "":
	case "node":
		return source.FromCanvas(artwork.NodeGraph(demoSize), "demo:node"), func() {}, nil
	case "launcher":
		return source.FromCanvas(artwork.LauncherGlyph(demoSize), "demo:launcher"), func() {}, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown demo artwork %q (want node or launcher)", demo)
	}
	if ref == "" {
		return nil, func() {}, errors.New("no source image: pass --source, set source in the config, or use --demo")
	}
	return source.Open(ctx, nil, ref, nil)
}

// renderers builds the renderer chain for backend. The builtin renderer
// is always last so every job has a renderer.
func renderers(backend string, builtin *render.Builtin, console *ui.Console, quiet bool) (render.Chain, error) {
	if backend == "builtin" {
		return render.Chain{builtin}, nil
	}
	im, err := magick.Probe()
	if err != nil {
		if backend == "magick" {
			return nil, err
		}
		if !errors.Is(err, magick.ErrBackendUnavailable) {
			return nil, err
		}
		return render.Chain{builtin}, nil
	}
	if !quiet {
		console.Info("Using ImageMagick at " + im.Binary + " for launcher and store icons")
	}
	return render.Chain{im, builtin}, nil
}

func writeArchive(path string, z *emit.ZipWriter) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := z.WriteTo(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
