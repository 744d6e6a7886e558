package main

import (
	"context"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"iconforge/internal/compose"
	"iconforge/internal/ui"
)

func testOptions(t *testing.T, args ...string) *options {
	t.Helper()
	o := &options{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringVar(&o.source, "source", "", "")
	fs.StringVar(&o.configPath, "config", "", "")
	fs.StringVar(&o.out, "out", "", "")
	fs.StringSliceVar(&o.families, "families", nil, "")
	fs.StringVar(&o.backend, "backend", "", "")
	fs.StringVar(&o.filter, "filter", "", "")
	fs.StringVar(&o.zip, "zip", "", "")
	fs.StringVar(&o.title, "title", "", "")
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	o.flags = fs
	o.quiet = true
	return o
}

func writeLogo(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "logo.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, compose.NewSolid(64, 32, color.NRGBA{R: 0xcc, A: 0xff})); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenerate_FromFile(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)
	logo := writeLogo(t, dir)
	out := filepath.Join(dir, "app")
	o := testOptions(t, "--source", logo, "--out", out, "--families", "legacy,store", "--backend", "builtin")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	inputs, err := generate(context.Background(), o, ui.New(io.Discard), logger)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(inputs) != 1 || inputs[0] != logo {
		t.Errorf("inputs = %v, want [%s]", inputs, logo)
	}
	for _, rel := range []string{
		"android/app/src/main/res/mipmap-mdpi/ic_launcher.png",
		"android/app/src/main/res/mipmap-xxxhdpi/ic_launcher_round.png",
		"fastlane/metadata/android/en-US/images/icon.png",
		"iconforge-manifest.json",
	} {
		if _, err := os.Stat(filepath.Join(out, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
}

func TestGenerate_DemoToZip(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)
	archive := filepath.Join(dir, "dist", "icons.zip")
	o := testOptions(t, "--families", "store", "--backend", "builtin", "--zip", archive)
	o.demo = "launcher"

	if _, err := generate(context.Background(), o, ui.New(io.Discard), slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		t.Fatalf("generate: %v", err)
	}
	st, err := os.Stat(archive)
	if err != nil || st.Size() == 0 {
		t.Fatalf("archive not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "fastlane")); !os.IsNotExist(err) {
		t.Error("zip mode should not write the tree to disk")
	}
}

func TestGenerate_Errors(t *testing.T) {
	testChdir(t, t.TempDir())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tests := map[string]*options{
		"no source":      testOptions(t, "--backend", "builtin"),
		"missing source": testOptions(t, "--source", "nope.png", "--backend", "builtin"),
		"bad family":     testOptions(t, "--source", "x.png", "--families", "desktop"),
		"bad filter":     testOptions(t, "--source", "x.png", "--filter", "nearest"),
	}
	for name, o := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := generate(context.Background(), o, ui.New(io.Discard), logger); err == nil {
				t.Error("expected error")
			}
		})
	}
	o := testOptions(t)
	o.demo = "spiral"
	if _, err := generate(context.Background(), o, ui.New(io.Discard), logger); err == nil {
		t.Error("expected error for unknown demo")
	}
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "iconforge.yaml")
	body := "source: from-file.png\nrender:\n  filter: box\nartwork:\n  title: File\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	o := testOptions(t, "--config", cfgPath, "--title", "Flag")
	cfg, path, err := o.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if path != cfgPath {
		t.Errorf("path = %q", path)
	}
	if cfg.Source != "from-file.png" || cfg.Render.Filter != "box" {
		t.Errorf("file values lost: %+v", cfg)
	}
	if cfg.Artwork.Title != "Flag" {
		t.Errorf("title = %q, want flag override", cfg.Artwork.Title)
	}
}

// testChdir mirrors testing.T.Chdir (Go 1.24+): it changes the working
// directory for the duration of the test and restores it on cleanup.
func testChdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
