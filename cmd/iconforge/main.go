// iconforge derives a complete Android launcher and store asset set from
// one source image.
//
// Usage:
//
//	iconforge --source logo.png --out ./app
//	iconforge --demo --families legacy,store --zip icons.zip
//	iconforge --source logo.png --watch
//
// Settings come from iconforge.yaml (working directory, then the user
// config directory, or --config); flags override the file.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/pflag"

	"iconforge/internal/config"
	"iconforge/internal/ui"
	"iconforge/internal/watch"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	source      string
	out         string
	families    []string
	backend     string
	filter      string
	workers     int
	demo        string
	zip         string
	font        string
	title       string
	subtitle    string
	watch       bool
	verbose     bool
	quiet       bool
	printConfig bool

	flags *pflag.FlagSet
}

func run() error {
	var opts options
	flagSet := pflag.NewFlagSet("iconforge", pflag.ContinueOnError)
	flagSet.StringVarP(&opts.source, "source", "s", "", "source image path or http(s) URL")
	flagSet.StringVarP(&opts.configPath, "config", "c", "", "config file (default: ./iconforge.yaml, then the user config dir)")
	flagSet.StringVarP(&opts.out, "out", "o", "", "output root directory")
	flagSet.StringSliceVarP(&opts.families, "families", "f", nil, "asset families to derive, or \"all\"")
	flagSet.StringVar(&opts.backend, "backend", "", "renderer: auto, builtin or magick")
	flagSet.StringVar(&opts.filter, "filter", "", "resample filter: catmullrom, lanczos or box")
	flagSet.IntVarP(&opts.workers, "workers", "j", 0, "parallel render jobs (default: number of CPUs)")
	flagSet.StringVar(&opts.demo, "demo", "", "use drawn artwork instead of a source: node or launcher")
	flagSet.Lookup("demo").NoOptDefVal = "node"
	flagSet.StringVar(&opts.zip, "zip", "", "write the asset tree into this zip archive instead of the output root")
	flagSet.StringVar(&opts.font, "font", "", "TTF font for captions")
	flagSet.StringVar(&opts.title, "title", "", "caption title on the feature graphic and screenshots")
	flagSet.StringVar(&opts.subtitle, "subtitle", "", "caption subtitle")
	flagSet.BoolVarP(&opts.watch, "watch", "w", false, "re-derive whenever the source or config file changes")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log every rendered asset")
	flagSet.BoolVarP(&opts.quiet, "quiet", "q", false, "only report errors")
	flagSet.BoolVar(&opts.printConfig, "print-config", false, "print the effective config as YAML and exit")
	opts.flags = flagSet

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	console := ui.Stdout()
	if opts.printConfig {
		cfg, _, err := opts.loadConfig()
		if err != nil {
			return err
		}
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	if !opts.quiet {
		console.Logo()
	}
	inputs, err := generate(ctx, &opts, console, logger)
	if err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}
	if len(inputs) == 0 {
		return errors.New("--watch needs a local source file or config file")
	}

	console.Info("Watching " + strings.Join(inputs, ", ") + " (Ctrl+C to stop)")
	w := &watch.Watcher{
		Files:  inputs,
		Logger: logger,
		Run: func(ctx context.Context, changed string) error {
			console.Info("Changed: " + changed)
			_, err := generate(ctx, &opts, console, logger)
			if err != nil {
				console.Error(err.Error())
			}
			return err
		},
	}
	return w.Watch(ctx)
}

// loadConfig resolves the config file and applies flag overrides. The
// returned path is "" when only defaults are in use.
func (o *options) loadConfig() (*config.Config, string, error) {
	path, err := config.Discover(o.configPath)
	if err != nil {
		return nil, "", fmt.Errorf("config: %w", err)
	}
	cfg := config.Default()
	if path != "" {
		if cfg, err = config.Load(path); err != nil {
			return nil, "", err
		}
	}

	changed := o.flags.Changed
	if changed("source") {
		cfg.Source = o.source
	}
	if changed("out") {
		cfg.Output.Root = o.out
	}
	if changed("families") {
		cfg.Families = o.families
	}
	if changed("backend") {
		cfg.Render.Backend = o.backend
	}
	if changed("filter") {
		cfg.Render.Filter = o.filter
	}
	if changed("workers") {
		cfg.Render.Workers = o.workers
	}
	if changed("font") {
		cfg.Artwork.Font = o.font
	}
	if changed("title") {
		cfg.Artwork.Title = o.title
	}
	if changed("subtitle") {
		cfg.Artwork.Subtitle = o.subtitle
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config: %w", err)
	}
	return cfg, path, nil
}
