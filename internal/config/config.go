// Package config loads the iconforge YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"iconforge/internal/catalog"
	"iconforge/internal/compose"
	"iconforge/internal/emit"
)

// Config is the full run configuration. Every field has a default, so an
// empty file is valid.
type Config struct {
	Source      string                `yaml:"source"`
	Output      OutputConfig          `yaml:"output"`
	Families    []string              `yaml:"families"`
	SafeZone    map[string]float64    `yaml:"safe_zone"`
	Backgrounds map[string]FillConfig `yaml:"backgrounds"`
	Render      RenderConfig          `yaml:"render"`
	Artwork     ArtworkConfig         `yaml:"artwork"`
}

type OutputConfig struct {
	Root     string `yaml:"root"`
	Manifest string `yaml:"manifest"`
	// Templates override the destination of a family, keyed by family name.
	Templates      map[string]string `yaml:"templates"`
	AdaptiveXMLDir string            `yaml:"adaptive_xml_dir"`
}

// FillConfig is a background: kind solid, gradient or transparent, with
// hex colors.
type FillConfig struct {
	Kind string `yaml:"kind"`
	From string `yaml:"from"`
	To   string `yaml:"to,omitempty"`
}

type RenderConfig struct {
	// Backend is auto, builtin or magick.
	Backend string `yaml:"backend"`
	Filter  string `yaml:"filter"`
	Workers int    `yaml:"workers"`
}

type ArtworkConfig struct {
	Font        string `yaml:"font"`
	Title       string `yaml:"title"`
	Subtitle    string `yaml:"subtitle"`
	Network     bool   `yaml:"network"`
	NetworkSeed int64  `yaml:"network_seed"`
}

// Backends accepted by RenderConfig.Backend.
var Backends = []string{"auto", "builtin", "magick"}

// Default returns the built-in configuration.
func Default() *Config {
	p := catalog.DefaultPolicy()
	cfg := &Config{
		Output: OutputConfig{
			Root:      ".",
			Manifest:  emit.DefaultManifest,
			Templates: map[string]string{},
		},
		SafeZone:    map[string]float64{},
		Backgrounds: map[string]FillConfig{},
		Render:      RenderConfig{Backend: "auto", Filter: "catmullrom"},
		Artwork:     ArtworkConfig{Network: true, NetworkSeed: 42},
	}
	for _, f := range catalog.Families {
		cfg.Families = append(cfg.Families, string(f))
		cfg.SafeZone[string(f)] = p.SafeZone[f]
		cfg.Backgrounds[string(f)] = fillConfig(p.Fills[f])
	}
	return cfg
}

// Load reads path on top of the defaults. Files ending in .json or .jsonc
// are accepted too; comments and trailing commas are stripped first.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.canonicalize(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.Output.Root == "" {
		return fmt.Errorf("output.root is required")
	}
	families, err := c.FamilyList()
	if err != nil {
		return fmt.Errorf("families: %w", err)
	}
	if len(families) == 0 {
		return fmt.Errorf("families: at least one family is required")
	}
	for name := range c.Output.Templates {
		if _, err := catalog.ParseFamily(name); err != nil {
			return fmt.Errorf("output.templates: %w", err)
		}
	}
	for name, ratio := range c.SafeZone {
		if _, err := catalog.ParseFamily(name); err != nil {
			return fmt.Errorf("safe_zone: %w", err)
		}
		if !(ratio > 0 && ratio <= 1) {
			return fmt.Errorf("safe_zone.%s: %v is outside (0, 1]", name, ratio)
		}
	}
	for name, fc := range c.Backgrounds {
		if _, err := catalog.ParseFamily(name); err != nil {
			return fmt.Errorf("backgrounds: %w", err)
		}
		if _, err := fc.Fill(); err != nil {
			return fmt.Errorf("backgrounds.%s: %w", name, err)
		}
	}
	if !contains(Backends, c.Render.Backend) {
		return fmt.Errorf("render.backend %q must be one of %s", c.Render.Backend, strings.Join(Backends, ", "))
	}
	if _, err := compose.ResamplerByName(c.Render.Filter); err != nil {
		return fmt.Errorf("render.filter: %w", err)
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("render.workers must not be negative")
	}
	return nil
}

// FamilyList parses Families.
func (c *Config) FamilyList() ([]catalog.Family, error) {
	return catalog.ParseFamilies(c.Families)
}

// Policy builds the catalog policy from the defaults and the safe_zone and
// backgrounds sections.
func (c *Config) Policy() (catalog.Policy, error) {
	p := catalog.DefaultPolicy()
	for _, name := range sortedKeys(c.SafeZone) {
		f, err := catalog.ParseFamily(name)
		if err != nil {
			return p, err
		}
		p.SafeZone[f] = c.SafeZone[name]
	}
	for _, name := range sortedKeys(c.Backgrounds) {
		f, err := catalog.ParseFamily(name)
		if err != nil {
			return p, err
		}
		fill, err := c.Backgrounds[name].Fill()
		if err != nil {
			return p, fmt.Errorf("backgrounds.%s: %w", name, err)
		}
		p.Fills[f] = fill
	}
	return p, nil
}

// Layout builds the output layout, applying template overrides.
func (c *Config) Layout() (catalog.Layout, error) {
	l := catalog.DefaultLayout(c.Output.Root)
	for name, tmpl := range c.Output.Templates {
		f, err := catalog.ParseFamily(name)
		if err != nil {
			return l, err
		}
		l.Templates[f] = tmpl
	}
	if c.Output.AdaptiveXMLDir != "" {
		l.AdaptiveXMLDir = c.Output.AdaptiveXMLDir
	}
	return l, nil
}

// Specs builds the resolution specs for the configured families.
func (c *Config) Specs() ([]catalog.ResolutionSpec, error) {
	families, err := c.FamilyList()
	if err != nil {
		return nil, err
	}
	p, err := c.Policy()
	if err != nil {
		return nil, err
	}
	return catalog.Build(families, p)
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Fill parses the background.
func (fc FillConfig) Fill() (catalog.Fill, error) {
	switch catalog.FillKind(fc.Kind) {
	case catalog.FillTransparent:
		return catalog.Fill{Kind: catalog.FillTransparent}, nil
	case catalog.FillSolid:
		from, err := ParseHexColor(fc.From)
		if err != nil {
			return catalog.Fill{}, err
		}
		return catalog.Fill{Kind: catalog.FillSolid, From: from}, nil
	case catalog.FillGradient:
		from, err := ParseHexColor(fc.From)
		if err != nil {
			return catalog.Fill{}, err
		}
		to, err := ParseHexColor(fc.To)
		if err != nil {
			return catalog.Fill{}, err
		}
		return catalog.Fill{Kind: catalog.FillGradient, From: from, To: to}, nil
	}
	return catalog.Fill{}, fmt.Errorf("unknown fill kind %q", fc.Kind)
}

// canonicalize rewrites family aliases used as map keys to their canonical
// names, so "legacy: 0.8" overrides the legacy_icon default.
func (c *Config) canonicalize() error {
	if err := rekey(c.SafeZone); err != nil {
		return fmt.Errorf("safe_zone: %w", err)
	}
	if err := rekey(c.Backgrounds); err != nil {
		return fmt.Errorf("backgrounds: %w", err)
	}
	if err := rekey(c.Output.Templates); err != nil {
		return fmt.Errorf("output.templates: %w", err)
	}
	return nil
}

func rekey[V any](m map[string]V) error {
	for _, name := range sortedKeys(m) {
		f, err := catalog.ParseFamily(name)
		if err != nil {
			return err
		}
		if canonical := string(f); canonical != name {
			m[canonical] = m[name]
			delete(m, name)
		}
	}
	return nil
}

func fillConfig(f catalog.Fill) FillConfig {
	fc := FillConfig{Kind: string(f.Kind)}
	switch f.Kind {
	case catalog.FillSolid:
		fc.From = HexColor(f.From)
	case catalog.FillGradient:
		fc.From = HexColor(f.From)
		fc.To = HexColor(f.To)
	}
	return fc
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
