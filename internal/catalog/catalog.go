// Package catalog holds the fixed resolution tables for every asset family
// and turns them into ResolutionSpec values for a run.
package catalog

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

var (
	ErrInvalidSpec   = errors.New("invalid resolution spec")
	ErrPathCollision = errors.New("destination path collision")
)

// Family identifies a group of assets that share a size table and a
// composition policy.
type Family string

const (
	LegacyIcon         Family = "legacy_icon"
	AdaptiveForeground Family = "adaptive_foreground"
	AdaptiveBackground Family = "adaptive_background"
	StoreIcon          Family = "store_icon"
	FeatureGraphic     Family = "feature_graphic"
	Screenshot         Family = "screenshot"
)

// Families lists every family in catalog order. Specs are always produced
// in this order, whatever order the caller asked for them in.
var Families = []Family{
	LegacyIcon,
	AdaptiveForeground,
	AdaptiveBackground,
	StoreIcon,
	FeatureGraphic,
	Screenshot,
}

// ParseFamily accepts the canonical name or the short aliases used on the
// command line ("legacy", "foreground", "background", "store", "feature").
func ParseFamily(name string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "legacy_icon", "legacy":
		return LegacyIcon, nil
	case "adaptive_foreground", "foreground":
		return AdaptiveForeground, nil
	case "adaptive_background", "background":
		return AdaptiveBackground, nil
	case "store_icon", "store":
		return StoreIcon, nil
	case "feature_graphic", "feature":
		return FeatureGraphic, nil
	case "screenshot", "screenshots":
		return Screenshot, nil
	}
	return "", fmt.Errorf("unknown asset family %q", name)
}

// ParseFamilies parses a list of family names. "all" selects every family.
func ParseFamilies(names []string) ([]Family, error) {
	var out []Family
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), "all") {
			return append([]Family(nil), Families...), nil
		}
		f, err := ParseFamily(name)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Valid reports whether f is one of the known families.
func (f Family) Valid() bool {
	for _, known := range Families {
		if f == known {
			return true
		}
	}
	return false
}

// Shapes returns the shapes rendered for every spec of the family.
func (f Family) Shapes() []Shape {
	switch f {
	case LegacyIcon:
		return []Shape{ShapeSquare, ShapeRound}
	case AdaptiveForeground:
		return []Shape{ShapeForeground}
	case AdaptiveBackground:
		return []Shape{ShapeBackground}
	default:
		return []Shape{ShapeSquare}
	}
}

// HasArtwork reports whether the source artwork is composited into assets
// of this family. The adaptive background layer is fill only.
func (f Family) HasArtwork() bool {
	return f != AdaptiveBackground
}

// SafeZoneBound reports whether assets of this family must keep their
// artwork inside the safe zone.
func (f Family) SafeZoneBound() bool {
	return f == LegacyIcon || f == AdaptiveForeground
}

// Shape is the variant of an asset within its spec.
type Shape string

const (
	ShapeSquare     Shape = "square"
	ShapeRound      Shape = "round"
	ShapeForeground Shape = "foreground"
	ShapeBackground Shape = "background"
)

// Suffix is the file name suffix conventionally used for the shape.
func (s Shape) Suffix() string {
	switch s {
	case ShapeRound:
		return "_round"
	case ShapeForeground:
		return "_foreground"
	case ShapeBackground:
		return "_background"
	}
	return ""
}

// FillKind selects how a background canvas is produced.
type FillKind string

const (
	FillSolid       FillKind = "solid"
	FillGradient    FillKind = "gradient"
	FillTransparent FillKind = "transparent"
)

// Fill describes the background canvas of a spec. To is only used by
// gradients, which run top to bottom.
type Fill struct {
	Kind FillKind
	From color.NRGBA
	To   color.NRGBA
}

// ResolutionSpec is one entry of the catalog: a density class of a family
// with its canvas size, safe-zone ratio and background.
type ResolutionSpec struct {
	ClassID       string
	Family        Family
	Width         int
	Height        int
	SafeZoneRatio float64
	Fill          Fill
}

func (s ResolutionSpec) String() string {
	return fmt.Sprintf("%s/%s (%dx%d)", s.Family, s.ClassID, s.Width, s.Height)
}

// Validate checks the spec on its own; path collisions are checked by
// Layout.Validate.
func (s ResolutionSpec) Validate() error {
	if s.ClassID == "" {
		return fmt.Errorf("%w: %s: empty class id", ErrInvalidSpec, s.Family)
	}
	if !s.Family.Valid() {
		return fmt.Errorf("%w: %s: unknown family %q", ErrInvalidSpec, s.ClassID, s.Family)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %s: canvas %dx%d", ErrInvalidSpec, s, s.Width, s.Height)
	}
	if !(s.SafeZoneRatio > 0 && s.SafeZoneRatio <= 1) {
		return fmt.Errorf("%w: %s: safe zone ratio %v outside (0,1]", ErrInvalidSpec, s, s.SafeZoneRatio)
	}
	switch s.Fill.Kind {
	case FillSolid, FillGradient, FillTransparent:
	default:
		return fmt.Errorf("%w: %s: unknown fill %q", ErrInvalidSpec, s, s.Fill.Kind)
	}
	return nil
}
