package catalog

import (
	"fmt"
	"image/color"
)

// Density is a named resolution tier of a family.
type Density struct {
	ClassID string
	Width   int
	Height  int
}

func square(class string, size int) Density {
	return Density{ClassID: class, Width: size, Height: size}
}

// Launcher icons are 48dp, adaptive layers 108dp, at 1x/1.5x/2x/3x/4x.
var tables = map[Family][]Density{
	LegacyIcon: {
		square("mdpi", 48),
		square("hdpi", 72),
		square("xhdpi", 96),
		square("xxhdpi", 144),
		square("xxxhdpi", 192),
	},
	AdaptiveForeground: {
		square("mdpi", 108),
		square("hdpi", 162),
		square("xhdpi", 216),
		square("xxhdpi", 324),
		square("xxxhdpi", 432),
	},
	AdaptiveBackground: {
		square("mdpi", 108),
		square("hdpi", 162),
		square("xhdpi", 216),
		square("xxhdpi", 324),
		square("xxxhdpi", 432),
	},
	StoreIcon: {
		square("playstore", 512),
	},
	FeatureGraphic: {
		{ClassID: "feature", Width: 1024, Height: 500},
	},
	Screenshot: {
		{ClassID: "phone", Width: 1080, Height: 1920},
		{ClassID: "phone_small", Width: 720, Height: 1280},
	},
}

// Densities returns a copy of the size table of a family.
func Densities(f Family) []Density {
	return append([]Density(nil), tables[f]...)
}

const (
	// LegacySafeZone leaves padding around artwork on full-bleed icons.
	LegacySafeZone = 0.85
	// AdaptiveSafeZone is the 66dp guaranteed-visible circle of a 108dp
	// adaptive layer.
	AdaptiveSafeZone = 66.0 / 108.0
)

var (
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Policy carries the per-family configuration applied to the size tables.
type Policy struct {
	SafeZone map[Family]float64
	Fills    map[Family]Fill
}

// DefaultPolicy returns the ratios and backgrounds used when no
// configuration file overrides them.
func DefaultPolicy() Policy {
	return Policy{
		SafeZone: map[Family]float64{
			LegacyIcon:         LegacySafeZone,
			AdaptiveForeground: AdaptiveSafeZone,
			AdaptiveBackground: 1,
			StoreIcon:          LegacySafeZone,
			FeatureGraphic:     0.4,
			Screenshot:         0.5,
		},
		Fills: map[Family]Fill{
			LegacyIcon:         {Kind: FillSolid, From: white},
			AdaptiveForeground: {Kind: FillTransparent},
			AdaptiveBackground: {Kind: FillSolid, From: white},
			StoreIcon:          {Kind: FillSolid, From: white},
			FeatureGraphic: {
				Kind: FillGradient,
				From: color.NRGBA{R: 99, G: 102, B: 241, A: 0xff},
				To:   color.NRGBA{R: 147, G: 51, B: 217, A: 0xff},
			},
			Screenshot: {
				Kind: FillGradient,
				From: color.NRGBA{R: 30, G: 30, B: 30, A: 0xff},
				To:   color.NRGBA{R: 60, G: 60, B: 60, A: 0xff},
			},
		},
	}
}

// Build returns the specs of the requested families in catalog order.
// Duplicate families are ignored. Every spec is validated.
func Build(families []Family, p Policy) ([]ResolutionSpec, error) {
	want := make(map[Family]bool, len(families))
	for _, f := range families {
		if !f.Valid() {
			return nil, fmt.Errorf("%w: unknown family %q", ErrInvalidSpec, f)
		}
		want[f] = true
	}

	var specs []ResolutionSpec
	for _, f := range Families {
		if !want[f] {
			continue
		}
		ratio, ok := p.SafeZone[f]
		if !ok {
			return nil, fmt.Errorf("%w: no safe zone ratio for %s", ErrInvalidSpec, f)
		}
		fill, ok := p.Fills[f]
		if !ok {
			return nil, fmt.Errorf("%w: no background for %s", ErrInvalidSpec, f)
		}
		for _, d := range tables[f] {
			spec := ResolutionSpec{
				ClassID:       d.ClassID,
				Family:        f,
				Width:         d.Width,
				Height:        d.Height,
				SafeZoneRatio: ratio,
				Fill:          fill,
			}
			if err := spec.Validate(); err != nil {
				return nil, err
			}
			specs = append(specs, spec)
		}
	}
	return specs, nil
}
