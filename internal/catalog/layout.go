package catalog

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

const (
	resDir      = "android/app/src/main/res"
	fastlaneDir = "fastlane/metadata/android/en-US/images"
)

// Layout maps (family, class, shape) to a destination path under Root.
//
// Templates are slash-separated and may use {class}, {shape}, {family} and
// {suffix}; {suffix} is "" for square assets and "_round", "_foreground" or
// "_background" otherwise.
type Layout struct {
	Root      string
	Templates map[Family]string
	// AdaptiveXMLDir is where the adaptive icon descriptors are written,
	// relative to Root.
	AdaptiveXMLDir string
}

// DefaultLayout returns the Android resource and fastlane metadata layout
// rooted at root.
func DefaultLayout(root string) Layout {
	launcher := resDir + "/mipmap-{class}/ic_launcher{suffix}.png"
	return Layout{
		Root: root,
		Templates: map[Family]string{
			LegacyIcon:         launcher,
			AdaptiveForeground: launcher,
			AdaptiveBackground: launcher,
			StoreIcon:          fastlaneDir + "/icon.png",
			FeatureGraphic:     fastlaneDir + "/featureGraphic.png",
			Screenshot:         fastlaneDir + "/phoneScreenshots/{class}.png",
		},
		AdaptiveXMLDir: resDir + "/mipmap-anydpi-v26",
	}
}

// Path expands the family template for one asset.
func (l Layout) Path(spec ResolutionSpec, shape Shape) (string, error) {
	tmpl, ok := l.Templates[spec.Family]
	if !ok || tmpl == "" {
		return "", fmt.Errorf("%w: no path template for %s", ErrInvalidSpec, spec.Family)
	}
	rel := strings.NewReplacer(
		"{class}", spec.ClassID,
		"{shape}", string(shape),
		"{family}", string(spec.Family),
		"{suffix}", shape.Suffix(),
	).Replace(tmpl)
	if strings.ContainsAny(rel, "{}") {
		return "", fmt.Errorf("%w: template %q has unknown placeholders", ErrInvalidSpec, tmpl)
	}
	if filepath.IsAbs(rel) || strings.HasPrefix(filepath.Clean(filepath.FromSlash(rel)), "..") {
		return "", fmt.Errorf("%w: template %q escapes the output root", ErrInvalidSpec, tmpl)
	}
	return filepath.Join(l.Root, filepath.FromSlash(rel)), nil
}

// Validate expands every (spec, shape) destination and fails on the first
// invalid spec or on any two assets sharing a path.
func (l Layout) Validate(specs []ResolutionSpec) error {
	owners := make(map[string]string)
	var collisions []string
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return err
		}
		for _, shape := range spec.Family.Shapes() {
			path, err := l.Path(spec, shape)
			if err != nil {
				return err
			}
			owner := fmt.Sprintf("%s/%s/%s", spec.Family, spec.ClassID, shape)
			if prev, dup := owners[path]; dup {
				collisions = append(collisions, fmt.Sprintf("%s and %s -> %s", prev, owner, path))
				continue
			}
			owners[path] = owner
		}
	}
	if len(collisions) > 0 {
		sort.Strings(collisions)
		return fmt.Errorf("%w: %s", ErrPathCollision, strings.Join(collisions, "; "))
	}
	return nil
}
