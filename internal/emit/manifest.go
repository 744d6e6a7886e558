package emit

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"iconforge/internal/catalog"
)

// DefaultManifest is the manifest file name under the output root.
const DefaultManifest = "iconforge-manifest.json"

// ManifestEntry describes one written asset.
type ManifestEntry struct {
	Path     string `json:"path"`
	Family   string `json:"family"`
	Class    string `json:"class"`
	Shape    string `json:"shape"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Renderer string `json:"renderer"`
	Blake3   string `json:"blake3"`
}

// Manifest lists the assets of one run, sorted by path. It carries no
// timestamps so identical runs produce identical manifests.
type Manifest struct {
	Assets []ManifestEntry `json:"assets"`
}

// NewManifest builds the manifest for assets with paths relative to root.
func NewManifest(root string, assets []Asset) Manifest {
	entries := make([]ManifestEntry, 0, len(assets))
	for _, a := range assets {
		entries = append(entries, ManifestEntry{
			Path:     relSlash(root, a.Path),
			Family:   string(a.Family),
			Class:    a.ClassID,
			Shape:    string(a.Shape),
			Width:    a.Pixels.Bounds().Dx(),
			Height:   a.Pixels.Bounds().Dy(),
			Renderer: a.Renderer,
			Blake3:   a.Digest,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return Manifest{Assets: entries}
}

func (e *Emitter) writeManifest(assets []Asset) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewManifest(e.Layout.Root, assets)); err != nil {
		return "", fmt.Errorf("encode manifest: %w", err)
	}
	path := filepath.Join(e.Layout.Root, e.Manifest)
	if err := e.Writer.WriteFile(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}

func relSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

type adaptiveIcon struct {
	XMLName    xml.Name      `xml:"adaptive-icon"`
	NS         string        `xml:"xmlns:android,attr"`
	Background adaptiveLayer `xml:"background"`
	Foreground adaptiveLayer `xml:"foreground"`
}

type adaptiveLayer struct {
	Drawable string `xml:"android:drawable,attr"`
}

// AdaptiveIconXML renders the launcher descriptor pairing the two mipmap
// layers named fg and bg.
func AdaptiveIconXML(fg, bg string) ([]byte, error) {
	doc := adaptiveIcon{
		NS:         "http://schemas.android.com/apk/res/android",
		Background: adaptiveLayer{Drawable: "@mipmap/" + bg},
		Foreground: adaptiveLayer{Drawable: "@mipmap/" + fg},
	}
	out, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, err
	}
	return append([]byte(`<?xml version="1.0" encoding="utf-8"?>`+"\n"), append(out, '\n')...), nil
}

// writeAdaptiveXML writes ic_launcher.xml and ic_launcher_round.xml when
// both adaptive layers are part of the run.
func (e *Emitter) writeAdaptiveXML() ([]string, error) {
	fg, okFg := e.layerName(catalog.AdaptiveForeground, catalog.ShapeForeground)
	bg, okBg := e.layerName(catalog.AdaptiveBackground, catalog.ShapeBackground)
	if !okFg || !okBg || e.Layout.AdaptiveXMLDir == "" {
		return nil, nil
	}
	doc, err := AdaptiveIconXML(fg, bg)
	if err != nil {
		return nil, fmt.Errorf("adaptive icon xml: %w", err)
	}
	dir := filepath.Join(e.Layout.Root, filepath.FromSlash(e.Layout.AdaptiveXMLDir))
	var written []string
	for _, name := range []string{"ic_launcher.xml", "ic_launcher_round.xml"} {
		path := filepath.Join(dir, name)
		if err := e.Writer.WriteFile(path, doc); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// layerName is the resource name of the first spec of family, taken from
// its file name.
func (e *Emitter) layerName(f catalog.Family, shape catalog.Shape) (string, bool) {
	for _, spec := range e.Specs {
		if spec.Family != f {
			continue
		}
		path, err := e.Layout.Path(spec, shape)
		if err != nil {
			return "", false
		}
		base := filepath.Base(path)
		return strings.TrimSuffix(base, filepath.Ext(base)), true
	}
	return "", false
}
