package config

import (
	"log/slog"

	"golang.org/x/image/font"

	"iconforge/internal/artwork"
	"iconforge/internal/catalog"
	"iconforge/internal/compose"
	"iconforge/internal/render"
)

// Resampler returns the configured resampling filter.
func (c *Config) Resampler() (compose.Resampler, error) {
	return compose.ResamplerByName(c.Render.Filter)
}

// Decor builds the per-family decoration: the network pattern and the
// title and subtitle captions on the feature graphic and screenshots.
// Fonts are loaded once; a missing font falls back with a warning.
func (c *Config) Decor(logger *slog.Logger) map[catalog.Family]render.Decor {
	a := c.Artwork
	decor := map[catalog.Family]render.Decor{}
	if a.Title == "" && a.Subtitle == "" && !a.Network {
		return decor
	}

	var faces map[float64]font.Face
	face := func(points float64) font.Face {
		if faces == nil {
			faces = map[float64]font.Face{}
		}
		if f, ok := faces[points]; ok {
			return f
		}
		f := artwork.LoadFace(a.Font, points, logger)
		faces[points] = f
		return f
	}
	captions := func(titleY, titlePt, subY, subPt float64) []artwork.Caption {
		var out []artwork.Caption
		if a.Title != "" {
			out = append(out, artwork.Caption{Text: a.Title, Face: face(titlePt), Y: titleY, Shadow: true})
		}
		if a.Subtitle != "" {
			out = append(out, artwork.Caption{Text: a.Subtitle, Face: face(subPt), Y: subY})
		}
		return out
	}

	decor[catalog.FeatureGraphic] = render.Decor{
		Network:     a.Network,
		NetworkSeed: a.NetworkSeed,
		Captions:    captions(0.8, 48, 0.92, 24),
	}
	decor[catalog.Screenshot] = render.Decor{
		Network:     a.Network,
		NetworkSeed: a.NetworkSeed,
		Captions:    captions(0.15, 72, 0.21, 36),
	}
	return decor
}
