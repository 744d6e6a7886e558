// Package source loads the artwork every asset is derived from.
package source

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"iconforge/internal/compose"
)

// ErrUnreadable is returned when the source file cannot be opened or
// decoded.
var ErrUnreadable = errors.New("source image unreadable")

// DefaultBacking is the color opaque sources are flattened onto.
var DefaultBacking = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Image is loaded artwork. Pixels must not be modified once loaded; the
// same Image is read concurrently by every render job.
type Image struct {
	Pixels *image.NRGBA
	Path   string
	Format string
}

func (i *Image) Width() int  { return i.Pixels.Bounds().Dx() }
func (i *Image) Height() int { return i.Pixels.Bounds().Dy() }

// Load opens and decodes path. Any format registered with package image
// is accepted (PNG, JPEG, GIF, BMP, TIFF, WebP).
func Load(path string, backing color.Color) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", ErrUnreadable, path, err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %s: empty image", ErrUnreadable, path)
	}

	return &Image{
		Pixels: Normalize(img, backing),
		Path:   path,
		Format: format,
	}, nil
}

// FromCanvas wraps a procedurally drawn canvas so it can be used as a
// source. name is reported in place of a file path.
func FromCanvas(c image.Image, name string) *Image {
	return &Image{Pixels: Normalize(c, DefaultBacking), Path: name, Format: "canvas"}
}

// Normalize returns an NRGBA copy of img. Images whose color model has no
// alpha channel are composited onto backing first; for them this is
// pixel-for-pixel the same picture, and normalizing an already normalized
// image yields identical bytes.
func Normalize(img image.Image, backing color.Color) *image.NRGBA {
	if backing == nil {
		backing = DefaultBacking
	}
	if HasAlpha(img) {
		return compose.ToNRGBA(img)
	}
	b := img.Bounds()
	dst := compose.NewSolid(b.Dx(), b.Dy(), backing)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// HasAlpha reports whether the color model of img can carry transparency.
func HasAlpha(img image.Image) bool {
	switch m := img.(type) {
	case *image.NRGBA, *image.NRGBA64, *image.RGBA, *image.RGBA64,
		*image.Alpha, *image.Alpha16, *image.NYCbCrA:
		return true
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	case *image.Gray, *image.Gray16, *image.YCbCr, *image.CMYK:
		return false
	}
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model, color.YCbCrModel, color.CMYKModel:
		return false
	}
	return true
}
