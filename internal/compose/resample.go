package compose

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Resampler scales an image to exactly w x h pixels.
type Resampler interface {
	Name() string
	Resample(src image.Image, w, h int) *image.NRGBA
}

// kernelResampler scales with an x/image/draw kernel. Kernels widen their
// support when shrinking, so downscaling is anti-aliased.
type kernelResampler struct {
	name   string
	kernel *draw.Kernel
}

func (k kernelResampler) Name() string { return k.name }

func (k kernelResampler) Resample(src image.Image, w, h int) *image.NRGBA {
	// Filter in premultiplied space so transparent pixels don't bleed color.
	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	k.kernel.Scale(tmp, tmp.Bounds(), src, src.Bounds(), draw.Src, nil)
	return ToNRGBA(tmp)
}

// imagingResampler scales with a disintegration/imaging filter.
type imagingResampler struct {
	name   string
	filter imaging.ResampleFilter
}

func (r imagingResampler) Name() string { return r.name }

func (r imagingResampler) Resample(src image.Image, w, h int) *image.NRGBA {
	return imaging.Resize(src, w, h, r.filter)
}

var (
	CatmullRom Resampler = kernelResampler{name: "catmullrom", kernel: draw.CatmullRom}
	Lanczos    Resampler = imagingResampler{name: "lanczos", filter: imaging.Lanczos}
	Box        Resampler = imagingResampler{name: "box", filter: imaging.Box}
)

// DefaultResampler is used when no filter is configured.
var DefaultResampler = CatmullRom

// ResamplerByName looks up a resampler by its configuration name.
// Nearest-neighbor is deliberately not available.
func ResamplerByName(name string) (Resampler, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "catmullrom", "catmull-rom", "bicubic":
		return CatmullRom, nil
	case "lanczos", "lanczos3":
		return Lanczos, nil
	case "box", "area":
		return Box, nil
	}
	return nil, fmt.Errorf("unknown resample filter %q (want catmullrom, lanczos or box)", name)
}
