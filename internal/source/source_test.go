package source

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name string, encode func(*os.File) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()
	if err := encode(f); err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
	return path
}

func TestLoad_PNGKeepsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	img.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 40})
	path := writeFile(t, "logo.png", func(f *os.File) error { return png.Encode(f, img) })

	src, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src.Format != "png" || src.Width() != 8 || src.Height() != 4 {
		t.Fatalf("got %s %dx%d", src.Format, src.Width(), src.Height())
	}
	if got := src.Pixels.NRGBAAt(1, 1); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 40}) {
		t.Errorf("pixel = %v", got)
	}
	if got := src.Pixels.NRGBAAt(0, 0); got.A != 0 {
		t.Errorf("transparent pixel became %v", got)
	}
}

func TestLoad_JPEGBecomesOpaqueNRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	path := writeFile(t, "logo.jpg", func(f *os.File) error { return jpeg.Encode(f, img, nil) })

	src, err := Load(path, color.NRGBA{R: 0xff, A: 0xff})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if a := src.Pixels.NRGBAAt(x, y).A; a != 0xff {
				t.Fatalf("pixel (%d,%d) alpha = %d, want opaque", x, y, a)
			}
		}
	}
	// The red backing never shows through an opaque source.
	if c := src.Pixels.NRGBAAt(8, 8); c.R > 0xa0 || int(c.R)-int(c.G) > 4 {
		t.Errorf("backing leaked into opaque pixel: %v", c)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png"), nil); !errors.Is(err, ErrUnreadable) {
		t.Errorf("missing file: expected ErrUnreadable, got %v", err)
	}

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(garbage, nil)
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("garbage file: expected ErrUnreadable, got %v", err)
	}
	if err != nil && !bytes.Contains([]byte(err.Error()), []byte(garbage)) {
		t.Errorf("error %q does not name the path", err)
	}
}

func TestNormalize_GrayIsIdempotent(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 5, 5))
	for i := range gray.Pix {
		gray.Pix[i] = uint8(i * 10)
	}
	once := Normalize(gray, nil)
	twice := Normalize(once, nil)
	if !bytes.Equal(once.Pix, twice.Pix) {
		t.Error("normalizing twice changed pixels")
	}
	for i := range gray.Pix {
		c := once.NRGBAAt(i%5, i/5)
		if c.R != gray.Pix[i] || c.A != 0xff {
			t.Fatalf("pixel %d = %v, want gray %d opaque", i, c, gray.Pix[i])
		}
	}
}

func TestHasAlpha(t *testing.T) {
	opaquePalette := image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.Black, color.White})
	clearPalette := image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.Transparent, color.White})
	tests := []struct {
		name string
		img  image.Image
		want bool
	}{
		{"nrgba", image.NewNRGBA(image.Rect(0, 0, 1, 1)), true},
		{"gray", image.NewGray(image.Rect(0, 0, 1, 1)), false},
		{"ycbcr", image.NewYCbCr(image.Rect(0, 0, 1, 1), image.YCbCrSubsampleRatio420), false},
		{"cmyk", image.NewCMYK(image.Rect(0, 0, 1, 1)), false},
		{"opaque palette", opaquePalette, false},
		{"transparent palette", clearPalette, true},
	}
	for _, tt := range tests {
		if got := HasAlpha(tt.img); got != tt.want {
			t.Errorf("%s: HasAlpha = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFromCanvas(t *testing.T) {
	c := image.NewNRGBA(image.Rect(10, 10, 20, 30))
	src := FromCanvas(c, "demo")
	if src.Width() != 10 || src.Height() != 20 {
		t.Errorf("size = %dx%d", src.Width(), src.Height())
	}
	if src.Pixels.Bounds().Min != (image.Point{}) {
		t.Errorf("origin = %v, want (0,0)", src.Pixels.Bounds().Min)
	}
	if src.Path != "demo" {
		t.Errorf("path = %q", src.Path)
	}
}
