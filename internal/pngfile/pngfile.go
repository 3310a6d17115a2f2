// Package pngfile loads and saves PNG images as NRGBA.
package pngfile

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/Mavwarf/flavoricons/internal/paths"
)

// Load decodes the PNG at path and normalizes it to NRGBA with its
// bounds moved to the origin.
func Load(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pngfile: open: %w", err)
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("pngfile: decode %s: %w", path, err)
	}
	return ToNRGBA(src), nil
}

// ToNRGBA returns img as an origin-based NRGBA, copying unless it already is one.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Rect, img, b.Min, xdraw.Src)
	return dst
}

// Save encodes img as PNG at path, creating parent directories. The file
// is replaced atomically.
func Save(path string, img image.Image) error {
	err := paths.AtomicWriteFunc(path, func(w io.Writer) error {
		return png.Encode(w, img)
	})
	if err != nil {
		return fmt.Errorf("pngfile: save %s: %w", path, err)
	}
	return nil
}
