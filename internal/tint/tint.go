// Package tint marks an icon as a non-production build by washing out its
// colors and laying a translucent color over it.
package tint

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/Mavwarf/flavoricons/internal/pngfile"
)

const (
	// SaturationFactor scales color saturation before the overlay is applied
	// so the tint reads clearly.
	SaturationFactor = 0.7

	// OverlayAlpha is the opacity of the tint layer (0-255).
	OverlayAlpha = 100
)

// DefaultColor is the stage orange.
var DefaultColor = color.RGBA{255, 140, 0, 255}

// Apply returns a desaturated copy of src with c composited over it at
// OverlayAlpha. The result has the same dimensions as src.
func Apply(src image.Image, c color.RGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
	xdraw.Draw(img, img.Rect, src, src.Bounds().Min, xdraw.Src)

	Desaturate(img, SaturationFactor)

	overlay := image.NewUniform(color.NRGBA{c.R, c.G, c.B, OverlayAlpha})
	xdraw.Draw(img, img.Rect, overlay, image.Point{}, xdraw.Over)
	return img
}

// Desaturate moves every pixel's color channels toward its luma by
// 1-factor in place. factor 1 leaves the image untouched, 0 makes it grey.
// Alpha is not modified.
func Desaturate(img *image.NRGBA, factor float64) {
	b := img.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			r, g, bl := row[i], row[i+1], row[i+2]
			l := luma(r, g, bl)
			row[i] = mix(l, r, factor)
			row[i+1] = mix(l, g, factor)
			row[i+2] = mix(l, bl, factor)
		}
	}
}

// luma is the ITU-R 601-2 grey level in 16.16 fixed point, rounded.
func luma(r, g, b uint8) float64 {
	return float64((uint32(r)*19595 + uint32(g)*38470 + uint32(b)*7471 + 0x8000) >> 16)
}

// mix interpolates from grey toward c and truncates, clamped to a byte.
func mix(grey float64, c uint8, factor float64) uint8 {
	v := int(grey + factor*(float64(c)-grey))
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// File tints the PNG at in and writes the result to out.
func File(in, out string, c color.RGBA) error {
	src, err := pngfile.Load(in)
	if err != nil {
		return err
	}
	return pngfile.Save(out, Apply(src, c))
}

// ParseHex parses "#RRGGBB" or "RRGGBB" into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("tint: invalid color %q (want #RRGGBB)", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("tint: invalid color %q (want #RRGGBB)", s)
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
}

// Hex formats c as "#RRGGBB".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
