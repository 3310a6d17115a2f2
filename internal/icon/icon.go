// Package icon draws the soccer-ball app icon.
package icon

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/Mavwarf/flavoricons/internal/pngfile"
)

// Size is the reference canvas edge; all shape measurements below are
// expressed at this size and scaled for other sizes.
const Size = 1024

const (
	padding      = 50
	outlineWidth = 15
	pentagonR    = 120
	hexagonR     = 80
)

var (
	fill    = color.White
	pattern = color.Black
)

// Draw renders the icon on a transparent size×size canvas: a white disc
// with a black rim, a black center pentagon and six black hexagons.
func Draw(size int) *image.NRGBA {
	s := float64(size) / Size
	dc := gg.NewContext(size, size)

	c := float64(size) / 2
	center := Point{c, c}

	// The rim sits inside the disc bounds, so the stroke is centered
	// half a line width in from the edge.
	r := c - padding*s
	dc.DrawCircle(c, c, r)
	dc.SetColor(fill)
	dc.Fill()
	dc.DrawCircle(c, c, r-outlineWidth*s/2)
	dc.SetLineWidth(outlineWidth * s)
	dc.SetColor(pattern)
	dc.Stroke()

	fillPolygon(dc, Pentagon(center, pentagonR*s))
	for _, hc := range HexagonCenters(center, s) {
		fillPolygon(dc, Hexagon(hc, hexagonR*s))
	}

	return pngfile.ToNRGBA(dc.Image())
}

func fillPolygon(dc *gg.Context, pts []Point) {
	dc.NewSubPath()
	for i, p := range pts {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
		} else {
			dc.LineTo(p.X, p.Y)
		}
	}
	dc.ClosePath()
	dc.SetColor(pattern)
	dc.Fill()
}
