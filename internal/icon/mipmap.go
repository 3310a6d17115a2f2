package icon

import (
	"fmt"
	"image"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"github.com/Mavwarf/flavoricons/internal/density"
	"github.com/Mavwarf/flavoricons/internal/pngfile"
)

// Resize scales src to an edge×edge square with Catmull-Rom resampling.
func Resize(src image.Image, edge int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, edge, edge))
	xdraw.CatmullRom.Scale(dst, dst.Rect, src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// WriteMipmaps writes src, downscaled to each bucket's launcher edge, to
// resDir/mipmap-<bucket>/name. It returns the written paths in bucket order.
func WriteMipmaps(src image.Image, resDir, name string, buckets []density.Bucket) ([]string, error) {
	written := make([]string, 0, len(buckets))
	for _, b := range buckets {
		edge := b.LauncherEdge()
		if edge == 0 {
			return written, fmt.Errorf("icon: no launcher size for density %q", b)
		}
		p := filepath.Join(resDir, b.Dir(), name)
		if err := pngfile.Save(p, Resize(src, edge)); err != nil {
			return written, err
		}
		written = append(written, p)
	}
	return written, nil
}
