// Package density names the Android launcher icon density buckets.
package density

import "fmt"

// Bucket is a launcher icon resolution tier.
type Bucket string

const (
	MDPI    Bucket = "mdpi"
	HDPI    Bucket = "hdpi"
	XHDPI   Bucket = "xhdpi"
	XXHDPI  Bucket = "xxhdpi"
	XXXHDPI Bucket = "xxxhdpi"
)

// launcherEdges holds the legacy launcher icon edge in pixels per bucket.
var launcherEdges = map[Bucket]int{
	MDPI:    48,
	HDPI:    72,
	XHDPI:   96,
	XXHDPI:  144,
	XXXHDPI: 192,
}

// All returns every bucket from lowest to highest density.
func All() []Bucket {
	return []Bucket{MDPI, HDPI, XHDPI, XXHDPI, XXXHDPI}
}

// Parse validates a bucket label.
func Parse(s string) (Bucket, error) {
	b := Bucket(s)
	if _, ok := launcherEdges[b]; !ok {
		return "", fmt.Errorf("unknown density %q (valid: mdpi, hdpi, xhdpi, xxhdpi, xxxhdpi)", s)
	}
	return b, nil
}

// ParseList parses every label, failing on the first unknown one.
func ParseList(labels []string) ([]Bucket, error) {
	out := make([]Bucket, 0, len(labels))
	for _, l := range labels {
		b, err := Parse(l)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// Dir returns the resource directory name, e.g. "mipmap-xhdpi".
func (b Bucket) Dir() string {
	return "mipmap-" + string(b)
}

// LauncherEdge returns the icon edge in pixels, or 0 for an unknown bucket.
func (b Bucket) LauncherEdge() int {
	return launcherEdges[b]
}
