package icon

import "math"

// Point is a position on the canvas in pixels.
type Point struct {
	X, Y float64
}

// RegularPolygon returns sides vertices evenly spaced around center,
// the first one at startDeg (0 = +X axis, angles grow clockwise in image
// coordinates).
func RegularPolygon(center Point, radius float64, sides int, startDeg float64) []Point {
	pts := make([]Point, sides)
	step := 360.0 / float64(sides)
	for i := range pts {
		a := (startDeg + float64(i)*step) * math.Pi / 180
		pts[i] = Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		}
	}
	return pts
}

// Pentagon has a vertex pointing straight up.
func Pentagon(center Point, radius float64) []Point {
	return RegularPolygon(center, radius, 5, -90)
}

// Hexagon is pointy-topped.
func Hexagon(center Point, radius float64) []Point {
	return RegularPolygon(center, radius, 6, -30)
}

// hexOffsets are the hexagon centers relative to the ball center at the
// reference size: top, top right, bottom right, bottom, bottom left, top left.
var hexOffsets = [6]Point{
	{0, -250},
	{220, -120},
	{220, 120},
	{0, 250},
	{-220, 120},
	{-220, -120},
}

// HexagonCenters returns the six hexagon centers around center, with the
// reference offsets multiplied by scale.
func HexagonCenters(center Point, scale float64) [6]Point {
	var out [6]Point
	for i, o := range hexOffsets {
		out[i] = Point{center.X + o.X*scale, center.Y + o.Y*scale}
	}
	return out
}
