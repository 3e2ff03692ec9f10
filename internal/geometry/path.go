// Package geometry maps path progress to screen-normalized coordinates.
package geometry

import "math"

// Point is a coordinate in normalized [0,1] screen space.
type Point struct {
	X float64
	Y float64
}

// Curve is a cubic Bezier path defined by four control points.
type Curve struct {
	Start    Point
	Control1 Point
	Control2 Point
	End      Point
}

// DefaultPath is the route mobs and the boss follow from spawn to base.
var DefaultPath = Curve{
	Start:    Point{X: 0.1, Y: 0.05},
	Control1: Point{X: 0.9, Y: 0.3},
	Control2: Point{X: 0.1, Y: 0.55},
	End:      Point{X: 0.5, Y: 0.65},
}

// PointAt evaluates the curve polynomial. Any t is accepted; values outside
// [0,1] extrapolate.
func (c Curve) PointAt(t float64) Point {
	return Point{
		X: cubic(c.Start.X, c.Control1.X, c.Control2.X, c.End.X, t),
		Y: cubic(c.Start.Y, c.Control1.Y, c.Control2.Y, c.End.Y, t),
	}
}

// PointAt evaluates DefaultPath.
func PointAt(t float64) Point {
	return DefaultPath.PointAt(t)
}

// PathPoint evaluates DefaultPath with t clamped to [0,1]. Mobs still
// behind the spawn point are drawn at the start of the path.
func PathPoint(t float64) Point {
	return DefaultPath.PointAt(math.Min(math.Max(t, 0), 1))
}

func cubic(p0, p1, p2, p3, t float64) float64 {
	c := 3 * (p1 - p0)
	b := 3*(p2-p1) - c
	a := p3 - p0 - c - b
	return ((a*t+b)*t+c)*t + p0
}
