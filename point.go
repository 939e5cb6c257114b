package cdbw

import "math"

// Point is a 2-D coordinate.
type Point struct {
	X, Y float64
}

// Add returns the component-wise sum p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Div returns p scaled by 1/s.
func (p Point) Div(s float64) Point {
	return Point{p.X / s, p.Y / s}
}

// Lerp returns p moved toward q by fraction s: p + s*(q - p).
// s = 0 returns p, s = 1 returns q.
func (p Point) Lerp(q Point, s float64) Point {
	return Point{p.X + s*(q.X-p.X), p.Y + s*(q.Y-p.Y)}
}

// Midpoint returns the point halfway between p and q.
func (p Point) Midpoint(q Point) Point {
	return p.Add(q).Div(2)
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Sqrt(p.SquaredDistance(q))
}

// SquaredDistance returns the squared Euclidean distance between p and q.
// Prefer it for comparisons; it skips the square root.
func (p Point) SquaredDistance(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}
