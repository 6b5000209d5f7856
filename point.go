package sdfui

import "math"

// Point represents a 2D point or vector.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Splat creates a Point with both components set to s.
func Splat(s float32) Point {
	return Point{X: s, Y: s}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Div returns the point divided by a scalar.
func (p Point) Div(s float32) Point {
	return Point{X: p.X / s, Y: p.Y / s}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float32 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (scalar).
func (p Point) Cross(q Point) float32 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of the vector.
func (p Point) Length() float32 {
	return float32(math.Hypot(float64(p.X), float64(p.Y)))
}

// LengthSquared returns the squared length of the vector.
func (p Point) LengthSquared() float32 {
	return p.X*p.X + p.Y*p.Y
}

// Min returns the componentwise minimum of two points.
func (p Point) Min(q Point) Point {
	return Point{X: min(p.X, q.X), Y: min(p.Y, q.Y)}
}

// Max returns the componentwise maximum of two points.
func (p Point) Max(q Point) Point {
	return Point{X: max(p.X, q.X), Y: max(p.Y, q.Y)}
}

// Lerp linearly interpolates between p and q by t.
func (p Point) Lerp(q Point, t float32) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// HasInf reports whether either component is infinite. Widgets placed at
// the window root carry an infinite extent until clipped to the window.
func (p Point) HasInf() bool {
	return math.IsInf(float64(p.X), 0) || math.IsInf(float64(p.Y), 0)
}
