package sdfui

import "math"

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float32
	D, E, F float32
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float32) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y float32) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float32) Matrix {
	cos := float32(math.Cos(float64(angle)))
	sin := float32(math.Sin(float64(angle)))
	return Matrix{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// RotateDegrees creates a rotation matrix (angle in degrees).
func RotateDegrees(angle float32) Matrix {
	return Rotate(angle / 180 * math.Pi)
}

// Multiply returns the matrix product m * n. The combined transform
// applies n first, then m.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.B*n.D,
		B: m.A*n.B + m.B*n.E,
		C: m.A*n.C + m.B*n.F + m.C,
		D: m.D*n.A + m.E*n.D,
		E: m.D*n.B + m.E*n.E,
		F: m.D*n.C + m.E*n.F + m.F,
	}
}

// Then returns the transform that applies m first, then n.
func (m Matrix) Then(n Matrix) Matrix {
	return n.Multiply(m)
}

// Pre returns the transform that applies n first, then m.
func (m Matrix) Pre(n Matrix) Matrix {
	return m.Multiply(n)
}

// Apply transforms the point by the matrix.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// IsIdentity reports whether the matrix is exactly the identity.
// Exact comparison is intentional: the compiler deduplicates transform
// commands only on bitwise-equal matrices.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}
