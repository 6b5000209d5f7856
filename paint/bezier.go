package paint

import (
	"math"

	sdfui "github.com/gogpu/sdfui"
	"github.com/gogpu/sdfui/shape"
)

// quadTolerance bounds the distance between a cubic bezier and its
// quadratic approximation, in window units.
const quadTolerance = 0.01

// cubicToQuadratics splits a cubic bezier into enough quadratic segments
// that each stays within quadTolerance of the original curve.
//
// The error of approximating a cubic by the midpoint quadratic shrinks
// with the cube of the number of segments, so the segment count is the
// cube root of the error ratio.
func cubicToQuadratics(p0, p1, p2, p3 sdfui.Point) []shape.QuadBezierPlane {
	err := p3.Sub(p0).Add(p1.Sub(p2).Mul(3)).Length() * float32(math.Sqrt(3)) / 36
	n := 1
	if err > quadTolerance {
		n = int(math.Ceil(math.Cbrt(float64(err / quadTolerance))))
	}

	quads := make([]shape.QuadBezierPlane, 0, n)
	step := 1 / float32(n)
	for i := 0; i < n; i++ {
		t0 := float32(i) * step
		t1 := t0 + step
		if i == n-1 {
			t1 = 1
		}
		a, b, c, d := splitCubic(p0, p1, p2, p3, t0, t1)
		quads = append(quads, toQuadratic(a, b, c, d))
	}
	return quads
}

// splitCubic returns the control points of the cubic restricted to [t0, t1].
func splitCubic(p0, p1, p2, p3 sdfui.Point, t0, t1 float32) (a, b, c, d sdfui.Point) {
	dt := t1 - t0
	a = cubicAt(p0, p1, p2, p3, t0)
	d = cubicAt(p0, p1, p2, p3, t1)
	b = a.Add(cubicDeriv(p0, p1, p2, p3, t0).Mul(dt / 3))
	c = d.Sub(cubicDeriv(p0, p1, p2, p3, t1).Mul(dt / 3))
	return a, b, c, d
}

// toQuadratic approximates a cubic with the midpoint quadratic.
func toQuadratic(p0, p1, p2, p3 sdfui.Point) shape.QuadBezierPlane {
	ctrl := p1.Add(p2).Mul(3).Sub(p0).Sub(p3).Div(4)
	return shape.QuadBezierPlane{A: p0, B: ctrl, C: p3}
}

func cubicAt(p0, p1, p2, p3 sdfui.Point, t float32) sdfui.Point {
	u := 1 - t
	return p0.Mul(u * u * u).
		Add(p1.Mul(3 * u * u * t)).
		Add(p2.Mul(3 * u * t * t)).
		Add(p3.Mul(t * t * t))
}

func cubicDeriv(p0, p1, p2, p3 sdfui.Point, t float32) sdfui.Point {
	u := 1 - t
	return p1.Sub(p0).Mul(3 * u * u).
		Add(p2.Sub(p1).Mul(6 * u * t)).
		Add(p3.Sub(p2).Mul(3 * t * t))
}
