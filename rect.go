package sdfui

import "math"

// Rect is an axis-aligned rectangle given by its top-left corner and size.
//
// A Rect with a negative width or height is empty. A zero-sized Rect is
// not empty: it still names a point on screen and survives intersection,
// which the layout clip cascade relies on.
type Rect struct {
	X, Y float32
	W, H float32
}

// RectLTRB creates a rectangle from its top-left and bottom-right corners.
func RectLTRB(lt, rb Point) Rect {
	return Rect{X: lt.X, Y: lt.Y, W: rb.X - lt.X, H: rb.Y - lt.Y}
}

// RectFromSize creates a rectangle of the given size anchored at the origin.
func RectFromSize(size Point) Rect {
	return Rect{W: size.X, H: size.Y}
}

// RectLTSize creates a rectangle from its top-left corner and size.
func RectLTSize(lt, size Point) Rect {
	return Rect{X: lt.X, Y: lt.Y, W: size.X, H: size.Y}
}

// RectCenterSize creates a rectangle centered on the given point.
func RectCenterSize(center, size Point) Rect {
	half := size.Div(2)
	return Rect{X: center.X - half.X, Y: center.Y - half.Y, W: size.X, H: size.Y}
}

// WindowRect returns the unbounded window rectangle: anchored at the
// origin, extending to +infinity. The root widget is placed here before
// the frame clips it to the actual window size.
func WindowRect() Rect {
	inf := float32(math.Inf(1))
	return Rect{W: inf, H: inf}
}

// InfiniteRect returns the rectangle covering the whole plane.
func InfiniteRect() Rect {
	inf := float32(math.Inf(1))
	return Rect{X: float32(math.Inf(-1)), Y: float32(math.Inf(-1)), W: inf, H: inf}
}

// LT returns the top-left corner.
func (r Rect) LT() Point { return Point{X: r.X, Y: r.Y} }

// RT returns the top-right corner.
func (r Rect) RT() Point { return Point{X: r.X + r.W, Y: r.Y} }

// RB returns the bottom-right corner.
func (r Rect) RB() Point { return Point{X: r.X + r.W, Y: r.Y + r.H} }

// LB returns the bottom-left corner.
func (r Rect) LB() Point { return Point{X: r.X, Y: r.Y + r.H} }

// Center returns the center point.
func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// Size returns the width and height as a Point.
func (r Rect) Size() Point { return Point{X: r.W, Y: r.H} }

// IsEmpty reports whether the rectangle has a negative width or height.
func (r Rect) IsEmpty() bool { return r.W < 0 || r.H < 0 }

// IsPositive reports whether the rectangle is not empty.
func (r Rect) IsPositive() bool { return !r.IsEmpty() }

// Area returns the area of the rectangle.
func (r Rect) Area() float32 { return r.W * r.H }

// Contains reports whether the point lies inside the rectangle,
// boundary included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// ContainsRect reports whether other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return r.Contains(other.LT()) && r.Contains(other.RB())
}

// Intersects reports whether the two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X+r.W > other.X && r.X < other.X+other.W &&
		r.Y+r.H > other.Y && r.Y < other.Y+other.H
}

// Intersect returns the intersection of two rectangles. The result is
// empty (negative size) when the rectangles do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	return Rect{
		X: x,
		Y: y,
		W: min(r.X+r.W, other.X+other.W) - x,
		H: min(r.Y+r.H, other.Y+other.H) - y,
	}
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(other Rect) Rect {
	x := min(r.X, other.X)
	y := min(r.Y, other.Y)
	return Rect{
		X: x,
		Y: y,
		W: max(r.X+r.W, other.X+other.W) - x,
		H: max(r.Y+r.H, other.Y+other.H) - y,
	}
}

// MoveBy returns the rectangle translated by the given offset.
func (r Rect) MoveBy(offset Point) Rect {
	return Rect{X: r.X + offset.X, Y: r.Y + offset.Y, W: r.W, H: r.H}
}

// MoveTo returns the rectangle with its top-left corner at pos.
func (r Rect) MoveTo(pos Point) Rect {
	return Rect{X: pos.X, Y: pos.Y, W: r.W, H: r.H}
}

// Shrink insets the rectangle by the given amount on each side,
// keeping the center fixed. A negative amount grows the rectangle.
func (r Rect) Shrink(amount Point) Rect {
	return Rect{
		X: r.X + amount.X,
		Y: r.Y + amount.Y,
		W: r.W - amount.X*2,
		H: r.H - amount.Y*2,
	}
}

// Lerp linearly interpolates between two rectangles.
func (r Rect) Lerp(other Rect, t float32) Rect {
	return Rect{
		X: r.X + (other.X-r.X)*t,
		Y: r.Y + (other.Y-r.Y)*t,
		W: r.W + (other.W-r.W)*t,
		H: r.H + (other.H-r.H)*t,
	}
}

// Transformed returns the bounding rectangle of the four transformed
// corners.
func (r Rect) Transformed(m Matrix) Rect {
	lt := m.Apply(r.LT())
	rt := m.Apply(r.RT())
	rb := m.Apply(r.RB())
	lb := m.Apply(r.LB())
	minPt := lt.Min(rt).Min(rb).Min(lb)
	maxPt := lt.Max(rt).Max(rb).Max(lb)
	return RectLTRB(minPt, maxPt)
}
