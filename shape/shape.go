// Package shape defines the shape intermediate representation consumed by
// the bytecode compiler.
//
// A Shape is a flattened postfix (RPN) token stream mixing BasicShape
// leaves and Operators. Binary operators consume two values and produce
// one; Not consumes and produces one. A well-formed stream reduces to
// exactly one value; feeding a malformed stream to the compiler is a
// caller contract violation.
package shape

import (
	sdfui "github.com/gogpu/sdfui"
)

// Primitive is a basic SDF shape. The concrete types (Circle, Triangle,
// Rectangle, HalfPlane, QuadBezierPlane, SDFTexture, Glyph) each map to a
// single draw opcode in the compiled program.
type Primitive interface {
	// Bounds returns the bounding rectangle of the untransformed shape.
	Bounds() sdfui.Rect

	// Offset returns the primitive translated by delta.
	Offset(delta sdfui.Point) Primitive
}

// Circle is a circle given by center and radius.
type Circle struct {
	Center sdfui.Point
	Radius float32
}

// Bounds returns the bounding rectangle.
func (c Circle) Bounds() sdfui.Rect {
	return sdfui.RectCenterSize(c.Center, sdfui.Splat(c.Radius*2))
}

// Offset returns the circle translated by delta.
func (c Circle) Offset(delta sdfui.Point) Primitive {
	c.Center = c.Center.Add(delta)
	return c
}

// Triangle is a triangle given by its three corners.
type Triangle struct {
	A, B, C sdfui.Point
}

// Bounds returns the bounding rectangle.
func (t Triangle) Bounds() sdfui.Rect {
	return sdfui.RectLTRB(t.A.Min(t.B).Min(t.C), t.A.Max(t.B).Max(t.C))
}

// Offset returns the triangle translated by delta.
func (t Triangle) Offset(delta sdfui.Point) Primitive {
	t.A = t.A.Add(delta)
	t.B = t.B.Add(delta)
	t.C = t.C.Add(delta)
	return t
}

// Rectangle is an axis-aligned rectangle with per-corner rounding.
// Rounding order is top-left, top-right, bottom-right, bottom-left.
type Rectangle struct {
	LT, RB   sdfui.Point
	Rounding [4]float32
}

// Bounds returns the bounding rectangle.
func (r Rectangle) Bounds() sdfui.Rect {
	return sdfui.RectLTRB(r.LT, r.RB)
}

// Offset returns the rectangle translated by delta.
func (r Rectangle) Offset(delta sdfui.Point) Primitive {
	r.LT = r.LT.Add(delta)
	r.RB = r.RB.Add(delta)
	return r
}

// HalfPlane is the half plane on the positive side of the directed line
// from A to B:
//
//	(x - A.X)*(B.Y - A.Y) - (y - A.Y)*(B.X - A.X) >= 0
type HalfPlane struct {
	A, B sdfui.Point
}

// Bounds returns the window rectangle: a half plane is unbounded.
func (HalfPlane) Bounds() sdfui.Rect {
	return sdfui.WindowRect()
}

// Offset returns the half plane translated by delta.
func (h HalfPlane) Offset(delta sdfui.Point) Primitive {
	h.A = h.A.Add(delta)
	h.B = h.B.Add(delta)
	return h
}

// QuadBezierPlane is the plane split by a quadratic bezier curve through
// A, B (control), C. The concave side is outside, the convex side inside.
type QuadBezierPlane struct {
	A, B, C sdfui.Point
}

// Bounds returns the bounding rectangle of the three control points.
func (q QuadBezierPlane) Bounds() sdfui.Rect {
	return sdfui.RectLTRB(q.A.Min(q.B).Min(q.C), q.A.Max(q.B).Max(q.C))
}

// Offset returns the plane translated by delta.
func (q QuadBezierPlane) Offset(delta sdfui.Point) Primitive {
	q.A = q.A.Add(delta)
	q.B = q.B.Add(delta)
	q.C = q.C.Add(delta)
	return q
}

// SDFTexture samples a pre-rendered SDF texture region stretched over the
// rectangle LT-RB.
type SDFTexture struct {
	LT, RB  sdfui.Point
	Texture uint32
}

// Bounds returns the destination rectangle.
func (s SDFTexture) Bounds() sdfui.Rect {
	return sdfui.RectLTRB(s.LT, s.RB)
}

// Offset returns the region translated by delta.
func (s SDFTexture) Offset(delta sdfui.Point) Primitive {
	s.LT = s.LT.Add(delta)
	s.RB = s.RB.Add(delta)
	return s
}

// Glyph is a single character drawn from the glyph atlas. The atlas slot
// is resolved at compile time; a glyph that has not been rasterized yet
// makes the whole shape compile to nothing for this frame.
type Glyph struct {
	Pos  sdfui.Point
	Font uint32
	Size float32
	Char rune
}

// Bounds returns the glyph cell rectangle.
func (g Glyph) Bounds() sdfui.Rect {
	return sdfui.RectLTSize(g.Pos, sdfui.Splat(g.Size))
}

// Offset returns the glyph translated by delta.
func (g Glyph) Offset(delta sdfui.Point) Primitive {
	g.Pos = g.Pos.Add(delta)
	return g
}

// BasicShape is a primitive together with its transform and stroke.
//
// If Stroke is positive the shape renders as an outline of that width
// instead of a fill; it is not the superposition of fill and stroke.
type BasicShape struct {
	Data      Primitive
	Transform sdfui.Matrix
	Stroke    float32
}

// NewBasic wraps a primitive in a BasicShape with the identity transform
// and no stroke.
func NewBasic(data Primitive) BasicShape {
	return BasicShape{Data: data, Transform: sdfui.Identity()}
}

// Transformed returns the shape with the given transform.
func (b BasicShape) Transformed(m sdfui.Matrix) BasicShape {
	b.Transform = m
	return b
}

// Stroked returns the shape rendered as an outline of the given width.
func (b BasicShape) Stroked(width float32) BasicShape {
	b.Stroke = width
	return b
}

// ThenRotate appends a rotation (radians) after the current transform.
func (b BasicShape) ThenRotate(angle float32) BasicShape {
	b.Transform = b.Transform.Then(sdfui.Rotate(angle))
	return b
}

// ThenScale appends a scale after the current transform.
func (b BasicShape) ThenScale(factor sdfui.Point) BasicShape {
	b.Transform = b.Transform.Then(sdfui.Scale(factor.X, factor.Y))
	return b
}

// ThenTranslate appends a translation after the current transform.
func (b BasicShape) ThenTranslate(offset sdfui.Point) BasicShape {
	b.Transform = b.Transform.Then(sdfui.Translate(offset.X, offset.Y))
	return b
}

// PreRotate prepends a rotation (radians) before the current transform.
func (b BasicShape) PreRotate(angle float32) BasicShape {
	b.Transform = b.Transform.Pre(sdfui.Rotate(angle))
	return b
}

// MoveBy returns the shape with its geometry translated by delta.
// Unlike ThenTranslate this moves the underlying primitive, not the
// transform, so it composes with relative painter origins.
func (b BasicShape) MoveBy(delta sdfui.Point) BasicShape {
	b.Data = b.Data.Offset(delta)
	return b
}

// StrokeWidth returns the stroke width in the GPU command convention:
// -1 for a filled shape.
func (b BasicShape) StrokeWidth() float32 {
	if b.Stroke > 0 {
		return b.Stroke
	}
	return -1
}

// Bounds returns the bounding rectangle of the transformed shape,
// expanded by half the stroke width when stroked.
func (b BasicShape) Bounds() sdfui.Rect {
	r := b.Data.Bounds().Transformed(b.Transform)
	if b.Stroke > 0 {
		r = r.Shrink(sdfui.Splat(-b.Stroke / 2))
	}
	return r
}

// Token is one element of a postfix shape program: either a BasicShape
// leaf or an Operator.
type Token interface {
	isToken()
}

func (BasicShape) isToken() {}
func (Operator) isToken()   {}

// Shape is a postfix program of BasicShape leaves and Operators.
//
// Complex shapes are built with the combinators below; evaluation order
// is strictly left to right, there is no operator precedence.
type Shape []Token

// New creates a single-leaf shape from a BasicShape.
func New(b BasicShape) Shape {
	return Shape{b}
}

// From creates a single-leaf shape from a bare primitive.
func From(data Primitive) Shape {
	return New(NewBasic(data))
}

// Union returns the union of two shapes.
func (s Shape) Union(rhs Shape) Shape {
	return append(append(s, rhs...), Or())
}

// Intersection returns the intersection of two shapes.
func (s Shape) Intersection(rhs Shape) Shape {
	return append(append(s, rhs...), And())
}

// Difference returns the difference of two shapes.
func (s Shape) Difference(rhs Shape) Shape {
	return append(append(s, rhs...), Minus())
}

// SymmetricDifference returns the symmetric difference of two shapes.
func (s Shape) SymmetricDifference(rhs Shape) Shape {
	return append(append(s, rhs...), Xor())
}

// Complement returns the complement of the shape.
func (s Shape) Complement() Shape {
	return append(s, Not())
}

// Lerp returns the linear interpolation between two shapes at t.
func (s Shape) Lerp(rhs Shape, t float32) Shape {
	return append(append(s, rhs...), Lerp(t))
}

// SmoothStep returns the smoothstep interpolation between two shapes at t.
func (s Shape) SmoothStep(rhs Shape, t float32) Shape {
	return append(append(s, rhs...), SmoothStep(t))
}

// Sigmoid returns the sigmoid interpolation between two shapes at t.
func (s Shape) Sigmoid(rhs Shape, t float32) Shape {
	return append(append(s, rhs...), Sigmoid(t))
}

// Transform appends m to the transform of every leaf.
func (s Shape) Transform(m sdfui.Matrix) Shape {
	for i, tok := range s {
		if b, ok := tok.(BasicShape); ok {
			b.Transform = b.Transform.Then(m)
			s[i] = b
		}
	}
	return s
}

// MoveBy translates the geometry of every leaf by delta.
func (s Shape) MoveBy(delta sdfui.Point) Shape {
	for i, tok := range s {
		if b, ok := tok.(BasicShape); ok {
			s[i] = b.MoveBy(delta)
		}
	}
	return s
}

// Bounds evaluates the postfix program over bounding rectangles.
//
// The per-operator bounds deliberately match the historical behavior the
// rest of the pipeline was tuned against, including its conservative
// approximations: Minus takes the right operand's bound, Xor takes the
// union, and Not widens to the full window. Callers that depend on the
// visibility filter must not assume tighter bounds.
func (s Shape) Bounds() sdfui.Rect {
	var stack []sdfui.Rect
	for _, tok := range s {
		switch t := tok.(type) {
		case BasicShape:
			stack = append(stack, t.Bounds())
		case Operator:
			if t.Kind == OpNot {
				stack[len(stack)-1] = sdfui.WindowRect()
				continue
			}
			rhs := stack[len(stack)-1]
			lhs := stack[len(stack)-2]
			stack = stack[:len(stack)-1]
			switch t.Kind {
			case OpOr, OpXor:
				stack[len(stack)-1] = lhs.Union(rhs)
			case OpAnd:
				stack[len(stack)-1] = lhs.Intersect(rhs)
			case OpMinus:
				stack[len(stack)-1] = rhs
			case OpLerp, OpSmoothStep:
				stack[len(stack)-1] = lhs.Lerp(rhs, t.Param)
			case OpSigmoid:
				stack[len(stack)-1] = lhs.Lerp(rhs, sigmoid(t.Param))
			}
		}
	}
	if len(stack) == 0 {
		return sdfui.Rect{}
	}
	return stack[len(stack)-1]
}
