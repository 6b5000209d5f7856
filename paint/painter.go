// Package paint collects shapes for a frame.
//
// A Painter holds the current fill, blend, transform, and clip state and
// appends a ShapeToDraw per draw call. Widgets draw in local coordinates;
// the frame assembly sets the painter's relative origin and clip before
// handing it to each widget.
package paint

import (
	sdfui "github.com/gogpu/sdfui"
	"github.com/gogpu/sdfui/shape"
)

// ShapeToDraw is one finished shape layer: the shape program together
// with the fill, blend, and clip it is drawn with.
type ShapeToDraw struct {
	Shape shape.Shape
	Fill  shape.FillMode
	Blend shape.BlendMode
	Clip  sdfui.Rect
}

// VisibleIn reports whether drawing the shape can affect any pixel of
// the given area.
func (s ShapeToDraw) VisibleIn(area sdfui.Rect) bool {
	if len(s.Shape) == 0 {
		return false
	}
	if s.Clip.Intersect(area).IsEmpty() {
		return false
	}
	if s.Fill == nil || !s.Fill.Visible() {
		return false
	}
	return !s.Shape.Bounds().Intersect(area).IsEmpty()
}

// Painter accumulates shapes to draw.
//
// Draw calls other than SetTransform take positions relative to the
// painter's current origin; transforms are expressed in absolute window
// coordinates.
type Painter struct {
	shapes     []ShapeToDraw
	transform  sdfui.Matrix
	fill       shape.FillMode
	blend      shape.BlendMode
	clip       sdfui.Rect
	relativeTo sdfui.Point
	windowSize sdfui.Point
	metrics    GlyphMetrics
}

// NewPainter creates a painter for a window of the given size. metrics
// may be nil if no text is drawn.
func NewPainter(metrics GlyphMetrics, windowSize sdfui.Point) *Painter {
	return &Painter{
		transform:  sdfui.Identity(),
		fill:       shape.Solid{Color: sdfui.Black},
		blend:      shape.DefaultBlend,
		clip:       sdfui.WindowRect(),
		windowSize: windowSize,
		metrics:    metrics,
	}
}

// Shapes returns the accumulated shapes in draw order.
func (p *Painter) Shapes() []ShapeToDraw { return p.shapes }

// Reset drops all accumulated shapes and restores the default state.
func (p *Painter) Reset() {
	p.shapes = p.shapes[:0]
	p.transform = sdfui.Identity()
	p.fill = shape.Solid{Color: sdfui.Black}
	p.blend = shape.DefaultBlend
	p.clip = sdfui.WindowRect()
	p.relativeTo = sdfui.Point{}
}

// WindowSize returns the window size the painter was created with.
func (p *Painter) WindowSize() sdfui.Point { return p.windowSize }

// RelativeTo returns the current draw origin.
func (p *Painter) RelativeTo() sdfui.Point { return p.relativeTo }

// SetRelativeTo sets the origin added to all subsequent draw positions.
// The frame assembly points this at each widget's window position.
func (p *Painter) SetRelativeTo(pos sdfui.Point) { p.relativeTo = pos }

// Clip returns the current clip rectangle.
func (p *Painter) Clip() sdfui.Rect { return p.clip }

// SetClip sets the clip rectangle, in window coordinates.
func (p *Painter) SetClip(r sdfui.Rect) { p.clip = r }

// Fill returns the current fill mode.
func (p *Painter) Fill() shape.FillMode { return p.fill }

// SetFill sets the fill mode applied to subsequent draws.
func (p *Painter) SetFill(f shape.FillMode) { p.fill = f }

// SetColor sets a solid fill color.
func (p *Painter) SetColor(c sdfui.RGBA) { p.fill = shape.Solid{Color: c} }

// ResetFill restores the default fill, opaque black.
func (p *Painter) ResetFill() { p.fill = shape.Solid{Color: sdfui.Black} }

// Blend returns the current blend mode.
func (p *Painter) Blend() shape.BlendMode { return p.blend }

// SetBlend sets the blend mode applied to subsequent draws.
func (p *Painter) SetBlend(b shape.BlendMode) { p.blend = b }

// ResetBlend restores the default blend mode.
func (p *Painter) ResetBlend() { p.blend = shape.DefaultBlend }

// Transform returns the current transform.
func (p *Painter) Transform() sdfui.Matrix { return p.transform }

// SetTransform sets the transform applied to subsequent draws, in
// absolute window coordinates.
func (p *Painter) SetTransform(m sdfui.Matrix) { p.transform = m }

// ResetTransform restores the identity transform.
func (p *Painter) ResetTransform() { p.transform = sdfui.Identity() }

// ThenRotate appends a rotation (radians) to the current transform.
func (p *Painter) ThenRotate(angle float32) {
	p.transform = p.transform.Then(sdfui.Rotate(angle))
}

// ThenRotateDegrees appends a rotation (degrees) to the current transform.
func (p *Painter) ThenRotateDegrees(angle float32) {
	p.transform = p.transform.Then(sdfui.RotateDegrees(angle))
}

// ThenScale appends a scale to the current transform.
func (p *Painter) ThenScale(factor sdfui.Point) {
	p.transform = p.transform.Then(sdfui.Scale(factor.X, factor.Y))
}

// ThenTranslate appends a translation to the current transform.
func (p *Painter) ThenTranslate(offset sdfui.Point) {
	p.transform = p.transform.Then(sdfui.Translate(offset.X, offset.Y))
}

// PreRotate prepends a rotation (radians) to the current transform.
func (p *Painter) PreRotate(angle float32) {
	p.transform = p.transform.Pre(sdfui.Rotate(angle))
}

// PreScale prepends a scale to the current transform.
func (p *Painter) PreScale(factor sdfui.Point) {
	p.transform = p.transform.Pre(sdfui.Scale(factor.X, factor.Y))
}

// PreTranslate prepends a translation to the current transform.
func (p *Painter) PreTranslate(offset sdfui.Point) {
	p.transform = p.transform.Pre(sdfui.Translate(offset.X, offset.Y))
}

// DrawShapeDetailed appends a fully specified shape layer. The shape is
// moved by the painter's origin and transformed by the current transform;
// the layer's clip is intersected with the painter's clip.
func (p *Painter) DrawShapeDetailed(s ShapeToDraw) {
	if s.Fill != nil {
		s.Fill = s.Fill.Offset(p.relativeTo)
	}
	s.Shape = s.Shape.MoveBy(p.relativeTo).Transform(p.transform)
	s.Clip = s.Clip.Intersect(p.clip)
	p.shapes = append(p.shapes, s)
}

// DrawShape appends a shape drawn with the current fill, blend, and clip.
func (p *Painter) DrawShape(s shape.Shape) {
	p.DrawShapeDetailed(ShapeToDraw{
		Shape: s,
		Fill:  p.fill,
		Blend: p.blend,
		Clip:  p.clip,
	})
}

// DrawBasic appends a single basic shape.
func (p *Painter) DrawBasic(b shape.BasicShape) {
	p.DrawShape(shape.New(b))
}

// DrawRect draws a filled rectangle with per-corner rounding.
func (p *Painter) DrawRect(r sdfui.Rect, rounding [4]float32) {
	p.DrawBasic(shape.NewBasic(shape.Rectangle{LT: r.LT(), RB: r.RB(), Rounding: rounding}))
}

// DrawStrokedRect draws a rectangle outline with per-corner rounding.
func (p *Painter) DrawStrokedRect(r sdfui.Rect, rounding [4]float32, width float32) {
	p.DrawBasic(shape.NewBasic(shape.Rectangle{LT: r.LT(), RB: r.RB(), Rounding: rounding}).Stroked(width))
}

// DrawCircle draws a filled circle.
func (p *Painter) DrawCircle(center sdfui.Point, radius float32) {
	p.DrawBasic(shape.NewBasic(shape.Circle{Center: center, Radius: radius}))
}

// DrawStrokedCircle draws a circle outline.
func (p *Painter) DrawStrokedCircle(center sdfui.Point, radius, width float32) {
	p.DrawBasic(shape.NewBasic(shape.Circle{Center: center, Radius: radius}).Stroked(width))
}

// DrawTriangle draws a filled triangle.
func (p *Painter) DrawTriangle(a, b, c sdfui.Point) {
	p.DrawBasic(shape.NewBasic(shape.Triangle{A: a, B: b, C: c}))
}

// DrawStrokedTriangle draws a triangle outline.
func (p *Painter) DrawStrokedTriangle(a, b, c sdfui.Point, width float32) {
	p.DrawBasic(shape.NewBasic(shape.Triangle{A: a, B: b, C: c}).Stroked(width))
}

// DrawHalfPlane fills the positive side of the directed line a-b.
func (p *Painter) DrawHalfPlane(a, b sdfui.Point) {
	p.DrawBasic(shape.NewBasic(shape.HalfPlane{A: a, B: b}))
}

// DrawLine draws a line of the given width from a to b. A line is the
// stroked boundary of the half plane through its endpoints.
func (p *Painter) DrawLine(a, b sdfui.Point, width float32) {
	p.DrawBasic(shape.NewBasic(shape.HalfPlane{A: a, B: b}).Stroked(width))
}

// DrawQuadHalfPlane fills the convex side of a quadratic bezier curve.
func (p *Painter) DrawQuadHalfPlane(a, b, c sdfui.Point) {
	p.DrawBasic(shape.NewBasic(shape.QuadBezierPlane{A: a, B: b, C: c}))
}

// DrawQuadBezier draws a quadratic bezier curve of the given width.
func (p *Painter) DrawQuadBezier(a, b, c sdfui.Point, width float32) {
	p.DrawBasic(shape.NewBasic(shape.QuadBezierPlane{A: a, B: b, C: c}).Stroked(width))
}

// DrawSDFTexture stretches a pre-rendered SDF texture over the rectangle.
func (p *Painter) DrawSDFTexture(r sdfui.Rect, texture uint32) {
	p.DrawBasic(shape.NewBasic(shape.SDFTexture{LT: r.LT(), RB: r.RB(), Texture: texture}))
}

// DrawCubicBezier draws a cubic bezier curve of the given width.
//
// The curve is approximated by a union of stroked quadratic segments, so
// only stroked cubics are supported, not cubic plane fills.
func (p *Painter) DrawCubicBezier(from, ctrl1, ctrl2, to sdfui.Point, width float32) {
	segments := cubicToQuadratics(from, ctrl1, ctrl2, to)
	if len(segments) == 0 {
		return
	}

	s := shape.New(shape.NewBasic(segments[0]).Stroked(width))
	for _, q := range segments[1:] {
		s = s.Union(shape.New(shape.NewBasic(q).Stroked(width)))
	}
	p.DrawShape(s)
}
