package shape

import (
	sdfui "github.com/gogpu/sdfui"
)

// FillMode describes how the interior of a compiled shape is colored.
// One of Solid, Texture, LinearGradient, RadialGradient.
type FillMode interface {
	// Visible reports whether the fill contributes any pixels.
	Visible() bool

	// Offset returns the fill with its anchor geometry translated by
	// delta, keeping gradients and textures attached to a moved shape.
	Offset(delta sdfui.Point) FillMode

	// Brighter returns the fill with its colors brightened by amount.
	Brighter(amount float32) FillMode

	// MulAlpha returns the fill with its opacity scaled by a.
	MulAlpha(a float32) FillMode
}

// Solid fills with a single color.
type Solid struct {
	Color sdfui.RGBA
}

// Visible reports whether the color has any opacity.
func (s Solid) Visible() bool { return !s.Color.Invisible() }

// Offset returns the fill unchanged, a solid color has no anchor.
func (s Solid) Offset(sdfui.Point) FillMode { return s }

// Brighter returns the fill brightened by amount.
func (s Solid) Brighter(amount float32) FillMode {
	s.Color = s.Color.Add(sdfui.RGBA{R: amount, G: amount, B: amount})
	return s
}

// MulAlpha returns the fill with its alpha scaled by a.
func (s Solid) MulAlpha(a float32) FillMode {
	s.Color = s.Color.MulAlpha(a)
	return s
}

// Texture fills by sampling a color texture. The screen rectangle LT-RB
// maps onto the texture rectangle TexLT-TexRB in normalized coordinates.
type Texture struct {
	Texture      uint32
	LT, RB       sdfui.Point
	TexLT, TexRB sdfui.Point
}

// Visible reports whether the mapped screen region is non-empty.
func (t Texture) Visible() bool {
	return sdfui.RectLTRB(t.LT, t.RB).IsPositive()
}

// Offset returns the fill with its screen rectangle translated by delta.
func (t Texture) Offset(delta sdfui.Point) FillMode {
	t.LT = t.LT.Add(delta)
	t.RB = t.RB.Add(delta)
	return t
}

// Brighter returns the fill unchanged, texture colors are sampled.
func (t Texture) Brighter(float32) FillMode { return t }

// MulAlpha returns the fill unchanged, texture alpha is sampled.
func (t Texture) MulAlpha(float32) FillMode { return t }

// LinearGradient fills with a gradient from color From at Start to color
// To at End.
type LinearGradient struct {
	From, To   sdfui.RGBA
	Start, End sdfui.Point
}

// Visible reports whether either end of the gradient has any opacity.
func (l LinearGradient) Visible() bool {
	return !l.From.Invisible() || !l.To.Invisible()
}

// Offset returns the gradient with both anchor points translated by delta.
func (l LinearGradient) Offset(delta sdfui.Point) FillMode {
	l.Start = l.Start.Add(delta)
	l.End = l.End.Add(delta)
	return l
}

// Brighter returns the gradient with both colors brightened by amount.
func (l LinearGradient) Brighter(amount float32) FillMode {
	d := sdfui.RGBA{R: amount, G: amount, B: amount}
	l.From = l.From.Add(d)
	l.To = l.To.Add(d)
	return l
}

// MulAlpha returns the gradient with both alphas scaled by a.
func (l LinearGradient) MulAlpha(a float32) FillMode {
	l.From = l.From.MulAlpha(a)
	l.To = l.To.MulAlpha(a)
	return l
}

// RadialGradient fills with a gradient from color Inner at Center to
// color Outer at distance Radius.
type RadialGradient struct {
	Inner, Outer sdfui.RGBA
	Center       sdfui.Point
	Radius       float32
}

// Visible reports whether either end of the gradient has any opacity.
func (r RadialGradient) Visible() bool {
	return !r.Inner.Invisible() || !r.Outer.Invisible()
}

// Offset returns the gradient with its center translated by delta.
func (r RadialGradient) Offset(delta sdfui.Point) FillMode {
	r.Center = r.Center.Add(delta)
	return r
}

// Brighter returns the gradient with both colors brightened by amount.
func (r RadialGradient) Brighter(amount float32) FillMode {
	d := sdfui.RGBA{R: amount, G: amount, B: amount}
	r.Inner = r.Inner.Add(d)
	r.Outer = r.Outer.Add(d)
	return r
}

// MulAlpha returns the gradient with both alphas scaled by a.
func (r RadialGradient) MulAlpha(a float32) FillMode {
	r.Inner = r.Inner.MulAlpha(a)
	r.Outer = r.Outer.MulAlpha(a)
	return r
}
