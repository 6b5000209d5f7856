package paint

import (
	sdfui "github.com/gogpu/sdfui"
	"github.com/gogpu/sdfui/shape"
)

// EM is the reference font size glyph metrics are expressed in. A glyph
// drawn at font size s is scaled by s/EM.
const EM float32 = 16

// GlyphInfo carries the layout metrics of a single glyph, in EM units.
type GlyphInfo struct {
	// Bearing is the offset from the pen position to the glyph box.
	Bearing sdfui.Point
	// Advance is the pen movement after the glyph.
	Advance sdfui.Point
	// Size is the glyph box size.
	Size sdfui.Point
}

// GlyphMetrics resolves font layout metrics for text drawing. The text
// package provides the production implementation backed by a font pool.
type GlyphMetrics interface {
	// AdvanceFactor returns the horizontal advance correction of the
	// font, or false if the font is unknown.
	AdvanceFactor(font uint32) (float32, bool)

	// LineHeight returns the line height of the font in EM units, or
	// false if the font is unknown.
	LineHeight(font uint32) (float32, bool)

	// Glyph returns the metrics of a character, or false if the font is
	// unknown or the glyph cannot be loaded. Looking a glyph up also
	// queues it for atlas rasterization.
	Glyph(font uint32, ch rune) (GlyphInfo, bool)

	// TextSize measures a whole string at the given font size, or false
	// if the font is unknown. When pointer is set the trailing glyph is
	// measured by its advance, matching caret placement.
	TextSize(font uint32, size float32, text string, pointer bool) (sdfui.Point, bool)
}

// DrawText draws a string starting at pos with the current fill. A
// newline moves the pen to the start of the next line.
//
// Reports whether the whole string was drawn. Drawing fails when the
// painter has no metrics source, the font is unknown, or a glyph cannot
// be loaded; shapes drawn before the failure stay in the list.
func (p *Painter) DrawText(pos sdfui.Point, font uint32, size float32, text string) bool {
	if p.metrics == nil {
		return false
	}
	advance, ok := p.metrics.AdvanceFactor(font)
	if !ok {
		return false
	}
	lineHeight, ok := p.metrics.LineHeight(font)
	if !ok {
		return false
	}
	factor := size / EM * advance

	var x float32
	for _, ch := range text {
		if ch == '\n' {
			x = 0
			pos.Y += lineHeight * factor
			continue
		}
		glyph, ok := p.metrics.Glyph(font, ch)
		if !ok {
			return false
		}
		chPos := pos.Add(sdfui.Pt(x+glyph.Bearing.X*factor, 0))
		p.DrawBasic(shape.NewBasic(shape.Glyph{Pos: chPos, Font: font, Size: size, Char: ch}))
		x += glyph.Advance.X * factor
	}
	return true
}

// TextSize measures a string at the given font size. The second return
// is false when the font is unknown or a glyph cannot be loaded.
func (p *Painter) TextSize(font uint32, size float32, text string) (sdfui.Point, bool) {
	if p.metrics == nil {
		return sdfui.Point{}, false
	}
	return p.metrics.TextSize(font, size, text, false)
}

// TextSizePointer measures a string with the trailing glyph counted by
// its advance, the measurement caret placement wants.
func (p *Painter) TextSizePointer(font uint32, size float32, text string) (sdfui.Point, bool) {
	if p.metrics == nil {
		return sdfui.Point{}, false
	}
	return p.metrics.TextSize(font, size, text, true)
}

// LineHeight returns the line height of the font at the given size, or
// false if the font is unknown.
func (p *Painter) LineHeight(font uint32, size float32) (float32, bool) {
	if p.metrics == nil {
		return 0, false
	}
	lh, ok := p.metrics.LineHeight(font)
	if !ok {
		return 0, false
	}
	return lh * size / EM, true
}
