// Package text provides the glyph service backing text drawing: a font
// pool resolving per-glyph layout metrics through HarfBuzz shaping, and
// a fixed-cell signed-distance-field atlas that hands glyph slots to
// the shape compiler and rasterizes pending glyphs under a per-frame
// budget.
package text

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	sdfui "github.com/gogpu/sdfui"
	"github.com/gogpu/sdfui/paint"
)

// MaxFonts is the maximum number of fonts a pool can hold at once.
const MaxFonts = 16

var (
	// ErrTooManyFonts is returned by Load when the pool is full.
	ErrTooManyFonts = errors.New("text: too many fonts loaded")

	// ErrEmptyFontData is returned by Load for empty input.
	ErrEmptyFontData = errors.New("text: empty font data")
)

// asciiPreload is warmed into every freshly loaded font so the first
// frame of Latin UI text does not stall on shaping.
const asciiPreload = " !\"#$%&'()*+,-./0123456789:;<=>?@" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`" +
	"abcdefghijklmnopqrstuvwxyz{|}~"

// poolFont is one loaded font with its metric cache and atlas state.
type poolFont struct {
	face   *font.Face
	raster *sfnt.Font

	glyphs map[rune]paint.GlyphInfo
	slots  map[rune]uint32
	// pending holds runes with an assigned slot whose cell has not been
	// rasterized yet, in request order.
	pending  []rune
	nextSlot uint32

	// Metrics in EM units.
	ascender      float32
	lineHeight    float32
	advanceFactor float32
}

// Pool owns loaded fonts and their glyph caches. It implements
// paint.GlyphMetrics for the painter and compile.Atlas for the shape
// compiler.
//
// Pool is safe for concurrent use; the compile stage queries GlyphSlot
// from worker goroutines.
type Pool struct {
	mu      sync.Mutex
	fonts   map[uint32]*poolFont
	removed []uint32
	next    uint32

	// HarfbuzzShaper keeps mutable buffers, so instances are pooled
	// instead of shared.
	shapers sync.Pool
}

// NewPool creates an empty font pool.
func NewPool() *Pool {
	return &Pool{
		fonts: make(map[uint32]*poolFont),
		shapers: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}
}

// Load parses TTF or OTF data and adds the font to the pool, returning
// its id. The data slice is not retained.
func (p *Pool) Load(data []byte) (uint32, error) {
	if len(data) == 0 {
		return 0, ErrEmptyFontData
	}

	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("text: parse font: %w", err)
	}
	raster, err := opentype.Parse(data)
	if err != nil {
		return 0, fmt.Errorf("text: parse font for rasterization: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.fonts) >= MaxFonts {
		return 0, ErrTooManyFonts
	}

	f := &poolFont{
		face:          face,
		raster:        raster,
		glyphs:        make(map[rune]paint.GlyphInfo),
		slots:         make(map[rune]uint32),
		advanceFactor: 1,
	}

	id := p.next
	p.next++
	p.fonts[id] = f

	p.lineMetrics(f)
	for _, ch := range asciiPreload {
		p.loadGlyph(f, ch)
	}

	sdfui.Logger().Debug("text: font loaded",
		"font", id, "preloaded", len(f.glyphs))
	return id, nil
}

// Remove drops a font from the pool. The id is reported through
// RemovedFonts so the renderer can release the atlas texture.
func (p *Pool) Remove(id uint32) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.fonts[id]; !ok {
		return false
	}
	delete(p.fonts, id)
	p.removed = append(p.removed, id)
	return true
}

// RemovedFonts drains and returns the ids removed since the last call.
func (p *Pool) RemovedFonts() []uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.removed
	p.removed = nil
	return out
}

// Clear drops every font and resets id allocation.
func (p *Pool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id := range p.fonts {
		p.removed = append(p.removed, id)
	}
	p.fonts = make(map[uint32]*poolFont)
	p.next = 0
}

// Len returns the number of loaded fonts.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.fonts)
}

// SetAdvanceFactor overrides the horizontal advance correction of a
// font. The default is 1.
func (p *Pool) SetAdvanceFactor(id uint32, factor float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if f, ok := p.fonts[id]; ok {
		f.advanceFactor = factor
	}
}

// AdvanceFactor implements paint.GlyphMetrics.
func (p *Pool) AdvanceFactor(id uint32) (float32, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f, ok := p.fonts[id]
	if !ok {
		return 0, false
	}
	return f.advanceFactor, true
}

// LineHeight implements paint.GlyphMetrics. The value is in EM units;
// scale by fontSize/EM for pixels.
func (p *Pool) LineHeight(id uint32) (float32, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f, ok := p.fonts[id]
	if !ok {
		return 0, false
	}
	return f.lineHeight, true
}

// Ascender returns the font ascender in EM units.
func (p *Pool) Ascender(id uint32) (float32, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f, ok := p.fonts[id]
	if !ok {
		return 0, false
	}
	return f.ascender, true
}

// Glyph implements paint.GlyphMetrics. The first lookup of a rune
// shapes it, caches the metrics and reserves an atlas slot.
func (p *Pool) Glyph(id uint32, ch rune) (paint.GlyphInfo, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f, ok := p.fonts[id]
	if !ok {
		return paint.GlyphInfo{}, false
	}
	return p.loadGlyph(f, ch)
}

// TextSize implements paint.GlyphMetrics. The result is scaled to the
// given font size. With pointer set the trailing glyph is counted by
// its corrected advance, which is what caret placement needs.
func (p *Pool) TextSize(id uint32, size float32, text string, pointer bool) (sdfui.Point, bool) {
	warnOnRTL(text)

	p.mu.Lock()
	defer p.mu.Unlock()
	f, ok := p.fonts[id]
	if !ok {
		return sdfui.Point{}, false
	}

	var out sdfui.Point
	var x float32
	runes := []rune(text)
	for i, ch := range runes {
		if ch == '\n' {
			out.X = max(out.X, x)
			x = 0
			out.Y += f.lineHeight
			continue
		}
		g, ok := p.loadGlyph(f, ch)
		if !ok {
			return sdfui.Point{}, false
		}
		if i == len(runes)-1 && !pointer {
			x += g.Advance.X
		} else {
			x += g.Advance.X * f.advanceFactor
		}
	}
	out.X = max(out.X, x)
	out.Y += f.ascender
	return out.Mul(size / paint.EM), true
}

// loadGlyph returns cached metrics or shapes the rune. Caller holds the
// pool lock.
func (p *Pool) loadGlyph(f *poolFont, ch rune) (paint.GlyphInfo, bool) {
	if g, ok := f.glyphs[ch]; ok {
		return g, true
	}

	out, ok := p.shapeRune(f, ch)
	if !ok {
		return paint.GlyphInfo{}, false
	}
	g := out.Glyphs[0]
	info := paint.GlyphInfo{
		Bearing: sdfui.Pt(fixedToFloat(g.XBearing), fixedToFloat(g.YBearing)),
		Advance: sdfui.Pt(fixedToFloat(g.XAdvance), fixedToFloat(g.YAdvance)),
		Size:    sdfui.Pt(fixedToFloat(g.Width), -fixedToFloat(g.Height)),
	}
	f.glyphs[ch] = info
	p.reserveSlot(f, ch)
	return info, true
}

// shapeRune shapes a single rune at EM size. Returns false for runes
// the font has no glyph for.
func (p *Pool) shapeRune(f *poolFont, ch rune) (shaping.Output, bool) {
	input := shaping.Input{
		Text:      []rune{ch},
		RunStart:  0,
		RunEnd:    1,
		Direction: di.DirectionLTR,
		Face:      f.face,
		Size:      fixed.I(int(paint.EM)),
		Script:    language.LookupScript(ch),
		Language:  language.NewLanguage("en"),
	}

	shaper := p.shapers.Get().(*shaping.HarfbuzzShaper)
	out := shaper.Shape(input)
	p.shapers.Put(shaper)

	if len(out.Glyphs) == 0 || out.Glyphs[0].GlyphID == 0 {
		return shaping.Output{}, false
	}
	return out, true
}

// lineMetrics fills the font-wide vertical metrics from a shaped space.
// Caller holds the pool lock.
func (p *Pool) lineMetrics(f *poolFont) {
	input := shaping.Input{
		Text:      []rune{' '},
		RunStart:  0,
		RunEnd:    1,
		Direction: di.DirectionLTR,
		Face:      f.face,
		Size:      fixed.I(int(paint.EM)),
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	}

	shaper := p.shapers.Get().(*shaping.HarfbuzzShaper)
	out := shaper.Shape(input)
	p.shapers.Put(shaper)

	ascent := fixedToFloat(out.LineBounds.Ascent)
	descent := fixedToFloat(out.LineBounds.Descent)
	gap := fixedToFloat(out.LineBounds.Gap)
	f.ascender = ascent
	// Descent is negative, below the baseline.
	f.lineHeight = ascent - descent + gap
}

// sortedFontIDs returns the loaded ids in ascending order. Caller holds
// the pool lock.
func (p *Pool) sortedFontIDs() []uint32 {
	ids := make([]uint32, 0, len(p.fonts))
	for id := range p.fonts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// warnOnRTL logs once per call when the text contains right-to-left
// runs. Layout treats text as a left-to-right glyph sequence; RTL
// content renders in logical order, not visual order.
func warnOnRTL(text string) {
	if text == "" {
		return
	}
	var para bidi.Paragraph
	if _, err := para.SetString(text); err != nil {
		return
	}
	ordering, err := para.Order()
	if err != nil {
		return
	}
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		if run.Direction() == bidi.RightToLeft {
			sdfui.Logger().Warn("text: right-to-left run rendered in logical order")
			return
		}
	}
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
