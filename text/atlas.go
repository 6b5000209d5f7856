package text

import (
	"image"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	sdfui "github.com/gogpu/sdfui"
)

const (
	// TextureSize is the side of the per-font atlas texture in pixels.
	TextureSize = 2048

	// CellSize is the side of one glyph cell in pixels.
	CellSize = 64

	// cellPad keeps the glyph away from the cell border so the distance
	// field has room to fall off.
	cellPad = 8

	cellsPerRow = TextureSize / CellSize

	// SlotCapacity is the number of glyph cells per font texture.
	SlotCapacity = cellsPerRow * cellsPerRow

	// DefaultUploadBudget caps glyph rasterizations per frame and font.
	DefaultUploadBudget = 32
)

// Upload is one rasterized glyph cell ready for texture upload.
// Pixels holds CellSize*CellSize bytes of encoded signed distance,
// 128 on the glyph edge, larger inside.
type Upload struct {
	Font   uint32
	Slot   uint32
	Pixels []byte
}

// SlotRect returns the pixel rectangle of a slot inside the font
// texture.
func SlotRect(slot uint32) image.Rectangle {
	x := int(slot%cellsPerRow) * CellSize
	y := int(slot/cellsPerRow) * CellSize
	return image.Rect(x, y, x+CellSize, y+CellSize)
}

// GlyphSlot implements compile.Atlas. The slot is reserved immediately;
// the cell pixels follow through Rasterize within the frame budget.
// Returns false when the font is unknown, the font has no such glyph,
// or the atlas texture is full.
func (p *Pool) GlyphSlot(id uint32, ch rune) (uint32, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f, ok := p.fonts[id]
	if !ok {
		return 0, false
	}
	if slot, ok := f.slots[ch]; ok {
		return slot, true
	}
	if _, ok := p.loadGlyph(f, ch); !ok {
		return 0, false
	}
	slot, ok := f.slots[ch]
	return slot, ok
}

// reserveSlot assigns the next free cell to the rune and queues it for
// rasterization. Caller holds the pool lock.
func (p *Pool) reserveSlot(f *poolFont, ch rune) {
	if _, ok := f.slots[ch]; ok {
		return
	}
	if f.nextSlot >= SlotCapacity {
		sdfui.Logger().Warn("text: glyph atlas full", "rune", string(ch))
		return
	}
	f.slots[ch] = f.nextSlot
	f.nextSlot++
	f.pending = append(f.pending, ch)
}

// PendingGlyphs returns how many reserved cells still await pixels.
func (p *Pool) PendingGlyphs() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, f := range p.fonts {
		n += len(f.pending)
	}
	return n
}

// Rasterize drains pending glyph cells, at most budget per font, and
// returns the finished uploads. A non-positive budget uses
// DefaultUploadBudget. Glyphs that fail to rasterize are dropped from
// the queue with a warning; their slots render empty.
func (p *Pool) Rasterize(budget int) []Upload {
	if budget <= 0 {
		budget = DefaultUploadBudget
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var out []Upload
	for _, id := range p.sortedFontIDs() {
		f := p.fonts[id]
		n := min(budget, len(f.pending))
		if n == 0 {
			continue
		}
		batch := f.pending[:n]
		f.pending = f.pending[n:]

		for _, ch := range batch {
			pixels, ok := rasterizeCell(f.raster, ch)
			if !ok {
				sdfui.Logger().Warn("text: glyph rasterization failed",
					"font", id, "rune", string(ch))
				continue
			}
			out = append(out, Upload{Font: id, Slot: f.slots[ch], Pixels: pixels})
		}
	}
	return out
}

// rasterizeCell draws the glyph into a CellSize alpha mask and converts
// it to a signed distance cell. The glyph is scaled so a full line of
// text fits the cell minus the distance-field margin.
func rasterizeCell(f *sfnt.Font, ch rune) ([]byte, bool) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(CellSize - 2*cellPad),
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, false
	}
	defer func() { _ = face.Close() }()

	bounds, _, ok := face.GlyphBounds(ch)
	if !ok {
		return nil, false
	}

	mask := image.NewAlpha(image.Rect(0, 0, CellSize, CellSize))
	drawer := &xfont.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: face,
		// Shift the glyph box into the padded cell interior.
		Dot: fixed.Point26_6{
			X: fixed.I(cellPad) - bounds.Min.X,
			Y: fixed.I(cellPad) - bounds.Min.Y,
		},
	}
	drawer.DrawString(string(ch))

	return distanceField(mask), true
}
