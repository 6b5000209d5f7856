package text

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/sdfui/compile"
	"github.com/gogpu/sdfui/paint"
)

var (
	_ paint.GlyphMetrics = (*Pool)(nil)
	_ compile.Atlas      = (*Pool)(nil)
)

func loadPool(t *testing.T) (*Pool, uint32) {
	t.Helper()
	pool := NewPool()
	id, err := pool.Load(goregular.TTF)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return pool, id
}

func TestPoolLoad(t *testing.T) {
	pool, id := loadPool(t)
	if id != 0 {
		t.Errorf("first font id = %d, want 0", id)
	}
	id2, err := pool.Load(goregular.TTF)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if id2 != 1 {
		t.Errorf("second font id = %d, want 1", id2)
	}
	if pool.Len() != 2 {
		t.Errorf("Len = %d, want 2", pool.Len())
	}
}

func TestPoolLoadErrors(t *testing.T) {
	pool := NewPool()
	if _, err := pool.Load(nil); err != ErrEmptyFontData {
		t.Errorf("empty data error = %v", err)
	}
	if _, err := pool.Load([]byte("not a font")); err == nil {
		t.Error("garbage data parsed")
	}

	for i := 0; i < MaxFonts; i++ {
		if _, err := pool.Load(goregular.TTF); err != nil {
			t.Fatalf("Load %d: %v", i, err)
		}
	}
	if _, err := pool.Load(goregular.TTF); err != ErrTooManyFonts {
		t.Errorf("over-limit error = %v", err)
	}
}

func TestPoolGlyphMetrics(t *testing.T) {
	pool, id := loadPool(t)

	g, ok := pool.Glyph(id, 'A')
	if !ok {
		t.Fatal("Glyph('A') failed")
	}
	if g.Advance.X <= 0 {
		t.Errorf("advance = %v", g.Advance.X)
	}
	if g.Size.X <= 0 || g.Size.Y <= 0 {
		t.Errorf("size = %+v", g.Size)
	}
	// A capital at EM=16 is a handful of pixels wide.
	if g.Advance.X > paint.EM {
		t.Errorf("advance %v exceeds the em size", g.Advance.X)
	}

	again, ok := pool.Glyph(id, 'A')
	if !ok || again != g {
		t.Error("cached lookup differs")
	}

	if _, ok := pool.Glyph(id, '中'); ok {
		t.Error("glyph outside the font's coverage resolved")
	}
	if _, ok := pool.Glyph(99, 'A'); ok {
		t.Error("glyph for unknown font resolved")
	}
}

func TestPoolLineMetrics(t *testing.T) {
	pool, id := loadPool(t)

	lh, ok := pool.LineHeight(id)
	if !ok || lh <= 0 {
		t.Errorf("LineHeight = %v, %v", lh, ok)
	}
	asc, ok := pool.Ascender(id)
	if !ok || asc <= 0 || asc >= lh {
		t.Errorf("Ascender = %v with line height %v", asc, lh)
	}
	if _, ok := pool.LineHeight(99); ok {
		t.Error("line height for unknown font resolved")
	}
}

func TestPoolAdvanceFactor(t *testing.T) {
	pool, id := loadPool(t)

	f, ok := pool.AdvanceFactor(id)
	if !ok || f != 1 {
		t.Errorf("default factor = %v, %v", f, ok)
	}
	pool.SetAdvanceFactor(id, 0.9)
	if f, _ := pool.AdvanceFactor(id); f != 0.9 {
		t.Errorf("factor = %v after set", f)
	}
}

func TestPoolTextSize(t *testing.T) {
	pool, id := loadPool(t)

	short, ok := pool.TextSize(id, 16, "hi", false)
	if !ok {
		t.Fatal("TextSize failed")
	}
	long, _ := pool.TextSize(id, 16, "hi there", false)
	if long.X <= short.X {
		t.Errorf("longer text not wider: %v vs %v", long.X, short.X)
	}

	two, _ := pool.TextSize(id, 16, "hi\nhi", false)
	if two.Y <= short.Y {
		t.Errorf("two lines not taller: %v vs %v", two.Y, short.Y)
	}
	if two.X != short.X {
		t.Errorf("equal lines differ in width: %v vs %v", two.X, short.X)
	}

	// Doubling the size doubles the measurement.
	big, _ := pool.TextSize(id, 32, "hi", false)
	if got, want := big.X, short.X*2; absDiff(got, want) > 1e-3 {
		t.Errorf("size 32 width = %v, want %v", got, want)
	}

	if _, ok := pool.TextSize(99, 16, "hi", false); ok {
		t.Error("TextSize for unknown font succeeded")
	}
}

func TestPoolTextSizePointer(t *testing.T) {
	pool, id := loadPool(t)
	pool.SetAdvanceFactor(id, 0.5)

	plain, _ := pool.TextSize(id, 16, "mm", false)
	caret, _ := pool.TextSize(id, 16, "mm", true)
	// With a factor below 1 the pointer variant shrinks the trailing
	// advance.
	if caret.X >= plain.X {
		t.Errorf("pointer width %v not below plain width %v", caret.X, plain.X)
	}
}

func absDiff(a, b float32) float32 {
	if a > b {
		return a - b
	}
	return b - a
}
