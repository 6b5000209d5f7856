package ui

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	sdfui "github.com/gogpu/sdfui"
	"github.com/gogpu/sdfui/compile"
	"github.com/gogpu/sdfui/layout"
	"github.com/gogpu/sdfui/paint"
)

// panel paints its whole area and lays out nothing.
type panel struct {
	layout.ChildlessWidget
	color sdfui.RGBA
}

func (p *panel) Measure(layout.NodeID, *paint.Painter, *layout.Tree) sdfui.Point {
	return sdfui.Pt(100, 100)
}

func (p *panel) Draw(pt *paint.Painter, size sdfui.Point) {
	pt.SetColor(p.color)
	pt.DrawRect(sdfui.RectFromSize(size), [4]float32{})
}

// label draws one line of text.
type label struct {
	layout.ChildlessWidget
	font uint32
	text string
}

func (l *label) Measure(_ layout.NodeID, p *paint.Painter, _ *layout.Tree) sdfui.Point {
	size, _ := p.TextSize(l.font, 16, l.text)
	return size
}

func (l *label) Draw(p *paint.Painter, _ sdfui.Point) {
	p.DrawText(sdfui.Pt(0, 0), l.font, 16, l.text)
}

func TestContextFrameLifecycle(t *testing.T) {
	ctx := NewContext(sdfui.Pt(640, 480))
	defer ctx.Close()

	ctx.Tree().InsertRoot(&panel{color: sdfui.RGBA{R: 1, A: 1}})

	out := ctx.Frame()
	if out.Program.Redraw == nil {
		t.Fatal("first frame compiled no redraw")
	}
	if *out.Program.Redraw != ctx.Window() {
		t.Errorf("redraw = %+v, want full window", *out.Program.Redraw)
	}
	if len(out.Program.Commands) == 0 {
		t.Error("first frame compiled no commands")
	}
	if out.Program.RegisterDepth < 2 {
		t.Errorf("register depth = %d", out.Program.RegisterDepth)
	}

	// Nothing changed, so the next frame is free.
	out = ctx.Frame()
	if out.Program.Redraw != nil {
		t.Errorf("idle frame redraw = %+v", *out.Program.Redraw)
	}
	if len(out.Program.Commands) != 0 {
		t.Errorf("idle frame compiled %d commands", len(out.Program.Commands))
	}
}

func TestContextResizeForcesRepaint(t *testing.T) {
	ctx := NewContext(sdfui.Pt(640, 480))
	defer ctx.Close()
	ctx.Tree().InsertRoot(&panel{color: sdfui.White})
	ctx.Frame()

	ctx.Resize(sdfui.Pt(800, 600))
	if got := ctx.Window(); got != (sdfui.Rect{W: 800, H: 600}) {
		t.Errorf("window = %+v", got)
	}

	out := ctx.Frame()
	if out.Program.Redraw == nil {
		t.Fatal("post-resize frame compiled no redraw")
	}
	if *out.Program.Redraw != ctx.Window() {
		t.Errorf("redraw = %+v, want the new window", *out.Program.Redraw)
	}
}

func TestContextForceRedraw(t *testing.T) {
	ctx := NewContext(sdfui.Pt(320, 240), WithForceRedraw())
	defer ctx.Close()
	ctx.Tree().InsertRoot(&panel{color: sdfui.White})

	ctx.Frame()
	out := ctx.Frame()
	if out.Program.Redraw == nil {
		t.Error("forced frame skipped the redraw")
	}
}

func TestContextTextFrameProducesUploads(t *testing.T) {
	ctx := NewContext(sdfui.Pt(640, 480), WithGlyphBudget(8))
	defer ctx.Close()

	font, err := ctx.LoadFont(goregular.TTF)
	if err != nil {
		t.Fatalf("LoadFont: %v", err)
	}
	ctx.Tree().InsertRoot(&label{font: font, text: "hello"})

	out := ctx.Frame()
	if len(out.GlyphUploads) != 8 {
		t.Errorf("uploads = %d, want the budget of 8", len(out.GlyphUploads))
	}
	var chars int
	for _, cmd := range out.Program.Commands {
		if cmd.Opcode == compile.OpDrawChar {
			chars++
		}
	}
	if chars != len("hello") {
		t.Errorf("glyph commands = %d, want %d", chars, len("hello"))
	}
}

func TestContextWorkerPoolMatchesSerial(t *testing.T) {
	build := func(opts ...Option) compile.Program {
		ctx := NewContext(sdfui.Pt(640, 480), opts...)
		defer ctx.Close()
		ctx.Tree().InsertRoot(&panel{color: sdfui.RGBA{G: 1, A: 1}})
		return ctx.Frame().Program
	}

	serial := build()
	pooled := build(WithWorkers(4))
	if len(serial.Commands) != len(pooled.Commands) {
		t.Fatalf("command counts differ: %d vs %d", len(serial.Commands), len(pooled.Commands))
	}
	for i := range serial.Commands {
		if serial.Commands[i] != pooled.Commands[i] {
			t.Errorf("command %d differs", i)
		}
	}
}

func TestContextRemovedFontsSurface(t *testing.T) {
	ctx := NewContext(sdfui.Pt(320, 240))
	defer ctx.Close()
	font, err := ctx.LoadFont(goregular.TTF)
	if err != nil {
		t.Fatalf("LoadFont: %v", err)
	}
	ctx.Fonts().Remove(font)

	out := ctx.Frame()
	if len(out.RemovedFonts) != 1 || out.RemovedFonts[0] != font {
		t.Errorf("RemovedFonts = %v", out.RemovedFonts)
	}
}
