package layout

import (
	"testing"

	sdfui "github.com/gogpu/sdfui"
)

func TestFrameFirstPaintCoversWindow(t *testing.T) {
	window := testWindow()
	tree := NewTree()
	tree.InsertRoot(box("root"))

	p := newTestPainter()
	redraw := tree.Frame(p, window)
	if redraw == nil {
		t.Fatal("first frame returned nil redraw")
	}
	if *redraw != window {
		t.Errorf("redraw = %+v, want full window %+v", *redraw, window)
	}
}

func TestFrameSecondPaintIsSkipped(t *testing.T) {
	window := testWindow()
	tree := NewTree()
	tree.InsertRoot(box("root"))

	p := newTestPainter()
	tree.Frame(p, window)

	p.Reset()
	if redraw := tree.Frame(p, window); redraw != nil {
		t.Errorf("unchanged frame returned redraw %+v", *redraw)
	}
	if len(p.Shapes()) != 0 {
		t.Errorf("unchanged frame painted %d shapes", len(p.Shapes()))
	}
}

func TestFrameRepaintsAfterMutation(t *testing.T) {
	window := testWindow()
	tree := NewTree()
	root := &scriptedWidget{size: sdfui.Pt(800, 600), script: map[NodeID]*sdfui.Rect{}}
	tree.InsertRoot(root)

	p := newTestPainter()
	tree.Frame(p, window)

	child, _ := tree.AddChild(RootID, box("late"))
	rc := sdfui.Rect{X: 20, Y: 20, W: 40, H: 40}
	root.script[child] = &rc

	p.Reset()
	redraw := tree.Frame(p, window)
	if redraw == nil {
		t.Fatal("mutated frame returned nil redraw")
	}
	// AddChild dirtied the root, so the whole window repaints.
	if *redraw != window {
		t.Errorf("redraw = %+v, want %+v", *redraw, window)
	}
}

func TestFrameRedrawClippedToWindow(t *testing.T) {
	window := sdfui.Rect{W: 100, H: 100}
	tree := NewTree()
	root := &scriptedWidget{size: sdfui.Pt(100, 100), script: map[NodeID]*sdfui.Rect{}}
	tree.InsertRoot(root)
	child, _ := tree.AddChild(RootID, box("edge"))
	rc := sdfui.Rect{X: 80, Y: 80, W: 60, H: 60}
	root.script[child] = &rc

	p := newTestPainter()
	redraw := tree.Frame(p, window)
	if redraw == nil {
		t.Fatal("frame returned nil redraw")
	}
	if got := redraw.Intersect(window); got != *redraw {
		t.Errorf("redraw %+v escapes the window", *redraw)
	}
}
