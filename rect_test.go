package sdfui

import (
	"math"
	"testing"
)

func TestRectConstructors(t *testing.T) {
	tests := []struct {
		name string
		got  Rect
		want Rect
	}{
		{"ltrb", RectLTRB(Pt(1, 2), Pt(5, 8)), Rect{X: 1, Y: 2, W: 4, H: 6}},
		{"from size", RectFromSize(Pt(3, 4)), Rect{W: 3, H: 4}},
		{"lt size", RectLTSize(Pt(1, 1), Pt(2, 2)), Rect{X: 1, Y: 1, W: 2, H: 2}},
		{"center size", RectCenterSize(Pt(5, 5), Pt(4, 2)), Rect{X: 3, Y: 4, W: 4, H: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %+v, want %+v", tt.got, tt.want)
			}
		})
	}
}

func TestRectEmptiness(t *testing.T) {
	if (Rect{W: -1, H: 5}).IsPositive() {
		t.Error("negative width counted as positive")
	}
	// A zero-sized rect is not empty. The clip cascade depends on a
	// degenerate intersection still naming a position.
	if (Rect{X: 3, Y: 3}).IsEmpty() {
		t.Error("zero-sized rect counted as empty")
	}
}

func TestRectCorners(t *testing.T) {
	r := Rect{X: 1, Y: 2, W: 4, H: 6}
	if r.LT() != Pt(1, 2) || r.RT() != Pt(5, 2) || r.RB() != Pt(5, 8) || r.LB() != Pt(1, 8) {
		t.Errorf("corners of %+v wrong: LT=%v RT=%v RB=%v LB=%v", r, r.LT(), r.RT(), r.RB(), r.LB())
	}
	if r.Center() != Pt(3, 5) {
		t.Errorf("Center = %+v, want (3, 5)", r.Center())
	}
	if r.Size() != Pt(4, 6) {
		t.Errorf("Size = %+v, want (4, 6)", r.Size())
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	if !r.Contains(Pt(0, 0)) || !r.Contains(Pt(10, 10)) {
		t.Error("boundary points not contained")
	}
	if r.Contains(Pt(10.01, 5)) {
		t.Error("outside point contained")
	}
	if !r.ContainsRect(Rect{X: 2, Y: 2, W: 3, H: 3}) {
		t.Error("inner rect not contained")
	}
	if r.ContainsRect(Rect{X: 8, Y: 8, W: 5, H: 5}) {
		t.Error("overflowing rect contained")
	}
}

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 5, Y: 5, W: 10, H: 10}

	got := a.Intersect(b)
	want := Rect{X: 5, Y: 5, W: 5, H: 5}
	if got != want {
		t.Errorf("Intersect = %+v, want %+v", got, want)
	}

	// Disjoint rects intersect to a negative-size (empty) rect.
	c := Rect{X: 20, Y: 20, W: 5, H: 5}
	if !a.Intersect(c).IsEmpty() {
		t.Errorf("disjoint Intersect = %+v, want empty", a.Intersect(c))
	}
	if a.Intersects(c) {
		t.Error("Intersects reported overlap for disjoint rects")
	}
	if !a.Intersects(b) {
		t.Error("Intersects missed overlap")
	}
}

func TestRectIntersectWindow(t *testing.T) {
	// Clipping a finite rect against the window leaves it unchanged.
	r := Rect{X: 5, Y: 5, W: 100, H: 50}
	if got := r.Intersect(WindowRect()); got != r {
		t.Errorf("Intersect(window) = %+v, want %+v", got, r)
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 5, H: 5}
	b := Rect{X: 10, Y: 10, W: 5, H: 5}
	want := Rect{X: 0, Y: 0, W: 15, H: 15}
	if got := a.Union(b); got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
}

func TestRectMove(t *testing.T) {
	r := Rect{X: 1, Y: 1, W: 3, H: 3}
	if got := r.MoveBy(Pt(10, 20)); got != (Rect{X: 11, Y: 21, W: 3, H: 3}) {
		t.Errorf("MoveBy = %+v", got)
	}
	if got := r.MoveTo(Pt(0, 0)); got != (Rect{W: 3, H: 3}) {
		t.Errorf("MoveTo = %+v", got)
	}
}

func TestRectShrink(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	if got := r.Shrink(Splat(2)); got != (Rect{X: 2, Y: 2, W: 6, H: 6}) {
		t.Errorf("Shrink = %+v", got)
	}
	// Negative inset grows the rect, used for stroke expansion.
	if got := r.Shrink(Splat(-1)); got != (Rect{X: -1, Y: -1, W: 12, H: 12}) {
		t.Errorf("Shrink(-1) = %+v", got)
	}
}

func TestRectLerp(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 10, Y: 10, W: 20, H: 20}
	want := Rect{X: 5, Y: 5, W: 15, H: 15}
	if got := a.Lerp(b, 0.5); got != want {
		t.Errorf("Lerp = %+v, want %+v", got, want)
	}
}

func TestRectTransformed(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}

	if got := r.Transformed(Translate(5, 5)); got != (Rect{X: 5, Y: 5, W: 10, H: 10}) {
		t.Errorf("translate = %+v", got)
	}
	if got := r.Transformed(Scale(2, 3)); got != (Rect{X: 0, Y: 0, W: 20, H: 30}) {
		t.Errorf("scale = %+v", got)
	}

	// A rotation produces the bounding box of the rotated corners.
	got := r.Transformed(Rotate(math.Pi / 2))
	want := Rect{X: -10, Y: 0, W: 10, H: 10}
	const eps = 1e-4
	if math.Abs(float64(got.X-want.X)) > eps || math.Abs(float64(got.Y-want.Y)) > eps ||
		math.Abs(float64(got.W-want.W)) > eps || math.Abs(float64(got.H-want.H)) > eps {
		t.Errorf("rotate = %+v, want %+v", got, want)
	}
}

func TestWindowRect(t *testing.T) {
	w := WindowRect()
	if w.X != 0 || w.Y != 0 {
		t.Errorf("window anchored at %+v, want origin", w.LT())
	}
	if !math.IsInf(float64(w.W), 1) || !math.IsInf(float64(w.H), 1) {
		t.Errorf("window size = %+v, want infinite", w.Size())
	}
	if !w.Size().HasInf() {
		t.Error("window size should report infinity")
	}
}
