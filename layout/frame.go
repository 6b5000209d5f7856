package layout

import (
	sdfui "github.com/gogpu/sdfui"
	"github.com/gogpu/sdfui/paint"
)

// Frame runs one full frame over the tree: propagate dirty flags, solve
// layout, apply deferred removals, then paint.
//
// Returns the redraw rectangle clipped to the window, or nil when
// nothing was dirty and the frame needs no GPU work. Widgets removed by
// layout responses are discarded here; use Solve directly to get them
// back.
func (t *Tree) Frame(p *paint.Painter, window sdfui.Rect) *sdfui.Rect {
	t.PropagateDirty()
	t.Solve(p, window)

	redraw := t.Paint(p, window)
	if redraw == nil {
		return nil
	}
	clipped := redraw.Intersect(window)
	return &clipped
}
