package layout

import (
	sdfui "github.com/gogpu/sdfui"
	"github.com/gogpu/sdfui/paint"
)

// PropagateDirty pushes dirty flags down through the tree: every
// descendant of a dirty node becomes dirty too. Conservative on
// purpose, a dirty ancestor may have moved or re-clipped anything
// below it. Runs once per frame, before layout solving.
func (t *Tree) PropagateDirty() {
	var queue []NodeID
	for id, n := range t.nodes {
		if n.dirty {
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range t.children[id] {
			if n, ok := t.nodes[child]; ok && !n.dirty {
				n.dirty = true
				queue = append(queue, child)
			}
		}
	}
}

// Paint walks the tree parent-before-child and draws every dirty,
// placed node, accumulating the union of their rectangles. Siblings
// paint in child-list order, preserving z-order within a parent.
//
// Hidden nodes and nodes with an empty rectangle draw nothing, but
// their subtrees are still walked so dirty flags clear consistently.
//
// Returns nil when no node was dirty: the frame can skip GPU work
// entirely.
func (t *Tree) Paint(p *paint.Painter, window sdfui.Rect) *sdfui.Rect {
	if _, ok := t.nodes[RootID]; !ok {
		return nil
	}

	var redraw *sdfui.Rect
	queue := []NodeID{RootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		queue = append(queue, t.children[id]...)

		n := t.nodes[id]
		if !n.dirty {
			continue
		}
		n.dirty = false
		if n.placement == nil {
			continue
		}

		area := n.placement.Rect
		if area.Size().HasInf() {
			// The root carries the unbounded window rect until clipped.
			area = window
		}
		if area.IsEmpty() || area.Area() == 0 {
			continue
		}

		p.SetClip(area)
		p.SetRelativeTo(n.placement.Pos)
		p.ResetTransform()
		p.ResetBlend()
		n.widget.Draw(p, area.Size())

		if redraw == nil {
			r := area
			redraw = &r
		} else {
			*redraw = redraw.Union(area)
		}
	}
	return redraw
}
