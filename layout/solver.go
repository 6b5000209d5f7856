package layout

import (
	sdfui "github.com/gogpu/sdfui"
	"github.com/gogpu/sdfui/paint"
)

// Solve runs the layout pass: measure children, ask each parent to
// place them, clip recursively, hide what the parent left unplaced, and
// remove what it marked for removal.
//
// The clip cascade holds afterwards: every placed child's rectangle is
// a subset of its parent's rectangle intersected with the window. A
// widget that resizes its own clip basis through HandleChildLayout can
// widen the parent bound up to the window, which is how overlays escape
// their container.
//
// Removals requested by HandleChildLayout are deferred until the walk
// completes, so the tree is never mutated mid-traversal. The removed
// widgets are returned to the caller.
func (t *Tree) Solve(p *paint.Painter, window sdfui.Rect) []Widget {
	root, ok := t.nodes[RootID]
	if !ok {
		return nil
	}
	if root.placement == nil {
		root.placement = &Placement{}
	}

	// The root is re-seeded from the window every frame so a grown
	// window grows the root back with it.
	var doomed []NodeID
	rootRect := sdfui.WindowRect().Intersect(window)
	root.placement.Rect = rootRect
	t.solveNode(RootID, p, rootRect, root.placement.Pos, window, &doomed)

	var removed []Widget
	for _, id := range doomed {
		removed = append(removed, t.RemoveSubtree(id)...)
	}
	return removed
}

func (t *Tree) solveNode(id NodeID, p *paint.Painter, rect sdfui.Rect, pos sdfui.Point, window sdfui.Rect, doomed *[]NodeID) {
	n := t.nodes[id]

	childIDs := t.children[id]
	if len(childIDs) == 0 {
		return
	}

	sizes := NewChildSizes()
	p.SetRelativeTo(pos)
	for _, child := range childIDs {
		cn, ok := t.nodes[child]
		if !ok {
			continue
		}
		sizes.Add(child, cn.widget.Measure(child, p, t))
	}

	response := n.widget.HandleChildLayout(sizes, rect, id)

	// An entry for the node itself moves its own clip basis. Overlay
	// containers return the window rect here so their children are
	// placed window-relative. The self entry is position-relative like
	// any child placement; the node's own rect is already absolute.
	clipBase := rect
	if self, ok := response[id]; ok && self != nil {
		clipBase = self.MoveBy(pos)
	}
	clipBase = clipBase.Intersect(window)

	unresolved := make([]NodeID, 0)
	for _, child := range childIDs {
		placed, ok := response[child]
		if !ok {
			unresolved = append(unresolved, child)
			continue
		}
		if placed == nil {
			*doomed = append(*doomed, child)
			continue
		}

		childRect := placed.MoveBy(pos).Intersect(clipBase)
		childPos := pos.Add(placed.LT())
		cn := t.nodes[child]
		cn.placement = &Placement{Rect: childRect, Pos: childPos}
		t.solveNode(child, p, childRect, childPos, window, doomed)
	}

	// Hide everything the parent did not place, subtree included.
	for len(unresolved) > 0 {
		cur := unresolved[0]
		unresolved = unresolved[1:]
		if cn, ok := t.nodes[cur]; ok {
			cn.placement = nil
		}
		unresolved = append(unresolved, t.children[cur]...)
	}
}
