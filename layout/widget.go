// Package layout maintains the widget tree, allocates rectangles to
// widgets, and computes the minimal redraw region per frame.
package layout

import (
	sdfui "github.com/gogpu/sdfui"
	"github.com/gogpu/sdfui/paint"
)

// NodeID identifies a node in the tree. The root is always RootID once
// the tree is non-empty.
type NodeID uint64

// RootID is the id of the root node.
const RootID NodeID = 0

// Widget is the capability set every tree node implements.
//
// The tree exclusively owns widget instances: insertion moves a widget
// in, removal hands it back to the caller.
type Widget interface {
	// Measure returns the widget's preferred size. The painter is
	// available for text measurement.
	Measure(id NodeID, p *paint.Painter, tree *Tree) sdfui.Point

	// Draw paints the widget into the painter. size is the allocated
	// size; positions are relative to the widget's own origin.
	Draw(p *paint.Painter, size sdfui.Point)

	// HandleChildLayout places the widget's children. sizes holds each
	// child's measured size in insertion order; own is the widget's
	// rectangle; id is the widget's own node id.
	//
	// The returned map is keyed by child id. A non-nil rect places the
	// child there, relative to the widget's rectangle. A nil rect marks
	// the child for removal from the tree. Children absent from the map
	// are hidden this frame, subtree included. An entry for id itself
	// resizes the widget's own clip basis; returning an unclamped rect
	// there lets overlay containers lay their children out
	// window-relative instead of clipped to the parent.
	HandleChildLayout(sizes *ChildSizes, own sdfui.Rect, id NodeID) map[NodeID]*sdfui.Rect

	// InnerPadding returns the space the widget reserves inside its own
	// rectangle before child placement.
	InnerPadding() sdfui.Point
}

// ChildSizes is an ordered id-to-size map, iteration in insertion order.
type ChildSizes struct {
	ids   []NodeID
	sizes map[NodeID]sdfui.Point
}

// NewChildSizes creates an empty size map.
func NewChildSizes() *ChildSizes {
	return &ChildSizes{sizes: make(map[NodeID]sdfui.Point)}
}

// Add records a child's size. Adding an id twice updates the size
// without changing its position.
func (s *ChildSizes) Add(id NodeID, size sdfui.Point) {
	if _, ok := s.sizes[id]; !ok {
		s.ids = append(s.ids, id)
	}
	s.sizes[id] = size
}

// Get returns the size recorded for id.
func (s *ChildSizes) Get(id NodeID) (sdfui.Point, bool) {
	size, ok := s.sizes[id]
	return size, ok
}

// IDs returns the child ids in insertion order. The slice is shared;
// callers must not modify it.
func (s *ChildSizes) IDs() []NodeID { return s.ids }

// Len returns the number of recorded children.
func (s *ChildSizes) Len() int { return len(s.ids) }

// ChildlessWidget provides the Widget defaults for widgets without
// children. Embed it and implement Measure and Draw.
type ChildlessWidget struct{}

// HandleChildLayout returns nil: no children to place.
func (ChildlessWidget) HandleChildLayout(*ChildSizes, sdfui.Rect, NodeID) map[NodeID]*sdfui.Rect {
	return nil
}

// InnerPadding returns zero padding.
func (ChildlessWidget) InnerPadding() sdfui.Point { return sdfui.Point{} }
