package layout

import (
	"fmt"

	sdfui "github.com/gogpu/sdfui"
)

// StructuralError reports a tree mutation against a node that is not in
// the state the operation requires.
type StructuralError struct {
	Op string
	ID NodeID
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("layout: %s: node %d has no parent entry", e.Op, e.ID)
}

// AliasError reports a tree mutation keyed by a name that is not bound
// to any node.
type AliasError struct {
	Op   string
	Name string
}

func (e *AliasError) Error() string {
	return fmt.Sprintf("layout: %s: alias %q is not bound", e.Op, e.Name)
}

// Placement is where a node ended up this frame.
type Placement struct {
	// Rect is the node's visible and clip rectangle in window
	// coordinates.
	Rect sdfui.Rect
	// Pos is the node's absolute top-left offset, the origin its widget
	// draws relative to.
	Pos sdfui.Point
}

type node struct {
	widget    Widget
	placement *Placement
	dirty     bool
}

// Tree owns the widget tree: nodes, adjacency, and the alias table.
//
// Invariant: parent[c] == p exactly when c is in children[p], for every
// node reachable from the root. The root's parent is itself.
//
// Tree is not safe for concurrent use; all mutation happens on the
// frame goroutine.
type Tree struct {
	nodes    map[NodeID]*node
	children map[NodeID][]NodeID
	parent   map[NodeID]NodeID
	aliases  map[string]NodeID
	names    map[NodeID]string
	next     NodeID
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{
		nodes:    make(map[NodeID]*node),
		children: make(map[NodeID][]NodeID),
		parent:   make(map[NodeID]NodeID),
		aliases:  make(map[string]NodeID),
		names:    make(map[NodeID]string),
		next:     RootID + 1,
	}
}

// InsertRoot installs the root widget. If a root already exists its
// widget is swapped in place and its children are kept. The root starts
// placed at the unbounded window rectangle; the frame clips it to the
// real window size.
func (t *Tree) InsertRoot(w Widget) {
	if n, ok := t.nodes[RootID]; ok {
		n.widget = w
		n.dirty = true
		return
	}
	t.nodes[RootID] = &node{
		widget:    w,
		placement: &Placement{Rect: sdfui.WindowRect()},
		dirty:     true,
	}
	t.parent[RootID] = RootID
}

// AddChild inserts a widget under parent, returning the new id. Returns
// false when the parent does not exist. The parent is marked dirty: its
// child layout must re-run.
func (t *Tree) AddChild(parent NodeID, w Widget) (NodeID, bool) {
	if _, ok := t.nodes[parent]; !ok {
		return 0, false
	}
	id := t.next
	t.next++
	t.nodes[id] = &node{widget: w}
	t.children[parent] = append(t.children[parent], id)
	t.parent[id] = parent
	t.MarkDirty(parent)
	return id, true
}

// RemoveSubtree removes id and everything under it, returning the owned
// widgets in post-order (deepest first, id last). Unknown ids are a
// no-op returning nil. The removed node's parent is marked dirty.
func (t *Tree) RemoveSubtree(id NodeID) []Widget {
	if _, ok := t.nodes[id]; !ok {
		return nil
	}

	parent, hasParent := t.parent[id]

	// Iterative post-order: push the whole subtree, then unwind.
	order := make([]NodeID, 0, 8)
	queue := []NodeID{id}
	for len(queue) > 0 {
		cur := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		order = append(order, cur)
		queue = append(queue, t.children[cur]...)
	}

	widgets := make([]Widget, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		cur := order[i]
		widgets = append(widgets, t.nodes[cur].widget)
		delete(t.nodes, cur)
		delete(t.children, cur)
		delete(t.parent, cur)
		if name, ok := t.names[cur]; ok {
			delete(t.aliases, name)
			delete(t.names, cur)
		}
	}

	if hasParent && parent != id {
		t.children[parent] = removeID(t.children[parent], id)
		t.MarkDirty(parent)
	}
	return widgets
}

// Replace swaps the widget at id for a new one, destroying the old
// widget's children but keeping the edge to the parent. Returns the
// widgets of the destroyed subtree, old widget last. A node without a
// parent entry cannot be replaced.
func (t *Tree) Replace(id NodeID, w Widget) ([]Widget, error) {
	if _, ok := t.parent[id]; !ok {
		return nil, &StructuralError{Op: "replace", ID: id}
	}
	n := t.nodes[id]

	var removed []Widget
	for _, child := range append([]NodeID(nil), t.children[id]...) {
		removed = append(removed, t.RemoveSubtree(child)...)
	}
	removed = append(removed, n.widget)

	n.widget = w
	n.placement = nil
	t.MarkDirty(t.parent[id])
	return removed, nil
}

// Alias binds a name to a node. Aliasing never affects placement or
// ownership; re-aliasing a name moves it.
func (t *Tree) Alias(id NodeID, name string) bool {
	if _, ok := t.nodes[id]; !ok {
		return false
	}
	if old, ok := t.aliases[name]; ok {
		delete(t.names, old)
	}
	if oldName, ok := t.names[id]; ok {
		delete(t.aliases, oldName)
	}
	t.aliases[name] = id
	t.names[id] = name
	return true
}

// ResolveAlias returns the node a name is bound to.
func (t *Tree) ResolveAlias(name string) (NodeID, bool) {
	id, ok := t.aliases[name]
	return id, ok
}

// Unalias removes a name binding.
func (t *Tree) Unalias(name string) {
	if id, ok := t.aliases[name]; ok {
		delete(t.names, id)
		delete(t.aliases, name)
	}
}

// WidgetByAlias returns the widget a name is bound to.
func (t *Tree) WidgetByAlias(name string) (Widget, bool) {
	id, ok := t.aliases[name]
	if !ok {
		return nil, false
	}
	return t.Widget(id)
}

// RemoveSubtreeByAlias removes the named node and everything under it,
// like RemoveSubtree. An unbound name is a no-op returning nil.
func (t *Tree) RemoveSubtreeByAlias(name string) []Widget {
	id, ok := t.aliases[name]
	if !ok {
		return nil
	}
	return t.RemoveSubtree(id)
}

// ReplaceByAlias swaps the widget at the named node, like Replace. The
// alias stays bound to the node afterwards.
func (t *Tree) ReplaceByAlias(name string, w Widget) ([]Widget, error) {
	id, ok := t.aliases[name]
	if !ok {
		return nil, &AliasError{Op: "replace", Name: name}
	}
	return t.Replace(id, w)
}

// Widget returns the widget at id.
func (t *Tree) Widget(id NodeID) (Widget, bool) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, false
	}
	return n.widget, true
}

// Update mutates the widget at id in place. Returns false for unknown
// ids. The node is not marked dirty; call MarkDirty when the mutation
// changes what the widget renders.
func (t *Tree) Update(id NodeID, fn func(Widget)) bool {
	n, ok := t.nodes[id]
	if !ok {
		return false
	}
	fn(n.widget)
	return true
}

// Placement returns where id was placed this frame. The second result
// is false when the node is unknown or hidden.
func (t *Tree) Placement(id NodeID) (Placement, bool) {
	n, ok := t.nodes[id]
	if !ok || n.placement == nil {
		return Placement{}, false
	}
	return *n.placement, true
}

// Contains reports whether id exists in the tree.
func (t *Tree) Contains(id NodeID) bool {
	_, ok := t.nodes[id]
	return ok
}

// Parent returns the parent of id. The root's parent is itself.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	p, ok := t.parent[id]
	return p, ok
}

// Children returns the children of id in insertion order. The slice is
// shared; callers must not modify it.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.children[id]
}

// Parents returns the path from id's parent up to the root.
func (t *Tree) Parents(id NodeID) []NodeID {
	var out []NodeID
	for {
		p, ok := t.parent[id]
		if !ok || p == id {
			return out
		}
		out = append(out, p)
		id = p
	}
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Depth returns the number of tree layers, counted by breadth-first
// traversal from the root. An empty tree has depth 0.
func (t *Tree) Depth() int {
	if _, ok := t.nodes[RootID]; !ok {
		return 0
	}
	depth := 0
	level := []NodeID{RootID}
	for len(level) > 0 {
		depth++
		var next []NodeID
		for _, id := range level {
			next = append(next, t.children[id]...)
		}
		level = next
	}
	return depth
}

// Clear removes every node and alias.
func (t *Tree) Clear() {
	t.nodes = make(map[NodeID]*node)
	t.children = make(map[NodeID][]NodeID)
	t.parent = make(map[NodeID]NodeID)
	t.aliases = make(map[string]NodeID)
	t.names = make(map[NodeID]string)
	t.next = RootID + 1
}

// MarkDirty flags a node for redraw. Descendants are flagged during the
// propagation phase of the next frame.
func (t *Tree) MarkDirty(id NodeID) {
	if n, ok := t.nodes[id]; ok {
		n.dirty = true
	}
}

// MarkAllDirty flags every node for redraw, forcing a full repaint.
func (t *Tree) MarkAllDirty() {
	for _, n := range t.nodes {
		n.dirty = true
	}
}

// IsDirty reports whether a node is flagged for redraw.
func (t *Tree) IsDirty(id NodeID) bool {
	n, ok := t.nodes[id]
	return ok && n.dirty
}

// AnyDirty reports whether any node is flagged for redraw.
func (t *Tree) AnyDirty() bool {
	for _, n := range t.nodes {
		if n.dirty {
			return true
		}
	}
	return false
}

func removeID(ids []NodeID, id NodeID) []NodeID {
	for i, cur := range ids {
		if cur == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
