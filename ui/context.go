// Package ui ties the widget tree, painter, glyph service and shape
// compiler into a per-frame pipeline. A Context owns all four and turns
// one Frame call into a compiled GPU program plus the texture uploads
// the frame needs.
package ui

import (
	sdfui "github.com/gogpu/sdfui"
	"github.com/gogpu/sdfui/compile"
	"github.com/gogpu/sdfui/internal/parallel"
	"github.com/gogpu/sdfui/layout"
	"github.com/gogpu/sdfui/paint"
	"github.com/gogpu/sdfui/text"
)

// Context owns one window's UI state: the widget tree, the painter the
// widgets draw into, the font pool and the frame compiler.
//
// Context is not safe for concurrent use; drive it from the frame loop.
type Context struct {
	tree     *layout.Tree
	painter  *paint.Painter
	pool     *text.Pool
	compiler *compile.Compiler
	workers  *parallel.WorkerPool

	window      sdfui.Rect
	glyphBudget int
	forceRedraw bool
}

// FrameOutput is everything one frame produces for the renderer.
type FrameOutput struct {
	// Program is the compiled command stream. Its Redraw field is nil
	// when the frame needs no GPU work.
	Program compile.Program

	// GlyphUploads are atlas cells rasterized this frame.
	GlyphUploads []text.Upload

	// RemovedFonts lists font ids whose atlas textures can be released.
	RemovedFonts []uint32
}

// NewContext creates a Context for a window of the given size.
func NewContext(size sdfui.Point, opts ...Option) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Context{
		tree:        layout.NewTree(),
		pool:        text.NewPool(),
		window:      sdfui.RectFromSize(size),
		glyphBudget: o.glyphBudget,
		forceRedraw: o.forceRedraw,
	}
	c.painter = paint.NewPainter(c.pool, size)

	compilerOpts := []compile.Option{compile.WithRegisterCeiling(o.registerCeiling)}
	if o.workers > 1 {
		c.workers = parallel.NewWorkerPool(o.workers)
		compilerOpts = append(compilerOpts, compile.WithWorkerPool(c.workers))
	}
	c.compiler = compile.NewCompiler(c.pool, compilerOpts...)
	return c
}

// Tree returns the widget tree. Mutations mark the affected parents
// dirty, so the next Frame repaints what changed.
func (c *Context) Tree() *layout.Tree { return c.tree }

// Fonts returns the font pool.
func (c *Context) Fonts() *text.Pool { return c.pool }

// Painter returns the painter, for measuring text outside Draw calls.
func (c *Context) Painter() *paint.Painter { return c.painter }

// Window returns the current window rectangle.
func (c *Context) Window() sdfui.Rect { return c.window }

// LoadFont adds a TTF or OTF font to the pool and returns its id.
func (c *Context) LoadFont(data []byte) (uint32, error) {
	return c.pool.Load(data)
}

// SetForceRedraw makes every frame repaint the whole window, for hosts
// that cannot retain the previous frame buffer.
func (c *Context) SetForceRedraw(force bool) { c.forceRedraw = force }

// Resize changes the window size. The current layout is invalidated and
// the next frame repaints everything.
func (c *Context) Resize(size sdfui.Point) {
	c.window = sdfui.RectFromSize(size)
	c.painter = paint.NewPainter(c.pool, size)
	c.tree.MarkAllDirty()
}

// Frame runs one frame: dirty propagation, layout, painting, and shape
// compilation, then drains the glyph work the painted text queued.
func (c *Context) Frame() FrameOutput {
	c.painter.Reset()
	if c.forceRedraw {
		c.tree.MarkAllDirty()
	}

	redraw := c.tree.Frame(c.painter, c.window)
	program := c.compiler.CompileFrame(c.painter.Shapes(), redraw)

	return FrameOutput{
		Program:      program,
		GlyphUploads: c.pool.Rasterize(c.glyphBudget),
		RemovedFonts: c.pool.RemovedFonts(),
	}
}

// Close releases the worker pool. The Context is unusable afterwards.
func (c *Context) Close() {
	if c.workers != nil {
		c.workers.Close()
		c.workers = nil
	}
}
