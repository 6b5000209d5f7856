package compile

import (
	sdfui "github.com/gogpu/sdfui"
	"github.com/gogpu/sdfui/internal/parallel"
	"github.com/gogpu/sdfui/paint"
)

// DefaultRegisterCeiling is the register depth the reference compute
// backend allocates per pixel. Shapes needing more are dropped.
const DefaultRegisterCeiling = 64

// Program is one frame's compiled output.
type Program struct {
	// Commands is the GPU command stream, in execution order.
	Commands []Command
	// RegisterDepth is the register count the backend must provide,
	// including the accumulator.
	RegisterDepth uint32
	// Redraw is the changed region, nil when nothing changed and the
	// backend should skip the frame entirely.
	Redraw *sdfui.Rect
}

// Compiler compiles painted shapes into Programs. Safe for use from a
// single goroutine; the parallel stage is internal.
type Compiler struct {
	atlas   Atlas
	ceiling uint32
	pool    *parallel.WorkerPool
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithRegisterCeiling sets the register depth limit, including the
// accumulator. Shapes that would exceed it are dropped with a warning.
func WithRegisterCeiling(n uint32) Option {
	return func(c *Compiler) { c.ceiling = n }
}

// WithWorkerPool runs per-shape compilation on the given pool instead
// of inline.
func WithWorkerPool(p *parallel.WorkerPool) Option {
	return func(c *Compiler) { c.pool = p }
}

// NewCompiler creates a compiler. atlas may be nil when no text is
// drawn.
func NewCompiler(atlas Atlas, opts ...Option) *Compiler {
	c := &Compiler{atlas: atlas, ceiling: DefaultRegisterCeiling}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type compiled struct {
	commands []Command
	scratch  uint32
	ok       bool
}

// CompileFrame compiles the frame's shapes against the redraw region.
//
// Shapes are compiled in reverse draw order so the layer drawn last is
// composited first; the accumulator keeps the first value it receives
// per pixel, which makes the last draw call the visually topmost. The
// per-shape stage runs as a parallel fork-join map, joined back in
// reverse draw order regardless of completion order.
func (c *Compiler) CompileFrame(shapes []paint.ShapeToDraw, redraw *sdfui.Rect) Program {
	if redraw == nil {
		return Program{}
	}
	area := *redraw

	results := make([]compiled, len(shapes))
	jobs := make([]func(), 0, len(shapes))
	for i := range shapes {
		idx := i
		jobs = append(jobs, func() {
			s := shapes[idx]
			if !s.VisibleIn(area) {
				return
			}
			cmds, scratch, ok := compileShape(s, c.atlas)
			results[idx] = compiled{commands: cmds, scratch: scratch, ok: ok}
		})
	}
	if c.pool != nil {
		c.pool.ExecuteAll(jobs)
	} else {
		for _, job := range jobs {
			job()
		}
	}

	prog := Program{Redraw: redraw}
	var maxScratch uint32
	for i := len(results) - 1; i >= 0; i-- {
		r := results[i]
		if !r.ok {
			continue
		}
		if r.scratch+1 > c.ceiling {
			sdfui.Logger().Warn("shape exceeds register ceiling, dropped",
				"depth", r.scratch+1, "ceiling", c.ceiling)
			continue
		}
		maxScratch = max(maxScratch, r.scratch)
		prog.Commands = append(prog.Commands, r.commands...)
	}
	if len(prog.Commands) > 0 {
		prog.RegisterDepth = maxScratch + 1
	}

	sdfui.Logger().Debug("frame compiled",
		"shapes", len(shapes), "commands", len(prog.Commands), "depth", prog.RegisterDepth)
	return prog
}
