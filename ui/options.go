package ui

import (
	"github.com/gogpu/sdfui/compile"
	"github.com/gogpu/sdfui/text"
)

// Option configures a Context during creation.
type Option func(*options)

type options struct {
	registerCeiling uint32
	workers         int
	glyphBudget     int
	forceRedraw     bool
}

func defaultOptions() options {
	return options{
		registerCeiling: compile.DefaultRegisterCeiling,
		workers:         1,
		glyphBudget:     text.DefaultUploadBudget,
	}
}

// WithRegisterCeiling sets the register depth limit for compiled
// shapes, including the accumulator. Shapes exceeding it are dropped.
func WithRegisterCeiling(n uint32) Option {
	return func(o *options) { o.registerCeiling = n }
}

// WithWorkers sets the number of goroutines compiling shapes. Values
// below 2 keep compilation on the frame goroutine.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithGlyphBudget caps glyph rasterizations per frame and font.
func WithGlyphBudget(n int) Option {
	return func(o *options) { o.glyphBudget = n }
}

// WithForceRedraw repaints the whole window every frame instead of the
// dirty region.
func WithForceRedraw() Option {
	return func(o *options) { o.forceRedraw = true }
}
