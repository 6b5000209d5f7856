// Package sdfui is the core of a retained-mode UI toolkit rendered through
// composited signed distance fields.
//
// The toolkit keeps a widget tree between frames. Each frame it re-solves
// the screen-space rectangle of every dirty widget, replays the widgets'
// immediate-style draw calls, and compiles the resulting shape expressions
// into a linear GPU bytecode program with a bounded scratch-register depth.
//
// This root package holds the shared math and color types plus the module
// logger. The interesting machinery lives in the subpackages:
//
//   - layout:  widget tree, dirty tracking, and the layout solver
//   - shape:   the shape IR (postfix expressions over SDF primitives)
//   - paint:   the painter that records per-widget draw calls
//   - compile: the shape-to-bytecode compiler
//   - text:    glyph metrics and the frame-amortized SDF glyph atlas
//   - ui:      frame orchestration tying the pieces together
//   - render:  device/queue handoff and program upload descriptors
//   - backend/wgpu: the compute-shader evaluator for compiled programs
//
// Coordinates are float32 throughout: every value in this module
// ultimately lands in a GPU command payload of 32-bit floats.
package sdfui
