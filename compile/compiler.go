package compile

import (
	sdfui "github.com/gogpu/sdfui"
	"github.com/gogpu/sdfui/paint"
	"github.com/gogpu/sdfui/shape"
)

// Atlas resolves glyphs to their slot in the GPU glyph atlas. The text
// package provides the production implementation.
type Atlas interface {
	// GlyphSlot returns the atlas slot of a glyph. Returns false while
	// the glyph has not been rasterized yet; looking it up queues it.
	GlyphSlot(font uint32, ch rune) (uint32, bool)
}

// operand is one entry of the per-shape evaluation stack: a shape not
// yet written to a register, or the register holding an intermediate.
type operand struct {
	leaf     shape.BasicShape
	register uint32
	inReg    bool
}

// shapeCompiler lowers a single shape program. Scoped to one shape,
// never reused.
type shapeCompiler struct {
	atlas     Atlas
	out       []Command
	stack     []operand
	transform sdfui.Matrix
	used      uint32
	highWater uint32
}

// compileShape lowers one shape layer to commands. Returns the command
// sequence, the scratch register high-water mark, and false if the shape
// compiles to nothing this frame (missing glyph, malformed program).
func compileShape(s paint.ShapeToDraw, atlas Atlas) ([]Command, uint32, bool) {
	if s.Fill == nil || !s.Fill.Visible() {
		return nil, 0, false
	}

	c := &shapeCompiler{atlas: atlas, transform: sdfui.Identity()}

	for _, tok := range s.Shape {
		switch t := tok.(type) {
		case shape.BasicShape:
			c.stack = append(c.stack, operand{leaf: t})
		case shape.Operator:
			if !c.apply(t) {
				return nil, 0, false
			}
		}
	}

	if len(c.stack) != 1 {
		sdfui.Logger().Warn("shape program does not reduce to one value",
			"stack", len(c.stack), "tokens", len(s.Shape))
		return nil, 0, false
	}

	// The surviving value ends up in register 1, drawing it there now if
	// it never needed a register of its own.
	top := c.stack[0]
	if !top.inReg {
		if !c.emitDraw(top.leaf, OperationReplace, 0, 1) {
			return nil, 0, false
		}
		c.highWater = max(c.highWater, 1)
	}

	if !c.transform.IsIdentity() {
		c.out = append(c.out, transformCommand(sdfui.Identity()))
	}

	// Hard clip: AND the clip rectangle field into the result, then
	// composite into the frame accumulator.
	c.out = append(c.out, Command{
		Opcode:      OpDrawRectangle,
		StrokeWidth: -1,
		Slots: [4][4]float32{
			{s.Clip.X, s.Clip.Y, s.Clip.X + s.Clip.W, s.Clip.Y + s.Clip.H},
		},
		Operation: OperationAnd,
		Target:    1,
	})
	c.out = append(c.out, loadCommand(1, OperationOr, 0, 0))

	c.out = append(c.out, Command{
		Opcode:      OpSetBlendMode,
		StrokeWidth: -1,
		Slots:       [4][4]float32{{float32(s.Blend)}},
		Operation:   OperationNone,
	})
	c.out = append(c.out, fillCommand(s.Fill))

	return c.out, c.highWater, true
}

// apply reduces one operator against the evaluation stack.
func (c *shapeCompiler) apply(op shape.Operator) bool {
	if op.Kind == shape.OpNot {
		if len(c.stack) < 1 {
			return false
		}
		top := &c.stack[len(c.stack)-1]
		if top.inReg {
			c.out = append(c.out, loadCommand(top.register, OperationNeg, 0, top.register))
			return true
		}
		c.used++
		c.highWater = max(c.highWater, c.used)
		if !c.emitDraw(top.leaf, OperationNeg, 0, c.used) {
			return false
		}
		*top = operand{register: c.used, inReg: true}
		return true
	}

	operation, param := binaryOperation(op)
	if len(c.stack) < 2 {
		return false
	}
	rhs := c.stack[len(c.stack)-1]
	lhs := c.stack[len(c.stack)-2]
	c.stack = c.stack[:len(c.stack)-2]

	switch {
	case !lhs.inReg && !rhs.inReg:
		c.used++
		c.highWater = max(c.highWater, c.used)
		if !c.emitDraw(lhs.leaf, OperationReplace, 0, c.used) {
			return false
		}
		if !c.emitDraw(rhs.leaf, operation, param, c.used) {
			return false
		}
		c.stack = append(c.stack, operand{register: c.used, inReg: true})

	case lhs.inReg && !rhs.inReg:
		if !c.emitDraw(rhs.leaf, operation, param, lhs.register) {
			return false
		}
		c.stack = append(c.stack, lhs)

	case !lhs.inReg && rhs.inReg:
		// The committed value is the right operand here, so the
		// operation runs with its operands swapped. Commutative ops
		// don't care; the rest have an exact reversed form.
		operation, param, negateFirst := reverseOperation(operation, param)
		if negateFirst {
			c.out = append(c.out, loadCommand(rhs.register, OperationNeg, 0, rhs.register))
		}
		if !c.emitDraw(lhs.leaf, operation, param, rhs.register) {
			return false
		}
		c.stack = append(c.stack, rhs)

	default:
		lo, hi := lhs.register, rhs.register
		if hi < lo {
			lo, hi = hi, lo
		}
		c.used--
		c.out = append(c.out, loadCommand(hi, operation, param, lo))
		c.stack = append(c.stack, operand{register: lo, inReg: true})
	}
	return true
}

// emitDraw appends the draw command for a leaf, switching the active
// transform first when needed. Returns false on an unresolvable glyph.
func (c *shapeCompiler) emitDraw(b shape.BasicShape, op Operation, param float32, target uint32) bool {
	if c.transform != b.Transform {
		c.transform = b.Transform
		c.out = append(c.out, transformCommand(b.Transform))
	}
	opcode, slots, ok := c.encodePrimitive(b.Data)
	if !ok {
		return false
	}
	c.out = append(c.out, Command{
		Opcode:      opcode,
		StrokeWidth: b.StrokeWidth(),
		Param:       param,
		Slots:       slots,
		Operation:   op,
		Target:      target,
	})
	return true
}

func (c *shapeCompiler) encodePrimitive(p shape.Primitive) (Opcode, [4][4]float32, bool) {
	switch d := p.(type) {
	case shape.Circle:
		return OpDrawCircle, [4][4]float32{
			{d.Center.X, d.Center.Y, d.Radius},
		}, true
	case shape.Triangle:
		return OpDrawTriangle, [4][4]float32{
			{d.A.X, d.A.Y, d.B.X, d.B.Y},
			{d.C.X, d.C.Y},
		}, true
	case shape.Rectangle:
		return OpDrawRectangle, [4][4]float32{
			{d.LT.X, d.LT.Y, d.RB.X, d.RB.Y},
			{d.Rounding[0], d.Rounding[1], d.Rounding[2], d.Rounding[3]},
		}, true
	case shape.HalfPlane:
		return OpDrawHalfPlane, [4][4]float32{
			{d.A.X, d.A.Y, d.B.X, d.B.Y},
		}, true
	case shape.QuadBezierPlane:
		return OpDrawQuadPlane, [4][4]float32{
			{d.A.X, d.A.Y, d.B.X, d.B.Y},
			{d.C.X, d.C.Y},
		}, true
	case shape.SDFTexture:
		return OpDrawSDFTexture, [4][4]float32{
			{d.LT.X, d.LT.Y, d.RB.X, d.RB.Y},
			{float32(d.Texture)},
		}, true
	case shape.Glyph:
		if c.atlas == nil {
			return OpNone, [4][4]float32{}, false
		}
		slot, ok := c.atlas.GlyphSlot(d.Font, d.Char)
		if !ok {
			return OpNone, [4][4]float32{}, false
		}
		return OpDrawChar, [4][4]float32{
			{d.Pos.X, d.Pos.Y, d.Size, float32(slot)},
		}, true
	default:
		return OpNone, [4][4]float32{}, false
	}
}

func binaryOperation(op shape.Operator) (Operation, float32) {
	switch op.Kind {
	case shape.OpAnd:
		return OperationAnd, 0
	case shape.OpOr:
		return OperationOr, 0
	case shape.OpMinus:
		return OperationSub, 0
	case shape.OpXor:
		return OperationXor, 0
	case shape.OpLerp:
		return OperationLerp, op.Param
	case shape.OpSmoothStep:
		return OperationSmoothStep, op.Param
	case shape.OpSigmoid:
		return OperationSigmoid, op.Param
	default:
		return OperationNone, 0
	}
}

// reverseOperation returns the operation computing op(a, b) when the
// register holds b and the incoming value is a. Sub has no reversed
// form of its own: max(a, -b) is reached by negating the register and
// intersecting. The blend curves flip their parameter: smoothstep is
// symmetric around t = 1/2 and the sigmoid around t = 0.
func reverseOperation(op Operation, param float32) (Operation, float32, bool) {
	switch op {
	case OperationSub:
		return OperationAnd, 0, true
	case OperationLerp:
		return OperationLerp, 1 - param, false
	case OperationSmoothStep:
		return OperationSmoothStep, 1 - param, false
	case OperationSigmoid:
		return OperationSigmoid, -param, false
	default:
		return op, param, false
	}
}

// loadCommand reloads register src and merges it into target via op.
func loadCommand(src uint32, op Operation, param float32, target uint32) Command {
	return Command{
		Opcode:      OpLoad,
		StrokeWidth: -1,
		Param:       param,
		Slots:       [4][4]float32{{float32(src)}},
		Operation:   op,
		Target:      target,
	}
}

// transformCommand sets the active 3x3 transform. The 2x3 affine matrix
// extends with the implicit bottom row (0 0 1); slot order is row-major.
func transformCommand(m sdfui.Matrix) Command {
	return Command{
		Opcode:      OpSetTransform,
		StrokeWidth: -1,
		Slots: [4][4]float32{
			{m.A, m.B, m.C, m.D},
			{m.E, m.F, 0, 0},
			{1},
		},
		Operation: OperationNone,
	}
}

// fillCommand encodes the fill mode of a finished shape. Colors are
// premultiplied here; the shader works in premultiplied alpha.
func fillCommand(f shape.FillMode) Command {
	cmd := Command{StrokeWidth: -1, Operation: OperationNone}
	switch fill := f.(type) {
	case shape.Solid:
		c := fill.Color.Premultiply()
		cmd.Opcode = OpFill
		cmd.Slots = [4][4]float32{{c.R, c.G, c.B, c.A}}
	case shape.LinearGradient:
		from := fill.From.Premultiply()
		to := fill.To.Premultiply()
		cmd.Opcode = OpFillLinearGradient
		cmd.Slots = [4][4]float32{
			{from.R, from.G, from.B, from.A},
			{to.R, to.G, to.B, to.A},
			{fill.Start.X, fill.Start.Y, fill.End.X, fill.End.Y},
		}
	case shape.RadialGradient:
		inner := fill.Inner.Premultiply()
		outer := fill.Outer.Premultiply()
		cmd.Opcode = OpFillRadialGradient
		cmd.Slots = [4][4]float32{
			{inner.R, inner.G, inner.B, inner.A},
			{outer.R, outer.G, outer.B, outer.A},
			{fill.Center.X, fill.Center.Y, fill.Radius},
		}
	case shape.Texture:
		cmd.Opcode = OpFillTexture
		cmd.Slots = [4][4]float32{
			{fill.LT.X, fill.LT.Y, fill.RB.X, fill.RB.Y},
			{fill.TexLT.X, fill.TexLT.Y, fill.TexRB.X, fill.TexRB.Y},
			{float32(fill.Texture)},
		}
	}
	return cmd
}
