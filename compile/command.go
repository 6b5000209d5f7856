// Package compile turns painted shapes into a linear GPU command
// program.
//
// Each shape's postfix program is lowered onto a virtual register stack:
// register 0 is the persistent frame accumulator, registers 1 and up are
// per-shape scratch. The compiler tracks the scratch high-water mark so
// the backend can size the GPU-side stack, and drops any shape whose
// depth would exceed the configured ceiling.
package compile

// Opcode identifies one GPU command. The numeric values are part of the
// wire encoding consumed by the shader.
type Opcode uint32

const (
	// OpNone does nothing.
	OpNone Opcode = iota
	// OpDrawCircle draws a circle. Slots: center.x, center.y, radius.
	OpDrawCircle
	// OpDrawTriangle draws a triangle. Slots: three corner points.
	OpDrawTriangle
	// OpDrawRectangle draws a rounded rectangle. Slots: lt, rb, then the
	// four corner roundings.
	OpDrawRectangle
	// OpDrawHalfPlane draws a half plane. Slots: two line points.
	OpDrawHalfPlane
	// OpDrawQuadPlane draws a quadratic bezier half plane. Slots: three
	// control points.
	OpDrawQuadPlane
	// OpDrawSDFTexture samples an SDF texture. Slots: lt, rb, texture id.
	OpDrawSDFTexture
	// OpDrawChar draws one glyph from the atlas. Slots: position, font
	// size, atlas slot id.
	OpDrawChar
	// OpFill fills the accumulated field with a solid color.
	// Slots: premultiplied r, g, b, a.
	OpFill
	// OpFillLinearGradient fills with a linear gradient. Slots: two
	// premultiplied colors, then start and end points.
	OpFillLinearGradient
	// OpFillRadialGradient fills with a radial gradient. Slots: two
	// premultiplied colors, then center and radius.
	OpFillRadialGradient
	// OpFillTexture fills by sampling a color texture. Slots: screen lt,
	// rb, texture lt, rb, texture id.
	OpFillTexture
	// OpSetTransform sets the active 3x3 transform, row-major across the
	// slots.
	OpSetTransform
	// OpSetBlendMode sets the blend mode for the following fill.
	// Slots: the mode as a u32.
	OpSetBlendMode
	// OpLoad reloads a register value as the operand of Operation.
	// Slots: the source register index as a u32.
	OpLoad
)

// String returns the name of the opcode.
func (o Opcode) String() string {
	switch o {
	case OpNone:
		return "None"
	case OpDrawCircle:
		return "DrawCircle"
	case OpDrawTriangle:
		return "DrawTriangle"
	case OpDrawRectangle:
		return "DrawRectangle"
	case OpDrawHalfPlane:
		return "DrawHalfPlane"
	case OpDrawQuadPlane:
		return "DrawQuadPlane"
	case OpDrawSDFTexture:
		return "DrawSDFTexture"
	case OpDrawChar:
		return "DrawChar"
	case OpFill:
		return "Fill"
	case OpFillLinearGradient:
		return "FillLinearGradient"
	case OpFillRadialGradient:
		return "FillRadialGradient"
	case OpFillTexture:
		return "FillTexture"
	case OpSetTransform:
		return "SetTransform"
	case OpSetBlendMode:
		return "SetBlendMode"
	case OpLoad:
		return "Load"
	default:
		return "Unknown"
	}
}

// Operation combines the field value a command produces with the value
// already held in the target register. The numeric values are part of
// the wire encoding.
type Operation uint32

const (
	// OperationNone leaves the target untouched.
	OperationNone Operation = iota
	// OperationReplace overwrites the target.
	OperationReplace
	// OperationReplaceWhenInside overwrites where the value is inside.
	OperationReplaceWhenInside
	// OperationReplaceWhenOutside overwrites where the value is outside.
	OperationReplaceWhenOutside
	// OperationAnd intersects: max(lhs, rhs).
	OperationAnd
	// OperationOr unions: min(lhs, rhs).
	OperationOr
	// OperationXor keeps exactly one: lhs + rhs - 2*min(lhs, rhs).
	OperationXor
	// OperationSub subtracts: max(lhs, -rhs).
	OperationSub
	// OperationNeg negates the value.
	OperationNeg
	// OperationLerp blends linearly by the command parameter.
	OperationLerp
	// OperationSmoothStep blends by a smoothstep of the parameter.
	OperationSmoothStep
	// OperationSigmoid blends by a sigmoid of the parameter.
	OperationSigmoid
)

// String returns the name of the operation.
func (o Operation) String() string {
	switch o {
	case OperationNone:
		return "None"
	case OperationReplace:
		return "Replace"
	case OperationReplaceWhenInside:
		return "ReplaceWhenInside"
	case OperationReplaceWhenOutside:
		return "ReplaceWhenOutside"
	case OperationAnd:
		return "And"
	case OperationOr:
		return "Or"
	case OperationXor:
		return "Xor"
	case OperationSub:
		return "Sub"
	case OperationNeg:
		return "Neg"
	case OperationLerp:
		return "Lerp"
	case OperationSmoothStep:
		return "SmoothStep"
	case OperationSigmoid:
		return "Sigmoid"
	default:
		return "Unknown"
	}
}

// Command is one fixed-layout GPU instruction. Slots carry the
// opcode-specific payload; Target is the register the result merges
// into via Operation.
type Command struct {
	// Opcode selects what the command does.
	Opcode Opcode
	// StrokeWidth is the outline width for draw opcodes, -1 for a fill.
	StrokeWidth float32
	// Param is the interpolation parameter for Lerp-family operations.
	Param float32
	// SmoothFunc selects an optional smoothing function, 0 for none.
	SmoothFunc uint32
	// Slots carries the opcode payload.
	Slots [4][4]float32
	// Operation combines the produced value into Target.
	Operation Operation
	// SmoothParam is the parameter of SmoothFunc.
	SmoothParam float32
	// Target is the register index the result merges into.
	Target uint32
}
