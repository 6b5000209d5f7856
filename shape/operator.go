package shape

import "math"

// OperatorKind identifies a boolean or interpolating SDF combinator.
type OperatorKind uint8

// Operator kinds. And through Xor are the boolean combinators, Not is
// the only unary operator, and Lerp through Sigmoid interpolate between
// two distance fields using their parameter.
const (
	OpAnd OperatorKind = iota
	OpOr
	OpMinus
	OpXor
	OpNot
	OpLerp
	OpSmoothStep
	OpSigmoid
)

// String returns the name of the operator kind.
func (k OperatorKind) String() string {
	switch k {
	case OpAnd:
		return "And"
	case OpOr:
		return "Or"
	case OpMinus:
		return "Minus"
	case OpXor:
		return "Xor"
	case OpNot:
		return "Not"
	case OpLerp:
		return "Lerp"
	case OpSmoothStep:
		return "SmoothStep"
	case OpSigmoid:
		return "Sigmoid"
	default:
		return "Unknown"
	}
}

// Operator is one combinator token in a postfix shape program. Param is
// only meaningful for the interpolating kinds.
type Operator struct {
	Kind  OperatorKind
	Param float32
}

// And intersects two shapes.
func And() Operator { return Operator{Kind: OpAnd} }

// Or unions two shapes.
func Or() Operator { return Operator{Kind: OpOr} }

// Minus subtracts the right shape from the left.
func Minus() Operator { return Operator{Kind: OpMinus} }

// Xor keeps the regions covered by exactly one of the two shapes.
func Xor() Operator { return Operator{Kind: OpXor} }

// Not inverts a shape.
func Not() Operator { return Operator{Kind: OpNot} }

// Lerp linearly interpolates between two shapes at t.
func Lerp(t float32) Operator { return Operator{Kind: OpLerp, Param: t} }

// SmoothStep interpolates between two shapes with a smoothstep curve at t.
func SmoothStep(t float32) Operator { return Operator{Kind: OpSmoothStep, Param: t} }

// Sigmoid interpolates between two shapes with a sigmoid curve at t.
func Sigmoid(t float32) Operator { return Operator{Kind: OpSigmoid, Param: t} }

// Unary reports whether the operator consumes a single operand.
func (o Operator) Unary() bool { return o.Kind == OpNot }

func sigmoid(t float32) float32 {
	return 1 / (1 + float32(math.Exp(float64(t))))
}
