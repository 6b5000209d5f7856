package shape

// BlendMode selects how a finished shape layer is composited onto the
// frame. The numeric values are part of the GPU command encoding.
type BlendMode uint32

const (
	// BlendReplace overwrites the destination.
	BlendReplace BlendMode = iota
	// BlendAdd adds source and destination.
	BlendAdd
	// BlendMultiply multiplies source and destination.
	BlendMultiply
	// BlendSubtract subtracts the source from the destination.
	BlendSubtract
	// BlendDivide divides the destination by the source.
	BlendDivide
	// BlendMin keeps the smaller of source and destination.
	BlendMin
	// BlendMax keeps the larger of source and destination.
	BlendMax
	// BlendAlphaAdd composites the source over the destination weighted
	// by its alpha. This is the default mode.
	BlendAlphaAdd
)

// DefaultBlend is the blend mode used when none is set.
const DefaultBlend = BlendAlphaAdd

// String returns the name of the blend mode.
func (m BlendMode) String() string {
	switch m {
	case BlendReplace:
		return "Replace"
	case BlendAdd:
		return "Add"
	case BlendMultiply:
		return "Multiply"
	case BlendSubtract:
		return "Subtract"
	case BlendDivide:
		return "Divide"
	case BlendMin:
		return "Min"
	case BlendMax:
		return "Max"
	case BlendAlphaAdd:
		return "AlphaAdd"
	default:
		return "Unknown"
	}
}
