package ops

// Kind identifies an operation in the catalog.
type Kind uint8

// Operation kinds.
const (
	Identity Kind = iota
	Negative
	Log
	Sigmoid
	ReLU
	Exp
	Tanh
	Sqrt
	Transpose
	Add
	Sub
	Mul
	Div
	Pow
	MatMul
)

// String returns the operation name.
func (k Kind) String() string {
	switch k {
	case Identity:
		return "Identity"
	case Negative:
		return "Negative"
	case Log:
		return "Log"
	case Sigmoid:
		return "Sigmoid"
	case ReLU:
		return "ReLU"
	case Exp:
		return "Exp"
	case Tanh:
		return "Tanh"
	case Sqrt:
		return "Sqrt"
	case Transpose:
		return "Transpose"
	case Add:
		return "Add"
	case Sub:
		return "Sub"
	case Mul:
		return "Mul"
	case Div:
		return "Div"
	case Pow:
		return "Pow"
	case MatMul:
		return "MatMul"
	default:
		return "Unknown"
	}
}

// IsUnary reports whether the kind takes a single input.
func (k Kind) IsUnary() bool {
	return k <= Transpose
}
