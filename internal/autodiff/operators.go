package autodiff

import (
	"fmt"

	"github.com/born-ml/vizml/internal/autodiff/ops"
)

// Apply creates an Operation node for op over inputs and registers the new
// node as a consumer of every input, once per slot.
func Apply(op ops.Operation, inputs ...*Node) (*Node, error) {
	if op == nil {
		return nil, fmt.Errorf("autodiff: nil operation")
	}
	if len(inputs) != op.Arity() {
		return nil, fmt.Errorf("%s: %w: want %d, got %d", op.Kind(), ErrArity, op.Arity(), len(inputs))
	}
	for i, in := range inputs {
		if in == nil {
			return nil, fmt.Errorf("%s input %d: %w", op.Kind(), i, ErrNilNode)
		}
	}

	n := &Node{
		kind:   KindOperation,
		op:     op,
		inputs: append([]*Node(nil), inputs...),
	}
	for _, in := range inputs {
		in.consumers = append(in.consumers, n)
	}
	return n, nil
}

// Output wraps n in a named pass-through node shown as a graph output.
func Output(n *Node, name string) *Node {
	out := mustApply(ops.Identity, n)
	out.name = name
	out.output = true
	return out
}

// mustApply builds a catalog operation, panicking on nil operands.
func mustApply(kind ops.Kind, inputs ...*Node) *Node {
	n, err := Apply(ops.ForKind(kind), inputs...)
	if err != nil {
		panic(err.Error())
	}
	return n
}

// Add returns n + other.
func (n *Node) Add(other *Node) *Node { return mustApply(ops.Add, n, other) }

// Sub returns n - other.
func (n *Node) Sub(other *Node) *Node { return mustApply(ops.Sub, n, other) }

// Mul returns n * other (element-wise).
func (n *Node) Mul(other *Node) *Node { return mustApply(ops.Mul, n, other) }

// Div returns n / other.
func (n *Node) Div(other *Node) *Node { return mustApply(ops.Div, n, other) }

// Pow returns n ^ other.
func (n *Node) Pow(other *Node) *Node { return mustApply(ops.Pow, n, other) }

// MatMul returns the 2-D matrix product n @ other.
func (n *Node) MatMul(other *Node) *Node { return mustApply(ops.MatMul, n, other) }

// Neg returns -n.
func (n *Node) Neg() *Node { return mustApply(ops.Negative, n) }

// Log returns ln(n).
func (n *Node) Log() *Node { return mustApply(ops.Log, n) }

// Sigmoid returns 1 / (1 + exp(-n)).
func (n *Node) Sigmoid() *Node { return mustApply(ops.Sigmoid, n) }

// ReLU returns max(0, n).
func (n *Node) ReLU() *Node { return mustApply(ops.ReLU, n) }

// Exp returns exp(n).
func (n *Node) Exp() *Node { return mustApply(ops.Exp, n) }

// Tanh returns tanh(n).
func (n *Node) Tanh() *Node { return mustApply(ops.Tanh, n) }

// Sqrt returns sqrt(n).
func (n *Node) Sqrt() *Node { return mustApply(ops.Sqrt, n) }

// T returns the transpose of a 2-D n.
func (n *Node) T() *Node { return mustApply(ops.Transpose, n) }

// AddScalar returns n + v.
func (n *Node) AddScalar(v float64) *Node { return n.Add(Scalar(v)) }

// SubScalar returns n - v.
func (n *Node) SubScalar(v float64) *Node { return n.Sub(Scalar(v)) }

// MulScalar returns n * v.
func (n *Node) MulScalar(v float64) *Node { return n.Mul(Scalar(v)) }

// DivScalar returns n / v.
func (n *Node) DivScalar(v float64) *Node { return n.Div(Scalar(v)) }

// PowScalar returns n ^ v.
func (n *Node) PowScalar(v float64) *Node { return n.Pow(Scalar(v)) }

