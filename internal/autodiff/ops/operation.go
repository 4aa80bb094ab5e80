// Package ops defines the operation catalog of the computation graph.
//
// Each operation is a stateless rule pair:
//   - Forward: maps input values to an output value
//   - Backward: maps the incoming gradient (plus forward values) to one
//     gradient per input, in input order
//
// Supported operations:
//   - Add: element-wise addition (d(a+b)/da = 1, d(a+b)/db = 1)
//   - Sub: element-wise subtraction (d(a-b)/da = 1, d(a-b)/db = -1)
//   - Mul: element-wise multiplication (d(a*b)/da = b, d(a*b)/db = a)
//   - Div: element-wise division (d(a/b)/da = 1/b, d(a/b)/db = -a/b²)
//   - Pow: element-wise power (d(a^b)/da = b*a^(b-1), d(a^b)/db = a^b*ln(a))
//   - MatMul: matrix multiplication (d(A@B)/dA = grad@B^T, d(A@B)/dB = A^T@grad)
//   - Negative, Log, Sigmoid, ReLU, Exp, Tanh, Sqrt: unary element-wise rules
//   - Transpose: matrix transpose (gradient is transposed back)
//   - Identity: pass-through used for named outputs
//
// Element-wise binary operations broadcast their inputs; their backward rules
// sum the gradient back to each input's shape.
package ops

import "github.com/born-ml/vizml/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
// Implementations hold no per-evaluation state: every value they need is
// passed in, so one Operation may serve any number of concurrent evaluations.
type Operation interface {
	// Kind returns the catalog entry this operation implements.
	Kind() Kind

	// Symbol returns the short display label (e.g. "+", "@", "σ").
	Symbol() string

	// Arity returns the number of inputs (1 or 2).
	Arity() int

	// Forward computes the output value from the input values.
	Forward(inputs []*tensor.Tensor) (*tensor.Tensor, error)

	// Backward computes gradients for inputs given the output gradient.
	// inputs and output are the values recorded by the forward pass.
	// Returns a slice of gradients corresponding to each input.
	//
	// Example for Add:
	//   inputs: [a, b]
	//   outputGrad: dL/d(a+b)
	//   returns: [dL/d(a+b), dL/d(a+b)] (gradient flows equally to both inputs)
	Backward(outputGrad *tensor.Tensor, inputs []*tensor.Tensor, output *tensor.Tensor) ([]*tensor.Tensor, error)
}
