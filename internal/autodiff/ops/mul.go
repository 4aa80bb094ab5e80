package ops

import "github.com/born-ml/vizml/internal/tensor"

// MulOp represents an element-wise multiplication operation: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
type MulOp struct{}

// Kind returns Mul.
func (MulOp) Kind() Kind { return Mul }

// Symbol returns "*".
func (MulOp) Symbol() string { return "*" }

// Arity returns 2.
func (MulOp) Arity() int { return 2 }

// Forward computes a * b.
func (op MulOp) Forward(inputs []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	return tensor.Mul(inputs[0], inputs[1])
}

// Backward computes input gradients for multiplication.
func (op MulOp) Backward(outputGrad *tensor.Tensor, inputs []*tensor.Tensor, _ *tensor.Tensor) ([]*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	a, b := inputs[0], inputs[1]

	gradA, err := tensor.Mul(outputGrad, b)
	if err != nil {
		return nil, err
	}
	gradB, err := tensor.Mul(outputGrad, a)
	if err != nil {
		return nil, err
	}
	return reducePair(gradA, gradB, a, b)
}
