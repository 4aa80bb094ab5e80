package ops

import "github.com/born-ml/vizml/internal/tensor"

// SubOp represents an element-wise subtraction operation: output = a - b.
//
// Backward pass:
//   - d(a-b)/da = 1, so grad_a = outputGrad
//   - d(a-b)/db = -1, so grad_b = -outputGrad
type SubOp struct{}

// Kind returns Sub.
func (SubOp) Kind() Kind { return Sub }

// Symbol returns "-".
func (SubOp) Symbol() string { return "-" }

// Arity returns 2.
func (SubOp) Arity() int { return 2 }

// Forward computes a - b.
func (op SubOp) Forward(inputs []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	return tensor.Sub(inputs[0], inputs[1])
}

// Backward computes input gradients for subtraction.
func (op SubOp) Backward(outputGrad *tensor.Tensor, inputs []*tensor.Tensor, _ *tensor.Tensor) ([]*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	return reducePair(outputGrad, tensor.Neg(outputGrad), inputs[0], inputs[1])
}
