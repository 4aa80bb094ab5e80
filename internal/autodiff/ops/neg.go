package ops

import "github.com/born-ml/vizml/internal/tensor"

// NegativeOp represents element-wise negation: output = -x.
//
// Backward pass:
//   - d(-x)/dx = -1, so grad_x = -outputGrad
type NegativeOp struct{}

// Kind returns Negative.
func (NegativeOp) Kind() Kind { return Negative }

// Symbol returns "neg".
func (NegativeOp) Symbol() string { return "neg" }

// Arity returns 1.
func (NegativeOp) Arity() int { return 1 }

// Forward computes -x.
func (op NegativeOp) Forward(inputs []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	return tensor.Neg(inputs[0]), nil
}

// Backward computes the input gradient for negation.
func (op NegativeOp) Backward(outputGrad *tensor.Tensor, inputs []*tensor.Tensor, _ *tensor.Tensor) ([]*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	return []*tensor.Tensor{tensor.Neg(outputGrad)}, nil
}
