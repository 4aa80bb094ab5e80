package ops

import "github.com/born-ml/vizml/internal/tensor"

// TransposeOp swaps the two axes of a matrix.
//
// Forward:
//
//	output = input^T
//
// Backward:
//
//	∂L/∂input = (∂L/∂output)^T
//
// Swapping two axes is its own inverse, so the gradient is transposed back.
// Only 2-D inputs are accepted.
type TransposeOp struct{}

// Kind returns Transpose.
func (TransposeOp) Kind() Kind { return Transpose }

// Symbol returns "ᵀ".
func (TransposeOp) Symbol() string { return "ᵀ" }

// Arity returns 1.
func (TransposeOp) Arity() int { return 1 }

// Forward computes x^T.
func (op TransposeOp) Forward(inputs []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	return tensor.Transpose(inputs[0])
}

// Backward transposes the output gradient.
func (op TransposeOp) Backward(outputGrad *tensor.Tensor, inputs []*tensor.Tensor, _ *tensor.Tensor) ([]*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	grad, err := tensor.Transpose(outputGrad)
	if err != nil {
		return nil, err
	}
	return []*tensor.Tensor{grad}, nil
}
