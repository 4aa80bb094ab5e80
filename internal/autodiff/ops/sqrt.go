package ops

import "github.com/born-ml/vizml/internal/tensor"

// SqrtOp represents element-wise square root: y = sqrt(x).
//
// Backward pass:
//   - d(sqrt(x))/dx = 1 / (2 * sqrt(x)) = 1 / (2 * y)
//
// Input values must be positive for a finite gradient.
type SqrtOp struct{}

// Kind returns Sqrt.
func (SqrtOp) Kind() Kind { return Sqrt }

// Symbol returns "√".
func (SqrtOp) Symbol() string { return "√" }

// Arity returns 1.
func (SqrtOp) Arity() int { return 1 }

// Forward computes sqrt(x).
func (op SqrtOp) Forward(inputs []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	return tensor.Sqrt(inputs[0]), nil
}

// Backward computes grad_input = grad_output / (2 * output).
func (op SqrtOp) Backward(outputGrad *tensor.Tensor, inputs []*tensor.Tensor, output *tensor.Tensor) ([]*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	grad, err := tensor.Div(outputGrad, tensor.Scale(output, 2))
	if err != nil {
		return nil, err
	}
	return []*tensor.Tensor{grad}, nil
}
