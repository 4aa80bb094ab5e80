package ops

import "github.com/born-ml/vizml/internal/tensor"

// ExpOp represents the exponential operation: y = exp(x).
//
// Backward pass:
//   - d(exp(x))/dx = exp(x) = y
//   - grad_input = grad_output * output
type ExpOp struct{}

// Kind returns Exp.
func (ExpOp) Kind() Kind { return Exp }

// Symbol returns "exp".
func (ExpOp) Symbol() string { return "exp" }

// Arity returns 1.
func (ExpOp) Arity() int { return 1 }

// Forward computes exp(x).
func (op ExpOp) Forward(inputs []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	return tensor.Exp(inputs[0]), nil
}

// Backward computes input gradient for exp.
//
// Since d(exp(x))/dx = exp(x), and we already have exp(x) as output:
// grad_input = grad_output * output.
func (op ExpOp) Backward(outputGrad *tensor.Tensor, inputs []*tensor.Tensor, output *tensor.Tensor) ([]*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	grad, err := tensor.Mul(outputGrad, output)
	if err != nil {
		return nil, err
	}
	return []*tensor.Tensor{grad}, nil
}
