package ops

import "github.com/born-ml/vizml/internal/tensor"

// SigmoidOp represents the sigmoid activation: σ(x) = 1 / (1 + exp(-x)).
type SigmoidOp struct{}

// Kind returns Sigmoid.
func (SigmoidOp) Kind() Kind { return Sigmoid }

// Symbol returns "σ".
func (SigmoidOp) Symbol() string { return "σ" }

// Arity returns 1.
func (SigmoidOp) Arity() int { return 1 }

// Forward computes σ(x).
func (op SigmoidOp) Forward(inputs []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	return tensor.Sigmoid(inputs[0]), nil
}

// Backward computes the gradient for sigmoid.
//
// For σ(x) = 1 / (1 + exp(-x)):
// dσ/dx = σ(x) * (1 - σ(x))
//
// Since we have the output σ(x) already computed, we can use it:
// grad_input = grad_output * output * (1 - output).
func (op SigmoidOp) Backward(outputGrad *tensor.Tensor, inputs []*tensor.Tensor, output *tensor.Tensor) ([]*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	derivative := output.Map(func(s float64) float64 { return s * (1 - s) })
	grad, err := tensor.Mul(outputGrad, derivative)
	if err != nil {
		return nil, err
	}
	return []*tensor.Tensor{grad}, nil
}
