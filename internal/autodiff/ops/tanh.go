package ops

import "github.com/born-ml/vizml/internal/tensor"

// TanhOp represents the hyperbolic tangent activation: tanh(x) = (exp(x) - exp(-x)) / (exp(x) + exp(-x)).
type TanhOp struct{}

// Kind returns Tanh.
func (TanhOp) Kind() Kind { return Tanh }

// Symbol returns "tanh".
func (TanhOp) Symbol() string { return "tanh" }

// Arity returns 1.
func (TanhOp) Arity() int { return 1 }

// Forward computes tanh(x).
func (op TanhOp) Forward(inputs []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	return tensor.Tanh(inputs[0]), nil
}

// Backward computes the gradient for tanh.
//
// For tanh(x):
// d(tanh(x))/dx = 1 - tanh²(x)
//
// Since we have the output tanh(x) already computed:
// grad_input = grad_output * (1 - output²).
func (op TanhOp) Backward(outputGrad *tensor.Tensor, inputs []*tensor.Tensor, output *tensor.Tensor) ([]*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	tanhDerivative := output.Map(func(y float64) float64 { return 1 - y*y })
	grad, err := tensor.Mul(outputGrad, tanhDerivative)
	if err != nil {
		return nil, err
	}
	return []*tensor.Tensor{grad}, nil
}
