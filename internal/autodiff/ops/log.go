package ops

import "github.com/born-ml/vizml/internal/tensor"

// LogOp represents element-wise natural logarithm: output = ln(x).
//
// Backward pass:
//   - d(ln(x))/dx = 1/x, so grad_x = outputGrad / x
//
// Input values must be positive; ln of a non-positive value is NaN or -Inf.
type LogOp struct{}

// Kind returns Log.
func (LogOp) Kind() Kind { return Log }

// Symbol returns "log".
func (LogOp) Symbol() string { return "log" }

// Arity returns 1.
func (LogOp) Arity() int { return 1 }

// Forward computes ln(x).
func (op LogOp) Forward(inputs []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	return tensor.Log(inputs[0]), nil
}

// Backward computes the input gradient for the logarithm.
func (op LogOp) Backward(outputGrad *tensor.Tensor, inputs []*tensor.Tensor, _ *tensor.Tensor) ([]*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	grad, err := tensor.Div(outputGrad, inputs[0])
	if err != nil {
		return nil, err
	}
	return []*tensor.Tensor{grad}, nil
}
