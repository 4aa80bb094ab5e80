package ops

import "github.com/born-ml/vizml/internal/tensor"

// ReLUOp represents a ReLU (Rectified Linear Unit) activation: output = max(0, x).
//
// Backward pass:
//   - grad_x = outputGrad where output > 0, else 0
//
// The gradient is computed by creating a mask where output > 0, then
// multiplying the output gradient by this mask.
type ReLUOp struct{}

// Kind returns ReLU.
func (ReLUOp) Kind() Kind { return ReLU }

// Symbol returns "relu".
func (ReLUOp) Symbol() string { return "relu" }

// Arity returns 1.
func (ReLUOp) Arity() int { return 1 }

// Forward computes max(0, x).
func (op ReLUOp) Forward(inputs []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	return tensor.ReLU(inputs[0]), nil
}

// Backward computes the input gradient for ReLU.
func (op ReLUOp) Backward(outputGrad *tensor.Tensor, inputs []*tensor.Tensor, output *tensor.Tensor) ([]*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	mask := output.Map(func(v float64) float64 {
		if v > 0 {
			return 1
		}
		return 0
	})
	grad, err := tensor.Mul(outputGrad, mask)
	if err != nil {
		return nil, err
	}
	return []*tensor.Tensor{grad}, nil
}
