package ops

import "github.com/born-ml/vizml/internal/tensor"

// DivOp represents an element-wise division operation: output = a / b.
//
// Backward pass:
//   - d(a/b)/da = 1/b, so grad_a = outputGrad * (1/b)
//   - d(a/b)/db = -a/b², so grad_b = outputGrad * (-a/b²)
type DivOp struct{}

// Kind returns Div.
func (DivOp) Kind() Kind { return Div }

// Symbol returns "/".
func (DivOp) Symbol() string { return "/" }

// Arity returns 2.
func (DivOp) Arity() int { return 2 }

// Forward computes a / b.
func (op DivOp) Forward(inputs []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	return tensor.Div(inputs[0], inputs[1])
}

// Backward computes input gradients for division.
func (op DivOp) Backward(outputGrad *tensor.Tensor, inputs []*tensor.Tensor, _ *tensor.Tensor) ([]*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	a, b := inputs[0], inputs[1]

	// grad_a = outputGrad * (1/b)
	recip := b.Map(func(v float64) float64 { return 1 / v })
	gradA, err := tensor.Mul(outputGrad, recip)
	if err != nil {
		return nil, err
	}

	// grad_b = outputGrad * (-a/b²)
	bSquared, err := tensor.Mul(b, b)
	if err != nil {
		return nil, err
	}
	local, err := tensor.Div(tensor.Neg(a), bSquared)
	if err != nil {
		return nil, err
	}
	gradB, err := tensor.Mul(outputGrad, local)
	if err != nil {
		return nil, err
	}

	return reducePair(gradA, gradB, a, b)
}
