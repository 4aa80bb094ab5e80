package ops

import "github.com/born-ml/vizml/internal/tensor"

// PowOp represents an element-wise power operation: output = a ^ b.
//
// Backward pass:
//   - d(a^b)/da = b * a^(b-1), so grad_a = outputGrad * b * a^(b-1)
//   - d(a^b)/db = a^b * ln(a), so grad_b = outputGrad * output * ln(a)
//
// grad_b is NaN wherever a <= 0, matching ln's domain.
type PowOp struct{}

// Kind returns Pow.
func (PowOp) Kind() Kind { return Pow }

// Symbol returns "^".
func (PowOp) Symbol() string { return "^" }

// Arity returns 2.
func (PowOp) Arity() int { return 2 }

// Forward computes a ^ b.
func (op PowOp) Forward(inputs []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	return tensor.Pow(inputs[0], inputs[1])
}

// Backward computes input gradients for exponentiation.
func (op PowOp) Backward(outputGrad *tensor.Tensor, inputs []*tensor.Tensor, output *tensor.Tensor) ([]*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	a, b := inputs[0], inputs[1]

	// grad_a = outputGrad * b * a^(b-1)
	bMinusOne := b.Map(func(v float64) float64 { return v - 1 })
	aPow, err := tensor.Pow(a, bMinusOne)
	if err != nil {
		return nil, err
	}
	gradA, err := mulAll(outputGrad, b, aPow)
	if err != nil {
		return nil, err
	}

	// grad_b = outputGrad * output * ln(a)
	gradB, err := mulAll(outputGrad, output, tensor.Log(a))
	if err != nil {
		return nil, err
	}

	return reducePair(gradA, gradB, a, b)
}
