package ops

import "github.com/born-ml/vizml/internal/tensor"

// IdentityOp passes its input through unchanged. Named outputs are built on it.
type IdentityOp struct{}

// Kind returns Identity.
func (IdentityOp) Kind() Kind { return Identity }

// Symbol returns "id".
func (IdentityOp) Symbol() string { return "id" }

// Arity returns 1.
func (IdentityOp) Arity() int { return 1 }

// Forward returns x.
func (op IdentityOp) Forward(inputs []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	return inputs[0], nil
}

// Backward returns the output gradient unchanged.
func (op IdentityOp) Backward(outputGrad *tensor.Tensor, inputs []*tensor.Tensor, _ *tensor.Tensor) ([]*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	return []*tensor.Tensor{outputGrad}, nil
}
