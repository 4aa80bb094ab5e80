package ops

import (
	"errors"
	"fmt"

	"github.com/born-ml/vizml/internal/tensor"
)

// ErrArity is returned when an operation receives the wrong number of inputs.
var ErrArity = errors.New("wrong number of inputs")

// checkInputs validates the input count for op.
func checkInputs(op Operation, inputs []*tensor.Tensor) error {
	if len(inputs) != op.Arity() {
		return fmt.Errorf("%s: %w: want %d, got %d", op.Kind(), ErrArity, op.Arity(), len(inputs))
	}
	for i, in := range inputs {
		if in == nil {
			return fmt.Errorf("%s: input %d is nil", op.Kind(), i)
		}
	}
	return nil
}

// reduceBroadcast reduces a gradient tensor to match the target shape.
// This is necessary when broadcasting was used in the forward pass.
//
// Example:
//
//	Forward: a[3,1] + b[3,4] -> c[3,4]  (a was broadcast along dim 1)
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 1)
func reduceBroadcast(grad *tensor.Tensor, targetShape tensor.Shape) (*tensor.Tensor, error) {
	if grad.Shape().Equal(targetShape) {
		return grad, nil
	}
	return tensor.SumTo(grad, targetShape)
}

// reducePair reduces two gradients to the shapes of a and b.
func reducePair(gradA, gradB *tensor.Tensor, a, b *tensor.Tensor) ([]*tensor.Tensor, error) {
	ra, err := reduceBroadcast(gradA, a.Shape())
	if err != nil {
		return nil, err
	}
	rb, err := reduceBroadcast(gradB, b.Shape())
	if err != nil {
		return nil, err
	}
	return []*tensor.Tensor{ra, rb}, nil
}

// mulAll multiplies tensors left to right with broadcasting.
func mulAll(ts ...*tensor.Tensor) (*tensor.Tensor, error) {
	result := ts[0]
	for _, t := range ts[1:] {
		var err error
		result, err = tensor.Mul(result, t)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
