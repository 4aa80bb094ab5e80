package ops

import "github.com/born-ml/vizml/internal/tensor"

// AddOp represents an element-wise addition operation: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
//
// If broadcasting was used in the forward pass, gradients are reduced
// (summed) along the broadcast dimensions to match input shapes.
type AddOp struct{}

// Kind returns Add.
func (AddOp) Kind() Kind { return Add }

// Symbol returns "+".
func (AddOp) Symbol() string { return "+" }

// Arity returns 2.
func (AddOp) Arity() int { return 2 }

// Forward computes a + b.
func (op AddOp) Forward(inputs []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	return tensor.Add(inputs[0], inputs[1])
}

// Backward computes input gradients for addition.
// Since d(a+b)/da = d(a+b)/db = 1, the gradient flows equally to both inputs.
func (op AddOp) Backward(outputGrad *tensor.Tensor, inputs []*tensor.Tensor, _ *tensor.Tensor) ([]*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	return reducePair(outputGrad, outputGrad, inputs[0], inputs[1])
}
