package ops

import "github.com/born-ml/vizml/internal/tensor"

// MatMulOp represents a matrix multiplication operation: output = a @ b.
//
// Backward pass:
//   - d(A@B)/dA = outputGrad @ B^T
//   - d(A@B)/dB = A^T @ outputGrad
//
// Where @ denotes matrix multiplication and ^T denotes transpose.
type MatMulOp struct{}

// Kind returns MatMul.
func (MatMulOp) Kind() Kind { return MatMul }

// Symbol returns "@".
func (MatMulOp) Symbol() string { return "@" }

// Arity returns 2.
func (MatMulOp) Arity() int { return 2 }

// Forward computes a @ b.
func (op MatMulOp) Forward(inputs []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	return tensor.MatMul(inputs[0], inputs[1])
}

// Backward computes input gradients for matrix multiplication.
func (op MatMulOp) Backward(outputGrad *tensor.Tensor, inputs []*tensor.Tensor, _ *tensor.Tensor) ([]*tensor.Tensor, error) {
	if err := checkInputs(op, inputs); err != nil {
		return nil, err
	}
	a, b := inputs[0], inputs[1]

	// grad_a = outputGrad @ b^T
	bT, err := tensor.Transpose(b)
	if err != nil {
		return nil, err
	}
	gradA, err := tensor.MatMul(outputGrad, bT)
	if err != nil {
		return nil, err
	}

	// grad_b = a^T @ outputGrad
	aT, err := tensor.Transpose(a)
	if err != nil {
		return nil, err
	}
	gradB, err := tensor.MatMul(aT, outputGrad)
	if err != nil {
		return nil, err
	}

	return []*tensor.Tensor{gradA, gradB}, nil
}
