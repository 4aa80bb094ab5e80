package tensor

import "fmt"

// Transpose swaps the two axes of a 2-D tensor.
func Transpose(t *Tensor) (*Tensor, error) {
	if len(t.shape) != 2 {
		return nil, fmt.Errorf("transpose: %w: expected 2-D tensor, got %v", ErrShapeMismatch, t.shape)
	}
	rows, cols := t.shape[0], t.shape[1]
	result := newTensor(Shape{cols, rows})
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			result.data[j*rows+i] = t.data[i*cols+j]
		}
	}
	return result, nil
}

// Reshape returns a copy of t with a new shape holding the same number of elements.
func Reshape(t *Tensor, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(t.data) {
		return nil, fmt.Errorf("reshape: %w: cannot reshape %v to %v", ErrShapeMismatch, t.shape, shape)
	}
	result := newTensor(shape)
	copy(result.data, t.data)
	return result, nil
}

// SumTo reduces t to target by summing along broadcast dimensions.
// It is the adjoint of broadcasting target up to t's shape.
//
// Example:
//
//	Forward: a[3,1] + b[3,4] -> c[3,4]  (a was broadcast along dim 1)
//	Backward: SumTo(grad_c[3,4], [3,1]) -> grad_a[3,1]
func SumTo(t *Tensor, target Shape) (*Tensor, error) {
	if t.shape.Equal(target) {
		return t.Clone(), nil
	}

	// target must broadcast up to exactly t's shape
	out, _, err := BroadcastShapes(target, t.shape)
	if err != nil || !out.Equal(t.shape) {
		return nil, fmt.Errorf("sum_to: %w: cannot reduce %v to %v", ErrShapeMismatch, t.shape, target)
	}

	result := newTensor(target)
	srcStrides := t.shape.ComputeStrides()
	dstStrides := broadcastStrides(target, t.shape)
	for i, v := range t.data {
		result.data[flatIndex(i, srcStrides, dstStrides)] += v
	}
	return result, nil
}
