// Package tensor provides the dense float64 value container used by the
// computation graph: shapes, NumPy-style broadcasting and the element-wise and
// matrix primitives that graph operations are built from.
//
// Tensors are treated as immutable values. Every operation allocates a new
// result; callers must not modify the slice returned by Data.
package tensor

import (
	"fmt"
	"math"
	"strings"
)

// Tensor is a row-major dense array of float64 values.
type Tensor struct {
	data  []float64
	shape Shape
}

// newTensor allocates a zero-filled tensor. The shape must already be valid.
func newTensor(shape Shape) *Tensor {
	return &Tensor{
		data:  make([]float64, shape.NumElements()),
		shape: shape.Clone(),
	}
}

// FromSlice creates a tensor from data laid out in row-major order.
// The data is copied.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrInvalidShape, len(data), shape)
	}
	t := newTensor(shape)
	copy(t.data, data)
	return t, nil
}

// MustFromSlice is like FromSlice but panics on error.
func MustFromSlice(data []float64, shape Shape) *Tensor {
	t, err := FromSlice(data, shape)
	if err != nil {
		panic(err)
	}
	return t
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Data returns the underlying row-major data. It must be treated as read-only.
func (t *Tensor) Data() []float64 {
	return t.data
}

// Item returns the single value of a one-element tensor.
func (t *Tensor) Item() (float64, error) {
	if len(t.data) != 1 {
		return 0, fmt.Errorf("%w: Item on tensor of shape %v", ErrShapeMismatch, t.shape)
	}
	return t.data[0], nil
}

// At returns the element at the given indices.
// Panics if the number of indices or any index is out of range.
func (t *Tensor) At(indices ...int) float64 {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("tensor: At expects %d indices, got %d", len(t.shape), len(indices)))
	}
	strides := t.shape.ComputeStrides()
	flat := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for dimension %d of size %d", idx, i, t.shape[i]))
		}
		flat += idx * strides[i]
	}
	return t.data[flat]
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	c := newTensor(t.shape)
	copy(c.data, t.data)
	return c
}

// Equal reports whether both tensors have the same shape and identical values.
func (t *Tensor) Equal(other *Tensor) bool {
	if other == nil || !t.shape.Equal(other.shape) {
		return false
	}
	for i, v := range t.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}

// AllClose reports whether both tensors have the same shape and every pair of
// values differs by at most atol + rtol*|other|.
func (t *Tensor) AllClose(other *Tensor, rtol, atol float64) bool {
	if other == nil || !t.shape.Equal(other.shape) {
		return false
	}
	for i, v := range t.data {
		w := other.data[i]
		if math.Abs(v-w) > atol+rtol*math.Abs(w) {
			return false
		}
	}
	return true
}

// Format renders the tensor with the given number of decimal places.
// Scalars render as a bare number.
func (t *Tensor) Format(precision int) string {
	if len(t.data) == 1 && len(t.shape) <= 1 {
		return formatFloat(t.data[0], precision)
	}
	var sb strings.Builder
	t.formatDim(&sb, 0, 0, t.shape.ComputeStrides(), precision)
	return sb.String()
}

func (t *Tensor) formatDim(sb *strings.Builder, dim, offset int, strides []int, precision int) {
	if dim == len(t.shape) {
		sb.WriteString(formatFloat(t.data[offset], precision))
		return
	}
	sb.WriteByte('[')
	for i := 0; i < t.shape[dim]; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		t.formatDim(sb, dim+1, offset+i*strides[dim], strides, precision)
	}
	sb.WriteByte(']')
}

func formatFloat(v float64, precision int) string {
	if precision < 0 {
		return fmt.Sprint(v)
	}
	s := fmt.Sprintf("%.*f", precision, v)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// String implements fmt.Stringer.
func (t *Tensor) String() string {
	return t.Format(-1)
}
