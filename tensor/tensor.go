// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/vizml/internal/tensor"

// Shape represents tensor dimensions. A nil or empty Shape is a scalar.
type Shape = tensor.Shape

// Tensor is a dense row-major float64 array.
type Tensor = tensor.Tensor

// Errors.
var (
	ErrShapeMismatch = tensor.ErrShapeMismatch
	ErrInvalidShape  = tensor.ErrInvalidShape
)

// FromSlice creates a tensor from row-major data. The data is copied.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// MustFromSlice is like FromSlice but panics on error.
func MustFromSlice(data []float64, shape Shape) *Tensor {
	return tensor.MustFromSlice(data, shape)
}

// Scalar creates a 0-D tensor.
func Scalar(v float64) *Tensor {
	return tensor.Scalar(v)
}

// Vector creates a 1-D tensor.
func Vector(values ...float64) *Tensor {
	return tensor.Vector(values...)
}

// Matrix creates a 2-D tensor from rows of equal length.
func Matrix(rows [][]float64) *Tensor {
	return tensor.Matrix(rows)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *Tensor {
	return tensor.Ones(shape)
}

// Full creates a tensor filled with value.
func Full(shape Shape, value float64) *Tensor {
	return tensor.Full(shape, value)
}

// Add returns a + b with broadcasting.
func Add(a, b *Tensor) (*Tensor, error) {
	return tensor.Add(a, b)
}

// Sub returns a - b with broadcasting.
func Sub(a, b *Tensor) (*Tensor, error) {
	return tensor.Sub(a, b)
}

// Mul returns a * b with broadcasting.
func Mul(a, b *Tensor) (*Tensor, error) {
	return tensor.Mul(a, b)
}

// Div returns a / b with broadcasting.
func Div(a, b *Tensor) (*Tensor, error) {
	return tensor.Div(a, b)
}

// Pow returns a ^ b with broadcasting.
func Pow(a, b *Tensor) (*Tensor, error) {
	return tensor.Pow(a, b)
}

// MatMul returns the product of two 2-D tensors.
func MatMul(a, b *Tensor) (*Tensor, error) {
	return tensor.MatMul(a, b)
}

// Transpose swaps the axes of a 2-D tensor.
func Transpose(t *Tensor) (*Tensor, error) {
	return tensor.Transpose(t)
}

// SumTo reduces t to shape by summing broadcast dimensions.
func SumTo(t *Tensor, shape Shape) (*Tensor, error) {
	return tensor.SumTo(t, shape)
}

// BroadcastShapes returns the broadcast result of two shapes and whether
// broadcasting was needed.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
