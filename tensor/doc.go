// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense float64 values that flow through a
// computation graph.
//
// # Overview
//
// This package provides:
//   - Row-major float64 tensors of any rank, including scalars
//   - NumPy-style broadcasting for element-wise operations
//   - Matrix multiplication and transpose for 2-D tensors
//   - Sum-to-shape reduction, the adjoint of broadcasting
//
// Tensors are immutable values: every operation returns a new tensor.
//
// # Basic Usage
//
//	import "github.com/born-ml/vizml/tensor"
//
//	func main() {
//	    a := tensor.Matrix([][]float64{{1, 2}, {3, 4}})
//	    b := tensor.Vector(10, 20)
//
//	    sum, _ := tensor.Add(a, b) // [[11 22] [13 24]]
//	    prod, _ := tensor.MatMul(a, a)
//	}
//
// # Broadcasting
//
// Shapes are aligned from the trailing dimension. Two dimensions are
// compatible when they are equal or one of them is 1. Incompatible shapes
// fail with ErrShapeMismatch.
package tensor
