package tensor

import (
	"fmt"
	"math"
)

// binaryOp applies fn element-wise over a and b with broadcasting.
func binaryOp(name string, a, b *Tensor, fn func(x, y float64) float64) (*Tensor, error) {
	outShape, needsBroadcast, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	result := newTensor(outShape)

	// Fast path: identical shapes
	if !needsBroadcast {
		for i := range result.data {
			result.data[i] = fn(a.data[i], b.data[i])
		}
		return result, nil
	}

	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(a.shape, outShape)
	bStrides := broadcastStrides(b.shape, outShape)

	for i := range result.data {
		ai := flatIndex(i, outStrides, aStrides)
		bi := flatIndex(i, outStrides, bStrides)
		result.data[i] = fn(a.data[ai], b.data[bi])
	}
	return result, nil
}

// Map applies fn to every element and returns a new tensor.
func (t *Tensor) Map(fn func(float64) float64) *Tensor {
	result := newTensor(t.shape)
	for i, v := range t.data {
		result.data[i] = fn(v)
	}
	return result
}

// Add performs element-wise addition with broadcasting.
func Add(a, b *Tensor) (*Tensor, error) {
	return binaryOp("add", a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func Sub(a, b *Tensor) (*Tensor, error) {
	return binaryOp("sub", a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func Mul(a, b *Tensor) (*Tensor, error) {
	return binaryOp("mul", a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
// Division by zero follows IEEE 754 (±Inf or NaN).
func Div(a, b *Tensor) (*Tensor, error) {
	return binaryOp("div", a, b, func(x, y float64) float64 { return x / y })
}

// Pow raises a to the power b element-wise with broadcasting.
func Pow(a, b *Tensor) (*Tensor, error) {
	return binaryOp("pow", a, b, math.Pow)
}

// Neg returns -t.
func Neg(t *Tensor) *Tensor {
	return t.Map(func(v float64) float64 { return -v })
}

// Log returns the element-wise natural logarithm.
func Log(t *Tensor) *Tensor {
	return t.Map(math.Log)
}

// Exp returns the element-wise exponential.
func Exp(t *Tensor) *Tensor {
	return t.Map(math.Exp)
}

// Tanh returns the element-wise hyperbolic tangent.
func Tanh(t *Tensor) *Tensor {
	return t.Map(math.Tanh)
}

// Sqrt returns the element-wise square root.
func Sqrt(t *Tensor) *Tensor {
	return t.Map(math.Sqrt)
}

// Sigmoid returns σ(x) = 1 / (1 + exp(-x)) element-wise.
func Sigmoid(t *Tensor) *Tensor {
	return t.Map(func(v float64) float64 { return 1.0 / (1.0 + math.Exp(-v)) })
}

// ReLU returns max(0, x) element-wise.
func ReLU(t *Tensor) *Tensor {
	return t.Map(func(v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// Scale multiplies every element by s.
func Scale(t *Tensor, s float64) *Tensor {
	return t.Map(func(v float64) float64 { return v * s })
}

// Sum returns the sum of all elements as a scalar tensor.
func Sum(t *Tensor) *Tensor {
	var sum float64
	for _, v := range t.data {
		sum += v
	}
	return Scalar(sum)
}

// MatMul performs 2-D matrix multiplication: [M, K] @ [K, N] -> [M, N].
// Any other rank, or disagreeing inner dimensions, fails with ErrShapeMismatch.
func MatMul(a, b *Tensor) (*Tensor, error) {
	if len(a.shape) != 2 || len(b.shape) != 2 {
		return nil, fmt.Errorf("matmul: %w: operands must be 2-D, got %v and %v",
			ErrShapeMismatch, a.shape, b.shape)
	}

	m, k := a.shape[0], a.shape[1]
	k2, n := b.shape[0], b.shape[1]
	if k != k2 {
		return nil, fmt.Errorf("matmul: %w: inner dimensions differ: %v @ %v",
			ErrShapeMismatch, a.shape, b.shape)
	}

	result := newTensor(Shape{m, n})
	for i := 0; i < m; i++ {
		row := a.data[i*k : (i+1)*k]
		out := result.data[i*n : (i+1)*n]
		for p, av := range row {
			if av == 0 {
				continue
			}
			bRow := b.data[p*n : (p+1)*n]
			for j, bv := range bRow {
				out[j] += av * bv
			}
		}
	}
	return result, nil
}
