package ops

import (
	"math"
	"testing"

	"github.com/born-ml/vizml/internal/tensor"
)

const (
	epsilonGrad = 1e-6
	tolerance   = 1e-5
)

// numericalGradient computes numerical gradient using finite differences.
// This assumes the loss is sum of all elements in the output (matching grad_output of all ones).
func numericalGradient(fn func(*tensor.Tensor) *tensor.Tensor, input *tensor.Tensor) *tensor.Tensor {
	data := append([]float64(nil), input.Data()...)
	grad := make([]float64, len(data))

	eval := func() float64 {
		return sumElements(fn(tensor.MustFromSlice(data, input.Shape())))
	}

	for i := range data {
		original := data[i]

		// f(x + h)
		data[i] = original + epsilonGrad
		fPlus := eval()

		// f(x - h)
		data[i] = original - epsilonGrad
		fMinus := eval()

		// (f(x+h) - f(x-h)) / (2h)
		grad[i] = (fPlus - fMinus) / (2.0 * epsilonGrad)

		// Restore original value
		data[i] = original
	}

	return tensor.MustFromSlice(grad, input.Shape())
}

// sumElements sums all elements of a tensor.
func sumElements(t *tensor.Tensor) float64 {
	var sum float64
	for _, v := range t.Data() {
		sum += v
	}
	return sum
}

// compareGradients checks if analytical and numerical gradients match.
func compareGradients(t *testing.T, analytical, numerical *tensor.Tensor, name string) {
	t.Helper()

	if !analytical.Shape().Equal(numerical.Shape()) {
		t.Fatalf("%s: gradient shapes don't match: %v vs %v",
			name, analytical.Shape(), numerical.Shape())
	}

	aData := analytical.Data()
	nData := numerical.Data()
	for i := range aData {
		diff := math.Abs(aData[i] - nData[i])
		if diff > tolerance*(1+math.Abs(aData[i])) {
			t.Errorf("%s: gradient[%d] mismatch: analytical=%f, numerical=%f, diff=%g",
				name, i, aData[i], nData[i], diff)
		}
	}
}

// checkOp compares every input gradient of op against finite differences.
func checkOp(t *testing.T, op Operation, inputs ...*tensor.Tensor) {
	t.Helper()

	output, err := op.Forward(inputs)
	if err != nil {
		t.Fatalf("%s forward: %v", op.Kind(), err)
	}
	grads, err := op.Backward(tensor.OnesLike(output), inputs, output)
	if err != nil {
		t.Fatalf("%s backward: %v", op.Kind(), err)
	}

	for slot := range inputs {
		fn := func(x *tensor.Tensor) *tensor.Tensor {
			args := append([]*tensor.Tensor(nil), inputs...)
			args[slot] = x
			out, err := op.Forward(args)
			if err != nil {
				t.Fatalf("%s forward: %v", op.Kind(), err)
			}
			return out
		}
		compareGradients(t, grads[slot], numericalGradient(fn, inputs[slot]), op.Kind().String())
	}
}

func TestNumericalGradients_Unary(t *testing.T) {
	signed := tensor.MustFromSlice([]float64{-1.5, -0.3, 0.4, 1.2, 2.5, -2}, tensor.Shape{2, 3})
	positive := tensor.MustFromSlice([]float64{0.5, 1, 1.5, 2, 3, 4}, tensor.Shape{2, 3})

	checkOp(t, IdentityOp{}, signed)
	checkOp(t, NegativeOp{}, signed)
	checkOp(t, SigmoidOp{}, signed)
	checkOp(t, ReLUOp{}, signed)
	checkOp(t, ExpOp{}, signed)
	checkOp(t, TanhOp{}, signed)
	checkOp(t, TransposeOp{}, signed)
	checkOp(t, LogOp{}, positive)
	checkOp(t, SqrtOp{}, positive)
}

func TestNumericalGradients_Binary(t *testing.T) {
	a := tensor.MustFromSlice([]float64{0.5, 1.2, 2, 1.5, 0.8, 3}, tensor.Shape{2, 3})
	b := tensor.MustFromSlice([]float64{1.5, -0.7, 2.2}, tensor.Shape{3})
	col := tensor.MustFromSlice([]float64{0.9, 1.7}, tensor.Shape{2, 1})

	checkOp(t, AddOp{}, a, b)
	checkOp(t, SubOp{}, a, col)
	checkOp(t, MulOp{}, a, b)
	checkOp(t, DivOp{}, a, b)
	checkOp(t, PowOp{}, a, col)
	checkOp(t, MatMulOp{}, a, tensor.MustFromSlice([]float64{1, -2, 0.5, 3, -1, 2}, tensor.Shape{3, 2}))
}
