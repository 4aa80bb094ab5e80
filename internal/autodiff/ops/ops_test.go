package ops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/vizml/internal/tensor"
)

func vec(values ...float64) *tensor.Tensor {
	return tensor.Vector(values...)
}

func forwardBackward(t *testing.T, op Operation, grad *tensor.Tensor, inputs ...*tensor.Tensor) (*tensor.Tensor, []*tensor.Tensor) {
	t.Helper()
	out, err := op.Forward(inputs)
	require.NoError(t, err)
	grads, err := op.Backward(grad, inputs, out)
	require.NoError(t, err)
	require.Len(t, grads, op.Arity())
	return out, grads
}

func TestBinaryOps(t *testing.T) {
	x := vec(2, 3)
	y := vec(4, 0.5)
	g := vec(1, 2)

	tests := []struct {
		name   string
		op     Operation
		out    []float64
		gradX  []float64
		gradY  []float64
		symbol string
	}{
		{"add", AddOp{}, []float64{6, 3.5}, []float64{1, 2}, []float64{1, 2}, "+"},
		{"sub", SubOp{}, []float64{-2, 2.5}, []float64{1, 2}, []float64{-1, -2}, "-"},
		{"mul", MulOp{}, []float64{8, 1.5}, []float64{4, 1}, []float64{2, 6}, "*"},
		{
			"div", DivOp{},
			[]float64{0.5, 6},
			[]float64{1.0 / 4, 2 * (1 / 0.5)},
			[]float64{-2.0 / 16, 2 * (-3 / 0.25)},
			"/",
		},
		{
			"pow", PowOp{},
			[]float64{16, math.Sqrt(3)},
			[]float64{4 * 8, 2 * 0.5 * math.Pow(3, -0.5)},
			[]float64{16 * math.Log(2), 2 * math.Sqrt(3) * math.Log(3)},
			"^",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, grads := forwardBackward(t, tt.op, g, x, y)
			assert.InDeltaSlice(t, tt.out, out.Data(), 1e-12)
			assert.InDeltaSlice(t, tt.gradX, grads[0].Data(), 1e-12)
			assert.InDeltaSlice(t, tt.gradY, grads[1].Data(), 1e-12)
			assert.Equal(t, tt.symbol, tt.op.Symbol())
			assert.False(t, tt.op.Kind().IsUnary())
		})
	}
}

func TestUnaryOps(t *testing.T) {
	x := vec(-1, 0.5, 2)
	g := vec(1, 2, 3)
	s := func(v float64) float64 { return 1 / (1 + math.Exp(-v)) }

	tests := []struct {
		name string
		op   Operation
		in   *tensor.Tensor
		out  []float64
		grad []float64
	}{
		{"negative", NegativeOp{}, x, []float64{1, -0.5, -2}, []float64{-1, -2, -3}},
		{"relu", ReLUOp{}, x, []float64{0, 0.5, 2}, []float64{0, 2, 3}},
		{"identity", IdentityOp{}, x, []float64{-1, 0.5, 2}, []float64{1, 2, 3}},
		{
			"sigmoid", SigmoidOp{}, x,
			[]float64{s(-1), s(0.5), s(2)},
			[]float64{s(-1) * (1 - s(-1)), 2 * s(0.5) * (1 - s(0.5)), 3 * s(2) * (1 - s(2))},
		},
		{"exp", ExpOp{}, x, []float64{math.Exp(-1), math.Exp(0.5), math.Exp(2)}, []float64{math.Exp(-1), 2 * math.Exp(0.5), 3 * math.Exp(2)}},
		{
			"tanh", TanhOp{}, x,
			[]float64{math.Tanh(-1), math.Tanh(0.5), math.Tanh(2)},
			[]float64{1 - math.Pow(math.Tanh(-1), 2), 2 * (1 - math.Pow(math.Tanh(0.5), 2)), 3 * (1 - math.Pow(math.Tanh(2), 2))},
		},
		{"sqrt", SqrtOp{}, vec(1, 4, 9), []float64{1, 2, 3}, []float64{0.5, 0.5, 0.5}},
		{
			"log", LogOp{}, vec(1, 2, 4),
			[]float64{0, math.Log(2), math.Log(4)},
			[]float64{1, 1, 0.75},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, grads := forwardBackward(t, tt.op, g, tt.in)
			assert.InDeltaSlice(t, tt.out, out.Data(), 1e-12)
			assert.InDeltaSlice(t, tt.grad, grads[0].Data(), 1e-12)
			assert.True(t, tt.op.Kind().IsUnary())
		})
	}
}

func TestReLU_ZeroHasNoGradient(t *testing.T) {
	_, grads := forwardBackward(t, ReLUOp{}, vec(5), vec(0))
	assert.Equal(t, []float64{0}, grads[0].Data())
}

func TestMatMulOp(t *testing.T) {
	a := tensor.Matrix([][]float64{{1, 2, 3}, {4, 5, 6}})   // [2,3]
	b := tensor.Matrix([][]float64{{1, 0}, {0, 1}, {1, 1}}) // [3,2]
	g := tensor.Ones(tensor.Shape{2, 2})

	out, grads := forwardBackward(t, MatMulOp{}, g, a, b)
	assert.Equal(t, []float64{4, 5, 10, 11}, out.Data())

	// g @ b^T
	assert.Equal(t, tensor.Shape{2, 3}, grads[0].Shape())
	assert.Equal(t, []float64{1, 1, 2, 1, 1, 2}, grads[0].Data())

	// a^T @ g
	assert.Equal(t, tensor.Shape{3, 2}, grads[1].Shape())
	assert.Equal(t, []float64{5, 5, 7, 7, 9, 9}, grads[1].Data())
}

func TestTransposeOp(t *testing.T) {
	a := tensor.Matrix([][]float64{{1, 2, 3}, {4, 5, 6}})
	g := tensor.Matrix([][]float64{{1, 2}, {3, 4}, {5, 6}})

	out, grads := forwardBackward(t, TransposeOp{}, g, a)
	assert.Equal(t, tensor.Shape{3, 2}, out.Shape())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, out.Data())
	assert.Equal(t, tensor.Shape{2, 3}, grads[0].Shape())
	assert.Equal(t, []float64{1, 3, 5, 2, 4, 6}, grads[0].Data())

	_, err := TransposeOp{}.Forward([]*tensor.Tensor{vec(1, 2)})
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestMatMulOp_ShapeMismatch(t *testing.T) {
	_, err := MatMulOp{}.Forward([]*tensor.Tensor{
		tensor.Zeros(tensor.Shape{2, 3}),
		tensor.Zeros(tensor.Shape{2, 3}),
	})
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestBroadcastGradientsAreReduced(t *testing.T) {
	a := tensor.MustFromSlice([]float64{1, 2, 3}, tensor.Shape{3, 1})
	b := tensor.MustFromSlice([]float64{10, 20}, tensor.Shape{1, 2})
	g := tensor.Ones(tensor.Shape{3, 2})

	for _, op := range []Operation{AddOp{}, SubOp{}, MulOp{}, DivOp{}, PowOp{}} {
		t.Run(op.Kind().String(), func(t *testing.T) {
			_, grads := forwardBackward(t, op, g, a, b)
			assert.Equal(t, a.Shape(), grads[0].Shape())
			assert.Equal(t, b.Shape(), grads[1].Shape())
		})
	}

	_, grads := forwardBackward(t, AddOp{}, g, a, b)
	assert.Equal(t, []float64{2, 2, 2}, grads[0].Data())
	assert.Equal(t, []float64{3, 3}, grads[1].Data())

	_, grads = forwardBackward(t, MulOp{}, tensor.Ones(tensor.Shape{3, 1}), a, tensor.Scalar(2))
	assert.Empty(t, grads[1].Shape())
	assert.Equal(t, []float64{6}, grads[1].Data())
}

func TestArity(t *testing.T) {
	_, err := AddOp{}.Forward([]*tensor.Tensor{vec(1)})
	assert.ErrorIs(t, err, ErrArity)

	_, err = LogOp{}.Forward([]*tensor.Tensor{vec(1), vec(2)})
	assert.ErrorIs(t, err, ErrArity)

	_, err = MulOp{}.Backward(vec(1), []*tensor.Tensor{vec(1)}, vec(1))
	assert.ErrorIs(t, err, ErrArity)

	_, err = NegativeOp{}.Forward([]*tensor.Tensor{nil})
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Len(t, r.Kinds(), 15)

	for _, kind := range r.Kinds() {
		op, err := r.Lookup(kind)
		require.NoError(t, err)
		assert.Equal(t, kind, op.Kind())
		if kind.IsUnary() {
			assert.Equal(t, 1, op.Arity())
		} else {
			assert.Equal(t, 2, op.Arity())
		}
	}

	_, err := r.Lookup(Kind(200))
	assert.Error(t, err)
	assert.Equal(t, "Unknown", Kind(200).String())

	assert.Equal(t, MatMul, ForKind(MatMul).Kind())
	assert.Panics(t, func() { ForKind(Kind(200)) })
}
