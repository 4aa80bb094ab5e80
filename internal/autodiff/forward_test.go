package autodiff_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/vizml/internal/autodiff"
	"github.com/born-ml/vizml/internal/autodiff/ops"
	"github.com/born-ml/vizml/internal/tensor"
)

// example builds z = B * (A + x^2) with A = 1 and B = 2.
type example struct {
	x, a, b, sum, z *autodiff.Node
	g               *autodiff.Graph
}

func newExample(t *testing.T) example {
	t.Helper()
	e := example{
		x: autodiff.Input("x"),
		a: autodiff.Variable("A", tensor.Scalar(1)),
		b: autodiff.Variable("B", tensor.Scalar(2)),
	}
	e.sum = e.a.Add(e.x.PowScalar(2))
	e.z = e.b.Mul(e.sum)

	g, err := autodiff.Build(e.z)
	require.NoError(t, err)
	e.g = g
	return e
}

func feedX(x float64) autodiff.Feed {
	return autodiff.FeedScalars(map[string]float64{"x": x})
}

func TestEvaluate_Example(t *testing.T) {
	e := newExample(t)

	ev, err := autodiff.Evaluate(e.g, feedX(3))
	require.NoError(t, err)

	z, err := ev.Scalar(e.z)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, z, 1e-12)

	sum, err := ev.Scalar(e.sum)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, sum, 1e-12)

	assert.Equal(t, e.g.Len(), ev.Len())
	assert.Same(t, e.g, ev.Graph())
}

func TestEvaluate_MissingFeedValue(t *testing.T) {
	e := newExample(t)

	ev, err := autodiff.Evaluate(e.g, autodiff.Feed{"y": tensor.Scalar(1)})
	require.ErrorIs(t, err, autodiff.ErrMissingFeedValue)
	assert.Nil(t, ev)

	var missing *autodiff.MissingFeedError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "x", missing.Name)
}

func TestEvaluate_ShapeMismatch(t *testing.T) {
	a := autodiff.Input("a")
	b := autodiff.Input("b")
	sum := a.Add(b)

	g, err := autodiff.Build(sum)
	require.NoError(t, err)

	_, err = autodiff.Evaluate(g, autodiff.Feed{
		"a": tensor.Vector(1, 2),
		"b": tensor.Vector(1, 2, 3),
	})
	require.ErrorIs(t, err, autodiff.ErrShapeMismatch)

	var nodeErr *autodiff.NodeError
	require.True(t, errors.As(err, &nodeErr))
	assert.Same(t, sum, nodeErr.Node)
	assert.Equal(t, "forward", nodeErr.Pass)
}

func TestEvaluate_MatMulRequiresMatrices(t *testing.T) {
	a := autodiff.Input("a")
	b := autodiff.Input("b")
	g, err := autodiff.Build(a.MatMul(b))
	require.NoError(t, err)

	_, err = autodiff.Evaluate(g, autodiff.Feed{
		"a": tensor.Matrix([][]float64{{1, 2}, {3, 4}}),
		"b": tensor.Vector(1, 2),
	})
	assert.ErrorIs(t, err, autodiff.ErrShapeMismatch)

	ev, err := autodiff.Evaluate(g, autodiff.Feed{
		"a": tensor.Matrix([][]float64{{1, 2}, {3, 4}}),
		"b": tensor.Matrix([][]float64{{5}, {6}}),
	})
	require.NoError(t, err)
	assert.True(t, tensor.Matrix([][]float64{{17}, {39}}).Equal(ev.Value(g.Roots()[0])))
}

func TestEvaluate_IndependentReevaluation(t *testing.T) {
	e := newExample(t)

	first, err := autodiff.Evaluate(e.g, feedX(3))
	require.NoError(t, err)
	second, err := autodiff.Evaluate(e.g, feedX(5))
	require.NoError(t, err)

	z1, err := first.Scalar(e.z)
	require.NoError(t, err)
	z2, err := second.Scalar(e.z)
	require.NoError(t, err)

	assert.InDelta(t, 20.0, z1, 1e-12)
	assert.InDelta(t, 52.0, z2, 1e-12)
}

func TestEvaluate_Deterministic(t *testing.T) {
	e := newExample(t)

	want, err := autodiff.Evaluate(e.g, feedX(1.5))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		got, err := autodiff.Evaluate(e.g, feedX(1.5))
		require.NoError(t, err)
		for _, n := range e.g.Order() {
			assert.True(t, want.Value(n).Equal(got.Value(n)), "node %s", n)
		}
	}
}

func TestEvaluate_Concurrent(t *testing.T) {
	e := newExample(t)

	const workers = 16
	results := make([]float64, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ev, err := autodiff.Evaluate(e.g, feedX(float64(i)))
			if err != nil {
				errs[i] = err
				return
			}
			results[i], errs[i] = ev.Scalar(e.z)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		x := float64(i)
		assert.InDelta(t, 2*(1+x*x), results[i], 1e-9, "worker %d", i)
	}
}

func TestEvaluate_VariableUpdates(t *testing.T) {
	e := newExample(t)

	require.NoError(t, e.a.SetValue(tensor.Scalar(4)))
	ev, err := autodiff.Evaluate(e.g, feedX(3))
	require.NoError(t, err)

	z, err := ev.Scalar(e.z)
	require.NoError(t, err)
	assert.InDelta(t, 26.0, z, 1e-12)

	assert.ErrorIs(t, autodiff.Scalar(1).SetValue(tensor.Scalar(2)), autodiff.ErrImmutableConstant)
	assert.ErrorIs(t, e.a.SetValue(nil), autodiff.ErrNilValue)
	assert.Error(t, e.x.SetValue(tensor.Scalar(1)))
	assert.Nil(t, e.x.Value())
}

func TestEvaluate_OutputNode(t *testing.T) {
	e := newExample(t)
	out := autodiff.Output(e.z, "loss")

	g, err := autodiff.Build(out)
	require.NoError(t, err)
	ev, err := autodiff.Evaluate(g, feedX(3))
	require.NoError(t, err)

	assert.True(t, out.IsOutput())
	assert.Equal(t, "loss", out.Name())
	assert.Equal(t, ops.Identity, out.Op().Kind())
	assert.True(t, ev.Value(e.z).Equal(ev.Value(out)))
}

func TestEvaluate_Scalar(t *testing.T) {
	v := autodiff.Variable("v", tensor.Vector(1, 2))
	g, err := autodiff.Build(v.MulScalar(2))
	require.NoError(t, err)
	ev, err := autodiff.Evaluate(g, nil)
	require.NoError(t, err)

	_, err = ev.Scalar(v)
	assert.ErrorIs(t, err, autodiff.ErrNotScalar)
	_, err = ev.Scalar(autodiff.Input("elsewhere"))
	assert.ErrorIs(t, err, autodiff.ErrUnknownNode)
	_, err = autodiff.Evaluate(nil, nil)
	assert.ErrorIs(t, err, autodiff.ErrNilGraph)
}

func TestApply(t *testing.T) {
	x := autodiff.Input("x")

	_, err := autodiff.Apply(ops.ForKind(ops.Add), x)
	assert.ErrorIs(t, err, autodiff.ErrArity)

	_, err = autodiff.Apply(ops.ForKind(ops.Mul), x, nil)
	assert.ErrorIs(t, err, autodiff.ErrNilNode)

	n, err := autodiff.Apply(ops.ForKind(ops.Sigmoid), x)
	require.NoError(t, err)
	assert.Equal(t, []*autodiff.Node{x}, n.Inputs())
	assert.Equal(t, []*autodiff.Node{n}, x.Consumers())

	assert.Panics(t, func() { x.Add(nil) })
}

func TestScalarOperators(t *testing.T) {
	x := autodiff.Input("x")
	tests := []struct {
		node *autodiff.Node
		want float64
	}{
		{x.AddScalar(2), 6},
		{x.SubScalar(2), 2},
		{x.MulScalar(2), 8},
		{x.DivScalar(2), 2},
		{x.PowScalar(2), 16},
		{x.Neg(), -4},
		{x.ReLU(), 4},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.node), func(t *testing.T) {
			g, err := autodiff.Build(tt.node)
			require.NoError(t, err)
			ev, err := autodiff.Evaluate(g, feedX(4))
			require.NoError(t, err)
			got, err := ev.Scalar(tt.node)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}
