package autodiff

import (
	"fmt"
	"math"

	"github.com/born-ml/vizml/internal/parallel"
	"github.com/born-ml/vizml/internal/tensor"
)

// GradCheckOptions controls CheckGradients.
type GradCheckOptions struct {
	// Epsilon is the central-difference step.
	Epsilon float64
	// Tolerance bounds |analytic - numeric| relative to 1 + |analytic|.
	Tolerance float64
	// Workers probes elements on that many goroutines; 0 or 1 is sequential.
	Workers int
}

// DefaultGradCheckOptions returns epsilon 1e-6 and tolerance 1e-4.
func DefaultGradCheckOptions() GradCheckOptions {
	return GradCheckOptions{Epsilon: 1e-6, Tolerance: 1e-4}
}

// GradCheckResult compares analytic and numeric gradients for one node.
type GradCheckResult struct {
	Node     *Node
	Analytic *tensor.Tensor
	Numeric  *tensor.Tensor
	MaxError float64
	Passed   bool
}

// CheckGradients compares the gradients of seed computed by Differentiate with
// central finite differences of sum(seed) for every node in wrt. Any node of
// the graph may be checked: its forward value is perturbed in place of being
// computed. An empty wrt checks every Input and Variable.
func CheckGradients(g *Graph, feed Feed, seed *Node, wrt []*Node, opts GradCheckOptions) ([]GradCheckResult, error) {
	if opts.Epsilon <= 0 {
		return nil, fmt.Errorf("autodiff: gradcheck epsilon must be positive, got %g", opts.Epsilon)
	}

	ev, err := Evaluate(g, feed)
	if err != nil {
		return nil, err
	}
	grads, err := Differentiate(g, ev, seed)
	if err != nil {
		return nil, err
	}

	if len(wrt) == 0 {
		wrt = append(g.Inputs(), g.Variables()...)
	}

	results := make([]GradCheckResult, 0, len(wrt))
	for _, n := range wrt {
		if !g.Contains(n) {
			return nil, fmt.Errorf("gradcheck %s: %w", n, ErrUnknownNode)
		}
		base := ev.Value(n)
		analytic := grads.Of(n)
		if analytic == nil {
			analytic = tensor.ZerosLike(base)
		}

		numeric, err := numericGradient(g, feed, seed, n, base, opts)
		if err != nil {
			return nil, err
		}

		res := GradCheckResult{Node: n, Analytic: analytic, Numeric: numeric, Passed: true}
		a, num := analytic.Data(), numeric.Data()
		for i := range a {
			diff := math.Abs(a[i] - num[i])
			res.MaxError = math.Max(res.MaxError, diff)
			if !(diff < opts.Tolerance*(1+math.Abs(a[i]))) {
				res.Passed = false
			}
		}
		results = append(results, res)
	}
	return results, nil
}

// numericGradient estimates d sum(seed) / d n element by element. Each probe
// is an independent evaluation with n's value overridden.
func numericGradient(g *Graph, feed Feed, seed, n *Node, base *tensor.Tensor, opts GradCheckOptions) (*tensor.Tensor, error) {
	eps := opts.Epsilon
	out := make([]float64, base.NumElements())

	probe := func(i int, delta float64) (float64, error) {
		data := append([]float64(nil), base.Data()...)
		data[i] += delta
		v, err := tensor.FromSlice(data, base.Shape())
		if err != nil {
			return 0, err
		}
		ev, err := evaluate(g, feed, map[*Node]*tensor.Tensor{n: v})
		if err != nil {
			return 0, err
		}
		return tensor.Sum(ev.Value(seed)).Data()[0], nil
	}

	err := parallel.For(len(out), func(i int) error {
		plus, err := probe(i, eps)
		if err != nil {
			return err
		}
		minus, err := probe(i, -eps)
		if err != nil {
			return err
		}
		out[i] = (plus - minus) / (2 * eps)
		return nil
	}, parallel.Workers(opts.Workers))
	if err != nil {
		return nil, err
	}
	return tensor.FromSlice(out, base.Shape())
}

// AllPassed reports whether every result passed.
func AllPassed(results []GradCheckResult) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
