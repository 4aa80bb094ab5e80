// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff builds computation graphs and evaluates them forward
// (values) and backward (reverse-mode gradients).
//
// Example:
//
//	import (
//	    "github.com/born-ml/vizml/autodiff"
//	    "github.com/born-ml/vizml/tensor"
//	)
//
//	func main() {
//	    x := autodiff.Input("x")
//	    a := autodiff.Variable("A", tensor.Scalar(1))
//	    b := autodiff.Variable("B", tensor.Scalar(2))
//	    z := b.Mul(a.Add(x.PowScalar(2)))
//
//	    g, _ := autodiff.Build(z)
//	    ev, _ := autodiff.Evaluate(g, autodiff.FeedScalars(map[string]float64{"x": 3}))
//	    grads, _ := autodiff.Differentiate(g, ev, z)
//	    // ev.Value(z) = 20, grads.Of(x) = 12
//	}
package autodiff

import (
	"github.com/born-ml/vizml/internal/autodiff"
	"github.com/born-ml/vizml/internal/autodiff/ops"
	"github.com/born-ml/vizml/internal/config"
	"github.com/born-ml/vizml/tensor"
)

// Graph types.
type (
	// Node is a vertex of the computation graph.
	Node = autodiff.Node
	// NodeKind tags the variant of a Node.
	NodeKind = autodiff.NodeKind
	// Graph is the immutable node set reachable from a list of roots.
	Graph = autodiff.Graph
	// Edge is a directed input edge.
	Edge = autodiff.Edge
	// Feed maps Input names to values.
	Feed = autodiff.Feed
	// Evaluation holds the forward values of one pass.
	Evaluation = autodiff.Evaluation
	// Gradients holds the result of one backward pass.
	Gradients = autodiff.Gradients
	// Operation is a differentiable rule pair.
	Operation = ops.Operation
	// OpKind identifies a catalog operation.
	OpKind = ops.Kind
)

// Node kinds.
const (
	KindInput     = autodiff.KindInput
	KindVariable  = autodiff.KindVariable
	KindConstant  = autodiff.KindConstant
	KindOperation = autodiff.KindOperation
)

// Errors.
var (
	ErrMissingFeedValue  = autodiff.ErrMissingFeedValue
	ErrShapeMismatch     = autodiff.ErrShapeMismatch
	ErrCycleDetected     = autodiff.ErrCycleDetected
	ErrUnknownNode       = autodiff.ErrUnknownNode
	ErrNilNode           = autodiff.ErrNilNode
	ErrNoRoots           = autodiff.ErrNoRoots
	ErrArity             = autodiff.ErrArity
	ErrNilValue          = autodiff.ErrNilValue
	ErrImmutableConstant = autodiff.ErrImmutableConstant
	ErrNilGraph          = autodiff.ErrNilGraph
	ErrNilEvaluation     = autodiff.ErrNilEvaluation
	ErrForeignEvaluation = autodiff.ErrForeignEvaluation
	ErrNotScalar         = autodiff.ErrNotScalar
)

// Structured errors.
type (
	MissingFeedError = autodiff.MissingFeedError
	CycleError       = autodiff.CycleError
	NodeError        = autodiff.NodeError
)

// Input creates a named placeholder resolved from the feed.
func Input(name string) *Node {
	return autodiff.Input(name)
}

// Variable creates a named node holding value.
func Variable(name string, value *tensor.Tensor) *Node {
	return autodiff.Variable(name, value)
}

// Constant creates a node with a fixed value.
func Constant(value *tensor.Tensor) *Node {
	return autodiff.Constant(value)
}

// Scalar creates a scalar Constant.
func Scalar(v float64) *Node {
	return autodiff.Scalar(v)
}

// Output wraps n in a named output node.
func Output(n *Node, name string) *Node {
	return autodiff.Output(n, name)
}

// Apply creates an Operation node for op over inputs.
func Apply(op Operation, inputs ...*Node) (*Node, error) {
	return autodiff.Apply(op, inputs...)
}

// Op returns the catalog operation for kind.
func Op(kind OpKind) Operation {
	return ops.ForKind(kind)
}

// Build collects the graph reachable from roots.
func Build(roots ...*Node) (*Graph, error) {
	return autodiff.Build(roots...)
}

// TopologicalOrder computes the evaluation order of g.
func TopologicalOrder(g *Graph) ([]*Node, error) {
	return autodiff.TopologicalOrder(g)
}

// FeedScalars builds a Feed of scalar values.
func FeedScalars(values map[string]float64) Feed {
	return autodiff.FeedScalars(values)
}

// Evaluate runs the forward pass.
func Evaluate(g *Graph, feed Feed) (*Evaluation, error) {
	return autodiff.Evaluate(g, feed)
}

// Differentiate runs the backward pass from seed with an all-ones gradient.
func Differentiate(g *Graph, ev *Evaluation, seed *Node) (*Gradients, error) {
	return autodiff.Differentiate(g, ev, seed)
}

// DifferentiateWith runs the backward pass from seed with an explicit gradient.
func DifferentiateWith(g *Graph, ev *Evaluation, seed *Node, grad *tensor.Tensor) (*Gradients, error) {
	return autodiff.DifferentiateWith(g, ev, seed, grad)
}

// Gradient checking.
type (
	GradCheckOptions = autodiff.GradCheckOptions
	GradCheckResult  = autodiff.GradCheckResult
)

// DefaultGradCheckOptions returns epsilon 1e-6 and tolerance 1e-4.
func DefaultGradCheckOptions() GradCheckOptions {
	return autodiff.DefaultGradCheckOptions()
}

// CheckGradients compares analytic gradients with central finite differences.
func CheckGradients(g *Graph, feed Feed, seed *Node, wrt []*Node, opts GradCheckOptions) ([]GradCheckResult, error) {
	return autodiff.CheckGradients(g, feed, seed, wrt, opts)
}

// AllPassed reports whether every gradient check passed.
func AllPassed(results []GradCheckResult) bool {
	return autodiff.AllPassed(results)
}

// Engine runs passes with logging, tracing and metrics.
type (
	Engine       = autodiff.Engine
	EngineOption = autodiff.EngineOption
	Result       = autodiff.Result
	Config       = config.Config
)

// Engine options.
var (
	WithLogger         = autodiff.WithLogger
	WithTracerProvider = autodiff.WithTracerProvider
	WithMeterProvider  = autodiff.WithMeterProvider
)

// NewEngine creates an Engine from cfg.
func NewEngine(cfg Config, opts ...EngineOption) (*Engine, error) {
	return autodiff.NewEngine(cfg, opts...)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return config.Default()
}

// LoadConfig reads configuration from a YAML or JSON file and VIZML_*
// environment variables.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}
