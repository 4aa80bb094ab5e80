package autodiff

import (
	"errors"
	"fmt"
	"strings"

	"github.com/born-ml/vizml/internal/autodiff/ops"
	"github.com/born-ml/vizml/internal/tensor"
)

// Common errors.
var (
	ErrMissingFeedValue  = errors.New("autodiff: missing feed value")
	ErrShapeMismatch     = tensor.ErrShapeMismatch
	ErrCycleDetected     = errors.New("autodiff: cycle detected")
	ErrUnknownNode       = errors.New("autodiff: node not in graph")
	ErrNilNode           = errors.New("autodiff: nil node")
	ErrNoRoots           = errors.New("autodiff: no roots given")
	ErrArity             = ops.ErrArity
	ErrNilValue          = errors.New("autodiff: nil value")
	ErrImmutableConstant = errors.New("autodiff: constant value cannot be changed")
	ErrNilGraph          = errors.New("autodiff: nil graph")
	ErrNilEvaluation     = errors.New("autodiff: nil evaluation")
	ErrForeignEvaluation = errors.New("autodiff: evaluation belongs to a different graph")
	ErrNotScalar         = errors.New("autodiff: value is not a scalar")
)

// MissingFeedError reports an Input node with no entry in the feed.
type MissingFeedError struct {
	Name string
}

// Error implements the error interface.
func (e *MissingFeedError) Error() string {
	return fmt.Sprintf("%v: %q", ErrMissingFeedValue, e.Name)
}

// Unwrap returns ErrMissingFeedValue.
func (e *MissingFeedError) Unwrap() error {
	return ErrMissingFeedValue
}

// CycleError reports a cycle found while building a graph.
// Path starts and ends with the node that closes the cycle.
type CycleError struct {
	Path []*Node
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	labels := make([]string, len(e.Path))
	for i, n := range e.Path {
		labels[i] = n.Label()
	}
	return fmt.Sprintf("%v: %s", ErrCycleDetected, strings.Join(labels, " -> "))
}

// Unwrap returns ErrCycleDetected.
func (e *CycleError) Unwrap() error {
	return ErrCycleDetected
}

// NodeError attaches the failing node and pass to an evaluation error.
type NodeError struct {
	Node *Node
	Pass string // "forward" or "backward"
	Err  error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	return fmt.Sprintf("%s pass at %s: %v", e.Pass, e.Node, e.Err)
}

// Unwrap returns the underlying error.
func (e *NodeError) Unwrap() error {
	return e.Err
}
