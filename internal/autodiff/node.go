package autodiff

import (
	"fmt"
	"sync"

	"github.com/born-ml/vizml/internal/autodiff/ops"
	"github.com/born-ml/vizml/internal/tensor"
)

// NodeKind tags the variant of a Node.
type NodeKind uint8

// Node variants.
const (
	KindInput NodeKind = iota
	KindVariable
	KindConstant
	KindOperation
)

// String returns the lower-case variant name.
func (k NodeKind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindVariable:
		return "variable"
	case KindConstant:
		return "constant"
	case KindOperation:
		return "operation"
	default:
		return "unknown"
	}
}

// Node is a vertex of the computation graph. Its identity is its address.
//
// The structure of a node (kind, inputs, consumers) is fixed once the node
// is built. Consumers are registered by the operation constructors only: A is
// in B's inputs if and only if B is in A's consumers (once per input slot).
// Nodes never hold evaluated values; those live in an Evaluation.
type Node struct {
	kind      NodeKind
	name      string
	op        ops.Operation
	inputs    []*Node
	consumers []*Node
	output    bool

	mu    sync.RWMutex
	value *tensor.Tensor // Variable and Constant only
}

// Input creates a named placeholder resolved from the feed at evaluation time.
func Input(name string) *Node {
	return &Node{kind: KindInput, name: name}
}

// Variable creates a named parameter holding value.
// Panics if value is nil.
func Variable(name string, value *tensor.Tensor) *Node {
	if value == nil {
		panic(fmt.Sprintf("autodiff: variable %q created with nil value", name))
	}
	return &Node{kind: KindVariable, name: name, value: value.Clone()}
}

// Constant creates a node with a fixed value.
// Panics if value is nil.
func Constant(value *tensor.Tensor) *Node {
	if value == nil {
		panic("autodiff: constant created with nil value")
	}
	return &Node{kind: KindConstant, value: value.Clone()}
}

// Scalar creates a Constant holding v.
func Scalar(v float64) *Node {
	return Constant(tensor.Scalar(v))
}

// Kind returns the node variant.
func (n *Node) Kind() NodeKind {
	return n.kind
}

// Name returns the node name. Constants and plain operations are unnamed.
func (n *Node) Name() string {
	return n.name
}

// Op returns the operation of an Operation node, or nil.
func (n *Node) Op() ops.Operation {
	return n.op
}

// IsOutput reports whether the node was created with Output.
func (n *Node) IsOutput() bool {
	return n.output
}

// Inputs returns the ordered input nodes.
func (n *Node) Inputs() []*Node {
	return append([]*Node(nil), n.inputs...)
}

// Consumers returns every node that uses n as an input, once per input slot.
// The list may include nodes outside any particular Graph.
func (n *Node) Consumers() []*Node {
	return append([]*Node(nil), n.consumers...)
}

// Value returns the stored value of a Variable or Constant, or nil for other kinds.
func (n *Node) Value() *tensor.Tensor {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.value
}

// SetValue replaces the value of a Variable.
// It must not be called while an evaluation of a graph containing n is running.
func (n *Node) SetValue(value *tensor.Tensor) error {
	if value == nil {
		return ErrNilValue
	}
	switch n.kind {
	case KindVariable:
	case KindConstant:
		return ErrImmutableConstant
	default:
		return fmt.Errorf("autodiff: SetValue on %s node %s", n.kind, n)
	}
	n.mu.Lock()
	n.value = value.Clone()
	n.mu.Unlock()
	return nil
}

// Label returns the display label: the name for inputs, variables and
// outputs, the value for constants and the symbol for operations.
func (n *Node) Label() string {
	switch n.kind {
	case KindInput, KindVariable:
		return n.name
	case KindConstant:
		if n.name != "" {
			return n.name
		}
		return n.Value().Format(4)
	case KindOperation:
		if n.output && n.name != "" {
			return n.name
		}
		return n.op.Symbol()
	default:
		return "?"
	}
}

// String implements fmt.Stringer.
func (n *Node) String() string {
	if n.kind == KindOperation {
		return fmt.Sprintf("%s(%s)", n.op.Kind(), n.Label())
	}
	return fmt.Sprintf("%s(%s)", n.kind, n.Label())
}
