package autodiff

import (
	"fmt"

	"github.com/born-ml/vizml/internal/tensor"
)

// Feed maps Input node names to their values for one evaluation.
type Feed map[string]*tensor.Tensor

// FeedScalars builds a Feed of scalar values.
func FeedScalars(values map[string]float64) Feed {
	feed := make(Feed, len(values))
	for name, v := range values {
		feed[name] = tensor.Scalar(v)
	}
	return feed
}

// Evaluation holds the forward values of one pass over a graph.
type Evaluation struct {
	graph  *Graph
	values map[*Node]*tensor.Tensor
}

// Evaluate runs the forward pass over g in topological order.
//
// Inputs are resolved from feed by name, Variables and Constants contribute
// their stored value, and Operations apply their forward rule to the values of
// their inputs. A failed pass returns no Evaluation.
func Evaluate(g *Graph, feed Feed) (*Evaluation, error) {
	return evaluate(g, feed, nil)
}

// evaluate runs the forward pass, taking the value of any node present in
// overrides as given instead of computing it.
func evaluate(g *Graph, feed Feed, overrides map[*Node]*tensor.Tensor) (*Evaluation, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	ev := &Evaluation{
		graph:  g,
		values: make(map[*Node]*tensor.Tensor, len(g.order)),
	}

	for _, n := range g.order {
		if v, ok := overrides[n]; ok {
			ev.values[n] = v
			continue
		}

		switch n.kind {
		case KindInput:
			v := feed[n.name]
			if v == nil {
				return nil, &MissingFeedError{Name: n.name}
			}
			ev.values[n] = v
		case KindVariable, KindConstant:
			ev.values[n] = n.Value()
		case KindOperation:
			inputs := ev.inputValues(n)
			out, err := n.op.Forward(inputs)
			if err != nil {
				return nil, &NodeError{Node: n, Pass: passForward, Err: err}
			}
			ev.values[n] = out
		default:
			return nil, fmt.Errorf("autodiff: unknown node kind %d", n.kind)
		}
	}
	return ev, nil
}

const (
	passForward  = "forward"
	passBackward = "backward"
)

func (ev *Evaluation) inputValues(n *Node) []*tensor.Tensor {
	vals := make([]*tensor.Tensor, len(n.inputs))
	for i, in := range n.inputs {
		vals[i] = ev.values[in]
	}
	return vals
}

// Graph returns the evaluated graph.
func (ev *Evaluation) Graph() *Graph {
	return ev.graph
}

// Value returns the forward value of n, or nil if n is not in the graph.
func (ev *Evaluation) Value(n *Node) *tensor.Tensor {
	return ev.values[n]
}

// Scalar returns the forward value of n as a float64.
func (ev *Evaluation) Scalar(n *Node) (float64, error) {
	return scalarOf(ev.values, n)
}

// Len returns the number of evaluated nodes.
func (ev *Evaluation) Len() int {
	return len(ev.values)
}

func scalarOf(values map[*Node]*tensor.Tensor, n *Node) (float64, error) {
	v, ok := values[n]
	if !ok {
		return 0, fmt.Errorf("%s: %w", n, ErrUnknownNode)
	}
	if v.NumElements() != 1 {
		return 0, fmt.Errorf("%s has shape %v: %w", n, v.Shape(), ErrNotScalar)
	}
	return v.Data()[0], nil
}
