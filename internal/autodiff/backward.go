package autodiff

import (
	"fmt"

	"github.com/born-ml/vizml/internal/tensor"
)

// slotKey identifies one input edge by its consumer and input position.
type slotKey struct {
	consumer *Node
	slot     int
}

// Gradients holds the result of one backward pass: the total gradient of the
// seed with respect to every upstream node, and the contribution carried by
// each input edge.
type Gradients struct {
	graph         *Graph
	seed          *Node
	grads         map[*Node]*tensor.Tensor
	contributions map[slotKey]*tensor.Tensor
}

// Differentiate runs the backward pass from seed with an all-ones seed
// gradient shaped like the seed's forward value.
func Differentiate(g *Graph, ev *Evaluation, seed *Node) (*Gradients, error) {
	if err := checkBackward(g, ev, seed); err != nil {
		return nil, err
	}
	return backward(g, ev, seed, tensor.OnesLike(ev.values[seed]))
}

// DifferentiateWith runs the backward pass from seed with an explicit seed
// gradient. grad must have the seed value's shape or hold a single value,
// which is broadcast.
func DifferentiateWith(g *Graph, ev *Evaluation, seed *Node, grad *tensor.Tensor) (*Gradients, error) {
	if err := checkBackward(g, ev, seed); err != nil {
		return nil, err
	}
	if grad == nil {
		return nil, fmt.Errorf("seed gradient: %w", ErrNilValue)
	}

	shape := ev.values[seed].Shape()
	switch {
	case grad.Shape().Equal(shape):
	case grad.NumElements() == 1:
		grad = tensor.Full(shape, grad.Data()[0])
	default:
		return nil, fmt.Errorf("seed gradient %v for value %v: %w", grad.Shape(), shape, ErrShapeMismatch)
	}
	return backward(g, ev, seed, grad)
}

func checkBackward(g *Graph, ev *Evaluation, seed *Node) error {
	if g == nil {
		return ErrNilGraph
	}
	if ev == nil {
		return ErrNilEvaluation
	}
	if ev.graph != g {
		return ErrForeignEvaluation
	}
	if !g.Contains(seed) {
		return fmt.Errorf("seed %s: %w", seed, ErrUnknownNode)
	}
	return nil
}

// backward walks the topological order from the seed down to the first node.
// When a node is reached every consumer upstream of the seed has already been
// processed, so its accumulated gradient is final.
func backward(g *Graph, ev *Evaluation, seed *Node, seedGrad *tensor.Tensor) (*Gradients, error) {
	gr := &Gradients{
		graph:         g,
		seed:          seed,
		grads:         map[*Node]*tensor.Tensor{seed: seedGrad},
		contributions: make(map[slotKey]*tensor.Tensor),
	}

	for i := g.index[seed]; i >= 0; i-- {
		n := g.order[i]
		outGrad, ok := gr.grads[n]
		if !ok || n.kind != KindOperation {
			continue
		}

		inputs := ev.inputValues(n)
		inGrads, err := n.op.Backward(outGrad, inputs, ev.values[n])
		if err != nil {
			return nil, &NodeError{Node: n, Pass: passBackward, Err: err}
		}
		if len(inGrads) != len(n.inputs) {
			return nil, &NodeError{Node: n, Pass: passBackward, Err: fmt.Errorf("%w: %d gradients for %d inputs", ErrArity, len(inGrads), len(n.inputs))}
		}

		if err := gr.accumulate(n, inputs, inGrads); err != nil {
			return nil, err
		}
	}
	return gr, nil
}

// accumulate records each input edge's contribution and adds it to the
// input's running total.
func (gr *Gradients) accumulate(n *Node, inputs, inGrads []*tensor.Tensor) error {
	for slot, in := range n.inputs {
		grad := inGrads[slot]
		if !grad.Shape().Equal(inputs[slot].Shape()) {
			return &NodeError{Node: n, Pass: passBackward, Err: fmt.Errorf("gradient %v for input %d of shape %v: %w", grad.Shape(), slot, inputs[slot].Shape(), ErrShapeMismatch)}
		}
		gr.contributions[slotKey{consumer: n, slot: slot}] = grad

		existing, ok := gr.grads[in]
		if !ok {
			gr.grads[in] = grad
			continue
		}
		sum, err := tensor.Add(existing, grad)
		if err != nil {
			return &NodeError{Node: n, Pass: passBackward, Err: err}
		}
		gr.grads[in] = sum
	}
	return nil
}

// Graph returns the differentiated graph.
func (gr *Gradients) Graph() *Graph {
	return gr.graph
}

// Seed returns the node the pass started from.
func (gr *Gradients) Seed() *Node {
	return gr.seed
}

// Of returns the total gradient of the seed with respect to n, or nil if n is
// not upstream of the seed.
func (gr *Gradients) Of(n *Node) *tensor.Tensor {
	return gr.grads[n]
}

// Scalar returns the gradient of n as a float64.
func (gr *Gradients) Scalar(n *Node) (float64, error) {
	return scalarOf(gr.grads, n)
}

// Contribution returns the gradient that consumer passed back through its
// input slot, or nil if no gradient flowed along that edge.
func (gr *Gradients) Contribution(consumer *Node, slot int) *tensor.Tensor {
	return gr.contributions[slotKey{consumer: consumer, slot: slot}]
}

// Len returns the number of nodes that received a gradient.
func (gr *Gradients) Len() int {
	return len(gr.grads)
}
