package autodiff

import "fmt"

// Edge is a directed input edge: From feeds slot Slot of To.
type Edge struct {
	From *Node
	To   *Node
	Slot int
}

// Graph is the immutable set of nodes reachable from a list of roots,
// together with a cached topological order. A Graph owns no values and may be
// evaluated any number of times, including concurrently.
type Graph struct {
	roots []*Node
	nodes []*Node       // discovery order
	order []*Node       // topological order
	index map[*Node]int // node -> position in order
}

// Build collects every node reachable from roots through input edges.
// Shared nodes appear once. Duplicate roots are collapsed.
func Build(roots ...*Node) (*Graph, error) {
	if len(roots) == 0 {
		return nil, ErrNoRoots
	}

	g := &Graph{}
	state := make(map[*Node]visitState)
	var stack []*Node

	var visit func(n *Node) error
	visit = func(n *Node) error {
		switch state[n] {
		case visitDone:
			return nil
		case visitActive:
			return &CycleError{Path: cyclePath(stack, n)}
		}
		state[n] = visitActive
		stack = append(stack, n)
		g.nodes = append(g.nodes, n)

		for i, in := range n.inputs {
			if in == nil {
				return fmt.Errorf("input %d of %s: %w", i, n, ErrNilNode)
			}
			if err := visit(in); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		state[n] = visitDone
		return nil
	}

	for i, r := range roots {
		if r == nil {
			return nil, fmt.Errorf("root %d: %w", i, ErrNilNode)
		}
		if state[r] == visitDone {
			continue
		}
		g.roots = append(g.roots, r)
		if err := visit(r); err != nil {
			return nil, err
		}
	}

	order, err := TopologicalOrder(g)
	if err != nil {
		return nil, err
	}
	g.order = order
	g.index = make(map[*Node]int, len(order))
	for i, n := range order {
		g.index[n] = i
	}
	return g, nil
}

type visitState uint8

const (
	visitNone visitState = iota
	visitActive
	visitDone
)

// cyclePath returns the stack suffix starting at n, closed with n.
func cyclePath(stack []*Node, n *Node) []*Node {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == n {
			path := append([]*Node(nil), stack[i:]...)
			return append(path, n)
		}
	}
	return []*Node{n, n}
}

// Roots returns the deduplicated roots in caller order.
func (g *Graph) Roots() []*Node {
	return append([]*Node(nil), g.roots...)
}

// Nodes returns every node in discovery order.
func (g *Graph) Nodes() []*Node {
	return append([]*Node(nil), g.nodes...)
}

// Order returns the nodes in topological order: every input precedes its consumers.
func (g *Graph) Order() []*Node {
	return append([]*Node(nil), g.order...)
}

// ReverseOrder returns the topological order reversed.
func (g *Graph) ReverseOrder() []*Node {
	rev := make([]*Node, len(g.order))
	for i, n := range g.order {
		rev[len(g.order)-1-i] = n
	}
	return rev
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// Contains reports whether n belongs to the graph.
func (g *Graph) Contains(n *Node) bool {
	_, ok := g.index[n]
	return ok
}

// Index returns the topological position of n, or -1 if n is not in the graph.
// The index is stable for the lifetime of the graph and serves as the node id
// in exported diagrams.
func (g *Graph) Index(n *Node) int {
	i, ok := g.index[n]
	if !ok {
		return -1
	}
	return i
}

// Edges returns every input edge, ordered by consumer position then slot.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, n := range g.order {
		for slot, in := range n.inputs {
			edges = append(edges, Edge{From: in, To: n, Slot: slot})
		}
	}
	return edges
}

// Consumers returns the consumers of n that belong to the graph.
func (g *Graph) Consumers(n *Node) []*Node {
	var out []*Node
	for _, c := range n.consumers {
		if g.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// Inputs returns the Input nodes in topological order.
func (g *Graph) Inputs() []*Node {
	return g.ofKind(KindInput)
}

// Variables returns the Variable nodes in topological order.
func (g *Graph) Variables() []*Node {
	return g.ofKind(KindVariable)
}

// Outputs returns the nodes created with Output, in topological order.
func (g *Graph) Outputs() []*Node {
	var out []*Node
	for _, n := range g.order {
		if n.output {
			out = append(out, n)
		}
	}
	return out
}

func (g *Graph) ofKind(kind NodeKind) []*Node {
	var out []*Node
	for _, n := range g.order {
		if n.kind == kind {
			out = append(out, n)
		}
	}
	return out
}
