package autodiff

import "fmt"

// TopologicalOrder computes a reverse-postorder of g: the inputs of a node are
// always visited, and appended, before the node itself. Roots are explored in
// caller order, then any remaining nodes in discovery order.
//
// The result is deterministic for a given graph. An input edge leading to a
// node outside g fails with ErrUnknownNode.
func TopologicalOrder(g *Graph) ([]*Node, error) {
	members := make(map[*Node]struct{}, len(g.nodes))
	for _, n := range g.nodes {
		members[n] = struct{}{}
	}

	visited := make(map[*Node]bool, len(g.nodes))
	result := make([]*Node, 0, len(g.nodes))

	var visit func(n *Node) error
	visit = func(n *Node) error {
		if visited[n] {
			return nil
		}
		visited[n] = true

		// Visit dependencies first
		for _, in := range n.inputs {
			if _, ok := members[in]; !ok {
				return fmt.Errorf("input of %s: %w", n, ErrUnknownNode)
			}
			if err := visit(in); err != nil {
				return err
			}
		}

		result = append(result, n)
		return nil
	}

	for _, r := range g.roots {
		if err := visit(r); err != nil {
			return nil, err
		}
	}
	for _, n := range g.nodes {
		if err := visit(n); err != nil {
			return nil, err
		}
	}
	return result, nil
}
