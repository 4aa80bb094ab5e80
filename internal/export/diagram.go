// Package export turns an evaluated computation graph into a diagram of
// nodes and edges and encodes it for external renderers.
//
// A Diagram is a plain snapshot: node ids are topological indices, labels
// and categories come from the graph, and values and gradients are
// formatted strings taken from an Evaluation and Gradients when supplied.
// Supported encodings are Graphviz DOT, Mermaid flowcharts, JSON and YAML.
// Rendering to images is left to those tools.
package export

import (
	"fmt"
	"io"

	"github.com/born-ml/vizml/internal/autodiff"
	"github.com/born-ml/vizml/internal/config"
	"github.com/born-ml/vizml/internal/tensor"
)

// Category classifies a diagram node for styling.
type Category string

// Node categories.
const (
	CategoryInput     Category = "input"
	CategoryOutput    Category = "output"
	CategoryConstant  Category = "constant"
	CategoryVariable  Category = "variable"
	CategoryOperation Category = "operation"
)

// Node is one diagram vertex.
type Node struct {
	ID       int      `json:"id" yaml:"id"`
	Label    string   `json:"label" yaml:"label"`
	Category Category `json:"category" yaml:"category"`
	Op       string   `json:"op,omitempty" yaml:"op,omitempty"`
	Shape    []int    `json:"shape,omitempty" yaml:"shape,omitempty"`
	Value    string   `json:"value,omitempty" yaml:"value,omitempty"`
	Gradient string   `json:"gradient,omitempty" yaml:"gradient,omitempty"`
}

// Edge is one input edge. Value is the source node's value and Gradient the
// contribution passed back along this edge.
type Edge struct {
	From     int    `json:"from" yaml:"from"`
	To       int    `json:"to" yaml:"to"`
	Slot     int    `json:"slot" yaml:"slot"`
	Value    string `json:"value,omitempty" yaml:"value,omitempty"`
	Gradient string `json:"gradient,omitempty" yaml:"gradient,omitempty"`
}

// Diagram is an ordered snapshot of a graph.
type Diagram struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Options controls what a snapshot carries.
type Options struct {
	// ShowValues includes forward values on nodes and edges.
	ShowValues bool

	// ShowGradients includes gradients on nodes and edges.
	ShowGradients bool

	// Precision is the number of decimals; -1 formats with the shortest
	// representation.
	Precision int

	// Direction is the layout direction for DOT and Mermaid (LR, TB, RL, BT).
	// Default: "LR"
	Direction string
}

// DefaultOptions shows values and gradients with 4 decimals, left to right.
func DefaultOptions() Options {
	return Options{
		ShowValues:    true,
		ShowGradients: true,
		Precision:     4,
		Direction:     "LR",
	}
}

// OptionsFromConfig builds Options from the export configuration section.
func OptionsFromConfig(cfg config.ExportConfig) Options {
	opts := DefaultOptions()
	opts.ShowValues = cfg.ShowValues
	opts.ShowGradients = cfg.ShowGradients
	opts.Precision = cfg.Precision
	return opts
}

// Snapshot captures g as a Diagram. ev and grads are optional; when present
// they must belong to g.
func Snapshot(g *autodiff.Graph, ev *autodiff.Evaluation, grads *autodiff.Gradients, opts Options) (*Diagram, error) {
	if g == nil {
		return nil, autodiff.ErrNilGraph
	}
	if ev != nil && ev.Graph() != g {
		return nil, fmt.Errorf("snapshot values: %w", autodiff.ErrForeignEvaluation)
	}
	if grads != nil && grads.Graph() != g {
		return nil, fmt.Errorf("snapshot gradients: %w", autodiff.ErrForeignEvaluation)
	}
	if !opts.ShowValues {
		ev = nil
	}
	if !opts.ShowGradients {
		grads = nil
	}

	order := g.Order()
	d := &Diagram{
		Nodes: make([]Node, 0, len(order)),
		Edges: make([]Edge, 0),
	}

	for id, n := range order {
		node := Node{
			ID:       id,
			Label:    n.Label(),
			Category: categoryOf(n),
		}
		if op := n.Op(); op != nil {
			node.Op = op.Kind().String()
		}
		if ev != nil {
			if v := ev.Value(n); v != nil {
				node.Shape = append([]int(nil), v.Shape()...)
				node.Value = v.Format(opts.Precision)
			}
		}
		if grads != nil {
			node.Gradient = format(grads.Of(n), opts.Precision)
		}
		d.Nodes = append(d.Nodes, node)
	}

	for _, e := range g.Edges() {
		edge := Edge{
			From: g.Index(e.From),
			To:   g.Index(e.To),
			Slot: e.Slot,
		}
		if ev != nil {
			edge.Value = format(ev.Value(e.From), opts.Precision)
		}
		if grads != nil {
			edge.Gradient = format(grads.Contribution(e.To, e.Slot), opts.Precision)
		}
		d.Edges = append(d.Edges, edge)
	}
	return d, nil
}

func categoryOf(n *autodiff.Node) Category {
	if n.IsOutput() {
		return CategoryOutput
	}
	switch n.Kind() {
	case autodiff.KindInput:
		return CategoryInput
	case autodiff.KindVariable:
		return CategoryVariable
	case autodiff.KindConstant:
		return CategoryConstant
	default:
		return CategoryOperation
	}
}

func format(t *tensor.Tensor, precision int) string {
	if t == nil {
		return ""
	}
	return t.Format(precision)
}

// WriteGraph snapshots g and encodes it to w.
func WriteGraph(w io.Writer, g *autodiff.Graph, ev *autodiff.Evaluation, grads *autodiff.Gradients, format Format, opts Options) error {
	d, err := Snapshot(g, ev, grads, opts)
	if err != nil {
		return err
	}
	return Write(w, d, format, opts.Direction)
}

// FromConfig returns the format and options of an export configuration.
func FromConfig(cfg config.ExportConfig) (Format, Options, error) {
	format, err := ParseFormat(cfg.Format)
	if err != nil {
		return "", Options{}, err
	}
	return format, OptionsFromConfig(cfg), nil
}
