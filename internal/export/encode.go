package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/vizml/internal/config"
)

// Format is a diagram encoding.
type Format string

// Supported formats.
const (
	FormatDOT     Format = config.FormatDOT
	FormatMermaid Format = config.FormatMermaid
	FormatJSON    Format = config.FormatJSON
	FormatYAML    Format = config.FormatYAML
)

// ParseFormat returns the Format named by s, ignoring case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatDOT, FormatMermaid, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %q", s)
	}
}

// Write encodes d to w in the given format. direction applies to DOT and
// Mermaid only.
func Write(w io.Writer, d *Diagram, format Format, direction string) error {
	if d == nil {
		return fmt.Errorf("diagram is required")
	}
	switch format {
	case FormatDOT:
		return WriteDOT(w, d, direction)
	case FormatMermaid:
		return WriteMermaid(w, d, direction)
	case FormatJSON:
		return WriteJSON(w, d)
	case FormatYAML:
		return WriteYAML(w, d)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteJSON encodes d as indented JSON.
func WriteJSON(w io.Writer, d *Diagram) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteYAML encodes d as YAML.
func WriteYAML(w io.Writer, d *Diagram) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

type style struct {
	shape string
	fill  string
}

var categoryStyles = map[Category]style{
	CategoryInput:     {shape: "box", fill: "#74b9ff"},
	CategoryVariable:  {shape: "box", fill: "#ffd93d"},
	CategoryConstant:  {shape: "box", fill: "#dfe6e9"},
	CategoryOperation: {shape: "ellipse", fill: "#ffffff"},
	CategoryOutput:    {shape: "doubleoctagon", fill: "#ff6b6b"},
}

// WriteDOT encodes d as a Graphviz digraph.
func WriteDOT(w io.Writer, d *Diagram, direction string) error {
	var sb strings.Builder

	sb.WriteString("digraph G {\n")
	sb.WriteString(fmt.Sprintf("    rankdir=%s;\n", directionOrDefault(direction)))
	sb.WriteString("    node [style=filled];\n")
	sb.WriteString("\n")

	for _, n := range d.Nodes {
		st := categoryStyles[n.Category]
		sb.WriteString(fmt.Sprintf("    n%d [label=\"%s\", shape=%s, fillcolor=\"%s\"];\n",
			n.ID, escapeDOTLabel(nodeText(n, "\n")), st.shape, st.fill))
	}
	sb.WriteString("\n")

	for _, e := range d.Edges {
		if text := edgeText(e); text != "" {
			sb.WriteString(fmt.Sprintf("    n%d -> n%d [label=\"%s\"];\n", e.From, e.To, escapeDOTLabel(text)))
		} else {
			sb.WriteString(fmt.Sprintf("    n%d -> n%d;\n", e.From, e.To))
		}
	}

	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteMermaid encodes d as a Mermaid flowchart.
func WriteMermaid(w io.Writer, d *Diagram, direction string) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("flowchart %s\n", directionOrDefault(direction)))

	for _, n := range d.Nodes {
		sb.WriteString(fmt.Sprintf("    n%d[\"%s\"]:::%s\n", n.ID, escapeMermaidLabel(nodeText(n, "<br/>")), n.Category))
	}
	sb.WriteString("\n")

	for _, e := range d.Edges {
		if text := edgeText(e); text != "" {
			sb.WriteString(fmt.Sprintf("    n%d -->|\"%s\"| n%d\n", e.From, escapeMermaidLabel(text), e.To))
		} else {
			sb.WriteString(fmt.Sprintf("    n%d --> n%d\n", e.From, e.To))
		}
	}

	sb.WriteString("\n")
	for _, c := range []Category{CategoryInput, CategoryVariable, CategoryConstant, CategoryOperation, CategoryOutput} {
		sb.WriteString(fmt.Sprintf("    classDef %s fill:%s,stroke:#333\n", c, categoryStyles[c].fill))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// nodeText joins the label, value and gradient lines with sep.
func nodeText(n Node, sep string) string {
	lines := []string{n.Label}
	if n.Value != "" {
		lines = append(lines, "= "+n.Value)
	}
	if n.Gradient != "" {
		lines = append(lines, "∇ "+n.Gradient)
	}
	return strings.Join(lines, sep)
}

func edgeText(e Edge) string {
	switch {
	case e.Value != "" && e.Gradient != "":
		return e.Value + " / ∇ " + e.Gradient
	case e.Value != "":
		return e.Value
	case e.Gradient != "":
		return "∇ " + e.Gradient
	default:
		return ""
	}
}

func directionOrDefault(direction string) string {
	switch direction {
	case "LR", "TB", "RL", "BT":
		return direction
	default:
		return "LR"
	}
}

func escapeDOTLabel(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"\"", "\\\"",
		"\n", "\\n",
	)
	return replacer.Replace(s)
}

func escapeMermaidLabel(s string) string {
	replacer := strings.NewReplacer(
		"\"", "#quot;",
		"<br/>", "<br/>",
		"<", "&lt;",
		">", "&gt;",
	)
	return replacer.Replace(s)
}
