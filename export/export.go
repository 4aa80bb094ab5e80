// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package export encodes evaluated computation graphs as diagrams.
//
// Example:
//
//	d, _ := export.Snapshot(g, ev, grads, export.DefaultOptions())
//	_ = export.WriteDOT(os.Stdout, d, "LR")
package export

import (
	"io"

	"github.com/born-ml/vizml/autodiff"
	"github.com/born-ml/vizml/internal/config"
	"github.com/born-ml/vizml/internal/export"
)

// Diagram types.
type (
	Diagram  = export.Diagram
	Node     = export.Node
	Edge     = export.Edge
	Category = export.Category
	Options  = export.Options
	Format   = export.Format
)

// Node categories.
const (
	CategoryInput     = export.CategoryInput
	CategoryOutput    = export.CategoryOutput
	CategoryConstant  = export.CategoryConstant
	CategoryVariable  = export.CategoryVariable
	CategoryOperation = export.CategoryOperation
)

// Formats.
const (
	FormatDOT     = export.FormatDOT
	FormatMermaid = export.FormatMermaid
	FormatJSON    = export.FormatJSON
	FormatYAML    = export.FormatYAML
)

// DefaultOptions shows values and gradients with 4 decimals.
func DefaultOptions() Options {
	return export.DefaultOptions()
}

// OptionsFromConfig builds Options from the export configuration section.
func OptionsFromConfig(cfg config.ExportConfig) Options {
	return export.OptionsFromConfig(cfg)
}

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	return export.ParseFormat(s)
}

// Snapshot captures g, and optionally its values and gradients, as a Diagram.
func Snapshot(g *autodiff.Graph, ev *autodiff.Evaluation, grads *autodiff.Gradients, opts Options) (*Diagram, error) {
	return export.Snapshot(g, ev, grads, opts)
}

// Write encodes d in format.
func Write(w io.Writer, d *Diagram, format Format, direction string) error {
	return export.Write(w, d, format, direction)
}

// WriteDOT encodes d as a Graphviz digraph.
func WriteDOT(w io.Writer, d *Diagram, direction string) error {
	return export.WriteDOT(w, d, direction)
}

// WriteMermaid encodes d as a Mermaid flowchart.
func WriteMermaid(w io.Writer, d *Diagram, direction string) error {
	return export.WriteMermaid(w, d, direction)
}

// WriteJSON encodes d as JSON.
func WriteJSON(w io.Writer, d *Diagram) error {
	return export.WriteJSON(w, d)
}

// WriteYAML encodes d as YAML.
func WriteYAML(w io.Writer, d *Diagram) error {
	return export.WriteYAML(w, d)
}

// WriteGraph snapshots g and encodes it to w.
func WriteGraph(w io.Writer, g *autodiff.Graph, ev *autodiff.Evaluation, grads *autodiff.Gradients, format Format, opts Options) error {
	return export.WriteGraph(w, g, ev, grads, format, opts)
}
