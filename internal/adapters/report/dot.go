// Package report renders reconstructed lineage as Graphviz, terminal tables and HTML.
package report

import (
	"fmt"
	"strings"

	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/sci/internal/ui/style"
)

// nodeDefaults styles every node of a lineage graph.
const nodeDefaults = "node [shape=box, style=filled, fillcolor=" + style.FileFill +
	", fontname=monospace, penwidth=0, fontsize=11, pad=0];"

// Reporter implements ports.AuditReporter.
type Reporter struct{}

// NewReporter creates a new Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// DOT returns a Graphviz description of g. Nodes are identified by their graph
// id and show their label, so a file and a command with the same text stay
// apart. Nodes and edges keep graph order; command nodes are filled with
// style.CommandFill.
func (r *Reporter) DOT(g *domain.Graph) string {
	var b strings.Builder
	b.WriteString("digraph G {\n")
	b.WriteString("  " + nodeDefaults + "\n")

	for _, n := range g.Nodes {
		if n.Kind == domain.NodeKindCommand {
			fmt.Fprintf(&b, "  %s [label=%s, fillcolor=%q];\n", quote(n.ID), quote(n.Label), style.CommandFill)
			continue
		}
		fmt.Fprintf(&b, "  %s [label=%s];\n", quote(n.ID), quote(n.Label))
	}

	for _, e := range g.Edges {
		fmt.Fprintf(&b, "  %s -> %s;\n", quote(e.From), quote(e.To))
	}

	b.WriteString("}\n")
	return b.String()
}

// quote renders s as a DOT double-quoted id.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
