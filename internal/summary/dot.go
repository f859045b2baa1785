package summary

import (
	"fmt"
	"strings"

	"reposcope/internal/analyzer"
)

// MaxDOTNodes caps the size of rendered dependency diagrams; beyond this the
// output stops being readable and DOT generation is skipped.
const MaxDOTNodes = 50

var langColors = map[analyzer.Language]string{
	analyzer.LangPython:     "#FFB6C1",
	analyzer.LangJavaScript: "#98FB98",
	analyzer.LangJava:       "#87CEEB",
	analyzer.LangGo:         "#DDA0DD",
	analyzer.LangTerraform:  "#FFA07A",
}

// DOT renders the dependency edges as a Graphviz digraph. Only nodes that
// participate in at least one edge are drawn. Returns "" when the graph has
// no edges or exceeds MaxDOTNodes connected nodes.
func DOT(g *analyzer.Graph) string {
	connected := make(map[string]bool)
	for _, e := range g.Edges {
		connected[e.Source] = true
		connected[e.Target] = true
	}
	if len(connected) == 0 || len(connected) > MaxDOTNodes {
		return ""
	}

	var b strings.Builder
	b.WriteString("digraph dependencies {\n")
	b.WriteString("  rankdir = LR;\n")
	b.WriteString("  node [shape=box, style=\"filled,rounded\"];\n\n")

	for _, p := range g.Paths() {
		if !connected[p] {
			continue
		}
		color := langColors[g.Nodes[p].Language]
		if color == "" {
			color = "#DCDCDC"
		}
		fmt.Fprintf(&b, "  %q [label=%q, fillcolor=%q];\n", p, p, color)
	}
	b.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&b, "  %q -> %q;\n", e.Source, e.Target)
	}
	b.WriteString("}\n")
	return b.String()
}
