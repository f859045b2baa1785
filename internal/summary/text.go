package summary

import (
	"fmt"
	"sort"
	"strings"

	"reposcope/internal/analyzer"
)

// Render produces the human-readable repository report.
func Render(g *analyzer.Graph) string {
	var b strings.Builder

	b.WriteString("=== Repository Summary ===\n")
	fmt.Fprintf(&b, "Total files: %d\n", len(g.Nodes))
	fmt.Fprintf(&b, "Total directories: %d\n", g.DirCount)

	if len(g.ExtCounts) > 0 {
		b.WriteString("\nFile types:\n")
		for _, ec := range sortedExtCounts(g.ExtCounts) {
			fmt.Fprintf(&b, "  %s: %d\n", ec.ext, ec.count)
		}
	}

	b.WriteString("\nStructure:\n")
	if tree := PathsToTree(g.Paths()); tree != "" {
		for _, line := range strings.Split(tree, "\n") {
			b.WriteString("  " + line + "\n")
		}
	}

	if top := topConnected(g, 5); len(top) > 0 {
		b.WriteString("\nMost connected files:\n")
		for _, tc := range top {
			fmt.Fprintf(&b, "  %s: %d dependencies\n", tc.path, tc.degree)
		}
	}

	writeTerraformSection(&b, g)

	fmt.Fprintf(&b, "\nResolved dependencies: %d\n", len(g.Edges))
	fmt.Fprintf(&b, "Unresolved references: %d\n", len(g.Unresolved))
	fmt.Fprintf(&b, "External modules: %d\n", len(g.External))
	if len(g.Failures) > 0 {
		fmt.Fprintf(&b, "Skipped files: %d\n", len(g.Failures))
		for _, f := range g.Failures {
			fmt.Fprintf(&b, "  %s (%s)\n", f.Path, f.Reason)
		}
	}
	return b.String()
}

type extCount struct {
	ext   string
	count int
}

func sortedExtCounts(m map[string]int) []extCount {
	out := make([]extCount, 0, len(m))
	for ext, n := range m {
		out = append(out, extCount{ext: ext, count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].ext < out[j].ext
	})
	return out
}

type connected struct {
	path   string
	degree int
}

func topConnected(g *analyzer.Graph, limit int) []connected {
	deg := g.OutDegree()
	out := make([]connected, 0, len(deg))
	for p, d := range deg {
		if d > 0 {
			out = append(out, connected{path: p, degree: d})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].degree != out[j].degree {
			return out[i].degree > out[j].degree
		}
		return out[i].path < out[j].path
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func writeTerraformSection(b *strings.Builder, g *analyzer.Graph) {
	var (
		resources int
		data      int
		modules   []analyzer.ModuleSource
		vars      = make(map[string]bool)
	)
	for _, p := range g.Paths() {
		n := g.Nodes[p]
		if n.Terraform == nil {
			continue
		}
		resources += n.Terraform.Resources
		data += n.Terraform.DataSources
		modules = append(modules, n.Terraform.ModuleSources...)
		for _, v := range n.Terraform.Variables {
			vars[v] = true
		}
	}
	if resources == 0 && data == 0 && len(modules) == 0 && len(vars) == 0 {
		return
	}

	b.WriteString("\n=== Terraform Summary ===\n")
	if len(modules) > 0 {
		b.WriteString("Modules:\n")
		for _, m := range modules {
			fmt.Fprintf(b, "  %s: %s\n", m.Name, m.Source)
		}
	}
	if resources > 0 {
		fmt.Fprintf(b, "Resources: %d\n", resources)
	}
	if data > 0 {
		fmt.Fprintf(b, "Data sources: %d\n", data)
	}
	if len(vars) > 0 {
		names := make([]string, 0, len(vars))
		for v := range vars {
			names = append(names, v)
		}
		sort.Strings(names)
		fmt.Fprintf(b, "Variables referenced: %d\n", len(names))
		if len(names) <= 10 {
			for _, v := range names {
				fmt.Fprintf(b, "  var.%s\n", v)
			}
		}
	}
}
