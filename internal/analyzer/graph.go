package analyzer

import (
	"fmt"
	"log"
	"os"
	"sort"
	"unicode/utf8"

	"reposcope/internal/scan"
)

// Node is one analyzed repository file.
type Node struct {
	// Path is the unique, normalized, forward-slash repo-relative path.
	Path     string
	Language Language
	// Terraform carries block tallies for .tf/.tfvars files; nil otherwise.
	Terraform *TerraformStats
}

// Edge records that Source references Target. Edges have set semantics: at
// most one edge per (source, target) pair, and never source == target.
type Edge struct {
	Source string
	Target string
}

// Reference ties a raw reference string to the file it was extracted from.
type Reference struct {
	File string
	Ref  string
}

// Failure records a file that could not be analyzed and why. Such files are
// excluded from the graph; they never abort the build.
type Failure struct {
	Path   string
	Reason string
}

// Graph is the dependency graph of one analyzed checkout. It is built once
// per analysis run and must be treated as read-only afterwards; re-analysis
// replaces the whole graph.
type Graph struct {
	Root  string
	Nodes map[string]*Node
	// Edges is sorted by (Source, Target). Both endpoints are always
	// present in Nodes.
	Edges []Edge
	// Unresolved lists references that matched no repository file.
	Unresolved []Reference
	// External lists Terraform registry/remote module sources, which are
	// intentionally not resolved to local files.
	External []Reference
	Failures []Failure
	// ExtCounts is the extension histogram over all walked files.
	ExtCounts map[string]int
	DirCount  int
}

// Build walks the checkout under root and constructs its dependency graph.
// Per-file read and decode failures are recorded and skipped; only a failure
// to walk the root itself is returned as an error.
func Build(root string) (*Graph, error) {
	type pending struct {
		path    string
		lang    Language
		content string
	}

	g := &Graph{
		Root:      root,
		Nodes:     make(map[string]*Node),
		ExtCounts: make(map[string]int),
	}

	var visits []scan.FileVisit
	err := scan.Walk(root, func(fv scan.FileVisit) {
		if fv.IsDir {
			g.DirCount++
			return
		}
		if fv.Ext != "" {
			g.ExtCounts[fv.Ext]++
		}
		visits = append(visits, fv)
	})
	if err != nil {
		return nil, fmt.Errorf("analyzer: walk %s: %w", root, err)
	}

	var files []pending
	for _, fv := range visits {
		b, err := os.ReadFile(fv.AbsPath)
		if err != nil {
			log.Printf("analyzer: skipping %s: %v", fv.Path, err)
			g.Failures = append(g.Failures, Failure{Path: fv.Path, Reason: fmt.Sprintf("read error: %v", err)})
			continue
		}
		if !utf8.Valid(b) {
			log.Printf("analyzer: skipping %s: not valid utf-8", fv.Path)
			g.Failures = append(g.Failures, Failure{Path: fv.Path, Reason: "not valid utf-8"})
			continue
		}
		files = append(files, pending{path: fv.Path, lang: LanguageForPath(fv.Path), content: string(b)})
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.path)
	}
	resolver := NewResolver(paths)

	edgeSet := make(map[Edge]bool)
	for _, f := range files {
		node := &Node{Path: f.path, Language: f.lang}
		if f.lang == LangTerraform {
			stats := AnalyzeTerraform(f.path, []byte(f.content))
			node.Terraform = &stats
		}
		g.Nodes[f.path] = node

		for _, ref := range References(f.lang, f.content) {
			res := resolver.Resolve(f.lang, f.path, ref)
			switch res.Outcome {
			case Resolved:
				if res.Path == f.path {
					continue
				}
				edgeSet[Edge{Source: f.path, Target: res.Path}] = true
			case External:
				g.External = append(g.External, Reference{File: f.path, Ref: ref})
			default:
				g.Unresolved = append(g.Unresolved, Reference{File: f.path, Ref: ref})
			}
		}
	}

	g.Edges = make([]Edge, 0, len(edgeSet))
	for e := range edgeSet {
		g.Edges = append(g.Edges, e)
	}
	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].Source != g.Edges[j].Source {
			return g.Edges[i].Source < g.Edges[j].Source
		}
		return g.Edges[i].Target < g.Edges[j].Target
	})
	return g, nil
}

// Paths returns all node paths in sorted order.
func (g *Graph) Paths() []string {
	out := make([]string, 0, len(g.Nodes))
	for p := range g.Nodes {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// OutDegree returns the number of outgoing edges per node path.
func (g *Graph) OutDegree() map[string]int {
	out := make(map[string]int, len(g.Nodes))
	for _, e := range g.Edges {
		out[e.Source]++
	}
	return out
}

// Neighbors returns the targets of the node's outgoing edges plus the sources
// of its incoming ones.
func (g *Graph) Neighbors(path string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range g.Edges {
		switch {
		case e.Source == path && !seen[e.Target]:
			seen[e.Target] = true
			out = append(out, e.Target)
		case e.Target == path && !seen[e.Source]:
			seen[e.Source] = true
			out = append(out, e.Source)
		}
	}
	return out
}
