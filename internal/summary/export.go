// Package summary renders an analyzed graph as a text report, a stable JSON
// document, or a DOT digraph for external renderers.
package summary

import (
	"encoding/json"

	"reposcope/internal/analyzer"
)

// Document is the JSON export of one analyzed checkout. Key names are the
// interop surface for external viewers; keep them stable.
type Document struct {
	FileCount      int            `json:"file_count"`
	DirectoryCount int            `json:"directory_count"`
	FileTypes      map[string]int `json:"file_types"`
	Nodes          []ExportNode   `json:"nodes"`
	Edges          []ExportEdge   `json:"edges"`
	Unresolved     []ExportRef    `json:"unresolved,omitempty"`
	External       []ExportRef    `json:"external_modules,omitempty"`
	Failures       []ExportFail   `json:"failures,omitempty"`
}

type ExportNode struct {
	Path        string `json:"path"`
	Language    string `json:"language"`
	Resources   int    `json:"resources,omitempty"`
	Modules     int    `json:"modules,omitempty"`
	DataSources int    `json:"data_sources,omitempty"`
}

type ExportEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type ExportRef struct {
	File      string `json:"file"`
	Reference string `json:"reference"`
}

type ExportFail struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Export converts a graph into its JSON document form. Nodes are emitted in
// sorted path order, edges in their (already sorted) graph order.
func Export(g *analyzer.Graph) Document {
	doc := Document{
		FileCount:      len(g.Nodes),
		DirectoryCount: g.DirCount,
		FileTypes:      g.ExtCounts,
		Nodes:          make([]ExportNode, 0, len(g.Nodes)),
		Edges:          make([]ExportEdge, 0, len(g.Edges)),
	}
	for _, p := range g.Paths() {
		n := g.Nodes[p]
		en := ExportNode{Path: n.Path, Language: string(n.Language)}
		if n.Terraform != nil {
			en.Resources = n.Terraform.Resources
			en.Modules = n.Terraform.Modules
			en.DataSources = n.Terraform.DataSources
		}
		doc.Nodes = append(doc.Nodes, en)
	}
	for _, e := range g.Edges {
		doc.Edges = append(doc.Edges, ExportEdge{Source: e.Source, Target: e.Target})
	}
	for _, u := range g.Unresolved {
		doc.Unresolved = append(doc.Unresolved, ExportRef{File: u.File, Reference: u.Ref})
	}
	for _, x := range g.External {
		doc.External = append(doc.External, ExportRef{File: x.File, Reference: x.Ref})
	}
	for _, f := range g.Failures {
		doc.Failures = append(doc.Failures, ExportFail{Path: f.Path, Reason: f.Reason})
	}
	return doc
}

// MarshalExport renders the document as indented JSON.
func MarshalExport(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// ParseExport reads a previously exported document back.
func ParseExport(b []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}
