package analyzer

import (
	"regexp"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// TerraformStats summarizes the blocks declared by a single .tf file.
type TerraformStats struct {
	Resources   int
	Modules     int
	DataSources int
	// ModuleSources lists module blocks with their source addresses, in
	// declaration order.
	ModuleSources []ModuleSource
	// Variables holds the distinct var.* names referenced in the file.
	Variables []string
}

// ModuleSource is one module block's name and source address.
type ModuleSource struct {
	Name   string
	Source string
}

var (
	reTfResource = regexp.MustCompile(`(?m)^\s*resource\s+"[^"]+"\s+"[^"]+"\s*\{`)
	reTfData     = regexp.MustCompile(`(?m)^\s*data\s+"[^"]+"\s+"[^"]+"\s*\{`)
	reTfModule   = regexp.MustCompile(`(?ms)^\s*module\s+"([^"]+)"\s*\{(.*?)^\}`)
	reTfSource   = regexp.MustCompile(`source\s*=\s*"([^"]+)"`)
	reTfVarRef   = regexp.MustCompile(`\bvar\.([a-zA-Z0-9_-]+)`)
)

// AnalyzeTerraform tallies resource/module/data blocks and referenced
// variables in one Terraform file. Well-formed files are parsed with
// hclsyntax; files the parser rejects fall back to a line-based scan so a
// malformed file still contributes approximate counts instead of failing
// the analysis.
func AnalyzeTerraform(filename string, src []byte) TerraformStats {
	stats, ok := analyzeTerraformHCL(filename, src)
	if !ok {
		stats = analyzeTerraformRegex(src)
	}
	stats.Variables = varReferences(src)
	return stats
}

func analyzeTerraformHCL(filename string, src []byte) (TerraformStats, bool) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() || file == nil {
		return TerraformStats{}, false
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return TerraformStats{}, false
	}

	var stats TerraformStats
	for _, block := range body.Blocks {
		switch block.Type {
		case "resource":
			stats.Resources++
		case "data":
			stats.DataSources++
		case "module":
			stats.Modules++
			name := ""
			if len(block.Labels) > 0 {
				name = block.Labels[0]
			}
			if attr, ok := block.Body.Attributes["source"]; ok {
				if val, diags := attr.Expr.Value(nil); !diags.HasErrors() && val.Type() == cty.String {
					stats.ModuleSources = append(stats.ModuleSources, ModuleSource{Name: name, Source: val.AsString()})
				}
			}
		}
	}
	return stats, true
}

func analyzeTerraformRegex(src []byte) TerraformStats {
	var stats TerraformStats
	stats.Resources = len(reTfResource.FindAllIndex(src, -1))
	stats.DataSources = len(reTfData.FindAllIndex(src, -1))
	for _, m := range reTfModule.FindAllSubmatch(src, -1) {
		stats.Modules++
		ms := ModuleSource{Name: string(m[1])}
		if sm := reTfSource.FindSubmatch(m[2]); sm != nil {
			ms.Source = string(sm[1])
		}
		if ms.Source != "" {
			stats.ModuleSources = append(stats.ModuleSources, ms)
		}
	}
	return stats
}

func varReferences(src []byte) []string {
	seen := make(map[string]bool)
	for _, m := range reTfVarRef.FindAllSubmatch(src, -1) {
		seen[string(m[1])] = true
	}
	if len(seen) == 0 {
		return nil
	}
	vars := make([]string, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return vars
}
