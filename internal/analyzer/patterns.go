package analyzer

import "regexp"

// refRule extracts one reference target per match via its single capture group.
type refRule struct {
	re *regexp.Regexp
}

// langRules maps each language to its ordered extraction rules. The order only
// affects the order references are reported in; resolution treats the result
// as a set. Adding a language is purely additive: insert a new entry here and
// in extLanguage.
var langRules = map[Language][]refRule{
	LangPython: {
		{re: regexp.MustCompile(`(?m)^\s*from\s+([\w.]+)\s+import\b`)},
		{re: regexp.MustCompile(`(?m)^\s*import\s+([\w.]+)`)},
	},
	LangJavaScript: {
		{re: regexp.MustCompile(`(?m)(?:import|export)[^\n]*?\bfrom\s+['"]([^'"]+)['"]`)},
		{re: regexp.MustCompile(`(?m)\brequire\s*\(\s*['"]([^'"]+)['"]`)},
		{re: regexp.MustCompile(`(?m)\bimport\s*\(\s*['"]([^'"]+)['"]`)},
	},
	LangJava: {
		{re: regexp.MustCompile(`(?m)^\s*import\s+(?:static\s+)?([\w.]+)\s*;`)},
	},
	LangGo: {
		{re: regexp.MustCompile(`(?m)^\s*import\s+(?:\w+\s+)?"([^"]+)"`)},
		{re: regexp.MustCompile(`(?m)^\s*(?:\w+\s+)?"([^"]+)"\s*$`)},
	},
	LangTerraform: {
		{re: regexp.MustCompile(`(?m)^\s*source\s*=\s*["']([^"']+)["']`)},
	},
}

// References applies the language's extraction rules to text and returns the
// raw reference strings in order of first appearance, deduplicated. Unknown
// languages yield nil.
func References(lang Language, text string) []string {
	rules := langRules[lang]
	if len(rules) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	var refs []string
	for _, rule := range rules {
		for _, m := range rule.re.FindAllStringSubmatch(text, -1) {
			ref := m[1]
			if ref == "" || seen[ref] {
				continue
			}
			seen[ref] = true
			refs = append(refs, ref)
		}
	}
	return refs
}
