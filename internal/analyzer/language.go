package analyzer

import (
	"path/filepath"
	"strings"
)

// Language tags the closed set of languages the analyzer understands.
// Files outside this set still appear in the graph as nodes; they simply
// contribute no outgoing references.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangJava       Language = "java"
	LangGo         Language = "go"
	LangTerraform  Language = "terraform"
	LangUnknown    Language = "unknown"
)

var extLanguage = map[string]Language{
	".py":     LangPython,
	".js":     LangJavaScript,
	".jsx":    LangJavaScript,
	".ts":     LangJavaScript,
	".tsx":    LangJavaScript,
	".java":   LangJava,
	".go":     LangGo,
	".tf":     LangTerraform,
	".tfvars": LangTerraform,
}

// LanguageForPath classifies a file by extension.
func LanguageForPath(path string) Language {
	if lang, ok := extLanguage[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return LangUnknown
}
