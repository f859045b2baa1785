package analyzer

import (
	"slices"
	"testing"
)

func TestReferences_Python(t *testing.T) {
	src := "import os\nfrom pkg.util import strings\nimport pkg.util\n"
	got := References(LangPython, src)
	want := []string{"pkg.util", "os"}
	if !slices.Equal(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestReferences_JavaScript(t *testing.T) {
	src := `import { a } from './lib/a';
const b = require("../b");
export { c } from "./c";
const d = await import('./d');
`
	got := References(LangJavaScript, src)
	want := []string{"./lib/a", "./c", "../b", "./d"}
	if !slices.Equal(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestReferences_Java(t *testing.T) {
	src := "package com.example;\nimport com.example.util.Strings;\nimport static com.example.C.f;\n"
	got := References(LangJava, src)
	want := []string{"com.example.util.Strings", "com.example.C.f"}
	if !slices.Equal(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestReferences_Terraform(t *testing.T) {
	src := `module "vpc" {
  source = "./vpc"
}
module "registry" {
  source = "terraform-aws-modules/vpc/aws"
}
`
	got := References(LangTerraform, src)
	want := []string{"./vpc", "terraform-aws-modules/vpc/aws"}
	if !slices.Equal(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestReferences_UnknownLanguageIsEmpty(t *testing.T) {
	if got := References(LangUnknown, "import x"); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestReferences_Deduplicates(t *testing.T) {
	src := "import os\nimport os\n"
	got := References(LangPython, src)
	if len(got) != 1 || got[0] != "os" {
		t.Fatalf("got=%v", got)
	}
}

func TestLanguageForPath(t *testing.T) {
	cases := map[string]Language{
		"main.py":        LangPython,
		"src/App.TSX":    LangJavaScript,
		"Main.java":      LangJava,
		"cmd/api/m.go":   LangGo,
		"vpc/main.tf":    LangTerraform,
		"vars.tfvars":    LangTerraform,
		"README.md":      LangUnknown,
		"Dockerfile":     LangUnknown,
		"styles/app.css": LangUnknown,
	}
	for path, want := range cases {
		if got := LanguageForPath(path); got != want {
			t.Fatalf("LanguageForPath(%q)=%q want %q", path, got, want)
		}
	}
}
