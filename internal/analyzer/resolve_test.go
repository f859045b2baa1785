package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve_RelativeTerraformModule(t *testing.T) {
	r := NewResolver([]string{
		"modules/vpc/main.tf",
		"modules/vpc/subnet/main.tf",
	})

	res := r.Resolve(LangTerraform, "modules/vpc/main.tf", "./subnet")
	require.Equal(t, Resolved, res.Outcome)
	require.Equal(t, "modules/vpc/subnet/main.tf", res.Path)
}

func TestResolve_RegistrySourceIsExternal(t *testing.T) {
	r := NewResolver([]string{"main.tf"})

	res := r.Resolve(LangTerraform, "main.tf", "terraform-aws-modules/vpc/aws")
	require.Equal(t, External, res.Outcome)
	require.Empty(t, res.Path)
}

func TestResolve_EscapeAboveRootIsUnresolved(t *testing.T) {
	r := NewResolver([]string{"src/app.py", "util.py"})

	res := r.Resolve(LangPython, "src/app.py", "../../util")
	require.Equal(t, Unresolved, res.Outcome)
	require.Empty(t, res.Path)
}

func TestResolve_RootAbsoluteReference(t *testing.T) {
	r := NewResolver([]string{"lib/helper.js", "src/app.js"})

	res := r.Resolve(LangJavaScript, "src/app.js", "/lib/helper")
	require.Equal(t, Resolved, res.Outcome)
	require.Equal(t, "lib/helper.js", res.Path)
}

func TestResolve_DottedPythonImport(t *testing.T) {
	r := NewResolver([]string{"pkg/util/strings.py", "app/main.py"})

	// from repo root
	res := r.Resolve(LangPython, "app/main.py", "pkg.util.strings")
	require.Equal(t, Resolved, res.Outcome)
	require.Equal(t, "pkg/util/strings.py", res.Path)

	// package import lands on __init__.py
	r2 := NewResolver([]string{"pkg/util/__init__.py", "app/main.py"})
	res2 := r2.Resolve(LangPython, "app/main.py", "pkg.util")
	require.Equal(t, Resolved, res2.Outcome)
	require.Equal(t, "pkg/util/__init__.py", res2.Path)
}

func TestResolve_RelativePythonImport(t *testing.T) {
	r := NewResolver([]string{"pkg/a.py", "pkg/b.py", "pkg/sub/c.py"})

	res := r.Resolve(LangPython, "pkg/a.py", ".b")
	require.Equal(t, Resolved, res.Outcome)
	require.Equal(t, "pkg/b.py", res.Path)

	res = r.Resolve(LangPython, "pkg/sub/c.py", "..b")
	require.Equal(t, Resolved, res.Outcome)
	require.Equal(t, "pkg/b.py", res.Path)
}

func TestResolve_ExtensionProbeOrderIsStable(t *testing.T) {
	// Both helper.py and helper.js exist; .py comes first in the fixed
	// probe order, so it must win every time.
	r := NewResolver([]string{"src/helper.py", "src/helper.js", "src/app.js"})

	for i := 0; i < 10; i++ {
		res := r.Resolve(LangJavaScript, "src/app.js", "./helper")
		require.Equal(t, Resolved, res.Outcome)
		require.Equal(t, "src/helper.py", res.Path)
	}
}

func TestResolve_DeterministicAndIdempotent(t *testing.T) {
	files := []string{"a/x.py", "a/y.py", "b/z.py"}
	first := NewResolver(files).Resolve(LangPython, "a/x.py", ".y")
	for i := 0; i < 5; i++ {
		again := NewResolver(files).Resolve(LangPython, "a/x.py", ".y")
		require.Equal(t, first, again)
	}
}

func TestResolve_SelfReferenceUnresolved(t *testing.T) {
	r := NewResolver([]string{"pkg/a.py"})

	res := r.Resolve(LangPython, "pkg/a.py", ".a")
	require.Equal(t, Unresolved, res.Outcome)
}

func TestResolve_MissIsNotAnError(t *testing.T) {
	r := NewResolver([]string{"main.py"})

	res := r.Resolve(LangPython, "main.py", "numpy")
	require.Equal(t, Unresolved, res.Outcome)
}

func TestIsRegistrySource(t *testing.T) {
	cases := map[string]bool{
		"./subnet":                       false,
		"../shared/vpc":                  false,
		"/modules/vpc":                   false,
		"terraform-aws-modules/vpc/aws":  true,
		"app.terraform.io/corp/vpc/aws":  true,
		"git::https://example.com/m.git": true,
	}
	for src, want := range cases {
		require.Equal(t, want, isRegistrySource(src), "source %q", src)
	}
}
