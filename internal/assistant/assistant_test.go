package assistant

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reposcope/internal/analyzer"
	"reposcope/internal/llmclient"
	"reposcope/internal/safeio"
)

func fixtureGraph(t *testing.T) (*analyzer.Graph, string) {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"main.tf":             "module \"vpc\" {\n  source = \"./modules/vpc\"\n}\n",
		"modules/vpc/main.tf": "resource \"aws_vpc\" \"main\" {\n  cidr_block = var.vpc_cidr\n}\n",
		"README.md":           "# demo\n",
	}
	for rel, content := range files {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	g, err := analyzer.Build(root)
	require.NoError(t, err)
	return g, root
}

func readerFor(root string) func(string) (string, error) {
	return func(path string) (string, error) {
		b, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
		return string(b), err
	}
}

func TestChat_ParsesEdits(t *testing.T) {
	g, root := fixtureGraph(t)
	fake := llmclient.NewFakeClient(0).Reply(
		"Done.\n\nFile: modules/vpc/main.tf\n```\nresource \"aws_vpc\" \"main\" {\n  cidr_block = \"10.0.0.0/22\"\n}\n```\n")

	a := New(fake, 4000)
	reply, err := a.Chat(context.Background(), Request{
		Graph:    g,
		Summary:  "two terraform files",
		Message:  "Update the vpc cidr to 10.0.0.0/22",
		ReadFile: readerFor(root),
	})
	require.NoError(t, err)
	require.Len(t, reply.Edits, 1)
	assert.Equal(t, "modules/vpc/main.tf", reply.Edits[0].Path)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].User, "[REPOSITORY SUMMARY]")
	assert.Contains(t, calls[0].User, "Update the vpc cidr")
	assert.Contains(t, calls[0].User, "modules/vpc/main.tf")
}

func TestChat_UnparseableReplyIsError(t *testing.T) {
	g, root := fixtureGraph(t)
	fake := llmclient.NewFakeClient(0).Reply("File: main.tf\nno fence here")

	a := New(fake, 4000)
	_, err := a.Chat(context.Background(), Request{
		Graph: g, Summary: "s", Message: "change", ReadFile: readerFor(root),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnparseableEdits))
}

func TestChat_ModelErrorPropagates(t *testing.T) {
	g, root := fixtureGraph(t)
	boom := errors.New("rate limited")
	fake := llmclient.NewFakeClient(0).Fail(boom)

	a := New(fake, 4000)
	_, err := a.Chat(context.Background(), Request{
		Graph: g, Summary: "s", Message: "m", ReadFile: readerFor(root),
	})
	assert.True(t, errors.Is(err, boom))
}

func TestBuildPrompt_RespectsBudget(t *testing.T) {
	g, root := fixtureGraph(t)
	fake := llmclient.NewFakeClient(0)

	// Budget consumed by the fixed sections: no file content fits.
	a := New(fake, 5)
	prompt := a.buildPrompt(Request{
		Graph: g, Summary: "s", Message: "m", ReadFile: readerFor(root),
	})
	assert.NotContains(t, prompt, "cidr_block")
	assert.NotContains(t, prompt, "[RELEVANT FILES]")

	// A generous budget includes file sections.
	a = New(fake, 4000)
	prompt = a.buildPrompt(Request{
		Graph: g, Summary: "s", Message: "m", ReadFile: readerFor(root),
	})
	assert.Contains(t, prompt, "cidr_block")
}

func TestRankFiles_RelevantFirst(t *testing.T) {
	g, _ := fixtureGraph(t)

	ranked := rankFiles(g, "change the vpc module")
	require.NotEmpty(t, ranked)
	// Terraform files mentioning vpc outrank the README.
	assert.True(t, indexOf(ranked, "modules/vpc/main.tf") < indexOf(ranked, "README.md"))
	assert.True(t, indexOf(ranked, "main.tf") < indexOf(ranked, "README.md"))
}

func indexOf(ss []string, want string) int {
	for i, s := range ss {
		if s == want {
			return i
		}
	}
	return -1
}

func TestApplyEdits_WritesInsideCheckout(t *testing.T) {
	root := t.TempDir()
	fsys, err := safeio.NewSafeFS(root)
	require.NoError(t, err)

	applied, err := ApplyEdits(fsys, []FileEdit{
		{Path: "modules/vpc/main.tf", Content: "# new"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"modules/vpc/main.tf"}, applied)

	b, err := os.ReadFile(filepath.Join(root, "modules", "vpc", "main.tf"))
	require.NoError(t, err)
	assert.Equal(t, "# new", string(b))
}

func TestApplyEdits_EscapeFails(t *testing.T) {
	root := t.TempDir()
	fsys, err := safeio.NewSafeFS(root)
	require.NoError(t, err)

	_, err = ApplyEdits(fsys, []FileEdit{{Path: "../evil.tf", Content: "x"}})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "evil.tf"))
	assert.NoFileExists(t, filepath.Join(filepath.Dir(root), "evil.tf"))
}
