package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reposcope/internal/analyzer"
)

func checkoutWith(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func TestSession_AttachAndRead(t *testing.T) {
	dir := checkoutWith(t, map[string]string{"main.tf": "# root\n"})
	s := newSession("s1")
	require.NoError(t, s.AttachCheckout("https://example.com/repo.git", dir))

	assert.Equal(t, dir, s.Checkout())
	assert.Equal(t, "https://example.com/repo.git", s.RepoURL())

	content, err := s.ReadFile("main.tf")
	require.NoError(t, err)
	assert.Equal(t, "# root\n", content)

	// Cached reads survive the file changing on disk until invalidated.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.tf"), []byte("# edited\n"), 0o644))
	content, err = s.ReadFile("main.tf")
	require.NoError(t, err)
	assert.Equal(t, "# root\n", content)

	s.Invalidate("main.tf")
	content, err = s.ReadFile("main.tf")
	require.NoError(t, err)
	assert.Equal(t, "# edited\n", content)
}

func TestSession_ReadWithoutCheckout(t *testing.T) {
	s := newSession("s1")
	_, err := s.ReadFile("main.tf")
	assert.ErrorIs(t, err, ErrNoCheckout)
}

func TestSession_ReattachCleansPreviousCheckout(t *testing.T) {
	first := checkoutWith(t, map[string]string{"a.tf": "a"})
	second := checkoutWith(t, map[string]string{"b.tf": "b"})

	s := newSession("s1")
	require.NoError(t, s.AttachCheckout("u1", first))
	require.NoError(t, s.AttachCheckout("u2", second))

	_, err := os.Stat(first)
	assert.True(t, os.IsNotExist(err), "previous checkout should be removed")
	_, err = s.ReadFile("b.tf")
	assert.NoError(t, err)
}

func TestSession_GraphAndHistory(t *testing.T) {
	dir := checkoutWith(t, map[string]string{"main.tf": "# root\n"})
	s := newSession("s1")
	require.NoError(t, s.AttachCheckout("u", dir))

	g, err := analyzer.Build(dir)
	require.NoError(t, err)
	s.SetGraph(g, "one file")

	assert.Same(t, g, s.Graph())
	assert.Equal(t, "one file", s.Summary())

	s.Append("user", "hi")
	s.Append("assistant", "hello")
	h := s.History()
	require.Len(t, h, 2)
	assert.Equal(t, "user", h[0].Role)

	// History returns a copy.
	h[0].Content = "mutated"
	assert.Equal(t, "hi", s.History()[0].Content)
}

func TestStore_EvictionCleansCheckout(t *testing.T) {
	st, err := NewStore(1)
	require.NoError(t, err)

	a := st.Create()
	dirA := checkoutWith(t, map[string]string{"a.tf": "a"})
	require.NoError(t, a.AttachCheckout("u", dirA))

	st.Create() // capacity 1: evicts a

	_, err = st.Get(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, statErr := os.Stat(dirA)
	assert.True(t, os.IsNotExist(statErr), "evicted session checkout should be removed")
}

func TestStore_GetRemoveLen(t *testing.T) {
	st, err := NewStore(4)
	require.NoError(t, err)

	s := st.Create()
	assert.NotEmpty(t, s.ID)
	got, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, st.Len())

	st.Remove(s.ID)
	assert.Equal(t, 0, st.Len())
	_, err = st.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
