// Package session holds the per-conversation state: the active checkout, its
// analyzed graph, and the chat history. All state is explicit here rather
// than ambient, so analysis and chat flows stay independently testable.
package session

import (
	"errors"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"reposcope/internal/analyzer"
	"reposcope/internal/assistant"
	"reposcope/internal/gitrepo"
	"reposcope/internal/safeio"
)

const fileCacheEntries = 256

// ErrNoCheckout is returned when an operation needs an analyzed checkout and
// the session has none yet.
var ErrNoCheckout = errors.New("session: no repository has been cloned yet")

// Session is one user's analysis + chat context.
type Session struct {
	ID string

	mu       sync.Mutex
	repoURL  string
	checkout string
	fs       *safeio.SafeFS
	graph    *analyzer.Graph
	summary  string
	history  []assistant.Message
	files    *lru.Cache[string, string]
}

func newSession(id string) *Session {
	cache, _ := lru.New[string, string](fileCacheEntries)
	return &Session{ID: id, files: cache}
}

// AttachCheckout binds the session to a freshly cloned checkout, replacing
// and cleaning any previous one. The graph and file cache are reset; the
// conversation history survives a re-clone of the same session.
func (s *Session) AttachCheckout(repoURL, dir string) error {
	fsys, err := safeio.NewSafeFS(dir)
	if err != nil {
		return err
	}
	s.mu.Lock()
	prev := s.checkout
	s.repoURL = repoURL
	s.checkout = dir
	s.fs = fsys
	s.graph = nil
	s.summary = ""
	s.files.Purge()
	s.mu.Unlock()

	if prev != "" && prev != dir {
		gitrepo.Cleanup(prev)
	}
	return nil
}

// SetGraph swaps in the result of one whole analysis run.
func (s *Session) SetGraph(g *analyzer.Graph, summary string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph = g
	s.summary = summary
}

// Graph returns the current graph, or nil before the first analysis.
func (s *Session) Graph() *analyzer.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph
}

// Summary returns the rendered text summary of the current graph.
func (s *Session) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// RepoURL returns the URL the current checkout was cloned from.
func (s *Session) RepoURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repoURL
}

// Checkout returns the checkout directory, or "" when none is attached.
func (s *Session) Checkout() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout
}

// FS returns the checkout-rooted filesystem, or nil when none is attached.
func (s *Session) FS() *safeio.SafeFS {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fs
}

// ReadFile loads a checkout file by repo-relative path through a small LRU,
// since chat turns re-read the same context files repeatedly.
func (s *Session) ReadFile(path string) (string, error) {
	s.mu.Lock()
	fsys := s.fs
	s.mu.Unlock()
	if fsys == nil {
		return "", ErrNoCheckout
	}
	if content, ok := s.files.Get(path); ok {
		return content, nil
	}
	b, err := fsys.SafeReadFile(path)
	if err != nil {
		return "", err
	}
	content := string(b)
	s.files.Add(path, content)
	return content, nil
}

// Invalidate drops cached contents for paths that were just edited.
func (s *Session) Invalidate(paths ...string) {
	for _, p := range paths {
		s.files.Remove(p)
	}
}

// History returns a copy of the conversation so far.
func (s *Session) History() []assistant.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]assistant.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Append records one conversation turn.
func (s *Session) Append(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, assistant.Message{Role: role, Content: content})
}

// Close releases the session's checkout directory.
func (s *Session) Close() {
	s.mu.Lock()
	dir := s.checkout
	s.checkout = ""
	s.fs = nil
	s.graph = nil
	s.mu.Unlock()
	gitrepo.Cleanup(dir)
}
