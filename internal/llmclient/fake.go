package llmclient

import (
	"context"
	"sync"
)

// FakeClient returns scripted replies for offline use and tests.
type FakeClient struct {
	tokenCap int

	mu      sync.Mutex
	replies []string
	calls   []Call
	err     error
}

// Call records one Complete invocation.
type Call struct {
	System string
	User   string
}

func NewFakeClient(tokenCap int) *FakeClient {
	if tokenCap <= 0 {
		tokenCap = 4096
	}
	return &FakeClient{tokenCap: tokenCap}
}

// Reply queues replies returned by successive Complete calls; the last one
// repeats once the queue is drained.
func (f *FakeClient) Reply(replies ...string) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies = append(f.replies, replies...)
	return f
}

// Fail makes every Complete call return err.
func (f *FakeClient) Fail(err error) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
	return f
}

// Calls returns the recorded Complete invocations.
func (f *FakeClient) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }
func (f *FakeClient) CountTokens(text string) int {
	return CountTokens(text)
}
func (f *FakeClient) TokenCapacity() int { return f.tokenCap }

func (f *FakeClient) Complete(_ context.Context, system, user string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{System: system, User: user})
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", ErrEmptyResponse
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}
