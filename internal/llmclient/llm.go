// Package llmclient wraps the model APIs behind a small Client interface.
// Clients focus on the API call itself; prompt assembly and response parsing
// live in the assistant package.
package llmclient

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyResponse is returned when the model produced no usable content.
var ErrEmptyResponse = errors.New("llmclient: empty response from model")

// PermanentError indicates an error that will not resolve with retries.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}

// Client is a chat-completion backend.
type Client interface {
	Name() string
	Close() error
	// CountTokens estimates the token cost of text for budget accounting.
	CountTokens(text string) int
	// TokenCapacity is the prompt budget the model can accept.
	TokenCapacity() int
	// Complete sends one system + user message pair and returns the
	// model's text reply.
	Complete(ctx context.Context, system, user string) (string, error)
}

// CountTokens is a provider-neutral estimate: roughly four characters per
// token for code and English text. Deliberately conservative; exact counts
// are the provider's business.
func CountTokens(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	return (len(text) + 3) / 4
}
