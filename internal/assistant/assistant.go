// Package assistant turns chat requests into LLM calls and parses the
// model's reply into proposed file edits.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"reposcope/internal/analyzer"
	"reposcope/internal/llmclient"
)

// Message is one turn of the conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// FileEdit is one proposed change: the full new content for a repo-relative
// path inside the checkout.
type FileEdit struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Request carries everything one chat turn needs.
type Request struct {
	Graph   *analyzer.Graph
	Summary string
	History []Message
	Message string
	// ReadFile loads a checkout file by repo-relative path.
	ReadFile func(path string) (string, error)
}

// Reply is the assistant's answer: free text plus any parsed edits.
type Reply struct {
	Message string
	Edits   []FileEdit
}

// Assistant forwards chat requests to an LLM client under a token budget.
type Assistant struct {
	client llmclient.Client
	budget int
}

// New builds an Assistant. budget caps the assembled prompt in tokens; when
// zero or negative the client's own capacity is used.
func New(client llmclient.Client, budget int) *Assistant {
	if budget <= 0 {
		budget = client.TokenCapacity()
	}
	return &Assistant{client: client, budget: budget}
}

const systemPrompt = `You are a code assistant working on a cloned repository. Analyze the user's change request and implement it.

Rules:
1. All file paths are relative to the repository root and use forward slashes.
2. Use the repository summary and the provided file contents to locate the exact files.
3. Make precise, targeted changes while preserving the existing structure.
4. For every file you modify, output the complete new file content in exactly this format:

File: path/to/file.tf
` + "```" + `
# full new content here
` + "```" + `

5. If no file changes are needed, reply in plain prose without any "File:" lines.`

// Chat runs one conversation turn. A reply that announces edits but cannot be
// parsed into them is returned as an error and must not be applied.
func (a *Assistant) Chat(ctx context.Context, req Request) (*Reply, error) {
	prompt := a.buildPrompt(req)

	text, err := a.client.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("assistant: model call failed: %w", err)
	}
	edits, err := ParseEdits(text)
	if err != nil {
		return nil, fmt.Errorf("assistant: %w", err)
	}
	return &Reply{Message: text, Edits: edits}, nil
}

func (a *Assistant) buildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString("[REPOSITORY SUMMARY]\n")
	b.WriteString(req.Summary)
	b.WriteString("\n")

	for _, m := range req.History {
		fmt.Fprintf(&b, "\n[%s]\n%s\n", strings.ToUpper(m.Role), m.Content)
	}
	fmt.Fprintf(&b, "\n[USER REQUEST]\n%s\n", req.Message)

	used := a.client.CountTokens(b.String())
	remaining := a.budget - used
	if remaining <= 0 || req.Graph == nil || req.ReadFile == nil {
		return b.String()
	}

	b.WriteString("\n[RELEVANT FILES]\n")
	for _, path := range rankFiles(req.Graph, req.Message) {
		content, err := req.ReadFile(path)
		if err != nil {
			continue
		}
		section := fmt.Sprintf("\nFile: %s\n```\n%s\n```\n", path, content)
		cost := a.client.CountTokens(section)
		if cost > remaining {
			continue
		}
		remaining -= cost
		b.WriteString(section)
	}
	return b.String()
}
