// Command reposcope analyzes a repository from the command line: clone or
// open a checkout, print its summary, optionally export JSON/DOT and run a
// single chat turn against the configured LLM.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"reposcope/internal/analyzer"
	"reposcope/internal/assistant"
	"reposcope/internal/config"
	"reposcope/internal/gitrepo"
	"reposcope/internal/llmclient"
	"reposcope/internal/safeio"
	"reposcope/internal/summary"
)

func main() {
	url := flag.String("url", "", "repository URL to clone and analyze")
	path := flag.String("path", "", "existing checkout to analyze instead of cloning")
	output := flag.String("output", "", "write the JSON export to this file")
	dot := flag.String("dot", "", "write the DOT graph to this file")
	chat := flag.String("chat", "", "run one chat turn with this message after analysis")
	flag.Parse()

	if err := run(*url, *path, *output, *dot, *chat); err != nil {
		log.Fatal(err)
	}
}

func run(url, path, output, dot, chat string) error {
	url = strings.TrimSpace(url)
	path = strings.TrimSpace(path)
	if (url == "") == (path == "") {
		return fmt.Errorf("exactly one of -url or -path is required")
	}

	ctx := context.Background()

	root := path
	if url != "" {
		dir, err := os.MkdirTemp("", "reposcope-*")
		if err != nil {
			return err
		}
		defer gitrepo.Cleanup(dir)
		if err := gitrepo.Clone(ctx, url, dir); err != nil {
			return err
		}
		root = dir
	}

	g, err := analyzer.Build(root)
	if err != nil {
		return err
	}
	fmt.Print(summary.Render(g))

	if output != "" {
		b, err := summary.MarshalExport(summary.Export(g))
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, b, 0o644); err != nil {
			return err
		}
		log.Printf("Wrote JSON export to %s", output)
	}

	if dot != "" {
		text := summary.DOT(g)
		if text == "" {
			log.Printf("Graph has no renderable edges or is too large; skipping DOT export")
		} else if err := os.WriteFile(dot, []byte(text), 0o644); err != nil {
			return err
		} else {
			log.Printf("Wrote DOT graph to %s", dot)
		}
	}

	if chat != "" {
		return chatTurn(ctx, g, root, chat)
	}
	return nil
}

func chatTurn(ctx context.Context, g *analyzer.Graph, root, message string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	llm, err := newLLMClient(cfg)
	if err != nil {
		return err
	}
	defer llm.Close()

	fsys, err := safeio.NewSafeFS(root)
	if err != nil {
		return err
	}
	readFile := func(p string) (string, error) {
		b, err := fsys.SafeReadFile(p)
		return string(b), err
	}

	a := assistant.New(llm, cfg.LLM.PromptBudget)
	reply, err := a.Chat(ctx, assistant.Request{
		Graph:    g,
		Summary:  summary.Render(g),
		Message:  message,
		ReadFile: readFile,
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(reply.Message)

	applied, err := assistant.ApplyEdits(fsys, reply.Edits)
	for _, p := range applied {
		log.Printf("Applied edit to %s", p)
	}
	return err
}

func newLLMClient(cfg *config.Config) (llmclient.Client, error) {
	switch cfg.LLM.Provider {
	case "gemini":
		return llmclient.NewGeminiClient(context.Background(), cfg.LLM.GeminiAPIKey, cfg.LLM.Model, cfg.LLM.PromptBudget)
	case "openai":
		return llmclient.NewOpenAIClient(cfg.LLM.OpenAIAPIKey, cfg.LLM.Model, cfg.LLM.OpenAIBaseURL, cfg.LLM.PromptBudget)
	case "fake":
		return llmclient.NewFakeClient(cfg.LLM.PromptBudget), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLM.Provider)
	}
}
