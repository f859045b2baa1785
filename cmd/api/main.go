package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"reposcope/internal/config"
	"reposcope/internal/gateway/handler"
	"reposcope/internal/gateway/server"
	"reposcope/internal/llmclient"
	"reposcope/internal/session"
)

func main() {
	port := flag.String("port", "", "server port (overrides PORT)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *port != "" {
		if strings.HasPrefix(*port, ":") {
			cfg.Port = *port
		} else {
			cfg.Port = ":" + *port
		}
	}

	if err := os.MkdirAll(cfg.WorkDir, 0o755); err != nil {
		log.Fatalf("workdir %s: %v", cfg.WorkDir, err)
	}

	llm, err := newLLMClient(cfg)
	if err != nil {
		log.Fatalf("llm client: %v", err)
	}
	defer llm.Close()
	log.Printf("Using LLM provider %s", llm.Name())

	store, err := session.NewStore(cfg.MaxSessions)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}
	defer store.Close()

	h := handler.New(store, llm, cfg.LLM.PromptBudget, cfg.WorkDir)
	srv := server.New(cfg.Port, server.NewMux(h))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server: %v", err)
		}
	case sig := <-stop:
		log.Printf("Received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}
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
