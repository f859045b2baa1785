// Package config loads gateway settings from the environment, with .env
// support for local development.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	Env     string
	WorkDir string

	MaxSessions int

	LLM LLMConfig
}

type LLMConfig struct {
	Provider      string
	Model         string
	GeminiAPIKey  string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	PromptBudget  int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := ":8080"
	if envPort := strings.TrimSpace(os.Getenv("PORT")); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			port = envPort
		} else {
			port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	workDir := strings.TrimSpace(os.Getenv("REPOSCOPE_WORKDIR"))
	if workDir == "" {
		workDir = filepath.Join(os.TempDir(), "reposcope")
	}

	return &Config{
		Port:        port,
		Env:         env,
		WorkDir:     workDir,
		MaxSessions: intFromEnv("MAX_SESSIONS", 32),
		LLM:         loadLLMConfig(),
	}, nil
}

func loadLLMConfig() LLMConfig {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	if provider == "" {
		provider = "gemini"
	}
	return LLMConfig{
		Provider:      provider,
		Model:         strings.TrimSpace(os.Getenv("LLM_MODEL")),
		GeminiAPIKey:  firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("GOOGLE_API_KEY")),
		OpenAIAPIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		PromptBudget:  intFromEnv("PROMPT_TOKEN_BUDGET", 12000),
	}
}

func intFromEnv(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
