package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "APP_ENV", "REPOSCOPE_WORKDIR", "MAX_SESSIONS",
		"LLM_PROVIDER", "LLM_MODEL", "GEMINI_API_KEY", "GOOGLE_API_KEY",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "PROMPT_TOKEN_BUDGET",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.NotEmpty(t, cfg.WorkDir)
	assert.Equal(t, 32, cfg.MaxSessions)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 12000, cfg.LLM.PromptBudget)
}

func TestLoad_PortNormalization(t *testing.T) {
	t.Setenv("PORT", "9090")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Port)

	t.Setenv("PORT", ":7070")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Port)
}

func TestLoad_LLMOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PROMPT_TOKEN_BUDGET", "4000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAIAPIKey)
	assert.Equal(t, 4000, cfg.LLM.PromptBudget)
}

func TestLoad_BadBudgetFallsBack(t *testing.T) {
	t.Setenv("PROMPT_TOKEN_BUDGET", "not-a-number")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12000, cfg.LLM.PromptBudget)

	t.Setenv("MAX_SESSIONS", "-3")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.MaxSessions)
}
