package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/pyqtrack/internal/llm"
)

func clearKeys(t *testing.T) {
	t.Helper()
	for _, env := range []string{
		"GROQ_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"PYQTRACK_LLM_PROVIDER", "PYQTRACK_GROQ_API_KEY", "PYQTRACK_GEMINI_MODEL",
	} {
		t.Setenv(env, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	clearKeys(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.Provider != llm.ProviderGroq || cfg.Log.Level != "info" {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("an explicit --config path must exist")
	}
}

func TestLoad_File(t *testing.T) {
	clearKeys(t)
	path := writeConfig(t, `
llm:
  provider: gemini
  gemini:
    api_key: from-file
  timeout: 30s
  retry:
    max_attempts: 5
log:
  level: debug
db: /tmp/pyq.db
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.Provider != llm.ProviderGemini || cfg.LLM.Gemini.APIKey != "from-file" {
		t.Errorf("llm = %+v", cfg.LLM)
	}
	if cfg.LLM.Gemini.Model != "gemini-flash" {
		t.Errorf("unset fields should keep defaults, model = %q", cfg.LLM.Gemini.Model)
	}
	if cfg.LLM.Timeout != 30*time.Second || cfg.LLM.Retry.MaxAttempts != 5 || cfg.LLM.Retry.Multiplier != 2 {
		t.Errorf("timeout/retry = %v/%+v", cfg.LLM.Timeout, cfg.LLM.Retry)
	}
	if cfg.Log.Level != "debug" || cfg.DB != "/tmp/pyq.db" {
		t.Errorf("log/db = %+v/%q", cfg.Log, cfg.DB)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearKeys(t)
	t.Setenv("PYQTRACK_GEMINI_MODEL", "gemini-pro")
	path := writeConfig(t, "llm:\n  provider: gemini\n  gemini:\n    api_key: k\n    model: gemini-flash\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.Gemini.Model != "gemini-pro" {
		t.Errorf("model = %q", cfg.LLM.Gemini.Model)
	}
}

func TestLoad_DiscoversStandardKeys(t *testing.T) {
	clearKeys(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.Provider != llm.ProviderAnthropic || cfg.LLM.APIKey() != "sk-ant" {
		t.Errorf("discovered = %+v", cfg.LLM)
	}
}

func TestLoad_ConfiguredKeyWins(t *testing.T) {
	clearKeys(t)
	t.Setenv("PYQTRACK_GROQ_API_KEY", "gsk")
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, _ := Load("")
	if cfg.LLM.Provider != llm.ProviderGroq || cfg.LLM.APIKey() != "gsk" {
		t.Errorf("configured provider replaced: %+v", cfg.LLM)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	clearKeys(t)
	path := writeConfig(t, "llm: [not, a, map")
	cfg, err := Load(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg.LLM.Provider != llm.ProviderGroq {
		t.Errorf("defaults not returned on error: %+v", cfg)
	}
}
