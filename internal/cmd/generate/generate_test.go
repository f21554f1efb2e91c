package generate

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")

	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"formbricks"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Fatalf("expected default provider openai, got %q", cfg.Provider)
	}
	if cfg.Model != "" {
		t.Fatalf("expected provider specific model default, got %q", cfg.Model)
	}
	if cfg.OpenAIKey != "sk-env" {
		t.Fatalf("expected api key from env, got %q", cfg.OpenAIKey)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-provider", "gemini", "-model", "gemini-1.5-pro", "formbricks"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Provider != ProviderGemini {
		t.Fatalf("expected provider gemini, got %q", cfg.Provider)
	}
	if cfg.Model != "gemini-1.5-pro" {
		t.Fatalf("expected model override, got %q", cfg.Model)
	}
}

func TestParseConfigInfersGeminiFromModel(t *testing.T) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-model", "gemini-1.5-flash", "formbricks"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Provider != ProviderGemini {
		t.Fatalf("expected provider inferred from model, got %q", cfg.Provider)
	}
}

func TestParseConfigExplicitProviderWinsOverModel(t *testing.T) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-provider", "openai", "-model", "gemini-1.5-flash", "formbricks"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Fatalf("expected explicit provider to win, got %q", cfg.Provider)
	}
}

func TestParseConfigRejectsUnknownProvider(t *testing.T) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	_, err := ParseConfig(fs, []string{"-provider", "mistral", "formbricks"})
	if err == nil {
		t.Fatal("expected unknown provider error")
	}
	if !strings.Contains(err.Error(), "mistral") {
		t.Fatalf("expected provider in error, got %v", err)
	}
}

func TestRunRequiresAPIKey(t *testing.T) {
	t.Setenv("BRICKYARD_OTEL_ENDPOINT", "")

	cfg := Config{App: appFormbricks, Dir: t.TempDir(), Provider: ProviderOpenAI}
	var out, errOut bytes.Buffer

	err := Run(context.Background(), cfg, &out, &errOut)
	if err == nil {
		t.Fatal("expected missing api key error")
	}
	if !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Fatalf("expected env var in error, got %v", err)
	}
	if !strings.Contains(err.Error(), "export OPENAI_API_KEY") {
		t.Fatalf("expected export hint in error, got %v", err)
	}
}

func TestNewProviderGeminiRequiresKey(t *testing.T) {
	cfg := Config{Provider: ProviderGemini}
	_, _, err := newProvider(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected missing gemini key error")
	}
	if !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Fatalf("expected env var in error, got %v", err)
	}
}

func TestNewProviderOpenAI(t *testing.T) {
	cfg := Config{Provider: ProviderOpenAI, OpenAIKey: "sk-test"}
	provider, closeProvider, err := newProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if provider == nil {
		t.Fatal("expected provider")
	}
	if closeProvider != nil {
		t.Fatal("expected no close func for openai")
	}
}
