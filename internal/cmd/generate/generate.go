// Package generate parses generate command flags and produces the demo
// datasets through an LLM provider.
package generate

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/brickyard/internal/ai"
	"github.com/louisbranch/brickyard/internal/demodata"
	entrypoint "github.com/louisbranch/brickyard/internal/platform/cmd"
	"github.com/louisbranch/brickyard/internal/workspace"
)

const appFormbricks = "formbricks"

// Supported LLM providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds generate command configuration.
type Config struct {
	App       string
	Dir       string `env:"BRICKYARD_DIR"`
	Provider  string `env:"BRICKYARD_LLM_PROVIDER" envDefault:"openai"`
	Model     string
	OpenAIKey string `env:"OPENAI_API_KEY"`
	GeminiKey string `env:"GEMINI_API_KEY"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "workspace directory (default: current directory)")
	fs.StringVar(&cfg.Provider, "provider", cfg.Provider, "LLM provider (openai, gemini)")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "LLM model (default: provider specific)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	app, err := entrypoint.ParseTarget(fs, appFormbricks)
	if err != nil {
		return Config{}, err
	}
	cfg.App = app

	if !providerExplicit(fs) && strings.HasPrefix(cfg.Model, "gemini") {
		cfg.Provider = ProviderGemini
	}
	if cfg.Provider != ProviderOpenAI && cfg.Provider != ProviderGemini {
		return Config{}, fmt.Errorf("unknown provider %q (valid providers: openai, gemini)", cfg.Provider)
	}
	return cfg, nil
}

// providerExplicit reports whether the provider was chosen by the user, via
// flag or environment, as opposed to the openai default. Only an unchosen
// provider may be inferred from the model name.
func providerExplicit(fs *flag.FlagSet) bool {
	if os.Getenv("BRICKYARD_LLM_PROVIDER") != "" {
		return true
	}
	explicit := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "provider" {
			explicit = true
		}
	})
	return explicit
}

// Run generates surveys, users, and responses and writes them to the
// workspace's generated data directory.
func Run(ctx context.Context, cfg Config, out, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.CommandGenerate, func(ctx context.Context) error {
		ws, err := workspace.New(cfg.Dir)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "Initiating data generation using LLM...")
		fmt.Fprintln(out)

		if err := ws.EnsureGeneratedDir(); err != nil {
			return err
		}

		provider, closeProvider, err := newProvider(ctx, cfg)
		if err != nil {
			return err
		}
		if closeProvider != nil {
			defer closeProvider()
		}
		gen := demodata.NewGenerator(provider, out)

		fmt.Fprintln(out, "Generating survey structures...")
		surveys, err := gen.GenerateSurveys(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Generated %d surveys\n", len(surveys))
		fmt.Fprintln(out)

		fmt.Fprintln(out, "Generating user profiles...")
		users, err := gen.GenerateUsers(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Generated %d users\n", len(users))
		fmt.Fprintln(out)

		fmt.Fprintln(out, "Generating survey responses...")
		responses, err := gen.GenerateResponses(ctx, surveys)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Generated %d responses\n", len(responses))
		fmt.Fprintln(out)

		fmt.Fprintln(out, "Saving generated data...")
		dir := ws.GeneratedDir()
		if err := demodata.WriteFile(filepath.Join(dir, demodata.SurveysFile), surveys); err != nil {
			return err
		}
		if err := demodata.WriteFile(filepath.Join(dir, demodata.UsersFile), users); err != nil {
			return err
		}
		if err := demodata.WriteFile(filepath.Join(dir, demodata.ResponsesFile), responses); err != nil {
			return err
		}
		fmt.Fprintln(out)

		fmt.Fprintln(out, "Data generation complete")
		fmt.Fprintf(out, "Files saved to: %s\n", dir)
		fmt.Fprintf(out, "Summary: %d surveys, %d users, %d responses\n", len(surveys), len(users), len(responses))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Next step: brickyard seed formbricks")
		return nil
	})
}

// newProvider builds the configured LLM provider, returning a close func
// for providers that hold connections.
func newProvider(ctx context.Context, cfg Config) (ai.TextGenerator, func() error, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, nil, errors.New("OPENAI_API_KEY environment variable not set, export it and try again (example: export OPENAI_API_KEY='your-api-key')")
		}
		return ai.NewOpenAI(ai.OpenAIConfig{APIKey: cfg.OpenAIKey, Model: cfg.Model}), nil, nil
	case ProviderGemini:
		if cfg.GeminiKey == "" {
			return nil, nil, errors.New("GEMINI_API_KEY environment variable not set, export it and try again (example: export GEMINI_API_KEY='your-api-key')")
		}
		gemini, err := ai.NewGemini(ctx, cfg.GeminiKey, cfg.Model)
		if err != nil {
			return nil, nil, err
		}
		return gemini, gemini.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
