// Package cmd provides shared entrypoint helpers for brickyard subcommands:
// environment-then-flags configuration parsing and telemetry-wrapped runs.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/brickyard/internal/platform/config"
	"github.com/louisbranch/brickyard/internal/platform/otel"
)

const defaultOTelShutdownTimeout = 5 * time.Second

// Command identifiers for startup telemetry and CLI naming consistency.
const (
	CommandUp       = "up"
	CommandDown     = "down"
	CommandGenerate = "generate"
	CommandSeed     = "seed"
)

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// ParseConfigFromArgs loads defaults from env and then parses flags, so flags
// win over environment values.
func ParseConfigFromArgs[T any](cfg *T, fs *flag.FlagSet, args []string) error {
	if err := ParseConfig(cfg); err != nil {
		return err
	}
	return ParseArgs(fs, args)
}

// ParseTarget returns a parsed command's single positional argument,
// validated against the allowed app names. Flags must precede the app name
// because flag parsing stops at the first positional argument.
func ParseTarget(fs *flag.FlagSet, allowed ...string) (string, error) {
	if fs == nil {
		return "", errors.New("flag parser is required")
	}
	if fs.NArg() == 0 {
		return "", fmt.Errorf("missing app argument (supported: %s)", strings.Join(allowed, ", "))
	}
	if fs.NArg() > 1 {
		return "", fmt.Errorf("unexpected arguments after %q (flags go before the app name)", fs.Arg(0))
	}
	target := fs.Arg(0)
	for _, candidate := range allowed {
		if target == candidate {
			return target, nil
		}
	}
	return "", fmt.Errorf("unsupported app %q (supported: %s)", target, strings.Join(allowed, ", "))
}

// RunWithTelemetry configures observability and executes a command run loop.
// Tracing is a no-op unless opted in through the environment; see otel.Setup.
func RunWithTelemetry(ctx context.Context, command string, run func(context.Context) error) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return fmt.Errorf("command name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	shutdown, err := otel.Setup(ctx, command)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultOTelShutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("%s otel shutdown: %v", command, err)
		}
	}()
	return run(ctx)
}
