// Package brickyard dispatches the top level CLI to its subcommands and
// maps their outcomes onto process exit codes.
package brickyard

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/louisbranch/brickyard/internal/cmd/down"
	"github.com/louisbranch/brickyard/internal/cmd/generate"
	"github.com/louisbranch/brickyard/internal/cmd/seed"
	"github.com/louisbranch/brickyard/internal/cmd/up"
	entrypoint "github.com/louisbranch/brickyard/internal/platform/cmd"
)

// Exit codes. Interruption uses the conventional 128+SIGINT value.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInterrupted = 130
)

const usage = `Brickyard spins up disposable demo app instances and fills them with
lifelike data.

Usage:

  brickyard <command> [flags] <app>

Commands:

  up        Start the app locally using Docker Compose
  down      Stop the app and remove its containers and volumes
  generate  Generate realistic demo data using an LLM
  seed      Populate the running app through its public APIs

Apps:

  formbricks

Run 'brickyard <command> -h' for command flags.`

// Main runs the CLI and returns the process exit code.
func Main(ctx context.Context, args []string, out, errOut io.Writer) int {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	if len(args) == 0 {
		fmt.Fprintln(errOut, usage)
		return ExitFailure
	}
	command, rest := args[0], args[1:]

	switch command {
	case entrypoint.CommandUp:
		fs := newFlagSet(entrypoint.CommandUp, errOut)
		cfg, err := up.ParseConfig(fs, rest)
		if err != nil {
			return parseExit(err, errOut)
		}
		return runExit(up.Run(ctx, cfg, out, errOut), errOut)
	case entrypoint.CommandDown:
		fs := newFlagSet(entrypoint.CommandDown, errOut)
		cfg, err := down.ParseConfig(fs, rest)
		if err != nil {
			return parseExit(err, errOut)
		}
		return runExit(down.Run(ctx, cfg, out, errOut), errOut)
	case entrypoint.CommandGenerate:
		fs := newFlagSet(entrypoint.CommandGenerate, errOut)
		cfg, err := generate.ParseConfig(fs, rest)
		if err != nil {
			return parseExit(err, errOut)
		}
		return runExit(generate.Run(ctx, cfg, out, errOut), errOut)
	case entrypoint.CommandSeed:
		fs := newFlagSet(entrypoint.CommandSeed, errOut)
		cfg, err := seed.ParseConfig(fs, rest)
		if err != nil {
			return parseExit(err, errOut)
		}
		return runExit(seed.Run(ctx, cfg, out, errOut), errOut)
	case "help", "-h", "-help", "--help":
		fmt.Fprintln(out, usage)
		return ExitOK
	default:
		fmt.Fprintf(errOut, "unknown command %q\n\n", command)
		fmt.Fprintln(errOut, usage)
		return ExitFailure
	}
}

func newFlagSet(command string, errOut io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("brickyard "+command, flag.ContinueOnError)
	fs.SetOutput(errOut)
	return fs
}

func parseExit(err error, errOut io.Writer) int {
	if errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	fmt.Fprintf(errOut, "Error: %v\n", err)
	return ExitFailure
}

func runExit(err error, errOut io.Writer) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintln(errOut)
		fmt.Fprintln(errOut, "Operation cancelled by user")
		return ExitInterrupted
	}
	fmt.Fprintf(errOut, "Error: %v\n", err)
	return ExitFailure
}
