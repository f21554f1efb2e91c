// Package down parses down command flags and tears down the app stack.
package down

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/louisbranch/brickyard/internal/compose"
	entrypoint "github.com/louisbranch/brickyard/internal/platform/cmd"
	"github.com/louisbranch/brickyard/internal/workspace"
)

const appFormbricks = "formbricks"

// Config holds down command configuration.
type Config struct {
	App string
	Dir string `env:"BRICKYARD_DIR"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "workspace directory (default: current directory)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	app, err := entrypoint.ParseTarget(fs, appFormbricks)
	if err != nil {
		return Config{}, err
	}
	cfg.App = app
	return cfg, nil
}

// Run stops the stack and removes its containers and volumes. A docker
// failure is only warned about: the common case is containers that are
// already gone, which is the state the user asked for anyway.
func Run(ctx context.Context, cfg Config, out, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.CommandDown, func(ctx context.Context) error {
		ws, err := workspace.New(cfg.Dir)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "Stopping Formbricks services...")
		fmt.Fprintln(out)

		composeFile := ws.ComposeFile()
		if _, err := os.Stat(composeFile); errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("docker-compose.yml not found at %s, no services to stop", composeFile)
		} else if err != nil {
			return fmt.Errorf("stat compose file: %w", err)
		}

		fmt.Fprintln(out, "Stopping and removing containers...")
		dockerOut, err := compose.NewStack(composeFile).Down(ctx)
		if err != nil {
			fmt.Fprintf(errOut, "Warning: %v\n", err)
		} else if dockerOut != "" {
			fmt.Fprintln(out, dockerOut)
		}

		fmt.Fprintln(out, "Formbricks has been stopped")
		fmt.Fprintln(out, "All containers and volumes have been removed")
		fmt.Fprintln(out, "Note: Run 'up' command to start fresh")
		return nil
	})
}
