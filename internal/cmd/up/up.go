// Package up parses up command flags and starts the dockerized app stack.
package up

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

// Config holds up command configuration.
type Config struct {
	App        string
	Dir        string `env:"BRICKYARD_DIR"`
	ComposeURL string `env:"BRICKYARD_COMPOSE_URL"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "workspace directory (default: current directory)")
	fs.StringVar(&cfg.ComposeURL, "compose-url", cfg.ComposeURL, "override the compose file download URL")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	app, err := entrypoint.ParseTarget(fs, appFormbricks)
	if err != nil {
		return Config{}, err
	}
	cfg.App = app
	if cfg.ComposeURL == "" {
		cfg.ComposeURL = compose.DefaultComposeURL
	}
	return cfg, nil
}

// Run downloads the compose file when missing, fills in its secrets, starts
// the containers, and waits for the app to answer its health endpoint.
func Run(ctx context.Context, cfg Config, out, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.CommandUp, func(ctx context.Context) error {
		ws, err := workspace.New(cfg.Dir)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "Starting Formbricks setup...")
		fmt.Fprintln(out)

		if err := ws.EnsureDockerDir(); err != nil {
			return err
		}

		composeFile := ws.ComposeFile()
		if _, err := os.Stat(composeFile); errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(out, "Downloading docker-compose.yml from Formbricks repository...")
			if err := compose.Download(ctx, nil, cfg.ComposeURL, composeFile); err != nil {
				return err
			}
			fmt.Fprintln(out, "Download complete")
			fmt.Fprintln(out)
		} else if err != nil {
			return fmt.Errorf("stat compose file: %w", err)
		}

		file, err := compose.Parse(composeFile)
		if err != nil {
			return err
		}
		baseURL := fmt.Sprintf("http://localhost:%d", file.AppPort())

		fmt.Fprintln(out, "Generating security secrets...")
		filled, err := compose.EnsureSecrets(composeFile)
		if err != nil {
			return err
		}
		if len(filled) == 0 {
			fmt.Fprintln(out, "Secrets already configured, keeping existing values")
		} else {
			fmt.Fprintln(out, "Secrets generated successfully")
		}
		fmt.Fprintln(out)

		fmt.Fprintln(out, "Starting Docker containers...")
		dockerOut, err := compose.NewStack(composeFile).Up(ctx)
		if err != nil {
			return err
		}
		if dockerOut != "" {
			fmt.Fprintln(out, dockerOut)
		}
		fmt.Fprintln(out)

		fmt.Fprintln(out, "Waiting for services to be ready...")
		healthy, err := compose.WaitHealthy(ctx, compose.WaitConfig{
			URL: baseURL + "/api/health",
			Out: out,
		})
		if err != nil {
			return err
		}
		if !healthy {
			fmt.Fprintln(out, "Note: Service may still be initializing. Check with: docker ps")
		}
		fmt.Fprintln(out)

		fmt.Fprintln(out, "Formbricks is now running")
		fmt.Fprintf(out, "Access URL: %s\n", baseURL)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Next steps:")
		fmt.Fprintf(out, "1. Visit %s and complete the setup wizard\n", baseURL)
		fmt.Fprintln(out, "2. Create an API key in Settings")
		fmt.Fprintf(out, "3. Save configuration to %s\n", ws.APIConfigFile())
		fmt.Fprintln(out, "4. Run: brickyard generate formbricks")
		return nil
	})
}
