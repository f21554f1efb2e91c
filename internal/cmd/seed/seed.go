// Package seed parses seed command flags and populates a running instance
// from the generated datasets.
package seed

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/louisbranch/brickyard/internal/demodata"
	"github.com/louisbranch/brickyard/internal/formbricks"
	entrypoint "github.com/louisbranch/brickyard/internal/platform/cmd"
	"github.com/louisbranch/brickyard/internal/seed"
	"github.com/louisbranch/brickyard/internal/workspace"
)

const appFormbricks = "formbricks"

// Config holds seed command configuration.
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

// Run loads the API configuration and datasets, then seeds the instance.
// When the configuration file is missing it prints a fill-in template, since
// the values only exist in the Formbricks UI after the setup wizard.
func Run(ctx context.Context, cfg Config, out, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.CommandSeed, func(ctx context.Context) error {
		ws, err := workspace.New(cfg.Dir)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "Initiating Formbricks seeding process...")
		fmt.Fprintln(out)

		apiCfg, err := formbricks.LoadAPIConfig(ws.APIConfigFile())
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(errOut, "Error: Configuration file not found")
			fmt.Fprintf(errOut, "Expected location: %s\n", ws.APIConfigFile())
			fmt.Fprintln(errOut)
			fmt.Fprintln(errOut, "Required configuration format:")
			fmt.Fprintln(errOut, formbricks.APIConfigTemplate)
			fmt.Fprintln(errOut)
			fmt.Fprintln(errOut, "Obtain these values from Formbricks UI after setup")
			return errors.New("configuration file not found")
		}
		if err != nil {
			return err
		}

		ds, err := demodata.LoadDatasets(ws.GeneratedDir())
		if err != nil {
			return err
		}

		client := formbricks.NewClient(formbricks.ClientConfig{
			APIKey:         apiCfg.APIKey,
			BaseURL:        apiCfg.BaseURL,
			EnvironmentID:  apiCfg.EnvironmentID,
			OrganizationID: apiCfg.OrganizationID,
		})
		runner := seed.New(seed.Config{Client: client, Out: out})

		report, err := runner.Run(ctx, ds)
		if errors.Is(err, seed.ErrUnreachable) {
			fmt.Fprintln(errOut, "Error: Failed to connect to Formbricks API")
			fmt.Fprintln(errOut, "Please verify your configuration and ensure Formbricks is running")
			return err
		}
		if err != nil {
			return err
		}

		banner := strings.Repeat("=", 60)
		fmt.Fprintln(out)
		fmt.Fprintln(out, banner)
		fmt.Fprintln(out, "Seeding process complete")
		fmt.Fprintln(out, banner)
		fmt.Fprintf(out, "Users created: %d\n", report.Users)
		fmt.Fprintf(out, "Surveys created: %d\n", report.Surveys)
		fmt.Fprintf(out, "Responses created: %d\n", report.Responses)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Access your populated instance at: %s\n", apiCfg.BaseURL)
		return nil
	})
}
