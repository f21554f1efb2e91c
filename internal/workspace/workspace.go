// Package workspace resolves the on-disk layout shared by brickyard
// commands: the docker directory holding the compose file and the data
// directory holding generated datasets and the API configuration.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace anchors all file paths used by the commands to a single root
// directory, so the tool can run from anywhere with -dir or BRICKYARD_DIR.
type Workspace struct {
	root string
}

// New resolves root into an absolute workspace. An empty root means the
// current working directory.
func New(root string) (Workspace, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return Workspace{}, fmt.Errorf("resolve workspace root: %w", err)
	}
	return Workspace{root: abs}, nil
}

// Root returns the absolute workspace root directory.
func (w Workspace) Root() string { return w.root }

// DockerDir returns the directory holding the docker compose file.
func (w Workspace) DockerDir() string { return filepath.Join(w.root, "docker") }

// ComposeFile returns the docker compose file path.
func (w Workspace) ComposeFile() string { return filepath.Join(w.DockerDir(), "docker-compose.yml") }

// GeneratedDir returns the directory holding generated dataset files.
func (w Workspace) GeneratedDir() string { return filepath.Join(w.root, "data", "generated") }

// ConfigDir returns the directory holding the API configuration file.
func (w Workspace) ConfigDir() string { return filepath.Join(w.root, "data", "config") }

// APIConfigFile returns the API configuration file path.
func (w Workspace) APIConfigFile() string { return filepath.Join(w.ConfigDir(), "api_config.json") }

// EnsureDockerDir creates the docker directory when missing.
func (w Workspace) EnsureDockerDir() error {
	if err := os.MkdirAll(w.DockerDir(), 0o755); err != nil {
		return fmt.Errorf("create docker dir: %w", err)
	}
	return nil
}

// EnsureGeneratedDir creates the generated-data directory when missing.
func (w Workspace) EnsureGeneratedDir() error {
	if err := os.MkdirAll(w.GeneratedDir(), 0o755); err != nil {
		return fmt.Errorf("create generated data dir: %w", err)
	}
	return nil
}
