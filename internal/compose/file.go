package compose

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultComposeURL is the official Formbricks compose file for the stable
// release channel.
const DefaultComposeURL = "https://raw.githubusercontent.com/formbricks/formbricks/stable/docker/docker-compose.yml"

// defaultAppPort matches the port the official compose file publishes.
const defaultAppPort = 3000

// appService is the service name the official compose file gives the web
// app.
const appService = "formbricks"

// File is the subset of a compose file the orchestrator inspects.
type File struct {
	Services map[string]Service `yaml:"services"`
}

// Service carries the fields needed to find the app's published port. Ports
// stay loosely typed because compose allows both short strings and long
// form mappings.
type Service struct {
	Image string `yaml:"image"`
	Ports []any  `yaml:"ports"`
}

// Download fetches the compose file at url and writes it to path. A nil
// client falls back to http.DefaultClient.
func Download(ctx context.Context, client *http.Client, url, path string) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}
	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download compose file: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("download compose file: status %d from %s", res.StatusCode, url)
	}

	content, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read compose file: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write compose file: %w", err)
	}
	return nil
}

// Parse reads and decodes the compose file at path, catching corrupt
// downloads or hand edits before docker does.
func Parse(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read compose file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("parse compose file %s: %w", path, err)
	}
	if len(f.Services) == 0 {
		return nil, fmt.Errorf("compose file %s defines no services", path)
	}
	return &f, nil
}

// AppPort returns the host port the app service publishes, defaulting to
// 3000 when the compose file does not say otherwise.
func (f *File) AppPort() int {
	service, ok := f.Services[appService]
	if !ok {
		for _, candidate := range f.Services {
			if strings.Contains(candidate.Image, appService) {
				service = candidate
				ok = true
				break
			}
		}
	}
	if !ok {
		return defaultAppPort
	}

	for _, entry := range service.Ports {
		mapping, ok := entry.(string)
		if !ok {
			continue
		}
		if port, ok := hostPort(mapping); ok {
			return port
		}
	}
	return defaultAppPort
}

// hostPort extracts the published host port from a short form mapping such
// as "3000:3000" or "127.0.0.1:8443:3000".
func hostPort(mapping string) (int, bool) {
	parts := strings.Split(mapping, ":")
	var candidate string
	switch len(parts) {
	case 2:
		candidate = parts[0]
	case 3:
		candidate = parts[1]
	default:
		return 0, false
	}

	port, err := strconv.Atoi(candidate)
	if err != nil || port <= 0 {
		return 0, false
	}
	return port, true
}
