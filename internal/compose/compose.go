// Package compose manages the dockerized Formbricks stack: fetching the
// official compose file, injecting runtime secrets, driving docker compose,
// and waiting for the app to answer its health endpoint.
package compose

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// runner abstracts process execution so tests can fake docker.
type runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && detail != "" {
			return stdout.String(), fmt.Errorf("%s exited with code %d: %s", name, exitErr.ExitCode(), detail)
		}
		return stdout.String(), fmt.Errorf("run %s: %w", name, err)
	}
	return stdout.String(), nil
}

// Stack drives docker compose for one compose file. Commands run from the
// file's directory so relative volume paths resolve the same way they would
// by hand.
type Stack struct {
	file string
	run  runner
}

// NewStack builds a stack around the compose file at path.
func NewStack(path string) *Stack {
	return &Stack{file: path, run: execRunner{}}
}

// Up starts the stack detached and returns docker's stdout for display.
func (s *Stack) Up(ctx context.Context) (string, error) {
	out, err := s.run.Run(ctx, filepath.Dir(s.file), "docker", "compose", "-f", s.file, "up", "-d")
	if err != nil {
		return out, fmt.Errorf("start docker services: %w", err)
	}
	return out, nil
}

// Down stops the stack and removes its containers and volumes.
func (s *Stack) Down(ctx context.Context) (string, error) {
	out, err := s.run.Run(ctx, filepath.Dir(s.file), "docker", "compose", "-f", s.file, "down", "-v")
	if err != nil {
		return out, fmt.Errorf("stop docker services: %w", err)
	}
	return out, nil
}
