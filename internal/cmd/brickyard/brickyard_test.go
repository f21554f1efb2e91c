package brickyard

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMainWithoutArgs(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Main(context.Background(), nil, &out, &errOut)
	if code != ExitFailure {
		t.Fatalf("expected exit %d, got %d", ExitFailure, code)
	}
	if !strings.Contains(errOut.String(), "Usage:") {
		t.Fatalf("expected usage on stderr, got:\n%s", errOut.String())
	}
}

func TestMainHelp(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Main(context.Background(), []string{"help"}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if !strings.Contains(out.String(), "brickyard <command> [flags] <app>") {
		t.Fatalf("expected usage on stdout, got:\n%s", out.String())
	}
	if errOut.Len() != 0 {
		t.Fatalf("expected empty stderr, got:\n%s", errOut.String())
	}
}

func TestMainUnknownCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Main(context.Background(), []string{"restart"}, &out, &errOut)
	if code != ExitFailure {
		t.Fatalf("expected exit %d, got %d", ExitFailure, code)
	}
	if !strings.Contains(errOut.String(), `unknown command "restart"`) {
		t.Fatalf("expected unknown command on stderr, got:\n%s", errOut.String())
	}
}

func TestMainCommandHelpFlag(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Main(context.Background(), []string{"down", "-h"}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if !strings.Contains(errOut.String(), "-dir") {
		t.Fatalf("expected flag listing on stderr, got:\n%s", errOut.String())
	}
}

func TestMainRejectsUnsupportedApp(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Main(context.Background(), []string{"down", "typeform"}, &out, &errOut)
	if code != ExitFailure {
		t.Fatalf("expected exit %d, got %d", ExitFailure, code)
	}
	if !strings.Contains(errOut.String(), "unsupported app") {
		t.Fatalf("expected unsupported app error, got:\n%s", errOut.String())
	}
}

func TestMainInterrupted(t *testing.T) {
	t.Setenv("BRICKYARD_OTEL_ENDPOINT", "")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "services: {}\n")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, errOut bytes.Buffer
	code := Main(ctx, []string{"up", "-dir", t.TempDir(), "-compose-url", srv.URL, "formbricks"}, &out, &errOut)
	if code != ExitInterrupted {
		t.Fatalf("expected exit %d, got %d (stderr: %s)", ExitInterrupted, code, errOut.String())
	}
	if !strings.Contains(errOut.String(), "Operation cancelled by user") {
		t.Fatalf("expected cancellation notice, got:\n%s", errOut.String())
	}
}

func TestRunExit(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    int
		message string
	}{
		{"success", nil, ExitOK, ""},
		{"failure", errors.New("boom"), ExitFailure, "Error: boom"},
		{"cancelled", fmt.Errorf("download compose file: %w", context.Canceled), ExitInterrupted, "Operation cancelled by user"},
		{"deadline", context.DeadlineExceeded, ExitInterrupted, "Operation cancelled by user"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errOut bytes.Buffer
			if code := runExit(tt.err, &errOut); code != tt.want {
				t.Fatalf("expected exit %d, got %d", tt.want, code)
			}
			if !strings.Contains(errOut.String(), tt.message) {
				t.Fatalf("expected %q on stderr, got:\n%s", tt.message, errOut.String())
			}
		})
	}
}

func TestParseExitTreatsHelpAsSuccess(t *testing.T) {
	var errOut bytes.Buffer
	if code := parseExit(flag.ErrHelp, &errOut); code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if errOut.Len() != 0 {
		t.Fatalf("expected no error output for help, got:\n%s", errOut.String())
	}
}
