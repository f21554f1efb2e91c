package up

import (
	"bytes"
	"context"
	"flag"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/brickyard/internal/compose"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("up", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"formbricks"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.App != "formbricks" {
		t.Fatalf("expected app formbricks, got %q", cfg.App)
	}
	if cfg.ComposeURL != compose.DefaultComposeURL {
		t.Fatalf("expected default compose url, got %q", cfg.ComposeURL)
	}
	if cfg.Dir != "" {
		t.Fatalf("expected empty dir, got %q", cfg.Dir)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("up", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-dir", "/srv/demo", "-compose-url", "http://mirror.test/compose.yml", "formbricks"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Dir != "/srv/demo" {
		t.Fatalf("expected dir override, got %q", cfg.Dir)
	}
	if cfg.ComposeURL != "http://mirror.test/compose.yml" {
		t.Fatalf("expected compose url override, got %q", cfg.ComposeURL)
	}
}

func TestParseConfigRejectsUnknownApp(t *testing.T) {
	fs := flag.NewFlagSet("up", flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	if _, err := ParseConfig(fs, []string{"typeform"}); err == nil {
		t.Fatal("expected unknown app error")
	}
}

func TestParseConfigRequiresApp(t *testing.T) {
	fs := flag.NewFlagSet("up", flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected missing app error")
	}
}

func TestRunReportsFailedDownload(t *testing.T) {
	t.Setenv("BRICKYARD_OTEL_ENDPOINT", "")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	cfg := Config{App: appFormbricks, Dir: t.TempDir(), ComposeURL: srv.URL + "/docker-compose.yml"}
	var out, errOut bytes.Buffer

	err := Run(context.Background(), cfg, &out, &errOut)
	if err == nil {
		t.Fatal("expected download failure")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status in error, got %v", err)
	}
	if !strings.Contains(out.String(), "Downloading docker-compose.yml") {
		t.Fatalf("expected download progress, got:\n%s", out.String())
	}
}
