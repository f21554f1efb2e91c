package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/brickyard/internal/seed"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"formbricks"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.App != appFormbricks {
		t.Fatalf("expected formbricks app, got %q", cfg.App)
	}
}

func TestParseConfigRejectsUnknownApp(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	_, err := ParseConfig(fs, []string{"typeform"})
	if err == nil {
		t.Fatal("expected unsupported app error")
	}
}

func TestRunWithoutConfigFile(t *testing.T) {
	t.Setenv("BRICKYARD_OTEL_ENDPOINT", "")

	cfg := Config{App: appFormbricks, Dir: t.TempDir()}
	var out, errOut bytes.Buffer

	err := Run(context.Background(), cfg, &out, &errOut)
	if err == nil {
		t.Fatal("expected missing config error")
	}
	if !strings.Contains(err.Error(), "configuration file not found") {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"Error: Configuration file not found",
		"api_config.json",
		"Required configuration format:",
		`"api_key"`,
		"Obtain these values from Formbricks UI after setup",
	} {
		if !strings.Contains(errOut.String(), want) {
			t.Fatalf("expected %q in stderr, got:\n%s", want, errOut.String())
		}
	}
}

func TestRunWithoutDatasets(t *testing.T) {
	t.Setenv("BRICKYARD_OTEL_ENDPOINT", "")

	dir := t.TempDir()
	writeAPIConfig(t, dir, "http://localhost:3000")

	cfg := Config{App: appFormbricks, Dir: dir}
	err := Run(context.Background(), cfg, &bytes.Buffer{}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected missing dataset error")
	}
	if !strings.Contains(err.Error(), "surveys.json") {
		t.Fatalf("expected missing file in error, got %v", err)
	}
	if !strings.Contains(err.Error(), "generate") {
		t.Fatalf("expected generate hint in error, got %v", err)
	}
}

func TestRunUnreachableInstance(t *testing.T) {
	t.Setenv("BRICKYARD_OTEL_ENDPOINT", "")

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	dir := t.TempDir()
	writeAPIConfig(t, dir, srv.URL)
	writeDatasets(t, dir)

	cfg := Config{App: appFormbricks, Dir: dir}
	var errOut bytes.Buffer
	err := Run(context.Background(), cfg, &bytes.Buffer{}, &errOut)
	if !errors.Is(err, seed.ErrUnreachable) {
		t.Fatalf("expected unreachable error, got %v", err)
	}
	if !strings.Contains(errOut.String(), "Error: Failed to connect to Formbricks API") {
		t.Fatalf("expected connection error on stderr, got:\n%s", errOut.String())
	}
}

func TestRunSeedsInstance(t *testing.T) {
	t.Setenv("BRICKYARD_OTEL_ENDPOINT", "")

	var responseBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/management/me":
			if r.Header.Get("x-api-key") != "key-123" {
				w.WriteHeader(http.StatusUnauthorized)
			}
		case r.Method == http.MethodPost && r.URL.Path == "/api/v2/organizations/org_1/users":
			fmt.Fprint(w, `{"id": "usr_1", "name": "Dana", "email": "dana@example.com", "role": "member", "isActive": true}`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/management/surveys":
			fmt.Fprint(w, `{"data": {"id": "svy_1", "name": "Onboarding", "questions": [{"id": "q_one"}, {"id": "q_two"}]}}`)
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/management/surveys/svy_1":
			fmt.Fprint(w, `{"data": {"id": "svy_1", "questions": [{"id": "q_one"}, {"id": "q_two"}]}}`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/client/env_1/responses":
			if err := json.NewDecoder(r.Body).Decode(&responseBody); err != nil {
				t.Errorf("decode response payload: %v", err)
			}
			fmt.Fprint(w, `{"id": "rsp_1", "surveyId": "svy_1", "finished": true}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	writeAPIConfig(t, dir, srv.URL)
	writeDatasets(t, dir)

	cfg := Config{App: appFormbricks, Dir: dir}
	var out, errOut bytes.Buffer
	if err := Run(context.Background(), cfg, &out, &errOut); err != nil {
		t.Fatalf("run: %v (stderr: %s)", err, errOut.String())
	}

	for _, want := range []string{
		"Connection verified successfully",
		"Seeding process complete",
		"Users created: 1",
		"Surveys created: 1",
		"Responses created: 1",
		"Access your populated instance at: " + srv.URL,
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out.String())
		}
	}
	if strings.Count(out.String(), strings.Repeat("=", 60)) != 2 {
		t.Fatalf("expected completion banner, got:\n%s", out.String())
	}

	data, ok := responseBody["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected answer data in submission, got %v", responseBody)
	}
	if data["q_one"] != "Great so far" {
		t.Fatalf("expected remapped first answer, got %v", data)
	}
	if data["q_two"] != float64(9) {
		t.Fatalf("expected remapped second answer, got %v", data)
	}
}

func writeAPIConfig(t *testing.T, dir, baseURL string) {
	t.Helper()
	configDir := filepath.Join(dir, "data", "config")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	cfg := fmt.Sprintf(`{
  "api_key": "key-123",
  "base_url": %q,
  "environment_id": "env_1",
  "organization_id": "org_1"
}`, baseURL)
	if err := os.WriteFile(filepath.Join(configDir, "api_config.json"), []byte(cfg), 0o644); err != nil {
		t.Fatalf("write api config: %v", err)
	}
}

func writeDatasets(t *testing.T, dir string) {
	t.Helper()
	generatedDir := filepath.Join(dir, "data", "generated")
	if err := os.MkdirAll(generatedDir, 0o755); err != nil {
		t.Fatalf("create generated dir: %v", err)
	}
	files := map[string]string{
		"surveys.json": `[{
			"name": "Onboarding",
			"description": "First impressions",
			"questions": [
				{"type": "openText", "headline": "How is onboarding going?"},
				{"type": "nps", "headline": "How likely are you to recommend us?"}
			]
		}]`,
		"users.json": `[{"name": "Dana", "email": "dana@example.com", "role": "member"}]`,
		"responses.json": `[{
			"surveyIndex": 0,
			"answers": {"questionIndex_0": "Great so far", "questionIndex_1": 9},
			"completed": true
		}]`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(generatedDir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}
