package formbricks

import (
	"encoding/json"
	"fmt"
	"os"
)

// APIConfig holds the values needed to reach a running Formbricks instance.
// The api key, environment id, and organization id come from the instance's
// settings UI after the first-run wizard.
type APIConfig struct {
	APIKey         string `json:"api_key"`
	BaseURL        string `json:"base_url"`
	EnvironmentID  string `json:"environment_id"`
	OrganizationID string `json:"organization_id,omitempty"`
}

// APIConfigTemplate is printed when the configuration file is missing so the
// user can create it by hand.
const APIConfigTemplate = `{
  "api_key": "your-api-key",
  "base_url": "http://localhost:3000",
  "environment_id": "your-environment-id",
  "organization_id": "your-organization-id"
}`

// LoadAPIConfig reads and validates the API configuration file. The
// organization id may be left out; user creation is then refused with
// ErrMissingOrganizationID.
func LoadAPIConfig(path string) (APIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return APIConfig{}, fmt.Errorf("read api config: %w", err)
	}

	var cfg APIConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return APIConfig{}, fmt.Errorf("parse api config %s: %w", path, err)
	}

	for _, field := range []struct{ key, value string }{
		{"api_key", cfg.APIKey},
		{"base_url", cfg.BaseURL},
		{"environment_id", cfg.EnvironmentID},
	} {
		if field.value == "" {
			return APIConfig{}, fmt.Errorf("api config %s: missing required key %q", path, field.key)
		}
	}
	return cfg, nil
}
