package formbricks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/brickyard/internal/demodata"
)

// ErrMissingOrganizationID reports that user creation was attempted without
// an organization id in the configuration. The check happens before any
// request is made.
var ErrMissingOrganizationID = errors.New("organization_id is required to create users")

// APIError reports a non-2xx answer from the platform. The body is kept so
// per-item seeding logs can show what the server objected to.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api status %d: %s", e.Status, e.Body)
}

// ClientConfig configures a Formbricks API client.
type ClientConfig struct {
	// APIKey authenticates management API calls via the x-api-key header.
	APIKey string
	// BaseURL is the instance root, e.g. http://localhost:3000.
	BaseURL string
	// EnvironmentID scopes surveys and responses.
	EnvironmentID string
	// OrganizationID is only needed for user creation.
	OrganizationID string
	// HTTPClient defaults to http.DefaultClient when nil.
	HTTPClient *http.Client
}

// Client drives the management and client APIs of one Formbricks instance.
// It keeps no state between calls beyond its configuration.
type Client struct {
	apiKey         string
	baseURL        string
	environmentID  string
	organizationID string
	httpClient     *http.Client
}

// NewClient builds a client from cfg.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		apiKey:         cfg.APIKey,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		environmentID:  cfg.EnvironmentID,
		organizationID: cfg.OrganizationID,
		httpClient:     httpClient,
	}
}

// VerifyConnection reports whether the management API answers the identity
// endpoint with the configured key. It never returns an error: transport
// failures and non-200 statuses both read as unreachable.
func (c *Client) VerifyConnection(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/management/me", nil)
	if err != nil {
		return false
	}
	req.Header.Set("x-api-key", c.apiKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()
	return res.StatusCode == http.StatusOK
}

// CreateUser invites a user into the configured organization. The platform
// requires an organization-scoped endpoint, so a missing organization id
// fails before any request is made.
func (c *Client) CreateUser(ctx context.Context, user demodata.User) (*User, error) {
	if c.organizationID == "" {
		return nil, ErrMissingOrganizationID
	}
	role := user.Role
	if role == "" {
		role = demodata.RoleMember
	}
	payload := map[string]any{
		"name":     user.Name,
		"email":    user.Email,
		"role":     role,
		"isActive": true,
	}

	url := fmt.Sprintf("%s/api/v2/organizations/%s/users", c.baseURL, c.organizationID)
	var created User
	if err := c.do(ctx, http.MethodPost, url, payload, &created, true); err != nil {
		return nil, fmt.Errorf("create user %s: %w", user.Email, err)
	}
	return &created, nil
}

// CreateSurvey transforms a simplified survey and creates it in the
// configured environment, returning the server's survey with its assigned
// question ids.
func (c *Client) CreateSurvey(ctx context.Context, survey demodata.Survey) (*Survey, error) {
	payload := TransformSurvey(survey, c.environmentID)

	var env surveyEnvelope
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/api/v1/management/surveys", payload, &env, true); err != nil {
		return nil, fmt.Errorf("create survey %s: %w", survey.Name, err)
	}
	return &env.Data, nil
}

// CreateResponse submits a synthetic response against an already created
// survey. It first fetches the survey to learn the server-assigned question
// ids, then rewrites the questionIndex answer keys onto them. The submission
// goes through the public client API, which takes no api key.
func (c *Client) CreateResponse(ctx context.Context, surveyID string, response demodata.Response) (*Response, error) {
	survey, err := c.getSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	data, err := remapAnswers(response.Answers, survey.Questions)
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"surveyId": surveyID,
		"finished": response.IsCompleted(),
		"data":     data,
	}

	url := fmt.Sprintf("%s/api/v1/client/%s/responses", c.baseURL, c.environmentID)
	var created Response
	if err := c.do(ctx, http.MethodPost, url, payload, &created, false); err != nil {
		return nil, fmt.Errorf("create response for survey %s: %w", surveyID, err)
	}
	return &created, nil
}

func (c *Client) getSurvey(ctx context.Context, surveyID string) (*Survey, error) {
	url := fmt.Sprintf("%s/api/v1/management/surveys/%s", c.baseURL, surveyID)
	var env surveyEnvelope
	if err := c.do(ctx, http.MethodGet, url, nil, &env, true); err != nil {
		return nil, fmt.Errorf("look up survey %s: %w", surveyID, err)
	}
	return &env.Data, nil
}

// remapAnswers rewrites questionIndex_{i} keys onto server-assigned question
// ids. Keys without the marker are ignored, an unparsable index fails the
// response, and indices beyond the question list are dropped.
func remapAnswers(answers map[string]any, questions []SurveyQuestion) (map[string]any, error) {
	data := make(map[string]any, len(answers))
	for key, value := range answers {
		if !strings.Contains(key, "questionIndex_") {
			continue
		}
		index, err := strconv.Atoi(strings.Split(key, "_")[1])
		if err != nil {
			return nil, fmt.Errorf("parse answer key %q: %w", key, err)
		}
		if index >= 0 && index < len(questions) {
			data[questions[index].ID] = value
		}
	}
	return data, nil
}

// do sends one JSON request and decodes the JSON answer into out. A non-2xx
// status becomes an *APIError carrying the (truncated) body.
func (c *Client) do(ctx context.Context, method, url string, payload, out any, authenticated bool) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req.Header.Set("x-api-key", c.apiKey)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		detail, err := io.ReadAll(io.LimitReader(res.Body, 4096))
		if err != nil {
			return fmt.Errorf("api status %d, read body: %w", res.StatusCode, err)
		}
		apiErr := &APIError{Status: res.StatusCode, Body: strings.TrimSpace(string(detail))}
		if span := trace.SpanFromContext(ctx); span.IsRecording() {
			span.RecordError(apiErr)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
