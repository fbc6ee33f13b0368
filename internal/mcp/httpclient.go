package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/ingest"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/parse"
	"github.com/google/uuid"
)

// HTTPClient implements DataSource by calling the LiftLog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. The
// API key is required for the parse and import tools; read-only tools
// work without it.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: GET %s returned %d: %s", path, resp.StatusCode, body)
	}
	return body, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("httpclient: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: POST %s returned %d: %s", path, resp.StatusCode, body)
	}
	return body, nil
}

func (c *HTTPClient) QueryWorkouts(ctx context.Context, start, end time.Time) ([]*models.Workout, error) {
	params := url.Values{}
	params.Set("start", start.Format(time.RFC3339))
	params.Set("end", end.Format(time.RFC3339))

	body, err := c.get(ctx, "/api/v1/workouts", params)
	if err != nil {
		return nil, err
	}

	var workouts []*models.Workout
	if err := json.Unmarshal(body, &workouts); err != nil {
		return nil, fmt.Errorf("httpclient: decode workouts: %w", err)
	}
	return workouts, nil
}

func (c *HTTPClient) GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	body, err := c.get(ctx, "/api/v1/workouts/"+id.String(), nil)
	if err != nil {
		return nil, err
	}

	var workout models.Workout
	if err := json.Unmarshal(body, &workout); err != nil {
		return nil, fmt.Errorf("httpclient: decode workout: %w", err)
	}
	return &workout, nil
}

// parseAPIResponse mirrors the REST parse endpoint's response shape.
type parseAPIResponse struct {
	Parsed  *parse.ParsedWorkout `json:"parsed"`
	Workout *models.Workout      `json:"workout"`
	Result  *ingest.Result       `json:"result"`
}

func (c *HTTPClient) ParseText(ctx context.Context, text string) (*parse.ParsedWorkout, error) {
	body, err := c.post(ctx, "/api/v1/parse", map[string]any{"text": text})
	if err != nil {
		return nil, err
	}

	var resp parseAPIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode parse response: %w", err)
	}
	return resp.Parsed, nil
}

func (c *HTTPClient) ImportText(ctx context.Context, text string) (*models.Workout, *ingest.Result, error) {
	body, err := c.post(ctx, "/api/v1/parse", map[string]any{"text": text, "commit": true})
	if err != nil {
		return nil, nil, err
	}

	var resp parseAPIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, fmt.Errorf("httpclient: decode parse response: %w", err)
	}
	return resp.Workout, resp.Result, nil
}
