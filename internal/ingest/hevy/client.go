// Package hevy imports workouts from the Hevy REST API.
package hevy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// DefaultBaseURL is the production Hevy API.
const DefaultBaseURL = "https://api.hevyapp.com/v1"

const (
	pageSize  = 10
	pageDelay = 100 * time.Millisecond
)

// Client fetches paginated workout data from the Hevy API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	// delay between page fetches; overridable in tests.
	delay time.Duration
}

// NewClient creates a Hevy API client with the given credential.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		delay: pageDelay,
	}
}

// FetchAll retrieves every workout across all pages, in ascending page
// order, waiting a fixed delay between pages to respect the API's rate
// limits. Any non-2xx response aborts the whole fetch; pages already
// retrieved are discarded.
func (c *Client) FetchAll(ctx context.Context) ([]models.HevyWorkout, error) {
	var all []models.HevyWorkout
	page := 1

	for {
		pageData, err := c.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, pageData.Workouts...)

		if page >= pageData.PageCount {
			break
		}
		page++

		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, page int) (*models.HevyPage, error) {
	url := fmt.Sprintf("%s/workouts?page=%d&pageSize=%d", c.baseURL, page, pageSize)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("page %d request failed (status %d): %s", page, resp.StatusCode, body)
	}

	var pageData models.HevyPage
	if err := json.NewDecoder(resp.Body).Decode(&pageData); err != nil {
		return nil, fmt.Errorf("decoding page %d: %w", page, err)
	}
	return &pageData, nil
}
