// Package parse turns free-text workout descriptions into the canonical
// workout shape, either through a remote language model or a
// deterministic regex fallback when no credential is configured.
package parse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// ParsedWorkout is the shape the extractor produces. Weight is in
// pounds; nil means bodyweight.
type ParsedWorkout struct {
	Exercises   []ParsedExercise `json:"exercises"`
	WorkoutName string           `json:"workoutName,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

// ParsedExercise is one exercise within a parsed workout.
type ParsedExercise struct {
	Name  string      `json:"name"`
	Sets  []ParsedSet `json:"sets"`
	Notes string      `json:"notes,omitempty"`
}

// ParsedSet is one set within a parsed exercise.
type ParsedSet struct {
	Weight  *float64 `json:"weight"`
	Reps    int      `json:"reps"`
	SetType string   `json:"setType,omitempty"`
}

// DefaultEndpoint is the production model API.
const DefaultEndpoint = "https://api.anthropic.com/v1/messages"

const (
	defaultModel   = "claude-3-haiku-20240307"
	apiVersion     = "2023-06-01"
	maxTokens      = 1000
	requestTimeout = 60 * time.Second
)

// Service parses workout text. The path is chosen once per call: with a
// credential configured the model is used and its failures are terminal
// for that call; without one the regex fallback runs instead. A model
// failure never falls back.
type Service struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
	log      *slog.Logger

	// Fallback configures the no-credential path.
	Fallback Fallback
}

// NewService creates a parsing service. An empty apiKey routes every
// call through the fallback parser.
func NewService(apiKey string, log *slog.Logger) *Service {
	return &Service{
		endpoint: DefaultEndpoint,
		model:    defaultModel,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: requestTimeout},
		log:      log,
	}
}

// Parse extracts structured workout data from text.
func (s *Service) Parse(ctx context.Context, text string) (*ParsedWorkout, error) {
	if s.apiKey == "" {
		s.log.Debug("no model credential, using fallback parser")
		return s.Fallback.Parse(text), nil
	}

	raw, err := s.callModel(ctx, buildPrompt(text))
	if err != nil {
		return nil, err
	}
	return decodeModelOutput(raw)
}

type modelRequest struct {
	Model     string         `json:"model"`
	MaxTokens int            `json:"max_tokens"`
	Messages  []modelMessage `json:"messages"`
}

type modelMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type modelResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (s *Service) callModel(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(modelRequest{
		Model:     s.model,
		MaxTokens: maxTokens,
		Messages:  []modelMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding model request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building model request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("model request failed (status %d): %s", resp.StatusCode, snippet)
	}

	var mr modelResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return "", fmt.Errorf("decoding model response: %w", err)
	}
	if len(mr.Content) == 0 || mr.Content[0].Text == "" {
		return "", fmt.Errorf("model response has no text content")
	}
	return mr.Content[0].Text, nil
}

// decodeModelOutput strips code fences, slices the outermost JSON
// object, and decodes it. Any failure is terminal for the call.
func decodeModelOutput(raw string) (*ParsedWorkout, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	if start := strings.Index(cleaned, "{"); start >= 0 {
		if end := strings.LastIndex(cleaned, "}"); end > start {
			cleaned = cleaned[start : end+1]
		}
	}

	var pw ParsedWorkout
	if err := json.Unmarshal([]byte(cleaned), &pw); err != nil {
		return nil, fmt.Errorf("decoding parsed workout: %w", err)
	}
	return &pw, nil
}
