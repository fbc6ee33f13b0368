package parse

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func modelServer(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") == "" {
			t.Error("missing x-api-key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("missing anthropic-version header")
		}
		var req modelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("messages = %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": text}},
		})
	}))
}

// TestParseModelPath verifies a clean model response decodes into the
// parsed shape, with null weight meaning bodyweight.
func TestParseModelPath(t *testing.T) {
	srv := modelServer(t, `{"exercises":[{"name":"Bench Press","sets":[{"weight":135,"reps":10,"setType":"working"},{"weight":null,"reps":8}]}],"workoutName":"Push Day"}`)
	defer srv.Close()

	s := NewService("sk-ant-test", discard())
	s.endpoint = srv.URL

	pw, err := s.Parse(context.Background(), "bench 135x10 then bodyweight 8")
	if err != nil {
		t.Fatal(err)
	}
	if pw.WorkoutName != "Push Day" {
		t.Errorf("workoutName = %q", pw.WorkoutName)
	}
	if len(pw.Exercises) != 1 {
		t.Fatalf("exercises = %d, want 1", len(pw.Exercises))
	}
	sets := pw.Exercises[0].Sets
	if len(sets) != 2 {
		t.Fatalf("sets = %d, want 2", len(sets))
	}
	if sets[0].Weight == nil || *sets[0].Weight != 135 {
		t.Errorf("set 0 weight = %v, want 135", sets[0].Weight)
	}
	if sets[1].Weight != nil {
		t.Errorf("set 1 weight = %v, want nil (bodyweight)", *sets[1].Weight)
	}
}

// TestParseStripsFencesAndProse verifies code fences and surrounding
// prose are removed before decoding.
func TestParseStripsFencesAndProse(t *testing.T) {
	srv := modelServer(t, "Here is the workout:\n```json\n{\"exercises\":[{\"name\":\"Squat\",\"sets\":[]}]}\n```\nLet me know if you need anything else.")
	defer srv.Close()

	s := NewService("sk-ant-test", discard())
	s.endpoint = srv.URL

	pw, err := s.Parse(context.Background(), "squats")
	if err != nil {
		t.Fatal(err)
	}
	if len(pw.Exercises) != 1 || pw.Exercises[0].Name != "Squat" {
		t.Errorf("parsed = %+v", pw)
	}
}

// TestParseModelErrorIsTerminal verifies a non-200 response fails the
// call without falling back to the regex parser.
func TestParseModelErrorIsTerminal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := NewService("sk-ant-test", discard())
	s.endpoint = srv.URL

	if _, err := s.Parse(context.Background(), "bench 135x10"); err == nil {
		t.Fatal("expected error, and no silent fallback")
	}
}

// TestParseMissingText verifies a response without a text block fails.
func TestParseMissingText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"content": []any{}})
	}))
	defer srv.Close()

	s := NewService("sk-ant-test", discard())
	s.endpoint = srv.URL

	if _, err := s.Parse(context.Background(), "bench"); err == nil {
		t.Fatal("expected error for empty content")
	}
}

// TestParseBadJSONIsTerminal verifies undecodable model text fails the
// call.
func TestParseBadJSONIsTerminal(t *testing.T) {
	srv := modelServer(t, "sorry, I can't parse that")
	defer srv.Close()

	s := NewService("sk-ant-test", discard())
	s.endpoint = srv.URL

	if _, err := s.Parse(context.Background(), "bench"); err == nil {
		t.Fatal("expected decode error")
	}
}

// TestParseNoCredentialUsesFallback verifies an empty key routes through
// the regex parser without any network access.
func TestParseNoCredentialUsesFallback(t *testing.T) {
	s := NewService("", discard())
	s.endpoint = "http://127.0.0.1:0" // would fail if contacted

	pw, err := s.Parse(context.Background(), "bench 135x10")
	if err != nil {
		t.Fatal(err)
	}
	if len(pw.Exercises) != 1 || pw.Exercises[0].Name != "Bench" {
		t.Errorf("parsed = %+v", pw)
	}
}

// TestToWorkout verifies conversion into the canonical aggregate.
func TestToWorkout(t *testing.T) {
	w135 := 135.0
	pw := &ParsedWorkout{
		WorkoutName: "Push Day",
		Notes:       "short on time",
		Exercises: []ParsedExercise{
			{
				Name: "Bench Press",
				Sets: []ParsedSet{
					{Weight: &w135, Reps: 10, SetType: "warmup"},
					{Weight: nil, Reps: 8},
				},
			},
		},
	}

	date := time.Date(2026, 2, 19, 18, 0, 0, 0, time.UTC)
	w := ToWorkout(pw, date)
	if w.Name != "Push Day" || w.Notes != "short on time" {
		t.Errorf("workout = %q / %q", w.Name, w.Notes)
	}
	ex := w.Exercises[0]
	if ex.PrimaryMuscle != models.MuscleChest {
		t.Errorf("muscle = %q, want chest", ex.PrimaryMuscle)
	}
	if ex.Sets[0].Type != models.SetWarmup || ex.Sets[0].WeightLb != 135 {
		t.Errorf("set 0 = %+v", ex.Sets[0])
	}
	if ex.Sets[1].WeightLb != 0 || ex.Sets[1].Type != models.SetWorking {
		t.Errorf("set 1 = %+v", ex.Sets[1])
	}
	if !ex.Sets[0].IsCompleted {
		t.Error("sets should be completed")
	}
}

// TestToWorkoutDefaultName verifies an unnamed parse gets the
// time-of-day default.
func TestToWorkoutDefaultName(t *testing.T) {
	date := time.Date(2026, 2, 19, 8, 0, 0, 0, time.UTC)
	w := ToWorkout(&ParsedWorkout{}, date)
	if w.Name != "Morning Workout" {
		t.Errorf("name = %q, want Morning Workout", w.Name)
	}
}
