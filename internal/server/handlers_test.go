package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/ingest"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/reconcile"
	"github.com/claude/liftlog/internal/secrets"
	"github.com/claude/liftlog/internal/store"
)

const testAPIKey = "test-key-123"

func newTestServer(t *testing.T) (*Server, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := reconcile.NewEngine(mem, log)
	sec := secrets.NewStore(filepath.Join(t.TempDir(), "secrets.json"))
	return New(mem, engine, sec, testAPIKey, log), mem
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("X-API-Key", testAPIKey)
	return req
}

// TestCSVImportEndpoint verifies a CSV body imports and returns a summary.
func TestCSVImportEndpoint(t *testing.T) {
	srv, mem := newTestServer(t)

	const csv = `title,start_time,end_time,description,exercise_title,superset_id,weight_kg,reps
Leg Day,T1,,,Squat,,100,5
Leg Day,T1,,,Squat,,100,3`

	req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/import/csv", strings.NewReader(csv)))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var res ingest.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.WorkoutsImported != 1 || res.ExercisesImported != 1 {
		t.Errorf("summary = %d/%d, want 1/1", res.WorkoutsImported, res.ExercisesImported)
	}
	if mem.Count() != 1 {
		t.Errorf("stored = %d, want 1", mem.Count())
	}
}

// TestCSVImportRequiresAuth verifies import endpoints sit behind the API key.
func TestCSVImportRequiresAuth(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/csv", strings.NewReader("x"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

// TestCSVImportEmptyBody verifies an empty file is a 400.
func TestCSVImportEmptyBody(t *testing.T) {
	srv, _ := newTestServer(t)

	req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/import/csv", strings.NewReader("")))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestHealthImportEndpoint verifies the health sample path.
func TestHealthImportEndpoint(t *testing.T) {
	srv, mem := newTestServer(t)

	const body = `[{"activity_type":"running","start":"2026-02-19T18:00:00Z","end":"2026-02-19T18:30:00Z"}]`
	req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/import/health", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if mem.Count() != 1 {
		t.Errorf("stored = %d, want 1", mem.Count())
	}
}

// TestHevyImportWithoutKey verifies the Hevy import refuses to run with no
// credential configured.
func TestHevyImportWithoutKey(t *testing.T) {
	srv, _ := newTestServer(t)
	t.Setenv("HEVY_API_KEY", "")

	req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/import/hevy", nil))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestHevyImportEndToEnd verifies the Hevy import against a stub API.
func TestHevyImportEndToEnd(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.HevyPage{
			Page:      1,
			PageCount: 1,
			Workouts: []models.HevyWorkout{
				{Title: "Push Day", StartTime: "2026-02-19T10:00:00.000Z", EndTime: "2026-02-19T11:00:00.000Z"},
			},
		})
	}))
	defer api.Close()

	srv, mem := newTestServer(t)
	srv.SetHevyBaseURL(api.URL)
	if err := srv.secrets.Set(secrets.KeyHevyAPI, "6ba7b810-9dad-11d1-80b4-00c04fd430c8"); err != nil {
		t.Fatal(err)
	}

	req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/import/hevy", nil))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if mem.Count() != 1 {
		t.Errorf("stored = %d, want 1", mem.Count())
	}
}

// TestParseEndpointFallback verifies parsing without a model credential
// uses the regex fallback and does not write to the store.
func TestParseEndpointFallback(t *testing.T) {
	srv, mem := newTestServer(t)
	t.Setenv("ANTHROPIC_API_KEY", "")

	body := `{"text":"bench 135x10, squat 225x5"}`
	req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var resp parseResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Parsed.Exercises) != 2 {
		t.Errorf("exercises = %d, want 2", len(resp.Parsed.Exercises))
	}
	if resp.Workout != nil {
		t.Error("workout committed without commit flag")
	}
	if mem.Count() != 0 {
		t.Errorf("stored = %d, want 0", mem.Count())
	}
}

// TestParseEndpointCommit verifies commit=true merges the parsed workout.
func TestParseEndpointCommit(t *testing.T) {
	srv, mem := newTestServer(t)
	t.Setenv("ANTHROPIC_API_KEY", "")

	body := `{"text":"bench 135x10","commit":true}`
	req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var resp parseResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Workout == nil {
		t.Fatal("committed workout missing from response")
	}
	if mem.Count() != 1 {
		t.Errorf("stored = %d, want 1", mem.Count())
	}
}

// TestParseEndpointMissingText verifies text is required.
func TestParseEndpointMissingText(t *testing.T) {
	srv, _ := newTestServer(t)

	req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(`{}`)))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestWorkoutQueryAndGet verifies the read endpoints, which need no auth.
func TestWorkoutQueryAndGet(t *testing.T) {
	srv, mem := newTestServer(t)

	w := models.NewWorkout("Leg Day", time.Now())
	mem.InsertWorkout(context.Background(), w)
	mem.Save(context.Background())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var list []*models.Workout
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Name != "Leg Day" {
		t.Errorf("list = %+v", list)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/workouts/"+w.ID.String(), nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/workouts/not-a-uuid", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rec.Code)
	}
}

// TestParseTimeRangeEndOnly verifies a query carrying only end= anchors
// the 30-day default window to that end instead of to now.
func TestParseTimeRangeEndOnly(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts?end=2026-01-31", nil)
	start, end, err := parseTimeRange(req)
	if err != nil {
		t.Fatal(err)
	}
	wantEnd := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) // date-only rolls to end of day
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
	if wantStart := wantEnd.AddDate(0, 0, -30); !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
}

// TestParseTimeRangeDefaults verifies the no-parameter window is the last
// 30 days ending now.
func TestParseTimeRangeDefaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts", nil)
	start, end, err := parseTimeRange(req)
	if err != nil {
		t.Fatal(err)
	}
	if time.Since(end) > time.Minute {
		t.Errorf("end = %v, want roughly now", end)
	}
	if want := end.AddDate(0, 0, -30); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
}

// TestDeleteWorkout verifies deletion requires auth and removes the workout.
func TestDeleteWorkout(t *testing.T) {
	srv, mem := newTestServer(t)

	w := models.NewWorkout("Leg Day", time.Now())
	mem.InsertWorkout(context.Background(), w)
	mem.Save(context.Background())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/workouts/"+w.ID.String(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthed delete status = %d, want 401", rec.Code)
	}

	req = authed(httptest.NewRequest(http.MethodDelete, "/api/v1/workouts/"+w.ID.String(), nil))
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body = %s", rec.Code, rec.Body)
	}
	if mem.Count() != 0 {
		t.Errorf("stored = %d, want 0", mem.Count())
	}
}

// TestSettingsKeysLifecycle verifies key set, status, and delete.
func TestSettingsKeysLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"value":"6ba7b810-9dad-11d1-80b4-00c04fd430c8"}`
	req := authed(httptest.NewRequest(http.MethodPut, "/api/v1/settings/keys/hevy_api_key", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d, body = %s", rec.Code, rec.Body)
	}
	var putResp struct {
		Name  string `json:"name"`
		Valid bool   `json:"valid"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&putResp); err != nil {
		t.Fatal(err)
	}
	if !putResp.Valid {
		t.Error("well-formed hevy key reported invalid")
	}

	req = authed(httptest.NewRequest(http.MethodGet, "/api/v1/settings/keys", nil))
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	var status map[string]bool
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	if !status["hevy_api_key"] {
		t.Error("hevy key not reported as configured")
	}

	req = authed(httptest.NewRequest(http.MethodDelete, "/api/v1/settings/keys/hevy_api_key", nil))
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
}

// TestSettingsKeysMalformedStillStored verifies shape validation is
// advisory: a malformed key is stored with valid=false.
func TestSettingsKeysMalformedStillStored(t *testing.T) {
	srv, _ := newTestServer(t)

	req := authed(httptest.NewRequest(http.MethodPut, "/api/v1/settings/keys/anthropic_api_key", strings.NewReader(`{"value":"oops"}`)))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d", rec.Code)
	}
	var resp struct {
		Valid bool `json:"valid"`
	}
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Valid {
		t.Error("malformed key reported valid")
	}
	if !srv.secrets.Exists(secrets.KeyAnthropicAPI) {
		t.Error("malformed key was not stored")
	}
}

// TestSettingsUnknownKey verifies unknown key names 404.
func TestSettingsUnknownKey(t *testing.T) {
	srv, _ := newTestServer(t)

	req := authed(httptest.NewRequest(http.MethodPut, "/api/v1/settings/keys/github_token", strings.NewReader(`{"value":"x"}`)))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
