package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/claude/liftlog/internal/ingest"
	"github.com/claude/liftlog/internal/ingest/hevy"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/parse"
	"github.com/claude/liftlog/internal/secrets"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleHevyImport(w http.ResponseWriter, r *http.Request) {
	key, err := s.secrets.Get(secrets.KeyHevyAPI)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if key == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "hevy api key not configured"})
		return
	}
	// Validation is advisory; a key that fails the shape check is still tried.
	if !secrets.ValidHevyKey(key) {
		s.log.Warn("hevy api key does not look like a valid key, attempting import anyway")
	}

	client := hevy.NewClient(s.hevyBaseURL, key)
	result, err := s.hevy.Ingest(r.Context(), client)
	if err != nil {
		s.log.Error("hevy import error", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCSVImport(w http.ResponseWriter, r *http.Request) {
	result, err := s.csv.Ingest(r.Context(), r.Body)
	if err != nil {
		s.log.Error("csv import error", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealthImport(w http.ResponseWriter, r *http.Request) {
	result, err := s.health.Ingest(r.Context(), r.Body)
	if err != nil {
		s.log.Error("health import error", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type parseRequest struct {
	Text   string `json:"text"`
	Commit bool   `json:"commit"`
}

type parseResponse struct {
	Parsed  *parse.ParsedWorkout `json:"parsed"`
	Workout *models.Workout      `json:"workout,omitempty"`
	Result  *ingest.Result       `json:"result,omitempty"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	key, err := s.secrets.Get(secrets.KeyAnthropicAPI)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	svc := parse.NewService(key, s.log)
	parsed, err := svc.Parse(r.Context(), req.Text)
	if err != nil {
		s.log.Error("parse error", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	resp := parseResponse{Parsed: parsed}
	if req.Commit {
		workout := parse.ToWorkout(parsed, time.Now())
		result, err := s.engine.Merge(r.Context(), []*models.Workout{workout}, nil)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		resp.Workout = workout
		resp.Result = result
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleQueryWorkouts(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	workouts, err := s.store.QueryWorkouts(r.Context(), start, end)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if workouts == nil {
		workouts = []*models.Workout{}
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	workout, err := s.store.GetWorkout(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	if err := s.store.DeleteWorkout(r.Context(), id); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if endStr == "" {
		end = time.Now()
	} else {
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			end, err = time.Parse("2006-01-02", endStr)
			if err != nil {
				return time.Time{}, time.Time{}, err
			}
			// End of day for date-only
			end = end.Add(24 * time.Hour)
		}
	}

	if startStr == "" {
		// Default: the 30 days leading up to the range end
		start = end.AddDate(0, 0, -30)
		return
	}

	start, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return
}
