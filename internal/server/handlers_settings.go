package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/liftlog/internal/secrets"
	"github.com/go-chi/chi/v5"
)

// keyValid runs the advisory shape check for a known secret name.
func keyValid(name, value string) bool {
	switch name {
	case secrets.KeyHevyAPI:
		return secrets.ValidHevyKey(value)
	case secrets.KeyAnthropicAPI:
		return secrets.ValidAnthropicKey(value)
	}
	return false
}

func (s *Server) handleKeyStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]bool{
		secrets.KeyHevyAPI:      s.secrets.Exists(secrets.KeyHevyAPI),
		secrets.KeyAnthropicAPI: s.secrets.Exists(secrets.KeyAnthropicAPI),
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handlePutKey(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Value == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "value is required"})
		return
	}

	if err := s.secrets.Set(name, req.Value); err != nil {
		if errors.Is(err, secrets.ErrUnknownKey) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	// Shape validation is advisory: the key is stored either way, and the
	// response tells the caller whether it looks well-formed.
	writeJSON(w, http.StatusOK, map[string]any{
		"name":  name,
		"valid": keyValid(name, req.Value),
	})
}

func (s *Server) handleDeleteKey(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := s.secrets.Delete(name); err != nil {
		if errors.Is(err, secrets.ErrUnknownKey) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
