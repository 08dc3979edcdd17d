// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/symptom-ranker/cliparse"
	"github.com/danielhkuo/symptom-ranker/middleware"
	"github.com/danielhkuo/symptom-ranker/models"
	"github.com/danielhkuo/symptom-ranker/ranker"
	"github.com/danielhkuo/symptom-ranker/scoring"
)

// SymptomHandler serves the session-scoped selection and analysis routes.
// Every route requires the X-Session-Token header.
type SymptomHandler struct {
	registry *SessionRegistry
	cfg      cliparse.Config
}

func NewSymptomHandler(registry *SessionRegistry, cfg cliparse.Config) *SymptomHandler {
	return &SymptomHandler{registry: registry, cfg: cfg}
}

// withSession authenticates the request and runs fn on its session
func (h *SymptomHandler) withSession(w http.ResponseWriter, r *http.Request, fn func(id string, s *ranker.Session)) {
	id, ok := sessionID(w, r, h.cfg.SessionSalt)
	if !ok {
		return
	}
	h.registry.With(id, func(s *ranker.Session) {
		fn(id, s)
	})
}

// ListSymptoms handles GET /session/symptoms
func (h *SymptomHandler) ListSymptoms(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(_ string, s *ranker.Session) {
		middleware.JSONResponse(w, http.StatusOK, models.SelectionResponse{
			Selected: s.Selected(),
		})
	})
}

// AddSymptom handles POST /session/symptoms
func (h *SymptomHandler) AddSymptom(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(id string, s *ranker.Session) {
		var req models.AddSymptomRequest
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}

		changed := s.OnAddSymptom(req.Symptom)
		if changed {
			slog.Debug("symptom added", "session_id", id, "input", req.Symptom)
		}

		middleware.JSONResponse(w, http.StatusOK, models.SelectionResponse{
			Changed:  changed,
			Selected: s.Selected(),
		})
	})
}

// RemoveSymptom handles DELETE /session/symptoms/{symptom}
func (h *SymptomHandler) RemoveSymptom(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(_ string, s *ranker.Session) {
		changed := s.OnRemoveSymptom(r.PathValue("symptom"))
		middleware.JSONResponse(w, http.StatusOK, models.SelectionResponse{
			Changed:  changed,
			Selected: s.Selected(),
		})
	})
}

// ClearSymptoms handles DELETE /session/symptoms
func (h *SymptomHandler) ClearSymptoms(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(_ string, s *ranker.Session) {
		changed := len(s.Selected()) > 0
		s.OnClear()
		middleware.JSONResponse(w, http.StatusOK, models.SelectionResponse{
			Changed:  changed,
			Selected: s.Selected(),
		})
	})
}

// SetDaysAgo handles PUT /session/symptoms/{symptom}/days
// Negative values are clamped to 0; unselected symptoms are left alone.
func (h *SymptomHandler) SetDaysAgo(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(_ string, s *ranker.Session) {
		var req models.SetDaysAgoRequest
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if req.DaysAgo == nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "days_ago is required")
			return
		}

		changed := s.OnSetDaysAgo(r.PathValue("symptom"), *req.DaysAgo)
		middleware.JSONResponse(w, http.StatusOK, models.SelectionResponse{
			Changed:  changed,
			Selected: s.Selected(),
		})
	})
}

// Analyze handles POST /session/analyze?top=N
func (h *SymptomHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	topN := h.cfg.DefaultTopN
	if raw := r.URL.Query().Get("top"); raw != "" {
		topN = scoring.ParseTopN(raw)
	}

	h.withSession(w, r, func(id string, s *ranker.Session) {
		analysis := s.OnAnalyzeRequested(topN)

		slog.Info("analysis computed",
			"session_id", id,
			"status", analysis.Status,
			"selected", len(s.Selected()),
			"results", len(analysis.Results),
		)

		middleware.JSONResponse(w, http.StatusOK, analysis)
	})
}

// GetPrecautions handles GET /session/precautions
func (h *SymptomHandler) GetPrecautions(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(_ string, s *ranker.Session) {
		middleware.JSONResponse(w, http.StatusOK, s.Precautions())
	})
}
