// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/symptom-ranker/middleware"
	"github.com/danielhkuo/symptom-ranker/models"
	"github.com/danielhkuo/symptom-ranker/ranker"
)

// CatalogHandler serves the read-only knowledge base routes. No session
// is required.
type CatalogHandler struct {
	catalog *ranker.Catalog
}

func NewCatalogHandler(catalog *ranker.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Suggest handles GET /suggest?q=&limit=
func (h *CatalogHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := models.DefaultSuggestLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuggestResponse{
		Query:       query,
		Suggestions: h.catalog.Index.Suggest(query, limit),
	})
}

// Normalize handles GET /normalize?text=
func (h *CatalogHandler) Normalize(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	middleware.JSONResponse(w, http.StatusOK, models.NormalizeResponse{
		Input:   text,
		Symptom: h.catalog.Normalizer().Normalize(text),
	})
}

// ListConditions handles GET /conditions
func (h *CatalogHandler) ListConditions(w http.ResponseWriter, r *http.Request) {
	conditions := h.catalog.KB.Conditions()
	out := make([]models.ConditionInfo, 0, len(conditions))
	for _, c := range conditions {
		out = append(out, models.ConditionInfo{
			Name:     c.Name,
			Symptoms: c.Symptoms,
			Onset:    c.Onset,
		})
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}

// GetCondition handles GET /conditions/{name}
func (h *CatalogHandler) GetCondition(w http.ResponseWriter, r *http.Request) {
	c, ok := h.catalog.KB.Condition(r.PathValue("name"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Condition not found")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.ConditionInfo{
		Name:     c.Name,
		Symptoms: c.Symptoms,
		Onset:    c.Onset,
	})
}

// GetVocabulary handles GET /vocabulary
func (h *CatalogHandler) GetVocabulary(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.VocabularyResponse{
		Symptoms: h.catalog.KB.Vocabulary(),
	})
}

// GetPrecautions handles GET /precautions/{symptom}
// Symptoms without advice get the generic fallback.
func (h *CatalogHandler) GetPrecautions(w http.ResponseWriter, r *http.Request) {
	symptom := h.catalog.Normalizer().Normalize(r.PathValue("symptom"))
	if symptom == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "symptom is required")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.PrecautionGroup{
		Symptom:     symptom,
		Precautions: h.catalog.Precautions.For(symptom),
	})
}
