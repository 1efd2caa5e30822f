package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"notedeck/internal/summary/model"
	"notedeck/internal/summary/service"
	"notedeck/middleware"
	"notedeck/pkg/apierr"
	"notedeck/pkg/logger"
)

type SummaryHandler struct {
	Service *service.SummaryService
}

func NewSummaryHandler(service *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{Service: service}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (h *SummaryHandler) CreateSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		apierr.Write(w, apierr.Unauthenticated())
		return
	}

	var req model.CreateSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, apierr.Validation("invalid request body"))
		return
	}
	if req.DocumentID == 0 {
		apierr.Write(w, apierr.Validation("document_id is required"))
		return
	}
	if req.Content == "" {
		apierr.Write(w, apierr.Validation("content is required"))
		return
	}
	if req.SummaryType != "" && !model.ValidSummaryType(req.SummaryType) {
		apierr.Write(w, apierr.Validation("summary_type must be one of short, detailed, bullet_points, key_points, action_items"))
		return
	}

	summary, err := h.Service.Create(userID, req)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{"summary": summary})
}

func (h *SummaryHandler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		apierr.Write(w, apierr.Unauthenticated())
		return
	}

	var documentID *int64
	if raw := r.URL.Query().Get("documentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			apierr.Write(w, apierr.Validation("documentId must be an integer"))
			return
		}
		documentID = &id
	}

	summaries, err := h.Service.List(userID, documentID)
	if err != nil {
		logger.Sugar.Errorf("Error fetching summaries: %v", err)
		apierr.Write(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{"summaries": summaries})
}
