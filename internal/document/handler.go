package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"notedeck/internal/document/model"
	"notedeck/internal/document/service"
	"notedeck/middleware"
	"notedeck/pkg/apierr"
	"notedeck/pkg/logger"
)

type DocumentHandler struct {
	Service *service.DocumentService
}

func NewDocumentHandler(service *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{Service: service}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		apierr.Write(w, apierr.Unauthenticated())
		return
	}

	var req model.CreateDocRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, apierr.Validation("invalid request body"))
		return
	}
	if req.Title == "" {
		apierr.Write(w, apierr.Validation("title is required"))
		return
	}
	if req.Content == "" {
		apierr.Write(w, apierr.Validation("content is required"))
		return
	}
	if req.SourceType != "" && !model.ValidSourceType(req.SourceType) {
		apierr.Write(w, apierr.Validation("source_type must be one of manual, upload, web, other"))
		return
	}

	doc, err := h.Service.Create(userID, req)
	if err != nil {
		logger.Sugar.Errorf("Failed to create document: %v", err)
		apierr.Write(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{"document": doc})
}

func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		apierr.Write(w, apierr.Unauthenticated())
		return
	}

	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		apierr.Write(w, apierr.Validation("id must be an integer"))
		return
	}

	var req model.UpdateDocRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, apierr.Validation("invalid request body"))
		return
	}
	if req.SourceType != nil && !model.ValidSourceType(*req.SourceType) {
		apierr.Write(w, apierr.Validation("source_type must be one of manual, upload, web, other"))
		return
	}

	doc, err := h.Service.Update(id, userID, req)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{"document": doc})
}

func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		apierr.Write(w, apierr.Unauthenticated())
		return
	}

	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		apierr.Write(w, apierr.Validation("id must be an integer"))
		return
	}

	doc, err := h.Service.Delete(id, userID)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{"document": doc})
}

func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		apierr.Write(w, apierr.Unauthenticated())
		return
	}

	docs, err := h.Service.List(userID)
	if err != nil {
		logger.Sugar.Errorf("Error fetching documents: %v", err)
		apierr.Write(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{"documents": docs})
}

func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		apierr.Write(w, apierr.Unauthenticated())
		return
	}

	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		apierr.Write(w, apierr.Validation("id must be an integer"))
		return
	}

	doc, summaries, err := h.Service.GetWithSummaries(id, userID)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{"document": doc, "summaries": summaries})
}
