package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"notedeck/internal/job/model"
	"notedeck/internal/job/service"
	"notedeck/middleware"
	"notedeck/pkg/apierr"
	"notedeck/pkg/logger"
)

type JobHandler struct {
	Service *service.JobService
}

func NewJobHandler(service *service.JobService) *JobHandler {
	return &JobHandler{Service: service}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		apierr.Write(w, apierr.Unauthenticated())
		return
	}

	var req model.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, apierr.Validation("invalid request body"))
		return
	}
	if req.JobType != "" && !model.ValidJobType(req.JobType) {
		apierr.Write(w, apierr.Validation("job_type must be one of summary, key_points, action_items, rewrite, other"))
		return
	}
	if req.Status != "" && !model.ValidStatus(req.Status) {
		apierr.Write(w, apierr.Validation("status must be one of pending, completed, failed"))
		return
	}

	job, err := h.Service.Create(userID, req)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{"job": job})
}

func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
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

	var req model.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, apierr.Validation("invalid request body"))
		return
	}
	if req.Status != nil && !model.ValidStatus(*req.Status) {
		apierr.Write(w, apierr.Validation("status must be one of pending, completed, failed"))
		return
	}

	job, err := h.Service.Update(id, userID, req)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{"job": job})
}

func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		apierr.Write(w, apierr.Unauthenticated())
		return
	}

	var filter model.ListJobsFilter
	if raw := r.URL.Query().Get("documentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			apierr.Write(w, apierr.Validation("documentId must be an integer"))
			return
		}
		filter.DocumentID = &id
	}
	if status := r.URL.Query().Get("status"); status != "" {
		if !model.ValidStatus(status) {
			apierr.Write(w, apierr.Validation("status must be one of pending, completed, failed"))
			return
		}
		filter.Status = status
	}

	jobs, err := h.Service.List(userID, filter)
	if err != nil {
		logger.Sugar.Errorf("Error fetching jobs: %v", err)
		apierr.Write(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{"jobs": jobs})
}
