package model

import (
	"encoding/json"
	"time"
)

const (
	JobTypeSummary     = "summary"
	JobTypeKeyPoints   = "key_points"
	JobTypeActionItems = "action_items"
	JobTypeRewrite     = "rewrite"
	JobTypeOther       = "other"

	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

func ValidJobType(s string) bool {
	switch s {
	case JobTypeSummary, JobTypeKeyPoints, JobTypeActionItems, JobTypeRewrite, JobTypeOther:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Job records the status of a summarization request. It does not run
// anything: execution lives outside this service, which only stores what it
// is told. Jobs are never deleted; only output and status change.
type Job struct {
	ID         int64           `json:"id"`
	DocumentID *int64          `json:"document_id,omitempty"`
	OwnerID    string          `json:"owner_id"`
	JobType    string          `json:"job_type"`
	Input      json.RawMessage `json:"input,omitempty"`
	Output     json.RawMessage `json:"output,omitempty"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

type CreateJobRequest struct {
	DocumentID *int64          `json:"document_id"`
	JobType    string          `json:"job_type"`
	Input      json.RawMessage `json:"input"`
	Output     json.RawMessage `json:"output"`
	Status     string          `json:"status"`
}

// UpdateJobRequest carries the only two mutable job fields. Absence of both
// makes the update a no-op.
type UpdateJobRequest struct {
	Output json.RawMessage `json:"output"`
	Status *string         `json:"status"`
}

func (r UpdateJobRequest) Empty() bool {
	return len(r.Output) == 0 && r.Status == nil
}

// ListJobsFilter narrows List Jobs; both fields are optional.
type ListJobsFilter struct {
	DocumentID *int64
	Status     string
}
