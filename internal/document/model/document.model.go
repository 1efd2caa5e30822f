package model

import (
	"encoding/json"
	"time"
)

const (
	SourceTypeManual = "manual"
	SourceTypeUpload = "upload"
	SourceTypeWeb    = "web"
	SourceTypeOther  = "other"
)

// ValidSourceType reports whether s is one of the recognized source types.
func ValidSourceType(s string) bool {
	switch s {
	case SourceTypeManual, SourceTypeUpload, SourceTypeWeb, SourceTypeOther:
		return true
	}
	return false
}

type Document struct {
	ID         int64           `json:"id"`
	OwnerID    string          `json:"owner_id"`
	Title      string          `json:"title"`
	Content    string          `json:"content"`
	SourceType string          `json:"source_type"`
	SourceMeta json.RawMessage `json:"source_meta,omitempty"`
	Tags       string          `json:"tags,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type CreateDocRequest struct {
	Title      string          `json:"title"`
	Content    string          `json:"content"`
	SourceType string          `json:"source_type"`
	SourceMeta json.RawMessage `json:"source_meta"`
	Tags       string          `json:"tags"`
}

// UpdateDocRequest carries a partial update. Pointer fields distinguish
// "absent" from "set to zero value"; SourceMeta is present when non-empty.
type UpdateDocRequest struct {
	Title      *string         `json:"title"`
	Content    *string         `json:"content"`
	SourceType *string         `json:"source_type"`
	SourceMeta json.RawMessage `json:"source_meta"`
	Tags       *string         `json:"tags"`
}

// Empty reports whether no mutable field was supplied.
func (r UpdateDocRequest) Empty() bool {
	return r.Title == nil && r.Content == nil && r.SourceType == nil &&
		len(r.SourceMeta) == 0 && r.Tags == nil
}
