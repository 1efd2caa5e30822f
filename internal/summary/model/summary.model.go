package model

import (
	"encoding/json"
	"time"
)

const (
	SummaryTypeShort        = "short"
	SummaryTypeDetailed     = "detailed"
	SummaryTypeBulletPoints = "bullet_points"
	SummaryTypeKeyPoints    = "key_points"
	SummaryTypeActionItems  = "action_items"
)

func ValidSummaryType(s string) bool {
	switch s {
	case SummaryTypeShort, SummaryTypeDetailed, SummaryTypeBulletPoints, SummaryTypeKeyPoints, SummaryTypeActionItems:
		return true
	}
	return false
}

// Summary is an AI-summarization result for a document. Rows are immutable
// after insert; owner_id always mirrors the parent document's owner.
type Summary struct {
	ID             int64           `json:"id"`
	DocumentID     int64           `json:"document_id"`
	OwnerID        string          `json:"owner_id"`
	SummaryType    string          `json:"summary_type"`
	Content        string          `json:"content"`
	OriginalLength *int64          `json:"original_length,omitempty"`
	SummaryLength  *int64          `json:"summary_length,omitempty"`
	Meta           json.RawMessage `json:"meta,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

type CreateSummaryRequest struct {
	DocumentID     int64           `json:"document_id"`
	SummaryType    string          `json:"summary_type"`
	Content        string          `json:"content"`
	OriginalLength *int64          `json:"original_length"`
	SummaryLength  *int64          `json:"summary_length"`
	Meta           json.RawMessage `json:"meta"`
}
