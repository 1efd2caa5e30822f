package repository

import (
	"database/sql"
	"encoding/json"

	"notedeck/internal/summary/model"
	"notedeck/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

const summaryColumns = "id, document_id, owner_id, summary_type, content, original_length, summary_length, meta, created_at"

type SummaryRepository struct {
	DB *sql.DB
}

func NewSummaryRepository(db *sql.DB) *SummaryRepository {
	return &SummaryRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSummary(s rowScanner) (*model.Summary, error) {
	var sm model.Summary
	var origLen, sumLen sql.NullInt64
	var meta []byte
	if err := s.Scan(&sm.ID, &sm.DocumentID, &sm.OwnerID, &sm.SummaryType, &sm.Content, &origLen, &sumLen, &meta, &sm.CreatedAt); err != nil {
		return nil, err
	}
	if origLen.Valid {
		sm.OriginalLength = &origLen.Int64
	}
	if sumLen.Valid {
		sm.SummaryLength = &sumLen.Int64
	}
	if meta != nil {
		sm.Meta = json.RawMessage(meta)
	}
	return &sm, nil
}

func (r *SummaryRepository) Insert(ownerID string, req model.CreateSummaryRequest) (*model.Summary, error) {
	var meta interface{}
	if len(req.Meta) > 0 {
		meta = []byte(req.Meta)
	}
	row := r.DB.QueryRow(`INSERT INTO summaries (document_id, owner_id, summary_type, content, original_length, summary_length, meta, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING `+summaryColumns,
		req.DocumentID, ownerID, req.SummaryType, req.Content, req.OriginalLength, req.SummaryLength, meta)
	summary, err := scanSummary(row)
	if err != nil {
		logger.Sugar.Errorf("Failed to insert summary for document %d: %v", req.DocumentID, err)
	}
	return summary, err
}

// ListByDocument returns every summary attached to a document. Ownership is
// not re-checked here; callers look the document up first.
func (r *SummaryRepository) ListByDocument(documentID int64) ([]model.Summary, error) {
	rows, err := r.DB.Query(`SELECT `+summaryColumns+` FROM summaries WHERE document_id = $1 ORDER BY created_at ASC`, documentID)
	if err != nil {
		logger.Sugar.Errorf("Failed to list summaries for document %d: %v", documentID, err)
		return nil, err
	}
	defer rows.Close()
	return collectSummaries(rows)
}

// ListVisible returns the caller's summaries, double-filtered by the
// summary's own owner_id and by membership in the caller's document set.
func (r *SummaryRepository) ListVisible(ownerID string, documentID *int64) ([]model.Summary, error) {
	b := sq.Select(summaryColumns).From("summaries").
		Where(sq.Eq{"owner_id": ownerID}).
		Where("document_id IN (SELECT id FROM documents WHERE owner_id = ?)", ownerID)
	if documentID != nil {
		b = b.Where(sq.Eq{"document_id": *documentID})
	}
	query, args, err := b.OrderBy("created_at DESC").PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		logger.Sugar.Errorf("Failed to list summaries for user %s: %v", ownerID, err)
		return nil, err
	}
	defer rows.Close()
	return collectSummaries(rows)
}

func collectSummaries(rows *sql.Rows) ([]model.Summary, error) {
	summaries := []model.Summary{}
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *s)
	}
	return summaries, rows.Err()
}
