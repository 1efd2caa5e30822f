package repository

import (
	"database/sql"
	"encoding/json"

	"notedeck/internal/document/model"
	"notedeck/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

const docColumns = "id, owner_id, title, content, source_type, source_meta, tags, created_at, updated_at"

type DocumentRepository struct {
	DB *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(s rowScanner) (*model.Document, error) {
	var d model.Document
	var meta []byte
	var tags sql.NullString
	if err := s.Scan(&d.ID, &d.OwnerID, &d.Title, &d.Content, &d.SourceType, &meta, &tags, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	if meta != nil {
		d.SourceMeta = json.RawMessage(meta)
	}
	d.Tags = tags.String
	return &d, nil
}

func (r *DocumentRepository) Create(ownerID string, req model.CreateDocRequest) (*model.Document, error) {
	var meta interface{}
	if len(req.SourceMeta) > 0 {
		meta = []byte(req.SourceMeta)
	}
	row := r.DB.QueryRow(`INSERT INTO documents (owner_id, title, content, source_type, source_meta, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING `+docColumns,
		ownerID, req.Title, req.Content, req.SourceType, meta, req.Tags)
	doc, err := scanDocument(row)
	if err != nil {
		logger.Sugar.Errorf("Failed to create document: %v", err)
	}
	return doc, err
}

func (r *DocumentRepository) GetByID(id int64, ownerID string) (*model.Document, error) {
	row := r.DB.QueryRow(`SELECT `+docColumns+` FROM documents WHERE id = $1 AND owner_id = $2`, id, ownerID)
	doc, err := scanDocument(row)
	if err != nil && err != sql.ErrNoRows {
		logger.Sugar.Errorf("Failed to get document %d: %v", id, err)
	}
	return doc, err
}

// Update merges the supplied fields into the owner's row and refreshes
// updated_at. The SET clause is built dynamically from field presence.
func (r *DocumentRepository) Update(id int64, ownerID string, req model.UpdateDocRequest) (*model.Document, error) {
	b := sq.Update("documents")
	if req.Title != nil {
		b = b.Set("title", *req.Title)
	}
	if req.Content != nil {
		b = b.Set("content", *req.Content)
	}
	if req.SourceType != nil {
		b = b.Set("source_type", *req.SourceType)
	}
	if len(req.SourceMeta) > 0 {
		b = b.Set("source_meta", []byte(req.SourceMeta))
	}
	if req.Tags != nil {
		b = b.Set("tags", *req.Tags)
	}
	query, args, err := b.Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		Suffix("RETURNING " + docColumns).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	doc, err := scanDocument(r.DB.QueryRow(query, args...))
	if err != nil && err != sql.ErrNoRows {
		logger.Sugar.Errorf("Failed to update document %d: %v", id, err)
	}
	return doc, err
}

func (r *DocumentRepository) Delete(id int64, ownerID string) (*model.Document, error) {
	row := r.DB.QueryRow(`DELETE FROM documents WHERE id = $1 AND owner_id = $2 RETURNING `+docColumns, id, ownerID)
	doc, err := scanDocument(row)
	if err != nil && err != sql.ErrNoRows {
		logger.Sugar.Errorf("Failed to delete document %d: %v", id, err)
	}
	return doc, err
}

func (r *DocumentRepository) ListByOwner(ownerID string) ([]model.Document, error) {
	rows, err := r.DB.Query(`SELECT `+docColumns+` FROM documents WHERE owner_id = $1 ORDER BY updated_at DESC`, ownerID)
	if err != nil {
		logger.Sugar.Errorf("Failed to list documents for user %s: %v", ownerID, err)
		return nil, err
	}
	defer rows.Close()

	docs := []model.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

// CheckOwnership reports whether the document exists and belongs to ownerID.
func (r *DocumentRepository) CheckOwnership(id int64, ownerID string) (bool, error) {
	var owned bool
	err := r.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM documents WHERE id = $1 AND owner_id = $2)`, id, ownerID).Scan(&owned)
	if err != nil {
		logger.Sugar.Errorf("Failed to check ownership of document %d: %v", id, err)
	}
	return owned, err
}
