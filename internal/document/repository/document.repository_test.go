package repository

import (
	"database/sql"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"notedeck/internal/document/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var docCols = []string{"id", "owner_id", "title", "content", "source_type", "source_meta", "tags", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (*DocumentRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewDocumentRepository(db), mock
}

func TestCreateRoundTripsSourceMeta(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO documents")).
		WithArgs("user-1", "Meeting", "notes from standup", "manual", []byte(`{"a":1}`), "").
		WillReturnRows(sqlmock.NewRows(docCols).
			AddRow(1, "user-1", "Meeting", "notes from standup", "manual", []byte(`{"a":1}`), "", now, now))

	doc, err := repo.Create("user-1", model.CreateDocRequest{
		Title:      "Meeting",
		Content:    "notes from standup",
		SourceType: "manual",
		SourceMeta: json.RawMessage(`{"a":1}`),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), doc.ID)
	assert.Equal(t, "user-1", doc.OwnerID)
	assert.JSONEq(t, `{"a":1}`, string(doc.SourceMeta))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNilSourceMeta(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO documents")).
		WithArgs("user-1", "Plain", "body", "manual", nil, "").
		WillReturnRows(sqlmock.NewRows(docCols).
			AddRow(2, "user-1", "Plain", "body", "manual", nil, "", now, now))

	doc, err := repo.Create("user-1", model.CreateDocRequest{Title: "Plain", Content: "body", SourceType: "manual"})
	require.NoError(t, err)

	assert.Nil(t, doc.SourceMeta)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDScopedToOwner(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT .+ FROM documents WHERE id = \\$1 AND owner_id = \\$2").
		WithArgs(int64(5), "user-2").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(5, "user-2")
	assert.Equal(t, sql.ErrNoRows, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSetsOnlySuppliedFields(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	title := "x"
	query := `UPDATE documents SET title = $1, updated_at = NOW() WHERE id = $2 AND owner_id = $3 RETURNING ` + docColumns
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("x", int64(1), "user-1").
		WillReturnRows(sqlmock.NewRows(docCols).
			AddRow(1, "user-1", "x", "body", "manual", nil, "", now, now))

	doc, err := repo.Update(1, "user-1", model.UpdateDocRequest{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "x", doc.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMergesMultipleFields(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	content := "rewritten"
	tags := "work,meeting"
	query := `UPDATE documents SET content = $1, tags = $2, updated_at = NOW() WHERE id = $3 AND owner_id = $4 RETURNING ` + docColumns
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("rewritten", "work,meeting", int64(3), "user-1").
		WillReturnRows(sqlmock.NewRows(docCols).
			AddRow(3, "user-1", "Meeting", "rewritten", "manual", nil, "work,meeting", now, now))

	doc, err := repo.Update(3, "user-1", model.UpdateDocRequest{Content: &content, Tags: &tags})
	require.NoError(t, err)

	assert.Equal(t, "rewritten", doc.Content)
	assert.Equal(t, "work,meeting", doc.Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReturnsDeletedRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM documents WHERE id = $1 AND owner_id = $2 RETURNING")).
		WithArgs(int64(7), "user-1").
		WillReturnRows(sqlmock.NewRows(docCols).
			AddRow(7, "user-1", "Old", "gone", "manual", nil, "", now, now))

	doc, err := repo.Delete(7, "user-1")
	require.NoError(t, err)

	assert.Equal(t, int64(7), doc.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteForeignRowIsNoRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM documents WHERE id = $1 AND owner_id = $2 RETURNING")).
		WithArgs(int64(7), "user-2").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Delete(7, "user-2")
	assert.Equal(t, sql.ErrNoRows, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByOwner(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT .+ FROM documents WHERE owner_id = \\$1 ORDER BY updated_at DESC").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(docCols).
			AddRow(2, "user-1", "B", "b", "web", nil, "", now, now).
			AddRow(1, "user-1", "A", "a", "manual", nil, "", now.Add(-time.Hour), now.Add(-time.Hour)))

	docs, err := repo.ListByOwner("user-1")
	require.NoError(t, err)

	require.Len(t, docs, 2)
	assert.Equal(t, int64(2), docs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByOwnerEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT .+ FROM documents WHERE owner_id = \\$1").
		WithArgs("user-3").
		WillReturnRows(sqlmock.NewRows(docCols))

	docs, err := repo.ListByOwner("user-3")
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Len(t, docs, 0)
}

func TestCheckOwnership(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM documents WHERE id = $1 AND owner_id = $2)")).
		WithArgs(int64(9), "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	owned, err := repo.CheckOwnership(9, "user-1")
	require.NoError(t, err)
	assert.False(t, owned)
	assert.NoError(t, mock.ExpectationsWereMet())
}
