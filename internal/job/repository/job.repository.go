package repository

import (
	"database/sql"
	"encoding/json"

	"notedeck/internal/job/model"
	"notedeck/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

const jobColumns = "id, document_id, owner_id, job_type, input, output, status, created_at"

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(s rowScanner) (*model.Job, error) {
	var j model.Job
	var docID sql.NullInt64
	var input, output []byte
	if err := s.Scan(&j.ID, &docID, &j.OwnerID, &j.JobType, &input, &output, &j.Status, &j.CreatedAt); err != nil {
		return nil, err
	}
	if docID.Valid {
		j.DocumentID = &docID.Int64
	}
	if input != nil {
		j.Input = json.RawMessage(input)
	}
	if output != nil {
		j.Output = json.RawMessage(output)
	}
	return &j, nil
}

func (r *JobRepository) Insert(ownerID string, req model.CreateJobRequest) (*model.Job, error) {
	var input, output interface{}
	if len(req.Input) > 0 {
		input = []byte(req.Input)
	}
	if len(req.Output) > 0 {
		output = []byte(req.Output)
	}
	row := r.DB.QueryRow(`INSERT INTO jobs (document_id, owner_id, job_type, input, output, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING `+jobColumns,
		req.DocumentID, ownerID, req.JobType, input, output, req.Status)
	job, err := scanJob(row)
	if err != nil {
		logger.Sugar.Errorf("Failed to insert job: %v", err)
	}
	return job, err
}

func (r *JobRepository) GetByID(id int64, ownerID string) (*model.Job, error) {
	row := r.DB.QueryRow(`SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND owner_id = $2`, id, ownerID)
	job, err := scanJob(row)
	if err != nil && err != sql.ErrNoRows {
		logger.Sugar.Errorf("Failed to get job %d: %v", id, err)
	}
	return job, err
}

// Update writes the supplied subset of {output, status} to the owner's row.
func (r *JobRepository) Update(id int64, ownerID string, req model.UpdateJobRequest) (*model.Job, error) {
	b := sq.Update("jobs")
	if len(req.Output) > 0 {
		b = b.Set("output", []byte(req.Output))
	}
	if req.Status != nil {
		b = b.Set("status", *req.Status)
	}
	query, args, err := b.Where(sq.Eq{"id": id, "owner_id": ownerID}).
		Suffix("RETURNING " + jobColumns).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	job, err := scanJob(r.DB.QueryRow(query, args...))
	if err != nil && err != sql.ErrNoRows {
		logger.Sugar.Errorf("Failed to update job %d: %v", id, err)
	}
	return job, err
}

// ListVisible returns the caller's jobs. A job with a document reference is
// visible only while that document is in the caller's set; jobs without a
// reference pass on owner_id alone.
func (r *JobRepository) ListVisible(ownerID string, filter model.ListJobsFilter) ([]model.Job, error) {
	b := sq.Select(jobColumns).From("jobs").
		Where(sq.Eq{"owner_id": ownerID}).
		Where("(document_id IS NULL OR document_id IN (SELECT id FROM documents WHERE owner_id = ?))", ownerID)
	if filter.DocumentID != nil {
		b = b.Where(sq.Eq{"document_id": *filter.DocumentID})
	}
	if filter.Status != "" {
		b = b.Where(sq.Eq{"status": filter.Status})
	}
	query, args, err := b.OrderBy("created_at DESC").PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		logger.Sugar.Errorf("Failed to list jobs for user %s: %v", ownerID, err)
		return nil, err
	}
	defer rows.Close()

	jobs := []model.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}
