package service

import (
	"database/sql"

	docrepo "notedeck/internal/document/repository"
	"notedeck/internal/job/model"
	"notedeck/internal/job/repository"
	"notedeck/pkg/apierr"
	"notedeck/socket"
)

type JobService struct {
	Repo *repository.JobRepository
	Docs *docrepo.DocumentRepository
	Hub  *socket.Hub
}

func NewJobService(repo *repository.JobRepository, docs *docrepo.DocumentRepository, hub *socket.Hub) *JobService {
	return &JobService{Repo: repo, Docs: docs, Hub: hub}
}

func (s *JobService) Create(ownerID string, req model.CreateJobRequest) (*model.Job, error) {
	if req.JobType == "" {
		req.JobType = model.JobTypeSummary
	}
	if req.Status == "" {
		req.Status = model.StatusPending
	}

	if req.DocumentID != nil {
		owned, err := s.Docs.CheckOwnership(*req.DocumentID, ownerID)
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, apierr.NotFound("document")
		}
	}

	job, err := s.Repo.Insert(ownerID, req)
	if err != nil {
		return nil, err
	}
	s.Hub.Publish(socket.JobCreated, ownerID, job)
	return job, nil
}

func (s *JobService) Update(id int64, ownerID string, req model.UpdateJobRequest) (*model.Job, error) {
	// Neither output nor status supplied: return the row as-is.
	if req.Empty() {
		job, err := s.Repo.GetByID(id, ownerID)
		if err == sql.ErrNoRows {
			return nil, apierr.NotFound("job")
		}
		return job, err
	}

	job, err := s.Repo.Update(id, ownerID, req)
	if err == sql.ErrNoRows {
		return nil, apierr.NotFound("job")
	}
	if err != nil {
		return nil, err
	}
	s.Hub.Publish(socket.JobUpdated, ownerID, job)
	return job, nil
}

func (s *JobService) List(ownerID string, filter model.ListJobsFilter) ([]model.Job, error) {
	if filter.DocumentID != nil {
		owned, err := s.Docs.CheckOwnership(*filter.DocumentID, ownerID)
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, apierr.NotFound("document")
		}
	}
	return s.Repo.ListVisible(ownerID, filter)
}
