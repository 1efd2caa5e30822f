package service

import (
	docrepo "notedeck/internal/document/repository"
	"notedeck/internal/summary/model"
	"notedeck/internal/summary/repository"
	"notedeck/pkg/apierr"
	"notedeck/socket"
)

type SummaryService struct {
	Repo *repository.SummaryRepository
	Docs *docrepo.DocumentRepository
	Hub  *socket.Hub
}

func NewSummaryService(repo *repository.SummaryRepository, docs *docrepo.DocumentRepository, hub *socket.Hub) *SummaryService {
	return &SummaryService{Repo: repo, Docs: docs, Hub: hub}
}

// Create inserts a summary under the caller's identity. The parent document
// must exist and belong to the caller; a foreign or missing document is
// reported as not found, never as forbidden.
func (s *SummaryService) Create(ownerID string, req model.CreateSummaryRequest) (*model.Summary, error) {
	if req.SummaryType == "" {
		req.SummaryType = model.SummaryTypeShort
	}

	owned, err := s.Docs.CheckOwnership(req.DocumentID, ownerID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, apierr.NotFound("document")
	}

	summary, err := s.Repo.Insert(ownerID, req)
	if err != nil {
		return nil, err
	}
	s.Hub.Publish(socket.SummaryCreated, ownerID, summary)
	return summary, nil
}

func (s *SummaryService) List(ownerID string, documentID *int64) ([]model.Summary, error) {
	if documentID != nil {
		owned, err := s.Docs.CheckOwnership(*documentID, ownerID)
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, apierr.NotFound("document")
		}
	}
	return s.Repo.ListVisible(ownerID, documentID)
}
