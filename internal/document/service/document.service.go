package service

import (
	"database/sql"

	"notedeck/internal/document/model"
	"notedeck/internal/document/repository"
	summarymodel "notedeck/internal/summary/model"
	summaryrepo "notedeck/internal/summary/repository"
	"notedeck/pkg/apierr"
	"notedeck/socket"
)

type DocumentService struct {
	Repo      *repository.DocumentRepository
	Summaries *summaryrepo.SummaryRepository
	Hub       *socket.Hub
}

func NewDocumentService(repo *repository.DocumentRepository, summaries *summaryrepo.SummaryRepository, hub *socket.Hub) *DocumentService {
	return &DocumentService{Repo: repo, Summaries: summaries, Hub: hub}
}

func (s *DocumentService) Create(ownerID string, req model.CreateDocRequest) (*model.Document, error) {
	if req.SourceType == "" {
		req.SourceType = model.SourceTypeManual
	}
	doc, err := s.Repo.Create(ownerID, req)
	if err != nil {
		return nil, err
	}
	s.Hub.Publish(socket.DocumentCreated, ownerID, doc)
	return doc, nil
}

func (s *DocumentService) Update(id int64, ownerID string, req model.UpdateDocRequest) (*model.Document, error) {
	// Nothing to merge: hand back the existing row without touching
	// updated_at.
	if req.Empty() {
		doc, err := s.Repo.GetByID(id, ownerID)
		if err == sql.ErrNoRows {
			return nil, apierr.NotFound("document")
		}
		return doc, err
	}

	doc, err := s.Repo.Update(id, ownerID, req)
	if err == sql.ErrNoRows {
		return nil, apierr.NotFound("document")
	}
	if err != nil {
		return nil, err
	}
	s.Hub.Publish(socket.DocumentUpdated, ownerID, doc)
	return doc, nil
}

func (s *DocumentService) Delete(id int64, ownerID string) (*model.Document, error) {
	doc, err := s.Repo.Delete(id, ownerID)
	if err == sql.ErrNoRows {
		return nil, apierr.NotFound("document")
	}
	if err != nil {
		return nil, err
	}
	s.Hub.Publish(socket.DocumentDeleted, ownerID, doc)
	return doc, nil
}

func (s *DocumentService) List(ownerID string) ([]model.Document, error) {
	return s.Repo.ListByOwner(ownerID)
}

// GetWithSummaries returns the caller's document and every summary attached
// to it. The document lookup carries the ownership check; summaries ride on
// the owner_id-mirrors-document invariant.
func (s *DocumentService) GetWithSummaries(id int64, ownerID string) (*model.Document, []summarymodel.Summary, error) {
	doc, err := s.Repo.GetByID(id, ownerID)
	if err == sql.ErrNoRows {
		return nil, nil, apierr.NotFound("document")
	}
	if err != nil {
		return nil, nil, err
	}

	summaries, err := s.Summaries.ListByDocument(id)
	if err != nil {
		return nil, nil, err
	}
	return doc, summaries, nil
}
