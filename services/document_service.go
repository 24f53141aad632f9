package services

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/models"
	"github.com/agency-portal/querycache"
	"github.com/agency-portal/repositories"
	"github.com/agency-portal/storage"
)

// DocumentService shares files with clients and collects their signatures
type DocumentService struct {
	deps          Deps
	repo          *repositories.DocumentRepository
	projects      *ProjectService
	notifications *NotificationService
}

func NewDocumentService(deps Deps, projects *ProjectService, notifications *NotificationService) *DocumentService {
	return &DocumentService{
		deps:          deps,
		repo:          repositories.NewDocumentRepository(),
		projects:      projects,
		notifications: notifications,
	}
}

func (s *DocumentService) List(ctx context.Context, projectID string) ([]models.Document, error) {
	return querycache.Fetch(ctx, s.deps.Cache, querycache.DocumentsKey(projectID),
		func(ctx context.Context) ([]models.Document, error) {
			return s.repo.FindByProjectID(ctx, projectID)
		})
}

// Get returns a document of a project the caller may see
func (s *DocumentService) Get(ctx context.Context, p dto.Principal, id string) (models.Document, error) {
	document, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Document{}, notFound(err, "document")
	}
	if _, err := s.projects.Get(ctx, p, document.ProjectID); err != nil {
		return models.Document{}, err
	}
	return document, nil
}

// UploadRequest describes a document added by the agency
type UploadRequest struct {
	Nom               string
	Description       string
	RequiresSignature bool
	File              dto.Upload
}

// Upload stores the file, records the document and tells the client
func (s *DocumentService) Upload(ctx context.Context, projectID string, req UploadRequest) (models.Document, error) {
	project, err := s.projects.Find(ctx, projectID)
	if err != nil {
		return models.Document{}, err
	}
	nom := req.Nom
	if nom == "" {
		nom = req.File.FileName
	}
	if nom == "" {
		return models.Document{}, invalid("a document name is required")
	}

	id := uuid.NewString()
	key := storage.ObjectKey("documents", projectID, id, req.File.FileName)
	if err := s.deps.Store.Put(ctx, key, req.File.Body, req.File.Size, req.File.ContentType); err != nil {
		return models.Document{}, fmt.Errorf("store document: %w", err)
	}

	document := models.Document{
		Base:              models.Base{ID: id},
		ProjectID:         projectID,
		Nom:               nom,
		Description:       req.Description,
		FilePath:          key,
		FileSize:          req.File.Size,
		ContentType:       req.File.ContentType,
		RequiresSignature: req.RequiresSignature,
	}
	var created models.Document
	err = s.deps.Cache.Mutate(ctx, querycache.DocumentUploaded, func(ctx context.Context) (querycache.Event, error) {
		var err error
		created, err = s.repo.Create(ctx, document)
		return querycache.Event{ID: id, ProjectID: projectID}, err
	})
	if err != nil {
		cleanupObjects(ctx, s.deps, []string{key})
		return models.Document{}, err
	}

	message := fmt.Sprintf("Le document %s est disponible", created.Nom)
	if created.RequiresSignature {
		message = fmt.Sprintf("Le document %s attend votre signature", created.Nom)
	}
	s.notifications.NotifyClient(ctx, project.ClientID, models.NotificationDocument,
		"Nouveau document", message, "/app/documents?project="+projectID, projectID)
	return created, nil
}

// Open streams the document file; the caller closes the reader
func (s *DocumentService) Open(ctx context.Context, p dto.Principal, id string) (models.Document, io.ReadCloser, error) {
	document, err := s.Get(ctx, p, id)
	if err != nil {
		return models.Document{}, nil, err
	}
	body, err := s.deps.Store.Open(ctx, document.FilePath)
	if err != nil {
		return models.Document{}, nil, notFound(err, "document file")
	}
	return document, body, nil
}

// Sign records the client's signature. A document is signed once.
func (s *DocumentService) Sign(ctx context.Context, p dto.Principal, id string, req dto.SignDocumentRequest) (models.Document, error) {
	if !p.IsClient() {
		return models.Document{}, fmt.Errorf("only clients sign documents: %w", ErrForbidden)
	}
	document, err := s.Get(ctx, p, id)
	if err != nil {
		return models.Document{}, err
	}
	if !document.RequiresSignature {
		return models.Document{}, invalid("document %s does not require a signature", id)
	}
	if document.IsSigned {
		return models.Document{}, fmt.Errorf("document already signed: %w", ErrConflict)
	}

	now := s.deps.Now()
	document.IsSigned = true
	document.SignatureData = req.SignatureData
	document.SignedAt = &now

	err = s.deps.Cache.Mutate(ctx, querycache.DocumentSigned, func(ctx context.Context) (querycache.Event, error) {
		return querycache.Event{ID: id, ProjectID: document.ProjectID}, s.repo.Update(ctx, document)
	})
	if err != nil {
		return models.Document{}, err
	}

	s.notifications.NotifyAdmin(ctx, models.NotificationDocument,
		"Document signé",
		fmt.Sprintf("Le document %s a été signé", document.Nom),
		"/admin/projects/"+document.ProjectID, document.ProjectID)
	return document, nil
}

// Delete removes the document row, then its file
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	document, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "document")
	}
	err = s.deps.Cache.Mutate(ctx, querycache.DocumentDeleted, func(ctx context.Context) (querycache.Event, error) {
		return querycache.Event{ID: id, ProjectID: document.ProjectID}, s.repo.Delete(ctx, id)
	})
	if err != nil {
		return notFound(err, "document")
	}
	cleanupObjects(ctx, s.deps, []string{document.FilePath})
	return nil
}
