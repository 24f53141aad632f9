package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/models"
	"github.com/agency-portal/querycache"
	"github.com/agency-portal/repositories"
	"github.com/agency-portal/storage"
)

// TicketService handles client support requests and their attachments
type TicketService struct {
	deps          Deps
	repo          *repositories.TicketRepository
	projects      *ProjectService
	notifications *NotificationService
}

func NewTicketService(deps Deps, projects *ProjectService, notifications *NotificationService) *TicketService {
	return &TicketService{
		deps:          deps,
		repo:          repositories.NewTicketRepository(),
		projects:      projects,
		notifications: notifications,
	}
}

// ListAll is the admin queue, optionally of one statut
func (s *TicketService) ListAll(ctx context.Context, filter dto.TicketFilter) ([]models.Ticket, error) {
	key := querycache.NewKey(querycache.ScopeTickets, querycache.ParamAll, map[string]string{"statut": string(filter.Statut)})
	return querycache.Fetch(ctx, s.deps.Cache, key, func(ctx context.Context) ([]models.Ticket, error) {
		return s.repo.FindAll(ctx, filter.Statut)
	})
}

// ListForProject returns one project's tickets
func (s *TicketService) ListForProject(ctx context.Context, projectID string, filter dto.TicketFilter) ([]models.Ticket, error) {
	key := querycache.NewKey(querycache.ScopeTickets, projectID, map[string]string{"statut": string(filter.Statut)})
	return querycache.Fetch(ctx, s.deps.Cache, key, func(ctx context.Context) ([]models.Ticket, error) {
		return s.repo.FindByProjectID(ctx, projectID, filter.Statut)
	})
}

// Get returns a ticket with its attachments; clients only see their own tickets
func (s *TicketService) Get(ctx context.Context, p dto.Principal, id string) (models.Ticket, error) {
	ticket, err := querycache.Fetch(ctx, s.deps.Cache, querycache.TicketKey(id),
		func(ctx context.Context) (models.Ticket, error) {
			ticket, err := s.repo.FindByID(ctx, id)
			return ticket, notFound(err, "ticket")
		})
	if err != nil {
		return models.Ticket{}, err
	}
	if !p.IsAdmin() && ticket.ClientID != p.ClientID {
		return models.Ticket{}, fmt.Errorf("ticket %s: %w", id, ErrForbidden)
	}
	return ticket, nil
}

// Create files a ticket from the client portal and alerts the agency
func (s *TicketService) Create(ctx context.Context, p dto.Principal, projectID string, req dto.TicketRequest) (models.Ticket, error) {
	if !p.IsClient() {
		return models.Ticket{}, fmt.Errorf("only clients open tickets: %w", ErrForbidden)
	}
	project, err := s.projects.Get(ctx, p, projectID)
	if err != nil {
		return models.Ticket{}, err
	}

	ticket := models.Ticket{
		ProjectID:   project.ID,
		ClientID:    p.ClientID,
		Titre:       req.Titre,
		Description: req.Description,
		Statut:      models.TicketOuvert,
		Priorite:    models.PriorityMoyenne,
	}
	if req.Priorite != "" {
		ticket.Priorite = req.Priorite
	}

	var created models.Ticket
	err = s.deps.Cache.Mutate(ctx, querycache.TicketCreated, func(ctx context.Context) (querycache.Event, error) {
		var err error
		created, err = s.repo.Create(ctx, ticket)
		return querycache.Event{ID: created.ID, ProjectID: project.ID, ClientID: p.ClientID}, err
	})
	if err != nil {
		return models.Ticket{}, err
	}

	s.notifications.NotifyAdmin(ctx, models.NotificationTicket,
		"Nouveau ticket",
		fmt.Sprintf("%s sur le projet %s", created.Titre, project.Titre),
		"/admin/tickets/"+created.ID, project.ID)
	return created, nil
}

// AddAttachment stores the file then records it on the ticket
func (s *TicketService) AddAttachment(ctx context.Context, p dto.Principal, ticketID string, upload dto.Upload) (models.TicketAttachment, error) {
	ticket, err := s.Get(ctx, p, ticketID)
	if err != nil {
		return models.TicketAttachment{}, err
	}

	id := uuid.NewString()
	key := storage.ObjectKey("tickets", ticket.ID, id, upload.FileName)
	if err := s.deps.Store.Put(ctx, key, upload.Body, upload.Size, upload.ContentType); err != nil {
		return models.TicketAttachment{}, fmt.Errorf("store attachment: %w", err)
	}

	attachment := models.TicketAttachment{
		Base:        models.Base{ID: id},
		TicketID:    ticket.ID,
		FileName:    upload.FileName,
		FilePath:    key,
		FileSize:    upload.Size,
		ContentType: upload.ContentType,
	}
	var created models.TicketAttachment
	err = s.deps.Cache.Mutate(ctx, querycache.TicketAttachmentAdded, func(ctx context.Context) (querycache.Event, error) {
		var err error
		created, err = s.repo.CreateAttachment(ctx, attachment)
		return querycache.Event{ID: ticket.ID, ProjectID: ticket.ProjectID}, err
	})
	if err != nil {
		cleanupObjects(ctx, s.deps, []string{key})
		return models.TicketAttachment{}, err
	}
	return created, nil
}

// OpenAttachment streams one attachment; the caller closes the reader
func (s *TicketService) OpenAttachment(ctx context.Context, p dto.Principal, ticketID, attachmentID string) (models.TicketAttachment, io.ReadCloser, error) {
	if _, err := s.Get(ctx, p, ticketID); err != nil {
		return models.TicketAttachment{}, nil, err
	}
	attachment, err := s.repo.FindAttachment(ctx, ticketID, attachmentID)
	if err != nil {
		return models.TicketAttachment{}, nil, notFound(err, "attachment")
	}
	body, err := s.deps.Store.Open(ctx, attachment.FilePath)
	if err != nil {
		return models.TicketAttachment{}, nil, notFound(err, "attachment file")
	}
	return attachment, body, nil
}

// UpdateStatus moves the ticket to any statut and tells the client
func (s *TicketService) UpdateStatus(ctx context.Context, id string, statut models.TicketStatus) (models.Ticket, error) {
	if !statut.Valid() {
		return models.Ticket{}, invalid("unknown ticket statut %q", statut)
	}
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Ticket{}, notFound(err, "ticket")
	}
	err = s.deps.Cache.Mutate(ctx, querycache.TicketUpdated, func(ctx context.Context) (querycache.Event, error) {
		return querycache.Event{ID: id, ProjectID: ticket.ProjectID, ClientID: ticket.ClientID},
			s.repo.UpdateStatus(ctx, id, statut)
	})
	if err != nil {
		return models.Ticket{}, notFound(err, "ticket")
	}
	ticket.Statut = statut

	s.notifications.NotifyClient(ctx, ticket.ClientID, models.NotificationTicketStatus,
		"Ticket mis à jour",
		fmt.Sprintf("Votre ticket %s est maintenant %s", ticket.Titre, statut),
		"/app/tickets/"+ticket.ID+"?project="+ticket.ProjectID, ticket.ProjectID)
	return ticket, nil
}

// Delete removes the ticket, its attachment rows and their files
func (s *TicketService) Delete(ctx context.Context, id string) error {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "ticket")
	}
	var keys []string
	err = s.deps.Cache.Mutate(ctx, querycache.TicketDeleted, func(ctx context.Context) (querycache.Event, error) {
		var err error
		keys, err = s.repo.Delete(ctx, id)
		return querycache.Event{ID: id, ProjectID: ticket.ProjectID, ClientID: ticket.ClientID}, err
	})
	if err != nil {
		return notFound(err, "ticket")
	}
	if err := removeObjects(ctx, s.deps.Store, keys); err != nil {
		s.deps.Logger.Warn("Ticket deleted with leftover attachments",
			slog.String("ticket_id", id), slog.Any("error", err))
	}
	return nil
}
