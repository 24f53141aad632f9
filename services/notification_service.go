package services

import (
	"context"
	"log/slog"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/models"
	"github.com/agency-portal/querycache"
	"github.com/agency-portal/repositories"
)

// NotificationService owns the admin inbox and the per-client inboxes
type NotificationService struct {
	deps Deps
	repo *repositories.NotificationRepository
}

func NewNotificationService(deps Deps) *NotificationService {
	return &NotificationService{deps: deps, repo: repositories.NewNotificationRepository()}
}

func audienceParam(audience models.Audience, clientID string) string {
	return querycache.AudienceParam(string(audience), clientID)
}

func principalAudience(p dto.Principal) string {
	return audienceParam(p.Audience(), p.ClientID)
}

// List returns the caller's notifications, newest first
func (s *NotificationService) List(ctx context.Context, p dto.Principal, q dto.NotificationQuery) ([]models.Notification, error) {
	list, err := querycache.Fetch(ctx, s.deps.Cache, querycache.NotificationsKey(principalAudience(p), q.Unread),
		func(ctx context.Context) ([]models.Notification, error) {
			return s.repo.FindByAudience(ctx, p.Audience(), p.ClientID, q.Unread, 0)
		})
	if err != nil {
		return nil, err
	}
	if q.Limit > 0 && len(list) > q.Limit {
		list = list[:q.Limit]
	}
	return list, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, p dto.Principal) (int64, error) {
	return querycache.Fetch(ctx, s.deps.Cache, querycache.UnreadCountKey(principalAudience(p)),
		func(ctx context.Context) (int64, error) {
			return s.repo.CountUnread(ctx, p.Audience(), p.ClientID)
		})
}

// MarkRead flips one notification of the caller to read.
// Marking an already read notification again changes nothing and is not an error.
func (s *NotificationService) MarkRead(ctx context.Context, p dto.Principal, id string) (models.Notification, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Notification{}, notFound(err, "notification")
	}
	if !belongsTo(n, p) {
		return models.Notification{}, notFound(ErrNotFound, "notification")
	}
	if n.IsRead {
		return n, nil
	}

	now := s.deps.Now()
	err = s.deps.Cache.Mutate(ctx, querycache.NotificationRead, func(ctx context.Context) (querycache.Event, error) {
		_, err := s.repo.MarkRead(ctx, id, now)
		return querycache.Event{ID: id, Audience: principalAudience(p)}, err
	})
	if err != nil {
		return models.Notification{}, err
	}
	n.IsRead = true
	n.ReadAt = &now
	return n, nil
}

// MarkAllRead flips every unread notification of the caller and returns how many changed
func (s *NotificationService) MarkAllRead(ctx context.Context, p dto.Principal) (int64, error) {
	var updated int64
	err := s.deps.Cache.Mutate(ctx, querycache.NotificationRead, func(ctx context.Context) (querycache.Event, error) {
		var err error
		updated, err = s.repo.MarkAllRead(ctx, p.Audience(), p.ClientID, s.deps.Now())
		return querycache.Event{Audience: principalAudience(p)}, err
	})
	return updated, err
}

// NotifyAdmin posts to the agency inbox
func (s *NotificationService) NotifyAdmin(ctx context.Context, kind models.NotificationType, titre, message, link string, projectID string) {
	s.notify(ctx, models.Notification{
		Audience:  models.AudienceAdmin,
		Type:      kind,
		Titre:     titre,
		Message:   message,
		Link:      link,
		ProjectID: optional(projectID),
	})
}

// NotifyClient posts to one client's inbox
func (s *NotificationService) NotifyClient(ctx context.Context, clientID string, kind models.NotificationType, titre, message, link string, projectID string) {
	if clientID == "" {
		return
	}
	s.notify(ctx, models.Notification{
		Audience:  models.AudienceClient,
		ClientID:  &clientID,
		Type:      kind,
		Titre:     titre,
		Message:   message,
		Link:      link,
		ProjectID: optional(projectID),
	})
}

// notify never fails the write that triggered it; a lost notification is only logged
func (s *NotificationService) notify(ctx context.Context, n models.Notification) {
	clientID := ""
	if n.ClientID != nil {
		clientID = *n.ClientID
	}
	err := s.deps.Cache.Mutate(ctx, querycache.NotificationCreated, func(ctx context.Context) (querycache.Event, error) {
		created, err := s.repo.Create(ctx, n)
		return querycache.Event{ID: created.ID, Audience: audienceParam(n.Audience, clientID)}, err
	})
	if err != nil {
		s.deps.Logger.Warn("Failed to create notification",
			slog.String("type", string(n.Type)),
			slog.String("audience", string(n.Audience)),
			slog.Any("error", err))
	}
}

func belongsTo(n models.Notification, p dto.Principal) bool {
	if p.IsAdmin() {
		return n.Audience == models.AudienceAdmin
	}
	return n.Audience == models.AudienceClient && n.ClientID != nil && *n.ClientID == p.ClientID
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
