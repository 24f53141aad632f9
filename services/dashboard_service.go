package services

import (
	"context"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/models"
	"github.com/agency-portal/querycache"
	"github.com/agency-portal/repositories"
)

// DashboardService aggregates the admin home cards and the sidebar badges
type DashboardService struct {
	deps          Deps
	clients       *repositories.ClientRepository
	prospects     *repositories.ProspectRepository
	projects      *repositories.ProjectRepository
	tickets       *repositories.TicketRepository
	notifications *repositories.NotificationRepository
	reviews       *repositories.ReviewRepository
}

func NewDashboardService(deps Deps) *DashboardService {
	return &DashboardService{
		deps:          deps,
		clients:       repositories.NewClientRepository(),
		prospects:     repositories.NewProspectRepository(),
		projects:      repositories.NewProjectRepository(),
		tickets:       repositories.NewTicketRepository(),
		notifications: repositories.NewNotificationRepository(),
		reviews:       repositories.NewReviewRepository(),
	}
}

func (s *DashboardService) Stats(ctx context.Context) (dto.DashboardStats, error) {
	return querycache.Fetch(ctx, s.deps.Cache, querycache.DashboardStatsKey(), s.computeStats)
}

func (s *DashboardService) computeStats(ctx context.Context) (dto.DashboardStats, error) {
	var stats dto.DashboardStats
	var err error

	if stats.Clients, err = s.clients.Count(ctx); err != nil {
		return stats, err
	}
	if stats.ActiveProspects, err = s.prospects.CountActive(ctx); err != nil {
		return stats, err
	}
	if stats.ProjectsByStatus, err = s.projects.CountByStatus(ctx); err != nil {
		return stats, err
	}
	for _, n := range stats.ProjectsByStatus {
		stats.Projects += n
	}
	if stats.OpenTickets, err = s.tickets.CountOpen(ctx, ""); err != nil {
		return stats, err
	}
	if stats.UnreadNotifications, err = s.notifications.CountUnread(ctx, models.AudienceAdmin, ""); err != nil {
		return stats, err
	}
	if stats.AverageReview, err = s.reviews.AverageNote(ctx); err != nil {
		return stats, err
	}
	return stats, nil
}

func (s *DashboardService) SidebarCounts(ctx context.Context) (dto.SidebarCounts, error) {
	return querycache.Fetch(ctx, s.deps.Cache, querycache.SidebarCountsKey(), s.computeCounts)
}

func (s *DashboardService) computeCounts(ctx context.Context) (dto.SidebarCounts, error) {
	var counts dto.SidebarCounts
	var err error

	if counts.UnreadNotifications, err = s.notifications.CountUnread(ctx, models.AudienceAdmin, ""); err != nil {
		return counts, err
	}
	if counts.OpenTickets, err = s.tickets.CountOpen(ctx, ""); err != nil {
		return counts, err
	}
	if counts.ActiveProspects, err = s.prospects.CountActive(ctx); err != nil {
		return counts, err
	}
	return counts, nil
}

// RefreshCounts drops the cached badges and recomputes them
func (s *DashboardService) RefreshCounts(ctx context.Context) (dto.SidebarCounts, error) {
	s.deps.Cache.Invalidate(querycache.SidebarCountsKey(), querycache.UnreadCountKey(string(models.AudienceAdmin)))
	return s.SidebarCounts(ctx)
}
