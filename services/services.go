package services

import (
	"log/slog"
	"time"

	"github.com/agency-portal/querycache"
	"github.com/agency-portal/storage"
)

// Deps are shared by every service
type Deps struct {
	Cache  *querycache.Cache
	Store  storage.Store
	Logger *slog.Logger
	Now    func() time.Time
}

// Services wires the portal services together
type Services struct {
	Auth          *AuthService
	Clients       *ClientService
	Prospects     *ProspectService
	Projects      *ProjectService
	Milestones    *MilestoneService
	Roadmap       *RoadmapService
	Tasks         *TaskService
	Tickets       *TicketService
	Documents     *DocumentService
	Comments      *CommentService
	Notifications *NotificationService
	Reviews       *ReviewService
	Dashboard     *DashboardService
}

// New builds every service over deps. Auth tokens are signed with jwtSecret.
func New(deps Deps, jwtSecret string) *Services {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	auth := NewAuthService(jwtSecret)
	notifications := NewNotificationService(deps)
	projects := NewProjectService(deps, notifications)
	milestones := NewMilestoneService(deps, projects, notifications)
	tasks := NewTaskService(deps, projects, notifications)
	return &Services{
		Auth:          auth,
		Clients:       NewClientService(deps, auth),
		Prospects:     NewProspectService(deps),
		Projects:      projects,
		Milestones:    milestones,
		Roadmap:       NewRoadmapService(projects, milestones, tasks),
		Tasks:         tasks,
		Tickets:       NewTicketService(deps, projects, notifications),
		Documents:     NewDocumentService(deps, projects, notifications),
		Comments:      NewCommentService(deps, projects, notifications),
		Notifications: notifications,
		Reviews:       NewReviewService(deps, projects, notifications),
		Dashboard:     NewDashboardService(deps),
	}
}
