package services

import (
	"context"
	"fmt"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/models"
	"github.com/agency-portal/querycache"
	"github.com/agency-portal/repositories"
)

// ProjectService handles business logic for projects
type ProjectService struct {
	deps          Deps
	projectRepo   *repositories.ProjectRepository
	clientRepo    *repositories.ClientRepository
	taskRepo      *repositories.TaskRepository
	milestoneRepo *repositories.MilestoneRepository
	ticketRepo    *repositories.TicketRepository
	documentRepo  *repositories.DocumentRepository
	notifications *NotificationService
}

// NewProjectService creates a new project service instance
func NewProjectService(deps Deps, notifications *NotificationService) *ProjectService {
	return &ProjectService{
		deps:          deps,
		projectRepo:   repositories.NewProjectRepository(),
		clientRepo:    repositories.NewClientRepository(),
		taskRepo:      repositories.NewTaskRepository(),
		milestoneRepo: repositories.NewMilestoneRepository(),
		ticketRepo:    repositories.NewTicketRepository(),
		documentRepo:  repositories.NewDocumentRepository(),
		notifications: notifications,
	}
}

// List returns every project for an admin and only the caller's projects for a client
func (s *ProjectService) List(ctx context.Context, p dto.Principal) ([]models.Project, error) {
	if p.IsAdmin() {
		return querycache.Fetch(ctx, s.deps.Cache, querycache.ProjectsKey(""), s.projectRepo.FindAll)
	}
	return querycache.Fetch(ctx, s.deps.Cache, querycache.ProjectsKey(p.ClientID),
		func(ctx context.Context) ([]models.Project, error) {
			return s.projectRepo.FindByClientID(ctx, p.ClientID)
		})
}

// Find loads a project without access checks
func (s *ProjectService) Find(ctx context.Context, id string) (models.Project, error) {
	return querycache.Fetch(ctx, s.deps.Cache, querycache.ProjectKey(id),
		func(ctx context.Context) (models.Project, error) {
			project, err := s.projectRepo.FindByID(ctx, id)
			return project, notFound(err, "project")
		})
}

// Get retrieves a project the caller may see. Admin can view any project, clients only their own.
func (s *ProjectService) Get(ctx context.Context, p dto.Principal, id string) (models.Project, error) {
	project, err := s.Find(ctx, id)
	if err != nil {
		return models.Project{}, err
	}
	if !p.IsAdmin() && project.ClientID != p.ClientID {
		return models.Project{}, fmt.Errorf("project %s: %w", id, ErrForbidden)
	}
	return project, nil
}

// Resolve picks the active project of the client portal: the requested one, or the client's most recent.
func (s *ProjectService) Resolve(ctx context.Context, p dto.Principal, projectID string) (models.Project, error) {
	if projectID != "" {
		return s.Get(ctx, p, projectID)
	}
	projects, err := s.List(ctx, p)
	if err != nil {
		return models.Project{}, err
	}
	if len(projects) == 0 {
		return models.Project{}, fmt.Errorf("no project yet: %w", ErrNotFound)
	}
	return projects[0], nil
}

// Stats computes the cards of the project page
func (s *ProjectService) Stats(ctx context.Context, p dto.Principal, id string) (dto.ProjectStatsResponse, error) {
	project, err := s.Get(ctx, p, id)
	if err != nil {
		return dto.ProjectStatsResponse{}, err
	}
	return querycache.Fetch(ctx, s.deps.Cache, querycache.ProjectStatsKey(id),
		func(ctx context.Context) (dto.ProjectStatsResponse, error) {
			return s.computeStats(ctx, project)
		})
}

func (s *ProjectService) computeStats(ctx context.Context, project models.Project) (dto.ProjectStatsResponse, error) {
	stats := dto.ProjectStatsResponse{}
	stats.Project.ID = project.ID
	stats.Project.Titre = project.Titre
	stats.Project.Statut = project.Statut
	stats.Project.Progression = project.Progression

	tasks, err := s.taskRepo.CountByStatus(ctx, project.ID)
	if err != nil {
		return stats, err
	}
	stats.Tasks.ByStatus = tasks
	for _, n := range tasks {
		stats.Tasks.Total += n
	}
	if stats.Tasks.Total > 0 {
		stats.Tasks.Completion = int(tasks[models.WorkTermine] * 100 / stats.Tasks.Total)
	}

	milestones, err := s.milestoneRepo.CountByStatus(ctx, project.ID)
	if err != nil {
		return stats, err
	}
	stats.Milestones.ByStatus = milestones
	for _, n := range milestones {
		stats.Milestones.Total += n
	}

	if stats.OpenTickets, err = s.ticketRepo.CountOpen(ctx, project.ID); err != nil {
		return stats, err
	}
	if stats.Documents, err = s.documentRepo.CountByProjectID(ctx, project.ID); err != nil {
		return stats, err
	}
	if stats.AwaitingSignatures, err = s.documentRepo.CountAwaitingSignature(ctx, project.ID); err != nil {
		return stats, err
	}
	return stats, nil
}

// Create opens a project for an existing client
func (s *ProjectService) Create(ctx context.Context, req dto.ProjectRequest) (models.Project, error) {
	if err := s.checkClient(ctx, req.ClientID); err != nil {
		return models.Project{}, err
	}

	project := models.Project{ClientID: req.ClientID}
	applyProject(&project, req)

	var created models.Project
	err := s.deps.Cache.Mutate(ctx, querycache.ProjectCreated, func(ctx context.Context) (querycache.Event, error) {
		var err error
		created, err = s.projectRepo.Create(ctx, project)
		return querycache.Event{ID: created.ID, ClientID: created.ClientID}, err
	})
	return created, err
}

// Update replaces the editable fields of a project
func (s *ProjectService) Update(ctx context.Context, id string, req dto.ProjectRequest) (models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return models.Project{}, notFound(err, "project")
	}
	if req.ClientID != project.ClientID {
		if err := s.checkClient(ctx, req.ClientID); err != nil {
			return models.Project{}, err
		}
	}
	previous := project.Statut
	applyProject(&project, req)

	err = s.deps.Cache.Mutate(ctx, querycache.ProjectUpdated, func(ctx context.Context) (querycache.Event, error) {
		return querycache.Event{ID: id, ClientID: project.ClientID}, s.projectRepo.Update(ctx, project)
	})
	if err != nil {
		return models.Project{}, err
	}
	if project.Statut != previous {
		s.notifyStatus(ctx, project)
	}
	return project, nil
}

// UpdateStatus moves the project to any statut and tells the client
func (s *ProjectService) UpdateStatus(ctx context.Context, id string, statut models.ProjectStatus) (models.Project, error) {
	if !statut.Valid() {
		return models.Project{}, invalid("unknown project statut %q", statut)
	}
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return models.Project{}, notFound(err, "project")
	}

	err = s.deps.Cache.Mutate(ctx, querycache.ProjectUpdated, func(ctx context.Context) (querycache.Event, error) {
		return querycache.Event{ID: id, ClientID: project.ClientID}, s.projectRepo.UpdateStatus(ctx, id, statut)
	})
	if err != nil {
		return models.Project{}, notFound(err, "project")
	}
	project.Statut = statut
	s.notifyStatus(ctx, project)
	return project, nil
}

func (s *ProjectService) notifyStatus(ctx context.Context, project models.Project) {
	s.notifications.NotifyClient(ctx, project.ClientID, models.NotificationProjectStatus,
		"Statut du projet mis à jour",
		fmt.Sprintf("Le projet %s est maintenant %s", project.Titre, project.Statut),
		"/app?project="+project.ID, project.ID)
}

// Delete removes the project with everything it owns, stored files included
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	var keys []string
	err := s.deps.Cache.Mutate(ctx, querycache.ProjectDeleted, func(ctx context.Context) (querycache.Event, error) {
		project, err := s.projectRepo.FindByID(ctx, id)
		if err != nil {
			return querycache.Event{}, notFound(err, "project")
		}
		keys, err = s.projectRepo.Delete(ctx, id)
		return querycache.Event{ID: id, ProjectID: id, ClientID: project.ClientID}, err
	})
	if err != nil {
		return err
	}
	cleanupObjects(ctx, s.deps, keys)
	return nil
}

// checkClient rejects a client id that names no client
func (s *ProjectService) checkClient(ctx context.Context, clientID string) error {
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		if err = notFound(err, "client"); isNotFound(err) {
			return invalid("unknown client %s", clientID)
		}
		return err
	}
	return nil
}

func applyProject(project *models.Project, req dto.ProjectRequest) {
	project.ClientID = req.ClientID
	project.Titre = req.Titre
	project.Description = req.Description
	project.DateDebut = req.DateDebut
	project.DateFin = req.DateFin
	project.Budget = req.Budget
	project.Progression = req.Progression
	if req.Statut != "" {
		project.Statut = req.Statut
	}
	if project.Statut == "" {
		project.Statut = models.ProjectEnAttente
	}
}
