package services

import (
	"context"
	"fmt"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/models"
	"github.com/agency-portal/querycache"
	"github.com/agency-portal/repositories"
)

// MilestoneService manages the roadmap phases of a project
type MilestoneService struct {
	deps          Deps
	repo          *repositories.MilestoneRepository
	projects      *ProjectService
	notifications *NotificationService
}

func NewMilestoneService(deps Deps, projects *ProjectService, notifications *NotificationService) *MilestoneService {
	return &MilestoneService{
		deps:          deps,
		repo:          repositories.NewMilestoneRepository(),
		projects:      projects,
		notifications: notifications,
	}
}

// List returns the project's milestones in roadmap order; a project without milestones gives an empty list
func (s *MilestoneService) List(ctx context.Context, projectID string) ([]models.Milestone, error) {
	return querycache.Fetch(ctx, s.deps.Cache, querycache.MilestonesKey(projectID),
		func(ctx context.Context) ([]models.Milestone, error) {
			return s.repo.FindByProjectID(ctx, projectID)
		})
}

func (s *MilestoneService) Get(ctx context.Context, id string) (models.Milestone, error) {
	milestone, err := s.repo.FindByID(ctx, id)
	return milestone, notFound(err, "milestone")
}

func (s *MilestoneService) Create(ctx context.Context, projectID string, req dto.MilestoneRequest) (models.Milestone, error) {
	if _, err := s.projects.Find(ctx, projectID); err != nil {
		return models.Milestone{}, err
	}
	milestone := models.Milestone{ProjectID: projectID, Statut: models.WorkAFaire}
	applyMilestone(&milestone, req)

	var created models.Milestone
	err := s.deps.Cache.Mutate(ctx, querycache.MilestoneCreated, func(ctx context.Context) (querycache.Event, error) {
		var err error
		created, err = s.repo.Create(ctx, milestone)
		return querycache.Event{ID: created.ID, ProjectID: projectID}, err
	})
	return created, err
}

func (s *MilestoneService) Update(ctx context.Context, id string, req dto.MilestoneRequest) (models.Milestone, error) {
	milestone, err := s.Get(ctx, id)
	if err != nil {
		return models.Milestone{}, err
	}
	previous := milestone.Statut
	applyMilestone(&milestone, req)

	err = s.deps.Cache.Mutate(ctx, querycache.MilestoneUpdated, func(ctx context.Context) (querycache.Event, error) {
		return querycache.Event{ID: id, ProjectID: milestone.ProjectID}, s.repo.Update(ctx, milestone)
	})
	if err != nil {
		return models.Milestone{}, err
	}
	if milestone.Statut != previous {
		s.notifyStatus(ctx, milestone)
	}
	return milestone, nil
}

// UpdateStatus sets any statut and tells the client
func (s *MilestoneService) UpdateStatus(ctx context.Context, id string, statut models.WorkStatus) (models.Milestone, error) {
	if !statut.Valid() {
		return models.Milestone{}, invalid("unknown milestone statut %q", statut)
	}
	milestone, err := s.Get(ctx, id)
	if err != nil {
		return models.Milestone{}, err
	}
	err = s.deps.Cache.Mutate(ctx, querycache.MilestoneUpdated, func(ctx context.Context) (querycache.Event, error) {
		return querycache.Event{ID: id, ProjectID: milestone.ProjectID}, s.repo.UpdateStatus(ctx, id, statut)
	})
	if err != nil {
		return models.Milestone{}, notFound(err, "milestone")
	}
	milestone.Statut = statut
	s.notifyStatus(ctx, milestone)
	return milestone, nil
}

func (s *MilestoneService) notifyStatus(ctx context.Context, milestone models.Milestone) {
	project, err := s.projects.Find(ctx, milestone.ProjectID)
	if err != nil {
		return
	}
	s.notifications.NotifyClient(ctx, project.ClientID, models.NotificationMilestoneUpdate,
		"Étape mise à jour",
		fmt.Sprintf("L'étape %s est maintenant %s", milestone.Titre, milestone.Statut),
		"/app/roadmap?project="+project.ID, project.ID)
}

// Delete removes the milestone; its tasks stay in the project without a milestone
func (s *MilestoneService) Delete(ctx context.Context, id string) error {
	milestone, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	err = s.deps.Cache.Mutate(ctx, querycache.MilestoneDeleted, func(ctx context.Context) (querycache.Event, error) {
		return querycache.Event{ID: id, ProjectID: milestone.ProjectID}, s.repo.Delete(ctx, id)
	})
	return notFound(err, "milestone")
}

func applyMilestone(milestone *models.Milestone, req dto.MilestoneRequest) {
	milestone.Titre = req.Titre
	milestone.Description = req.Description
	milestone.Ordre = req.Ordre
	milestone.DateEcheance = req.DateEcheance
	if req.Statut != "" {
		milestone.Statut = req.Statut
	}
}
