package services

import (
	"context"
	"fmt"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/models"
	"github.com/agency-portal/querycache"
	"github.com/agency-portal/repositories"
)

// TaskService manages the work items of a project
type TaskService struct {
	deps          Deps
	repo          *repositories.TaskRepository
	milestoneRepo *repositories.MilestoneRepository
	projects      *ProjectService
	notifications *NotificationService
}

func NewTaskService(deps Deps, projects *ProjectService, notifications *NotificationService) *TaskService {
	return &TaskService{
		deps:          deps,
		repo:          repositories.NewTaskRepository(),
		milestoneRepo: repositories.NewMilestoneRepository(),
		projects:      projects,
		notifications: notifications,
	}
}

func (s *TaskService) List(ctx context.Context, projectID string, filter dto.TaskFilter) ([]models.Task, error) {
	key := querycache.NewKey(querycache.ScopeTasks, projectID, map[string]string{
		"statut":       string(filter.Statut),
		"milestone_id": filter.MilestoneID,
	})
	return querycache.Fetch(ctx, s.deps.Cache, key, func(ctx context.Context) ([]models.Task, error) {
		return s.repo.FindByProjectID(ctx, projectID, repositories.TaskFilter{
			Statut:      filter.Statut,
			MilestoneID: filter.MilestoneID,
		})
	})
}

// Get returns a task visible to the caller
func (s *TaskService) Get(ctx context.Context, p dto.Principal, id string) (models.Task, error) {
	task, err := querycache.Fetch(ctx, s.deps.Cache, querycache.TaskKey(id),
		func(ctx context.Context) (models.Task, error) {
			task, err := s.repo.FindByID(ctx, id)
			return task, notFound(err, "task")
		})
	if err != nil {
		return models.Task{}, err
	}
	if _, err := s.projects.Get(ctx, p, task.ProjectID); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// Create adds a task and tells the client
func (s *TaskService) Create(ctx context.Context, projectID string, req dto.TaskRequest) (models.Task, error) {
	project, err := s.projects.Find(ctx, projectID)
	if err != nil {
		return models.Task{}, err
	}
	if err := s.checkMilestone(ctx, projectID, req.MilestoneID); err != nil {
		return models.Task{}, err
	}

	task := models.Task{ProjectID: projectID, Statut: models.WorkAFaire, Priorite: models.PriorityMoyenne}
	applyTask(&task, req)

	var created models.Task
	err = s.deps.Cache.Mutate(ctx, querycache.TaskCreated, func(ctx context.Context) (querycache.Event, error) {
		var err error
		created, err = s.repo.Create(ctx, task)
		return querycache.Event{ID: created.ID, ProjectID: projectID}, err
	})
	if err != nil {
		return models.Task{}, err
	}

	s.notifications.NotifyClient(ctx, project.ClientID, models.NotificationTaskCreated,
		"Nouvelle tâche",
		fmt.Sprintf("La tâche %s a été ajoutée au projet %s", created.Titre, project.Titre),
		"/app/tasks?project="+project.ID, project.ID)
	return created, nil
}

func (s *TaskService) Update(ctx context.Context, id string, req dto.TaskRequest) (models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Task{}, notFound(err, "task")
	}
	if err := s.checkMilestone(ctx, task.ProjectID, req.MilestoneID); err != nil {
		return models.Task{}, err
	}
	applyTask(&task, req)
	err = s.deps.Cache.Mutate(ctx, querycache.TaskUpdated, func(ctx context.Context) (querycache.Event, error) {
		return querycache.Event{ID: id, ProjectID: task.ProjectID}, s.repo.Update(ctx, task)
	})
	return task, err
}

func (s *TaskService) UpdateStatus(ctx context.Context, id string, statut models.WorkStatus) (models.Task, error) {
	if !statut.Valid() {
		return models.Task{}, invalid("unknown task statut %q", statut)
	}
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Task{}, notFound(err, "task")
	}
	err = s.deps.Cache.Mutate(ctx, querycache.TaskUpdated, func(ctx context.Context) (querycache.Event, error) {
		return querycache.Event{ID: id, ProjectID: task.ProjectID}, s.repo.UpdateStatus(ctx, id, statut)
	})
	if err != nil {
		return models.Task{}, notFound(err, "task")
	}
	task.Statut = statut
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "task")
	}
	err = s.deps.Cache.Mutate(ctx, querycache.TaskDeleted, func(ctx context.Context) (querycache.Event, error) {
		return querycache.Event{ID: id, ProjectID: task.ProjectID}, s.repo.Delete(ctx, id)
	})
	return notFound(err, "task")
}

// checkMilestone rejects a milestone from another project
func (s *TaskService) checkMilestone(ctx context.Context, projectID string, milestoneID *string) error {
	if milestoneID == nil || *milestoneID == "" {
		return nil
	}
	milestone, err := s.milestoneRepo.FindByID(ctx, *milestoneID)
	if err != nil {
		if isNotFound(notFound(err, "milestone")) {
			return invalid("unknown milestone %s", *milestoneID)
		}
		return err
	}
	if milestone.ProjectID != projectID {
		return invalid("milestone %s belongs to another project", *milestoneID)
	}
	return nil
}

func applyTask(task *models.Task, req dto.TaskRequest) {
	task.Titre = req.Titre
	task.Description = req.Description
	task.DateEcheance = req.DateEcheance
	task.MilestoneID = nil
	if req.MilestoneID != nil && *req.MilestoneID != "" {
		task.MilestoneID = req.MilestoneID
	}
	if req.Statut != "" {
		task.Statut = req.Statut
	}
	if req.Priorite != "" {
		task.Priorite = req.Priorite
	}
}
