package services

import (
	"context"
	"fmt"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/models"
	"github.com/agency-portal/querycache"
	"github.com/agency-portal/repositories"
)

// CommentService handles client comments on tasks and milestones
type CommentService struct {
	deps          Deps
	repo          *repositories.CommentRepository
	taskRepo      *repositories.TaskRepository
	milestoneRepo *repositories.MilestoneRepository
	projects      *ProjectService
	notifications *NotificationService
}

func NewCommentService(deps Deps, projects *ProjectService, notifications *NotificationService) *CommentService {
	return &CommentService{
		deps:          deps,
		repo:          repositories.NewCommentRepository(),
		taskRepo:      repositories.NewTaskRepository(),
		milestoneRepo: repositories.NewMilestoneRepository(),
		projects:      projects,
		notifications: notifications,
	}
}

type commentTarget struct {
	kind      repositories.CommentTarget
	id        string
	titre     string
	projectID string
}

// param is the cache param of the target's comment list
func (t commentTarget) param() string {
	return string(t.kind) + ":" + t.id
}

// resolve checks that exactly one target is named, that it exists and that the caller may see its project
func (s *CommentService) resolve(ctx context.Context, p dto.Principal, taskID, milestoneID string) (commentTarget, error) {
	var target commentTarget
	switch {
	case taskID != "" && milestoneID != "":
		return target, invalid("a comment targets a task or a milestone, not both")
	case taskID != "":
		task, err := s.taskRepo.FindByID(ctx, taskID)
		if err != nil {
			return target, notFound(err, "task")
		}
		target = commentTarget{kind: repositories.CommentOnTask, id: task.ID, titre: task.Titre, projectID: task.ProjectID}
	case milestoneID != "":
		milestone, err := s.milestoneRepo.FindByID(ctx, milestoneID)
		if err != nil {
			return target, notFound(err, "milestone")
		}
		target = commentTarget{kind: repositories.CommentOnMilestone, id: milestone.ID, titre: milestone.Titre, projectID: milestone.ProjectID}
	default:
		return target, invalid("task_id or milestone_id is required")
	}

	if _, err := s.projects.Get(ctx, p, target.projectID); err != nil {
		return commentTarget{}, err
	}
	return target, nil
}

// List returns the comments of a task or milestone, oldest first
func (s *CommentService) List(ctx context.Context, p dto.Principal, q dto.CommentQuery) ([]models.Comment, error) {
	target, err := s.resolve(ctx, p, q.TaskID, q.MilestoneID)
	if err != nil {
		return nil, err
	}
	return querycache.Fetch(ctx, s.deps.Cache, querycache.CommentsKey(target.param()),
		func(ctx context.Context) ([]models.Comment, error) {
			return s.repo.FindByTarget(ctx, target.kind, target.id)
		})
}

// Create posts a client comment and alerts the agency
func (s *CommentService) Create(ctx context.Context, p dto.Principal, req dto.CommentRequest) (models.Comment, error) {
	if !p.IsClient() {
		return models.Comment{}, fmt.Errorf("only clients comment: %w", ErrForbidden)
	}
	target, err := s.resolve(ctx, p, req.TaskID, req.MilestoneID)
	if err != nil {
		return models.Comment{}, err
	}

	comment := models.Comment{ClientID: p.ClientID, Contenu: req.Contenu}
	if target.kind == repositories.CommentOnTask {
		comment.TaskID = &target.id
	} else {
		comment.MilestoneID = &target.id
	}

	var created models.Comment
	err = s.deps.Cache.Mutate(ctx, querycache.CommentCreated, func(ctx context.Context) (querycache.Event, error) {
		var err error
		created, err = s.repo.Create(ctx, comment)
		return querycache.Event{ID: created.ID, ProjectID: target.projectID, ParentID: target.param()}, err
	})
	if err != nil {
		return models.Comment{}, err
	}

	s.notifications.NotifyAdmin(ctx, models.NotificationComment,
		"Nouveau commentaire",
		fmt.Sprintf("Nouveau commentaire sur %s", target.titre),
		"/admin/projects/"+target.projectID, target.projectID)
	return created, nil
}

// Delete removes a comment; only the agency moderates
func (s *CommentService) Delete(ctx context.Context, id string) error {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "comment")
	}
	parent := ""
	switch {
	case comment.TaskID != nil:
		parent = string(repositories.CommentOnTask) + ":" + *comment.TaskID
	case comment.MilestoneID != nil:
		parent = string(repositories.CommentOnMilestone) + ":" + *comment.MilestoneID
	}
	err = s.deps.Cache.Mutate(ctx, querycache.CommentDeleted, func(ctx context.Context) (querycache.Event, error) {
		return querycache.Event{ID: id, ParentID: parent}, s.repo.Delete(ctx, id)
	})
	return notFound(err, "comment")
}
