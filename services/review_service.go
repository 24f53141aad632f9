package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/models"
	"github.com/agency-portal/querycache"
	"github.com/agency-portal/repositories"
)

// ReviewService collects one rating per client per project
type ReviewService struct {
	deps          Deps
	repo          *repositories.ReviewRepository
	projects      *ProjectService
	notifications *NotificationService
}

func NewReviewService(deps Deps, projects *ProjectService, notifications *NotificationService) *ReviewService {
	return &ReviewService{
		deps:          deps,
		repo:          repositories.NewReviewRepository(),
		projects:      projects,
		notifications: notifications,
	}
}

// All lists every review for the agency
func (s *ReviewService) All(ctx context.Context) ([]models.Review, error) {
	return querycache.Fetch(ctx, s.deps.Cache, querycache.ReviewsKey(""), s.repo.FindAll)
}

func (s *ReviewService) ForProject(ctx context.Context, projectID string) ([]models.Review, error) {
	return querycache.Fetch(ctx, s.deps.Cache, querycache.ReviewsKey(projectID),
		func(ctx context.Context) ([]models.Review, error) {
			return s.repo.FindByProjectID(ctx, projectID)
		})
}

// Status tells the portal whether the client may still review the project
func (s *ReviewService) Status(ctx context.Context, p dto.Principal, projectID string) (dto.ReviewStatus, error) {
	if _, err := s.projects.Get(ctx, p, projectID); err != nil {
		return dto.ReviewStatus{}, err
	}
	reviews, err := s.ForProject(ctx, projectID)
	if err != nil {
		return dto.ReviewStatus{}, err
	}
	for i := range reviews {
		if reviews[i].ClientID == p.ClientID {
			return dto.ReviewStatus{Review: &reviews[i], CanSubmit: false}, nil
		}
	}
	return dto.ReviewStatus{CanSubmit: p.IsClient()}, nil
}

// Submit records the client's review. A second review of the same project is rejected.
func (s *ReviewService) Submit(ctx context.Context, p dto.Principal, projectID string, req dto.ReviewRequest) (models.Review, error) {
	if !p.IsClient() {
		return models.Review{}, fmt.Errorf("only clients review projects: %w", ErrForbidden)
	}
	if req.Note < 1 || req.Note > 5 {
		return models.Review{}, invalid("note must be between 1 and 5")
	}
	project, err := s.projects.Get(ctx, p, projectID)
	if err != nil {
		return models.Review{}, err
	}

	var created models.Review
	err = s.deps.Cache.Mutate(ctx, querycache.ReviewSubmitted, func(ctx context.Context) (querycache.Event, error) {
		_, err := s.repo.FindByProjectAndClient(ctx, projectID, p.ClientID)
		switch {
		case err == nil:
			return querycache.Event{}, fmt.Errorf("review already submitted: %w", ErrConflict)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return querycache.Event{}, err
		}
		created, err = s.repo.Create(ctx, models.Review{
			ProjectID:   projectID,
			ClientID:    p.ClientID,
			Note:        req.Note,
			Commentaire: req.Commentaire,
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// a concurrent submit won the race
			err = fmt.Errorf("review already submitted: %w", ErrConflict)
		}
		return querycache.Event{ID: created.ID, ProjectID: projectID, ClientID: p.ClientID}, err
	})
	if err != nil {
		return models.Review{}, err
	}

	s.notifications.NotifyAdmin(ctx, models.NotificationReview,
		"Nouvel avis client",
		fmt.Sprintf("%d/5 sur le projet %s", created.Note, project.Titre),
		"/admin/reviews", projectID)
	return created, nil
}
