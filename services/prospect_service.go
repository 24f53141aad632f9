package services

import (
	"context"
	"fmt"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/models"
	"github.com/agency-portal/querycache"
	"github.com/agency-portal/repositories"
)

// ProspectService manages the sales pipeline
type ProspectService struct {
	deps        Deps
	repo        *repositories.ProspectRepository
	clientRepo  *repositories.ClientRepository
	projectRepo *repositories.ProjectRepository
}

func NewProspectService(deps Deps) *ProspectService {
	return &ProspectService{
		deps:        deps,
		repo:        repositories.NewProspectRepository(),
		clientRepo:  repositories.NewClientRepository(),
		projectRepo: repositories.NewProjectRepository(),
	}
}

// List returns the active pipeline unless filter asks for every prospect
func (s *ProspectService) List(ctx context.Context, filter dto.ProspectFilter) ([]models.Prospect, error) {
	view := filter.Filter
	if view == "" {
		view = "active"
	}
	key := querycache.NewKey(querycache.ScopeProspects, view, map[string]string{
		"statut": string(filter.Statut),
		"search": filter.Search,
	})
	return querycache.Fetch(ctx, s.deps.Cache, key, func(ctx context.Context) ([]models.Prospect, error) {
		return s.repo.FindAll(ctx, repositories.ProspectFilter{
			ActiveOnly: view == "active",
			Statut:     filter.Statut,
			Search:     filter.Search,
		})
	})
}

func (s *ProspectService) Get(ctx context.Context, id string) (models.Prospect, error) {
	return querycache.Fetch(ctx, s.deps.Cache, querycache.ProspectKey(id),
		func(ctx context.Context) (models.Prospect, error) {
			prospect, err := s.repo.FindByID(ctx, id)
			return prospect, notFound(err, "prospect")
		})
}

func (s *ProspectService) Create(ctx context.Context, req dto.ProspectRequest) (models.Prospect, error) {
	prospect := models.Prospect{Statut: models.ProspectNouveau}
	applyProspect(&prospect, req)

	var created models.Prospect
	err := s.deps.Cache.Mutate(ctx, querycache.ProspectCreated, func(ctx context.Context) (querycache.Event, error) {
		var err error
		created, err = s.repo.Create(ctx, prospect)
		return querycache.Event{ID: created.ID}, err
	})
	return created, err
}

func (s *ProspectService) Update(ctx context.Context, id string, req dto.ProspectRequest) (models.Prospect, error) {
	prospect, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Prospect{}, notFound(err, "prospect")
	}
	applyProspect(&prospect, req)
	err = s.deps.Cache.Mutate(ctx, querycache.ProspectUpdated, func(ctx context.Context) (querycache.Event, error) {
		return querycache.Event{ID: id}, s.repo.Update(ctx, prospect)
	})
	return prospect, err
}

// UpdateStatus sets any statut. Transitions are not checked.
func (s *ProspectService) UpdateStatus(ctx context.Context, id string, statut models.ProspectStatus) (models.Prospect, error) {
	if !statut.Valid() {
		return models.Prospect{}, invalid("unknown prospect statut %q", statut)
	}
	prospect, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Prospect{}, notFound(err, "prospect")
	}
	err = s.deps.Cache.Mutate(ctx, querycache.ProspectUpdated, func(ctx context.Context) (querycache.Event, error) {
		return querycache.Event{ID: id}, s.repo.UpdateStatus(ctx, id, statut)
	})
	if err != nil {
		return models.Prospect{}, notFound(err, "prospect")
	}
	prospect.Statut = statut
	return prospect, nil
}

func (s *ProspectService) Delete(ctx context.Context, id string) error {
	err := s.deps.Cache.Mutate(ctx, querycache.ProspectDeleted, func(ctx context.Context) (querycache.Event, error) {
		return querycache.Event{ID: id}, s.repo.Delete(ctx, id)
	})
	return notFound(err, "prospect")
}

// Convert turns the prospect into a client with a first project.
// The client, the project and the prospect update commit together or not at all.
func (s *ProspectService) Convert(ctx context.Context, id string, req dto.ConvertProspectRequest) (dto.ConvertProspectResponse, error) {
	var resp dto.ConvertProspectResponse
	err := s.deps.Cache.Mutate(ctx, querycache.ProspectConverted, func(ctx context.Context) (querycache.Event, error) {
		err := repositories.Transaction(ctx, func(ctx context.Context) error {
			prospect, err := s.repo.FindByID(ctx, id)
			if err != nil {
				return notFound(err, "prospect")
			}
			if prospect.Statut == models.ProspectConverti || prospect.ClientID != nil {
				return fmt.Errorf("prospect already converted: %w", ErrConflict)
			}

			client, err := s.clientRepo.Create(ctx, models.Client{
				Nom:        prospect.Nom,
				Entreprise: prospect.Entreprise,
				Email:      normalizeEmail(prospect.Email),
				Telephone:  prospect.Telephone,
				Notes:      prospect.Notes,
			})
			if err != nil {
				return err
			}

			budget := req.Budget
			if budget == 0 {
				budget = prospect.BudgetEstime
			}
			project, err := s.projectRepo.Create(ctx, models.Project{
				ClientID:    client.ID,
				Titre:       req.Titre,
				Description: req.Description,
				Statut:      models.ProjectEnAttente,
				Budget:      budget,
			})
			if err != nil {
				return err
			}

			prospect.Statut = models.ProspectConverti
			prospect.ClientID = &client.ID
			prospect.ProjectID = &project.ID
			if err := s.repo.Update(ctx, prospect); err != nil {
				return err
			}

			resp = dto.ConvertProspectResponse{Prospect: prospect, Client: client, Project: project}
			return nil
		})
		return querycache.Event{ID: id, ClientID: resp.Client.ID, ProjectID: resp.Project.ID}, err
	})
	if err != nil {
		return dto.ConvertProspectResponse{}, err
	}
	return resp, nil
}

func applyProspect(prospect *models.Prospect, req dto.ProspectRequest) {
	prospect.Nom = req.Nom
	prospect.Entreprise = req.Entreprise
	prospect.Email = req.Email
	prospect.Telephone = req.Telephone
	prospect.Source = req.Source
	prospect.BudgetEstime = req.BudgetEstime
	prospect.Notes = req.Notes
	if req.Statut != "" {
		prospect.Statut = req.Statut
	}
}
