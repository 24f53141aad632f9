package services

import (
	"context"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/models"
	"github.com/agency-portal/querycache"
	"github.com/agency-portal/repositories"
)

// ClientService manages the agency's customers
type ClientService struct {
	deps Deps
	repo *repositories.ClientRepository
	auth *AuthService
}

func NewClientService(deps Deps, auth *AuthService) *ClientService {
	return &ClientService{deps: deps, repo: repositories.NewClientRepository(), auth: auth}
}

func (s *ClientService) List(ctx context.Context) ([]models.Client, error) {
	return querycache.Fetch(ctx, s.deps.Cache, querycache.ClientsKey(), s.repo.FindAll)
}

func (s *ClientService) Get(ctx context.Context, id string) (models.Client, error) {
	return querycache.Fetch(ctx, s.deps.Cache, querycache.ClientKey(id),
		func(ctx context.Context) (models.Client, error) {
			client, err := s.repo.FindByID(ctx, id)
			return client, notFound(err, "client")
		})
}

// Create adds a client and, when asked, its portal login. The generated password is only returned here.
func (s *ClientService) Create(ctx context.Context, req dto.ClientRequest) (dto.ClientResponse, error) {
	if req.CreateAccount && req.Email == "" {
		return dto.ClientResponse{}, invalid("an email is required to open a portal account")
	}

	var resp dto.ClientResponse
	err := s.deps.Cache.Mutate(ctx, querycache.ClientCreated, func(ctx context.Context) (querycache.Event, error) {
		err := repositories.Transaction(ctx, func(ctx context.Context) error {
			client := models.Client{}
			applyClient(&client, req)
			created, err := s.repo.Create(ctx, client)
			if err != nil {
				return err
			}
			resp.Client = created
			if req.CreateAccount {
				resp.Password, err = s.auth.CreateClientAccount(ctx, created.Email, created.Nom, created.ID)
			}
			return err
		})
		return querycache.Event{ID: resp.ID}, err
	})
	if err != nil {
		return dto.ClientResponse{}, err
	}
	return resp, nil
}

func (s *ClientService) Update(ctx context.Context, id string, req dto.ClientRequest) (models.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Client{}, notFound(err, "client")
	}
	applyClient(&client, req)
	err = s.deps.Cache.Mutate(ctx, querycache.ClientUpdated, func(ctx context.Context) (querycache.Event, error) {
		return querycache.Event{ID: id}, s.repo.Update(ctx, client)
	})
	return client, err
}

// Delete removes the client with its projects and portal accounts
func (s *ClientService) Delete(ctx context.Context, id string) error {
	var keys []string
	err := s.deps.Cache.Mutate(ctx, querycache.ClientDeleted, func(ctx context.Context) (querycache.Event, error) {
		if _, err := s.repo.FindByID(ctx, id); err != nil {
			return querycache.Event{}, notFound(err, "client")
		}
		var err error
		keys, err = s.repo.Delete(ctx, id)
		return querycache.Event{ID: id, ClientID: id}, err
	})
	if err != nil {
		return err
	}
	cleanupObjects(ctx, s.deps, keys)
	return nil
}

func applyClient(client *models.Client, req dto.ClientRequest) {
	client.Nom = req.Nom
	client.Entreprise = req.Entreprise
	client.Email = normalizeEmail(req.Email)
	client.Telephone = req.Telephone
	client.Adresse = req.Adresse
	client.Notes = req.Notes
}
