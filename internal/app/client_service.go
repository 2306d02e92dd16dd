package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/denbilyk22/Orders/internal/clock"
	"github.com/denbilyk22/Orders/internal/domain"
)

type ClientRepository interface {
	GetClient(ctx context.Context, id uuid.UUID) (domain.Client, error)
	ClientEmailExists(ctx context.Context, email string) (bool, error)
	CreateClient(ctx context.Context, client domain.Client) error
	UpdateClient(ctx context.Context, client domain.Client) error
	ListClients(ctx context.Context, filter domain.ClientFilter, page domain.PageRequest) ([]domain.Client, int64, error)
}

type ClientService struct {
	repo  ClientRepository
	clock clock.Clock
}

func NewClientService(repo ClientRepository, clk clock.Clock) *ClientService {
	return &ClientService{
		repo:  repo,
		clock: clk,
	}
}

func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (domain.Client, error) {
	return s.repo.GetClient(ctx, id)
}

// List rejects an inverted profit range before touching storage.
func (s *ClientService) List(ctx context.Context, filter domain.ClientFilter, page domain.PageRequest) (domain.Page[domain.Client], error) {
	if filter.ProfitFrom != nil && filter.ProfitTo != nil && filter.ProfitFrom.GreaterThan(*filter.ProfitTo) {
		return domain.Page[domain.Client]{}, domain.ErrProfitRangeInvalid
	}

	page = page.Normalize()
	clients, total, err := s.repo.ListClients(ctx, filter, page)
	if err != nil {
		return domain.Page[domain.Client]{}, err
	}
	return domain.NewPage(clients, page, total), nil
}

type ClientInput struct {
	Name    string
	Email   string
	Address string
}

func (s *ClientService) Create(ctx context.Context, in ClientInput) (domain.Client, error) {
	exists, err := s.repo.ClientEmailExists(ctx, in.Email)
	if err != nil {
		return domain.Client{}, err
	}
	if exists {
		return domain.Client{}, domain.ErrClientEmailExists
	}

	client := domain.Client{
		ID:        newID(),
		Name:      in.Name,
		Email:     in.Email,
		Address:   in.Address,
		Active:    true,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.CreateClient(ctx, client); err != nil {
		return domain.Client{}, err
	}
	return client, nil
}

func (s *ClientService) Update(ctx context.Context, id uuid.UUID, in ClientInput) (domain.Client, error) {
	client, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}

	client.Name = in.Name
	client.Email = in.Email
	client.Address = in.Address

	if err := s.repo.UpdateClient(ctx, client); err != nil {
		return domain.Client{}, err
	}
	return client, nil
}

// SetActive toggles the soft-deactivation state. Deactivating stamps the
// deactivation time; reactivating clears it.
func (s *ClientService) SetActive(ctx context.Context, id uuid.UUID, active bool) (domain.Client, error) {
	client, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}

	client.Active = active
	if active {
		client.DeactivationDate = nil
	} else {
		now := s.clock.Now()
		client.DeactivationDate = &now
	}

	if err := s.repo.UpdateClient(ctx, client); err != nil {
		return domain.Client{}, err
	}
	return client, nil
}
