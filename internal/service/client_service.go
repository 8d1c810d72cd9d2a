package service

import (
	"context"

	"github.com/abfall50/freelance-dashboard/internal/domain"
	"github.com/abfall50/freelance-dashboard/internal/repository"
)

type CreateClientInput struct {
	Name    string
	Email   string
	Company string
}

type UpdateClientInput struct {
	Name    *string
	Email   *string
	Company *string
}

type ClientServiceInterface interface {
	List(ctx context.Context, userID string) ([]domain.Client, error)
	Get(ctx context.Context, userID, clientID string) (*domain.Client, error)
	Create(ctx context.Context, userID string, input CreateClientInput) (*domain.Client, error)
	Update(ctx context.Context, userID, clientID string, input UpdateClientInput) (*domain.Client, error)
	Delete(ctx context.Context, userID, clientID string) error
}

type ClientService struct {
	clients repository.ClientRepository
}

func NewClientService(clients repository.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

func (s *ClientService) List(ctx context.Context, userID string) ([]domain.Client, error) {
	return s.clients.ListByUser(ctx, userID)
}

func (s *ClientService) Get(ctx context.Context, userID, clientID string) (*domain.Client, error) {
	return s.clients.FindByIDForUser(ctx, userID, clientID)
}

func (s *ClientService) Create(ctx context.Context, userID string, input CreateClientInput) (*domain.Client, error) {
	client := &domain.Client{
		UserID:  userID,
		Name:    input.Name,
		Email:   input.Email,
		Company: input.Company,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Update(ctx context.Context, userID, clientID string, input UpdateClientInput) (*domain.Client, error) {
	client, err := s.clients.FindByIDForUser(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Company != nil {
		client.Company = *input.Company
	}
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, userID, clientID string) error {
	return s.clients.DeleteByIDForUser(ctx, userID, clientID)
}
