package service

import (
	"context"
	"errors"
	"time"

	"github.com/abfall50/freelance-dashboard/internal/domain"
	"github.com/abfall50/freelance-dashboard/internal/repository"
)

var ErrInvalidMissionStatus = errors.New("invalid mission status")

type CreateMissionInput struct {
	Title    string
	Amount   float64
	Status   domain.MissionStatus
	Date     time.Time
	ClientID string
}

type UpdateMissionInput struct {
	Title    *string
	Amount   *float64
	Status   *domain.MissionStatus
	Date     *time.Time
	ClientID *string
}

type MissionServiceInterface interface {
	List(ctx context.Context, userID string) ([]domain.Mission, error)
	Get(ctx context.Context, userID, missionID string) (*domain.Mission, error)
	Create(ctx context.Context, userID string, input CreateMissionInput) (*domain.Mission, error)
	Update(ctx context.Context, userID, missionID string, input UpdateMissionInput) (*domain.Mission, error)
	Delete(ctx context.Context, userID, missionID string) error
}

type MissionService struct {
	missions repository.MissionRepository
	clients  repository.ClientRepository
}

func NewMissionService(missions repository.MissionRepository, clients repository.ClientRepository) *MissionService {
	return &MissionService{missions: missions, clients: clients}
}

func (s *MissionService) List(ctx context.Context, userID string) ([]domain.Mission, error) {
	return s.missions.ListByUser(ctx, userID)
}

func (s *MissionService) Get(ctx context.Context, userID, missionID string) (*domain.Mission, error) {
	return s.missions.FindByIDForUser(ctx, userID, missionID)
}

func (s *MissionService) Create(ctx context.Context, userID string, input CreateMissionInput) (*domain.Mission, error) {
	if !input.Status.Valid() {
		return nil, ErrInvalidMissionStatus
	}
	// The client reference must resolve under the caller's own account;
	// a client id belonging to another tenant reads as not-found.
	if _, err := s.clients.FindByIDForUser(ctx, userID, input.ClientID); err != nil {
		return nil, err
	}

	mission := &domain.Mission{
		UserID:   userID,
		ClientID: input.ClientID,
		Title:    input.Title,
		Amount:   input.Amount,
		Status:   input.Status,
		Date:     input.Date,
	}
	if err := s.missions.Create(ctx, mission); err != nil {
		return nil, err
	}
	return mission, nil
}

func (s *MissionService) Update(ctx context.Context, userID, missionID string, input UpdateMissionInput) (*domain.Mission, error) {
	mission, err := s.missions.FindByIDForUser(ctx, userID, missionID)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		mission.Title = *input.Title
	}
	if input.Amount != nil {
		mission.Amount = *input.Amount
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidMissionStatus
		}
		mission.Status = *input.Status
	}
	if input.Date != nil {
		mission.Date = *input.Date
	}
	if input.ClientID != nil {
		if _, err := s.clients.FindByIDForUser(ctx, userID, *input.ClientID); err != nil {
			return nil, err
		}
		mission.ClientID = *input.ClientID
	}
	if err := s.missions.Update(ctx, mission); err != nil {
		return nil, err
	}
	return mission, nil
}

func (s *MissionService) Delete(ctx context.Context, userID, missionID string) error {
	return s.missions.DeleteByIDForUser(ctx, userID, missionID)
}
