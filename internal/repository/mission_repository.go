package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/abfall50/freelance-dashboard/internal/domain"
	"github.com/abfall50/freelance-dashboard/internal/observability"
)

var ErrMissionNotFound = errors.New("mission not found")

type MissionRepository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Mission, error)
	FindByIDForUser(ctx context.Context, userID, id string) (*domain.Mission, error)
	Create(ctx context.Context, mission *domain.Mission) error
	Update(ctx context.Context, mission *domain.Mission) error
	DeleteByIDForUser(ctx context.Context, userID, id string) error
}

type GormMissionRepository struct{ db *gorm.DB }

func NewMissionRepository(db *gorm.DB) MissionRepository {
	return &GormMissionRepository{db: db}
}

func (r *GormMissionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Mission, error) {
	var missions []domain.Mission
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date asc").
		Find(&missions).Error
	if err != nil {
		observability.RecordRepositoryOperation(ctx, "mission", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(ctx, "mission", "list", "success")
	return missions, nil
}

func (r *GormMissionRepository) FindByIDForUser(ctx context.Context, userID, id string) (*domain.Mission, error) {
	var mission domain.Mission
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&mission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(ctx, "mission", "find_by_id", "not_found")
			return nil, ErrMissionNotFound
		}
		observability.RecordRepositoryOperation(ctx, "mission", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(ctx, "mission", "find_by_id", "success")
	return &mission, nil
}

func (r *GormMissionRepository) Create(ctx context.Context, mission *domain.Mission) error {
	if err := r.db.WithContext(ctx).Create(mission).Error; err != nil {
		observability.RecordRepositoryOperation(ctx, "mission", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(ctx, "mission", "create", "success")
	return nil
}

func (r *GormMissionRepository) Update(ctx context.Context, mission *domain.Mission) error {
	res := r.db.WithContext(ctx).Model(&domain.Mission{}).
		Where("id = ? AND user_id = ?", mission.ID, mission.UserID).
		Updates(map[string]any{
			"title":     mission.Title,
			"amount":    mission.Amount,
			"status":    mission.Status,
			"date":      mission.Date,
			"client_id": mission.ClientID,
		})
	if res.Error != nil {
		observability.RecordRepositoryOperation(ctx, "mission", "update", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(ctx, "mission", "update", "not_found")
		return ErrMissionNotFound
	}
	observability.RecordRepositoryOperation(ctx, "mission", "update", "success")
	return nil
}

func (r *GormMissionRepository) DeleteByIDForUser(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Mission{})
	if res.Error != nil {
		observability.RecordRepositoryOperation(ctx, "mission", "delete", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(ctx, "mission", "delete", "not_found")
		return ErrMissionNotFound
	}
	observability.RecordRepositoryOperation(ctx, "mission", "delete", "success")
	return nil
}
