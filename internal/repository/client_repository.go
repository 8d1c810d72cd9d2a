package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/abfall50/freelance-dashboard/internal/domain"
	"github.com/abfall50/freelance-dashboard/internal/observability"
)

var ErrClientNotFound = errors.New("client not found")

// ClientRepository is ownership-scoped: every lookup filters by the
// owning user id, so a row under another owner is indistinguishable
// from a row that does not exist.
type ClientRepository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Client, error)
	FindByIDForUser(ctx context.Context, userID, id string) (*domain.Client, error)
	Create(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, client *domain.Client) error
	DeleteByIDForUser(ctx context.Context, userID, id string) error
}

type GormClientRepository struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) ListByUser(ctx context.Context, userID string) ([]domain.Client, error) {
	var clients []domain.Client
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&clients).Error
	if err != nil {
		observability.RecordRepositoryOperation(ctx, "client", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(ctx, "client", "list", "success")
	return clients, nil
}

func (r *GormClientRepository) FindByIDForUser(ctx context.Context, userID, id string) (*domain.Client, error) {
	var client domain.Client
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(ctx, "client", "find_by_id", "not_found")
			return nil, ErrClientNotFound
		}
		observability.RecordRepositoryOperation(ctx, "client", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(ctx, "client", "find_by_id", "success")
	return &client, nil
}

func (r *GormClientRepository) Create(ctx context.Context, client *domain.Client) error {
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		observability.RecordRepositoryOperation(ctx, "client", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(ctx, "client", "create", "success")
	return nil
}

func (r *GormClientRepository) Update(ctx context.Context, client *domain.Client) error {
	res := r.db.WithContext(ctx).Model(&domain.Client{}).
		Where("id = ? AND user_id = ?", client.ID, client.UserID).
		Updates(map[string]any{
			"name":    client.Name,
			"email":   client.Email,
			"company": client.Company,
		})
	if res.Error != nil {
		observability.RecordRepositoryOperation(ctx, "client", "update", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(ctx, "client", "update", "not_found")
		return ErrClientNotFound
	}
	observability.RecordRepositoryOperation(ctx, "client", "update", "success")
	return nil
}

func (r *GormClientRepository) DeleteByIDForUser(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Client{})
	if res.Error != nil {
		observability.RecordRepositoryOperation(ctx, "client", "delete", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(ctx, "client", "delete", "not_found")
		return ErrClientNotFound
	}
	observability.RecordRepositoryOperation(ctx, "client", "delete", "success")
	return nil
}
