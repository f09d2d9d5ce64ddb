package storage

import (
	"context"

	"gorm.io/gorm"

	"filmorate-go/internal/models"
)

// EventRepository persists activity feed events.
type EventRepository interface {
	Create(ctx context.Context, event *models.FeedEvent) error
	ListForUser(ctx context.Context, userID uint) ([]models.FeedEvent, error)
}

type gormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GORM-based EventRepository.
func NewGormEventRepository(db *gorm.DB) EventRepository {
	return &gormEventRepository{db: db}
}

func (r *gormEventRepository) Create(ctx context.Context, event *models.FeedEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// ListForUser returns the user's feed, newest first.
func (r *gormEventRepository) ListForUser(ctx context.Context, userID uint) ([]models.FeedEvent, error) {
	events := []models.FeedEvent{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
