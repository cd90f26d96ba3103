package events

import (
	"context"
	"errors"

	"github.com/ParthG2209/Schedlyx/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	ListPublic(ctx context.Context, limit, offset int) ([]Event, int64, error)
	Create(ctx context.Context, event *Event) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindEventNotFound, "event not found")
		}
		return nil, apperrors.Wrap(apperrors.KindTransientStorage, "failed to load event", err)
	}
	return &event, nil
}

func (r *repository) ListPublic(ctx context.Context, limit, offset int) ([]Event, int64, error) {
	var list []Event
	var totalCount int64

	baseQuery := r.db.WithContext(ctx).
		Model(&Event{}).
		Where("status = ?", StatusActive).
		Where("visibility = ?", VisibilityPublic)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.KindTransientStorage, "failed to count events", err)
	}

	err := baseQuery.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.KindTransientStorage, "failed to list events", err)
	}

	return list, totalCount, nil
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return apperrors.Wrap(apperrors.KindTransientStorage, "failed to create event", err)
	}
	return nil
}
