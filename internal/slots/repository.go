package slots

import (
	"context"
	"errors"
	"time"

	"github.com/ParthG2209/Schedlyx/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*TimeSlot, error)
	Create(ctx context.Context, slot *TimeSlot) error

	// ListAvailability returns the bookable slots of an event with each
	// slot's availability net of confirmed bookings and other sessions'
	// active holds. An empty sessionID subtracts every active hold.
	ListAvailability(ctx context.Context, eventID uuid.UUID, sessionID string, now time.Time) ([]AvailabilityRow, error)

	// CountBookableSlots counts the event's slots whose session-agnostic
	// effective availability covers the requested quantity.
	CountBookableSlots(ctx context.Context, eventID uuid.UUID, quantity int, now time.Time) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*TimeSlot, error) {
	var slot TimeSlot
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindSlotNotFound, "slot not found")
		}
		return nil, apperrors.Wrap(apperrors.KindTransientStorage, "failed to load slot", err)
	}
	return &slot, nil
}

func (r *repository) Create(ctx context.Context, slot *TimeSlot) error {
	if err := r.db.WithContext(ctx).Create(slot).Error; err != nil {
		return apperrors.Wrap(apperrors.KindTransientStorage, "failed to create slot", err)
	}
	return nil
}

func (r *repository) ListAvailability(ctx context.Context, eventID uuid.UUID, sessionID string, now time.Time) ([]AvailabilityRow, error) {
	var rows []AvailabilityRow

	// Expired holds are filtered here rather than relying on the sweep;
	// the sweep only keeps the table small.
	err := r.db.WithContext(ctx).Raw(`
		SELECT ts.id AS slot_id,
		       ts.start_time,
		       ts.end_time,
		       ts.total_capacity,
		       ts.price,
		       ts.total_capacity - ts.booked_count - COALESCE(h.held, 0) AS effective_available
		FROM time_slots ts
		LEFT JOIN (
			SELECT slot_id, SUM(quantity) AS held
			FROM slot_holds
			WHERE is_active = ? AND expires_at > ? AND session_id <> ?
			GROUP BY slot_id
		) h ON h.slot_id = ts.id
		WHERE ts.event_id = ?
		  AND ts.status = ?
		  AND ts.start_time > ?
		  AND ts.total_capacity - ts.booked_count > 0
		ORDER BY ts.start_time ASC
	`, true, now, sessionID, eventID, SlotStatusAvailable, now).Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindTransientStorage, "failed to query availability", err)
	}

	return rows, nil
}

func (r *repository) CountBookableSlots(ctx context.Context, eventID uuid.UUID, quantity int, now time.Time) (int, error) {
	var count int

	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM time_slots ts
		LEFT JOIN (
			SELECT slot_id, SUM(quantity) AS held
			FROM slot_holds
			WHERE is_active = ? AND expires_at > ?
			GROUP BY slot_id
		) h ON h.slot_id = ts.id
		WHERE ts.event_id = ?
		  AND ts.status = ?
		  AND ts.start_time > ?
		  AND ts.total_capacity - ts.booked_count - COALESCE(h.held, 0) >= ?
	`, true, now, eventID, SlotStatusAvailable, now, quantity).Scan(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.KindTransientStorage, "failed to count bookable slots", err)
	}

	return count, nil
}
