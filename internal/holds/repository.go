package holds

import (
	"context"
	"errors"
	"time"

	"github.com/ParthG2209/Schedlyx/internal/events"
	"github.com/ParthG2209/Schedlyx/internal/shared/apperrors"
	"github.com/ParthG2209/Schedlyx/internal/slots"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// CreateHold runs the full reservation protocol inside one transaction
	// over the slot row: scoped expiry sweep, bookability check, capacity
	// guard with the caller's own holds excluded, deactivation of any prior
	// hold for the same (slot, session) pair, insert.
	CreateHold(ctx context.Context, slotID uuid.UUID, sessionID string, userID *uuid.UUID, quantity int, duration time.Duration) (*SlotHold, error)

	GetByID(ctx context.Context, id uuid.UUID) (*SlotHold, error)

	// Deactivate flips an active hold to inactive. Returns false when the
	// hold was already inactive or absent.
	Deactivate(ctx context.Context, id uuid.UUID) (bool, error)

	// ReleaseExpired deactivates every active hold past its expiry and
	// returns the number released. Idempotent and safe to run concurrently.
	ReleaseExpired(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// lockForUpdate applies a row lock on dialects that support it. SQLite (the
// test dialect) serialises through its single writer instead.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func (r *repository) CreateHold(ctx context.Context, slotID uuid.UUID, sessionID string, userID *uuid.UUID, quantity int, duration time.Duration) (*SlotHold, error) {
	var hold *SlotHold

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		// Lock the slot row; every capacity decision for this slot orders
		// behind this lock.
		var slot slots.TimeSlot
		if err := lockForUpdate(tx).Where("id = ?", slotID).First(&slot).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.KindSlotNotFound, "slot not found")
			}
			return apperrors.Wrap(apperrors.KindTransientStorage, "failed to lock slot", err)
		}

		var event events.Event
		if err := tx.Where("id = ?", slot.EventID).First(&event).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.KindSlotUnavailable, "owning event not found")
			}
			return apperrors.Wrap(apperrors.KindTransientStorage, "failed to load owning event", err)
		}

		if !slot.IsBookable(now) {
			return apperrors.New(apperrors.KindSlotUnavailable, "slot is not available for booking")
		}
		if !event.IsBookable() {
			return apperrors.New(apperrors.KindSlotUnavailable, "owning event is not bookable")
		}

		// Scoped expiry sweep, same transaction. Cheap, and keeps the sum
		// below honest even if the background sweep is lagging.
		err := tx.Model(&SlotHold{}).
			Where("slot_id = ? AND is_active = ? AND expires_at <= ?", slotID, true, now).
			Updates(map[string]interface{}{"is_active": false, "released_at": now}).Error
		if err != nil {
			return apperrors.Wrap(apperrors.KindTransientStorage, "failed to sweep expired holds", err)
		}

		// Capacity guard with the caller's own holds excluded: a session
		// re-holding must not compete against itself.
		var heldByOthers int
		err = tx.Model(&SlotHold{}).
			Where("slot_id = ? AND is_active = ? AND expires_at > ? AND session_id <> ?", slotID, true, now, sessionID).
			Select("COALESCE(SUM(quantity), 0)").
			Scan(&heldByOthers).Error
		if err != nil {
			return apperrors.Wrap(apperrors.KindTransientStorage, "failed to sum active holds", err)
		}

		effective := slot.TotalCapacity - slot.BookedCount - heldByOthers
		if effective < quantity {
			if effective < 0 {
				effective = 0
			}
			return apperrors.CapacityExceeded(effective)
		}

		// At most one active hold per (slot, session): replace any prior one.
		err = tx.Model(&SlotHold{}).
			Where("slot_id = ? AND session_id = ? AND is_active = ?", slotID, sessionID, true).
			Updates(map[string]interface{}{"is_active": false, "released_at": now}).Error
		if err != nil {
			return apperrors.Wrap(apperrors.KindTransientStorage, "failed to replace prior hold", err)
		}

		h := &SlotHold{
			ID:        uuid.New(),
			SlotID:    slotID,
			SessionID: sessionID,
			UserID:    userID,
			Quantity:  quantity,
			ExpiresAt: now.Add(duration),
			IsActive:  true,
		}
		if err := tx.Create(h).Error; err != nil {
			return apperrors.Wrap(apperrors.KindTransientStorage, "failed to create hold", err)
		}

		hold = h
		return nil
	})
	if err != nil {
		return nil, err
	}

	return hold, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*SlotHold, error) {
	var hold SlotHold
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&hold).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(apperrors.KindTransientStorage, "failed to load hold", err)
	}
	return &hold, nil
}

func (r *repository) Deactivate(ctx context.Context, id uuid.UUID) (bool, error) {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&SlotHold{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{"is_active": false, "released_at": now})
	if result.Error != nil {
		return false, apperrors.Wrap(apperrors.KindTransientStorage, "failed to deactivate hold", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) ReleaseExpired(ctx context.Context) (int64, error) {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&SlotHold{}).
		Where("is_active = ? AND expires_at <= ?", true, now).
		Updates(map[string]interface{}{"is_active": false, "released_at": now})
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.KindTransientStorage, "failed to release expired holds", result.Error)
	}
	return result.RowsAffected, nil
}
