package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/ParthG2209/Schedlyx/internal/events"
	"github.com/ParthG2209/Schedlyx/internal/holds"
	"github.com/ParthG2209/Schedlyx/internal/shared/apperrors"
	"github.com/ParthG2209/Schedlyx/internal/slots"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const referenceInsertAttempts = 5

type Repository interface {
	// ConfirmBooking atomically converts an active hold into a booking:
	// hold and slot rows are locked, capacity is re-validated with this
	// hold's own quantity excluded, the hold is consumed, and the slot's
	// booked count advances. The success attempt row is written in the
	// same transaction.
	ConfirmBooking(ctx context.Context, holdID uuid.UUID, sessionID string, attendee Attendee, userID *uuid.UUID) (*Booking, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByReference(ctx context.Context, ref string) (*Booking, error)

	// RecordFailedAttempt appends an audit row outside any confirmation
	// transaction, so failed attempts survive the rollback. The hold and
	// slot are re-read best effort to fill in slot, event and user ids.
	RecordFailedAttempt(ctx context.Context, holdID uuid.UUID, sessionID, email string, userID *uuid.UUID, reason string) error
}

type repository struct {
	db *gorm.DB

	newReference func() (string, error)
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db, newReference: GenerateBookingReference}
}

func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func (r *repository) ConfirmBooking(ctx context.Context, holdID uuid.UUID, sessionID string, attendee Attendee, userID *uuid.UUID) (*Booking, error) {
	var booking *Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		// Lock order is hold then slot, same as hold creation locks the
		// slot last. Keeps the two transactions deadlock-free.
		var hold holds.SlotHold
		if err := lockForUpdate(tx).Where("id = ?", holdID).First(&hold).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.KindHoldInvalid, "hold not found")
			}
			return apperrors.Wrap(apperrors.KindTransientStorage, "failed to lock hold", err)
		}

		if hold.SessionID != sessionID {
			return apperrors.New(apperrors.KindHoldInvalid, "hold belongs to a different session")
		}
		if !hold.IsActive {
			return apperrors.New(apperrors.KindHoldInvalid, "hold already released or consumed")
		}
		if hold.IsExpired(now) {
			err := tx.Model(&holds.SlotHold{}).
				Where("id = ? AND is_active = ?", hold.ID, true).
				Updates(map[string]interface{}{"is_active": false, "released_at": now}).Error
			if err != nil {
				return apperrors.Wrap(apperrors.KindTransientStorage, "failed to expire hold", err)
			}
			return apperrors.New(apperrors.KindHoldInvalid, "hold expired")
		}

		var slot slots.TimeSlot
		if err := lockForUpdate(tx).Where("id = ?", hold.SlotID).First(&slot).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.KindSlotUnavailable, "slot no longer exists")
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

		if slot.Status == slots.SlotStatusCancelled || !event.IsBookable() {
			return apperrors.New(apperrors.KindSlotUnavailable, "slot is no longer open for booking")
		}

		// Re-validate capacity against everyone else's live holds. The
		// caller's own hold is excluded: its quantity is what we are
		// converting.
		var heldByOthers int
		err := tx.Model(&holds.SlotHold{}).
			Where("slot_id = ? AND is_active = ? AND expires_at > ? AND id <> ?", slot.ID, true, now, hold.ID).
			Select("COALESCE(SUM(quantity), 0)").
			Scan(&heldByOthers).Error
		if err != nil {
			return apperrors.Wrap(apperrors.KindTransientStorage, "failed to sum active holds", err)
		}

		residual := slot.TotalCapacity - slot.BookedCount - heldByOthers
		if residual < hold.Quantity {
			if residual < 0 {
				residual = 0
			}
			return apperrors.CapacityExceeded(residual)
		}

		// The booking carries the identity the hold was created under, not
		// whoever the confirming request authenticated as.
		bookingUser := hold.UserID
		if bookingUser == nil {
			bookingUser = userID
		}

		b := &Booking{
			ID:                uuid.New(),
			SlotID:            slot.ID,
			EventID:           slot.EventID,
			HoldID:            hold.ID,
			SessionID:         sessionID,
			UserID:            bookingUser,
			AttendeeFirstName: attendee.FirstName,
			AttendeeLastName:  attendee.LastName,
			AttendeeEmail:     attendee.Email,
			AttendeePhone:     attendee.Phone,
			Notes:             attendee.Notes,
			Quantity:          hold.Quantity,
			SlotDate:          slot.StartTime.UTC().Format("2006-01-02"),
			SlotTime:          slot.StartTime.UTC().Format("15:04"),
			ConfirmedAt:       now,
		}

		// Each insert runs under a savepoint: on Postgres a unique
		// violation aborts the transaction, so without rolling back to
		// the savepoint every retry would fail with 25P02.
		inserted := false
		for attempt := 0; attempt < referenceInsertAttempts; attempt++ {
			ref, err := r.newReference()
			if err != nil {
				return apperrors.Wrap(apperrors.KindInternal, "failed to generate booking reference", err)
			}
			b.BookingRef = ref
			if err := tx.SavePoint("booking_ref").Error; err != nil {
				return apperrors.Wrap(apperrors.KindTransientStorage, "failed to create savepoint", err)
			}
			if err := tx.Create(b).Error; err != nil {
				if apperrors.IsUniqueViolation(err) {
					if err := tx.RollbackTo("booking_ref").Error; err != nil {
						return apperrors.Wrap(apperrors.KindTransientStorage, "failed to roll back to savepoint", err)
					}
					continue
				}
				return apperrors.Wrap(apperrors.KindTransientStorage, "failed to create booking", err)
			}
			inserted = true
			break
		}
		if !inserted {
			return apperrors.New(apperrors.KindTransientStorage, "could not allocate a unique booking reference")
		}

		newBookedCount := slot.BookedCount + hold.Quantity
		slotUpdates := map[string]interface{}{"booked_count": newBookedCount}
		if newBookedCount >= slot.TotalCapacity {
			slotUpdates["status"] = slots.SlotStatusFull
		}
		if err := tx.Model(&slots.TimeSlot{}).Where("id = ?", slot.ID).Updates(slotUpdates).Error; err != nil {
			return apperrors.Wrap(apperrors.KindTransientStorage, "failed to update slot booked count", err)
		}

		err = tx.Model(&holds.SlotHold{}).
			Where("id = ? AND is_active = ?", hold.ID, true).
			Updates(map[string]interface{}{"is_active": false, "released_at": now}).Error
		if err != nil {
			return apperrors.Wrap(apperrors.KindTransientStorage, "failed to consume hold", err)
		}

		slotID := slot.ID
		eventID := slot.EventID
		attempt := &BookingAttempt{
			ID:        uuid.New(),
			HoldID:    hold.ID,
			SlotID:    &slotID,
			EventID:   &eventID,
			SessionID: sessionID,
			UserID:    bookingUser,
			Email:     attendee.Email,
			Status:    AttemptStatusSuccess,
			BookingID: &b.ID,
		}
		if err := tx.Create(attempt).Error; err != nil {
			return apperrors.Wrap(apperrors.KindTransientStorage, "failed to record booking attempt", err)
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(apperrors.KindTransientStorage, "failed to load booking", err)
	}
	return &booking, nil
}

func (r *repository) GetByReference(ctx context.Context, ref string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("booking_ref = ?", ref).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(apperrors.KindTransientStorage, "failed to load booking", err)
	}
	return &booking, nil
}

func (r *repository) RecordFailedAttempt(ctx context.Context, holdID uuid.UUID, sessionID, email string, userID *uuid.UUID, reason string) error {
	attempt := &BookingAttempt{
		ID:            uuid.New(),
		HoldID:        holdID,
		SessionID:     sessionID,
		UserID:        userID,
		Email:         email,
		Status:        AttemptStatusFailed,
		FailureReason: reason,
	}

	var hold holds.SlotHold
	if err := r.db.WithContext(ctx).Where("id = ?", holdID).First(&hold).Error; err == nil {
		slotID := hold.SlotID
		attempt.SlotID = &slotID
		if hold.UserID != nil {
			attempt.UserID = hold.UserID
		}

		var slot slots.TimeSlot
		if err := r.db.WithContext(ctx).Select("event_id").Where("id = ?", hold.SlotID).First(&slot).Error; err == nil {
			eventID := slot.EventID
			attempt.EventID = &eventID
		}
	}

	return r.db.WithContext(ctx).Create(attempt).Error
}
