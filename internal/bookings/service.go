package bookings

import (
	"context"
	"errors"
	"strings"

	"github.com/ParthG2209/Schedlyx/internal/notifications"
	"github.com/ParthG2209/Schedlyx/internal/shared/apperrors"
	"github.com/ParthG2209/Schedlyx/internal/shared/config"
	"github.com/ParthG2209/Schedlyx/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	ConfirmBooking(ctx context.Context, req ConfirmBookingRequest, sessionID string, userID *uuid.UUID) (*BookingResponse, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*BookingResponse, error)
}

type service struct {
	repo     Repository
	cfg      *config.Config
	log      *logger.Logger
	producer *notifications.Producer
	validate *validator.Validate
}

func NewService(repo Repository, cfg *config.Config, log *logger.Logger, producer *notifications.Producer) Service {
	return &service{
		repo:     repo,
		cfg:      cfg,
		log:      log,
		producer: producer,
		validate: validator.New(),
	}
}

func (s *service) ConfirmBooking(ctx context.Context, req ConfirmBookingRequest, sessionID string, userID *uuid.UUID) (*BookingResponse, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, apperrors.New(apperrors.KindInvalidArgument, "session id is required")
	}
	holdID, err := uuid.Parse(req.HoldID)
	if err != nil {
		return nil, apperrors.New(apperrors.KindInvalidArgument, "hold_id must be a valid uuid")
	}

	attendee, err := s.validateAttendee(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Deadline.Write)
	defer cancel()

	booking, err := s.repo.ConfirmBooking(ctx, holdID, sessionID, attendee, userID)
	if err != nil && apperrors.IsRetryableTx(err) {
		booking, err = s.repo.ConfirmBooking(ctx, holdID, sessionID, attendee, userID)
	}
	if err != nil {
		if apperrors.IsRetryableTx(err) {
			err = apperrors.Wrap(apperrors.KindTransientStorage, "confirmation kept conflicting, try again", err)
		} else if errors.Is(err, context.DeadlineExceeded) {
			err = apperrors.Wrap(apperrors.KindTransientStorage, "confirmation timed out", err)
		}
		s.recordFailedAttempt(holdID, sessionID, attendee.Email, userID, err)
		s.log.LogBookingFailed(ctx, holdID.String(), string(apperrors.KindOf(err)))
		return nil, err
	}

	s.log.LogBookingConfirmed(ctx, booking.ID.String(), booking.BookingRef, booking.SlotID.String())

	s.producer.PublishBookingConfirmed(ctx, notifications.BookingConfirmed{
		BookingID:         booking.ID.String(),
		BookingRef:        booking.BookingRef,
		EventID:           booking.EventID.String(),
		SlotID:            booking.SlotID.String(),
		AttendeeFirstName: booking.AttendeeFirstName,
		AttendeeLastName:  booking.AttendeeLastName,
		AttendeeEmail:     booking.AttendeeEmail,
		Quantity:          booking.Quantity,
		ConfirmedAt:       booking.ConfirmedAt,
	})

	return booking.ToResponse(), nil
}

func (s *service) validateAttendee(req ConfirmBookingRequest) (Attendee, error) {
	first := strings.TrimSpace(req.FirstName)
	if first == "" {
		return Attendee{}, apperrors.New(apperrors.KindInvalidAttendee, "attendee first name is required")
	}
	last := strings.TrimSpace(req.LastName)
	if last == "" {
		return Attendee{}, apperrors.New(apperrors.KindInvalidAttendee, "attendee last name is required")
	}
	email := strings.TrimSpace(req.Email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return Attendee{}, apperrors.New(apperrors.KindInvalidAttendee, "attendee email is not a valid address")
	}

	return Attendee{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Notes:     strings.TrimSpace(req.Notes),
	}, nil
}

// recordFailedAttempt writes the audit row for a failed confirmation. It runs
// on a fresh context since the request context may already be past deadline,
// and failure to write the audit row never changes the caller's outcome.
func (s *service) recordFailedAttempt(holdID uuid.UUID, sessionID, email string, userID *uuid.UUID, cause error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Deadline.Write)
	defer cancel()

	if err := s.repo.RecordFailedAttempt(ctx, holdID, sessionID, email, userID, cause.Error()); err != nil {
		s.log.ErrorWithContext(ctx, "failed to record booking attempt", err,
			map[string]interface{}{"hold_id": holdID.String()})
	}
}

func (s *service) GetBooking(ctx context.Context, id uuid.UUID) (*BookingResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Deadline.Read)
	defer cancel()

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindBookingNotFound, "booking not found")
		}
		return nil, err
	}
	return booking.ToResponse(), nil
}
