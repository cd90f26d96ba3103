package slots

import (
	"context"
	"errors"
	"time"

	"github.com/ParthG2209/Schedlyx/internal/events"
	"github.com/ParthG2209/Schedlyx/internal/shared/apperrors"
	"github.com/ParthG2209/Schedlyx/internal/shared/config"
	"github.com/ParthG2209/Schedlyx/pkg/logger"

	"github.com/google/uuid"
)

// ExpirySweeper releases holds past their expiry. Wired from the holds
// package at router setup to avoid a package cycle; the opportunistic call
// here is a cleanliness measure, not a correctness one.
type ExpirySweeper interface {
	ReleaseExpired(ctx context.Context) (int64, error)
}

type Service interface {
	ListAvailability(ctx context.Context, eventID, sessionID string) ([]AvailabilityRow, error)
	CanBook(ctx context.Context, eventID string, quantity int) (*CanBookResponse, error)
}

type service struct {
	repo      Repository
	eventRepo events.Repository
	config    *config.Config
	sweeper   ExpirySweeper
}

func NewService(repo Repository, eventRepo events.Repository, cfg *config.Config) *service {
	return &service{
		repo:      repo,
		eventRepo: eventRepo,
		config:    cfg,
	}
}

func (s *service) SetExpirySweeper(sweeper ExpirySweeper) {
	s.sweeper = sweeper
}

func (s *service) ListAvailability(ctx context.Context, eventID, sessionID string) ([]AvailabilityRow, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Deadline.Read)
	defer cancel()

	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return nil, apperrors.New(apperrors.KindInvalidArgument, "invalid event ID")
	}

	if _, err := s.eventRepo.GetByID(ctx, eventUUID); err != nil {
		return nil, mapDeadline(err)
	}

	if s.sweeper != nil {
		if _, err := s.sweeper.ReleaseExpired(ctx); err != nil {
			logger.GetDefault().Debug("opportunistic expiry sweep failed", "error", err)
		}
	}

	rows, err := s.repo.ListAvailability(ctx, eventUUID, sessionID, time.Now().UTC())
	if err != nil {
		return nil, mapDeadline(err)
	}

	// A slot can be over-held for a moment while a racing hold drains;
	// never report negative availability.
	for i := range rows {
		if rows[i].EffectiveAvailable < 0 {
			rows[i].EffectiveAvailable = 0
		}
	}

	return rows, nil
}

func (s *service) CanBook(ctx context.Context, eventID string, quantity int) (*CanBookResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Deadline.Read)
	defer cancel()

	if quantity <= 0 {
		quantity = 1
	}

	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return cannotBook("event not found"), nil
	}

	event, err := s.eventRepo.GetByID(ctx, eventUUID)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindEventNotFound) {
			return cannotBook("event not found"), nil
		}
		return nil, mapDeadline(err)
	}

	if reason := event.BookabilityReason(); reason != "" {
		return cannotBook(reason), nil
	}

	count, err := s.repo.CountBookableSlots(ctx, eventUUID, quantity, time.Now().UTC())
	if err != nil {
		return nil, mapDeadline(err)
	}

	return &CanBookResponse{
		CanBook:            count > 0,
		AvailableSlotCount: count,
	}, nil
}

func cannotBook(reason string) *CanBookResponse {
	return &CanBookResponse{
		CanBook:            false,
		Reason:             &reason,
		AvailableSlotCount: 0,
	}
}

// mapDeadline turns an exceeded read deadline into the retryable storage
// kind the error contract promises.
func mapDeadline(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.KindTransientStorage, "read deadline exceeded", err)
	}
	return err
}
