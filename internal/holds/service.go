package holds

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ParthG2209/Schedlyx/internal/shared/apperrors"
	"github.com/ParthG2209/Schedlyx/internal/shared/config"
	"github.com/ParthG2209/Schedlyx/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	reasonNotFound = "not found"
	reasonReleased = "released"
	reasonExpired  = "expired"
)

type Service interface {
	CreateHold(ctx context.Context, req CreateHoldRequest, sessionID string, userID *uuid.UUID) (*CreateHoldResponse, error)
	VerifyHold(ctx context.Context, holdID uuid.UUID) (*HoldVerification, error)
	ReleaseHold(ctx context.Context, holdID uuid.UUID, sessionID string) (*ReleaseHoldResponse, error)
	ReleaseExpired(ctx context.Context) (int64, error)
}

type service struct {
	repo Repository
	cfg  *config.Config
	log  *logger.Logger
}

func NewService(repo Repository, cfg *config.Config, log *logger.Logger) Service {
	return &service{repo: repo, cfg: cfg, log: log}
}

func (s *service) CreateHold(ctx context.Context, req CreateHoldRequest, sessionID string, userID *uuid.UUID) (*CreateHoldResponse, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, apperrors.New(apperrors.KindInvalidArgument, "session id is required")
	}
	if req.Quantity <= 0 {
		return nil, apperrors.New(apperrors.KindInvalidQuantity, "quantity must be a positive integer")
	}
	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		return nil, apperrors.New(apperrors.KindInvalidArgument, "slot_id must be a valid uuid")
	}

	duration := s.cfg.ClampHoldDuration(time.Duration(req.DurationMinutes) * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Deadline.Write)
	defer cancel()

	hold, err := s.repo.CreateHold(ctx, slotID, sessionID, userID, req.Quantity, duration)
	if err != nil && apperrors.IsRetryableTx(err) {
		hold, err = s.repo.CreateHold(ctx, slotID, sessionID, userID, req.Quantity, duration)
	}
	if err != nil {
		if apperrors.IsRetryableTx(err) {
			return nil, apperrors.Wrap(apperrors.KindTransientStorage, "hold creation kept conflicting, try again", err)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Wrap(apperrors.KindTransientStorage, "hold creation timed out", err)
		}
		return nil, err
	}

	s.log.LogHoldCreated(ctx, hold.ID.String(), hold.SlotID.String(), sessionID, hold.Quantity, hold.ExpiresAt)

	return &CreateHoldResponse{
		HoldID:    hold.ID.String(),
		SlotID:    hold.SlotID.String(),
		Quantity:  hold.Quantity,
		ExpiresAt: hold.ExpiresAt,
	}, nil
}

// VerifyHold is purely observational. An expired-but-active row is reported
// expired and flipped inactive on the way out, so readers never disagree with
// the sweep.
func (s *service) VerifyHold(ctx context.Context, holdID uuid.UUID) (*HoldVerification, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Deadline.Read)
	defer cancel()

	hold, err := s.repo.GetByID(ctx, holdID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalidVerification(reasonNotFound, nil), nil
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Wrap(apperrors.KindTransientStorage, "hold lookup timed out", err)
		}
		return nil, err
	}

	expiresAt := hold.ExpiresAt
	if !hold.IsActive {
		return invalidVerification(reasonReleased, &expiresAt), nil
	}
	if hold.IsExpired(time.Now().UTC()) {
		if _, err := s.repo.Deactivate(ctx, hold.ID); err != nil {
			s.log.ErrorWithContext(ctx, "failed to deactivate expired hold during verify", err,
				map[string]interface{}{"hold_id": hold.ID.String()})
		}
		return invalidVerification(reasonExpired, &expiresAt), nil
	}

	return &HoldVerification{Valid: true, ExpiresAt: &expiresAt}, nil
}

// ReleaseHold never fails the caller: releasing a hold that is missing,
// already released, or owned by another session reports released=false.
func (s *service) ReleaseHold(ctx context.Context, holdID uuid.UUID, sessionID string) (*ReleaseHoldResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Deadline.Write)
	defer cancel()

	hold, err := s.repo.GetByID(ctx, holdID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.ErrorWithContext(ctx, "failed to load hold for release", err,
				map[string]interface{}{"hold_id": holdID.String()})
		}
		return &ReleaseHoldResponse{Released: false}, nil
	}

	if hold.SessionID != sessionID {
		return &ReleaseHoldResponse{Released: false}, nil
	}
	if !hold.IsActive || hold.IsExpired(time.Now().UTC()) {
		return &ReleaseHoldResponse{Released: false}, nil
	}

	released, err := s.repo.Deactivate(ctx, hold.ID)
	if err != nil {
		s.log.ErrorWithContext(ctx, "failed to release hold", err,
			map[string]interface{}{"hold_id": holdID.String()})
		return &ReleaseHoldResponse{Released: false}, nil
	}

	if released {
		s.log.LogHoldReleased(ctx, hold.ID.String(), "explicit release")
	}
	return &ReleaseHoldResponse{Released: released}, nil
}

func (s *service) ReleaseExpired(ctx context.Context) (int64, error) {
	return s.repo.ReleaseExpired(ctx)
}

func invalidVerification(reason string, expiresAt *time.Time) *HoldVerification {
	r := reason
	return &HoldVerification{Valid: false, Reason: &r, ExpiresAt: expiresAt}
}
