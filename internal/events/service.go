package events

import (
	"context"
	"fmt"

	"github.com/ParthG2209/Schedlyx/internal/shared/apperrors"
	"github.com/ParthG2209/Schedlyx/internal/shared/config"
	"github.com/ParthG2209/Schedlyx/pkg/cache"
	"github.com/ParthG2209/Schedlyx/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	GetEvent(ctx context.Context, id string) (*EventResponse, error)
	ListEvents(ctx context.Context, page, limit int) ([]EventResponse, int64, error)
}

type service struct {
	repo         Repository
	config       *config.Config
	cacheService cache.Service
}

func NewService(repo Repository, cfg *config.Config) *service {
	return &service{
		repo:   repo,
		config: cfg,
	}
}

// SetCacheService wires the optional read-path cache. The reservation
// transactions never consult it.
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetEvent(ctx context.Context, id string) (*EventResponse, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.New(apperrors.KindInvalidArgument, "invalid event ID")
	}

	cacheKey := fmt.Sprintf("schedlyx:events:%s", eventID)
	if s.cacheService != nil {
		var cached EventResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	resp := event.ToResponse()

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, resp, s.config.Redis.EventCacheTTL); err != nil {
			logger.GetDefault().Debug("failed to cache event", "key", cacheKey, "error", err)
		}
	}

	return &resp, nil
}

func (s *service) ListEvents(ctx context.Context, page, limit int) ([]EventResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, totalCount, err := s.repo.ListPublic(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]EventResponse, 0, len(list))
	for i := range list {
		responses = append(responses, list[i].ToResponse())
	}
	return responses, totalCount, nil
}
