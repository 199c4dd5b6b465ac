package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dealpulse/insight-engine/internal/domain/entities"
	"github.com/dealpulse/insight-engine/internal/domain/repositories"
	"github.com/dealpulse/insight-engine/internal/usecase/dedup"
)

// ViewCache caches recomputed aggregation views. The ledger stays the
// durable record; a cache miss just recomputes.
type ViewCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// Service produces the deduplicated timeline and ranked insight views for an
// opportunity
type Service struct {
	meetings repositories.MeetingRepository
	cache    ViewCache
	window   time.Duration
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewService constructs an insights view service
func NewService(meetings repositories.MeetingRepository, cache ViewCache, window, cacheTTL time.Duration, logger *zap.Logger) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Service{
		meetings: meetings,
		cache:    cache,
		window:   window,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Timeline returns the canonical deduplicated meeting timeline with its
// observability counts
func (s *Service) Timeline(ctx context.Context, opportunityID uuid.UUID) (*entities.DedupResult, error) {
	records, err := s.meetings.ListByOpportunity(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	result := dedup.Deduplicate(records, s.window)
	if result.DuplicatesRemoved > 0 {
		s.logger.Debug("timeline deduplicated",
			zap.String("opportunity_id", opportunityID.String()),
			zap.Int("unique", len(result.Meetings)),
			zap.Int("removed", result.DuplicatesRemoved),
			zap.Int("promotions", result.PriorityPromotions),
		)
	}
	return result, nil
}

// NextStep resolves the current authoritative next-step text, or empty
func (s *Service) NextStep(ctx context.Context, opportunityID uuid.UUID) (string, error) {
	timeline, err := s.Timeline(ctx, opportunityID)
	if err != nil {
		return "", err
	}
	return dedup.ResolveNextStep(timeline.Meetings), nil
}

// Ranked returns the ranked aggregated insights for one field, through the
// view cache
func (s *Service) Ranked(ctx context.Context, opportunityID uuid.UUID, field entities.InsightField) ([]entities.AggregatedInsight, error) {
	key := viewKey(opportunityID, field)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var out []entities.AggregatedInsight
		if err := json.Unmarshal([]byte(cached), &out); err == nil {
			return out, nil
		}
		// corrupt cache entry: drop it and recompute
		s.cache.Delete(ctx, key)
	}

	timeline, err := s.Timeline(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	out := Aggregate(timeline.Meetings, field)

	if encoded, err := json.Marshal(out); err == nil {
		s.cache.Set(ctx, key, string(encoded), s.cacheTTL)
	}
	return out, nil
}

// InvalidateViews drops every cached field view for an opportunity; called
// after a ledger merge changes the underlying timeline
func (s *Service) InvalidateViews(ctx context.Context, opportunityID uuid.UUID) {
	for _, field := range entities.TrackedFields {
		s.cache.Delete(ctx, viewKey(opportunityID, field))
	}
}

func viewKey(opportunityID uuid.UUID, field entities.InsightField) string {
	return fmt.Sprintf("insights:%s:%s", opportunityID, field)
}
