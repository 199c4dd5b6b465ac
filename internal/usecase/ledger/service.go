package ledger

import (
	"context"
	stdErrors "errors"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/dealpulse/insight-engine/errors"
	"github.com/dealpulse/insight-engine/internal/domain/entities"
	"github.com/dealpulse/insight-engine/internal/domain/repositories"
	"github.com/dealpulse/insight-engine/pkg/textnorm"
)

// FieldValues carries the parsed insight lists of one meeting, keyed by
// tracked field
type FieldValues map[entities.InsightField][]string

// dateLayouts accepted for incoming meeting dates
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Service merges parsed meeting insights into the per-field history ledgers
// of an opportunity
type Service struct {
	ledgers    repositories.LedgerRepository
	logger     *zap.Logger
	maxRetries uint64
}

// NewService constructs a ledger service
func NewService(ledgers repositories.LedgerRepository, logger *zap.Logger) *Service {
	return &Service{
		ledgers:    ledgers,
		logger:     logger,
		maxRetries: 5,
	}
}

// ParseMeetingDate validates and parses an incoming meeting date string
func ParseMeetingDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable meeting date %q: %w", raw, entities.ErrInvalidMeetingDate)
}

// Append merges one meeting's field values into the opportunity's ledgers.
// Redelivery of a source id is a silent no-op. The idempotency check, every
// field update, and the processed-source record commit as one transaction;
// a concurrent writer triggers a version conflict and the whole call is
// re-read and retried with backoff.
func (s *Service) Append(ctx context.Context, opportunityID uuid.UUID, sourceID string, meetingDate string, values FieldValues) error {
	if sourceID == "" {
		return apperrors.ErrMissingSourceID()
	}
	if opportunityID == uuid.Nil {
		return apperrors.ErrInvalidArgument("opportunity id is required")
	}

	parsed, err := ParseMeetingDate(meetingDate)
	if err != nil {
		return apperrors.ErrInvalidMeetingDate(meetingDate)
	}
	dateKey := textnorm.DateKey(parsed)

	attempt := func() error {
		ledgers, err := s.ledgers.GetByOpportunity(ctx, opportunityID)
		if err != nil {
			return backoff.Permanent(err)
		}

		var dirty []*entities.InsightLedger
		for field, vals := range values {
			l, ok := ledgers[field]
			if !ok {
				l = entities.NewInsightLedger(opportunityID, field)
				ledgers[field] = l
			}
			if Apply(l, sourceID, dateKey, vals) {
				dirty = append(dirty, l)
			}
		}

		if len(dirty) == 0 {
			// already processed: idempotent no-op, not an error
			s.logger.Debug("source already merged, skipping",
				zap.String("opportunity_id", opportunityID.String()),
				zap.String("source_id", sourceID),
			)
			return nil
		}

		if err := s.ledgers.SaveAll(ctx, dirty); err != nil {
			if stdErrors.Is(err, entities.ErrLedgerConflict) {
				return err // retryable, re-read and re-apply
			}
			return backoff.Permanent(err)
		}

		s.logger.Info("merged meeting insights into ledger",
			zap.String("opportunity_id", opportunityID.String()),
			zap.String("source_id", sourceID),
			zap.String("date_key", dateKey),
			zap.Int("fields", len(dirty)),
		)
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.maxRetries), ctx)
	if err := backoff.Retry(attempt, policy); err != nil {
		if stdErrors.Is(err, entities.ErrLedgerConflict) {
			return apperrors.ErrLedgerConflict(opportunityID.String(), err)
		}
		return apperrors.ErrLedgerPersistFailed(opportunityID.String(), err)
	}
	return nil
}

// Serialized returns the human-readable ledger text for one field
func (s *Service) Serialized(ctx context.Context, opportunityID uuid.UUID, field entities.InsightField) (string, error) {
	l, err := s.ledgers.Get(ctx, opportunityID, field)
	if err != nil {
		return "", err
	}
	return l.Serialize(), nil
}
