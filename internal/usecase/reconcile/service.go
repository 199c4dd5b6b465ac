package reconcile

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	apperrors "github.com/dealpulse/insight-engine/errors"
	"github.com/dealpulse/insight-engine/internal/domain/entities"
	"github.com/dealpulse/insight-engine/internal/domain/repositories"
	"github.com/dealpulse/insight-engine/internal/usecase/insights"
	"github.com/dealpulse/insight-engine/internal/usecase/ledger"
	"github.com/dealpulse/insight-engine/pkg/jobcontext"
)

// Delivery is one parsed meeting as delivered by an upstream transcript
// parser. SourceID is the parser-assigned idempotency key; upstream jobs
// retry on failure and may redeliver the same id.
type Delivery struct {
	OpportunityID   uuid.UUID
	SourceID        string
	Source          string
	Title           string
	MeetingAt       string
	CalendarEventID *string
	PainPoints      []string
	Goals           []string
	NextSteps       []string
	Quotes          []string
	Objections      []string
	Metrics         []string
	Rationale       []string
	Risk            *entities.RiskAssessment
}

// Service drives one parser delivery through validation, storage and the
// ledger merge
type Service struct {
	meetings repositories.MeetingRepository
	ledgers  *ledger.Service
	views    *insights.Service
	logger   *zap.Logger
}

// NewService constructs a reconcile service
func NewService(meetings repositories.MeetingRepository, ledgers *ledger.Service, views *insights.Service, logger *zap.Logger) *Service {
	return &Service{
		meetings: meetings,
		ledgers:  ledgers,
		views:    views,
		logger:   logger,
	}
}

// Ingest validates and processes one delivery: store the meeting record,
// merge its insights into the history ledgers, drop stale views. Malformed
// input rejects the whole call before anything is written. A redelivered
// source id re-runs harmlessly on the idempotent ledger.
func (s *Service) Ingest(ctx context.Context, d Delivery) (*entities.MeetingRecord, error) {
	if d.SourceID == "" {
		return nil, apperrors.ErrMissingSourceID()
	}
	if d.OpportunityID == uuid.Nil {
		return nil, apperrors.ErrInvalidArgument("opportunity id is required")
	}
	source, err := entities.ParseMeetingSource(d.Source)
	if err != nil {
		return nil, apperrors.ErrUnknownSource(d.Source)
	}
	meetingAt, err := ledger.ParseMeetingDate(d.MeetingAt)
	if err != nil {
		return nil, apperrors.ErrInvalidMeetingDate(d.MeetingAt)
	}

	record := entities.NewMeetingRecord(d.OpportunityID, d.SourceID, source, meetingAt)
	record.Title = d.Title
	record.CalendarEventID = d.CalendarEventID
	record.PainPoints = d.PainPoints
	record.Goals = d.Goals
	record.NextSteps = d.NextSteps
	record.Quotes = d.Quotes
	record.Objections = d.Objections
	record.Metrics = d.Metrics
	record.Rationale = d.Rationale
	record.Risk = d.Risk
	if raw, err := json.Marshal(d); err == nil {
		record.RawPayload = datatypes.JSON(raw)
	}

	jobCtx, cancel := jobcontext.JobBegin(ctx, record.ID, "reconcile", 0)
	defer cancel()

	err = jobcontext.JobEnd(jobCtx, func(ctx context.Context) error {
		if err := s.meetings.UpsertBySourceID(ctx, record); err != nil {
			return err
		}

		values := ledger.FieldValues{}
		for _, field := range entities.TrackedFields {
			if vals := record.Insights(field); len(vals) > 0 {
				values[field] = vals
			}
		}
		if len(values) > 0 {
			if err := s.ledgers.Append(ctx, d.OpportunityID, d.SourceID, d.MeetingAt, values); err != nil {
				return err
			}
		}

		s.views.InvalidateViews(ctx, d.OpportunityID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("delivery reconciled",
		zap.String("opportunity_id", d.OpportunityID.String()),
		zap.String("source_id", d.SourceID),
		zap.String("source", source.String()),
	)
	return record, nil
}
