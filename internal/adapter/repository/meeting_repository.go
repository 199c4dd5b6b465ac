package repository

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealpulse/insight-engine/internal/domain/entities"
	"github.com/dealpulse/insight-engine/internal/domain/repositories"
)

type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a meeting repository backed by GORM
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

func (r *meetingRepository) UpsertBySourceID(ctx context.Context, m *entities.MeetingRecord) error {
	painPoints, _ := json.Marshal(m.PainPoints)
	goals, _ := json.Marshal(m.Goals)
	nextSteps, _ := json.Marshal(m.NextSteps)
	quotes, _ := json.Marshal(m.Quotes)
	objections, _ := json.Marshal(m.Objections)
	metrics, _ := json.Marshal(m.Metrics)
	rationale, _ := json.Marshal(m.Rationale)
	risk, _ := json.Marshal(m.Risk)

	// Upsert by source_id: a redelivered parse overwrites its own record
	q := `INSERT INTO meetings (id, opportunity_id, source_id, source, title, meeting_at, calendar_event_id, pain_points, goals, next_steps, quotes, objections, metrics, rationale, risk, raw_payload, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?::jsonb, ?::jsonb, ?::jsonb, ?::jsonb, ?::jsonb, ?::jsonb, ?::jsonb, ?::jsonb, ?::jsonb, ?)
        ON CONFLICT (source_id) DO UPDATE SET title = EXCLUDED.title, meeting_at = EXCLUDED.meeting_at, calendar_event_id = EXCLUDED.calendar_event_id, pain_points = EXCLUDED.pain_points, goals = EXCLUDED.goals, next_steps = EXCLUDED.next_steps, quotes = EXCLUDED.quotes, objections = EXCLUDED.objections, metrics = EXCLUDED.metrics, rationale = EXCLUDED.rationale, risk = EXCLUDED.risk, raw_payload = EXCLUDED.raw_payload`

	rawPayload := "null"
	if len(m.RawPayload) > 0 {
		rawPayload = string(m.RawPayload)
	}

	return r.db.WithContext(ctx).Exec(q,
		m.ID, m.OpportunityID, m.SourceID, int(m.Source), m.Title, m.MeetingAt, m.CalendarEventID,
		string(painPoints), string(goals), string(nextSteps), string(quotes),
		string(objections), string(metrics), string(rationale), string(risk),
		rawPayload, time.Now()).Error
}

func (r *meetingRepository) ListByOpportunity(ctx context.Context, opportunityID uuid.UUID) ([]*entities.MeetingRecord, error) {
	var meetings []*entities.MeetingRecord
	err := r.db.WithContext(ctx).
		Where("opportunity_id = ?", opportunityID).
		Order("meeting_at ASC").
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}

func (r *meetingRepository) GetBySourceID(ctx context.Context, sourceID string) (*entities.MeetingRecord, error) {
	var m entities.MeetingRecord
	err := r.db.WithContext(ctx).
		Where("source_id = ?", sourceID).
		First(&m).Error
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.ErrMeetingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
