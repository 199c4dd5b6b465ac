package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingSource identifies the pipeline that produced a meeting record.
// The numeric value is the tie-break priority: higher wins a dedup conflict.
type MeetingSource int

const (
	SourceManual MeetingSource = iota
	SourceGranola
	SourceGong
)

var sourceNames = map[MeetingSource]string{
	SourceManual:  "manual",
	SourceGranola: "granola",
	SourceGong:    "gong",
}

// ParseMeetingSource converts a wire name into a MeetingSource
func ParseMeetingSource(s string) (MeetingSource, error) {
	for src, name := range sourceNames {
		if name == s {
			return src, nil
		}
	}
	return 0, fmt.Errorf("unknown meeting source: %q", s)
}

// Priority returns the tie-break rank of the source (Gong > Granola > Manual)
func (s MeetingSource) Priority() int {
	return int(s)
}

func (s MeetingSource) String() string {
	if name, ok := sourceNames[s]; ok {
		return name
	}
	return fmt.Sprintf("source(%d)", int(s))
}

// MarshalJSON encodes the source by name
func (s MeetingSource) MarshalJSON() ([]byte, error) {
	name, ok := sourceNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown meeting source: %d", int(s))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes the source by name
func (s *MeetingSource) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	src, err := ParseMeetingSource(name)
	if err != nil {
		return err
	}
	*s = src
	return nil
}

// RiskAssessment is the optional per-meeting risk readout from the parser
type RiskAssessment struct {
	Level     string   `json:"level,omitempty"` // low, medium, high
	Summary   string   `json:"summary,omitempty"`
	Blockers  []string `json:"blockers,omitempty"`
	Champions []string `json:"champions,omitempty"`
}

// MeetingRecord is one parsed meeting as stored, keyed by the upstream
// parser-assigned SourceID. Immutable once parsed.
type MeetingRecord struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OpportunityID   uuid.UUID       `json:"opportunity_id" gorm:"type:uuid;not null;index"`
	SourceID        string          `json:"source_id" gorm:"type:varchar(255);not null;uniqueIndex"`
	Source          MeetingSource   `json:"source" gorm:"type:smallint;not null"`
	Title           string          `json:"title,omitempty" gorm:"type:varchar(500)"`
	MeetingAt       time.Time       `json:"meeting_at" gorm:"not null;index"`
	CalendarEventID *string         `json:"calendar_event_id,omitempty" gorm:"type:varchar(255)"`
	PainPoints      []string        `json:"pain_points,omitempty" gorm:"type:jsonb;serializer:json"`
	Goals           []string        `json:"goals,omitempty" gorm:"type:jsonb;serializer:json"`
	NextSteps       []string        `json:"next_steps,omitempty" gorm:"type:jsonb;serializer:json"`
	Quotes          []string        `json:"quotes,omitempty" gorm:"type:jsonb;serializer:json"`
	Objections      []string        `json:"objections,omitempty" gorm:"type:jsonb;serializer:json"`
	Metrics         []string        `json:"metrics,omitempty" gorm:"type:jsonb;serializer:json"`
	Rationale       []string        `json:"rationale,omitempty" gorm:"type:jsonb;serializer:json"`
	Risk            *RiskAssessment `json:"risk,omitempty" gorm:"type:jsonb;serializer:json"`
	RawPayload      datatypes.JSON  `json:"-" gorm:"type:jsonb"` // original delivery body, kept for replay
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (MeetingRecord) TableName() string {
	return "meetings"
}

// NewMeetingRecord creates a new meeting record for an opportunity
func NewMeetingRecord(opportunityID uuid.UUID, sourceID string, source MeetingSource, meetingAt time.Time) *MeetingRecord {
	return &MeetingRecord{
		ID:            uuid.New(),
		OpportunityID: opportunityID,
		SourceID:      sourceID,
		Source:        source,
		MeetingAt:     meetingAt,
	}
}

// Insights returns the insight list for one tracked field
func (m *MeetingRecord) Insights(field InsightField) []string {
	switch field {
	case FieldPainPoints:
		return m.PainPoints
	case FieldGoals:
		return m.Goals
	case FieldNextSteps:
		return m.NextSteps
	case FieldQuotes:
		return m.Quotes
	case FieldObjections:
		return m.Objections
	case FieldMetrics:
		return m.Metrics
	case FieldRationale:
		return m.Rationale
	}
	return nil
}
