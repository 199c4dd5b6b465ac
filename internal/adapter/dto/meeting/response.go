package meeting

import (
	"time"

	"github.com/dealpulse/insight-engine/internal/domain/entities"
)

// IngestMeetingResponse acknowledges a stored delivery
type IngestMeetingResponse struct {
	MeetingID string `json:"meeting_id"`
	SourceID  string `json:"source_id"`
	Source    string `json:"source"`
	Status    string `json:"status"`
}

// MeetingItem is one meeting on the deduplicated timeline
type MeetingItem struct {
	ID              string                   `json:"id"`
	SourceID        string                   `json:"source_id"`
	Source          string                   `json:"source"`
	Title           string                   `json:"title,omitempty"`
	MeetingAt       time.Time                `json:"meeting_at"`
	CalendarEventID *string                  `json:"calendar_event_id,omitempty"`
	PainPoints      []string                 `json:"pain_points,omitempty"`
	Goals           []string                 `json:"goals,omitempty"`
	NextSteps       []string                 `json:"next_steps,omitempty"`
	Quotes          []string                 `json:"quotes,omitempty"`
	Objections      []string                 `json:"objections,omitempty"`
	Metrics         []string                 `json:"metrics,omitempty"`
	Rationale       []string                 `json:"rationale,omitempty"`
	Risk            *entities.RiskAssessment `json:"risk,omitempty"`
}

// TimelineResponse is the canonical deduplicated timeline with the counts one
// deduplication pass produced
type TimelineResponse struct {
	Meetings            []MeetingItem `json:"meetings"`
	UniqueMeetings      int           `json:"unique_meetings"`
	DuplicatesRemoved   int           `json:"duplicates_removed"`
	PriorityPromotions  int           `json:"priority_promotions"`
	MatchedByCalendarID int           `json:"matched_by_calendar_id"`
	MatchedByTime       int           `json:"matched_by_time"`
}

// RankedInsightsResponse is the ranked aggregation view for one field
type RankedInsightsResponse struct {
	Field    string                       `json:"field"`
	Insights []entities.AggregatedInsight `json:"insights"`
}

// LedgerResponse is the serialized history ledger for one field
type LedgerResponse struct {
	Field  string `json:"field"`
	Ledger string `json:"ledger"`
}

// NextStepResponse is the authoritative current next step, empty when no
// meeting recorded one
type NextStepResponse struct {
	NextStep string `json:"next_step"`
}

// ToMeetingItem maps a stored record onto its wire shape
func ToMeetingItem(m *entities.MeetingRecord) MeetingItem {
	return MeetingItem{
		ID:              m.ID.String(),
		SourceID:        m.SourceID,
		Source:          m.Source.String(),
		Title:           m.Title,
		MeetingAt:       m.MeetingAt,
		CalendarEventID: m.CalendarEventID,
		PainPoints:      m.PainPoints,
		Goals:           m.Goals,
		NextSteps:       m.NextSteps,
		Quotes:          m.Quotes,
		Objections:      m.Objections,
		Metrics:         m.Metrics,
		Rationale:       m.Rationale,
		Risk:            m.Risk,
	}
}

// ToTimelineResponse maps a dedup result onto its wire shape
func ToTimelineResponse(result *entities.DedupResult) *TimelineResponse {
	items := make([]MeetingItem, 0, len(result.Meetings))
	for _, m := range result.Meetings {
		items = append(items, ToMeetingItem(m))
	}
	return &TimelineResponse{
		Meetings:            items,
		UniqueMeetings:      len(result.Meetings),
		DuplicatesRemoved:   result.DuplicatesRemoved,
		PriorityPromotions:  result.PriorityPromotions,
		MatchedByCalendarID: result.MatchedByCalendarID,
		MatchedByTime:       result.MatchedByTime,
	}
}
