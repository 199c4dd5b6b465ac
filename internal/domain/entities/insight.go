package entities

import (
	"time"

	"github.com/google/uuid"
)

// InsightSource points an aggregated insight back to one meeting that
// mentioned it
type InsightSource struct {
	MeetingID    uuid.UUID `json:"meeting_id"`
	MeetingTitle string    `json:"meeting_title,omitempty"`
	MeetingDate  time.Time `json:"meeting_date"`
}

// AggregatedInsight is one ranked group of equivalent insight strings across
// the meeting timeline. Recomputed on demand; the ledger is the durable
// record, this is a view.
type AggregatedInsight struct {
	NormalizedText string          `json:"normalized_text"`
	OriginalText   string          `json:"original_text"`
	MentionCount   int             `json:"mention_count"`
	Sources        []InsightSource `json:"sources"`
}

// DedupResult is the canonical timeline plus observability counts from one
// deduplication pass
type DedupResult struct {
	Meetings            []*MeetingRecord `json:"meetings"`
	DuplicatesRemoved   int              `json:"duplicates_removed"`
	PriorityPromotions  int              `json:"priority_promotions"`
	MatchedByCalendarID int              `json:"matched_by_calendar_id"`
	MatchedByTime       int              `json:"matched_by_time"`
}
