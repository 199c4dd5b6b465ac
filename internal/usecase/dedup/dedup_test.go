package dedup

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dealpulse/insight-engine/internal/domain/entities"
)

func record(src entities.MeetingSource, at time.Time) *entities.MeetingRecord {
	return entities.NewMeetingRecord(uuid.New(), uuid.NewString(), src, at)
}

func TestDeduplicateCalendarIDPromotesGong(t *testing.T) {
	day := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)
	ev := "ev1"

	granola := record(entities.SourceGranola, day)
	granola.CalendarEventID = &ev
	gong := record(entities.SourceGong, day.Add(20*time.Minute))
	gong.CalendarEventID = &ev

	res := Deduplicate([]*entities.MeetingRecord{granola, gong}, time.Hour)

	if len(res.Meetings) != 1 {
		t.Fatalf("expected 1 meeting, got %d", len(res.Meetings))
	}
	if res.Meetings[0].Source != entities.SourceGong {
		t.Fatalf("expected gong record to survive, got %s", res.Meetings[0].Source)
	}
	if res.PriorityPromotions != 1 {
		t.Fatalf("expected 1 priority promotion, got %d", res.PriorityPromotions)
	}
	if res.DuplicatesRemoved != 1 {
		t.Fatalf("expected 1 duplicate removed, got %d", res.DuplicatesRemoved)
	}
	if res.MatchedByCalendarID != 1 {
		t.Fatalf("expected calendar id match, got %d", res.MatchedByCalendarID)
	}
}

func TestDeduplicateTimeWindow(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	gong := record(entities.SourceGong, base)
	granola := record(entities.SourceGranola, base.Add(45*time.Minute))
	unrelated := record(entities.SourceGranola, base.Add(3*time.Hour))

	res := Deduplicate([]*entities.MeetingRecord{granola, unrelated, gong}, time.Hour)

	if len(res.Meetings) != 2 {
		t.Fatalf("expected 2 meetings, got %d", len(res.Meetings))
	}
	if res.MatchedByTime != 1 {
		t.Fatalf("expected 1 time match, got %d", res.MatchedByTime)
	}
	// gong is earlier so accepted first; granola discarded, no promotion
	if res.PriorityPromotions != 0 {
		t.Fatalf("expected no promotions, got %d", res.PriorityPromotions)
	}
	if res.Meetings[0].Source != entities.SourceGong {
		t.Fatalf("expected gong kept, got %s", res.Meetings[0].Source)
	}
}

func TestDeduplicateEqualPriorityFirstSeenWins(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	first := record(entities.SourceGranola, base)
	second := record(entities.SourceGranola, base.Add(30*time.Minute))

	res := Deduplicate([]*entities.MeetingRecord{first, second}, time.Hour)

	if len(res.Meetings) != 1 {
		t.Fatalf("expected 1 meeting, got %d", len(res.Meetings))
	}
	if res.Meetings[0].SourceID != first.SourceID {
		t.Fatalf("expected first-seen record kept")
	}
}

func TestDeduplicateNoMatchesKeepsAll(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	records := []*entities.MeetingRecord{
		record(entities.SourceGong, base),
		record(entities.SourceGranola, base.Add(2*time.Hour)),
		record(entities.SourceManual, base.Add(5*time.Hour)),
	}

	res := Deduplicate(records, time.Hour)

	if len(res.Meetings) != 3 {
		t.Fatalf("expected 3 meetings, got %d", len(res.Meetings))
	}
	if res.DuplicatesRemoved != 0 {
		t.Fatalf("expected no duplicates, got %d", res.DuplicatesRemoved)
	}
	// output stays sorted ascending by timestamp
	for i := 1; i < len(res.Meetings); i++ {
		if res.Meetings[i].MeetingAt.Before(res.Meetings[i-1].MeetingAt) {
			t.Fatalf("timeline out of order at %d", i)
		}
	}
}

func TestDeduplicateManualNeverBeatsParsed(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	manual := record(entities.SourceManual, base)
	gong := record(entities.SourceGong, base.Add(10*time.Minute))

	res := Deduplicate([]*entities.MeetingRecord{manual, gong}, time.Hour)

	if len(res.Meetings) != 1 || res.Meetings[0].Source != entities.SourceGong {
		t.Fatalf("expected gong to replace manual entry")
	}
	if res.PriorityPromotions != 1 {
		t.Fatalf("expected promotion counted, got %d", res.PriorityPromotions)
	}
}
