package dedup

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dealpulse/insight-engine/internal/domain/entities"
)

func withNextSteps(src entities.MeetingSource, at time.Time, steps ...string) *entities.MeetingRecord {
	m := entities.NewMeetingRecord(uuid.New(), uuid.NewString(), src, at)
	m.NextSteps = steps
	return m
}

func TestResolveLatestPrefersLaterTimestamp(t *testing.T) {
	gong := withNextSteps(entities.SourceGong, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), "send proposal")
	granola := withNextSteps(entities.SourceGranola, time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC), "schedule demo")

	winner := ResolveLatest([]*entities.MeetingRecord{gong, granola}, entities.FieldNextSteps)
	if winner == nil || winner.Source != entities.SourceGranola {
		t.Fatalf("expected later granola record to win")
	}
}

func TestResolveLatestSameDayPrefersPriority(t *testing.T) {
	day := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	gong := withNextSteps(entities.SourceGong, day.Add(9*time.Hour), "send proposal")
	granola := withNextSteps(entities.SourceGranola, day.Add(16*time.Hour), "schedule demo")

	winner := ResolveLatest([]*entities.MeetingRecord{granola, gong}, entities.FieldNextSteps)
	if winner == nil || winner.Source != entities.SourceGong {
		t.Fatalf("expected gong to win same-day tie, got %v", winner)
	}
}

func TestResolveLatestSkipsEmptyFields(t *testing.T) {
	empty := withNextSteps(entities.SourceGong, time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC))
	older := withNextSteps(entities.SourceGranola, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), "confirm budget")

	winner := ResolveLatest([]*entities.MeetingRecord{empty, older}, entities.FieldNextSteps)
	if winner == nil || winner.Source != entities.SourceGranola {
		t.Fatalf("expected record with a value to win over empty newer one")
	}
}

func TestResolveLatestNothingQualifies(t *testing.T) {
	empty := withNextSteps(entities.SourceGong, time.Now())
	if winner := ResolveLatest([]*entities.MeetingRecord{empty}, entities.FieldNextSteps); winner != nil {
		t.Fatalf("expected nil winner, got %v", winner)
	}
	if got := ResolveNextStep(nil); got != "" {
		t.Fatalf("expected empty next step, got %q", got)
	}
}

func TestResolveNextStepFormatsAfterSelection(t *testing.T) {
	m := withNextSteps(entities.SourceGong, time.Now(), "send proposal", "book follow-up")
	got := ResolveNextStep([]*entities.MeetingRecord{m})
	want := "- send proposal\n- book follow-up"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
