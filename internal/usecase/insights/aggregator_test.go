package insights

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dealpulse/insight-engine/internal/domain/entities"
	"github.com/dealpulse/insight-engine/internal/infrastructure/cache"
)

func meetingWithPains(at time.Time, pains ...string) *entities.MeetingRecord {
	m := entities.NewMeetingRecord(uuid.New(), uuid.NewString(), entities.SourceGong, at)
	m.PainPoints = pains
	return m
}

func TestAggregateCountsAcrossMeetings(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	meetings := []*entities.MeetingRecord{
		meetingWithPains(base, "Budget concerns"),
		meetingWithPains(base.AddDate(0, 0, 7), "budget concerns!"),
		meetingWithPains(base.AddDate(0, 0, 14), "Budget Concerns."),
	}

	out := Aggregate(meetings, entities.FieldPainPoints)
	if len(out) != 1 {
		t.Fatalf("expected one group, got %d", len(out))
	}
	if out[0].MentionCount != 3 {
		t.Fatalf("expected 3 mentions, got %d", out[0].MentionCount)
	}
	if len(out[0].Sources) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(out[0].Sources))
	}
	if out[0].OriginalText != "Budget concerns" {
		t.Fatalf("expected first-seen original text, got %q", out[0].OriginalText)
	}
}

func TestAggregateOneMentionPerMeeting(t *testing.T) {
	m := meetingWithPains(time.Now(), "slow onboarding", "Slow onboarding.")

	out := Aggregate([]*entities.MeetingRecord{m}, entities.FieldPainPoints)
	if len(out) != 1 {
		t.Fatalf("expected one group, got %d", len(out))
	}
	if out[0].MentionCount != 1 {
		t.Fatalf("intra-meeting repeat double counted: %d", out[0].MentionCount)
	}
	if len(out[0].Sources) != 1 {
		t.Fatalf("duplicate source entry for one meeting: %d", len(out[0].Sources))
	}
}

func TestAggregateNoFuzzyGrouping(t *testing.T) {
	base := time.Now()
	meetings := []*entities.MeetingRecord{
		meetingWithPains(base, "budget concern"),
		meetingWithPains(base.AddDate(0, 0, 1), "budget concerns"),
	}

	out := Aggregate(meetings, entities.FieldPainPoints)
	if len(out) != 2 {
		t.Fatalf("near-equal strings must stay separate groups, got %d", len(out))
	}
}

func TestAggregateSortOrder(t *testing.T) {
	base := time.Now()
	meetings := []*entities.MeetingRecord{
		meetingWithPains(base, "zeta pain", "alpha pain"),
		meetingWithPains(base.AddDate(0, 0, 1), "alpha pain"),
		meetingWithPains(base.AddDate(0, 0, 2), "beta pain"),
		meetingWithPains(base.AddDate(0, 0, 3), "beta pain"),
	}

	out := Aggregate(meetings, entities.FieldPainPoints)
	if len(out) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(out))
	}
	// count desc, then alphabetical by original text
	if out[0].OriginalText != "alpha pain" || out[1].OriginalText != "beta pain" || out[2].OriginalText != "zeta pain" {
		t.Fatalf("unexpected order: %q %q %q", out[0].OriginalText, out[1].OriginalText, out[2].OriginalText)
	}
}

type fakeMeetingRepo struct {
	records []*entities.MeetingRecord
}

func (f *fakeMeetingRepo) UpsertBySourceID(_ context.Context, m *entities.MeetingRecord) error {
	f.records = append(f.records, m)
	return nil
}

func (f *fakeMeetingRepo) ListByOpportunity(context.Context, uuid.UUID) ([]*entities.MeetingRecord, error) {
	return f.records, nil
}

func (f *fakeMeetingRepo) GetBySourceID(_ context.Context, sourceID string) (*entities.MeetingRecord, error) {
	for _, m := range f.records {
		if m.SourceID == sourceID {
			return m, nil
		}
	}
	return nil, entities.ErrMeetingNotFound
}

func TestRankedUsesViewCache(t *testing.T) {
	repo := &fakeMeetingRepo{records: []*entities.MeetingRecord{
		meetingWithPains(time.Now(), "budget concerns"),
	}}
	svc := NewService(repo, cache.NewMemoryStore(), time.Hour, time.Minute, zap.NewNop())
	opp := uuid.New()

	first, err := svc.Ranked(context.Background(), opp, entities.FieldPainPoints)
	if err != nil {
		t.Fatalf("ranked failed: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 group, got %d", len(first))
	}

	// new record is invisible until the view is invalidated
	repo.records = append(repo.records, meetingWithPains(time.Now().AddDate(0, 0, 1), "new pain"))
	second, _ := svc.Ranked(context.Background(), opp, entities.FieldPainPoints)
	if len(second) != 1 {
		t.Fatalf("expected cached view, got %d groups", len(second))
	}

	svc.InvalidateViews(context.Background(), opp)
	third, _ := svc.Ranked(context.Background(), opp, entities.FieldPainPoints)
	if len(third) != 2 {
		t.Fatalf("expected recomputed view with 2 groups, got %d", len(third))
	}
}
