package ledger

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dealpulse/insight-engine/internal/domain/entities"
)

// fakeLedgerRepo keeps ledgers in memory with copy-on-read semantics and a
// version guard, mirroring the real repository's optimistic concurrency
type fakeLedgerRepo struct {
	rows      map[entities.InsightField]*entities.InsightLedger
	conflicts int // SaveAll fails this many times before succeeding
	saves     int
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{rows: map[entities.InsightField]*entities.InsightLedger{}}
}

func copyLedger(l *entities.InsightLedger) *entities.InsightLedger {
	c := *l
	c.Entries = append([]entities.LedgerEntry(nil), l.Entries...)
	for i := range c.Entries {
		c.Entries[i].Values = append([]string(nil), l.Entries[i].Values...)
	}
	c.ProcessedSourceIDs = map[string]bool{}
	for k, v := range l.ProcessedSourceIDs {
		c.ProcessedSourceIDs[k] = v
	}
	return &c
}

func (f *fakeLedgerRepo) GetByOpportunity(_ context.Context, opportunityID uuid.UUID) (map[entities.InsightField]*entities.InsightLedger, error) {
	out := map[entities.InsightField]*entities.InsightLedger{}
	for _, field := range entities.TrackedFields {
		if l, ok := f.rows[field]; ok {
			out[field] = copyLedger(l)
		} else {
			out[field] = entities.NewInsightLedger(opportunityID, field)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) Get(_ context.Context, opportunityID uuid.UUID, field entities.InsightField) (*entities.InsightLedger, error) {
	if l, ok := f.rows[field]; ok {
		return copyLedger(l), nil
	}
	return entities.NewInsightLedger(opportunityID, field), nil
}

func (f *fakeLedgerRepo) SaveAll(_ context.Context, ledgers []*entities.InsightLedger) error {
	f.saves++
	if f.conflicts > 0 {
		f.conflicts--
		return entities.ErrLedgerConflict
	}
	for _, l := range ledgers {
		if cur, ok := f.rows[l.Field]; ok && cur.Version != l.Version {
			return entities.ErrLedgerConflict
		}
		c := copyLedger(l)
		c.Version++
		f.rows[l.Field] = c
	}
	return nil
}

func newTestService(repo *fakeLedgerRepo) *Service {
	return NewService(repo, zap.NewNop())
}

func TestAppendIdempotent(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc := newTestService(repo)
	opp := uuid.New()
	values := FieldValues{
		entities.FieldPainPoints: {"budget frozen"},
		entities.FieldGoals:      {"reduce churn"},
	}

	if err := svc.Append(context.Background(), opp, "s1", "2025-06-02", values); err != nil {
		t.Fatalf("first append failed: %v", err)
	}
	firstState := repo.rows[entities.FieldPainPoints].Serialize()
	firstVersion := repo.rows[entities.FieldPainPoints].Version

	if err := svc.Append(context.Background(), opp, "s1", "2025-06-02", values); err != nil {
		t.Fatalf("redelivery failed: %v", err)
	}
	if got := repo.rows[entities.FieldPainPoints].Serialize(); got != firstState {
		t.Fatalf("redelivery mutated ledger:\n%s\nvs\n%s", got, firstState)
	}
	if repo.rows[entities.FieldPainPoints].Version != firstVersion {
		t.Fatalf("redelivery bumped version")
	}
}

func TestAppendReplacesSameDateKey(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc := newTestService(repo)
	opp := uuid.New()

	if err := svc.Append(context.Background(), opp, "s1", "2025-06-02T10:00:00Z",
		FieldValues{entities.FieldPainPoints: {"old value"}}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := svc.Append(context.Background(), opp, "s2", "2025-06-02T15:00:00Z",
		FieldValues{entities.FieldPainPoints: {"new value"}}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	l := repo.rows[entities.FieldPainPoints]
	if len(l.Entries) != 1 {
		t.Fatalf("expected one entry per date key, got %d", len(l.Entries))
	}
	if l.Entries[0].Values[0] != "new value" {
		t.Fatalf("expected replacement, got %v", l.Entries[0].Values)
	}
}

func TestAppendPreservesPreamble(t *testing.T) {
	repo := newFakeLedgerRepo()
	opp := uuid.New()

	seed := entities.NewInsightLedger(opp, entities.FieldPainPoints)
	seed.Preamble = "Customer is price-sensitive"
	seed.SetEntry("2025-05-01", []string{"legacy system pain"})
	seed.SetEntry("2025-05-10", []string{"slow onboarding"})
	repo.rows[entities.FieldPainPoints] = seed

	svc := newTestService(repo)
	if err := svc.Append(context.Background(), opp, "s9", "2025-06-02",
		FieldValues{entities.FieldPainPoints: {"renewal risk"}}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	l := repo.rows[entities.FieldPainPoints]
	if l.Preamble != "Customer is price-sensitive" {
		t.Fatalf("preamble mutated: %q", l.Preamble)
	}
	if len(l.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(l.Entries))
	}
	// newest first
	if l.Entries[0].DateKey != "2025-06-02" {
		t.Fatalf("entries not newest-first: %v", l.Entries[0].DateKey)
	}
	if !strings.HasPrefix(l.Serialize(), "Customer is price-sensitive") {
		t.Fatalf("serialized form lost preamble")
	}
}

func TestAppendUnparsableDateIsHardError(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc := newTestService(repo)

	err := svc.Append(context.Background(), uuid.New(), "s1", "not-a-date",
		FieldValues{entities.FieldGoals: {"grow accounts"}})
	if err == nil {
		t.Fatalf("expected error for unparsable date")
	}
	if repo.saves != 0 {
		t.Fatalf("ledger touched despite invalid date")
	}
}

func TestAppendRetriesVersionConflict(t *testing.T) {
	repo := newFakeLedgerRepo()
	repo.conflicts = 2
	svc := newTestService(repo)

	err := svc.Append(context.Background(), uuid.New(), "s1", "2025-06-02",
		FieldValues{entities.FieldGoals: {"grow accounts"}})
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if repo.saves != 3 {
		t.Fatalf("expected 3 save attempts, got %d", repo.saves)
	}
	if len(repo.rows[entities.FieldGoals].Entries) != 1 {
		t.Fatalf("ledger not written after retries")
	}
}

func TestAppendMissingSourceID(t *testing.T) {
	svc := newTestService(newFakeLedgerRepo())
	if err := svc.Append(context.Background(), uuid.New(), "", "2025-06-02", FieldValues{}); err == nil {
		t.Fatalf("expected error for missing source id")
	}
}

func TestSerializeEmptyLedger(t *testing.T) {
	l := entities.NewInsightLedger(uuid.New(), entities.FieldNextSteps)
	if got := l.Serialize(); got != entities.LedgerDivider {
		t.Fatalf("unexpected empty serialization %q", got)
	}
}
