package contacts

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dealpulse/insight-engine/internal/domain/entities"
)

func contact(first, last, email string) *entities.ContactRecord {
	c := entities.NewContactRecord(uuid.New(), first, last)
	c.Email = email
	return c
}

func TestExactEmailDominatesNameSpelling(t *testing.T) {
	john := contact("John", "Smith", "john@acme.com")
	d := NewDetector([]*entities.ContactRecord{john})

	report := d.Check(Candidate{FirstName: "Jon", LastName: "Smith", Email: "JOHN@ACME.COM"})

	if !report.IsDuplicate {
		t.Fatalf("expected duplicate")
	}
	if len(report.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(report.Matches))
	}
	m := report.Matches[0]
	if m.MatchType != entities.MatchTypeExactEmail || m.Confidence != entities.ConfidenceHigh {
		t.Fatalf("unexpected match %+v", m)
	}
	if m.ContactID != john.ID {
		t.Fatalf("wrong contact matched")
	}
}

func TestExactNameSkipsEmailMatched(t *testing.T) {
	john := contact("John", "Smith", "john@acme.com")
	d := NewDetector([]*entities.ContactRecord{john})

	// same contact matches both tiers; only the email match is reported
	report := d.Check(Candidate{FirstName: "john", LastName: "smith", Email: "john@acme.com"})
	if len(report.Matches) != 1 || report.Matches[0].MatchType != entities.MatchTypeExactEmail {
		t.Fatalf("expected single email match, got %+v", report.Matches)
	}
}

func TestExactNameIgnoresHonorificAndCase(t *testing.T) {
	jane := contact("Jane", "Doe", "")
	d := NewDetector([]*entities.ContactRecord{jane})

	report := d.Check(Candidate{FirstName: "Dr. JANE", LastName: " doe "})
	if len(report.Matches) != 1 || report.Matches[0].MatchType != entities.MatchTypeExactName {
		t.Fatalf("expected exact name match, got %+v", report.Matches)
	}
	if report.Matches[0].Confidence != entities.ConfidenceHigh {
		t.Fatalf("expected high confidence")
	}
}

func TestFuzzyNameThreshold(t *testing.T) {
	jane := contact("Jane", "Doe", "")
	d := NewDetector([]*entities.ContactRecord{jane})

	// distance 1: match at medium confidence
	report := d.Check(Candidate{FirstName: "Jane", LastName: "Doo"})
	if len(report.Matches) != 1 {
		t.Fatalf("expected fuzzy match, got %+v", report.Matches)
	}
	if report.Matches[0].MatchType != entities.MatchTypeFuzzyName ||
		report.Matches[0].Confidence != entities.ConfidenceMedium {
		t.Fatalf("unexpected match %+v", report.Matches[0])
	}

	// distance 2: still within threshold
	report = d.Check(Candidate{FirstName: "Janet", LastName: "Dole"})
	if len(report.Matches) != 1 || report.Matches[0].MatchType != entities.MatchTypeFuzzyName {
		t.Fatalf("expected fuzzy match at distance 2, got %+v", report.Matches)
	}

	// well past the threshold: no match
	report = d.Check(Candidate{FirstName: "Janine", LastName: "Dorsey"})
	if report.IsDuplicate {
		t.Fatalf("expected no match beyond threshold, got %+v", report.Matches)
	}
}

func TestFuzzyOnlyRunsWhenExactTiersEmpty(t *testing.T) {
	jane := contact("Jane", "Doe", "")
	near := contact("Jane", "Doo", "")
	d := NewDetector([]*entities.ContactRecord{jane, near})

	// exact name hit on "Jane Doe" suppresses the fuzzy scan entirely
	report := d.Check(Candidate{FirstName: "Jane", LastName: "Doe"})
	for _, m := range report.Matches {
		if m.MatchType == entities.MatchTypeFuzzyName {
			t.Fatalf("fuzzy tier ran despite exact match: %+v", report.Matches)
		}
	}
}

type fakeContactRepo struct {
	contacts []*entities.ContactRecord
}

func (f *fakeContactRepo) ListByOpportunity(context.Context, uuid.UUID) ([]*entities.ContactRecord, error) {
	return f.contacts, nil
}

func (f *fakeContactRepo) Create(_ context.Context, c *entities.ContactRecord) error {
	f.contacts = append(f.contacts, c)
	return nil
}

func TestCheckBatchRejectsEmptyScope(t *testing.T) {
	svc := NewService(&fakeContactRepo{}, zap.NewNop())
	if _, err := svc.CheckBatch(context.Background(), uuid.Nil, nil); err == nil {
		t.Fatalf("expected invalid scope error")
	}
}

func TestCheckBatchReports(t *testing.T) {
	repo := &fakeContactRepo{contacts: []*entities.ContactRecord{
		contact("John", "Smith", "john@acme.com"),
		contact("Jane", "Doe", ""),
	}}
	svc := NewService(repo, zap.NewNop())

	reports, err := svc.CheckBatch(context.Background(), uuid.New(), []Candidate{
		{FirstName: "Jon", LastName: "Smith", Email: "john@acme.com"},
		{FirstName: "Nobody", LastName: "Here"},
	})
	if err != nil {
		t.Fatalf("check batch failed: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if !reports[0].IsDuplicate || reports[1].IsDuplicate {
		t.Fatalf("unexpected duplicate flags: %+v", reports)
	}
}
