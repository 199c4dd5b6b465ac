package contacts

import (
	"context"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/dealpulse/insight-engine/errors"
	"github.com/dealpulse/insight-engine/internal/domain/entities"
	"github.com/dealpulse/insight-engine/internal/domain/repositories"
	"github.com/dealpulse/insight-engine/pkg/textnorm"
)

// FuzzyThreshold is the maximum edit distance between normalized full names
// for a fuzzy match
const FuzzyThreshold = 2

// Candidate is an incoming contact to be checked against the existing scope
type Candidate struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
}

// Detector indexes the existing contacts of one opportunity and flags
// incoming candidates as likely duplicates
type Detector struct {
	byEmail  map[string][]*entities.ContactRecord
	byName   map[string][]*entities.ContactRecord
	existing []*entities.ContactRecord
}

// NewDetector builds the email and normalized-name indexes in one pass
func NewDetector(existing []*entities.ContactRecord) *Detector {
	d := &Detector{
		byEmail:  make(map[string][]*entities.ContactRecord, len(existing)),
		byName:   make(map[string][]*entities.ContactRecord, len(existing)),
		existing: existing,
	}
	for _, c := range existing {
		if c.Email != "" {
			key := textnorm.Email(c.Email)
			d.byEmail[key] = append(d.byEmail[key], c)
		}
		key := textnorm.NameKey(c.FirstName, c.LastName)
		d.byName[key] = append(d.byName[key], c)
	}
	return d
}

// Check runs the tiered match for one candidate. Tiers are strict: an email
// match wins outright, an exact name match is only added for contacts not
// already matched by email, and the fuzzy scan runs only when both exact
// tiers found nothing.
//
// The fuzzy tier is a linear scan over the existing scope with no early
// termination; fine at the contact counts one opportunity carries.
func (d *Detector) Check(candidate Candidate) entities.DuplicateReport {
	report := entities.DuplicateReport{Matches: []entities.DuplicateMatch{}}
	matched := map[uuid.UUID]bool{}

	if candidate.Email != "" {
		for _, c := range d.byEmail[textnorm.Email(candidate.Email)] {
			report.Matches = append(report.Matches, entities.DuplicateMatch{
				ContactID:  c.ID,
				MatchType:  entities.MatchTypeExactEmail,
				Confidence: entities.ConfidenceHigh,
			})
			matched[c.ID] = true
		}
	}

	for _, c := range d.byName[textnorm.NameKey(candidate.FirstName, candidate.LastName)] {
		if matched[c.ID] {
			continue
		}
		report.Matches = append(report.Matches, entities.DuplicateMatch{
			ContactID:  c.ID,
			MatchType:  entities.MatchTypeExactName,
			Confidence: entities.ConfidenceHigh,
		})
		matched[c.ID] = true
	}

	if len(report.Matches) == 0 {
		full := textnorm.FullName(candidate.FirstName, candidate.LastName)
		for _, c := range d.existing {
			dist := levenshtein.ComputeDistance(full, textnorm.FullName(c.FirstName, c.LastName))
			if dist <= FuzzyThreshold {
				report.Matches = append(report.Matches, entities.DuplicateMatch{
					ContactID:  c.ID,
					MatchType:  entities.MatchTypeFuzzyName,
					Confidence: entities.ConfidenceMedium,
				})
			}
		}
	}

	report.IsDuplicate = len(report.Matches) > 0
	return report
}

// Service exposes duplicate detection over the persisted contact directory
type Service struct {
	contacts repositories.ContactRepository
	logger   *zap.Logger
}

// NewService constructs a contact duplicate-detection service
func NewService(contacts repositories.ContactRepository, logger *zap.Logger) *Service {
	return &Service{contacts: contacts, logger: logger}
}

// CheckBatch builds a detector over the opportunity's current snapshot and
// reports every candidate. An empty scope id is rejected before any index
// work.
func (s *Service) CheckBatch(ctx context.Context, opportunityID uuid.UUID, candidates []Candidate) ([]entities.DuplicateReport, error) {
	if opportunityID == uuid.Nil {
		return nil, apperrors.ErrInvalidContactScope()
	}

	existing, err := s.contacts.ListByOpportunity(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	detector := NewDetector(existing)

	reports := make([]entities.DuplicateReport, 0, len(candidates))
	flagged := 0
	for _, c := range candidates {
		report := detector.Check(c)
		if report.IsDuplicate {
			flagged++
		}
		reports = append(reports, report)
	}

	s.logger.Info("contact duplicate check completed",
		zap.String("opportunity_id", opportunityID.String()),
		zap.Int("existing", len(existing)),
		zap.Int("candidates", len(candidates)),
		zap.Int("flagged", flagged),
	)
	return reports, nil
}
