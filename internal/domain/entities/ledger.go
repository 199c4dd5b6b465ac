package entities

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// InsightField names one tracked insight field of an opportunity
type InsightField string

const (
	FieldPainPoints InsightField = "pain_points"
	FieldGoals      InsightField = "goals"
	FieldNextSteps  InsightField = "next_steps"
	FieldQuotes     InsightField = "quotes"
	FieldObjections InsightField = "objections"
	FieldMetrics    InsightField = "metrics"
	FieldRationale  InsightField = "rationale"
)

// TrackedFields lists every field that keeps a history ledger
var TrackedFields = []InsightField{
	FieldPainPoints,
	FieldGoals,
	FieldNextSteps,
	FieldQuotes,
	FieldObjections,
	FieldMetrics,
	FieldRationale,
}

// ParseInsightField validates a wire field name
func ParseInsightField(s string) (InsightField, error) {
	for _, f := range TrackedFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown insight field: %q", s)
}

// LedgerDivider separates the free-text preamble from the dated entries in
// the serialized ledger
const LedgerDivider = "--- History ---"

// LedgerEntry is the insight values recorded for one calendar day.
// DateKey has no time component (2006-01-02).
type LedgerEntry struct {
	DateKey string   `json:"date"`
	Values  []string `json:"values"`
}

// InsightLedger is the durable per-field journal of insight history for one
// opportunity. Preamble holds manual annotations and is never touched by
// automated merges. Version backs the optimistic-concurrency write guard.
type InsightLedger struct {
	ID                 uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OpportunityID      uuid.UUID       `json:"opportunity_id" gorm:"type:uuid;not null;uniqueIndex:idx_ledger_opportunity_field"`
	Field              InsightField    `json:"field" gorm:"type:varchar(50);not null;uniqueIndex:idx_ledger_opportunity_field"`
	Preamble           string          `json:"preamble,omitempty" gorm:"type:text"`
	Entries            []LedgerEntry   `json:"entries" gorm:"type:jsonb;serializer:json"`
	ProcessedSourceIDs map[string]bool `json:"processed_source_ids" gorm:"type:jsonb;serializer:json"`
	Version            int             `json:"version" gorm:"not null;default:0"`
	CreatedAt          time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (InsightLedger) TableName() string {
	return "insight_ledgers"
}

// NewInsightLedger creates an empty ledger for one field of an opportunity
func NewInsightLedger(opportunityID uuid.UUID, field InsightField) *InsightLedger {
	return &InsightLedger{
		ID:                 uuid.New(),
		OpportunityID:      opportunityID,
		Field:              field,
		Entries:            []LedgerEntry{},
		ProcessedSourceIDs: map[string]bool{},
	}
}

// HasProcessed reports whether a source id was already merged into the ledger
func (l *InsightLedger) HasProcessed(sourceID string) bool {
	return l.ProcessedSourceIDs[sourceID]
}

// MarkProcessed records a source id as merged
func (l *InsightLedger) MarkProcessed(sourceID string) {
	if l.ProcessedSourceIDs == nil {
		l.ProcessedSourceIDs = map[string]bool{}
	}
	l.ProcessedSourceIDs[sourceID] = true
}

// SetEntry replaces or inserts the entry for a date key and keeps entries
// sorted newest-first. At most one entry exists per date key.
func (l *InsightLedger) SetEntry(dateKey string, values []string) {
	for i := range l.Entries {
		if l.Entries[i].DateKey == dateKey {
			l.Entries[i].Values = values
			return
		}
	}
	l.Entries = append(l.Entries, LedgerEntry{DateKey: dateKey, Values: values})
	sort.Slice(l.Entries, func(i, j int) bool {
		return l.Entries[i].DateKey > l.Entries[j].DateKey
	})
}

// Serialize renders the ledger in its human-readable form: preamble, divider,
// then dated entries newest-first
func (l *InsightLedger) Serialize() string {
	var b strings.Builder
	if l.Preamble != "" {
		b.WriteString(l.Preamble)
		b.WriteString("\n\n")
	}
	b.WriteString(LedgerDivider)
	for _, e := range l.Entries {
		b.WriteString("\n\n")
		b.WriteString(e.DateKey)
		for _, v := range e.Values {
			b.WriteString("\n- ")
			b.WriteString(v)
		}
	}
	return b.String()
}
