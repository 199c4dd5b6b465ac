package ledger

import (
	"github.com/dealpulse/insight-engine/internal/domain/entities"
)

// Apply merges one meeting's values for a single field into its ledger.
// Returns false without touching the ledger when the source id was already
// processed. A write for an existing date key replaces that entry. The
// preamble is never modified here.
func Apply(l *entities.InsightLedger, sourceID, dateKey string, values []string) bool {
	if l.HasProcessed(sourceID) {
		return false
	}
	l.SetEntry(dateKey, values)
	l.MarkProcessed(sourceID)
	return true
}
