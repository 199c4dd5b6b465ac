package dedup

import (
	"strings"

	"github.com/dealpulse/insight-engine/internal/domain/entities"
	"github.com/dealpulse/insight-engine/pkg/textnorm"
)

// ResolveLatest derives one authoritative field value from a deduplicated
// timeline. The most recent record per source with a non-empty value
// competes: when the finalists fall on the same calendar day the higher
// priority source wins, otherwise the strictly later meeting wins. Returns
// nil when no record qualifies.
func ResolveLatest(meetings []*entities.MeetingRecord, field entities.InsightField) *entities.MeetingRecord {
	latest := map[entities.MeetingSource]*entities.MeetingRecord{}
	for _, m := range meetings {
		if len(m.Insights(field)) == 0 {
			continue
		}
		cur, ok := latest[m.Source]
		if !ok || m.MeetingAt.After(cur.MeetingAt) {
			latest[m.Source] = m
		}
	}

	// fixed iteration order keeps the fold deterministic
	var winner *entities.MeetingRecord
	for _, src := range []entities.MeetingSource{entities.SourceGong, entities.SourceGranola, entities.SourceManual} {
		m, ok := latest[src]
		if !ok {
			continue
		}
		if winner == nil {
			winner = m
			continue
		}
		if textnorm.DateKey(m.MeetingAt) == textnorm.DateKey(winner.MeetingAt) {
			if m.Source.Priority() > winner.Source.Priority() {
				winner = m
			}
		} else if m.MeetingAt.After(winner.MeetingAt) {
			winner = m
		}
	}
	return winner
}

// ResolveNextStep returns the current authoritative next-step text, bullet
// joined, or empty when nothing qualifies. Formatting happens after
// selection, never during comparison.
func ResolveNextStep(meetings []*entities.MeetingRecord) string {
	winner := ResolveLatest(meetings, entities.FieldNextSteps)
	if winner == nil {
		return ""
	}
	return JoinBullets(winner.NextSteps)
}

// JoinBullets renders a value list as bullet lines
func JoinBullets(values []string) string {
	if len(values) == 0 {
		return ""
	}
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(v)
	}
	return b.String()
}
