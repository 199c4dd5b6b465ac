package insights

import (
	"sort"

	"github.com/google/uuid"

	"github.com/dealpulse/insight-engine/internal/domain/entities"
	"github.com/dealpulse/insight-engine/pkg/textnorm"
)

// Aggregate merges one field's insight strings across a deduplicated timeline
// into ranked groups. Grouping uses exact normalized-string equality only; a
// meeting contributes at most one mention to any group regardless of how
// often its own list repeats the text. Output is sorted by mention count
// descending, then alphabetically by original text.
func Aggregate(meetings []*entities.MeetingRecord, field entities.InsightField) []entities.AggregatedInsight {
	groups := map[string]*entities.AggregatedInsight{}
	contributed := map[string]map[uuid.UUID]bool{}
	var order []string

	for _, m := range meetings {
		for _, raw := range m.Insights(field) {
			key := textnorm.Insight(raw)
			if key == "" {
				continue
			}

			g, ok := groups[key]
			if !ok {
				g = &entities.AggregatedInsight{
					NormalizedText: key,
					OriginalText:   raw,
					Sources:        []entities.InsightSource{},
				}
				groups[key] = g
				contributed[key] = map[uuid.UUID]bool{}
				order = append(order, key)
			}

			if contributed[key][m.ID] {
				continue // this meeting already counted for the group
			}
			contributed[key][m.ID] = true
			g.MentionCount++
			g.Sources = append(g.Sources, entities.InsightSource{
				MeetingID:    m.ID,
				MeetingTitle: m.Title,
				MeetingDate:  m.MeetingAt,
			})
		}
	}

	out := make([]entities.AggregatedInsight, 0, len(order))
	for _, key := range order {
		out = append(out, *groups[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MentionCount != out[j].MentionCount {
			return out[i].MentionCount > out[j].MentionCount
		}
		return out[i].OriginalText < out[j].OriginalText
	})
	return out
}
