package dedup

import (
	"sort"
	"time"

	"github.com/dealpulse/insight-engine/internal/domain/entities"
)

// DefaultWindow is the timestamp tolerance for judging two records as the
// same meeting when no shared calendar event id exists
const DefaultWindow = time.Hour

// Deduplicate collapses meeting records from all sources into one canonical
// timeline. Records are walked in chronological order and matched against the
// already-accepted set: a shared calendar event id wins over the time window.
// On a match the higher-priority source survives; equal priority keeps the
// first-seen record.
//
// Matching is single-pass against the accepted set, not full pairwise
// clustering. A chain of records each within the window of its neighbor but
// not of the first can merge unevenly depending on sort order.
func Deduplicate(records []*entities.MeetingRecord, window time.Duration) *entities.DedupResult {
	if window <= 0 {
		window = DefaultWindow
	}

	sorted := make([]*entities.MeetingRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MeetingAt.Before(sorted[j].MeetingAt)
	})

	result := &entities.DedupResult{Meetings: []*entities.MeetingRecord{}}

	for _, candidate := range sorted {
		idx, byCalendar := findMatch(result.Meetings, candidate, window)
		if idx < 0 {
			result.Meetings = append(result.Meetings, candidate)
			continue
		}

		result.DuplicatesRemoved++
		if byCalendar {
			result.MatchedByCalendarID++
		} else {
			result.MatchedByTime++
		}

		accepted := result.Meetings[idx]
		if candidate.Source.Priority() > accepted.Source.Priority() {
			result.Meetings[idx] = candidate
			result.PriorityPromotions++
		}
		// equal or lower priority: first-seen wins, candidate dropped
	}

	return result
}

// findMatch returns the index of the first accepted record that matches the
// candidate, and whether that match was by calendar event id
func findMatch(accepted []*entities.MeetingRecord, candidate *entities.MeetingRecord, window time.Duration) (int, bool) {
	for i, a := range accepted {
		if a.CalendarEventID != nil && candidate.CalendarEventID != nil &&
			*a.CalendarEventID == *candidate.CalendarEventID {
			return i, true
		}
		diff := candidate.MeetingAt.Sub(a.MeetingAt)
		if diff < 0 {
			diff = -diff
		}
		if diff <= window {
			return i, false
		}
	}
	return -1, false
}
