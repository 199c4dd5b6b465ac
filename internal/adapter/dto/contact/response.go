package contact

import "github.com/dealpulse/insight-engine/internal/domain/entities"

// MatchItem flags one existing contact as a likely duplicate
type MatchItem struct {
	ContactID  string `json:"contact_id"`
	MatchType  string `json:"match_type"`
	Confidence string `json:"confidence"`
}

// ReportItem is the duplicate verdict for one candidate, in request order
type ReportItem struct {
	IsDuplicate bool        `json:"is_duplicate"`
	Matches     []MatchItem `json:"matches"`
}

// CheckDuplicatesResponse is the batch duplicate check result
type CheckDuplicatesResponse struct {
	Reports []ReportItem `json:"reports"`
}

// ToCheckDuplicatesResponse maps detector reports onto their wire shape
func ToCheckDuplicatesResponse(reports []entities.DuplicateReport) *CheckDuplicatesResponse {
	out := &CheckDuplicatesResponse{Reports: make([]ReportItem, 0, len(reports))}
	for _, r := range reports {
		item := ReportItem{IsDuplicate: r.IsDuplicate, Matches: []MatchItem{}}
		for _, m := range r.Matches {
			item.Matches = append(item.Matches, MatchItem{
				ContactID:  m.ContactID.String(),
				MatchType:  m.MatchType,
				Confidence: m.Confidence,
			})
		}
		out.Reports = append(out.Reports, item)
	}
	return out
}
