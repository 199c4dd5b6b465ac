package meeting

// RiskPayload carries the parser's risk read for one meeting
type RiskPayload struct {
	Level     string   `json:"level" validate:"omitempty,oneof=low medium high"`
	Summary   string   `json:"summary,omitempty"`
	Blockers  []string `json:"blockers,omitempty"`
	Champions []string `json:"champions,omitempty"`
}

// IngestMeetingRequest represents one parsed meeting delivered by an upstream
// transcript parser
type IngestMeetingRequest struct {
	OpportunityID   string       `json:"opportunity_id" validate:"required,uuid"`
	SourceID        string       `json:"source_id" validate:"required,min=1,max=255"`
	Source          string       `json:"source" validate:"required,oneof=gong granola manual"`
	Title           string       `json:"title,omitempty" validate:"omitempty,max=500"`
	MeetingDate     string       `json:"meeting_date" validate:"required"`
	CalendarEventID *string      `json:"calendar_event_id,omitempty"`
	PainPoints      []string     `json:"pain_points,omitempty"`
	Goals           []string     `json:"goals,omitempty"`
	NextSteps       []string     `json:"next_steps,omitempty"`
	Quotes          []string     `json:"quotes,omitempty"`
	Objections      []string     `json:"objections,omitempty"`
	Metrics         []string     `json:"metrics,omitempty"`
	Rationale       []string     `json:"rationale,omitempty"`
	Risk            *RiskPayload `json:"risk,omitempty"`
}
