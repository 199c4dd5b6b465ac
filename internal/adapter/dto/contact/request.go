package contact

// CandidateRequest is one incoming contact to check against the opportunity
// scope
type CandidateRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=255"`
	LastName  string `json:"last_name" validate:"required,min=1,max=255"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
}

// CheckDuplicatesRequest represents a batch duplicate check
type CheckDuplicatesRequest struct {
	Candidates []CandidateRequest `json:"candidates" validate:"required,min=1,dive"`
}
