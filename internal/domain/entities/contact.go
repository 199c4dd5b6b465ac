package entities

import (
	"time"

	"github.com/google/uuid"
)

// ContactRecord is one contact scoped to an opportunity
type ContactRecord struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OpportunityID uuid.UUID `json:"opportunity_id" gorm:"type:uuid;not null;index"`
	FirstName     string    `json:"first_name" gorm:"type:varchar(255);not null"`
	LastName      string    `json:"last_name" gorm:"type:varchar(255);not null"`
	Email         string    `json:"email,omitempty" gorm:"type:varchar(255)"`
	Title         string    `json:"title,omitempty" gorm:"type:varchar(255)"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (ContactRecord) TableName() string {
	return "contacts"
}

// NewContactRecord creates a new contact for an opportunity
func NewContactRecord(opportunityID uuid.UUID, firstName, lastName string) *ContactRecord {
	return &ContactRecord{
		ID:            uuid.New(),
		OpportunityID: opportunityID,
		FirstName:     firstName,
		LastName:      lastName,
	}
}

// MatchType constants
const (
	MatchTypeExactEmail = "exact_email"
	MatchTypeExactName  = "exact_name"
	MatchTypeFuzzyName  = "fuzzy_name"
)

// Confidence constants
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
)

// DuplicateMatch flags one existing contact as a likely duplicate of a
// candidate
type DuplicateMatch struct {
	ContactID  uuid.UUID `json:"contact_id"`
	MatchType  string    `json:"match_type"`
	Confidence string    `json:"confidence"`
}

// DuplicateReport is the per-candidate result of duplicate detection
type DuplicateReport struct {
	IsDuplicate bool             `json:"is_duplicate"`
	Matches     []DuplicateMatch `json:"matches"`
}
