package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/dealpulse/insight-engine/internal/domain/entities"
)

// MeetingRepository defines persistence operations for parsed meeting records
type MeetingRepository interface {
	// UpsertBySourceID stores a meeting keyed by its parser-assigned source
	// id; redelivery of the same source id overwrites in place
	UpsertBySourceID(ctx context.Context, m *entities.MeetingRecord) error

	// ListByOpportunity returns every stored record for an opportunity,
	// ascending by meeting time
	ListByOpportunity(ctx context.Context, opportunityID uuid.UUID) ([]*entities.MeetingRecord, error)

	GetBySourceID(ctx context.Context, sourceID string) (*entities.MeetingRecord, error)
}
