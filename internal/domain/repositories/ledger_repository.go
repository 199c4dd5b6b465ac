package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/dealpulse/insight-engine/internal/domain/entities"
)

// LedgerRepository defines persistence for the per-field insight ledgers of
// an opportunity
type LedgerRepository interface {
	// GetByOpportunity loads every tracked-field ledger for an opportunity,
	// materializing empty ledgers for fields with no row yet
	GetByOpportunity(ctx context.Context, opportunityID uuid.UUID) (map[entities.InsightField]*entities.InsightLedger, error)

	// Get loads one field ledger, or an empty one when no row exists
	Get(ctx context.Context, opportunityID uuid.UUID, field entities.InsightField) (*entities.InsightLedger, error)

	// SaveAll writes the given ledgers in one transaction. Each write is
	// guarded by the version the ledger was read at; any stale version
	// aborts the whole transaction with entities.ErrLedgerConflict so the
	// caller can re-read and retry.
	SaveAll(ctx context.Context, ledgers []*entities.InsightLedger) error
}

// ContactRepository defines read access to the contact snapshot of an
// opportunity plus creation for the import flow
type ContactRepository interface {
	ListByOpportunity(ctx context.Context, opportunityID uuid.UUID) ([]*entities.ContactRecord, error)
	Create(ctx context.Context, c *entities.ContactRecord) error
}
