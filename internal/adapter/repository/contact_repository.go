package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealpulse/insight-engine/internal/domain/entities"
	"github.com/dealpulse/insight-engine/internal/domain/repositories"
)

// contactRepository implements the ContactRepository interface
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) repositories.ContactRepository {
	return &contactRepository{db: db}
}

// ListByOpportunity returns the existing-contact snapshot for a scope
func (r *contactRepository) ListByOpportunity(ctx context.Context, opportunityID uuid.UUID) ([]*entities.ContactRecord, error) {
	var contacts []*entities.ContactRecord
	err := r.db.WithContext(ctx).
		Where("opportunity_id = ?", opportunityID).
		Order("last_name ASC, first_name ASC").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// Create stores a new contact
func (r *contactRepository) Create(ctx context.Context, c *entities.ContactRecord) error {
	return r.db.WithContext(ctx).Create(c).Error
}
