package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealpulse/insight-engine/internal/domain/entities"
	"github.com/dealpulse/insight-engine/internal/domain/repositories"
)

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a ledger repository backed by GORM
func NewLedgerRepository(db *gorm.DB) repositories.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) GetByOpportunity(ctx context.Context, opportunityID uuid.UUID) (map[entities.InsightField]*entities.InsightLedger, error) {
	var rows []*entities.InsightLedger
	err := r.db.WithContext(ctx).
		Where("opportunity_id = ?", opportunityID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[entities.InsightField]*entities.InsightLedger, len(entities.TrackedFields))
	for _, l := range rows {
		out[l.Field] = l
	}
	for _, field := range entities.TrackedFields {
		if _, ok := out[field]; !ok {
			out[field] = entities.NewInsightLedger(opportunityID, field)
		}
	}
	return out, nil
}

func (r *ledgerRepository) Get(ctx context.Context, opportunityID uuid.UUID, field entities.InsightField) (*entities.InsightLedger, error) {
	var l entities.InsightLedger
	err := r.db.WithContext(ctx).
		Where("opportunity_id = ? AND field = ?", opportunityID, field).
		First(&l).Error
	if err == gorm.ErrRecordNotFound {
		return entities.NewInsightLedger(opportunityID, field), nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// SaveAll writes every ledger in one transaction. Updates are guarded by the
// version each ledger was read at; a stale version rolls the whole
// transaction back with entities.ErrLedgerConflict. A unique-index race on
// insert surfaces the same way, so callers re-read and retry either case.
func (r *ledgerRepository) SaveAll(ctx context.Context, ledgers []*entities.InsightLedger) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, l := range ledgers {
			entries, _ := json.Marshal(l.Entries)
			processed, _ := json.Marshal(l.ProcessedSourceIDs)

			res := tx.Exec(
				`UPDATE insight_ledgers SET preamble = ?, entries = ?::jsonb, processed_source_ids = ?::jsonb, version = version + 1, updated_at = ? WHERE opportunity_id = ? AND field = ? AND version = ?`,
				l.Preamble, string(entries), string(processed), time.Now(),
				l.OpportunityID, l.Field, l.Version)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 1 {
				continue
			}

			// no row at our version: either first write or a concurrent bump
			var count int64
			if err := tx.Model(&entities.InsightLedger{}).
				Where("opportunity_id = ? AND field = ?", l.OpportunityID, l.Field).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return entities.ErrLedgerConflict
			}

			res = tx.Exec(
				`INSERT INTO insight_ledgers (id, opportunity_id, field, preamble, entries, processed_source_ids, version, created_at, updated_at)
                VALUES (?, ?, ?, ?, ?::jsonb, ?::jsonb, ?, ?, ?) ON CONFLICT (opportunity_id, field) DO NOTHING`,
				l.ID, l.OpportunityID, l.Field, l.Preamble, string(entries), string(processed),
				l.Version+1, time.Now(), time.Now())
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// another writer inserted first
				return entities.ErrLedgerConflict
			}
		}
		return nil
	})
}
