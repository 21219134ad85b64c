package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apicus/roi-engine/common/db"
	"github.com/apicus/roi-engine/common/models"
)

// PricingRepository handles database operations for the app pricing catalog
type PricingRepository struct {
	db *db.DB
}

// NewPricingRepository creates a new pricing repository
func NewPricingRepository(db *db.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

// Upsert inserts or refreshes a catalog record, keyed by app_slug
func (r *PricingRepository) Upsert(ctx context.Context, rec *models.PricingRecord) error {
	tiers, err := json.Marshal(rec.PricingTiers)
	if err != nil {
		return fmt.Errorf("failed to marshal pricing tiers: %w", err)
	}
	usage, err := json.Marshal(rec.UsageBasedPricing)
	if err != nil {
		return fmt.Errorf("failed to marshal usage pricing: %w", err)
	}
	ai, err := json.Marshal(rec.AISpecificPricing)
	if err != nil {
		return fmt.Errorf("failed to marshal ai pricing: %w", err)
	}
	meta, err := json.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := `
		INSERT INTO app_pricing (id, app_slug, app_name, currency, has_free_tier, has_free_trial,
		                         pricing_tiers, usage_based_pricing, ai_specific_pricing, metadata, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (app_slug) DO UPDATE SET
			app_name = EXCLUDED.app_name,
			currency = EXCLUDED.currency,
			has_free_tier = EXCLUDED.has_free_tier,
			has_free_trial = EXCLUDED.has_free_trial,
			pricing_tiers = EXCLUDED.pricing_tiers,
			usage_based_pricing = EXCLUDED.usage_based_pricing,
			ai_specific_pricing = EXCLUDED.ai_specific_pricing,
			metadata = EXCLUDED.metadata,
			updated_at = NOW()
	`

	_, err = r.db.Exec(ctx, query,
		rec.ID,
		rec.AppSlug,
		rec.AppName,
		rec.Currency,
		rec.HasFreeTier,
		rec.HasFreeTrial,
		tiers,
		usage,
		ai,
		meta,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert pricing record: %w", err)
	}

	return nil
}

// FindPricingBySlug retrieves catalog records for a set of app slugs.
// Slugs with no catalog entry are simply absent from the result.
func (r *PricingRepository) FindPricingBySlug(ctx context.Context, slugs []string) ([]models.PricingRecord, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, app_slug, app_name, currency, has_free_tier, has_free_trial,
		       pricing_tiers, usage_based_pricing, ai_specific_pricing, metadata, updated_at
		FROM app_pricing
		WHERE app_slug = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, slugs)
	if err != nil {
		return nil, fmt.Errorf("failed to query pricing records: %w", err)
	}
	defer rows.Close()

	var records []models.PricingRecord
	for rows.Next() {
		rec, err := scanPricingRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pricing records: %w", err)
	}

	return records, nil
}

// List retrieves all catalog records ordered by slug
func (r *PricingRepository) List(ctx context.Context, limit, offset int) ([]models.PricingRecord, error) {
	query := `
		SELECT id, app_slug, app_name, currency, has_free_tier, has_free_trial,
		       pricing_tiers, usage_based_pricing, ai_specific_pricing, metadata, updated_at
		FROM app_pricing
		ORDER BY app_slug ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list pricing records: %w", err)
	}
	defer rows.Close()

	var records []models.PricingRecord
	for rows.Next() {
		rec, err := scanPricingRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pricing records: %w", err)
	}

	return records, nil
}

// Count returns the number of catalog records
func (r *PricingRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM app_pricing`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pricing records: %w", err)
	}

	return count, nil
}

// rowScanner covers pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPricingRecord(row rowScanner) (*models.PricingRecord, error) {
	rec := &models.PricingRecord{}
	var tiers, usage, ai, meta []byte

	err := row.Scan(
		&rec.ID,
		&rec.AppSlug,
		&rec.AppName,
		&rec.Currency,
		&rec.HasFreeTier,
		&rec.HasFreeTrial,
		&tiers,
		&usage,
		&ai,
		&meta,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan pricing record: %w", err)
	}

	if len(tiers) > 0 {
		if err := json.Unmarshal(tiers, &rec.PricingTiers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pricing tiers: %w", err)
		}
	}
	if len(usage) > 0 {
		if err := json.Unmarshal(usage, &rec.UsageBasedPricing); err != nil {
			return nil, fmt.Errorf("failed to unmarshal usage pricing: %w", err)
		}
	}
	if len(ai) > 0 {
		if err := json.Unmarshal(ai, &rec.AISpecificPricing); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ai pricing: %w", err)
		}
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &rec.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	return rec, nil
}
