package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/apicus/roi-engine/cmd/apicus/repository"
	"github.com/apicus/roi-engine/common/cache"
	"github.com/apicus/roi-engine/common/clients"
	"github.com/apicus/roi-engine/common/logger"
	"github.com/apicus/roi-engine/common/models"
)

const pricingCacheTTL = 15 * time.Minute

// CatalogService fronts the app pricing catalog with a cache and
// refreshes it from the remote pricing feed.
type CatalogService struct {
	repo  *repository.PricingRepository
	cache cache.Cache
	feed  *clients.CatalogFeedClient
	log   *logger.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo *repository.PricingRepository, c cache.Cache, feed *clients.CatalogFeedClient, log *logger.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: c,
		feed:  feed,
		log:   log,
	}
}

// FindPricingBySlug looks up catalog records, serving single-slug
// lookups from cache. Multi-slug queries go straight to the database.
func (s *CatalogService) FindPricingBySlug(ctx context.Context, slugs []string) ([]models.PricingRecord, error) {
	if len(slugs) == 1 && s.cache != nil {
		key := "pricing:" + slugs[0]
		if data, found, err := s.cache.Get(ctx, key); err == nil && found {
			var rec models.PricingRecord
			if err := json.Unmarshal(data, &rec); err == nil {
				return []models.PricingRecord{rec}, nil
			}
			// Corrupt entry, drop it and fall through
			_ = s.cache.Delete(ctx, key)
		}
	}

	records, err := s.repo.FindPricingBySlug(ctx, slugs)
	if err != nil {
		return nil, err
	}

	if len(slugs) == 1 && len(records) == 1 && s.cache != nil {
		if data, err := json.Marshal(records[0]); err == nil {
			_ = s.cache.Set(ctx, "pricing:"+slugs[0], data, pricingCacheTTL)
		}
	}

	return records, nil
}

// ListApps retrieves catalog records, optionally filtered by slug
func (s *CatalogService) ListApps(ctx context.Context, slugs []string, limit, offset int) ([]models.PricingRecord, error) {
	if len(slugs) > 0 {
		return s.FindPricingBySlug(ctx, slugs)
	}

	if limit <= 0 || limit > 200 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

// Sync pulls the remote pricing feed and upserts every record.
// Returns the number of records refreshed.
func (s *CatalogService) Sync(ctx context.Context) (int, error) {
	records, err := s.feed.FetchAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch pricing feed: %w", err)
	}

	synced := 0
	for i := range records {
		rec := &records[i]
		if rec.AppSlug == "" {
			s.log.Warn("skipping feed record without slug", "app_name", rec.AppName)
			continue
		}

		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}

		if err := s.repo.Upsert(ctx, rec); err != nil {
			return synced, fmt.Errorf("failed to upsert %s: %w", rec.AppSlug, err)
		}

		if s.cache != nil {
			_ = s.cache.Delete(ctx, "pricing:"+rec.AppSlug)
		}
		synced++
	}

	s.log.Info("synced pricing catalog", "records", synced)
	return synced, nil
}
