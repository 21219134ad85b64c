package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/apicus/roi-engine/common/models"
)

// CatalogFeedClient pulls app pricing records from a remote feed so the
// local catalog can be refreshed without a deploy. The feed returns a
// JSON array of full pricing records.
type CatalogFeedClient struct {
	http    *HTTPClient
	feedURL string
	logger  Logger
}

// NewCatalogFeedClient creates a new pricing feed client
func NewCatalogFeedClient(httpClient *HTTPClient, feedURL string, logger Logger) *CatalogFeedClient {
	return &CatalogFeedClient{
		http:    httpClient,
		feedURL: feedURL,
		logger:  logger,
	}
}

// FetchAll downloads the complete pricing feed
func (c *CatalogFeedClient) FetchAll(ctx context.Context) ([]models.PricingRecord, error) {
	if c.feedURL == "" {
		return nil, fmt.Errorf("catalog feed URL not configured")
	}

	resp, err := c.http.DoRequest(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch pricing feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pricing feed returned status %d", resp.StatusCode)
	}

	var records []models.PricingRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode pricing feed: %w", err)
	}

	c.logger.Info("fetched pricing feed", "records", len(records))
	return records, nil
}
