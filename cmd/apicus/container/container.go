package container

import (
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/apicus/roi-engine/cmd/apicus/repository"
	"github.com/apicus/roi-engine/cmd/apicus/service"
	"github.com/apicus/roi-engine/common/bootstrap"
	"github.com/apicus/roi-engine/common/cache"
	"github.com/apicus/roi-engine/common/clients"
	"github.com/apicus/roi-engine/common/formula"
	"github.com/apicus/roi-engine/common/ratelimit"
	rediscommon "github.com/apicus/roi-engine/common/redis"
	"github.com/apicus/roi-engine/common/worker"
)

// Container holds all initialized services and repositories (singleton pattern)
type Container struct {
	// Components
	Components *bootstrap.Components
	Redis      *rediscommon.Client
	RedisRaw   *redis.Client

	// Repositories
	PricingRepo  *repository.PricingRepository
	TemplateRepo *repository.TemplateRepository

	// Services
	CatalogService  *service.CatalogService
	TemplateService *service.TemplateService
	ROIService      *service.ROIService

	// Infrastructure
	RateLimiter *ratelimit.RateLimiter
	Evaluator   *formula.Evaluator
	Enricher    *worker.EnrichmentWorker
}

// NewContainer initializes all services and repositories once
func NewContainer(components *bootstrap.Components) (*Container, error) {
	cfg := components.Config

	// Create Redis client (raw)
	redisRaw := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Wrap with common redis client for instrumentation and common operations
	redisClient := rediscommon.NewClient(redisRaw, components.Logger)

	// Swap the bootstrap memory cache for redis when configured
	appCache := components.Cache
	if cfg.Cache.Enabled && cfg.Cache.Backend == "redis" {
		appCache = cache.NewRedisCache(redisClient)
	}

	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = ratelimit.NewRateLimiter(redisRaw, components.Logger)

		// Deployment override for the import budget
		if cfg.RateLimit.ImportsPerMinute > 0 {
			ec := ratelimit.DefaultEndpointConfigs[ratelimit.EndpointImport]
			ec.Limit = cfg.RateLimit.ImportsPerMinute
			ratelimit.DefaultEndpointConfigs[ratelimit.EndpointImport] = ec
		}
	}

	// Initialize repositories
	pricingRepo := repository.NewPricingRepository(components.DB)
	templateRepo := repository.NewTemplateRepository(components.DB)

	// Initialize services (bottom-up: dependencies first)
	httpClient := clients.NewHTTPClient(&http.Client{Timeout: cfg.Catalog.SyncTimeout}, components.Logger)
	feedClient := clients.NewCatalogFeedClient(httpClient, cfg.Catalog.FeedURL, components.Logger)
	catalogService := service.NewCatalogService(pricingRepo, appCache, feedClient, components.Logger)

	enricher := worker.NewEnrichmentWorker(components.Queue, catalogService, templateRepo, components.Logger)
	templateService := service.NewTemplateService(templateRepo, enricher, components.Logger)

	evaluator, err := formula.NewEvaluator()
	if err != nil {
		return nil, fmt.Errorf("failed to create formula evaluator: %w", err)
	}
	roiService := service.NewROIService(templateRepo, evaluator, components.Logger)

	return &Container{
		Components:      components,
		Redis:           redisClient,
		RedisRaw:        redisRaw,
		PricingRepo:     pricingRepo,
		TemplateRepo:    templateRepo,
		CatalogService:  catalogService,
		TemplateService: templateService,
		ROIService:      roiService,
		RateLimiter:     rateLimiter,
		Evaluator:       evaluator,
		Enricher:        enricher,
	}, nil
}
