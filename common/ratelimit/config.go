package ratelimit

// EndpointConfig defines rate limits for one endpoint group
type EndpointConfig struct {
	Endpoint      string
	Limit         int64  // Requests allowed per window
	WindowSeconds int    // Time window in seconds
	Description   string // Human-readable description
}

// Endpoint group names used as counter key segments
const (
	EndpointImport = "import"
	EndpointSync   = "catalog_sync"
)

// Default endpoint configurations
var DefaultEndpointConfigs = map[string]EndpointConfig{
	EndpointImport: {
		Endpoint:      EndpointImport,
		Limit:         30,
		WindowSeconds: 60,
		Description:   "Blueprint imports - 30 per minute per user",
	},
	EndpointSync: {
		Endpoint:      EndpointSync,
		Limit:         2,
		WindowSeconds: 60,
		Description:   "Catalog feed syncs - 2 per minute per user",
	},
}

// GlobalConfig contains global service-wide limits
type GlobalConfig struct {
	Limit         int64 // Total requests per window (all users)
	WindowSeconds int   // Time window
}

// Default global configuration
var DefaultGlobalConfig = GlobalConfig{
	Limit:         300,
	WindowSeconds: 60,
}

// GetLimitForEndpoint returns the rate limit for an endpoint group
func GetLimitForEndpoint(endpoint string) int64 {
	if config, exists := DefaultEndpointConfigs[endpoint]; exists {
		return config.Limit
	}
	// Fallback to the most restrictive configured endpoint
	return DefaultEndpointConfigs[EndpointSync].Limit
}

// GetWindowForEndpoint returns the time window for an endpoint group
func GetWindowForEndpoint(endpoint string) int {
	if config, exists := DefaultEndpointConfigs[endpoint]; exists {
		return config.WindowSeconds
	}
	return DefaultEndpointConfigs[EndpointSync].WindowSeconds
}
