package importer

import (
	"strings"
	"sync"
	"unicode"
)

// Canonical display names for known app short codes. The set is open:
// new source integrations appear continuously, so unknown codes pass
// through verbatim and deployments extend the table via RegisterApp.
var (
	appNamesMu sync.RWMutex
	appNames   = map[string]string{
		"airtable":      "Airtable",
		"apify":         "Apify",
		"builtin":       "Flow Control",
		"email":         "Email",
		"gateway":       "Webhooks",
		"google-sheets": "Google Sheets",
		"http":          "HTTP",
		"hubspot":       "HubSpot",
		"json":          "JSON",
		"notion":        "Notion",
		"openai":        "OpenAI",
		"slack":         "Slack",
		"telegram":      "Telegram",
		"util":          "Tools",
	}
)

// RegisterApp adds or overrides a display name for an app short code.
func RegisterApp(code, displayName string) {
	appNamesMu.Lock()
	defer appNamesMu.Unlock()
	appNames[strings.ToLower(code)] = displayName
}

func appDisplayName(code string) string {
	appNamesMu.RLock()
	defer appNamesMu.RUnlock()
	if name, ok := appNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

// splitModuleType splits a compound "app:action" type string. Strings
// without a delimiter are treated as bare app codes with no action.
func splitModuleType(moduleType string) (appCode, actionCode string) {
	if i := strings.Index(moduleType, ":"); i >= 0 {
		return moduleType[:i], moduleType[i+1:]
	}
	return moduleType, ""
}

// isRouterModule recognizes branching/filtering constructs by type
// signature. A structural heuristic over known vendor encodings, not a
// semantic guarantee.
func isRouterModule(moduleType string) bool {
	lower := strings.ToLower(moduleType)
	return strings.Contains(lower, "router") || strings.Contains(lower, "filter")
}

// inferOperationType tags actions whose names suggest a transform/filter
// or read/fetch shape, feeding the time-attribution adjustment.
func inferOperationType(actionCode string) string {
	lower := strings.ToLower(actionCode)
	switch {
	case strings.Contains(lower, "transform"), strings.Contains(lower, "parse"), strings.Contains(lower, "map"):
		return "transform"
	case strings.Contains(lower, "filter"):
		return "filter"
	case strings.HasPrefix(lower, "get"), strings.HasPrefix(lower, "fetch"),
		strings.HasPrefix(lower, "read"), strings.HasPrefix(lower, "list"),
		strings.HasPrefix(lower, "search"), strings.HasPrefix(lower, "watch"):
		return "fetch"
	default:
		return ""
	}
}

// humanizeAction turns a camelCase action code into a display label:
// "fetchDatasetItems" -> "Fetch Dataset Items". Vendor "Action" prefixes
// are noise and get stripped ("ActionSendData" -> "Send Data").
func humanizeAction(actionCode string) string {
	code := strings.TrimPrefix(actionCode, "Action")
	if code == "" {
		return ""
	}

	var b strings.Builder
	runes := []rune(code)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteRune(' ')
		}
		if i == 0 {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}

	return b.String()
}
