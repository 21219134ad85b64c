package enrich

import "strings"

// Slugify normalizes a display name into a catalog lookup key:
// lowercase, spaces to hyphens, everything except alphanumerics and
// hyphens stripped.
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	return b.String()
}
