package models

import (
	"regexp"
	"strings"
)

var nonWordRun = regexp.MustCompile(`[^a-z0-9]+`)

// SlugifyCode derives a machine role code from a display name: lowercase,
// non-word runs collapsed to a single underscore, leading/trailing
// underscores trimmed. Regenerated on every role save.
func SlugifyCode(name string) string {
	code := nonWordRun.ReplaceAllString(strings.ToLower(name), "_")
	return strings.Trim(code, "_")
}
