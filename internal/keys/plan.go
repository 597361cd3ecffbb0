package keys

import (
	"strings"
)

// sanitizeKey replaces spaces with hyphens and lowercases the string.
func sanitizeKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-"))
}

// PlanEvent returns the message key for a plan event, so every event for
// the same destination lands on the same partition.
func PlanEvent(destination string) string {
	if k := sanitizeKey(destination); k != "" {
		return k
	}
	return "unknown"
}
