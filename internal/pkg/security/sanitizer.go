// Package security provides sanitizing of user-supplied text before it is
// persisted or echoed back to other users.
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizer strips all markup from user-supplied text. Posts, comments and
// bios are plain text; anything that parses as HTML is removed rather than
// escaped.
type TextSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer builds a sanitizer with bluemonday's strict policy, which
// allows no elements or attributes at all.
func NewTextSanitizer() *TextSanitizer {
	return &TextSanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize returns s with all markup removed and surrounding whitespace
// trimmed. Idempotent: sanitizing already-clean text returns it unchanged.
func (t *TextSanitizer) Sanitize(s string) string {
	return strings.TrimSpace(t.policy.Sanitize(s))
}
