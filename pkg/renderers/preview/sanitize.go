package preview

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans user-authored text before it reaches the preview markup.
// Output is already HTML escaped.
type Sanitizer struct {
	text   *bluemonday.Policy
	inline *bluemonday.Policy
}

// NewSanitizer returns the default sanitiser. Text strips every tag; Inline
// keeps basic emphasis and links for static label fields.
func NewSanitizer() *Sanitizer {
	inline := bluemonday.NewPolicy()
	inline.AllowElements("b", "strong", "i", "em", "u", "small", "code", "br")
	inline.AllowAttrs("href").OnElements("a")
	inline.AllowStandardURLs()
	inline.RequireNoFollowOnLinks(true)
	inline.AddTargetBlankToFullyQualifiedLinks(true)

	return &Sanitizer{
		text:   bluemonday.StrictPolicy(),
		inline: inline,
	}
}

// Text removes all markup from raw.
func (s *Sanitizer) Text(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return strings.TrimSpace(s.text.Sanitize(raw))
}

// Inline keeps a small set of inline elements and drops everything else.
func (s *Sanitizer) Inline(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return strings.TrimSpace(s.inline.Sanitize(raw))
}
