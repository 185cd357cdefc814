package moderation

import (
	"regexp"
	"strings"
)

var (
	scriptBlockPattern = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	htmlTagPattern     = regexp.MustCompile(`<[^>]*>`)
)

// Sanitize strips markup and script-like substrings from user-supplied
// text. The script pass is redundant with the tag pass but removes the
// script body as well, not just the tags. Total and idempotent.
func Sanitize(raw string) string {
	clean := scriptBlockPattern.ReplaceAllString(raw, "")
	clean = htmlTagPattern.ReplaceAllString(clean, "")
	return strings.TrimSpace(clean)
}
