package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Free-text fields are stored and later rendered in the admin dashboard, so
// markup metacharacters and script-capable URL schemes are stripped outright
// rather than escaped.
const maxTextLen = 1000

var (
	xssChars   = strings.NewReplacer("<", "", ">", "", "'", "", `"`, "", "&", "")
	protocolRe = regexp.MustCompile(`(?i)(?:javascript|data|vbscript):`)
)

// SanitizeText trims, strips dangerous characters and protocol prefixes, and
// caps the result at 1000 bytes. Idempotent: running it on its own output is
// a no-op.
func SanitizeText(s string) string {
	s = strings.TrimSpace(s)
	s = xssChars.Replace(s)

	// Stripping can splice a new prefix together ("javajavascript:script:"),
	// so repeat until stable.
	for {
		stripped := protocolRe.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}

	if len(s) > maxTextLen {
		s = s[:maxTextLen]
		for len(s) > 0 && !utf8.ValidString(s) {
			s = s[:len(s)-1]
		}
		// The cut point may expose trailing whitespace a second pass would
		// trim; drop it here so the function stays idempotent.
		s = strings.TrimRight(s, " \t\n\r")
	}

	return s
}

// NormalizeRollNumber lowercases and trims a roll number for comparison and
// storage.
func NormalizeRollNumber(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeEmail lowercases and trims an email address for storage.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
