package logging

import (
	"regexp"
	"strings"
)

// RedactedValue replaces anything that looks like a credential.
const RedactedValue = "[REDACTED]"

// Credentials people paste into chat by accident.
var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(sk-[a-zA-Z0-9]{20,})`),
	regexp.MustCompile(`(?i)(AIza[a-zA-Z0-9_-]{35})`),
	regexp.MustCompile(`(?i)(gh[po]_[a-zA-Z0-9]{36})`),
	regexp.MustCompile(`(?i)(github_pat_[a-zA-Z0-9]{22}_[a-zA-Z0-9]+)`),
	regexp.MustCompile(`(?i)(xox[abpr]-[a-zA-Z0-9-]{10,})`),
	regexp.MustCompile(`(?i)bearer\s+([a-zA-Z0-9._-]{20,})`),
	regexp.MustCompile(`(?i)(key|token|secret|password|auth)[=:]["']?([a-zA-Z0-9+/=_-]{32,})["']?`),
}

// Redact replaces credentials in s.
func Redact(s string) string {
	for _, pattern := range secretPatterns {
		s = pattern.ReplaceAllString(s, RedactedValue)
	}
	return s
}

// Preview returns a single-line, redacted excerpt of message content for
// log fields, at most limit runes long.
func Preview(content string, limit int) string {
	preview := Redact(strings.Join(strings.Fields(content), " "))
	if limit <= 0 {
		return preview
	}
	runes := []rune(preview)
	if len(runes) <= limit {
		return preview
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}
