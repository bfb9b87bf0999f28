// Package redact provides utilities for redacting sensitive information from strings
// before they are logged. Database errors and request failures can echo connection
// strings, credentials, bearer tokens and email addresses; this package masks them.
package redact

import (
	"regexp"
)

// Placeholders substituted for redacted content.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
)

type rule struct {
	re   *regexp.Regexp
	repl string
}

// rules are applied in order; JWTs go first so the bearer rule never sees them.
var rules = []rule{
	{
		re:   regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
		repl: RedactedJWTPlaceholder,
	},
	{
		re:   regexp.MustCompile(`(?i)\b(bearer)\s+[A-Za-z0-9_\-.~+/]+=*`),
		repl: "${1} " + RedactionPlaceholder,
	},
	{
		re:   regexp.MustCompile(`(?i)\b(postgres(?:ql)?|pgx|sqlite|file)://[^@\s/]+@`),
		repl: "${1}://" + RedactedCredentialPlaceholder + "@",
	},
	{
		re:   regexp.MustCompile(`(?i)\b(password(?:_confirmation)?|passwd|pwd|secret)(\s*[=:]\s*)['"]?[^'"&\s,]+['"]?`),
		repl: "${1}${2}" + RedactionPlaceholder,
	},
	{
		re:   regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
		repl: RedactedEmailPlaceholder,
	},
	{
		re:   regexp.MustCompile(`(^|\s)(?:/[\w.-]+){2,}`),
		repl: "${1}" + RedactedPathPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.re.ReplaceAllString(result, r.repl)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
