// Package redact scrubs secrets from text before it is logged or returned in
// an error envelope. Store drivers tend to echo connection URIs, credentials
// and sometimes the offending document back in their error strings; callers
// pass such text through String or Error first.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedHashPlaceholder       = "[REDACTED_HASH]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules are applied in order; earlier rules must not produce text matched by later ones.
var rules = []rule{
	// userinfo in mongodb://, mongodb+srv://, postgres:// and postgresql:// URIs
	{regexp.MustCompile(`(?i)\b(mongodb(?:\+srv)?|postgres(?:ql)?)://[^@\s/]+@`), "${1}://" + RedactedCredentialPlaceholder + "@"},
	// three-part base64url JWTs
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), RedactedJWTPlaceholder},
	// bcrypt hashes
	{regexp.MustCompile(`\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}`), RedactedHashPlaceholder},
	// password=..., "password": "..." and friends
	{regexp.MustCompile(`(?i)(password|passwd|pwd)(["']?\s*[=:]\s*["']?)[^"'&\s,}]+`), "${1}${2}" + RedactedCredentialPlaceholder},
	// secret=..., api_key: ..., token=...
	{regexp.MustCompile(`(?i)(api[_-]?key|secret|token)(["']?\s*[=:]\s*["']?)[A-Za-z0-9_\-.~+/]{8,}`), "${1}${2}" + RedactedKeyPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
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
