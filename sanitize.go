package gql

import (
	"regexp"
	"strings"
)

const redactedText = "[REDACTED]"

// Patterns for values that must never reach the logs. Field and header
// matches keep the name and redact only the value.
var (
	sensitiveFieldPattern = regexp.MustCompile(`(?i)"?(password|passwd|pwd|token|apikey|api_key|api-key|secret|authorization|auth|bearer|credentials|access_token|refresh_token|client_secret|session|cookie)"?\s*:\s*"[^"]*"`)
	authHeaderPattern     = regexp.MustCompile(`(?i)(authorization|x-api-key|x-auth-token)\s*:\s*[^\n,}]+`)
	basicAuthURLPattern   = regexp.MustCompile(`(https?://)([^:/]+):([^@]+)@`)
	jwtPattern            = regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)
)

// sanitizeForLogging redacts credentials, tokens and auth material
// from anything the error reporter is about to log.
func sanitizeForLogging(input string) string {
	if input == "" {
		return input
	}

	out := sensitiveFieldPattern.ReplaceAllStringFunc(input, func(match string) string {
		parts := strings.SplitN(match, ":", 2)
		if len(parts) != 2 {
			return redactedText
		}
		return parts[0] + `: "` + redactedText + `"`
	})

	out = authHeaderPattern.ReplaceAllStringFunc(out, func(match string) string {
		parts := strings.SplitN(match, ":", 2)
		if len(parts) != 2 {
			return redactedText
		}
		return parts[0] + ": " + redactedText
	})

	out = basicAuthURLPattern.ReplaceAllString(out, "${1}"+redactedText+":"+redactedText+"@")
	return jwtPattern.ReplaceAllString(out, redactedText)
}
