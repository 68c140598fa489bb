// Package ops implements the application operations, one per file, each with
// an Input/Output struct pair. Operations load, mutate, and persist the two
// store documents; all validation happens here so the CLI, MCP, and web
// surfaces share one set of rules.
package ops

import (
	"strings"

	"hookline/internal/errors"
)

// MaxSuggestedSubjects caps the subject suggestion sample.
const MaxSuggestedSubjects = 10

// ValidateUsername normalizes and validates a username. Usernames are
// case-sensitive; only surrounding whitespace is stripped.
func ValidateUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", errors.NewInvalidRequest("username is required")
	}
	return username, nil
}

// ValidateSubject normalizes and validates a conversation subject. The
// original casing is preserved; matching is case-insensitive downstream.
func ValidateSubject(subject string) (string, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", errors.NewInvalidRequest("animal is required")
	}
	return subject, nil
}
