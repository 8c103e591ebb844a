package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ParseUUID parses s, returning uuid.Nil for blank or malformed input.
func ParseUUID(s string) uuid.UUID {
	uid, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil
	}
	return uid
}

// ILikePattern wraps q for a substring ILIKE match, escaping LIKE wildcards.
func ILikePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}

// NullIfEmpty maps "" to nil, used when an empty input clears a column.
func NullIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
