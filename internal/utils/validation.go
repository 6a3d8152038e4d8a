package utils

import (
	"errors"
	"html"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidID marks a path or query parameter that is not a positive
// integer identifier.
var ErrInvalidID = errors.New("identifier must be a positive integer")

// ParseID parses a route or query parameter into an entity ID.
func ParseID(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || value == 0 {
		return 0, ErrInvalidID
	}
	return uint(value), nil
}

// SanitizeString escapes HTML and strips control characters. Used on
// store error messages before they reach a response body, so driver
// internals are not echoed verbatim to callers.
func SanitizeString(input string) string {
	sanitized := html.EscapeString(input)

	var result strings.Builder
	for _, r := range sanitized {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}
