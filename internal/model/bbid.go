package model

import (
	"regexp"

	"github.com/google/uuid"
)

var bbidPattern = regexp.MustCompile(`^(?i)[0-9a-f]{8}-?[0-9a-f]{4}-?[0-9a-f]{4}-?[0-9a-f]{4}-?[0-9a-f]{12}$`)

// IsValidBBID reports whether s has the shape of a BookBrainz identifier.
// Hyphens are optional and hex digits are case-insensitive.
func IsValidBBID(s string) bool {
	return bbidPattern.MatchString(s)
}

// NormalizeBBID returns the lowercase hyphenated form of a valid BBID.
func NormalizeBBID(s string) (string, bool) {
	if !IsValidBBID(s) {
		return "", false
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}

	return id.String(), true
}

// NewBBID generates a fresh identifier.
func NewBBID() string {
	return uuid.New().String()
}
