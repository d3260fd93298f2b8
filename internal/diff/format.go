package diff

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	dateKey     = regexp.MustCompile(`(?i)\bdate\b`)
	datePattern = regexp.MustCompile(`^([+-]?\d{1,6})(?:-(\d{2}))?(?:-(\d{2}))?$`)
)

// IsDateKey reports whether a field holds a date and should be formatted for display.
func IsDateKey(key string) bool {
	return dateKey.MatchString(key)
}

// Format returns a copy of entries with date valued fields formatted for display.
// Entries are otherwise unchanged.
func Format(entries []Entry) []Entry {
	formatted := make([]Entry, len(entries))
	for i, entry := range entries {
		formatted[i] = entry
		if !IsDateKey(entry.Key) {
			continue
		}
		formatted[i].LHS = formatDates(entry.LHS)
		formatted[i].RHS = formatDates(entry.RHS)
	}
	return formatted
}

func formatDates(values []any) []any {
	if values == nil {
		return nil
	}
	out := make([]any, len(values))
	for i, value := range values {
		if s, ok := value.(string); ok {
			out[i] = FormatDate(s)
			continue
		}
		out[i] = value
	}
	return out
}

// FormatDate renders a partial ISO 8601 date ("1929", "1929-10", "+001929-10-21",
// "-0043-03-15") for display. Years are padded to four digits and dates before
// year 1 are suffixed with "BCE". Unrecognised input is returned unchanged.
func FormatDate(date string) string {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(date))
	if m == nil {
		return date
	}

	year, err := strconv.Atoi(m[1])
	if err != nil {
		return date
	}

	bce := year < 0 || strings.HasPrefix(m[1], "-")
	if year < 0 {
		year = -year
	}

	out := fmt.Sprintf("%04d", year)
	if m[2] != "" {
		out += "-" + m[2]
	}
	if m[3] != "" {
		out += "-" + m[3]
	}
	if bce {
		out += " BCE"
	}
	return out
}
