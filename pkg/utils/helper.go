package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseInt converts string to int, falling back to defaultValue when empty or malformed.
// Range checks are left to the caller.
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}

	return result
}

// NormalizeList splits free text into a list. Newlines take precedence over commas;
// entries are trimmed and empty ones dropped.
func NormalizeList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return []string{}
	}

	sep := ","
	if strings.Contains(value, "\n") {
		sep = "\n"
	}

	return NormalizeStrings(strings.Split(value, sep))
}

// NormalizeStrings trims every entry and drops the empty ones.
func NormalizeStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ParseDate accepts a plain date (2006-01-02) or an RFC3339 timestamp.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC3339", value)
	}
	return t, nil
}
