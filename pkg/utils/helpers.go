package utils

import (
	"strconv"
	"strings"
	"time"
)

// ParseDuration parses a duration string like "30s", falling back to def on empty or bad input.
func ParseDuration(d string, def time.Duration) time.Duration {
	if d == "" {
		return def
	}
	duration, err := time.ParseDuration(d)
	if err != nil {
		return def
	}
	return duration
}

// CleanHeader trims whitespace and removes all quotes from a CSV header cell.
func CleanHeader(h string) string {
	h = strings.TrimSpace(h)
	h = strings.ReplaceAll(h, `"`, "")
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.TrimSpace(h))
}

// ParseInt parses a trimmed integer cell. Whole-number floats such as "2023.0" are accepted.
func ParseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, strconv.ErrSyntax
	}
	return int(f), nil
}

// ParseFloat parses a trimmed float cell.
func ParseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// ParseIntList parses each element of values as an integer.
func ParseIntList(values []string) ([]int, error) {
	out := make([]int, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		i, err := ParseInt(v)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, nil
}
