package cache

import (
	"context"
	"strings"
	"time"
)

// Ledger is the key-value store holding publication markers. A marker key is
// "{date}_{category}"; backends may add their own namespace prefix.
type Ledger interface {
	// ListPosted returns the categories that carry a marker for date.
	ListPosted(ctx context.Context, date string) ([]string, error)
	// MarkPosted writes the marker for (date, category) with the given ttl.
	// Writing an existing marker only refreshes its expiry.
	MarkPosted(ctx context.Context, date, category string, ttl time.Duration) error
	// ClearDate removes every marker of date and returns how many were removed.
	ClearDate(ctx context.Context, date string) (int, error)
	Close() error
}

// MarkerKey builds the key of a (date, category) marker.
func MarkerKey(date, category string) string {
	return date + "_" + category
}

// markerPattern matches every marker key of a date.
func markerPattern(date string) string {
	return date + "_*"
}

// categoryFromKey extracts the category from a marker key, given the key
// prefix that precedes the date.
func categoryFromKey(key, prefix, date string) (string, bool) {
	rest, ok := strings.CutPrefix(key, prefix+date+"_")
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}
