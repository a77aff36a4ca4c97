package utils

import (
	"time"
)

// EpochMillis converts a time to Unix epoch milliseconds
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromEpochMillis converts Unix epoch milliseconds back to a time in UTC
func FromEpochMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// IsTimestampStale checks if a timestamp is at least the specified duration old relative to now.
// A zero timestamp is always stale.
func IsTimestampStale(timestamp, now time.Time, staleDuration time.Duration) bool {
	if timestamp.IsZero() {
		return true
	}
	return now.Sub(timestamp) >= staleDuration
}

// ClampToNow returns now when t lies in the future, t otherwise
func ClampToNow(t, now time.Time) time.Time {
	if t.After(now) {
		return now
	}
	return t
}
