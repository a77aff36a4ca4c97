package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEpochMillisRoundTrip(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

	ms := EpochMillis(ts)

	assert.Equal(t, int64(1741944413589), ms)
	assert.True(t, ts.Equal(FromEpochMillis(ms)))
}

func TestIsTimestampStale(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	ttl := 8 * time.Hour

	tests := []struct {
		name      string
		timestamp time.Time
		want      bool
	}{
		{name: "zero timestamp", timestamp: time.Time{}, want: true},
		{name: "just fetched", timestamp: now, want: false},
		{name: "one nanosecond before expiry", timestamp: now.Add(-ttl + time.Nanosecond), want: false},
		{name: "exactly at expiry", timestamp: now.Add(-ttl), want: true},
		{name: "long expired", timestamp: now.Add(-48 * time.Hour), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTimestampStale(tt.timestamp, now, ttl))
		})
	}
}

func TestClampToNow(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now, ClampToNow(now.Add(time.Hour), now))
	assert.Equal(t, now.Add(-time.Hour), ClampToNow(now.Add(-time.Hour), now))
}
