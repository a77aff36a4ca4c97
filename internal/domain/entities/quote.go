package entities

import (
	"math"
	"time"

	"gold-pricing-service/pkg/utils"
)

// GramsPerTroyOunce is the fixed ounce-to-gram conversion used for every per-ounce quote
const GramsPerTroyOunce = 31.1034768

// QuoteKey identifies the single quote the service tracks
const QuoteKey = "XAU/USD"

// Quote is the gold price in USD per gram together with the moment it was fetched
type Quote struct {
	PricePerGram float64   `json:"price_per_gram"`
	FetchedAt    time.Time `json:"fetched_at"`
}

func NewQuote(pricePerGram float64, fetchedAt time.Time) Quote {
	return Quote{
		PricePerGram: pricePerGram,
		FetchedAt:    fetchedAt,
	}
}

// NewQuoteFromOunce converts a per-troy-ounce price into a per-gram quote
func NewQuoteFromOunce(pricePerOunce float64, fetchedAt time.Time) Quote {
	return NewQuote(pricePerOunce/GramsPerTroyOunce, fetchedAt)
}

// IsValidPrice reports whether v can be used as a quote value
func IsValidPrice(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// Valid checks the quote invariants: finite positive price and a fetch time
func (q Quote) Valid() bool {
	return IsValidPrice(q.PricePerGram) && !q.FetchedAt.IsZero()
}

// Age returns how long ago the quote was fetched
func (q Quote) Age(now time.Time) time.Duration {
	return now.Sub(q.FetchedAt)
}

// IsFresh reports whether now - fetchedAt < ttl
func (q Quote) IsFresh(now time.Time, ttl time.Duration) bool {
	return !utils.IsTimestampStale(q.FetchedAt, now, ttl)
}

// EpochMillis returns the fetch time as Unix epoch milliseconds
func (q Quote) EpochMillis() int64 {
	return utils.EpochMillis(q.FetchedAt)
}

// QuoteStatus is the observability view of the current quote
type QuoteStatus struct {
	PricePerGram       float64 `json:"price_per_gram"`
	LastUpdatedEpochMs int64   `json:"last_updated_epoch_ms"`
	Fresh              bool    `json:"fresh"`
}
