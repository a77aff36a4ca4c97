package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"gold-pricing-service/internal/domain/entities"
	"gold-pricing-service/pkg/utils"
)

// record es la forma serializada del slot durable:
//
//	{"pricePerGramUSD": 77.16, "lastUpdated": 1718000000000}
type record struct {
	PricePerGramUSD *float64 `json:"pricePerGramUSD"`
	LastUpdated     *int64   `json:"lastUpdated"`
}

func encodeRecord(q entities.Quote) ([]byte, error) {
	if !q.Valid() {
		return nil, ErrInvalidQuote
	}
	price := q.PricePerGram
	ms := q.EpochMillis()
	return json.MarshalIndent(record{PricePerGramUSD: &price, LastUpdated: &ms}, "", "  ")
}

// decodeRecord valida el registro leído. Sin lastUpdated (o no positivo) se toma
// el momento de carga; un lastUpdated en el futuro se recorta a now.
func decodeRecord(data []byte, now time.Time) (entities.Quote, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return entities.Quote{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	if rec.PricePerGramUSD == nil || !entities.IsValidPrice(*rec.PricePerGramUSD) {
		return entities.Quote{}, fmt.Errorf("%w: pricePerGramUSD missing or not positive", ErrInvalidRecord)
	}

	fetchedAt := now
	if rec.LastUpdated != nil && *rec.LastUpdated > 0 {
		fetchedAt = utils.ClampToNow(utils.FromEpochMillis(*rec.LastUpdated), now)
	}

	return entities.NewQuote(*rec.PricePerGramUSD, fetchedAt), nil
}
