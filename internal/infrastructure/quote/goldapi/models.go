package goldapi

import (
	"fmt"

	"gold-pricing-service/internal/domain/entities"
)

// QuoteResponse es el subconjunto del payload de GoldAPI que nos interesa.
// Según el plan contratado puede venir el precio por gramo, por onza o ambos.
type QuoteResponse struct {
	Metal        string   `json:"metal"`
	Currency     string   `json:"currency"`
	Timestamp    int64    `json:"timestamp"`
	Price        *float64 `json:"price"`
	PriceGram24k *float64 `json:"price_gram_24k"`
}

// PricePerGram prefiere el precio por gramo y si no convierte desde la onza troy
func (r QuoteResponse) PricePerGram() (float64, error) {
	if r.PriceGram24k != nil && entities.IsValidPrice(*r.PriceGram24k) {
		return *r.PriceGram24k, nil
	}
	if r.Price != nil && entities.IsValidPrice(*r.Price) {
		return *r.Price / entities.GramsPerTroyOunce, nil
	}
	return 0, fmt.Errorf("%w: neither price_gram_24k nor price is a positive number", ErrMalformedResponse)
}
