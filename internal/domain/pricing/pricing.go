// Package pricing holds the pure price formula applied to every catalog item.
//
//	price  = round2((clamp01(popularity) + 1) * max(0, weight) * goldPerGram)
//	rating = round(clamp01(popularity) * 50) / 10
//
// Both roundings are half-up. Arithmetic runs on decimal values so results do not
// pick up binary floating point drift (e.g. 1.005 rounds to 1.01).
package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	one   = decimal.NewFromInt(1)
	fifty = decimal.NewFromInt(50)
	ten   = decimal.NewFromInt(10)
)

// Clamp01 limits x to [0,1]; NaN and infinities map to 0
func Clamp01(x float64) float64 {
	if !isFinite(x) {
		return 0
	}
	return math.Max(0, math.Min(1, x))
}

// PopularityRating maps a raw popularity in [0,1] to a 0-5 scale with one decimal
func PopularityRating(popularity float64) float64 {
	p := decimal.NewFromFloat(Clamp01(popularity))
	return p.Mul(fifty).Round(0).Div(ten).InexactFloat64()
}

// Price computes the item price for a given popularity, weight in grams and gold quote per gram.
// Negative or non-finite weights count as 0.
func Price(popularity, weightGrams, quotePerGram float64) float64 {
	if !isFinite(quotePerGram) {
		return 0
	}

	p := decimal.NewFromFloat(Clamp01(popularity))
	w := decimal.NewFromFloat(nonNegative(weightGrams))
	q := decimal.NewFromFloat(quotePerGram)

	return p.Add(one).Mul(w).Mul(q).Round(2).InexactFloat64()
}

// Round2 rounds a finite value half-up to cents; non-finite values map to 0
func Round2(x float64) float64 {
	if !isFinite(x) {
		return 0
	}
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}

func nonNegative(x float64) float64 {
	if !isFinite(x) || x < 0 {
		return 0
	}
	return x
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
