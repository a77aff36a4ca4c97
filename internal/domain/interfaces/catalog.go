package interfaces

import (
	"context"

	"gold-pricing-service/internal/domain/entities"
)

// ProductFilter holds the optional bounds applied to a priced listing
type ProductFilter struct {
	MinPrice *float64
	MaxPrice *float64
	MinPop   *float64
	MaxPop   *float64
}

// ProductService prices the static catalog against the current quote
type ProductService interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]entities.PricedItem, error)
}
