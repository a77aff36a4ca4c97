package services

import (
	"context"

	"gold-pricing-service/internal/domain/entities"
	"gold-pricing-service/internal/domain/interfaces"
	"gold-pricing-service/internal/domain/pricing"
	"gold-pricing-service/internal/infrastructure/logging"
)

// productService prices the static catalog against the current quote
type productService struct {
	catalog []entities.CatalogItem
	quotes  interfaces.QuoteService
}

// NewProductService creates the catalog pricing service
func NewProductService(catalog []entities.CatalogItem, quotes interfaces.QuoteService) interfaces.ProductService {
	items := make([]entities.CatalogItem, len(catalog))
	copy(items, catalog)
	return &productService{
		catalog: items,
		quotes:  quotes,
	}
}

// ListProducts obtiene una única cotización y la aplica a todo el catálogo
func (s *productService) ListProducts(ctx context.Context, filter interfaces.ProductFilter) ([]entities.PricedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gold := s.quotes.GetCurrentPricePerGram(ctx)

	out := make([]entities.PricedItem, 0, len(s.catalog))
	for _, item := range s.catalog {
		priced := entities.PricedItem{
			CatalogItem:      item,
			PopularityScore5: pricing.PopularityRating(item.PopularityScore),
			Price:            pricing.Price(item.PopularityScore, item.Weight, gold),
		}
		if matches(priced, filter) {
			out = append(out, priced)
		}
	}

	logging.Business().CatalogPriced(ctx, len(out), gold)
	return out, nil
}

// matches aplica los límites inclusivos; minPop/maxPop comparan la escala 0-5
func matches(item entities.PricedItem, f interfaces.ProductFilter) bool {
	if f.MinPrice != nil && item.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && item.Price > *f.MaxPrice {
		return false
	}
	if f.MinPop != nil && item.PopularityScore5 < *f.MinPop {
		return false
	}
	if f.MaxPop != nil && item.PopularityScore5 > *f.MaxPop {
		return false
	}
	return true
}
