package dto

import (
	"gold-pricing-service/internal/domain/entities"
	"gold-pricing-service/internal/domain/pricing"
)

// ProductMapper maneja la conversión entre entidades del dominio y DTOs
type ProductMapper struct{}

// NewProductMapper crea una nueva instancia del mapper
func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

// ToProductsResponse convierte el catálogo valuado a DTOs, conservando el orden del catálogo
func (m *ProductMapper) ToProductsResponse(items []entities.PricedItem) []ProductResponse {
	out := make([]ProductResponse, len(items))
	for i, item := range items {
		out[i] = m.toProductResponse(item)
	}
	return out
}

func (m *ProductMapper) toProductResponse(item entities.PricedItem) ProductResponse {
	images := item.Images
	if images == nil {
		images = map[string]string{}
	}
	return ProductResponse{
		ID:               item.ID,
		Name:             item.Name,
		Images:           images,
		Weight:           item.Weight,
		PopularityScore:  item.PopularityScore,
		PopularityScore5: item.PopularityScore5,
		Price:            item.Price,
	}
}

// ToGoldResponse convierte el estado de la cotización al formato de /gold
func (m *ProductMapper) ToGoldResponse(status entities.QuoteStatus) *GoldResponse {
	return &GoldResponse{
		GoldPricePerGramUSD: pricing.Round2(status.PricePerGram),
		LastUpdated:         status.LastUpdatedEpochMs,
	}
}

// ToGoldStatusMessage convierte el estado al mensaje del stream
func (m *ProductMapper) ToGoldStatusMessage(status entities.QuoteStatus) GoldStatusMessage {
	return GoldStatusMessage{
		GoldPricePerGramUSD: pricing.Round2(status.PricePerGram),
		LastUpdated:         status.LastUpdatedEpochMs,
		Fresh:               status.Fresh,
	}
}
