package handlers

import (
	"net/http"

	"gold-pricing-service/internal/application/dto"
	"gold-pricing-service/internal/domain/entities"
	"gold-pricing-service/internal/domain/interfaces"
	"gold-pricing-service/internal/infrastructure/logging"
)

// GoldHandler expone la cotización del oro
type GoldHandler struct {
	quotes interfaces.QuoteService
	mapper *dto.ProductMapper
}

// NewGoldHandler crea el handler de la cotización
func NewGoldHandler(quotes interfaces.QuoteService) *GoldHandler {
	return &GoldHandler{
		quotes: quotes,
		mapper: dto.NewProductMapper(),
	}
}

// GetGold godoc
// @Summary Current gold quote
// @Description Returns the stored gold quote. Only queries the provider when no quote has been stored yet.
// @Tags gold
// @Produce json
// @Success 200 {object} dto.GoldResponse "Current quote"
// @Router /gold [get]
func (h *GoldHandler) GetGold(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := h.quotes.Status(ctx)
	writeJSON(ctx, w, http.StatusOK, h.mapper.ToGoldResponse(status))
}

// RefreshGold godoc
// @Summary Refresh gold quote
// @Description Forces a provider query, joining any refresh already in flight.
// @Tags gold
// @Produce json
// @Success 200 {object} dto.GoldResponse "Refreshed quote"
// @Router /gold/refresh [post]
func (h *GoldHandler) RefreshGold(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	quote := h.quotes.Refresh(ctx)
	logging.Info(ctx, "Gold quote refreshed on demand", logging.NewFieldBuilder().
		WithQuote(quote.PricePerGram, "refresh").
		Build())

	writeJSON(ctx, w, http.StatusOK, h.mapper.ToGoldResponse(entities.QuoteStatus{
		PricePerGram:       quote.PricePerGram,
		LastUpdatedEpochMs: quote.EpochMillis(),
		Fresh:              true,
	}))
}
