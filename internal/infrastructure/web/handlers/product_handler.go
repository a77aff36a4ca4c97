package handlers

import (
	"errors"
	"net/http"

	"gold-pricing-service/internal/application/dto"
	"gold-pricing-service/internal/domain/interfaces"
	"gold-pricing-service/internal/infrastructure/logging"
)

// ProductHandler maneja el catálogo valuado
type ProductHandler struct {
	products interfaces.ProductService
	mapper   *dto.ProductMapper
}

// NewProductHandler crea el handler del catálogo
func NewProductHandler(products interfaces.ProductService) *ProductHandler {
	return &ProductHandler{
		products: products,
		mapper:   dto.NewProductMapper(),
	}
}

// GetProducts godoc
// @Summary Priced catalog
// @Description Prices the catalog against the current gold quote. All filters are inclusive; minPop and maxPop use the 0-5 scale.
// @Tags products
// @Produce json
// @Param minPrice query number false "Minimum price (USD)"
// @Param maxPrice query number false "Maximum price (USD)"
// @Param minPop query number false "Minimum popularity (0-5)"
// @Param maxPop query number false "Maximum popularity (0-5)"
// @Success 200 {array} dto.ProductResponse "Priced items"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter value"
// @Failure 500 {object} dto.ErrorResponse "Failed to fetch products"
// @Router /products [get]
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	request, err := dto.NewProductsRequest(r.URL.Query())
	if err != nil {
		var invalid *dto.InvalidParamError
		if errors.As(err, &invalid) {
			logging.Business().ValidationFailed(ctx, invalid.Param, invalid.Error())
		}
		writeError(ctx, w, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
		return
	}

	items, err := h.products.ListProducts(ctx, request.ToFilter())
	if err != nil {
		logging.ErrorWithError(ctx, "GET /products failed", err, nil)
		writeError(ctx, w, http.StatusInternalServerError, "PRODUCTS_ERROR", "Failed to fetch products")
		return
	}

	writeJSON(ctx, w, http.StatusOK, h.mapper.ToProductsResponse(items))
}
