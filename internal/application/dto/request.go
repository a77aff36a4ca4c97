package dto

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"gold-pricing-service/internal/domain/interfaces"
)

// Query parameters aceptados por GET /products
const (
	ParamMinPrice = "minPrice"
	ParamMaxPrice = "maxPrice"
	ParamMinPop   = "minPop"
	ParamMaxPop   = "maxPop"
)

// ProductsRequest representa los filtros opcionales de GET /products
type ProductsRequest struct {
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
	MinPop   *float64 `json:"minPop,omitempty"`
	MaxPop   *float64 `json:"maxPop,omitempty"`
}

// InvalidParamError indica un query param que no es un número finito
type InvalidParamError struct {
	Param string
	Value string
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: expected a number", e.Value, e.Param)
}

// NewProductsRequest parsea los filtros desde los query params.
// Un parámetro ausente o vacío no filtra.
func NewProductsRequest(query url.Values) (*ProductsRequest, error) {
	req := &ProductsRequest{}

	targets := []struct {
		name string
		dst  **float64
	}{
		{ParamMinPrice, &req.MinPrice},
		{ParamMaxPrice, &req.MaxPrice},
		{ParamMinPop, &req.MinPop},
		{ParamMaxPop, &req.MaxPop},
	}

	for _, t := range targets {
		raw := strings.TrimSpace(query.Get(t.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &InvalidParamError{Param: t.name, Value: raw}
		}
		*t.dst = &v
	}

	return req, nil
}

// ToFilter convierte la request al filtro del dominio
func (r *ProductsRequest) ToFilter() interfaces.ProductFilter {
	return interfaces.ProductFilter{
		MinPrice: r.MinPrice,
		MaxPrice: r.MaxPrice,
		MinPop:   r.MinPop,
		MaxPop:   r.MaxPop,
	}
}
