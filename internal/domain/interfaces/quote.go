package interfaces

import (
	"context"

	"gold-pricing-service/internal/domain/entities"
)

// QuoteFetcher obtiene la cotización del proveedor externo.
// Nunca devuelve error: ante cualquier fallo resuelve al valor de fallback configurado.
type QuoteFetcher interface {
	Fetch(ctx context.Context) entities.Quote
}

// QuoteStore mantiene la cotización actual en memoria
type QuoteStore interface {
	Get() (entities.Quote, bool)
	Set(quote entities.Quote)
}

// DurableCache persiste la última cotización entre reinicios (un único slot, sin historial)
type DurableCache interface {
	// Load returns false when no valid record exists; it never fails
	Load(ctx context.Context) (entities.Quote, bool)

	// Persist overwrites the slot. Callers treat failures as best-effort.
	Persist(ctx context.Context, quote entities.Quote) error

	Close() error
}

// QuoteService define los casos de uso de la cotización expuestos a la capa HTTP
type QuoteService interface {
	// GetCurrentPricePerGram devuelve la cotización vigente, refrescándola si está vencida
	GetCurrentPricePerGram(ctx context.Context) float64

	// Status devuelve la cotización almacenada; sólo consulta al proveedor si aún no hay ninguna
	Status(ctx context.Context) entities.QuoteStatus

	// Refresh fuerza una nueva consulta al proveedor
	Refresh(ctx context.Context) entities.Quote

	// Subscribe registra un listener de actualizaciones; la función devuelta lo da de baja
	Subscribe() (<-chan entities.QuoteStatus, func())
}
