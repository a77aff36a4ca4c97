package cache

import (
	"sync"

	"gold-pricing-service/internal/domain/entities"
	"gold-pricing-service/internal/domain/interfaces"
)

// MemoryQuoteStore guarda la cotización actual en un único slot.
// Precio y timestamp se escriben juntos bajo el mismo lock.
type MemoryQuoteStore struct {
	mu    sync.RWMutex
	quote entities.Quote
	set   bool
}

// NewMemoryQuoteStore crea un store vacío
func NewMemoryQuoteStore() interfaces.QuoteStore {
	return &MemoryQuoteStore{}
}

// Get devuelve la cotización y false si todavía no hay ninguna
func (s *MemoryQuoteStore) Get() (entities.Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quote, s.set
}

// Set reemplaza la cotización completa
func (s *MemoryQuoteStore) Set(quote entities.Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quote = quote
	s.set = true
}
