package services

import (
	"context"
	"sync"
	"time"

	"gold-pricing-service/internal/domain/entities"

	"github.com/stretchr/testify/mock"
)

// MockQuoteFetcher es un mock del proveedor de cotizaciones
type MockQuoteFetcher struct {
	mock.Mock
}

func (m *MockQuoteFetcher) Fetch(ctx context.Context) entities.Quote {
	args := m.Called(ctx)
	return args.Get(0).(entities.Quote)
}

// MockDurableCache es un mock de la cache durable
type MockDurableCache struct {
	mock.Mock
}

func (m *MockDurableCache) Load(ctx context.Context) (entities.Quote, bool) {
	args := m.Called(ctx)
	return args.Get(0).(entities.Quote), args.Bool(1)
}

func (m *MockDurableCache) Persist(ctx context.Context, quote entities.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockDurableCache) Close() error {
	return m.Called().Error(0)
}

// MockQuoteService es un mock del servicio de cotización usado por el catálogo
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) GetCurrentPricePerGram(ctx context.Context) float64 {
	return m.Called(ctx).Get(0).(float64)
}

func (m *MockQuoteService) Status(ctx context.Context) entities.QuoteStatus {
	return m.Called(ctx).Get(0).(entities.QuoteStatus)
}

func (m *MockQuoteService) Refresh(ctx context.Context) entities.Quote {
	return m.Called(ctx).Get(0).(entities.Quote)
}

func (m *MockQuoteService) Subscribe() (<-chan entities.QuoteStatus, func()) {
	args := m.Called()
	return args.Get(0).(<-chan entities.QuoteStatus), args.Get(1).(func())
}

// fakeClock es un reloj manual seguro para uso concurrente
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
