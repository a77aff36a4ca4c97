package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gold-pricing-service/internal/domain/entities"
	"gold-pricing-service/internal/domain/interfaces"
	"gold-pricing-service/internal/infrastructure/repositories/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testTTL = 8 * time.Hour

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newManager(fetcher *MockQuoteFetcher, durable *MockDurableCache, clock *fakeClock) *QuoteManager {
	var d interfaces.DurableCache
	if durable != nil {
		d = durable
	}
	return NewQuoteManager(fetcher, cache.NewMemoryQuoteStore(), d, testTTL, WithClock(clock.Now))
}

func fallbackPerGram() float64 {
	ounce := 2400.0
	return ounce / entities.GramsPerTroyOunce
}

// ===== TTL =====

func TestQuoteManager_FirstCallFetchesAndPersists(t *testing.T) {
	clock := newFakeClock(t0)
	fetcher := new(MockQuoteFetcher)
	durable := new(MockDurableCache)

	fetcher.On("Fetch", mock.Anything).Return(entities.NewQuote(80.5, t0)).Once()
	durable.On("Persist", mock.Anything, entities.NewQuote(80.5, t0)).Return(nil).Once()

	m := newManager(fetcher, durable, clock)

	assert.Equal(t, 80.5, m.GetCurrentPricePerGram(context.Background()))
	fetcher.AssertExpectations(t)
	durable.AssertExpectations(t)
}

func TestQuoteManager_IdempotentWithinTTL(t *testing.T) {
	clock := newFakeClock(t0)
	fetcher := new(MockQuoteFetcher)
	fetcher.On("Fetch", mock.Anything).Return(entities.NewQuote(80.5, t0)).Once()

	m := newManager(fetcher, nil, clock)
	ctx := context.Background()

	first := m.GetCurrentPricePerGram(ctx)
	clock.Advance(time.Hour)
	second := m.GetCurrentPricePerGram(ctx)

	assert.Equal(t, first, second)
	fetcher.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestQuoteManager_StalenessTransition(t *testing.T) {
	clock := newFakeClock(t0)
	fetcher := new(MockQuoteFetcher)
	fetcher.On("Fetch", mock.Anything).Return(entities.NewQuote(80, t0)).Once()
	fetcher.On("Fetch", mock.Anything).Return(entities.NewQuote(85, t0)).Once()

	m := newManager(fetcher, nil, clock)
	ctx := context.Background()

	assert.Equal(t, 80.0, m.GetCurrentPricePerGram(ctx))

	clock.Advance(testTTL - time.Millisecond)
	assert.Equal(t, 80.0, m.GetCurrentPricePerGram(ctx))
	fetcher.AssertNumberOfCalls(t, "Fetch", 1)

	clock.Advance(2 * time.Millisecond)
	assert.Equal(t, 85.0, m.GetCurrentPricePerGram(ctx))
	fetcher.AssertNumberOfCalls(t, "Fetch", 2)
}

func TestQuoteManager_StampsFetchCompletionTime(t *testing.T) {
	clock := newFakeClock(t0)
	fetcher := new(MockQuoteFetcher)
	fetcher.On("Fetch", mock.Anything).
		Run(func(args mock.Arguments) { clock.Advance(3 * time.Second) }).
		Return(entities.NewQuote(80, time.Time{})).Once()

	m := newManager(fetcher, nil, clock)

	q := m.Current(context.Background())
	assert.Equal(t, t0.Add(3*time.Second), q.FetchedAt)
}

// ===== CACHE DURABLE =====

func TestQuoteManager_WarmStartSkipsFetch(t *testing.T) {
	clock := newFakeClock(t0)
	fetcher := new(MockQuoteFetcher)
	durable := new(MockDurableCache)
	durable.On("Load", mock.Anything).Return(entities.NewQuote(82.5, t0.Add(-time.Hour)), true).Once()

	m := newManager(fetcher, durable, clock)
	require.True(t, m.Warm(context.Background()))

	assert.Equal(t, 82.5, m.GetCurrentPricePerGram(context.Background()))
	fetcher.AssertNotCalled(t, "Fetch", mock.Anything)

	// el timestamp original se conserva: vence a t0-1h+TTL
	clock.Advance(testTTL - time.Hour)
	fetcher.On("Fetch", mock.Anything).Return(entities.NewQuote(90, t0)).Once()
	durable.On("Persist", mock.Anything, mock.Anything).Return(nil).Once()

	assert.Equal(t, 90.0, m.GetCurrentPricePerGram(context.Background()))
	fetcher.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestQuoteManager_WarmStartFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gold-cache.json")
	now := time.Now()
	content := fmt.Sprintf(`{"pricePerGramUSD": 82.5, "lastUpdated": %d}`, now.Add(-time.Hour).UnixMilli())
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	fetcher := new(MockQuoteFetcher)
	m := NewQuoteManager(fetcher, cache.NewMemoryQuoteStore(), cache.NewFileQuoteCache(path, time.Second), testTTL)

	require.True(t, m.Warm(context.Background()))
	assert.Equal(t, 82.5, m.GetCurrentPricePerGram(context.Background()))
	fetcher.AssertNotCalled(t, "Fetch", mock.Anything)
}

func TestQuoteManager_CorruptCacheFileTriggersFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gold-cache.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pricePerGramUSD": `), 0o644))

	fetcher := new(MockQuoteFetcher)
	fetcher.On("Fetch", mock.Anything).Return(entities.NewQuote(fallbackPerGram(), time.Now())).Once()

	durable := cache.NewFileQuoteCache(path, time.Second)
	m := NewQuoteManager(fetcher, cache.NewMemoryQuoteStore(), durable, testTTL)

	assert.False(t, m.Warm(context.Background()))
	assert.Equal(t, fallbackPerGram(), m.GetCurrentPricePerGram(context.Background()))
	fetcher.AssertNumberOfCalls(t, "Fetch", 1)

	// el fallback también se persiste
	reloaded, ok := cache.NewFileQuoteCache(path, time.Second).Load(context.Background())
	require.True(t, ok)
	assert.Equal(t, fallbackPerGram(), reloaded.PricePerGram)
}

func TestQuoteManager_StaleDurableQuoteIsRefetched(t *testing.T) {
	clock := newFakeClock(t0)
	fetcher := new(MockQuoteFetcher)
	durable := new(MockDurableCache)
	durable.On("Load", mock.Anything).Return(entities.NewQuote(70, t0.Add(-9*time.Hour)), true).Once()
	durable.On("Persist", mock.Anything, mock.Anything).Return(nil).Once()
	fetcher.On("Fetch", mock.Anything).Return(entities.NewQuote(81, t0)).Once()

	m := newManager(fetcher, durable, clock)
	require.True(t, m.Warm(context.Background()))

	assert.Equal(t, 81.0, m.GetCurrentPricePerGram(context.Background()))
}

func TestQuoteManager_PersistFailureIsSwallowed(t *testing.T) {
	clock := newFakeClock(t0)
	fetcher := new(MockQuoteFetcher)
	durable := new(MockDurableCache)
	fetcher.On("Fetch", mock.Anything).Return(entities.NewQuote(80, t0)).Once()
	durable.On("Persist", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	m := newManager(fetcher, durable, clock)

	assert.Equal(t, 80.0, m.GetCurrentPricePerGram(context.Background()))
	clock.Advance(time.Minute)
	assert.Equal(t, 80.0, m.GetCurrentPricePerGram(context.Background()))
	fetcher.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestQuoteManager_WarmDoesNotOverrideExistingQuote(t *testing.T) {
	clock := newFakeClock(t0)
	fetcher := new(MockQuoteFetcher)
	durable := new(MockDurableCache)
	fetcher.On("Fetch", mock.Anything).Return(entities.NewQuote(80, t0)).Once()
	durable.On("Persist", mock.Anything, mock.Anything).Return(nil)

	m := newManager(fetcher, durable, clock)
	m.Refresh(context.Background())

	assert.False(t, m.Warm(context.Background()))
	durable.AssertNotCalled(t, "Load", mock.Anything)
}

// ===== CONCURRENCIA =====

func TestQuoteManager_ConcurrentEmptyStoreSingleFetch(t *testing.T) {
	clock := newFakeClock(t0)
	fetcher := new(MockQuoteFetcher)
	release := make(chan struct{})
	fetcher.On("Fetch", mock.Anything).
		Run(func(args mock.Arguments) { <-release }).
		Return(entities.NewQuote(80, t0)).Once()

	m := newManager(fetcher, nil, clock)

	const callers = 50
	results := make([]float64, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = m.GetCurrentPricePerGram(context.Background())
		}(i)
	}

	assert.Eventually(t, m.inFlight.Load, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	fetcher.AssertNumberOfCalls(t, "Fetch", 1)
	for _, r := range results {
		assert.Equal(t, 80.0, r)
	}
}

func TestQuoteManager_StaleReadersDoNotWaitForInFlightFetch(t *testing.T) {
	clock := newFakeClock(t0)
	fetcher := new(MockQuoteFetcher)
	fetcher.On("Fetch", mock.Anything).Return(entities.NewQuote(80, t0)).Once()

	m := newManager(fetcher, nil, clock)
	m.Refresh(context.Background())
	clock.Advance(testTTL + time.Second)

	release := make(chan struct{})
	fetcher.On("Fetch", mock.Anything).
		Run(func(args mock.Arguments) { <-release }).
		Return(entities.NewQuote(95, t0)).Once()

	trigger := make(chan float64, 1)
	go func() {
		trigger <- m.GetCurrentPricePerGram(context.Background())
	}()
	require.Eventually(t, m.inFlight.Load, time.Second, time.Millisecond)

	// mientras el refresh está bloqueado, otros lectores reciben el valor vencido
	assert.Equal(t, 80.0, m.GetCurrentPricePerGram(context.Background()))
	assert.False(t, m.Status(context.Background()).Fresh)

	close(release)
	assert.Equal(t, 95.0, <-trigger)
	assert.Equal(t, 95.0, m.GetCurrentPricePerGram(context.Background()))
	fetcher.AssertNumberOfCalls(t, "Fetch", 2)
}

func TestQuoteManager_FetchSurvivesCallerCancellation(t *testing.T) {
	clock := newFakeClock(t0)
	fetcher := new(MockQuoteFetcher)
	fetcher.On("Fetch", mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			assert.NoError(t, ctx.Err())
		}).
		Return(entities.NewQuote(80, t0)).Once()

	m := newManager(fetcher, nil, clock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, 80.0, m.GetCurrentPricePerGram(ctx))
}

func TestQuoteManager_FallbackAfterFetchTimeoutIsPersisted(t *testing.T) {
	mr := miniredis.RunT(t)
	durable := cache.NewRedisQuoteCache(mr.Addr(), "", 0, "gold:quote", time.Second)
	t.Cleanup(func() { _ = durable.Close() })

	clock := newFakeClock(t0)
	fetcher := new(MockQuoteFetcher)
	// el proveedor cuelga hasta agotar el fetch timeout y resuelve al fallback
	fetcher.On("Fetch", mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(entities.NewQuote(fallbackPerGram(), t0)).Once()

	m := NewQuoteManager(fetcher, cache.NewMemoryQuoteStore(), durable, testTTL,
		WithClock(clock.Now), WithFetchTimeout(50*time.Millisecond))

	assert.Equal(t, fallbackPerGram(), m.GetCurrentPricePerGram(context.Background()))
	require.True(t, mr.Exists("gold:quote"))

	loaded, ok := durable.Load(context.Background())
	require.True(t, ok)
	assert.Equal(t, fallbackPerGram(), loaded.PricePerGram)
	assert.Equal(t, t0.UnixMilli(), loaded.EpochMillis())
}

func TestQuoteManager_PersistContextOutlivesFetchTimeout(t *testing.T) {
	clock := newFakeClock(t0)
	fetcher := new(MockQuoteFetcher)
	durable := new(MockDurableCache)

	fetcher.On("Fetch", mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(entities.NewQuote(fallbackPerGram(), t0)).Once()

	var persistErr error
	durable.On("Persist", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			persistErr = args.Get(0).(context.Context).Err()
		}).
		Return(nil).Once()

	m := NewQuoteManager(fetcher, cache.NewMemoryQuoteStore(), durable, testTTL,
		WithClock(clock.Now), WithFetchTimeout(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m.GetCurrentPricePerGram(ctx)
	durable.AssertExpectations(t)
	assert.NoError(t, persistErr)
}

func TestQuoteManager_LeaderSkipsFetchWhenQuoteAlreadyFresh(t *testing.T) {
	clock := newFakeClock(t0)
	fetcher := new(MockQuoteFetcher)
	m := newManager(fetcher, nil, clock)

	// otro líder acaba de dejar una cotización vigente
	m.store.Set(entities.NewQuote(80, t0))

	assert.Equal(t, 80.0, m.refresh(context.Background(), false).PricePerGram)
	fetcher.AssertNotCalled(t, "Fetch", mock.Anything)

	// vencida, el líder sí consulta
	clock.Advance(testTTL)
	fetcher.On("Fetch", mock.Anything).Return(entities.NewQuote(81, t0)).Once()
	assert.Equal(t, 81.0, m.refresh(context.Background(), false).PricePerGram)

	// Refresh forzado ignora la cotización vigente
	fetcher.On("Fetch", mock.Anything).Return(entities.NewQuote(82, t0)).Once()
	assert.Equal(t, 82.0, m.Refresh(context.Background()).PricePerGram)
	fetcher.AssertNumberOfCalls(t, "Fetch", 2)
}

// ===== STATUS / REFRESH / SUBSCRIBE =====

func TestQuoteManager_Status(t *testing.T) {
	clock := newFakeClock(t0)
	fetcher := new(MockQuoteFetcher)
	fetcher.On("Fetch", mock.Anything).Return(entities.NewQuote(80.456, t0)).Once()

	m := newManager(fetcher, nil, clock)

	status := m.Status(context.Background())
	assert.Equal(t, 80.456, status.PricePerGram)
	assert.Equal(t, t0.UnixMilli(), status.LastUpdatedEpochMs)
	assert.True(t, status.Fresh)

	// con valor almacenado no consulta aunque esté vencido
	clock.Advance(testTTL)
	status = m.Status(context.Background())
	assert.False(t, status.Fresh)
	assert.Equal(t, 80.456, status.PricePerGram)
	fetcher.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestQuoteManager_PeekNeverFetches(t *testing.T) {
	clock := newFakeClock(t0)
	fetcher := new(MockQuoteFetcher)
	m := newManager(fetcher, nil, clock)

	_, ok := m.Peek()
	assert.False(t, ok)
	fetcher.AssertNotCalled(t, "Fetch", mock.Anything)

	fetcher.On("Fetch", mock.Anything).Return(entities.NewQuote(80, t0)).Once()
	m.Refresh(context.Background())

	status, ok := m.Peek()
	require.True(t, ok)
	assert.Equal(t, 80.0, status.PricePerGram)
	assert.True(t, status.Fresh)
}

func TestQuoteManager_RefreshIgnoresTTL(t *testing.T) {
	clock := newFakeClock(t0)
	fetcher := new(MockQuoteFetcher)
	fetcher.On("Fetch", mock.Anything).Return(entities.NewQuote(80, t0)).Once()
	fetcher.On("Fetch", mock.Anything).Return(entities.NewQuote(81, t0)).Once()

	m := newManager(fetcher, nil, clock)

	assert.Equal(t, 80.0, m.Refresh(context.Background()).PricePerGram)
	assert.Equal(t, 81.0, m.Refresh(context.Background()).PricePerGram)
	fetcher.AssertNumberOfCalls(t, "Fetch", 2)
}

func TestQuoteManager_SubscribeReceivesRefreshes(t *testing.T) {
	clock := newFakeClock(t0)
	fetcher := new(MockQuoteFetcher)
	fetcher.On("Fetch", mock.Anything).Return(entities.NewQuote(80, t0))

	m := newManager(fetcher, nil, clock)
	updates, cancel := m.Subscribe()

	m.Refresh(context.Background())

	select {
	case status := <-updates:
		assert.Equal(t, 80.0, status.PricePerGram)
		assert.True(t, status.Fresh)
	case <-time.After(time.Second):
		t.Fatal("expected a status update")
	}

	cancel()
	cancel()
	_, open := <-updates
	assert.False(t, open)
}

func TestQuoteManager_SlowSubscriberDoesNotBlock(t *testing.T) {
	clock := newFakeClock(t0)
	fetcher := new(MockQuoteFetcher)
	fetcher.On("Fetch", mock.Anything).Return(entities.NewQuote(80, t0))

	m := newManager(fetcher, nil, clock)
	_, cancel := m.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			m.Refresh(context.Background())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh blocked on a full subscriber")
	}
}

func TestQuoteManager_CloseEndsSubscriptions(t *testing.T) {
	m := newManager(new(MockQuoteFetcher), nil, newFakeClock(t0))
	updates, cancel := m.Subscribe()

	m.Close()
	_, open := <-updates
	assert.False(t, open)

	assert.NotPanics(t, cancel)
}
