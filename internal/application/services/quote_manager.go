package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"gold-pricing-service/internal/domain/entities"
	"gold-pricing-service/internal/domain/interfaces"
	"gold-pricing-service/internal/infrastructure/logging"
	"gold-pricing-service/internal/infrastructure/metrics"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultQuoteTTL     = 8 * time.Hour
	DefaultFetchTimeout = 15 * time.Second

	subscriberBuffer = 4
)

// QuoteManager decide cuándo reutilizar la cotización en memoria y cuándo pedir una nueva.
// Como mucho hay una consulta al proveedor en vuelo; mientras tanto, quien ya tiene
// un valor (aunque vencido) lo recibe sin esperar.
type QuoteManager struct {
	fetcher      interfaces.QuoteFetcher
	store        interfaces.QuoteStore
	durable      interfaces.DurableCache
	ttl          time.Duration
	fetchTimeout time.Duration
	now          func() time.Time

	group    singleflight.Group
	inFlight atomic.Bool

	subMu  sync.Mutex
	subs   map[uint64]chan entities.QuoteStatus
	nextID uint64
}

// Option configura un QuoteManager
type Option func(*QuoteManager)

// WithClock reemplaza time.Now (tests)
func WithClock(now func() time.Time) Option {
	return func(m *QuoteManager) {
		m.now = now
	}
}

// WithFetchTimeout acota la duración total de un refresh, reintentos incluidos
func WithFetchTimeout(d time.Duration) Option {
	return func(m *QuoteManager) {
		if d > 0 {
			m.fetchTimeout = d
		}
	}
}

// NewQuoteManager crea el manager. durable puede ser nil (sin persistencia).
func NewQuoteManager(fetcher interfaces.QuoteFetcher, store interfaces.QuoteStore, durable interfaces.DurableCache, ttl time.Duration, opts ...Option) *QuoteManager {
	if ttl <= 0 {
		ttl = DefaultQuoteTTL
	}
	m := &QuoteManager{
		fetcher:      fetcher,
		store:        store,
		durable:      durable,
		ttl:          ttl,
		fetchTimeout: DefaultFetchTimeout,
		now:          time.Now,
		subs:         make(map[uint64]chan entities.QuoteStatus),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var _ interfaces.QuoteService = (*QuoteManager)(nil)

// Warm siembra el store con la cotización durable, conservando su timestamp original
func (m *QuoteManager) Warm(ctx context.Context) bool {
	if m.durable == nil {
		return false
	}
	if _, ok := m.store.Get(); ok {
		return false
	}

	quote, ok := m.durable.Load(ctx)
	if !ok {
		return false
	}

	m.store.Set(quote)
	metrics.CurrentQuote.Set(quote.PricePerGram)
	logging.Business().QuoteServed(ctx, quote.PricePerGram, "durable", quote.IsFresh(m.now(), m.ttl))
	return true
}

// GetCurrentPricePerGram devuelve el precio vigente, refrescándolo si venció
func (m *QuoteManager) GetCurrentPricePerGram(ctx context.Context) float64 {
	return m.Current(ctx).PricePerGram
}

// Current devuelve la cotización completa según la política de TTL
func (m *QuoteManager) Current(ctx context.Context) entities.Quote {
	now := m.now()
	quote, ok := m.store.Get()

	switch {
	case ok && quote.IsFresh(now, m.ttl):
		metrics.RecordQuoteRequest("fresh")
		metrics.UpdateQuoteAge(quote.Age(now).Seconds())
		logging.Business().QuoteServed(ctx, quote.PricePerGram, "memory", true)
		return quote

	case ok && m.inFlight.Load():
		// ya hay un refresh en curso: preferimos el valor vencido a sumar latencia
		metrics.RecordQuoteRequest("stale")
		metrics.UpdateQuoteAge(quote.Age(now).Seconds())
		logging.Business().QuoteServed(ctx, quote.PricePerGram, "memory", false)
		return quote

	case ok:
		metrics.RecordQuoteRequest("stale")
	default:
		metrics.RecordQuoteRequest("empty")
	}

	return m.refresh(ctx, false)
}

// Status devuelve la cotización almacenada; sólo consulta al proveedor si el store está vacío
func (m *QuoteManager) Status(ctx context.Context) entities.QuoteStatus {
	quote, ok := m.store.Get()
	if !ok {
		quote = m.refresh(ctx, false)
	}
	return m.statusOf(quote)
}

// Peek devuelve el estado almacenado sin consultar al proveedor
func (m *QuoteManager) Peek() (entities.QuoteStatus, bool) {
	quote, ok := m.store.Get()
	if !ok {
		return entities.QuoteStatus{}, false
	}
	return m.statusOf(quote), true
}

// Refresh fuerza una consulta, o se suma a la que esté en vuelo
func (m *QuoteManager) Refresh(ctx context.Context) entities.Quote {
	return m.refresh(ctx, true)
}

// refresh consulta al proveedor bajo singleflight. Sin force, un líder que encuentra
// una cotización vigente (dejada por el refresh anterior) la devuelve sin consultar.
func (m *QuoteManager) refresh(ctx context.Context, force bool) entities.Quote {
	leader := false

	v, _, shared := m.group.Do(entities.QuoteKey, func() (interface{}, error) {
		leader = true
		m.inFlight.Store(true)
		defer m.inFlight.Store(false)

		if !force {
			if quote, ok := m.store.Get(); ok && quote.IsFresh(m.now(), m.ttl) {
				return quote, nil
			}
		}

		// el refresh no se corta si el request que lo disparó se cancela
		detached := context.WithoutCancel(ctx)
		fetchCtx, cancel := context.WithTimeout(detached, m.fetchTimeout)
		defer cancel()

		fetched := m.fetcher.Fetch(fetchCtx)
		quote := entities.NewQuote(fetched.PricePerGram, m.now())

		m.store.Set(quote)
		// el fetch pudo agotar fetchCtx; la cache durable acota su propia escritura
		m.persist(detached, quote)
		m.publish(quote)

		return quote, nil
	})

	if shared && !leader {
		metrics.RecordCollapsedRefresh()
	}

	return v.(entities.Quote)
}

// persist es best-effort: un fallo se registra y no afecta al request
func (m *QuoteManager) persist(ctx context.Context, quote entities.Quote) {
	if m.durable == nil {
		return
	}
	if err := m.durable.Persist(ctx, quote); err != nil {
		logging.Cache().CacheError(ctx, "durable", logging.CacheOpPersist, entities.QuoteKey, err)
	}
}

func (m *QuoteManager) statusOf(quote entities.Quote) entities.QuoteStatus {
	return entities.QuoteStatus{
		PricePerGram:       quote.PricePerGram,
		LastUpdatedEpochMs: quote.EpochMillis(),
		Fresh:              quote.IsFresh(m.now(), m.ttl),
	}
}

// Subscribe registra un listener de refrescos. Las actualizaciones se descartan
// si el listener no consume a tiempo.
func (m *QuoteManager) Subscribe() (<-chan entities.QuoteStatus, func()) {
	ch := make(chan entities.QuoteStatus, subscriberBuffer)

	m.subMu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = ch
	m.subMu.Unlock()
	metrics.AddStreamSubscribers(1)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.subMu.Lock()
			if _, ok := m.subs[id]; ok {
				delete(m.subs, id)
				close(ch)
			}
			m.subMu.Unlock()
			metrics.AddStreamSubscribers(-1)
		})
	}
	return ch, cancel
}

func (m *QuoteManager) publish(quote entities.Quote) {
	status := m.statusOf(quote)

	m.subMu.Lock()
	defer m.subMu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- status:
		default:
			metrics.RecordStreamDrop()
		}
	}
}

// Close cierra todas las suscripciones abiertas
func (m *QuoteManager) Close() {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	for id, ch := range m.subs {
		close(ch)
		delete(m.subs, id)
	}
}
