package ratelimit

import (
	"math"
	"sync"
	"time"
)

// TokenBucket es un limitador de token bucket con recarga continua
type TokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	tokens     float64
	refillRate float64 // tokens por segundo
	lastRefill time.Time
	lastSeen   time.Time
	now        func() time.Time
}

// NewTokenBucket crea un bucket lleno
func NewTokenBucket(capacity, refillRate int) *TokenBucket {
	return newTokenBucket(capacity, refillRate, time.Now)
}

func newTokenBucket(capacity, refillRate int, now func() time.Time) *TokenBucket {
	t := now()
	return &TokenBucket{
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		refillRate: float64(refillRate),
		lastRefill: t,
		lastSeen:   t,
		now:        now,
	}
}

// Allow consume un token si hay disponible
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	tb.lastSeen = tb.lastRefill
	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// Tokens devuelve los tokens enteros disponibles
func (tb *TokenBucket) Tokens() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	return int(math.Floor(tb.tokens))
}

// idleSince indica si el bucket no se usa desde cutoff
func (tb *TokenBucket) idleSince(cutoff time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.lastSeen.Before(cutoff)
}

// refill requiere el lock tomado
func (tb *TokenBucket) refill() {
	now := tb.now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}
	tb.tokens = math.Min(tb.capacity, tb.tokens+elapsed*tb.refillRate)
	tb.lastRefill = now
}

// ClientLimiter mantiene un bucket por cliente
type ClientLimiter struct {
	mu              sync.Mutex
	buckets         map[string]*TokenBucket
	capacity        int
	refillRate      int
	now             func() time.Time
	lastCleanup     time.Time
	cleanupInterval time.Duration
	idleTTL         time.Duration
}

// NewClientLimiter crea el limitador por cliente
func NewClientLimiter(capacity, refillRate int) *ClientLimiter {
	return newClientLimiter(capacity, refillRate, time.Now)
}

func newClientLimiter(capacity, refillRate int, now func() time.Time) *ClientLimiter {
	return &ClientLimiter{
		buckets:         make(map[string]*TokenBucket),
		capacity:        capacity,
		refillRate:      refillRate,
		now:             now,
		lastCleanup:     now(),
		cleanupInterval: 10 * time.Minute,
		idleTTL:         30 * time.Minute,
	}
}

// Allow consume un token del bucket del cliente; devuelve también los tokens restantes
func (cl *ClientLimiter) Allow(clientID string) (bool, int) {
	bucket := cl.bucket(clientID)
	allowed := bucket.Allow()
	return allowed, bucket.Tokens()
}

// Clients devuelve la cantidad de buckets activos
func (cl *ClientLimiter) Clients() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.buckets)
}

func (cl *ClientLimiter) bucket(clientID string) *TokenBucket {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	cl.maybeCleanup()

	if b, ok := cl.buckets[clientID]; ok {
		return b
	}
	b := newTokenBucket(cl.capacity, cl.refillRate, cl.now)
	cl.buckets[clientID] = b
	return b
}

// maybeCleanup elimina buckets inactivos; requiere el lock tomado
func (cl *ClientLimiter) maybeCleanup() {
	now := cl.now()
	if now.Sub(cl.lastCleanup) < cl.cleanupInterval {
		return
	}

	cutoff := now.Add(-cl.idleTTL)
	for id, b := range cl.buckets {
		if b.idleSince(cutoff) {
			delete(cl.buckets, id)
		}
	}
	cl.lastCleanup = now
}
