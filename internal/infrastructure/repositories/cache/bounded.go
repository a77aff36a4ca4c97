package cache

import (
	"context"
	"fmt"
	"time"
)

// bounded corre fn en una goroutine y deja de esperarla al vencer el timeout.
// fn puede terminar después; su resultado se descarta.
func bounded[T any](ctx context.Context, timeout time.Duration, fn func() (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)

	go func() {
		v, err := fn()
		done <- result{value: v, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("%w after %v: %v", ErrCacheTimeout, timeout, ctx.Err())
	}
}
