package cache

import "errors"

var (
	ErrCacheTimeout  = errors.New("durable cache operation timed out")
	ErrInvalidRecord = errors.New("invalid durable cache record")
	ErrInvalidQuote  = errors.New("refusing to persist an invalid quote")
)
