package goldapi

import "errors"

var (
	// ErrTransientUpstream cubre errores de red, timeouts, 5xx y 429; se reintentan
	ErrTransientUpstream = errors.New("transient goldapi failure")
	// ErrUpstreamRejected cubre el resto de respuestas no-2xx; no se reintentan
	ErrUpstreamRejected = errors.New("goldapi rejected the request")
	// ErrMalformedResponse indica un payload sin precio utilizable
	ErrMalformedResponse = errors.New("malformed goldapi response")
	// ErrMissingAPIKey evita llamar al proveedor sin credenciales
	ErrMissingAPIKey = errors.New("goldapi key not configured")
)
