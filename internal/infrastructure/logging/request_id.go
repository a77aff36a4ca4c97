package logging

import (
	"github.com/google/uuid"
)

// RequestIDHeader es el header usado para propagar el identificador del request
const RequestIDHeader = "X-Request-ID"

// GenerateRequestID genera un identificador UUIDv4 para el request
func GenerateRequestID() string {
	return uuid.NewString()
}

// NormalizeRequestID acepta un ID entrante sólo si es imprimible y razonablemente corto
func NormalizeRequestID(incoming string) string {
	if incoming == "" || len(incoming) > 128 {
		return GenerateRequestID()
	}
	for _, r := range incoming {
		if r < 0x21 || r > 0x7e {
			return GenerateRequestID()
		}
	}
	return incoming
}
