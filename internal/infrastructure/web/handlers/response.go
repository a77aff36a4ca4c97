package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"gold-pricing-service/internal/application/dto"
	"gold-pricing-service/internal/infrastructure/logging"
)

// writeJSON escribe una respuesta JSON preservando el contexto del request
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.ErrorWithError(ctx, "Failed to encode JSON response", err, logging.Fields{
			logging.FieldHTTPStatusCode: statusCode,
		})
	}
}

// writeError escribe un dto.ErrorResponse con el código HTTP como code
func writeError(ctx context.Context, w http.ResponseWriter, statusCode int, errorCode, message string) {
	writeJSON(ctx, w, statusCode, dto.NewErrorResponseWithCode(errorCode, message, strconv.Itoa(statusCode)))
}
