package dto

import (
	"time"
)

// ProductResponse represents a priced catalog item
// @Description Catalog item priced against the current gold quote
type ProductResponse struct {
	ID               int               `json:"id" example:"1"`
	Name             string            `json:"name" example:"Engagement Ring 1"`
	Images           map[string]string `json:"images"`                         // Image URL per color variant
	Weight           float64           `json:"weight" example:"2.1"`           // Grams
	PopularityScore  float64           `json:"popularityScore" example:"0.85"` // Raw popularity in [0,1]
	PopularityScore5 float64           `json:"popularityScore5" example:"4.3"` // Popularity on a 0-5 scale, one decimal
	Price            float64           `json:"price" example:"299.8"`          // USD, two decimals
}

// GoldResponse represents the response from /gold
// @Description Current gold quote in USD per gram
type GoldResponse struct {
	GoldPricePerGramUSD float64 `json:"goldPricePerGramUSD" example:"77.16"` // Rounded to cents
	LastUpdated         int64   `json:"lastUpdated" example:"1717243200000"` // Epoch milliseconds of the fetch
}

// GoldStatusMessage is pushed to /gold/stream subscribers
// @Description Gold quote update pushed over the websocket stream
type GoldStatusMessage struct {
	GoldPricePerGramUSD float64 `json:"goldPricePerGramUSD" example:"77.16"`
	LastUpdated         int64   `json:"lastUpdated" example:"1717243200000"`
	Fresh               bool    `json:"fresh" example:"true"`
}

// ErrorResponse represents a standard error response for endpoints
// @Description Standard error response for endpoints
type ErrorResponse struct {
	Error   string `json:"error" example:"INVALID_PARAMETER" validate:"required"`          // Main error message
	Message string `json:"message,omitempty" example:"invalid value \"abc\" for minPrice"` // Detailed error description
	Code    string `json:"code,omitempty" example:"400"`                                   // HTTP error code or internal code
}

// HealthResponse represents the health check response with service status
// @Description Health check response with service status
type HealthResponse struct {
	Status    string            `json:"status" example:"healthy" validate:"required" enums:"healthy,degraded,unhealthy"` // Overall service status
	Timestamp time.Time         `json:"timestamp" example:"2025-06-01T10:30:00Z" validate:"required"`                    // When the health check was performed
	Services  map[string]string `json:"services,omitempty" example:"quote:fresh,cache:file"`                             // Individual service statuses
}

// NewErrorResponse creates a new error response
func NewErrorResponse(error string, message string) *ErrorResponse {
	return &ErrorResponse{
		Error:   error,
		Message: message,
	}
}

// NewErrorResponseWithCode creates an error response with code
func NewErrorResponseWithCode(error string, message string, code string) *ErrorResponse {
	return &ErrorResponse{
		Error:   error,
		Message: message,
		Code:    code,
	}
}

// NewHealthResponse creates a health check response
func NewHealthResponse(status string, services map[string]string) *HealthResponse {
	return &HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Services:  services,
	}
}
