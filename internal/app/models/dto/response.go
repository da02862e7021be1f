package dto

import "time"

// APIResponse is the standard envelope for successful responses
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Message   string       `json:"message,omitempty" example:"Operation completed successfully"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse wraps data in a successful envelope
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewMessageResponse creates a successful envelope carrying only a message
func NewMessageResponse(message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// HealthResponse reports per-table database health
type HealthResponse struct {
	Status string        `json:"status" example:"ok"`
	Tables []TableHealth `json:"tables"`
}

// TableHealth is the row count (or error) of one table
type TableHealth struct {
	Table string `json:"table" example:"subjects"`
	Rows  int64  `json:"rows" example:"7"`
	Error string `json:"error,omitempty"`
}
