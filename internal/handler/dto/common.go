// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// Envelope wraps successful responses.
type Envelope struct {
	Status string `json:"status"`
	Result any    `json:"result"`
}

// Success wraps a result in the standard response envelope.
func Success(result any) Envelope {
	return Envelope{Status: "success", Result: result}
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
