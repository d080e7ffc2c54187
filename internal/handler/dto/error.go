// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// ErrorResponse is the wire shape of every failure.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries a stable code, a human-readable message, and for
// validation failures a field-to-message mapping for inline rendering.
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
