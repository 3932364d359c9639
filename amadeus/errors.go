package amadeus

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is the uniform shape every provider-side failure is reduced to.
// Callers never see the provider's native error payloads directly.
type APIError struct {
	Status  int           `json:"status"`
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Errors  []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail mirrors one entry of the provider's error list.
type ErrorDetail struct {
	Status int    `json:"status,omitempty"`
	Code   int    `json:"code,omitempty"`
	Title  string `json:"title,omitempty"`
	Detail string `json:"detail,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("amadeus: %s (%d): %s", e.Code, e.Status, e.Message)
}

func normalizeError(statusCode int, body []byte) *APIError {
	var envelope struct {
		Errors []ErrorDetail `json:"errors"`
	}
	apiErr := &APIError{
		Status:  statusCode,
		Code:    "PROVIDER_ERROR",
		Message: http.StatusText(statusCode),
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Errors) > 0 {
		apiErr.Errors = envelope.Errors
		if envelope.Errors[0].Title != "" {
			apiErr.Message = envelope.Errors[0].Title
		}
		if envelope.Errors[0].Detail != "" {
			apiErr.Message = envelope.Errors[0].Detail
		}
	}
	return apiErr
}

// AsAPIError coerces any error into the normalized shape so handlers can
// report a status code without type switching.
func AsAPIError(err error) *APIError {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	return &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: err.Error(),
	}
}
