// Package dto holds the HTTP request and response shapes and maps domain
// errors onto the JSON error envelope.
package dto

import "net/http"

// ErrorResponse is the JSON envelope of every error reply.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail carries a machine code, a message, and per-field messages for
// validation failures.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Machine-readable error codes.
const (
	ErrorCodeNotFound        = "NOT_FOUND"
	ErrorCodeConflict        = "CONFLICT"
	ErrorCodeValidation      = "VALIDATION_ERROR"
	ErrorCodeTooManyRequests = "TOO_MANY_REQUESTS"
	ErrorCodeUnauthorized    = "UNAUTHORIZED"
	ErrorCodeUnavailable     = "SERVICE_UNAVAILABLE"
	ErrorCodeInternal        = "INTERNAL_ERROR"
	ErrorCodeTimeout         = "TIMEOUT"
	ErrorCodeBadRequest      = "BAD_REQUEST"
)

var codeStatus = map[string]int{
	ErrorCodeNotFound:        http.StatusNotFound,
	ErrorCodeConflict:        http.StatusConflict,
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeBadRequest:      http.StatusBadRequest,
	ErrorCodeTooManyRequests: http.StatusTooManyRequests,
	ErrorCodeUnauthorized:    http.StatusUnauthorized,
	ErrorCodeUnavailable:     http.StatusServiceUnavailable,
	ErrorCodeTimeout:         http.StatusGatewayTimeout,
}

func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message, Details: details}}
}

// WithTraceID stamps the active trace so callers can quote it in reports.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode maps an error code to its status, 500 when unknown.
func HTTPStatusFromCode(code string) int {
	if status, ok := codeStatus[code]; ok {
		return status
	}

	return http.StatusInternalServerError
}
