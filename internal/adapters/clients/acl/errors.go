package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quote-roulette/internal/adapters/clients"
	"github.com/jsamuelsen/quote-roulette/internal/domain"
)

// ErrorResponse is an upstream error body. Quotable answers with the flat
// {"statusCode","message"} form; the nested {"error":{...}} form is also
// read.
type ErrorResponse struct {
	Error      ErrorDetail `json:"error"`
	StatusCode int         `json:"statusCode,omitempty"`
	Code       string      `json:"code,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// ErrorDetail is the nested error form.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func (e *ErrorResponse) GetCode() string {
	return firstNonEmpty(e.Error.Code, e.Code)
}

func (e *ErrorResponse) GetMessage() string {
	return firstNonEmpty(e.Error.Message, e.Message)
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}

	return b
}

// ParseErrorResponse decodes body, or returns nil when it is empty, not
// JSON, or carries neither code nor message.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var parsed ErrorResponse
	if err := json.NewDecoder(body).Decode(&parsed); err != nil {
		return nil
	}

	if parsed.GetCode() == "" && parsed.GetMessage() == "" {
		return nil
	}

	return &parsed
}

// MapHTTPError turns a failed call into a domain error, or nil for a 2xx
// response. resp may be nil when clientErr is set.
//
// Only a 404 or a 4xx rejection of the request itself stays a client-side
// error. Everything the quote service cannot fix by changing its request
// (credentials, rate limits, 5xx, transport, open circuit) is
// domain.ErrUnavailable.
func MapHTTPError(resp *http.Response, clientErr error, service, operation string) error {
	if clientErr != nil {
		return domain.NewUnavailableError(service, clientReason(clientErr, operation))
	}

	if resp == nil {
		return domain.NewUnavailableError(service, "no response received")
	}

	status := resp.StatusCode
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	parsed := ParseErrorResponse(resp.Body)

	message := fmt.Sprintf("%s failed with status %d", operation, status)
	if parsed != nil && parsed.GetMessage() != "" {
		message = parsed.GetMessage()
	}

	switch {
	case status == http.StatusNotFound:
		return domain.NewNotFoundError(service+" resource", "")
	case status == http.StatusUnauthorized, status == http.StatusForbidden,
		status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
		return domain.NewUnavailableError(service, message)
	case parsed != nil && len(parsed.Error.Details) > 0:
		for field, msg := range parsed.Error.Details {
			return domain.NewValidationError(field, msg)
		}
	}

	return domain.NewValidationError("", message)
}

func clientReason(err error, operation string) string {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return "circuit breaker open during " + operation
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return "max retries exceeded during " + operation
	default:
		return fmt.Sprintf("%s failed: %v", operation, err)
	}
}
