package dto

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-roulette/internal/domain"
	"github.com/jsamuelsen/quote-roulette/internal/platform/logging"
)

// traceIDKey is the gin context key a trace ID may be stored under.
const traceIDKey = "trace_id"

// MapDomainError maps a domain error to an HTTP status code and error response.
// Unknown errors are mapped to 500 Internal Server Error with a generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsConflict(err):
		return http.StatusConflict, NewErrorResponse(ErrorCodeConflict, err.Error())

	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())
		if details := validationDetails(err); len(details) > 0 {
			resp.Error.Details = details
		}

		return http.StatusBadRequest, resp

	case domain.IsUnauthenticated(err):
		return http.StatusUnauthorized, NewErrorResponse(ErrorCodeUnauthorized, err.Error())

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, NewErrorResponse(ErrorCodeTimeout, "request timeout exceeded")

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(
			ErrorCodeUnavailable,
			"a dependency is temporarily unavailable",
		)

	default:
		// Unknown errors get a generic message to avoid leaking internals
		return http.StatusInternalServerError, NewErrorResponse(
			ErrorCodeInternal,
			"an internal error occurred",
		)
	}
}

// validationDetails flattens field violations into the response details.
// The first message recorded for a field wins.
func validationDetails(err error) map[string]string {
	details := make(map[string]string)

	var many domain.ValidationErrors
	if errors.As(err, &many) {
		for _, v := range many {
			if _, seen := details[v.Field]; !seen && v.Field != "" {
				details[v.Field] = v.Message
			}
		}

		return details
	}

	var one *domain.ValidationError
	if errors.As(err, &one) && one.Field != "" {
		details[one.Field] = one.Message
	}

	return details
}

// GetTraceID returns the trace ID for the request: the active OpenTelemetry
// span first, then a "trace_id" context value, then the X-Request-ID header.
func GetTraceID(c *gin.Context) string {
	if c.Request != nil {
		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
			return span.SpanContext().TraceID().String()
		}
	}

	if v, ok := c.Get(traceIDKey); ok {
		id, _ := v.(string)
		return id
	}

	if c.Request != nil {
		return c.Request.Header.Get("X-Request-ID")
	}

	return ""
}

// HandleError writes the mapped error response for err.
// Internal errors are logged with full details.
func HandleError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)
	errResp.TraceID = GetTraceID(c)

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("internal error",
			"error", err.Error(),
			"trace_id", errResp.TraceID,
		)
	}

	c.JSON(status, errResp)
}

// RespondWithErrorCode writes an error response with a specific error code.
// Use this for adapter-level errors such as malformed path parameters.
func RespondWithErrorCode(c *gin.Context, code, message string) {
	errResp := NewErrorResponse(code, message).WithTraceID(GetTraceID(c))
	c.JSON(HTTPStatusFromCode(code), errResp)
}

// RespondWithValidationErrors writes a 400 response with field-level validation errors.
func RespondWithValidationErrors(c *gin.Context, fieldErrors map[string]string) {
	errResp := NewErrorResponseWithDetails(
		ErrorCodeValidation,
		"request validation failed",
		fieldErrors,
	).WithTraceID(GetTraceID(c))

	c.JSON(http.StatusBadRequest, errResp)
}

// RespondWithBindingError writes a 400 for a request that failed binding or
// struct validation.
func RespondWithBindingError(c *gin.Context, err error) {
	if IsValidationError(err) {
		RespondWithValidationErrors(c, ValidationErrors(err))
		return
	}

	RespondWithErrorCode(c, ErrorCodeBadRequest, "malformed request body")
}

// AbortWithError aborts the request chain and writes an error response.
// Use this in middleware when you want to stop further processing.
func AbortWithError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)
	errResp.TraceID = GetTraceID(c)

	c.AbortWithStatusJSON(status, errResp)
}

// AbortWithErrorCode aborts the request chain with a specific error code.
func AbortWithErrorCode(c *gin.Context, code, message string) {
	errResp := NewErrorResponse(code, message).WithTraceID(GetTraceID(c))
	c.AbortWithStatusJSON(HTTPStatusFromCode(code), errResp)
}
