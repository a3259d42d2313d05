package api

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidRequest indicates the request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrServerError indicates a server-side error
	ErrServerError = errors.New("server error")

	// ErrTimeout indicates the request timed out
	ErrTimeout = errors.New("request timed out")

	// ErrNetwork indicates the relay could not be reached
	ErrNetwork = errors.New("network error")

	// ErrRelayEnvelope indicates an enveloping relay reported a failure or returned garbage
	ErrRelayEnvelope = errors.New("relay envelope error")

	// ErrUnparseable indicates the body was neither a vehicle list nor an upstream error
	ErrUnparseable = errors.New("unparseable response")

	// ErrUpstream matches every error reported by the upstream API itself
	ErrUpstream = errors.New("upstream error")

	// ErrInvalidCredential indicates the upstream rejected the API key
	ErrInvalidCredential = errors.New("invalid API key")

	// ErrChainExhausted indicates every relay strategy failed
	ErrChainExhausted = errors.New("all relay strategies failed")
)

// APIError represents a non-2xx HTTP status returned through a relay
type APIError struct {
	StatusCode int
	Status     string
	Relay      string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("API error %d: %s (relay: %s)", e.StatusCode, e.Status, e.Relay)
	}
	return fmt.Sprintf("API error %d (relay: %s)", e.StatusCode, e.Relay)
}

// Is implements errors.Is for APIError
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == 404
	case ErrServerError:
		return e.StatusCode >= 500
	case ErrInvalidRequest:
		return e.StatusCode == 400
	}
	return false
}

// NewAPIError creates a new API error
func NewAPIError(statusCode int, status, relay string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Status:     status,
		Relay:      relay,
	}
}

// UpstreamError is an error document returned by the RTTI API
type UpstreamError struct {
	Code    string
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream error %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("upstream error %s", e.Code)
}

// Classification returns the classification of the error code
func (e *UpstreamError) Classification() Classification {
	return Classify(e.Code)
}

// Is implements errors.Is for UpstreamError
func (e *UpstreamError) Is(target error) bool {
	switch target {
	case ErrUpstream:
		return true
	case ErrInvalidCredential:
		return e.Classification() == FatalCredential
	case ErrNotFound:
		return e.Classification() == RouteNotFound
	}
	return false
}

// StrategyError records which relay strategy produced an error
type StrategyError struct {
	Strategy string
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() error {
	return e.Err
}

// ChainExhaustedError collects the failure of every attempted strategy
type ChainExhaustedError struct {
	Attempts []error
}

func (e *ChainExhaustedError) Error() string {
	msgs := make([]string, len(e.Attempts))
	for i, err := range e.Attempts {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%s after %d attempts: %s", ErrChainExhausted, len(e.Attempts), strings.Join(msgs, "; "))
}

// Is implements errors.Is for ChainExhaustedError
func (e *ChainExhaustedError) Is(target error) bool {
	return target == ErrChainExhausted
}

func (e *ChainExhaustedError) Unwrap() []error {
	return e.Attempts
}

// ValidationError represents a validation error for request parameters
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// Is implements errors.Is for ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ErrInvalidFormat reports a parameter that does not have the expected shape
func ErrInvalidFormat(field, expected string) error {
	return NewValidationError(field, fmt.Sprintf("invalid format, expected %s", expected))
}
