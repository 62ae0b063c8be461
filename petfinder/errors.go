package petfinder

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid petfinder configuration")
	// ErrInvalidCredentials indicates the API key or secret was rejected
	ErrInvalidCredentials = errors.New("invalid petfinder credentials")
	// ErrInsufficientAccess indicates the access token cannot reach the resource
	ErrInsufficientAccess = errors.New("insufficient access to petfinder resource")
	// ErrResourceNotFound indicates the requested resource does not exist
	ErrResourceNotFound = errors.New("petfinder resource not found")
	// ErrInvalidParameters indicates a request was built with invalid parameters
	ErrInvalidParameters = errors.New("invalid petfinder parameters")
	// ErrUnexpected indicates a server side failure or an unclassified response
	ErrUnexpected = errors.New("unexpected petfinder error")
)

// InvalidParam is one entry of the invalid-params list of a problem response.
type InvalidParam struct {
	In      string `json:"in"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

// APIError represents a non-2xx Petfinder API response.
type APIError struct {
	StatusCode    int
	Type          string
	Title         string
	Detail        string
	InvalidParams []InvalidParam
	Body          string
}

// problem is the application/problem+json body returned by the v2 API.
type problem struct {
	Type          string         `json:"type"`
	Status        int            `json:"status"`
	Title         string         `json:"title"`
	Detail        string         `json:"detail"`
	InvalidParams []InvalidParam `json:"invalid-params"`
}

func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       strings.TrimSpace(string(body)),
	}

	var p problem
	if err := json.Unmarshal(body, &p); err == nil {
		apiErr.Type = p.Type
		apiErr.Title = p.Title
		apiErr.Detail = p.Detail
		apiErr.InvalidParams = p.InvalidParams
	}

	if apiErr.Title == "" {
		apiErr.Title = http.StatusText(statusCode)
	}

	return apiErr
}

// Error implements the error interface
func (e *APIError) Error() string {
	msg := fmt.Sprintf("petfinder API error: status %d: %s", e.StatusCode, e.Title)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	for _, p := range e.InvalidParams {
		msg += fmt.Sprintf(" [%s: %s]", p.Path, p.Message)
	}
	return msg
}

// Unwrap maps the status code onto one of the package sentinels so callers
// can use errors.Is.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusBadRequest:
		return ErrInvalidParameters
	case e.IsUnauthorized():
		return ErrInsufficientAccess
	case e.IsNotFound():
		return ErrResourceNotFound
	default:
		return ErrUnexpected
	}
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// InvalidParametersError aggregates every parameter that failed local validation.
type InvalidParametersError struct {
	// Fields maps the query parameter name to the reason it was rejected.
	Fields map[string]string
}

func (e *InvalidParametersError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, e.Fields[name])
	}
	return "invalid parameters: " + strings.Join(parts, "; ")
}

func (e *InvalidParametersError) Unwrap() error {
	return ErrInvalidParameters
}
