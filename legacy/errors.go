package legacy

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/s0up4200/petpy/petfinder"
)

// ErrNotJSON is returned when decoding a response that was requested as XML.
var ErrNotJSON = errors.New("response is not JSON")

// Status codes reported in the header of every v1 response.
const (
	StatusOK              = 100
	StatusInvalidArgument = 200
	StatusNotFound        = 201
	StatusLimitExceeded   = 202
	StatusInvalidLocation = 203
	StatusUnauthorized    = 300
	StatusAuthFailure     = 301
	StatusInternal        = 999
)

// APIError is a failed v1 call. v1 answers most failures with HTTP 200 and a
// status code in the response header; HTTPStatus is set when the transport
// status itself was not 200.
type APIError struct {
	Method     string
	Code       int
	Message    string
	HTTPStatus int
}

func (e *APIError) Error() string {
	if e.HTTPStatus != 0 && e.HTTPStatus != http.StatusOK {
		return fmt.Sprintf("petfinder v1 %s: HTTP status %d", e.Method, e.HTTPStatus)
	}
	if e.Message == "" {
		return fmt.Sprintf("petfinder v1 %s: status %d", e.Method, e.Code)
	}
	return fmt.Sprintf("petfinder v1 %s: status %d: %s", e.Method, e.Code, e.Message)
}

// Unwrap maps the status onto the petfinder package sentinels.
func (e *APIError) Unwrap() error {
	if e.HTTPStatus != 0 && e.HTTPStatus != http.StatusOK {
		switch e.HTTPStatus {
		case http.StatusBadRequest:
			return petfinder.ErrInvalidParameters
		case http.StatusUnauthorized, http.StatusForbidden:
			return petfinder.ErrInsufficientAccess
		case http.StatusNotFound:
			return petfinder.ErrResourceNotFound
		default:
			return petfinder.ErrUnexpected
		}
	}

	switch e.Code {
	case StatusInvalidArgument, StatusInvalidLocation:
		return petfinder.ErrInvalidParameters
	case StatusNotFound:
		return petfinder.ErrResourceNotFound
	case StatusLimitExceeded, StatusUnauthorized:
		return petfinder.ErrInsufficientAccess
	case StatusAuthFailure:
		return petfinder.ErrInvalidCredentials
	default:
		return petfinder.ErrUnexpected
	}
}

// IsNotFound checks if the record does not exist
func (e *APIError) IsNotFound() bool {
	return e.Code == StatusNotFound || e.HTTPStatus == http.StatusNotFound
}
