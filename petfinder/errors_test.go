package petfinder

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError(t *testing.T) {
	t.Run("problem body", func(t *testing.T) {
		err := newAPIError(http.StatusBadRequest, []byte(`{"type":"https://httpstatus.es/400","status":400,
			"title":"Bad Request","detail":"The request contains invalid parameters.",
			"invalid-params":[{"in":"query","path":"type","message":"dragon is not a valid type"}]}`))

		assert.Equal(t, "Bad Request", err.Title)
		assert.Len(t, err.InvalidParams, 1)
		assert.Equal(t,
			"petfinder API error: status 400: Bad Request: The request contains invalid parameters. [type: dragon is not a valid type]",
			err.Error())
	})

	t.Run("plain body", func(t *testing.T) {
		err := newAPIError(http.StatusBadGateway, []byte("upstream down\n"))
		assert.Equal(t, "Bad Gateway", err.Title)
		assert.Equal(t, "upstream down", err.Body)
		assert.Equal(t, "petfinder API error: status 502: Bad Gateway", err.Error())
	})

	t.Run("sentinels", func(t *testing.T) {
		tests := []struct {
			code int
			want error
		}{
			{http.StatusBadRequest, ErrInvalidParameters},
			{http.StatusUnauthorized, ErrInsufficientAccess},
			{http.StatusForbidden, ErrInsufficientAccess},
			{http.StatusNotFound, ErrResourceNotFound},
			{http.StatusInternalServerError, ErrUnexpected},
		}

		for _, tt := range tests {
			err := error(&APIError{StatusCode: tt.code})
			assert.True(t, errors.Is(err, tt.want), "status %d", tt.code)
		}
	})

	t.Run("IsUnauthorized", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{401, true},
			{403, true},
			{404, false},
			{500, false},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			assert.Equal(t, tt.expected, err.IsUnauthorized())
		}
	})
}

func TestInvalidParametersError(t *testing.T) {
	err := &InvalidParametersError{Fields: map[string]string{
		"sort":  "sort is bad",
		"limit": "limit is bad",
	}}
	assert.Equal(t, "invalid parameters: limit is bad; sort is bad", err.Error())
	assert.ErrorIs(t, err, ErrInvalidParameters)
}
