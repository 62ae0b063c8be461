package legacy

import (
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the root of the Petfinder v1 API
	DefaultBaseURL = "http://api.petfinder.com/"
	// DefaultTimeout is the HTTP timeout applied when no client is supplied
	DefaultTimeout = 30 * time.Second
	// DefaultRateLimit keeps well under the v1 daily quota bursts
	DefaultRateLimit = 10
)

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	rateLimit  float64
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		rateLimit: DefaultRateLimit,
	}
}

// WithBaseURL points the client at another API root.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used for API requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithRateLimit limits requests per second. A non-positive value disables it.
func WithRateLimit(rps float64) Option {
	return func(o *clientOptions) {
		o.rateLimit = rps
	}
}
