package petfinder

import (
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the root of the Petfinder v2 API
	DefaultBaseURL = "https://api.petfinder.com/v2"
	// DefaultTimeout is the HTTP timeout applied when no client is supplied
	DefaultTimeout = 30 * time.Second
	// DefaultRateLimit is the documented request rate of the API per second
	DefaultRateLimit = 50
	// DefaultConcurrency bounds parallel lookups and page fetches
	DefaultConcurrency = 4
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL     string
	httpClient  *http.Client
	timeout     time.Duration
	rateLimit   float64
	burst       int
	concurrency int
	userAgent   string
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:     DefaultBaseURL,
		timeout:     DefaultTimeout,
		rateLimit:   DefaultRateLimit,
		burst:       DefaultRateLimit,
		concurrency: DefaultConcurrency,
		userAgent:   "petpy",
	}
}

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used for API and token requests.
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

// WithRateLimit limits outgoing requests to rps per second with the given burst.
// A non-positive rps disables rate limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *clientOptions) {
		o.rateLimit = rps
		if burst > 0 {
			o.burst = burst
		}
	}
}

// WithConcurrency sets how many requests a single operation may have in flight.
func WithConcurrency(n int) Option {
	return func(o *clientOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}
