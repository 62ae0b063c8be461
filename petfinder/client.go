package petfinder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// Client represents a Petfinder v2 API client
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokens      oauth2.TokenSource
	limiter     *rate.Limiter
	concurrency int
	userAgent   string
	logger      zerolog.Logger
}

// NewClient creates a new Petfinder client and obtains the first access token.
func NewClient(key, secret string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("%w: petfinder API key is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("%w: petfinder API secret is required", ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	baseURL := strings.TrimRight(o.baseURL, "/")
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("%w: invalid base url: %v", ErrInvalidConfig, err)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if o.rateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(o.rateLimit), o.burst)
	}

	creds := &clientcredentials.Config{
		ClientID:     key,
		ClientSecret: secret,
		TokenURL:     baseURL + "/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)

	client := &Client{
		baseURL:     baseURL,
		httpClient:  httpClient,
		tokens:      creds.TokenSource(tokenCtx),
		limiter:     limiter,
		concurrency: o.concurrency,
		userAgent:   o.userAgent,
		logger:      logger,
	}

	if err := client.Authenticate(); err != nil {
		return nil, err
	}

	return client, nil
}

// Authenticate makes sure a valid access token is available.
func (c *Client) Authenticate() error {
	_, err := c.token()
	return err
}

func (c *Client) token() (*oauth2.Token, error) {
	tok, err := c.tokens.Token()
	if err == nil {
		return tok, nil
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		status := retrieveErr.Response.StatusCode
		if status == http.StatusUnauthorized || status == http.StatusBadRequest {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, newAPIError(status, retrieveErr.Body).Error())
		}
		return nil, fmt.Errorf("failed to obtain access token: %w", newAPIError(status, retrieveErr.Body))
	}
	return nil, fmt.Errorf("failed to obtain access token: %w", err)
}

// get performs an authenticated GET request and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	requestURL := c.baseURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	tok, err := c.token()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	tok.SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("query", params.Encode()).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Petfinder API request")

	if resp.StatusCode != http.StatusOK {
		return newAPIError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
