package legacy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/s0up4200/petpy/petfinder"
)

const (
	maxBodySize = 4 << 20
	// maxRecords is the deepest offset a v1 search will serve.
	maxRecords = 2000
)

// Client wraps the Petfinder v1 API
type Client struct {
	baseURL    string
	key        string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewClient creates a new v1 client
func NewClient(key string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("%w: petfinder v1 API key is required", petfinder.ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// Method names are appended to the base URL.
	baseURL := strings.TrimRight(o.baseURL, "/") + "/"
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("%w: invalid base url: %v", petfinder.ErrInvalidConfig, err)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if o.rateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(o.rateLimit), 1)
	}

	return &Client{
		baseURL:    baseURL,
		key:        key,
		httpClient: httpClient,
		limiter:    limiter,
		logger:     logger,
	}, nil
}

// call issues a single v1 method request.
func (c *Client) call(ctx context.Context, method string, params url.Values, format Format) (*Response, error) {
	q := cloneValues(params)
	q.Set("key", c.key)
	q.Set("format", string(format))

	requestURL := c.baseURL + method + "?" + q.Encode()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", method, err)
	}

	// params never carries the key.
	c.logger.Debug().
		Str("method", method).
		Str("format", string(format)).
		Str("query", params.Encode()).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Petfinder v1 request")

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Method: method, HTTPStatus: resp.StatusCode}
	}

	header, lastOffset, err := parseEnvelope(format, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	if err := statusError(method, header); err != nil {
		return nil, err
	}

	return &Response{
		Method:     method,
		Format:     format,
		Body:       body,
		lastOffset: lastOffset,
	}, nil
}

// callPages issues up to pages requests, moving the offset to the lastOffset
// of each response. It stops early when the API reports no further offset,
// when the offset does not advance, or when the next window would pass the
// record limit.
func (c *Client) callPages(ctx context.Context, method string, params url.Values, format Format, page PageParams, pages int) ([]*Response, error) {
	if pages < 0 {
		return nil, &petfinder.InvalidParametersError{Fields: map[string]string{
			"pages": "pages must not be negative",
		}}
	}

	first, err := c.call(ctx, method, params, format)
	if err != nil {
		return nil, err
	}
	responses := []*Response{first}

	offset := page.Offset
	count := page.count()
	prev := first

	for len(responses) < pages {
		next, ok := prev.NextOffset()
		if !ok || next <= offset {
			c.logger.Debug().Str("method", method).Int("offset", offset).Msg("No further result pages")
			break
		}
		if next+count > maxRecords {
			c.logger.Warn().
				Str("method", method).
				Int("offset", next).
				Int("pages", len(responses)).
				Msgf("Next result set would exceed maximum %d records per search, returning results up to page %d", maxRecords, len(responses))
			break
		}

		q := cloneValues(params)
		q.Set("offset", fmt.Sprint(next))
		resp, err := c.call(ctx, method, q, format)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", len(responses)+1, err)
		}

		responses = append(responses, resp)
		offset = next
		prev = resp
	}

	return responses, nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v)+2)
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
