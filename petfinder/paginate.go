package petfinder

import (
	"context"
	"fmt"
)

// MaxLimit is the largest page size the API serves.
const MaxLimit = 100

// PageOptions controls how many result pages a search collects.
type PageOptions struct {
	// Page is the first page to fetch. Zero lets the API pick page 1.
	Page int
	// Pages is the number of pages to collect starting at Page. Values above
	// the number of available pages are clamped.
	Pages int
	// AllPages collects every page at the maximum page size.
	AllPages bool
}

func (o PageOptions) validate() error {
	fields := map[string]string{}
	if o.Page < 0 {
		fields["page"] = "page must not be negative"
	}
	if o.Pages < 0 {
		fields["pages"] = "pages must not be negative"
	}
	if len(fields) > 0 {
		return &InvalidParametersError{Fields: fields}
	}
	return nil
}

func (o PageOptions) multi() bool {
	return o.AllPages || o.Pages > 1
}

type pageResult[T any] struct {
	items      []T
	pagination Pagination
}

type pageFetcher[T any] func(ctx context.Context, page int) ([]T, Pagination, error)

// collectPages fetches the first page, then the remaining requested pages
// concurrently, and concatenates everything in page order.
func collectPages[T any](ctx context.Context, c *Client, opts PageOptions, fetch pageFetcher[T]) ([]T, Pagination, int, error) {
	if err := opts.validate(); err != nil {
		return nil, Pagination{}, 0, err
	}

	first := opts.Page
	if opts.multi() && first < 1 {
		first = 1
	}

	items, pagination, err := fetch(ctx, first)
	if err != nil {
		return nil, Pagination{}, 0, err
	}
	if !opts.multi() {
		return items, pagination, 1, nil
	}

	last := pagination.TotalPages
	if !opts.AllPages {
		want := first + opts.Pages - 1
		if want > last {
			c.logger.Warn().
				Int("pages", opts.Pages).
				Int("total_pages", pagination.TotalPages).
				Msg("pages parameter exceeded maximum number of available pages, returning all available pages")
		} else {
			last = want
		}
	}

	if last <= first {
		return items, pagination, 1, nil
	}

	rest, err := fetchEach(ctx, c.concurrency, last-first, func(ctx context.Context, i int) (pageResult[T], error) {
		page := first + 1 + i
		pageItems, p, err := fetch(ctx, page)
		if err != nil {
			return pageResult[T]{}, fmt.Errorf("page %d: %w", page, err)
		}
		return pageResult[T]{items: pageItems, pagination: p}, nil
	})
	if err != nil {
		return nil, Pagination{}, 0, err
	}

	for _, r := range rest {
		items = append(items, r.items...)
	}

	c.logger.Debug().
		Int("first_page", first).
		Int("last_page", last).
		Int("count", len(items)).
		Msg("Collected result pages")

	return items, rest[len(rest)-1].pagination, 1 + len(rest), nil
}
