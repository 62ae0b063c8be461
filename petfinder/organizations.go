package petfinder

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Organization returns a single organization by its ID, e.g. "NJ333".
func (c *Client) Organization(ctx context.Context, id string) (*Organization, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &InvalidParametersError{Fields: map[string]string{
			"id": "organization id is required",
		}}
	}

	var resp organizationResponse
	if err := c.get(ctx, "/organizations/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get organization %s: %w", id, err)
	}
	return &resp.Organization, nil
}

// Organizations looks up several organizations concurrently, preserving order.
func (c *Client) Organizations(ctx context.Context, ids ...string) ([]Organization, error) {
	return fetchEach(ctx, c.concurrency, len(ids), func(ctx context.Context, i int) (Organization, error) {
		org, err := c.Organization(ctx, ids[i])
		if err != nil {
			return Organization{}, err
		}
		return *org, nil
	})
}

// SearchOrganizations runs an organization search and collects the pages
// selected by opts.
func (c *Client) SearchOrganizations(ctx context.Context, search OrganizationSearch, opts PageOptions) (*OrganizationsPage, error) {
	if opts.AllPages {
		search.Limit = MaxLimit
	}

	params, err := search.Values()
	if err != nil {
		return nil, err
	}

	fetch := func(ctx context.Context, page int) ([]Organization, Pagination, error) {
		q := cloneValues(params)
		if page > 0 {
			q.Set("page", strconv.Itoa(page))
		}

		var resp OrganizationsPage
		if err := c.get(ctx, "/organizations", q, &resp); err != nil {
			return nil, Pagination{}, err
		}
		return resp.Organizations, resp.Pagination, nil
	}

	orgs, pagination, fetched, err := collectPages(ctx, c, opts, fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to search organizations: %w", err)
	}

	if orgs == nil {
		orgs = []Organization{}
	}
	return &OrganizationsPage{
		Organizations: orgs,
		Pagination:    pagination,
		PagesFetched:  fetched,
	}, nil
}
