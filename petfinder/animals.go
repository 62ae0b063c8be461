package petfinder

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Animal returns a single animal by its Petfinder ID.
func (c *Client) Animal(ctx context.Context, id int) (*Animal, error) {
	if id <= 0 {
		return nil, &InvalidParametersError{Fields: map[string]string{
			"id": fmt.Sprintf("animal id %d is not valid", id),
		}}
	}

	var resp animalResponse
	if err := c.get(ctx, fmt.Sprintf("/animals/%d", id), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get animal %d: %w", id, err)
	}
	return &resp.Animal, nil
}

// Animals looks up several animals concurrently. Results keep the order of ids
// and the first failed lookup fails the whole call.
func (c *Client) Animals(ctx context.Context, ids ...int) ([]Animal, error) {
	for _, id := range ids {
		if id <= 0 {
			return nil, &InvalidParametersError{Fields: map[string]string{
				"id": fmt.Sprintf("animal id %d is not valid", id),
			}}
		}
	}

	return fetchEach(ctx, c.concurrency, len(ids), func(ctx context.Context, i int) (Animal, error) {
		a, err := c.Animal(ctx, ids[i])
		if err != nil {
			return Animal{}, err
		}
		return *a, nil
	})
}

// SearchAnimals runs an animal search and collects the pages selected by opts.
func (c *Client) SearchAnimals(ctx context.Context, search AnimalSearch, opts PageOptions) (*AnimalsPage, error) {
	if opts.AllPages {
		search.Limit = MaxLimit
	}

	params, err := search.Values()
	if err != nil {
		return nil, err
	}

	animals, pagination, fetched, err := collectPages(ctx, c, opts, c.animalsPage(params))
	if err != nil {
		return nil, fmt.Errorf("failed to search animals: %w", err)
	}

	if animals == nil {
		animals = []Animal{}
	}
	return &AnimalsPage{
		Animals:      animals,
		Pagination:   pagination,
		PagesFetched: fetched,
	}, nil
}

func (c *Client) animalsPage(params url.Values) pageFetcher[Animal] {
	return func(ctx context.Context, page int) ([]Animal, Pagination, error) {
		q := cloneValues(params)
		if page > 0 {
			q.Set("page", strconv.Itoa(page))
		}

		var resp AnimalsPage
		if err := c.get(ctx, "/animals", q, &resp); err != nil {
			return nil, Pagination{}, err
		}
		return resp.Animals, resp.Pagination, nil
	}
}

// RandomAnimals returns n animals matching search in random order. n must be
// between 1 and MaxLimit.
func (c *Client) RandomAnimals(ctx context.Context, search AnimalSearch, n int) ([]Animal, error) {
	if n < 1 || n > MaxLimit {
		return nil, &InvalidParametersError{Fields: map[string]string{
			"limit": fmt.Sprintf("random animal count must be between 1 and %d", MaxLimit),
		}}
	}

	search.Sort = "random"
	search.Limit = n

	page, err := c.SearchAnimals(ctx, search, PageOptions{})
	if err != nil {
		return nil, err
	}
	return page.Animals, nil
}
