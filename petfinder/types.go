package petfinder

import (
	"context"
	"fmt"
	"sort"
)

// AnimalTypes returns every animal type with its valid coats, colors and genders.
func (c *Client) AnimalTypes(ctx context.Context) ([]AnimalType, error) {
	var resp typesResponse
	if err := c.get(ctx, "/types", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get animal types: %w", err)
	}
	return resp.Types, nil
}

// AnimalType returns the named animal types in the order given. Without
// arguments it behaves like AnimalTypes.
func (c *Client) AnimalType(ctx context.Context, types ...string) ([]AnimalType, error) {
	if len(types) == 0 {
		return c.AnimalTypes(ctx)
	}

	names, err := validateTypes(types)
	if err != nil {
		return nil, err
	}

	return fetchEach(ctx, c.concurrency, len(names), func(ctx context.Context, i int) (AnimalType, error) {
		var resp typeResponse
		if err := c.get(ctx, "/types/"+names[i], nil, &resp); err != nil {
			return AnimalType{}, fmt.Errorf("failed to get animal type %s: %w", names[i], err)
		}
		return resp.Type, nil
	})
}

// Breeds returns the breeds of each requested animal type, keyed by type.
// Without arguments the breeds of every known type are returned.
func (c *Client) Breeds(ctx context.Context, types ...string) (map[string][]Breed, error) {
	if len(types) == 0 {
		types = AnimalTypeNames
	}

	names, err := validateTypes(types)
	if err != nil {
		return nil, err
	}

	lists, err := fetchEach(ctx, c.concurrency, len(names), func(ctx context.Context, i int) ([]Breed, error) {
		var resp breedsResponse
		if err := c.get(ctx, "/types/"+names[i]+"/breeds", nil, &resp); err != nil {
			return nil, fmt.Errorf("failed to get %s breeds: %w", names[i], err)
		}
		return resp.Breeds, nil
	})
	if err != nil {
		return nil, err
	}

	result := make(map[string][]Breed, len(names))
	for i, name := range names {
		result[name] = lists[i]
	}
	return result, nil
}

// BreedNames reduces a breed listing to sorted breed names per type.
func BreedNames(breeds map[string][]Breed) map[string][]string {
	out := make(map[string][]string, len(breeds))
	for animalType, list := range breeds {
		names := make([]string, 0, len(list))
		for _, b := range list {
			names = append(names, b.Name)
		}
		sort.Strings(names)
		out[animalType] = names
	}
	return out
}
