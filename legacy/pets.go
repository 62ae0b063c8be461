package legacy

import (
	"context"
	"fmt"
	"strconv"

	"github.com/s0up4200/petpy/petfinder"
)

// BreedList returns the breeds of an animal (breed.list).
func (c *Client) BreedList(ctx context.Context, animal string, format Format) (*Response, error) {
	params, err := encode(breedListParams{Animal: animal}, format)
	if err != nil {
		return nil, err
	}
	return c.call(ctx, "breed.list", params, format)
}

// PetFind searches pets near a location (pet.find). pages > 1 follows the
// result offsets for up to that many responses.
func (c *Client) PetFind(ctx context.Context, p PetFindParams, format Format, pages int) ([]*Response, error) {
	params, err := encode(p, format)
	if err != nil {
		return nil, err
	}
	return c.callPages(ctx, "pet.find", params, format, p.PageParams, pages)
}

// PetGet returns a single pet record (pet.get).
func (c *Client) PetGet(ctx context.Context, id string, format Format) (*Response, error) {
	params, err := encode(idParams{ID: id}, format)
	if err != nil {
		return nil, err
	}
	return c.call(ctx, "pet.get", params, format)
}

// PetsGet returns several pet records, one response per id in order.
func (c *Client) PetsGet(ctx context.Context, ids []string, format Format) ([]*Response, error) {
	responses := make([]*Response, 0, len(ids))
	for _, id := range ids {
		resp, err := c.PetGet(ctx, id, format)
		if err != nil {
			return nil, fmt.Errorf("pet %s: %w", id, err)
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// PetGetRandom returns records random pets (pet.getRandom). Each record is a
// separate call.
func (c *Client) PetGetRandom(ctx context.Context, p RandomParams, format Format, records int) ([]*Response, error) {
	if records < 1 {
		return nil, &petfinder.InvalidParametersError{Fields: map[string]string{
			"records": "records must be at least 1, got " + strconv.Itoa(records),
		}}
	}

	params, err := encode(p, format)
	if err != nil {
		return nil, err
	}

	responses := make([]*Response, 0, records)
	for range records {
		resp, err := c.call(ctx, "pet.getRandom", params, format)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
