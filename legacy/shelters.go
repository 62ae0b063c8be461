package legacy

import (
	"context"
	"fmt"
)

// ShelterFind searches shelters near a location (shelter.find).
func (c *Client) ShelterFind(ctx context.Context, p ShelterFindParams, format Format, pages int) ([]*Response, error) {
	params, err := encode(p, format)
	if err != nil {
		return nil, err
	}
	return c.callPages(ctx, "shelter.find", params, format, p.PageParams, pages)
}

// ShelterGet returns a single shelter record (shelter.get).
func (c *Client) ShelterGet(ctx context.Context, id string, format Format) (*Response, error) {
	params, err := encode(idParams{ID: id}, format)
	if err != nil {
		return nil, err
	}
	return c.call(ctx, "shelter.get", params, format)
}

// SheltersGet returns several shelter records, one response per id in order.
func (c *Client) SheltersGet(ctx context.Context, ids []string, format Format) ([]*Response, error) {
	responses := make([]*Response, 0, len(ids))
	for _, id := range ids {
		resp, err := c.ShelterGet(ctx, id, format)
		if err != nil {
			return nil, fmt.Errorf("shelter %s: %w", id, err)
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// ShelterGetPets lists the pets of a shelter (shelter.getPets).
func (c *Client) ShelterGetPets(ctx context.Context, p ShelterPetsParams, format Format, pages int) ([]*Response, error) {
	params, err := encode(p, format)
	if err != nil {
		return nil, err
	}
	return c.callPages(ctx, "shelter.getPets", params, format, p.PageParams, pages)
}

// ShelterListByBreed lists shelters that have pets of a breed (shelter.listByBreed).
func (c *Client) ShelterListByBreed(ctx context.Context, animal, breed string, page PageParams, format Format, pages int) ([]*Response, error) {
	params, err := encode(byBreedParams{Animal: animal, Breed: breed, PageParams: page}, format)
	if err != nil {
		return nil, err
	}
	return c.callPages(ctx, "shelter.listByBreed", params, format, page, pages)
}
