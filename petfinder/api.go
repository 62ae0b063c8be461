package petfinder

import (
	"context"
)

// API defines the Petfinder v2 operations used by the CLI
type API interface {
	// AnimalTypes lists every animal type
	AnimalTypes(ctx context.Context) ([]AnimalType, error)

	// AnimalType looks up one or more animal types by name
	AnimalType(ctx context.Context, types ...string) ([]AnimalType, error)

	// Breeds lists the breeds of the given animal types
	Breeds(ctx context.Context, types ...string) (map[string][]Breed, error)

	// Animal retrieves a single animal
	Animal(ctx context.Context, id int) (*Animal, error)

	// Animals retrieves several animals
	Animals(ctx context.Context, ids ...int) ([]Animal, error)

	// SearchAnimals searches adoptable animals
	SearchAnimals(ctx context.Context, search AnimalSearch, opts PageOptions) (*AnimalsPage, error)

	// RandomAnimals returns a random selection of matching animals
	RandomAnimals(ctx context.Context, search AnimalSearch, n int) ([]Animal, error)

	// Organization retrieves a single organization
	Organization(ctx context.Context, id string) (*Organization, error)

	// Organizations retrieves several organizations
	Organizations(ctx context.Context, ids ...string) ([]Organization, error)

	// SearchOrganizations searches animal welfare organizations
	SearchOrganizations(ctx context.Context, search OrganizationSearch, opts PageOptions) (*OrganizationsPage, error)
}

var _ API = (*Client)(nil)
