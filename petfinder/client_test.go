package petfinder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "test-token"

// newTestServer serves the token endpoint and hands every other request to api.
func newTestServer(t *testing.T, api http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		if r.PostForm.Get("client_id") != "test-key" || r.PostForm.Get("client_secret") != "test-secret" {
			w.Header().Set("Content-Type", "application/problem+json")
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"type":"https://httpstatus.es/401","status":401,"title":"invalid_client","detail":"Client authentication failed"}`)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"token_type":"Bearer","expires_in":3600,"access_token":%q}`, testToken)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
		if api == nil {
			http.NotFound(w, r)
			return
		}
		api(w, r)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, server *httptest.Server, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithBaseURL(server.URL), WithRateLimit(0, 0)}, opts...)
	client, err := NewClient("test-key", "test-secret", zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		key     string
		secret  string
		wantErr error
		errMsg  string
	}{
		{
			name:   "valid credentials",
			key:    "test-key",
			secret: "test-secret",
		},
		{
			name:    "missing key",
			secret:  "test-secret",
			wantErr: ErrInvalidConfig,
			errMsg:  "API key is required",
		},
		{
			name:    "missing secret",
			key:     "test-key",
			wantErr: ErrInvalidConfig,
			errMsg:  "API secret is required",
		},
		{
			name:    "rejected credentials",
			key:     "test-key",
			secret:  "wrong",
			wantErr: ErrInvalidCredentials,
			errMsg:  "Client authentication failed",
		},
	}

	server := newTestServer(t, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.key, tt.secret, logger, WithBaseURL(server.URL))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, server.URL, client.baseURL)
		})
	}

	t.Run("invalid base url", func(t *testing.T) {
		_, err := NewClient("test-key", "test-secret", logger, WithBaseURL("not a url"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestClientOptions(t *testing.T) {
	server := newTestServer(t, nil)

	t.Run("with timeout", func(t *testing.T) {
		client := newTestClient(t, server, WithTimeout(5*time.Second))
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client := newTestClient(t, server, WithHTTPClient(custom))
		assert.Equal(t, custom, client.httpClient)
	})

	t.Run("with concurrency", func(t *testing.T) {
		client := newTestClient(t, server, WithConcurrency(8))
		assert.Equal(t, 8, client.concurrency)
	})

	t.Run("trailing slash is trimmed", func(t *testing.T) {
		client := newTestClient(t, server, WithBaseURL(server.URL+"/"))
		assert.Equal(t, server.URL, client.baseURL)
	})
}

func TestAnimal(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/animals/42":
			assert.Equal(t, "petpy", r.Header.Get("User-Agent"))
			fmt.Fprint(w, `{"animal":{"id":42,"organization_id":"WA40","type":"Cat","name":"Mochi",
				"status":"adoptable","published_at":"2018-09-04T14:49:09+0000",
				"_links":{"self":{"href":"/v2/animals/42"},"type":{"href":"/v2/types/cat"},"organization":{"href":"/v2/organizations/wa40"}}}}`)
		default:
			w.Header().Set("Content-Type", "application/problem+json")
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"type":"https://httpstatus.es/404","status":404,"title":"Not Found","detail":"Not Found"}`)
		}
	})
	client := newTestClient(t, server)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		animal, err := client.Animal(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, 42, animal.ID)
		assert.Equal(t, "Mochi", animal.Name)
		assert.Equal(t, "/v2/organizations/wa40", animal.Links.Organization.Href)
		assert.True(t, animal.IsAdoptable())

		published, err := animal.Published()
		require.NoError(t, err)
		assert.Equal(t, time.Date(2018, 9, 4, 14, 49, 9, 0, time.UTC), published.UTC())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := client.Animal(ctx, 7)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrResourceNotFound)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.True(t, apiErr.IsNotFound())
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := client.Animal(ctx, 0)
		assert.ErrorIs(t, err, ErrInvalidParameters)
	})
}

func TestAnimals(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/animals/")
		if id == "3" {
			time.Sleep(20 * time.Millisecond)
		}
		fmt.Fprintf(w, `{"animal":{"id":%s,"name":"animal-%s"}}`, id, id)
	})
	client := newTestClient(t, server)

	animals, err := client.Animals(context.Background(), 3, 1, 2)
	require.NoError(t, err)
	require.Len(t, animals, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{animals[0].ID, animals[1].ID, animals[2].ID})

	_, err = client.Animals(context.Background(), 1, -4)
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

// pagedAnimals serves totalPages pages of perPage animals and records the
// queries it saw.
type pagedAnimals struct {
	t          *testing.T
	totalPages int
	perPage    int

	mu      sync.Mutex
	queries []string
}

func (p *pagedAnimals) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	assert.Equal(p.t, "/animals", r.URL.Path)

	p.mu.Lock()
	p.queries = append(p.queries, r.URL.RawQuery)
	p.mu.Unlock()

	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		page, _ = strconv.Atoi(v)
	}

	animals := make([]map[string]any, 0, p.perPage)
	if page <= p.totalPages {
		for i := range p.perPage {
			animals = append(animals, map[string]any{"id": page*100 + i})
		}
	}

	writeJSON(p.t, w, map[string]any{
		"animals": animals,
		"pagination": map[string]any{
			"count_per_page": p.perPage,
			"total_count":    p.totalPages * p.perPage,
			"current_page":   page,
			"total_pages":    p.totalPages,
		},
	})
}

func TestSearchAnimals(t *testing.T) {
	ctx := context.Background()

	t.Run("query string", func(t *testing.T) {
		paged := &pagedAnimals{t: t, totalPages: 1, perPage: 2}
		client := newTestClient(t, newTestServer(t, paged.ServeHTTP))

		yes := true
		page, err := client.SearchAnimals(ctx, AnimalSearch{
			Type:             "Dog",
			Size:             []string{"small", "Medium"},
			GoodWithChildren: &yes,
			Location:         "Seattle, WA",
			Distance:         25,
			Sort:             "-recent",
		}, PageOptions{})
		require.NoError(t, err)
		assert.Len(t, page.Animals, 2)
		assert.Equal(t, 1, page.PagesFetched)

		require.Len(t, paged.queries, 1)
		assert.Equal(t,
			"distance=25&good_with_children=true&location=Seattle%2C+WA&size=small%2Cmedium&sort=-recent&type=dog",
			paged.queries[0])
	})

	t.Run("several pages in order", func(t *testing.T) {
		paged := &pagedAnimals{t: t, totalPages: 5, perPage: 2}
		client := newTestClient(t, newTestServer(t, paged.ServeHTTP))

		page, err := client.SearchAnimals(ctx, AnimalSearch{Type: "cat"}, PageOptions{Pages: 3})
		require.NoError(t, err)
		assert.Equal(t, 3, page.PagesFetched)
		assert.Equal(t, 3, page.Pagination.CurrentPage)

		ids := make([]int, 0, len(page.Animals))
		for _, a := range page.Animals {
			ids = append(ids, a.ID)
		}
		assert.Equal(t, []int{100, 101, 200, 201, 300, 301}, ids)
	})

	t.Run("pages beyond the last are clamped", func(t *testing.T) {
		paged := &pagedAnimals{t: t, totalPages: 2, perPage: 1}
		server := newTestServer(t, paged.ServeHTTP)

		var logs bytes.Buffer
		client, err := NewClient("test-key", "test-secret", zerolog.New(&logs),
			WithBaseURL(server.URL), WithRateLimit(0, 0))
		require.NoError(t, err)

		page, err := client.SearchAnimals(ctx, AnimalSearch{}, PageOptions{Pages: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, page.PagesFetched)
		assert.Len(t, page.Animals, 2)
		assert.Len(t, paged.queries, 2)
		assert.Contains(t, logs.String(), "pages parameter exceeded maximum number of available pages")
	})

	t.Run("all pages use the largest page size", func(t *testing.T) {
		paged := &pagedAnimals{t: t, totalPages: 4, perPage: 1}
		client := newTestClient(t, newTestServer(t, paged.ServeHTTP))

		page, err := client.SearchAnimals(ctx, AnimalSearch{Limit: 10}, PageOptions{AllPages: true})
		require.NoError(t, err)
		assert.Equal(t, 4, page.PagesFetched)
		assert.Len(t, page.Animals, 4)
		for _, q := range paged.queries {
			assert.Contains(t, q, "limit=100")
		}
	})

	t.Run("start page", func(t *testing.T) {
		paged := &pagedAnimals{t: t, totalPages: 4, perPage: 1}
		client := newTestClient(t, newTestServer(t, paged.ServeHTTP))

		page, err := client.SearchAnimals(ctx, AnimalSearch{}, PageOptions{Page: 3, Pages: 2})
		require.NoError(t, err)
		require.Len(t, page.Animals, 2)
		assert.Equal(t, 300, page.Animals[0].ID)
		assert.Equal(t, 400, page.Animals[1].ID)
	})

	t.Run("invalid parameters never reach the API", func(t *testing.T) {
		paged := &pagedAnimals{t: t, totalPages: 1, perPage: 1}
		client := newTestClient(t, newTestServer(t, paged.ServeHTTP))

		_, err := client.SearchAnimals(ctx, AnimalSearch{Type: "dragon", Distance: 900}, PageOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidParameters)
		assert.Empty(t, paged.queries)

		_, err = client.SearchAnimals(ctx, AnimalSearch{}, PageOptions{Pages: -1})
		assert.ErrorIs(t, err, ErrInvalidParameters)
	})

	t.Run("problem response", func(t *testing.T) {
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/problem+json")
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"type":"https://httpstatus.es/400","status":400,"title":"Bad Request",
				"detail":"The request contains invalid parameters.",
				"invalid-params":[{"in":"query","path":"location","message":"Could not determine location."}]}`)
		})
		client := newTestClient(t, server)

		_, err := client.SearchAnimals(ctx, AnimalSearch{Location: "nowhere"}, PageOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidParameters)
		assert.Contains(t, err.Error(), "location: Could not determine location.")
	})
}

func TestRandomAnimals(t *testing.T) {
	paged := &pagedAnimals{t: t, totalPages: 1, perPage: 3}
	client := newTestClient(t, newTestServer(t, paged.ServeHTTP))
	ctx := context.Background()

	animals, err := client.RandomAnimals(ctx, AnimalSearch{Type: "bird", Sort: "recent"}, 3)
	require.NoError(t, err)
	assert.Len(t, animals, 3)
	require.Len(t, paged.queries, 1)
	assert.Contains(t, paged.queries[0], "sort=random")
	assert.Contains(t, paged.queries[0], "limit=3")

	for _, n := range []int{0, 101} {
		_, err := client.RandomAnimals(ctx, AnimalSearch{}, n)
		assert.ErrorIs(t, err, ErrInvalidParameters, "n=%d", n)
	}
}

func TestAnimalTypesAndBreeds(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/types":
			fmt.Fprint(w, `{"types":[{"name":"Dog","coats":["Short"],"colors":["Black"],"genders":["Male","Female"]},{"name":"Cat"}]}`)
		case "/types/rabbit":
			fmt.Fprint(w, `{"type":{"name":"Rabbit","coats":["Short","Long"]}}`)
		case "/types/dog/breeds":
			fmt.Fprint(w, `{"breeds":[{"name":"Poodle","_links":{"type":{"href":"/v2/types/dog"}}},{"name":"Akita","_links":{"type":{"href":"/v2/types/dog"}}}]}`)
		case "/types/cat/breeds":
			fmt.Fprint(w, `{"breeds":[{"name":"Siamese","_links":{"type":{"href":"/v2/types/cat"}}}]}`)
		default:
			http.NotFound(w, r)
		}
	})
	client := newTestClient(t, server)
	ctx := context.Background()

	t.Run("all types", func(t *testing.T) {
		types, err := client.AnimalTypes(ctx)
		require.NoError(t, err)
		require.Len(t, types, 2)
		assert.Equal(t, []string{"Male", "Female"}, types[0].Genders)
	})

	t.Run("single type", func(t *testing.T) {
		types, err := client.AnimalType(ctx, "Rabbit")
		require.NoError(t, err)
		require.Len(t, types, 1)
		assert.Equal(t, "Rabbit", types[0].Name)
	})

	t.Run("unknown types are all reported", func(t *testing.T) {
		_, err := client.AnimalType(ctx, "dog", "unicorn", "dragon")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidParameters)
		assert.Contains(t, err.Error(), `"unicorn", "dragon"`)
	})

	t.Run("breeds", func(t *testing.T) {
		breeds, err := client.Breeds(ctx, "dog", "cat")
		require.NoError(t, err)
		assert.Len(t, breeds["dog"], 2)
		assert.Len(t, breeds["cat"], 1)

		names := BreedNames(breeds)
		assert.Equal(t, []string{"Akita", "Poodle"}, names["dog"])
		assert.Equal(t, []string{"Siamese"}, names["cat"])
	})
}

func TestOrganizations(t *testing.T) {
	var mu sync.Mutex
	var queries []string

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/organizations":
			mu.Lock()
			queries = append(queries, r.URL.RawQuery)
			mu.Unlock()
			fmt.Fprint(w, `{"organizations":[{"id":"WA40","name":"Seattle Humane"}],
				"pagination":{"count_per_page":20,"total_count":1,"current_page":1,"total_pages":1}}`)
		case strings.HasPrefix(r.URL.Path, "/organizations/"):
			id := strings.TrimPrefix(r.URL.Path, "/organizations/")
			fmt.Fprintf(w, `{"organization":{"id":%q,"name":"Org %s"}}`, id, id)
		default:
			http.NotFound(w, r)
		}
	})
	client := newTestClient(t, server)
	ctx := context.Background()

	org, err := client.Organization(ctx, "NJ333")
	require.NoError(t, err)
	assert.Equal(t, "NJ333", org.ID)

	orgs, err := client.Organizations(ctx, "A1", "B2")
	require.NoError(t, err)
	require.Len(t, orgs, 2)
	assert.Equal(t, "A1", orgs[0].ID)
	assert.Equal(t, "B2", orgs[1].ID)

	_, err = client.Organization(ctx, " ")
	assert.ErrorIs(t, err, ErrInvalidParameters)

	page, err := client.SearchOrganizations(ctx, OrganizationSearch{State: "wa", Sort: "Name"}, PageOptions{})
	require.NoError(t, err)
	assert.Len(t, page.Organizations, 1)
	require.Len(t, queries, 1)
	assert.Equal(t, "sort=name&state=WA", queries[0])
}
