package petfinder

import (
	"context"
	"net/url"

	"golang.org/x/sync/errgroup"
)

// fetchEach calls fn for the indexes 0..n-1 with at most limit calls in
// flight. Results keep index order; the first error cancels the rest.
func fetchEach[T any](ctx context.Context, limit, n int, fn func(ctx context.Context, i int) (T, error)) ([]T, error) {
	results := make([]T, n)
	if n == 0 {
		return results, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))

	for i := range n {
		g.Go(func() error {
			v, err := fn(ctx, i)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v)+1)
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
