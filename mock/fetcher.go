package mock

import (
	"context"

	"github.com/fwojciec/headlines"
)

var _ headlines.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of headlines.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ headlines.URLValidator = (*URLValidator)(nil)

// URLValidator is a mock implementation of headlines.URLValidator.
type URLValidator struct {
	ValidateFn func(ctx context.Context, rawURL string) error
}

func (v *URLValidator) Validate(ctx context.Context, rawURL string) error {
	return v.ValidateFn(ctx, rawURL)
}
