package headlines

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its body.
	// The context controls timeout and cancellation.
	// Returns ETIMEOUT when the request times out.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// URLValidator checks that a URL is well-formed and reachable before it is
// scraped.
type URLValidator interface {
	// Validate returns EINVALID if rawURL is not an absolute http(s) URL
	// or if the host cannot be reached.
	Validate(ctx context.Context, rawURL string) error
}
