package headlines

import "context"

// ArticleStore holds the current result snapshot. A new scrape replaces the
// snapshot rather than appending to it.
type ArticleStore interface {
	// Replace discards the current snapshot and stores articles in order.
	Replace(ctx context.Context, articles []*Article) error

	// List returns the current snapshot in order.
	List(ctx context.Context) ([]*Article, error)

	// Delete removes the article at the zero-based index. Later articles
	// move up one position.
	// Returns ENOTFOUND if the index is out of range.
	Delete(ctx context.Context, index int) error

	// Clear empties the snapshot.
	Clear(ctx context.Context) error
}

// ResultCache holds recent extraction results keyed by page URL.
type ResultCache interface {
	// Get returns the cached articles for url, if present and fresh.
	Get(url string) ([]*Article, bool)

	// Set caches articles for url using the cache's default expiration.
	Set(url string, articles []*Article)

	// Clear drops every cached entry.
	Clear()
}

// ClientLimiter bounds how often a single client may trigger a scrape.
type ClientLimiter interface {
	// Allow reports whether the client identified by key may proceed now.
	// A true result consumes one request from the client's allowance.
	Allow(key string) bool
}
