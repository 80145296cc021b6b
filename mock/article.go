package mock

import (
	"context"

	"github.com/fwojciec/headlines"
)

var _ headlines.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor is a mock implementation of headlines.ArticleExtractor.
type ArticleExtractor struct {
	ExtractFn func(html, baseURL string) ([]*headlines.Article, error)
}

func (e *ArticleExtractor) Extract(html, baseURL string) ([]*headlines.Article, error) {
	return e.ExtractFn(html, baseURL)
}

var _ headlines.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of headlines.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, rawURL string) ([]*headlines.Article, error)
}

func (s *Scraper) Scrape(ctx context.Context, rawURL string) ([]*headlines.Article, error) {
	return s.ScrapeFn(ctx, rawURL)
}
