// Package scrape runs a scrape end to end: validation, the result cache,
// fetching, extraction, and recording the result as the current snapshot.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/headlines"
)

var _ headlines.Scraper = (*Service)(nil)

// Service implements headlines.Scraper. Fetcher and Extractor are required.
// Validator, Cache and Store are optional; when nil their step is skipped.
type Service struct {
	Validator headlines.URLValidator
	Cache     headlines.ResultCache
	Fetcher   headlines.Fetcher
	Extractor headlines.ArticleExtractor
	Store     headlines.ArticleStore

	// RetryDelays enables retries of transient fetch failures.
	RetryDelays []time.Duration
	Logger      *slog.Logger
}

// Scrape returns the articles linked from the page at rawURL.
//
// A cached result skips fetching and extraction but still becomes the
// current snapshot.
func (s *Service) Scrape(ctx context.Context, rawURL string) ([]*headlines.Article, error) {
	rawURL = strings.TrimSpace(rawURL)

	if s.Validator != nil {
		if err := s.Validator.Validate(ctx, rawURL); err != nil {
			return nil, err
		}
	}

	if s.Cache != nil {
		if articles, ok := s.Cache.Get(rawURL); ok {
			if err := s.record(ctx, articles); err != nil {
				return nil, err
			}
			return articles, nil
		}
	}

	html, err := FetchWithRetry(ctx, rawURL, s.Fetcher.Fetch, s.RetryDelays, s.Logger)
	if err != nil {
		return nil, err
	}

	articles, err := s.Extractor.Extract(html, rawURL)
	if err != nil {
		return nil, err
	}

	if err := s.record(ctx, articles); err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.Set(rawURL, articles)
	}
	return articles, nil
}

func (s *Service) record(ctx context.Context, articles []*headlines.Article) error {
	if s.Store == nil {
		return nil
	}
	if err := s.Store.Replace(ctx, articles); err != nil {
		return fmt.Errorf("store articles: %w", err)
	}
	return nil
}
