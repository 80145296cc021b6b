package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/headlines"
)

var _ headlines.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with logging. Failures log at warn with
// their error code.
type LoggingScraper struct {
	next   headlines.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next headlines.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs the outcome.
func (s *LoggingScraper) Scrape(ctx context.Context, rawURL string) (articles []*headlines.Article, err error) {
	defer func(begin time.Time) {
		if err != nil {
			s.logger.WarnContext(ctx, "scrape",
				"url", rawURL,
				"code", headlines.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		s.logger.InfoContext(ctx, "scrape",
			"url", rawURL,
			"articles", len(articles),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.Scrape(ctx, rawURL)
}
