package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/headlines"
)

var _ headlines.ArticleExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an ArticleExtractor with logging.
type LoggingExtractor struct {
	next   headlines.ArticleExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next headlines.ArticleExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs how many articles
// were found and the page date they carry.
func (e *LoggingExtractor) Extract(html, baseURL string) (articles []*headlines.Article, err error) {
	defer func(begin time.Time) {
		date := ""
		if len(articles) > 0 {
			date = articles[0].Date
		}
		e.logger.Info("extract",
			"url", baseURL,
			"articles", len(articles),
			"date", date,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, baseURL)
}
