package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/headlines"
)

var _ headlines.ArticleStore = (*LoggingArticleStore)(nil)

// LoggingArticleStore wraps an ArticleStore, logging mutations at debug.
// List is not logged.
type LoggingArticleStore struct {
	next   headlines.ArticleStore
	logger *slog.Logger
}

// NewLoggingArticleStore creates a new LoggingArticleStore.
func NewLoggingArticleStore(next headlines.ArticleStore, logger *slog.Logger) *LoggingArticleStore {
	return &LoggingArticleStore{next: next, logger: logger}
}

func (s *LoggingArticleStore) Replace(ctx context.Context, articles []*headlines.Article) (err error) {
	defer func(begin time.Time) {
		s.logger.DebugContext(ctx, "store replace",
			"articles", len(articles),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Replace(ctx, articles)
}

func (s *LoggingArticleStore) List(ctx context.Context) ([]*headlines.Article, error) {
	return s.next.List(ctx)
}

func (s *LoggingArticleStore) Delete(ctx context.Context, index int) (err error) {
	defer func(begin time.Time) {
		s.logger.DebugContext(ctx, "store delete",
			"index", index,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Delete(ctx, index)
}

func (s *LoggingArticleStore) Clear(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.DebugContext(ctx, "store clear",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Clear(ctx)
}
