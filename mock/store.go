package mock

import (
	"context"

	"github.com/fwojciec/headlines"
)

var _ headlines.ArticleStore = (*ArticleStore)(nil)

// ArticleStore is a mock implementation of headlines.ArticleStore.
type ArticleStore struct {
	ReplaceFn func(ctx context.Context, articles []*headlines.Article) error
	ListFn    func(ctx context.Context) ([]*headlines.Article, error)
	DeleteFn  func(ctx context.Context, index int) error
	ClearFn   func(ctx context.Context) error
}

func (s *ArticleStore) Replace(ctx context.Context, articles []*headlines.Article) error {
	return s.ReplaceFn(ctx, articles)
}

func (s *ArticleStore) List(ctx context.Context) ([]*headlines.Article, error) {
	return s.ListFn(ctx)
}

func (s *ArticleStore) Delete(ctx context.Context, index int) error {
	return s.DeleteFn(ctx, index)
}

func (s *ArticleStore) Clear(ctx context.Context) error {
	return s.ClearFn(ctx)
}

var _ headlines.ResultCache = (*ResultCache)(nil)

// ResultCache is a mock implementation of headlines.ResultCache.
type ResultCache struct {
	GetFn   func(url string) ([]*headlines.Article, bool)
	SetFn   func(url string, articles []*headlines.Article)
	ClearFn func()
}

func (c *ResultCache) Get(url string) ([]*headlines.Article, bool) {
	return c.GetFn(url)
}

func (c *ResultCache) Set(url string, articles []*headlines.Article) {
	c.SetFn(url, articles)
}

func (c *ResultCache) Clear() {
	c.ClearFn()
}

var _ headlines.ClientLimiter = (*ClientLimiter)(nil)

// ClientLimiter is a mock implementation of headlines.ClientLimiter.
type ClientLimiter struct {
	AllowFn func(key string) bool
}

func (l *ClientLimiter) Allow(key string) bool {
	return l.AllowFn(key)
}
