// Package gocache implements headlines.ResultCache on top of
// github.com/patrickmn/go-cache.
package gocache

import (
	"time"

	"github.com/fwojciec/headlines"
	"github.com/patrickmn/go-cache"
)

// DefaultTTL is how long a page's results stay fresh.
const DefaultTTL = 5 * time.Minute

var _ headlines.ResultCache = (*Cache)(nil)

// Cache is an in-memory, expiring ResultCache keyed by page URL.
// Entries are copied on the way in and out so callers cannot mutate
// cached results.
type Cache struct {
	cache *cache.Cache
}

// NewCache creates a Cache whose entries expire after ttl. Expired entries
// are purged every cleanupInterval.
func NewCache(ttl, cleanupInterval time.Duration) *Cache {
	return &Cache{cache: cache.New(ttl, cleanupInterval)}
}

func (c *Cache) Get(url string) ([]*headlines.Article, bool) {
	v, found := c.cache.Get(url)
	if !found {
		return nil, false
	}
	articles, ok := v.([]headlines.Article)
	if !ok {
		return nil, false
	}
	return unpack(articles), true
}

func (c *Cache) Set(url string, articles []*headlines.Article) {
	c.cache.SetDefault(url, pack(articles))
}

func (c *Cache) Clear() {
	c.cache.Flush()
}

// Len returns the number of entries, including expired ones not yet purged.
func (c *Cache) Len() int {
	return c.cache.ItemCount()
}

func pack(articles []*headlines.Article) []headlines.Article {
	out := make([]headlines.Article, len(articles))
	for i, a := range articles {
		out[i] = *a
	}
	return out
}

func unpack(articles []headlines.Article) []*headlines.Article {
	out := make([]*headlines.Article, len(articles))
	for i := range articles {
		a := articles[i]
		out[i] = &a
	}
	return out
}
