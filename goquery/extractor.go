// Package goquery implements headlines.ArticleExtractor on top of goquery.
// It locates article-like elements on an arbitrary page, resolves a title
// and link for each, and infers a single publication date for the page.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/headlines"
)

// Ensure Extractor implements headlines.ArticleExtractor at compile time.
var _ headlines.ArticleExtractor = (*Extractor)(nil)

// Extractor extracts articles from a page using ordered heuristics.
// It holds no per-page state and is safe for concurrent use.
type Extractor struct {
	selectors []string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCandidateSelectors replaces the container patterns tried when
// locating candidates. Defaults to DefaultCandidateSelectors().
func WithCandidateSelectors(selectors ...string) Option {
	return func(e *Extractor) {
		e.selectors = selectors
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		selectors: DefaultCandidateSelectors(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses rawHTML and returns the articles it links to, in discovery
// order, deduplicated by URL (first occurrence wins). Every article carries
// the same page-level date.
//
// Candidates without a usable title or link are dropped silently. Returns
// ENOTFOUND when no candidate yields an article and EINVALID when baseURL
// is not an absolute URL.
func (e *Extractor) Extract(rawHTML string, baseURL string) ([]*headlines.Article, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, headlines.Errorf(headlines.EINVALID, "invalid base URL: %v", err)
	}
	if !base.IsAbs() {
		return nil, headlines.Errorf(headlines.EINVALID, "base URL must be absolute: %q", baseURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, headlines.Errorf(headlines.EINVALID, "failed to parse HTML: %v", err)
	}

	candidates := e.Locate(doc)
	if candidates.Length() == 0 {
		return nil, headlines.Errorf(headlines.ENOTFOUND, "no articles found")
	}

	seen := make(map[string]struct{})
	var articles []*headlines.Article
	candidates.Each(func(_ int, sel *goquery.Selection) {
		article, ok := ExtractArticle(sel, base)
		if !ok {
			return
		}
		if _, dup := seen[article.URL]; dup {
			return
		}
		seen[article.URL] = struct{}{}
		articles = append(articles, article)
	})

	if len(articles) == 0 {
		return nil, headlines.Errorf(headlines.ENOTFOUND, "no articles found")
	}

	date := ResolveDate(doc)
	for _, a := range articles {
		a.Date = date
	}

	return articles, nil
}
