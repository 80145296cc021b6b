package headlines

import (
	"context"
	"net/url"
	"regexp"
	"strings"
)

// DateUnknown is the date stamped on articles when no publication date
// could be inferred from the page.
const DateUnknown = "Unknown"

// DateLayout is the canonical layout of a resolved article date.
const DateLayout = "2006-01-02"

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Article is a single entry discovered on a page.
type Article struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Date  string `json:"date"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return Errorf(EINVALID, "article title required")
	}
	u, err := url.Parse(a.URL)
	if err != nil || !u.IsAbs() {
		return Errorf(EINVALID, "article URL must be absolute: %q", a.URL)
	}
	if a.Date != DateUnknown && !dateRe.MatchString(a.Date) {
		return Errorf(EINVALID, "article date must be YYYY-MM-DD or %q: %q", DateUnknown, a.Date)
	}
	return nil
}

// ArticleExtractor turns one page of HTML into the ordered list of articles
// it links to.
type ArticleExtractor interface {
	// Extract parses html and returns articles in discovery order. Relative
	// links are resolved against baseURL. Every returned article carries the
	// same page-level date.
	//
	// Returns ENOTFOUND if the page has no article-like content.
	Extract(html string, baseURL string) ([]*Article, error)
}

// Scraper runs the full scrape of a URL: validation, fetching, extraction
// and recording of the result as the current snapshot.
type Scraper interface {
	// Scrape returns the articles found on the page at rawURL.
	// Returns EINVALID for malformed or unreachable URLs and ENOTFOUND
	// when the page has no article-like content.
	Scrape(ctx context.Context, rawURL string) ([]*Article, error)
}
