package goquery

import "github.com/PuerkitoBio/goquery"

// headingSelector matches the elements used as candidates when no container
// pattern matches the page.
const headingSelector = "h1, h2, h3"

// DefaultCandidateSelectors returns the container patterns tried when
// locating article candidates, most specific first.
func DefaultCandidateSelectors() []string {
	return []string{
		"article",
		".article",
		".post",
		".entry",
		`div[class*="article"]`,
		`div[class*="post"]`,
		".story",
		".news-item",
	}
}

// Locate returns the elements of doc likely to represent article entries,
// in document order.
//
// Patterns are tried in order and the first one matching any element is
// committed to: its matches are returned and later patterns are never
// consulted. If no pattern matches, every h1-h3 heading is a candidate.
// The returned selection may be empty.
func (e *Extractor) Locate(doc *goquery.Document) *goquery.Selection {
	for _, selector := range e.selectors {
		if found := doc.Find(selector); found.Length() > 0 {
			return found
		}
	}
	return doc.Find(headingSelector)
}
