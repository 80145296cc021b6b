package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/headlines"
)

// titleSelector matches the headings that may carry a candidate's title.
const titleSelector = "h1, h2, h3, h4"

// ExtractArticle resolves the title and absolute URL of a single candidate.
// The returned article has no date; the pipeline stamps the page-level date
// afterwards. It returns false when the candidate has no usable title or link.
func ExtractArticle(candidate *goquery.Selection, base *url.URL) (*headlines.Article, bool) {
	titleSel := candidate.Find(titleSelector).First()
	if titleSel.Length() == 0 {
		titleSel = candidate
	}

	title := normalizeSpace(titleSel.Text())
	if title == "" {
		return nil, false
	}

	link := candidate.Find("a").First()
	if link.Length() == 0 {
		link = titleSel.Find("a").First()
	}
	if link.Length() == 0 {
		link = titleSel.ParentsFiltered("a").First()
	}

	href, exists := link.Attr("href")
	if !exists {
		return nil, false
	}

	resolved := resolveURL(base, href)
	if resolved == "" {
		return nil, false
	}

	return &headlines.Article{Title: title, URL: resolved}, true
}

// hrefNoise strips the tab and newline characters that URL parsers drop from
// attribute values, e.g. in hrefs wrapped across lines.
var hrefNoise = strings.NewReplacer("\t", "", "\n", "", "\r", "")

// resolveURL resolves href against base. Protocol-relative, path-relative
// and absolute references all come back absolute. Returns empty string if
// href is blank or cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(hrefNoise.Replace(href))
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// normalizeSpace trims s and collapses internal whitespace runs to a single space.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
