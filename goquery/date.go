package goquery

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/headlines"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// metaDateTag identifies a <meta> element by one attribute/value pair.
type metaDateTag struct {
	Attr  string
	Value string
}

// selector returns the CSS selector for the meta element.
func (m metaDateTag) selector() string {
	return `meta[` + m.Attr + `="` + m.Value + `"]`
}

// metaDateTags lists the metadata conventions carrying a publication date,
// in the order they are trusted.
var metaDateTags = []metaDateTag{
	{Attr: "property", Value: "article:published_time"},
	{Attr: "property", Value: "article:modified_time"},
	{Attr: "name", Value: "date"},
	{Attr: "name", Value: "pubdate"},
	{Attr: "name", Value: "lastmod"},
	{Attr: "itemprop", Value: "datePublished"},
	{Attr: "itemprop", Value: "dateModified"},
	{Attr: "name", Value: "DC.date.issued"},
	{Attr: "name", Value: "DC.date.created"},
	{Attr: "name", Value: "sailthru.date"},
	{Attr: "name", Value: "PublishDate"},
	{Attr: "name", Value: "pub-date"},
	{Attr: "name", Value: "publish-date"},
}

// openGraphDateTag is consulted after structured data.
var openGraphDateTag = metaDateTag{Attr: "property", Value: "og:published_time"}

// textDatePattern pairs a free-text date pattern with the layout used to
// parse what it matches.
type textDatePattern struct {
	re     *regexp.Regexp
	layout string
}

// textDatePatterns are tried in order against the page's visible text.
var textDatePatterns = []textDatePattern{
	{re: regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`), layout: "2006-01-02"}, // YYYY-MM-DD
	{re: regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`), layout: "01/02/2006"}, // MM/DD/YYYY
	{re: regexp.MustCompile(`\b\d{2}-\d{2}-\d{4}\b`), layout: "02-01-2006"}, // DD-MM-YYYY
}

// dateProbe inspects a document for a publication date.
type dateProbe func(doc *goquery.Document) (string, bool)

// dateChain is the ordered list of probes; the first to succeed wins.
var dateChain = []dateProbe{
	probeMetaTags,
	probeTimeElement,
	probeStructuredData,
	probeOpenGraph,
	probeVisibleText,
}

// ResolveDate returns the page-level publication date of doc in YYYY-MM-DD
// form, or headlines.DateUnknown if no probe yields a parsable date.
func ResolveDate(doc *goquery.Document) string {
	for _, probe := range dateChain {
		if date, ok := probe(doc); ok {
			return date
		}
	}
	return headlines.DateUnknown
}

func probeMetaTags(doc *goquery.Document) (string, bool) {
	for _, tag := range metaDateTags {
		if date, ok := metaDate(doc, tag); ok {
			return date, true
		}
	}
	return "", false
}

func probeOpenGraph(doc *goquery.Document) (string, bool) {
	return metaDate(doc, openGraphDateTag)
}

// metaDate parses the content of the first tag element with non-empty content.
func metaDate(doc *goquery.Document, tag metaDateTag) (string, bool) {
	var content string
	doc.Find(tag.selector()).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		content = strings.TrimSpace(sel.AttrOr("content", ""))
		return content == ""
	})
	if content == "" {
		return "", false
	}
	return normalizeDate(content)
}

func probeTimeElement(doc *goquery.Document) (string, bool) {
	datetime, ok := doc.Find("time[datetime]").First().Attr("datetime")
	if !ok {
		return "", false
	}
	return normalizeDate(datetime)
}

func probeStructuredData(doc *goquery.Document) (string, bool) {
	var date string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return true
		}
		if d, ok := structuredDataDate(data); ok {
			date = d
			return false
		}
		return true
	})
	return date, date != ""
}

// structuredDataDate walks a decoded JSON-LD value: a single object, an
// array of objects, or an object holding an @graph array.
func structuredDataDate(v any) (string, bool) {
	switch v := v.(type) {
	case []any:
		for _, item := range v {
			if date, ok := structuredDataDate(item); ok {
				return date, true
			}
		}
	case map[string]any:
		raw, _ := v["datePublished"].(string)
		if strings.TrimSpace(raw) == "" {
			raw, _ = v["dateCreated"].(string)
		}
		if strings.TrimSpace(raw) != "" {
			if date, ok := normalizeDate(raw); ok {
				return date, true
			}
		}
		if graph, ok := v["@graph"].([]any); ok {
			return structuredDataDate(graph)
		}
	}
	return "", false
}

func probeVisibleText(doc *goquery.Document) (string, bool) {
	texts := visibleText(doc)
	for _, pattern := range textDatePatterns {
		for _, text := range texts {
			match := pattern.re.FindString(text)
			if match == "" {
				continue
			}
			t, err := time.Parse(pattern.layout, match)
			if err != nil {
				break
			}
			return t.Format(headlines.DateLayout), true
		}
	}
	return "", false
}

// visibleText returns the document's text nodes in document order, skipping
// content browsers never render.
func visibleText(doc *goquery.Document) []string {
	var texts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				texts = append(texts, n.Data)
			}
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return texts
}

// lenientDateLayout accepts month and day with or without zero padding.
const lenientDateLayout = "2006-1-2"

// normalizeDate keeps the date portion of a date or date-time value and
// re-emits it in canonical YYYY-MM-DD form.
func normalizeDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, "T "); i >= 0 {
		raw = raw[:i]
	}
	t, err := time.Parse(lenientDateLayout, raw)
	if err != nil {
		return "", false
	}
	return t.Format(headlines.DateLayout), true
}
