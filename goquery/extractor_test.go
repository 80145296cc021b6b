package goquery_test

import (
	"net/url"
	"regexp"
	"testing"

	"github.com/fwojciec/headlines"
	hgoquery "github.com/fwojciec/headlines/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts article with meta tag date", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><meta property="article:published_time" content="2024-03-01T10:00:00Z"></head>
<body>
<article><h2><a href="/p/1">Title One</a></h2></article>
</body>
</html>`

		articles, err := hgoquery.NewExtractor().Extract(html, "https://ex.com/")

		require.NoError(t, err)
		assert.Equal(t, []*headlines.Article{
			{Title: "Title One", URL: "https://ex.com/p/1", Date: "2024-03-01"},
		}, articles)
	})

	t.Run("keeps links whose href wraps across lines", func(t *testing.T) {
		t.Parallel()

		html := "<html><head><meta name=\"date\" content=\"2024-3-1\"></head><body>" +
			"<article><h2><a href=\"/p/\t1\">Tabbed</a></h2></article>" +
			"<article><h2><a href=\"/p/\n2\">Wrapped</a></h2></article>" +
			"</body></html>"

		articles, err := hgoquery.NewExtractor().Extract(html, "https://ex.com/")

		require.NoError(t, err)
		assert.Equal(t, []*headlines.Article{
			{Title: "Tabbed", URL: "https://ex.com/p/1", Date: "2024-03-01"},
			{Title: "Wrapped", URL: "https://ex.com/p/2", Date: "2024-03-01"},
		}, articles)
	})

	t.Run("falls back to headings when no container matches", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h1><a href="https://other.com/x">Headline</a></h1>
<p>Nothing else</p>
</body></html>`

		articles, err := hgoquery.NewExtractor().Extract(html, "https://ex.com/")

		require.NoError(t, err)
		assert.Equal(t, []*headlines.Article{
			{Title: "Headline", URL: "https://other.com/x", Date: headlines.DateUnknown},
		}, articles)
	})

	t.Run("signals not found when containers have no links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<article><h2>First</h2><p>Body</p></article>
<article><h2>Second</h2></article>
<h1><a href="/elsewhere">Not consulted</a></h1>
</body></html>`

		articles, err := hgoquery.NewExtractor().Extract(html, "https://ex.com/")

		require.Error(t, err)
		assert.Equal(t, headlines.ENOTFOUND, headlines.ErrorCode(err))
		assert.Nil(t, articles)
	})

	t.Run("signals not found when the page has no candidates", func(t *testing.T) {
		t.Parallel()

		articles, err := hgoquery.NewExtractor().Extract(`<html><body><p>hello</p></body></html>`, "https://ex.com/")

		require.Error(t, err)
		assert.Equal(t, headlines.ENOTFOUND, headlines.ErrorCode(err))
		assert.Nil(t, articles)
	})

	t.Run("signals not found for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := hgoquery.NewExtractor().Extract("", "https://ex.com/")

		require.Error(t, err)
		assert.Equal(t, headlines.ENOTFOUND, headlines.ErrorCode(err))
	})

	t.Run("keeps first occurrence of duplicate links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="post"><h2><a href="/p/1">First copy</a></h2></div>
<div class="post"><h2><a href="https://ex.com/p/1">Second copy</a></h2></div>
</body></html>`

		articles, err := hgoquery.NewExtractor().Extract(html, "https://ex.com/")

		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Equal(t, "First copy", articles[0].Title)
		assert.Equal(t, "https://ex.com/p/1", articles[0].URL)
	})

	t.Run("drops rejected candidates and preserves discovery order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="entry"><h3><a href="/c">Charlie</a></h3></div>
<div class="entry"><h3>No link</h3></div>
<div class="entry"><h3><a href="/a">Alpha</a></h3></div>
<div class="entry"><h3><a href="/b">Bravo</a></h3></div>
</body></html>`

		articles, err := hgoquery.NewExtractor().Extract(html, "https://ex.com/")

		require.NoError(t, err)
		require.Len(t, articles, 3)
		assert.Equal(t, "Charlie", articles[0].Title)
		assert.Equal(t, "Alpha", articles[1].Title)
		assert.Equal(t, "Bravo", articles[2].Title)
	})

	t.Run("stamps one page-level date on every article", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<article><h2><a href="/1">One</a></h2><time datetime="2024-01-01">Jan 1</time></article>
<article><h2><a href="/2">Two</a></h2><time datetime="2023-06-30">Jun 30</time></article>
<article><h2><a href="//cdn.ex.com/3">Three</a></h2></article>
</body></html>`

		articles, err := hgoquery.NewExtractor().Extract(html, "https://ex.com/news/")

		require.NoError(t, err)
		require.Len(t, articles, 3)

		dateRe := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
		seen := make(map[string]bool)
		for _, a := range articles {
			assert.Equal(t, "2024-01-01", a.Date)
			assert.True(t, dateRe.MatchString(a.Date) || a.Date == headlines.DateUnknown)

			u, err := url.Parse(a.URL)
			require.NoError(t, err)
			assert.True(t, u.IsAbs(), "url %q should be absolute", a.URL)
			assert.False(t, seen[a.URL], "url %q should be unique", a.URL)
			seen[a.URL] = true

			require.NoError(t, a.Validate())
		}
	})

	t.Run("survives malformed markup", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article><h2><a href="/ok">Unclosed <b>tags<article><div class="x"`

		articles, err := hgoquery.NewExtractor().Extract(html, "https://ex.com/")

		require.NoError(t, err)
		require.NotEmpty(t, articles)
		assert.Equal(t, "https://ex.com/ok", articles[0].URL)
	})

	t.Run("returns EINVALID for unparsable base URL", func(t *testing.T) {
		t.Parallel()

		_, err := hgoquery.NewExtractor().Extract(`<article><a href="/x">X</a></article>`, "://missing-scheme")

		require.Error(t, err)
		assert.Equal(t, headlines.EINVALID, headlines.ErrorCode(err))
	})

	t.Run("returns EINVALID for relative base URL", func(t *testing.T) {
		t.Parallel()

		_, err := hgoquery.NewExtractor().Extract(`<article><a href="/x">X</a></article>`, "/news")

		require.Error(t, err)
		assert.Equal(t, headlines.EINVALID, headlines.ErrorCode(err))
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		e := hgoquery.NewExtractor()
		html := `<html><body><article><h2><a href="/p">P</a></h2></article></body></html>`

		done := make(chan []*headlines.Article, 8)
		for range 8 {
			go func() {
				articles, _ := e.Extract(html, "https://ex.com/")
				done <- articles
			}()
		}
		for range 8 {
			articles := <-done
			require.Len(t, articles, 1)
			assert.Equal(t, "https://ex.com/p", articles[0].URL)
		}
	})
}
