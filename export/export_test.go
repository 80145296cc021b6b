package export_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fwojciec/headlines"
	"github.com/fwojciec/headlines/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleArticles() []*headlines.Article {
	return []*headlines.Article{
		{Title: "First", URL: "https://ex.com/1", Date: "2024-03-01"},
		{Title: `Quotes "and", commas`, URL: "https://ex.com/2?a=1&b=2", Date: headlines.DateUnknown},
	}
}

func TestCSVExporter_Export(t *testing.T) {
	t.Parallel()

	t.Run("writes header and rows with CRLF endings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := export.NewCSVExporter().Export(&buf, sampleArticles())

		require.NoError(t, err)
		want := "title,url,date\r\n" +
			"First,https://ex.com/1,2024-03-01\r\n" +
			"\"Quotes \"\"and\"\", commas\",https://ex.com/2?a=1&b=2,Unknown\r\n"
		assert.Equal(t, want, buf.String())
	})

	t.Run("writes only the header for an empty list", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, export.NewCSVExporter().Export(&buf, nil))
		assert.Equal(t, "title,url,date\r\n", buf.String())
	})

	t.Run("reports writer failures", func(t *testing.T) {
		t.Parallel()

		err := export.NewCSVExporter().Export(failingWriter{}, sampleArticles())
		assert.Error(t, err)
	})
}

func TestJSONExporter_Export(t *testing.T) {
	t.Parallel()

	t.Run("writes an indented array without escaping", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		articles := []*headlines.Article{
			{Title: "Café <b>&</b>", URL: "https://ex.com/?a=1&b=2", Date: "2024-03-01"},
		}
		err := export.NewJSONExporter().Export(&buf, articles)

		require.NoError(t, err)
		want := "[\n" +
			"  {\n" +
			"    \"title\": \"Café <b>&</b>\",\n" +
			"    \"url\": \"https://ex.com/?a=1&b=2\",\n" +
			"    \"date\": \"2024-03-01\"\n" +
			"  }\n" +
			"]"
		assert.Equal(t, want, buf.String())
	})

	t.Run("round trips through encoding/json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, export.NewJSONExporter().Export(&buf, sampleArticles()))

		var got []*headlines.Article
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, sampleArticles(), got)
	})

	t.Run("writes an empty array for no articles", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, export.NewJSONExporter().Export(&buf, nil))
		assert.Equal(t, "[]", buf.String())
	})
}

func TestAll(t *testing.T) {
	t.Parallel()

	exporters := export.All()
	require.Len(t, exporters, 2)
	assert.Equal(t, headlines.ExportCSV, exporters[0].Format())
	assert.Equal(t, "text/csv; charset=utf-8", exporters[0].ContentType())
	assert.Equal(t, headlines.ExportJSON, exporters[1].Format())
	assert.Equal(t, "application/json", exporters[1].ContentType())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
