// Package export serializes article lists for download.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/fwojciec/headlines"
)

var (
	_ headlines.Exporter = (*CSVExporter)(nil)
	_ headlines.Exporter = (*JSONExporter)(nil)
)

// All returns one exporter per supported format.
func All() []headlines.Exporter {
	return []headlines.Exporter{NewCSVExporter(), NewJSONExporter()}
}

// CSVExporter writes a title,url,date header followed by one row per
// article. Rows end in CRLF.
type CSVExporter struct{}

// NewCSVExporter returns a CSVExporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export writes articles as CSV.
func (e *CSVExporter) Export(w io.Writer, articles []*headlines.Article) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write([]string{"title", "url", "date"}); err != nil {
		return err
	}
	for _, a := range articles {
		if err := cw.Write([]string{a.Title, a.URL, a.Date}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (e *CSVExporter) Format() headlines.ExportFormat { return headlines.ExportCSV }

func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

// JSONExporter writes articles as an indented JSON array. Non-ASCII and
// HTML characters are written literally.
type JSONExporter struct {
	indent string
}

// NewJSONExporter returns a JSONExporter indenting by two spaces.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{indent: "  "}
}

// Export writes articles as JSON without a trailing newline.
func (e *JSONExporter) Export(w io.Writer, articles []*headlines.Article) error {
	if articles == nil {
		articles = []*headlines.Article{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", e.indent)
	if err := enc.Encode(articles); err != nil {
		return err
	}
	_, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return err
}

func (e *JSONExporter) Format() headlines.ExportFormat { return headlines.ExportJSON }

func (e *JSONExporter) ContentType() string { return "application/json" }
