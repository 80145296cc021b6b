package headlines

import (
	"io"
	"time"
)

// ExportFormat identifies a serialization of the current snapshot.
type ExportFormat string

// Supported export formats.
const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)

// Exporter serializes articles for download.
type Exporter interface {
	// Export writes articles to w.
	Export(w io.Writer, articles []*Article) error

	// Format returns the format the exporter produces.
	Format() ExportFormat

	// ContentType returns the MIME type of the exported data.
	ContentType() string
}

// ExportFilename returns the attachment name for an export taken at t,
// e.g. scraped_data_20240301_101500.csv.
func ExportFilename(format ExportFormat, t time.Time) string {
	return "scraped_data_" + t.Format("20060102_150405") + "." + string(format)
}
