package mock

import (
	"io"

	"github.com/fwojciec/headlines"
)

var _ headlines.Exporter = (*Exporter)(nil)

// Exporter is a mock implementation of headlines.Exporter.
type Exporter struct {
	ExportFn      func(w io.Writer, articles []*headlines.Article) error
	FormatFn      func() headlines.ExportFormat
	ContentTypeFn func() string
}

func (e *Exporter) Export(w io.Writer, articles []*headlines.Article) error {
	return e.ExportFn(w, articles)
}

func (e *Exporter) Format() headlines.ExportFormat {
	return e.FormatFn()
}

func (e *Exporter) ContentType() string {
	return e.ContentTypeFn()
}
