// Package fs writes exports to the local filesystem.
package fs

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/headlines"
)

// ExportWriter writes exports into a directory using the standard export
// filename, e.g. scraped_data_20240301_101500.csv.
type ExportWriter struct {
	baseDir string

	// Now returns the timestamp used in filenames. Defaults to time.Now.
	Now func() time.Time
}

// NewExportWriter creates an ExportWriter for baseDir.
func NewExportWriter(baseDir string) *ExportWriter {
	return &ExportWriter{baseDir: baseDir, Now: time.Now}
}

// Write serializes articles with e and returns the path of the new file.
// The file appears only once fully written.
func (w *ExportWriter) Write(e headlines.Exporter, articles []*headlines.Article) (string, error) {
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(w.baseDir, ".export-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if err := e.Export(tmp, articles); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", err
	}

	path := filepath.Join(w.baseDir, headlines.ExportFilename(e.Format(), w.Now()))
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}
