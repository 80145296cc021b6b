package main

import (
	"fmt"

	"github.com/fwojciec/headlines"
	"github.com/fwojciec/headlines/fs"
	"golang.org/x/sync/errgroup"
)

// Run executes the scrape command. Pages are scraped concurrently and their
// articles written in argument order. A failing page is reported on stderr
// without stopping the others.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	exporter := findExporter(deps.Exporters, headlines.ExportFormat(c.Format))
	if exporter == nil {
		return fmt.Errorf("unsupported format %q", c.Format)
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([][]*headlines.Article, len(c.URLs))
	errs := make([]error, len(c.URLs))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, u := range c.URLs {
		g.Go(func() error {
			results[i], errs[i] = deps.Scraper.Scrape(deps.Ctx, u)
			return nil
		})
	}
	_ = g.Wait()

	var articles []*headlines.Article
	failed := 0
	for i, err := range errs {
		if err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", c.URLs[i], headlines.ErrorMessage(err))
			continue
		}
		articles = append(articles, results[i]...)
	}

	if failed == len(c.URLs) {
		return fmt.Errorf("no articles extracted from %d URL(s)", failed)
	}

	if c.Output != "" {
		path, err := fs.NewExportWriter(c.Output).Write(exporter, articles)
		if err != nil {
			return fmt.Errorf("write %s: %w", c.Format, err)
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d articles to %s\n", len(articles), path)
		return nil
	}

	if err := exporter.Export(deps.Stdout, articles); err != nil {
		return fmt.Errorf("write %s: %w", c.Format, err)
	}
	if exporter.Format() == headlines.ExportJSON {
		fmt.Fprintln(deps.Stdout)
	}
	return nil
}

func findExporter(exporters []headlines.Exporter, format headlines.ExportFormat) headlines.Exporter {
	for _, e := range exporters {
		if e.Format() == format {
			return e
		}
	}
	return nil
}
