package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/headlines"
	"github.com/fwojciec/headlines/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkArticleStore_Replace measures snapshot replacement for typical
// listing page sizes on a file-backed and an in-memory database.
func BenchmarkArticleStore_Replace(b *testing.B) {
	for _, size := range []int{10, 100} {
		b.Run(fmt.Sprintf("file_%d", size), func(b *testing.B) {
			benchmarkReplace(b, filepath.Join(b.TempDir(), "bench.db"), size)
		})
		b.Run(fmt.Sprintf("memory_%d", size), func(b *testing.B) {
			benchmarkReplace(b, ":memory:", size)
		})
	}
}

func benchmarkReplace(b *testing.B, path string, size int) {
	b.Helper()

	db := sqlite.NewDB(path)
	require.NoError(b, db.Open())
	defer db.Close()

	list := make([]*headlines.Article, size)
	for i := range list {
		list[i] = &headlines.Article{
			Title: fmt.Sprintf("Article %d", i),
			URL:   fmt.Sprintf("https://example.com/news/%d", i),
			Date:  "2024-03-01",
		}
	}

	store := sqlite.NewArticleStore(db)
	ctx := context.Background()

	for b.Loop() {
		if err := store.Replace(ctx, list); err != nil {
			b.Fatal(err)
		}
	}
}
