package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/headlines"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ headlines.ArticleStore = (*ArticleStore)(nil)

// ArticleStore implements headlines.ArticleStore using SQLite.
// Rows keep their insertion position, so an index always refers to the
// n-th row in position order.
type ArticleStore struct {
	db *DB
}

// NewArticleStore creates a new ArticleStore.
func NewArticleStore(db *DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// Replace discards the current snapshot and stores articles in order.
// Nothing is changed if any article is invalid.
func (s *ArticleStore) Replace(ctx context.Context, articles []*headlines.Article) error {
	for _, a := range articles {
		if err := a.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM articles`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO articles (id, position, title, url, date, stored_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for i, a := range articles {
		if _, err := stmt.ExecContext(ctx, uuid.New().String(), i, a.Title, a.URL, a.Date, now); err != nil {
			return fmt.Errorf("failed to insert article %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// List returns the current snapshot in order.
func (s *ArticleStore) List(ctx context.Context) ([]*headlines.Article, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, url, date
		FROM articles
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*headlines.Article
	for rows.Next() {
		var a headlines.Article
		if err := rows.Scan(&a.Title, &a.URL, &a.Date); err != nil {
			return nil, err
		}
		articles = append(articles, &a)
	}

	return articles, rows.Err()
}

// Delete removes the article at the zero-based index.
func (s *ArticleStore) Delete(ctx context.Context, index int) error {
	if index < 0 {
		return headlines.Errorf(headlines.ENOTFOUND, "no article at index %d", index)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM articles
		ORDER BY position ASC
		LIMIT 1 OFFSET ?
	`, index).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return headlines.Errorf(headlines.ENOTFOUND, "no article at index %d", index)
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}

// Clear empties the snapshot.
func (s *ArticleStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM articles`)
	return err
}

// Count returns the number of stored articles.
func (s *ArticleStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&n)
	return n, err
}
