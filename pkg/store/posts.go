package store

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"mailprobe/pkg/domain"
)

// postSQL represents a post for SQL operations
type postSQL struct {
	URL         string    `db:"url"`
	Source      string    `db:"source"`
	Title       string    `db:"title"`
	Body        string    `db:"body"`
	Score       int       `db:"score"`
	NumComments int       `db:"num_comments"`
	CreatedAt   time.Time `db:"created_at"`
	SearchTerm  string    `db:"search_term"`
	CollectedAt time.Time `db:"collected_at"`
}

func (p *postSQL) toDomain() domain.Post {
	return domain.Post{
		URL:         p.URL,
		Source:      p.Source,
		Title:       p.Title,
		Body:        p.Body,
		Score:       p.Score,
		NumComments: p.NumComments,
		CreatedAt:   p.CreatedAt,
		SearchTerm:  p.SearchTerm,
	}
}

// AddPosts inserts posts in one transaction and returns how many were new.
// Duplicate URLs are silently skipped, the first stored record wins. Lock
// errors are retried with backoff.
func (s *Store) AddPosts(ctx context.Context, posts []domain.Post) (inserted int, err error) {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	err = retrier.Do(ctx, func() error {
		inserted = 0
		txErr := s.InTransaction(ctx, func(tx *sqlx.Tx) error {
			query := `
				INSERT INTO posts (url, source, title, body, score, num_comments, created_at, search_term)
				VALUES (:url, :source, :title, :body, :score, :num_comments, :created_at, :search_term)
				ON CONFLICT(url) DO NOTHING
			`
			for i := range posts {
				p := &posts[i]
				sqlPost := &postSQL{
					URL:         p.URL,
					Source:      p.Source,
					Title:       p.Title,
					Body:        p.Body,
					Score:       p.Score,
					NumComments: p.NumComments,
					CreatedAt:   p.CreatedAt,
					SearchTerm:  p.SearchTerm,
				}
				result, err := tx.NamedExecContext(ctx, query, sqlPost)
				if err != nil {
					return fmt.Errorf("insert post %s: %w", p.URL, err)
				}
				rows, err := result.RowsAffected()
				if err != nil {
					return fmt.Errorf("get rows affected: %w", err)
				}
				inserted += int(rows)
			}
			return nil
		})
		if txErr != nil {
			if isLockError(txErr) {
				return txErr // repeater will retry this
			}
			return &criticalError{err: txErr}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("add posts: %w", err)
	}
	return inserted, nil
}

// ListPosts returns the whole corpus in insertion order
func (s *Store) ListPosts(ctx context.Context) ([]domain.Post, error) {
	var rows []postSQL
	query := `SELECT * FROM posts ORDER BY rowid`
	if err := s.conn.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]domain.Post, 0, len(rows))
	for i := range rows {
		posts = append(posts, rows[i].toDomain())
	}
	return posts, nil
}

// Count returns the number of stored posts
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.conn.GetContext(ctx, &count, `SELECT count(*) FROM posts`); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}
