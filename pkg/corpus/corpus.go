// Package corpus reads and writes the tabular corpus interchange file.
// The format round-trips every post field: one header row, one row per
// post, timestamps in RFC3339. A corpus cleaned by hand in a spreadsheet
// loads back unchanged.
package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"mailprobe/pkg/domain"
)

// ErrNotFound is returned when the corpus file does not exist
var ErrNotFound = errors.New("corpus file not found")

var header = []string{"url", "source", "title", "body", "score", "num_comments", "created_at", "search_term"}

// Write saves posts to a CSV file with a header row
func Write(path string, posts []domain.Post) error {
	f, err := os.Create(path) //nolint:gosec // path comes from CLI flag
	if err != nil {
		return fmt.Errorf("create corpus file: %w", err)
	}
	defer f.Close() //nolint:errcheck // error checked on the writer flush below

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range posts {
		p := &posts[i]
		rec := []string{
			p.URL,
			p.Source,
			p.Title,
			p.Body,
			strconv.Itoa(p.Score),
			strconv.Itoa(p.NumComments),
			p.CreatedAt.Format(time.RFC3339),
			p.SearchTerm,
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write post %s: %w", p.URL, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush corpus file: %w", err)
	}
	return f.Close()
}

// Read loads posts from a CSV file. Duplicate URLs collapse to the first
// occurrence. A missing file returns ErrNotFound so callers can distinguish
// "run the collector first" from a corrupt corpus.
func Read(path string) ([]domain.Post, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from CLI flag
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open corpus file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse corpus file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse corpus file: missing header row")
	}
	if len(records[0]) != len(header) {
		return nil, fmt.Errorf("parse corpus file: expected %d columns, got %d", len(header), len(records[0]))
	}

	posts := make([]domain.Post, 0, len(records)-1)
	seen := make(map[string]struct{}, len(records)-1)
	for i, rec := range records[1:] {
		post, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("parse corpus row %d: %w", i+2, err)
		}
		if _, dup := seen[post.URL]; dup {
			continue // first occurrence wins
		}
		seen[post.URL] = struct{}{}
		posts = append(posts, post)
	}
	return posts, nil
}

func parseRecord(rec []string) (domain.Post, error) {
	score, err := strconv.Atoi(rec[4])
	if err != nil {
		return domain.Post{}, fmt.Errorf("score: %w", err)
	}
	numComments, err := strconv.Atoi(rec[5])
	if err != nil {
		return domain.Post{}, fmt.Errorf("num_comments: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339, rec[6])
	if err != nil {
		return domain.Post{}, fmt.Errorf("created_at: %w", err)
	}
	return domain.Post{
		URL:         rec[0],
		Source:      rec[1],
		Title:       rec[2],
		Body:        rec[3],
		Score:       score,
		NumComments: numComments,
		CreatedAt:   createdAt,
		SearchTerm:  rec[7],
	}, nil
}
