package corpus

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailprobe/pkg/domain"
)

func TestWriteRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.csv")
	created := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	posts := []domain.Post{
		{
			URL: "https://reddit.com/r/gmail/1", Source: "r/gmail",
			Title: "Inbox, \"quoted\" and\nmultiline", Body: "body with, commas",
			Score: 42, NumComments: 7, CreatedAt: created, SearchTerm: "organize",
		},
		{
			URL: "https://reddit.com/r/productivity/2", Source: "r/productivity",
			Title: "no body here", Body: "", Score: 0, NumComments: 0,
			CreatedAt: created.Add(24 * time.Hour), SearchTerm: "too many emails",
		},
	}

	require.NoError(t, Write(path, posts))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, posts, got)
}

func TestRead_DeduplicatesFirstWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.csv")
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	posts := []domain.Post{
		{URL: "u1", Source: "r/gmail", Title: "first", CreatedAt: created},
		{URL: "u2", Source: "r/gmail", Title: "other", CreatedAt: created},
		{URL: "u1", Source: "r/gmail", Title: "second copy", CreatedAt: created},
	}
	require.NoError(t, Write(path, posts))

	got, err := Read(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Title, "first occurrence retained")
	assert.Equal(t, "other", got[1].Title)
}

func TestRead_Missing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRead_Malformed(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"wrong column count", "url,title\nu1,hello\n"},
		{"bad score", "url,source,title,body,score,num_comments,created_at,search_term\nu1,r/gmail,t,b,not-a-number,0,2025-01-01T00:00:00Z,q\n"},
		{"bad timestamp", "url,source,title,body,score,num_comments,created_at,search_term\nu1,r/gmail,t,b,1,0,yesterday,q\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.csv")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			_, err := Read(path)
			assert.Error(t, err)
			assert.NotErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestWrite_EmptyCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, Write(path, nil))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}
