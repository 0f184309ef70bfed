package domain

import (
	"strings"
	"time"
)

// Post is one raw record collected from the post source.
// URL doubles as the stable unique identifier within a corpus.
type Post struct {
	URL         string
	Source      string // community label, e.g. "r/productivity"
	Title       string
	Body        string // self-text, may be empty
	Score       int
	NumComments int
	CreatedAt   time.Time
	SearchTerm  string // query that surfaced the post, provenance only
}

// CombinedText returns the lowercased concatenation of title and body,
// the uniform input to all text-rule evaluation. Recomputed on demand,
// never stored.
func (p *Post) CombinedText() string {
	return strings.ToLower(p.Title) + " " + strings.ToLower(p.Body)
}

// Engagement is the ranking signal, score plus comment count.
func (p *Post) Engagement() int {
	return p.Score + p.NumComments
}

// ClassifiedPost is a post with derived classification fields. The derived
// fields are pure functions of the post's text; the embedded post is not
// mutated.
type ClassifiedPost struct {
	Post
	Relevant   bool
	Categories []string
	Solutions  []string
}
