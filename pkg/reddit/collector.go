package reddit

import (
	"context"

	"github.com/go-pkgz/lgr"

	"mailprobe/pkg/config"
	"mailprobe/pkg/domain"
)

// CollectAll runs the configured search matrix sequentially and returns
// everything collected. A failed query is logged and skipped, it never
// aborts the pass. On context cancellation the posts gathered so far are
// returned together with the context error so the caller can still persist
// the partial result.
func (c *Client) CollectAll(ctx context.Context, searches []config.Search) ([]domain.Post, error) {
	var collected []domain.Post

	for _, s := range searches {
		if err := ctx.Err(); err != nil {
			lgr.Printf("[WARN] collection interrupted, keeping %d posts gathered so far", len(collected))
			return collected, err
		}

		lgr.Printf("[DEBUG] searching r/%s for %q", s.Subreddit, s.Query)
		posts, err := c.Search(ctx, s.Subreddit, s.Query)
		if err != nil {
			lgr.Printf("[WARN] search r/%s for %q failed, skipping: %v", s.Subreddit, s.Query, err)
			continue
		}
		lgr.Printf("[INFO] collected %d posts from r/%s for %q", len(posts), s.Subreddit, s.Query)
		collected = append(collected, posts...)
	}
	return collected, nil
}
