// Package reddit implements the post source: paginated keyword search
// against Reddit's public JSON endpoint, rate-limited to respect the
// fair-use policy.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"mailprobe/pkg/domain"
)

// Client queries the search endpoint of a subreddit
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
	delay     time.Duration
	limit     int
}

// Config holds client settings
type Config struct {
	BaseURL   string // defaults to https://www.reddit.com
	UserAgent string
	Timeout   time.Duration
	RateLimit time.Duration // mandatory delay between successive requests
	Limit     int           // maximum posts per request
}

// New creates a new search client
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.reddit.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 2 * time.Second
	}
	if cfg.Limit == 0 {
		cfg.Limit = 25
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		delay:     cfg.RateLimit,
		limit:     cfg.Limit,
	}
}

// listing is the wire shape of a search response
type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title       string  `json:"title"`
				Selftext    string  `json:"selftext"`
				Score       int     `json:"score"`
				NumComments int     `json:"num_comments"`
				CreatedUTC  float64 `json:"created_utc"`
				Permalink   string  `json:"permalink"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Search runs one keyword search restricted to a subreddit and converts the
// result records to domain posts. After the request completes the client
// sleeps for the configured rate-limit interval; the pipeline is
// single-threaded so there is nothing to overlap the wait with.
func (c *Client) Search(ctx context.Context, subreddit, query string) ([]domain.Post, error) {
	defer time.Sleep(c.delay)

	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "relevance")
	params.Set("limit", strconv.Itoa(c.limit))
	params.Set("restrict_sr", "on")
	reqURL := fmt.Sprintf("%s/r/%s/search.json?%s", c.baseURL, url.PathEscape(subreddit), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search r/%s: %w", subreddit, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search r/%s: unexpected status code: %d", subreddit, resp.StatusCode)
	}

	var payload listing
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	posts := make([]domain.Post, 0, len(payload.Data.Children))
	for _, child := range payload.Data.Children {
		d := child.Data
		posts = append(posts, domain.Post{
			URL:         "https://reddit.com" + d.Permalink,
			Source:      "r/" + subreddit,
			Title:       d.Title,
			Body:        d.Selftext,
			Score:       d.Score,
			NumComments: d.NumComments,
			CreatedAt:   time.Unix(int64(d.CreatedUTC), 0).UTC(),
			SearchTerm:  query,
		})
	}
	return posts, nil
}
