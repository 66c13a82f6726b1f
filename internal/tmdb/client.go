// Package tmdb proxies the third-party movie-metadata API. Responses are
// cached in Redis for a short TTL so repeated lookups of the same title do
// not burn through the upstream rate limit.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultBaseURL = "https://api.themoviedb.org/3"

// ErrUpstream reports a non-2xx answer from the metadata API. The caller
// surfaces a generic message; details stay in the logs.
var ErrUpstream = errors.New("movie metadata upstream error")

type Client struct {
	key     string
	baseURL string
	httpc   *http.Client
	cache   *redis.Client
	ttl     time.Duration
}

// New builds a client. rdb may be nil, in which case no caching happens.
// An empty key produces a disabled client (Enabled reports false).
func New(key string, rdb *redis.Client) *Client {
	return &Client{
		key:     sanitizeKey(key),
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		cache:   rdb,
		ttl:     5 * time.Minute,
	}
}

func (c *Client) Enabled() bool {
	return c.key != ""
}

// Search looks up movies by title.
func (c *Client) Search(ctx context.Context, query string) ([]byte, error) {
	q := url.Values{}
	q.Set("query", query)

	return c.get(ctx, "/search/movie", q)
}

// Movie fetches a single movie by its external id.
func (c *Client) Movie(ctx context.Context, id string) ([]byte, error) {
	return c.get(ctx, "/movie/"+url.PathEscape(id), nil)
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	cacheKey := "tmdb:" + path
	if len(q) > 0 {
		cacheKey += "?" + q.Encode()
	}

	if c.cache != nil {
		b, err := c.cache.Get(ctx, cacheKey).Bytes()
		if err == nil {
			return b, nil
		}
	}

	u := c.baseURL + path

	// v4 tokens ride in the Authorization header; legacy v3 keys go in the
	// query string.
	if !c.useBearer() {
		if q == nil {
			q = url.Values{}
		}
		q.Set("api_key", c.key)
	}

	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)

	if err != nil {
		return nil, err
	}

	if c.useBearer() {
		req.Header.Set("Authorization", "Bearer "+c.key)
	}

	resp, err := c.httpc.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	if c.cache != nil {
		// best effort; a cache write failure must not fail the lookup
		_ = c.cache.Set(ctx, cacheKey, body, c.ttl).Err()
	}

	return body, nil
}

// v4 tokens are JWT-like and start with "eyJ"; anything else is treated as a
// legacy v3 key.
func (c *Client) useBearer() bool {
	return len(c.key) > 20 && strings.HasPrefix(c.key, "eyJ")
}

// sanitizeKey strips accidental paste artifacts (a trailing URL, extra
// whitespace) from the configured key.
func sanitizeKey(raw string) string {
	key := strings.TrimSpace(raw)

	if i := strings.Index(strings.ToLower(key), "http"); i >= 0 {
		key = key[:i]
	}

	if fields := strings.Fields(key); len(fields) > 0 {
		return fields[0]
	}

	return ""
}
