// Package gateway reads employees, posts and comments from a
// JSONPlaceholder-style collection store over HTTP.
//
// Each operation documents its own failure contract. ListPosts degrades to an
// empty PostsResult for a missing id or a non-success status; every other
// operation returns a *FetchError.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/hay-kot/roster/internal/core/feed"
	"github.com/hay-kot/roster/internal/core/logging"
)

// DefaultBaseURL is the public JSONPlaceholder endpoint.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// Config holds client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// RequestsPerSecond paces outgoing requests. Zero disables pacing.
	RequestsPerSecond float64
	Burst             int
	UserAgent         string
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		Timeout:           10 * time.Second,
		RequestsPerSecond: 10,
		Burst:             5,
		UserAgent:         "roster",
	}
}

// Client is safe for concurrent use.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// New creates a client. Zero-valued config fields fall back to DefaultConfig.
func New(cfg Config, logger zerolog.Logger) *Client {
	defaults := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaults.Burst
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, cfg.Burst),
		logger:  logging.Sub(logger, "gateway"),
	}
}

// BaseURL returns the normalized base endpoint.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// ListEmployees fetches every employee. Any failure is a *FetchError and no
// partial result is returned.
func (c *Client) ListEmployees(ctx context.Context) ([]feed.Employee, error) {
	var out []feed.Employee
	if err := c.getJSON(ctx, "/users", nil, &out); err != nil {
		return nil, c.fail(ctx, KindEmployees, 0, err)
	}
	return out, nil
}

// ListPosts fetches an employee's posts. A zero userID degrades without a
// network call; a non-success status also degrades. Transport and decode
// failures are returned as a *FetchError.
func (c *Client) ListPosts(ctx context.Context, userID int) (PostsResult, error) {
	if userID == 0 {
		c.logger.Warn().Ctx(ctx).Msg("list posts: no employee id provided")
		return Degraded(ErrNoEmployeeID), nil
	}

	var out []feed.Post
	err := c.getJSON(ctx, "/posts", url.Values{"userId": {strconv.Itoa(userID)}}, &out)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			c.logger.Warn().Ctx(ctx).Int("user_id", userID).Int("status", se.Code).Msg("list posts: degraded")
			return Degraded(se), nil
		}
		return PostsResult{}, c.fail(ctx, KindPosts, userID, err)
	}

	return Loaded(out), nil
}

// GetEmployee fetches a single employee. Any failure is a *FetchError;
// callers rely on a populated author.
func (c *Client) GetEmployee(ctx context.Context, id int) (feed.Employee, error) {
	var out feed.Employee
	if err := c.getJSON(ctx, "/users/"+strconv.Itoa(id), nil, &out); err != nil {
		return feed.Employee{}, c.fail(ctx, KindEmployee, id, err)
	}
	return out, nil
}

// ListComments fetches a post's comments. Any failure is a *FetchError.
func (c *Client) ListComments(ctx context.Context, postID int) ([]feed.Comment, error) {
	var out []feed.Comment
	if err := c.getJSON(ctx, "/posts/"+strconv.Itoa(postID)+"/comments", nil, &out); err != nil {
		return nil, c.fail(ctx, KindComments, postID, err)
	}
	return out, nil
}

func (c *Client) fail(ctx context.Context, kind Kind, id int, err error) error {
	fe := &FetchError{Kind: kind, ID: id, Err: err}
	c.logger.Error().Ctx(ctx).Err(err).Str("kind", string(kind)).Int("id", id).Msg("fetch failed")
	return fe
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.cfg.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for request slot: %w", err)
	}

	endpoint := c.endpoint(path, query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug().Err(err).Str("path", path).Msg("close response body")
		}
	}()

	c.logger.Debug().Ctx(ctx).
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("GET")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, URL: endpoint}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s body: %w", path, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	return nil
}
