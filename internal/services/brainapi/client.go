// Package brainapi fetches the user's recent servings from the Brain.fm
// API using credentials scavenged from the app's own local storage. The
// app refreshes its JWT every few minutes, so an expired or missing token
// is an expected state: the fetch degrades to "no data" and the caller
// falls back to disk-cache scraping.
package brainapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"entrain/internal/logging"
	"entrain/internal/services"
	"entrain/internal/trackcache"
)

const (
	// DefaultBaseURL is the production API host.
	DefaultBaseURL = "https://api.brain.fm"

	// DefaultTimeout bounds each HTTP request.
	DefaultTimeout = 10 * time.Second
)

// defaultRetryDelays is the wait before each attempt: immediate, then
// backing off to give the app time to refresh its token.
var defaultRetryDelays = []time.Duration{0, 2 * time.Second, 5 * time.Second}

var (
	tokenRE   = regexp.MustCompile(`eyJ[A-Za-z0-9_\-]+\.eyJ[A-Za-z0-9_\-]+\.[A-Za-z0-9_\-]+`)
	accountRE = regexp.MustCompile(`"userId":\s*"\\?"([A-Za-z0-9_\-]+)\\?"`)
)

// TextSource yields the printable text of the app's local storage, from
// which credentials are scavenged.
type TextSource interface {
	ReadStrings() string
}

type credentials struct {
	token     string
	accountID string
}

// Client calls the servings endpoint with retry and token re-extraction.
type Client struct {
	baseURL     string
	source      TextSource
	httpClient  *http.Client
	retryDelays []time.Duration
	sleep       func(time.Duration)
	now         func() time.Time
	logger      *slog.Logger
}

// Option adjusts client construction.
type Option func(*Client)

// WithBaseURL overrides the API host, mainly for tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithHTTPClient injects the HTTP client, including its timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithRetryDelays overrides the per-attempt wait schedule. The number of
// delays is the number of attempts.
func WithRetryDelays(delays []time.Duration) Option {
	return func(c *Client) {
		if len(delays) > 0 {
			c.retryDelays = delays
		}
	}
}

// WithSleeper injects the wait function used between attempts.
func WithSleeper(sleep func(time.Duration)) Option {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// WithClock injects the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New builds a client reading credentials from the given source.
func New(source TextSource, opts ...Option) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		source:      source,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		retryDelays: defaultRetryDelays,
		sleep:       time.Sleep,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.NewComponentLogger(c.logger, "brainapi")
	return c
}

// FetchRecent fetches the user's recent servings. It returns (nil, nil)
// when no usable credentials exist or every attempt failed softly; both
// mean "no structured data this cycle", not an error. Credentials are
// re-extracted on every attempt so a token the app refreshed mid-loop is
// picked up, in particular after a 401.
func (c *Client) FetchRecent(ctx context.Context) (*trackcache.Cache, error) {
	attempts := len(c.retryDelays)

	for attempt := 1; attempt <= attempts; attempt++ {
		if delay := c.retryDelays[attempt-1]; delay > 0 {
			c.logger.Debug("waiting before retry",
				logging.Int(logging.FieldAttempt, attempt),
				slog.Duration("delay", delay))
			c.sleep(delay)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		creds, ok := c.extractCredentials()
		if !ok {
			c.logger.Debug("no credentials in local storage", logging.Int(logging.FieldAttempt, attempt))
			return nil, nil
		}
		if c.tokenExpired(creds.token) {
			c.logger.Debug("token expired, waiting for app refresh", logging.Int(logging.FieldAttempt, attempt))
			continue
		}

		cache, retry, err := c.fetch(ctx, creds)
		if err != nil {
			return nil, err
		}
		if retry {
			continue
		}
		return cache, nil
	}

	c.logger.Debug("all attempts exhausted", logging.Int("attempts", attempts))
	return nil, nil
}

// fetch performs one request. retry=true means the attempt failed softly
// and the loop should continue.
func (c *Client) fetch(ctx context.Context, creds credentials) (*trackcache.Cache, bool, error) {
	url := fmt.Sprintf("%s/v3/users/%s/servings/recent", c.baseURL, creds.accountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, services.Wrap(services.ErrConfiguration, "brainapi", "build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+creds.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", logging.Error(err))
		return nil, true, nil
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.logger.Warn("unauthorized, re-reading credentials")
		return nil, true, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Warn("unexpected status", logging.Int("status", resp.StatusCode))
		return nil, true, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("reading response failed", logging.Error(err))
		return nil, true, nil
	}

	cache, err := trackcache.ParseServings(body)
	if err != nil {
		return nil, false, services.Wrap(services.ErrTransient, "brainapi", "parse servings", err)
	}
	c.logger.Debug("fetched servings", logging.Int("tracks", cache.Len()))
	return cache, false, nil
}

// extractCredentials scavenges the newest JWT and the account id from the
// local storage text. When every token is expired the newest one is still
// returned so the caller logs a precise reason instead of "no token".
func (c *Client) extractCredentials() (credentials, bool) {
	content := c.source.ReadStrings()

	tokens := tokenRE.FindAllString(content, -1)
	var token string
	for i := len(tokens) - 1; i >= 0; i-- {
		if !c.tokenExpired(tokens[i]) {
			token = tokens[i]
			break
		}
	}
	if token == "" && len(tokens) > 0 {
		token = tokens[len(tokens)-1]
	}

	var accountID string
	if m := accountRE.FindStringSubmatch(content); m != nil {
		accountID = m[1]
	}

	if token == "" || accountID == "" {
		return credentials{}, false
	}
	return credentials{token: token, accountID: accountID}, true
}
