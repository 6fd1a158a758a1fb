package remote

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/mtgdump/pkg/domain/interfaces"
	"github.com/m-mizutani/mtgdump/pkg/domain/model"
	"github.com/m-mizutani/mtgdump/pkg/domain/types"
)

// Archive downloads take a while; match the generous timeout the upstream
// mirrors need for multi-hundred-MB payloads.
const defaultTimeout = 30 * time.Minute

type client struct {
	httpClient  *http.Client
	url         string
	authToken   string
	maxAttempts uint
}

// Option is a functional option for client configuration
type Option func(*client)

// WithAuthToken sends the token as a bearer Authorization header
func WithAuthToken(token string) Option {
	return func(c *client) {
		c.authToken = token
	}
}

// WithMaxAttempts sets how many times the GET is tried before giving up.
// 1 (the default) means fail-fast with no retry.
func WithMaxAttempts(n uint) Option {
	return func(c *client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithTimeout overrides the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// NewClient creates an HTTP archive source for the given URL
func NewClient(archiveURL string, opts ...Option) interfaces.Source {
	c := &client{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		url:         archiveURL,
		maxAttempts: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the final path component of the URL
func (c *client) Name() string {
	u, err := url.Parse(c.url)
	if err != nil {
		return path.Base(c.url)
	}
	return path.Base(u.Path)
}

// Open issues the GET and returns the response body as a stream. Retries
// with exponential backoff up to maxAttempts; 4xx responses stop retrying
// immediately since repeating them cannot succeed.
func (c *client) Open(ctx context.Context) (io.ReadCloser, *model.FetchInfo, error) {
	logger := ctxlog.From(ctx)
	logger.Info("Fetching archive", "url", c.url)

	attempt := 0
	operation := func() (*http.Response, error) {
		attempt++
		if attempt > 1 {
			logger.Info("Retrying fetch", "url", c.url, "attempt", attempt)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
		if err != nil {
			return nil, backoff.Permanent(goerr.Wrap(err, "failed to build request",
				goerr.T(types.ErrTagNetwork),
				goerr.V("url", c.url),
			))
		}
		if c.authToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.authToken)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to fetch archive",
				goerr.T(types.ErrTagNetwork),
				goerr.V("url", c.url),
			)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		drainAndClose(resp.Body)
		statusErr := goerr.New("unexpected HTTP status",
			goerr.T(types.ErrTagNetwork),
			goerr.V("url", c.url),
			goerr.V("status_code", resp.StatusCode),
		)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, backoff.Permanent(statusErr)
		}
		return nil, statusErr
	}

	resp, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.maxAttempts),
	)
	if err != nil {
		return nil, nil, err
	}

	info := &model.FetchInfo{
		URL:           resp.Request.URL.String(),
		StatusCode:    resp.StatusCode,
		ContentLength: resp.ContentLength,
	}

	return resp.Body, info, nil
}

// drainAndClose discards the remaining body so the connection can be reused
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
	_ = body.Close()
}
