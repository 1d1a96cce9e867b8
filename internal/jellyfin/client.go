// Package jellyfin implements the subset of the Jellyfin HTTP API that the
// sync pipeline needs: reading catalog metadata and maintaining collection
// membership.
package jellyfin

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	defaultTimeout       = 30 * time.Second
	defaultRetryTries    = 10
	defaultRetryInterval = time.Second
)

// Client is a Jellyfin API client authenticating with an API key.
// Methods are safe for concurrent use.
type Client struct {
	baseURL       string
	authHeader    string
	httpClient    *http.Client
	log           *slog.Logger
	retryTries    uint
	retryInterval time.Duration
}

// NewClient creates a client with the default retry policy.
func NewClient(baseURL, apiKey string, log *slog.Logger) *Client {
	return NewClientWithRetry(baseURL, apiKey, defaultRetryTries, defaultRetryInterval, log)
}

// NewClientWithRetry creates a client with a custom retry policy. tries
// bounds the total attempts per request; interval seeds the exponential
// backoff between attempts.
func NewClientWithRetry(baseURL, apiKey string, tries uint, interval time.Duration, log *slog.Logger) *Client {
	var clientLog *slog.Logger
	if log != nil {
		clientLog = log.With("component", "jellyfin")
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		authHeader: fmt.Sprintf(`MediaBrowser Token="%s", Client="collectarr", Device="collectarr", DeviceId="collectarr", Version="1.0"`, apiKey),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		log:           clientLog,
		retryTries:    tries,
		retryInterval: interval,
	}
}

// retryableStatus reports whether a response status is worth retrying:
// rate limiting and transient server failures.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// do executes a request with retries. The caller owns the response body.
// All request parameters travel in the query string, so every request is
// safe to replay.
func (c *Client) do(ctx context.Context, method, path string, params url.Values) (*http.Response, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	op := func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("Authorization", c.authHeader)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}
		_ = resp.Body.Close()

		statusErr := &StatusError{Op: method + " " + path, Code: resp.StatusCode}
		if !retryableStatus(resp.StatusCode) {
			return nil, backoff.Permanent(statusErr)
		}
		return nil, statusErr
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInterval

	opts := []backoff.RetryOption{
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(c.retryTries),
	}
	if c.log != nil {
		opts = append(opts, backoff.WithNotify(func(err error, delay time.Duration) {
			c.log.Warn("request failed, retrying",
				"method", method,
				"path", path,
				"delay_ms", delay.Milliseconds(),
				"error", err,
			)
		}))
	}

	return backoff.Retry(ctx, op, opts...)
}

// get performs a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, params)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// post performs a POST request, decoding the response into out when out is
// non-nil.
func (c *Client) post(ctx context.Context, path string, params url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodPost, path, params)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ServerInfo holds public server identity information.
type ServerInfo struct {
	Name    string `json:"ServerName"`
	Version string `json:"Version"`
	ID      string `json:"Id"`
}

// ServerInfo fetches the server's public identity. No authentication is
// required, which makes it a connectivity check.
func (c *Client) ServerInfo(ctx context.Context) (*ServerInfo, error) {
	var info ServerInfo
	if err := c.get(ctx, "/System/Info/Public", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// User is a server account.
type User struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

// Users lists the server's accounts.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/Users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UserByName resolves an account by name, case-insensitively.
// Returns ErrUserNotFound when no account matches.
func (c *Client) UserByName(ctx context.Context, name string) (*User, error) {
	users, err := c.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Name, name) {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", name, ErrUserNotFound)
}

// View is a top-level library visible to a user.
type View struct {
	ID             string `json:"Id"`
	Name           string `json:"Name"`
	CollectionType string `json:"CollectionType"`
}

type viewsResponse struct {
	Items []View `json:"Items"`
}

// Views lists the libraries visible to a user.
func (c *Client) Views(ctx context.Context, userID string) ([]View, error) {
	var resp viewsResponse
	if err := c.get(ctx, "/Users/"+userID+"/Views", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}
