// Package youtube wraps the YouTube Data API v3 resource families the server
// exposes: videos, channels, playlists and transcripts.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	gtransport "google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// ErrMissingCredential is returned by every service method when no API key is configured.
var ErrMissingCredential = errors.New("YOUTUBE_API_KEY environment variable is not set")

// ErrRemoteCall matches any *RemoteCallError via errors.Is.
var ErrRemoteCall = errors.New("remote call failed")

// RemoteCallError wraps a transport or API failure, keeping the original message.
type RemoteCallError struct {
	Op  string
	Err error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("failed to %s: %s", e.Op, e.Err.Error())
}

func (e *RemoteCallError) Unwrap() error { return e.Err }

func (e *RemoteCallError) Is(target error) bool { return target == ErrRemoteCall }

func remote(op string, err error) error {
	return &RemoteCallError{Op: op, Err: err}
}

// Config is fixed at process start and shared by every service.
type Config struct {
	APIKey string
	// HTTPClient supplies the outbound pipeline; the API key is layered on top.
	HTTPClient *http.Client
	// Endpoint overrides the API base path (must end in "/").
	Endpoint string
}

// Client lazily builds the Data API service on first use and memoizes the
// outcome, failure included, for the life of the process.
type Client struct {
	cfg  Config
	once sync.Once
	svc  *youtube.Service
	err  error
}

// NewClient returns a client for cfg. No network or credential check happens here.
func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg}
}

// KeyConfigured reports whether an API key was supplied.
func (c *Client) KeyConfigured() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

func (c *Client) service(ctx context.Context) (*youtube.Service, error) {
	c.once.Do(func() {
		if !c.KeyConfigured() {
			c.err = ErrMissingCredential
			return
		}

		var base http.RoundTripper = http.DefaultTransport
		hc := &http.Client{}
		if c.cfg.HTTPClient != nil {
			*hc = *c.cfg.HTTPClient
			if c.cfg.HTTPClient.Transport != nil {
				base = c.cfg.HTTPClient.Transport
			}
		}
		hc.Transport = &gtransport.APIKey{Key: c.cfg.APIKey, Transport: base}

		opts := []option.ClientOption{option.WithHTTPClient(hc)}
		if c.cfg.Endpoint != "" {
			opts = append(opts, option.WithEndpoint(c.cfg.Endpoint))
		}
		c.svc, c.err = youtube.NewService(ctx, opts...)
		if c.err != nil {
			c.err = fmt.Errorf("create youtube service: %w", c.err)
		}
	})
	return c.svc, c.err
}

// capItems trims a result slice to at most n entries.
func capItems[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

func firstOrNil[T any](items []*T) *T {
	if len(items) == 0 {
		return nil
	}
	return items[0]
}
