// Package transport builds the outbound http.RoundTripper pipeline shared by
// the Data API client and the caption scrapers.
package transport

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// Transport is an http.RoundTripper that applies, in order:
// Fingerprint → RobotsCheck → RateLimiter → Jitter → Proxy → Send.
// Every stage is optional; a zero Transport behaves like Base.
type Transport struct {
	Base        http.RoundTripper
	Robots      *RobotsChecker
	Fingerprint *FingerprintPool
	Proxy       *ProxyRotator
	Delay       *Jitter
	RateLimiter *rate.Limiter
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	req = req.Clone(ctx)

	ua := req.Header.Get("User-Agent")
	if t.Fingerprint != nil {
		fp := t.Fingerprint.Next()
		if ua == "" {
			ua = fp.UserAgent
			req.Header.Set("User-Agent", ua)
		}
		for key, vals := range fp.Headers {
			if req.Header.Get(key) == "" {
				req.Header[key] = vals
			}
		}
	}

	if t.Robots != nil {
		allowed, err := t.Robots.IsAllowed(ctx, ua, req.URL)
		if err == nil && !allowed {
			return nil, fmt.Errorf("blocked by robots.txt: %s", req.URL.Path)
		}
	}

	if t.RateLimiter != nil {
		if err := t.RateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	if t.Delay != nil {
		if err := t.Delay.Wait(ctx); err != nil {
			return nil, fmt.Errorf("delay: %w", err)
		}
	}

	next := t.Base
	if t.Proxy != nil {
		next = t.Proxy.Next().Transport()
	}
	if next == nil {
		next = http.DefaultTransport
	}
	return next.RoundTrip(req)
}
