package transport

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// ProxyProvider routes traffic through one HTTP or SOCKS5 proxy.
type ProxyProvider struct {
	URL       *url.URL
	transport http.RoundTripper
}

// Transport returns the provider's round-tripper.
func (p *ProxyProvider) Transport() http.RoundTripper { return p.transport }

// Name returns the proxy host, without credentials.
func (p *ProxyProvider) Name() string { return p.URL.Host }

// ProxyRotator cycles through proxy providers.
type ProxyRotator struct {
	providers []*ProxyProvider
	mu        sync.Mutex
	idx       int
}

// NewProxyRotator parses proxy URLs into a rotator.
// Returns nil, nil when the list is empty.
func NewProxyRotator(rawURLs []string) (*ProxyRotator, error) {
	if len(rawURLs) == 0 {
		return nil, nil
	}
	providers := make([]*ProxyProvider, 0, len(rawURLs))
	for _, raw := range rawURLs {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse proxy %q: %w", raw, err)
		}
		if u.Host == "" {
			return nil, fmt.Errorf("proxy %q has no host", raw)
		}
		switch u.Scheme {
		case "http", "https", "socks5":
		default:
			return nil, fmt.Errorf("proxy %q: unsupported scheme %q", raw, u.Scheme)
		}
		providers = append(providers, &ProxyProvider{
			URL: u,
			transport: &http.Transport{
				Proxy:           http.ProxyURL(u),
				IdleConnTimeout: 30 * time.Second,
			},
		})
	}
	return &ProxyRotator{providers: providers}, nil
}

// Next returns the next provider in round-robin order.
func (p *ProxyRotator) Next() *ProxyProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	provider := p.providers[p.idx%len(p.providers)]
	p.idx++
	return provider
}

// Len reports how many proxies are in rotation.
func (p *ProxyRotator) Len() int {
	return len(p.providers)
}
