package webclient

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/meridianpay/sitescan/internal/logging"
)

// PageCache is the optional cross-scan fetch cache keyed by canonical URL.
// Get must return nil for missing or expired entries. Implementations can
// be backed by an external store; MemoryCache ships for local use.
type PageCache interface {
	Get(url string) *Response
	Put(url string, resp *Response, expiresAt time.Time)
}

// CachedClient decorates a WebClient with a PageCache. A cache hit
// short-circuits the network fetch. Only successful GET responses are
// cached.
type CachedClient struct {
	inner  WebClient
	cache  PageCache
	ttl    time.Duration
	logger logging.Logger
}

// NewCachedClient wraps inner. A nil cache disables caching entirely.
func NewCachedClient(inner WebClient, cache PageCache, ttl time.Duration, logger logging.Logger) *CachedClient {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &CachedClient{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With(logging.Field{Key: "component", Value: "webclient-cache"}),
	}
}

func (c *CachedClient) Do(ctx context.Context, req *Request) (*Response, error) {
	cacheable := c.cache != nil && req != nil &&
		(req.Method == "" || req.Method == http.MethodGet)

	if cacheable {
		if hit := c.cache.Get(req.URL); hit != nil {
			c.logger.Debug("cache hit", logging.Field{Key: "url", Value: req.URL})
			out := *hit
			out.FromCache = true
			return &out, nil
		}
	}

	resp, err := c.inner.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if cacheable && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.cache.Put(req.URL, resp, time.Now().Add(c.ttl))
	}
	return resp, nil
}

func (c *CachedClient) Close() error { return c.inner.Close() }

// MemoryCache is an in-process TTL cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	resp      *Response
	expiresAt time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]cacheEntry)}
}

func (m *MemoryCache) Get(url string) *Response {
	m.mu.RLock()
	e, ok := m.entries[url]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	if time.Now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, url)
		m.mu.Unlock()
		return nil
	}
	return e.resp
}

func (m *MemoryCache) Put(url string, resp *Response, expiresAt time.Time) {
	m.mu.Lock()
	m.entries[url] = cacheEntry{resp: resp, expiresAt: expiresAt}
	m.mu.Unlock()
}
