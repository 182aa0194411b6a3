package webclient

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/meridianpay/sitescan/internal/logging"
)

// NetHTTPClient is the net/http backed WebClient. It counts redirect hops
// per request and records TLS facts from the final response.
type NetHTTPClient struct {
	client *http.Client
	cfg    Config
	logger logging.Logger
}

// redirectCounter tracks hops for a single logical request. The counter
// lives in the request context so concurrent requests don't interfere.
type redirectCounterKey struct{}

// NewNetHTTPClient builds a client from cfg. Pass a non-nil httpClient to
// override the transport (tests inject httptest clients this way).
func NewNetHTTPClient(cfg Config, logger logging.Logger, httpClient *http.Client) (*NetHTTPClient, error) {
	if logger == nil {
		return nil, fmt.Errorf("webclient: nil logger")
	}
	componentLogger := logger.With(logging.Field{Key: "component", Value: "webclient"})

	if httpClient == nil {
		dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}
		httpClient = &http.Client{
			Timeout: cfg.RequestTimeout,
			Transport: &http.Transport{
				DialContext:         dialer.DialContext,
				TLSHandshakeTimeout: cfg.ConnectTimeout,
				MaxIdleConnsPerHost: 10,
			},
		}
	}
	httpClient.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if c, ok := req.Context().Value(redirectCounterKey{}).(*int32); ok {
			atomic.StoreInt32(c, int32(len(via)))
		}
		if cfg.MaxRedirects > 0 && len(via) >= cfg.MaxRedirects {
			return fmt.Errorf("stopped after %d redirects", cfg.MaxRedirects)
		}
		return nil
	}

	return &NetHTTPClient{
		client: httpClient,
		cfg:    cfg,
		logger: componentLogger,
	}, nil
}

// Do executes the request and reads the (size-capped) body.
func (c *NetHTTPClient) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("webclient: nil request")
	}

	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	var redirects int32
	ctx = context.WithValue(ctx, redirectCounterKey{}, &redirects)

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if req.Headers != nil {
		for k, vs := range req.Headers {
			for _, v := range vs {
				httpReq.Header.Add(k, v)
			}
		}
	}
	if httpReq.Header.Get("User-Agent") == "" && c.cfg.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Warn("http request failed",
			logging.Field{Key: "url", Value: req.URL},
			logging.Field{Key: "error", Value: err.Error()})
		return nil, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	reader := io.Reader(resp.Body)
	if c.cfg.MaxBodyBytes > 0 {
		reader = io.LimitReader(resp.Body, c.cfg.MaxBodyBytes)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	out := &Response{
		Request:       req,
		StatusCode:    resp.StatusCode,
		Headers:       resp.Header,
		Body:          body,
		RedirectCount: int(atomic.LoadInt32(&redirects)),
		FetchedAt:     time.Now().UTC(),
	}
	if resp.TLS != nil {
		info := &TLSInfo{Valid: true}
		if len(resp.TLS.PeerCertificates) > 0 {
			info.DaysToExpiry = int(time.Until(resp.TLS.PeerCertificates[0].NotAfter).Hours() / 24)
		}
		out.TLS = info
	}
	return out, nil
}

func (c *NetHTTPClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
