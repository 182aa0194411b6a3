package engine

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianpay/sitescan/internal/logging"
	"github.com/meridianpay/sitescan/internal/model"
	"github.com/meridianpay/sitescan/internal/snapshot"
	"github.com/meridianpay/sitescan/internal/webclient"
)

// merchantSite is a small fixture business site. The pricing page body is
// swappable so change detection across two scans can be exercised.
type merchantSite struct {
	pricingBody atomic.Value
}

func newMerchantSite() *merchantSite {
	s := &merchantSite{}
	s.pricingBody.Store("<h2>Plans</h2><p>Basic $10/month subscription. Pro $30/month.</p>")
	return s
}

func (s *merchantSite) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, `<html><head>
				<title>Acme Widgets | Quality Tools</title>
				<meta name="description" content="Acme sells quality industrial widgets with a free trial and per month pricing for every workshop.">
				<meta property="og:site_name" content="Acme Widgets">
				<link rel="canonical" href="/">
			</head><body>
				<h1>Acme Widgets</h1>
				<p>Start your free trial today. Plans are per user per month with full API access and a dashboard.</p>
				<p>Questions? Write to hello@acme.example.</p>
				<nav>
					<a href="/privacy">Privacy Policy</a>
					<a href="/terms">Terms of Service</a>
					<a href="/pricing">Pricing</a>
				</nav>
			</body></html>`)
		case "/privacy":
			fmt.Fprint(w, `<html><body><h1>Privacy Policy</h1><p>We respect your data.</p></body></html>`)
		case "/terms":
			fmt.Fprint(w, `<html><body><h1>Terms of Service</h1><p>Payment terms and refunds are described here.</p></body></html>`)
		case "/pricing":
			fmt.Fprintf(w, `<html><body>%s</body></html>`, s.pricingBody.Load())
		default:
			http.NotFound(w, r)
		}
	})
	return mux
}

func testEngine(t *testing.T, ts *httptest.Server, store snapshot.Store) *Engine {
	t.Helper()
	wc, err := webclient.NewNetHTTPClient(webclient.DefaultConfig(), logging.Nop{}, ts.Client())
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Health.SkipRegistrationLookup = true
	cfg.Crawl.RetryBackoff = 10 * time.Millisecond
	cfg.Crawl.FetchesPerSecond = 0
	return New(wc, store, cfg, logging.Nop{})
}

func TestScan_SuccessEndToEnd(t *testing.T) {
	site := newMerchantSite()
	ts := httptest.NewServer(site.handler())
	defer ts.Close()

	e := testEngine(t, ts, snapshot.NewMemoryStore())
	rep, err := e.Scan(context.Background(), model.ScanRequest{URL: ts.URL, BusinessName: "Acme Widgets"})
	require.NoError(t, err)

	assert.Equal(t, model.StatusSuccess, rep.ScanStatus.Status)
	assert.NotEmpty(t, rep.ScanID)
	assert.True(t, rep.Health.Reachable)

	require.NotNil(t, rep.Compliance)
	assert.Greater(t, rep.Compliance.Score, 0)
	assert.NotEmpty(t, rep.Compliance.Rating)

	require.NotNil(t, rep.SEO)
	assert.Greater(t, rep.SEO.Score, 50)

	require.NotNil(t, rep.ContentRisk)
	assert.Zero(t, rep.ContentRisk.Score)

	assert.Equal(t, model.ContextSaaS, rep.Context)

	require.NotNil(t, rep.Business)
	assert.Equal(t, "Acme Widgets", rep.Business.Name)
	assert.Contains(t, rep.Business.Emails, "hello@acme.example")

	require.NotNil(t, rep.Changes)
	assert.True(t, rep.Changes.Baseline)

	assert.Greater(t, rep.Crawl.PagesFetched, 1)
	assert.True(t, rep.Crawl.EarlyExit)
}

func TestScan_ChangeDetectionAcrossScans(t *testing.T) {
	site := newMerchantSite()
	ts := httptest.NewServer(site.handler())
	defer ts.Close()

	store := snapshot.NewMemoryStore()
	e := testEngine(t, ts, store)

	first, err := e.Scan(context.Background(), model.ScanRequest{URL: ts.URL})
	require.NoError(t, err)
	require.True(t, first.Changes.Baseline)
	e.Flush()

	// Unchanged site scans clean.
	second, err := e.Scan(context.Background(), model.ScanRequest{URL: ts.URL})
	require.NoError(t, err)
	assert.False(t, second.Changes.Baseline)
	assert.Empty(t, second.Changes.Changes)
	e.Flush()

	site.pricingBody.Store("<h2>Plans</h2><p>All plans are now one-time purchases at $99.</p>")
	third, err := e.Scan(context.Background(), model.ScanRequest{URL: ts.URL})
	require.NoError(t, err)
	assert.False(t, third.Changes.Baseline)
	require.NotEmpty(t, third.Changes.Changes)

	var sawPricingChange bool
	for _, c := range third.Changes.Changes {
		if c.Type == model.ChangePricing && c.PageType == model.PagePricing {
			sawPricingChange = true
		}
		if c.PageType == model.PagePricing {
			assert.NotEqual(t, model.ChangeContent, c.Type, "pricing page graded as content_change")
		}
	}
	assert.True(t, sawPricingChange, "changes: %+v", third.Changes.Changes)
}

// gatedStore holds every Put until released, standing in for a slow
// external snapshot backend.
type gatedStore struct {
	snapshot.Store
	release chan struct{}
}

func (s *gatedStore) Put(ctx context.Context, snap *model.SiteSnapshot) error {
	<-s.release
	return s.Store.Put(ctx, snap)
}

func TestScan_ReportReturnsBeforeSnapshotWrite(t *testing.T) {
	site := newMerchantSite()
	ts := httptest.NewServer(site.handler())
	defer ts.Close()

	store := &gatedStore{Store: snapshot.NewMemoryStore(), release: make(chan struct{})}
	e := testEngine(t, ts, store)

	// Scan must return while the Put is still blocked.
	rep, err := e.Scan(context.Background(), model.ScanRequest{URL: ts.URL})
	require.NoError(t, err)
	assert.Equal(t, model.StatusSuccess, rep.ScanStatus.Status)

	_, err = store.Store.GetLatest(context.Background(), rep.URL)
	assert.ErrorIs(t, err, snapshot.ErrNotFound)

	close(store.release)
	e.Flush()

	stored, err := store.Store.GetLatest(context.Background(), rep.URL)
	require.NoError(t, err)
	assert.Equal(t, rep.ScanID, stored.ScanID)
}

func TestScan_ForbiddenEntryFailsWithHealthOnly(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	e := testEngine(t, ts, snapshot.NewMemoryStore())
	rep, err := e.Scan(context.Background(), model.ScanRequest{URL: ts.URL})
	require.NoError(t, err)

	assert.Equal(t, model.StatusFailed, rep.ScanStatus.Status)
	assert.Equal(t, model.FailHTTP403, rep.ScanStatus.Reason)
	assert.False(t, rep.ScanStatus.Retryable)

	assert.Nil(t, rep.Compliance)
	assert.Nil(t, rep.SEO)
	assert.Nil(t, rep.MCC)
	assert.Zero(t, rep.Crawl.PagesFetched)
}

func TestScan_RejectsInvalidRequest(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()
	e := testEngine(t, ts, snapshot.NewMemoryStore())

	_, err := e.Scan(context.Background(), model.ScanRequest{URL: ""})
	assert.Error(t, err)

	_, err = e.Scan(context.Background(), model.ScanRequest{URL: "not a url"})
	assert.Error(t, err)
}
