package health

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/meridianpay/sitescan/internal/logging"
	"github.com/meridianpay/sitescan/internal/model"
	"github.com/meridianpay/sitescan/internal/webclient"
)

func testChecker(t *testing.T, ts *httptest.Server) *Checker {
	t.Helper()
	wc, err := webclient.NewNetHTTPClient(webclient.DefaultConfig(), logging.Nop{}, ts.Client())
	if err != nil {
		t.Fatalf("NewNetHTTPClient: %v", err)
	}
	cfg := DefaultConfig()
	cfg.SkipRegistrationLookup = true
	return New(wc, cfg, logging.Nop{})
}

func TestCheck_ReachableTLS(t *testing.T) {
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>ok</body></html>")
	}))
	defer ts.Close()

	c := testChecker(t, ts)
	health, resp := c.Check(context.Background(), ts.URL)

	if !health.Reachable {
		t.Fatalf("expected reachable, got %+v", health)
	}
	if !health.HTTPSValid {
		t.Error("expected valid TLS")
	}
	if health.StatusCode != 200 {
		t.Errorf("StatusCode = %d", health.StatusCode)
	}
	if health.RegistrationAgeDays != model.RegistrationAgeUnknown {
		t.Errorf("expected unknown age with lookup skipped, got %d", health.RegistrationAgeDays)
	}
	if resp == nil || len(resp.Body) == 0 {
		t.Error("expected entry response returned for reuse")
	}
}

func TestCheck_HTTP403IsFatalNotRetryable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	c := testChecker(t, ts)
	health, resp := c.Check(context.Background(), ts.URL)

	if health.Reachable {
		t.Error("403 entry must be unreachable")
	}
	if health.FailureReason != model.FailHTTP403 {
		t.Errorf("FailureReason = %q, want %q", health.FailureReason, model.FailHTTP403)
	}
	if health.Retryable {
		t.Error("403 is not retryable")
	}
	if resp != nil {
		t.Error("no response should be handed back on failure")
	}
}

func TestCheck_HTTP500IsRetryable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := testChecker(t, ts)
	health, _ := c.Check(context.Background(), ts.URL)

	if health.FailureReason != "HTTP_500" {
		t.Errorf("FailureReason = %q", health.FailureReason)
	}
	if !health.Retryable {
		t.Error("5xx should be retryable")
	}
}

type errTransport struct{ err error }

func (e errTransport) RoundTrip(*http.Request) (*http.Response, error) { return nil, e.err }

func TestCheck_DNSFailure(t *testing.T) {
	httpClient := &http.Client{Transport: errTransport{err: &net.DNSError{Err: "no such host", Name: "nope.example"}}}
	wc, err := webclient.NewNetHTTPClient(webclient.DefaultConfig(), logging.Nop{}, httpClient)
	if err != nil {
		t.Fatalf("NewNetHTTPClient: %v", err)
	}
	cfg := DefaultConfig()
	cfg.SkipRegistrationLookup = true
	c := New(wc, cfg, logging.Nop{})

	health, _ := c.Check(context.Background(), "http://nope.example/")
	if health.FailureReason != model.FailDNS {
		t.Errorf("FailureReason = %q, want %q", health.FailureReason, model.FailDNS)
	}
	if health.Retryable {
		t.Error("DNS failure is not retryable")
	}
}

func TestClassifyFetchError_Timeout(t *testing.T) {
	reason, retryable := classifyFetchError(fmt.Errorf("wrapped: %w", context.DeadlineExceeded))
	if reason != model.FailTimeout || !retryable {
		t.Errorf("got %q retryable=%v", reason, retryable)
	}
}

func TestRDAP_RegistrationDate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/domain/acme.example" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"events":[
			{"eventAction":"registration","eventDate":"2015-06-01T00:00:00Z"},
			{"eventAction":"expiration","eventDate":"2030-06-01T00:00:00Z"}
		]}`)
	}))
	defer ts.Close()

	c := newRDAPClient(2*time.Second, logging.Nop{})
	c.primary = ts.URL + "/domain/"
	c.byTLD = nil

	got, err := c.RegistrationDate(context.Background(), "acme.example")
	if err != nil {
		t.Fatalf("RegistrationDate: %v", err)
	}
	want := time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRDAP_FallbackEndpoint(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/primary/acme.com":
			w.WriteHeader(http.StatusTooManyRequests)
		case "/tld/acme.com":
			fmt.Fprint(w, `{"events":[{"eventAction":"registration","eventDate":"2020-01-02"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	c := newRDAPClient(2*time.Second, logging.Nop{})
	c.primary = ts.URL + "/primary/"
	c.byTLD = map[string]string{"com": ts.URL + "/tld/"}

	got, err := c.RegistrationDate(context.Background(), "acme.com")
	if err != nil {
		t.Fatalf("RegistrationDate: %v", err)
	}
	if got.Year() != 2020 {
		t.Errorf("got %v", got)
	}
}

func TestRDAP_AllEndpointsFailing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	c := newRDAPClient(time.Second, logging.Nop{})
	c.primary = ts.URL + "/domain/"
	c.byTLD = nil

	if _, err := c.RegistrationDate(context.Background(), "acme.example"); err == nil {
		t.Fatal("expected error")
	}
}
