// Package health performs the entry-page liveness check that gates a
// scan: HTTP reachability, TLS validity, redirect counting and a
// best-effort registration-age lookup.
package health

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/meridianpay/sitescan/internal/logging"
	"github.com/meridianpay/sitescan/internal/model"
	"github.com/meridianpay/sitescan/internal/urlutil"
	"github.com/meridianpay/sitescan/internal/webclient"
)

// Config bounds the health checks.
type Config struct {
	// LookupTimeout bounds the registration-age lookup chain, separate
	// from page-fetch timeouts.
	LookupTimeout time.Duration

	// SkipRegistrationLookup disables the external RDAP chain (tests and
	// offline runs).
	SkipRegistrationLookup bool
}

// DefaultConfig returns the health budgets.
func DefaultConfig() Config {
	return Config{LookupTimeout: 5 * time.Second}
}

// Checker runs the checks through the scan's web client.
type Checker struct {
	wc     webclient.WebClient
	rdap   *rdapClient
	cfg    Config
	logger logging.Logger
}

// New builds a Checker. The registration lookup uses its own plain HTTP
// client so RDAP endpoints are not subject to the page-fetch cache.
func New(wc webclient.WebClient, cfg Config, logger logging.Logger) *Checker {
	if logger == nil {
		logger = logging.Nop{}
	}
	l := logger.With(logging.Field{Key: "component", Value: "health"})
	return &Checker{
		wc:     wc,
		rdap:   newRDAPClient(cfg.LookupTimeout, l),
		cfg:    cfg,
		logger: l,
	}
}

// Check fetches the entry page and reports domain health. The fetched
// response is returned for reuse so the engine does not fetch the entry
// page twice. resp is nil whenever Reachable is false.
func (c *Checker) Check(ctx context.Context, target string) (model.DomainHealth, *webclient.Response) {
	health := model.DomainHealth{RegistrationAgeDays: model.RegistrationAgeUnknown}

	resp, err := webclient.Get(ctx, c.wc, target)
	if err != nil {
		health.FailureReason, health.Retryable = classifyFetchError(err)
		c.logger.Warn("entry fetch failed",
			logging.Field{Key: "url", Value: target},
			logging.Field{Key: "reason", Value: health.FailureReason})
		return health, nil
	}

	health.StatusCode = resp.StatusCode
	health.RedirectCount = resp.RedirectCount
	if resp.TLS != nil {
		health.HTTPSValid = resp.TLS.Valid
		health.CertDaysToExpiry = resp.TLS.DaysToExpiry
	}

	if resp.StatusCode >= 400 {
		health.FailureReason = fmt.Sprintf("HTTP_%d", resp.StatusCode)
		health.Retryable = resp.StatusCode >= 500 || resp.StatusCode == 429
		return health, nil
	}

	health.Reachable = true
	health.RegistrationAgeDays = c.registrationAge(ctx, target)
	return health, resp
}

// registrationAge runs the chained RDAP lookup under its own timeout.
// Every failure degrades to unknown.
func (c *Checker) registrationAge(ctx context.Context, target string) int {
	if c.cfg.SkipRegistrationLookup {
		return model.RegistrationAgeUnknown
	}
	domain, err := urlutil.RegisteredDomain(target)
	if err != nil {
		c.logger.Debug("no registrable domain",
			logging.Field{Key: "url", Value: target},
			logging.Field{Key: "error", Value: err.Error()})
		return model.RegistrationAgeUnknown
	}

	lookupCtx, cancel := context.WithTimeout(ctx, c.cfg.LookupTimeout)
	defer cancel()

	registered, err := c.rdap.RegistrationDate(lookupCtx, domain)
	if err != nil {
		c.logger.Debug("registration lookup failed",
			logging.Field{Key: "domain", Value: domain},
			logging.Field{Key: "error", Value: err.Error()})
		return model.RegistrationAgeUnknown
	}
	days := int(time.Since(registered).Hours() / 24)
	if days < 0 {
		return model.RegistrationAgeUnknown
	}
	return days
}

// classifyFetchError maps transport errors onto the failure taxonomy.
func classifyFetchError(err error) (reason string, retryable bool) {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return model.FailDNS, false
	}

	var certErr *tls.CertificateVerificationError
	var hostErr x509.HostnameError
	var unkErr x509.UnknownAuthorityError
	var recErr tls.RecordHeaderError
	if errors.As(err, &certErr) || errors.As(err, &hostErr) ||
		errors.As(err, &unkErr) || errors.As(err, &recErr) {
		return model.FailSSL, false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return model.FailTimeout, true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return model.FailTimeout, true
	}

	// url.Error wrapping e.g. "tls: handshake failure" strings
	var urlErr *url.Error
	if errors.As(err, &urlErr) && strings.Contains(urlErr.Err.Error(), "tls") {
		return model.FailSSL, false
	}

	// Remaining transport failures (refused, reset, no route) surface as
	// DNS_FAIL: the taxonomy has no finer bucket for "host not serving".
	return model.FailDNS, false
}
