package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/meridianpay/sitescan/internal/logging"
)

// rdapClient resolves a domain's registration date through RDAP: the
// aggregating registry service first, then TLD-specific endpoints. Any
// failure yields an error the caller turns into "unknown age".
type rdapClient struct {
	http    *http.Client
	primary string
	byTLD   map[string]string
	logger  logging.Logger
}

func newRDAPClient(timeout time.Duration, logger logging.Logger) *rdapClient {
	return &rdapClient{
		http:    &http.Client{Timeout: timeout},
		primary: "https://rdap.org/domain/",
		byTLD: map[string]string{
			"com": "https://rdap.verisign.com/com/v1/domain/",
			"net": "https://rdap.verisign.com/net/v1/domain/",
			"org": "https://rdap.publicinterestregistry.org/rdap/domain/",
			"io":  "https://rdap.identitydigital.services/rdap/domain/",
			"co":  "https://rdap.registry.co/rdap/domain/",
		},
		logger: logger,
	}
}

// rdapDomain is the subset of an RDAP domain object we read.
type rdapDomain struct {
	Events []struct {
		Action string `json:"eventAction"`
		Date   string `json:"eventDate"`
	} `json:"events"`
}

// RegistrationDate queries the endpoint chain and returns the domain's
// registration event date.
func (c *rdapClient) RegistrationDate(ctx context.Context, domain string) (time.Time, error) {
	endpoints := []string{c.primary + domain}
	if i := strings.LastIndexByte(domain, '.'); i >= 0 {
		if base, ok := c.byTLD[domain[i+1:]]; ok {
			endpoints = append(endpoints, base+domain)
		}
	}

	var lastErr error
	for _, endpoint := range endpoints {
		ts, err := c.query(ctx, endpoint)
		if err == nil {
			return ts, nil
		}
		lastErr = err
		c.logger.Debug("rdap endpoint failed",
			logging.Field{Key: "endpoint", Value: endpoint},
			logging.Field{Key: "error", Value: err.Error()})
	}
	return time.Time{}, fmt.Errorf("rdap: all endpoints failed: %w", lastErr)
}

func (c *rdapClient) query(ctx context.Context, endpoint string) (time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return time.Time{}, err
	}
	req.Header.Set("Accept", "application/rdap+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return time.Time{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return time.Time{}, fmt.Errorf("rdap status %d", resp.StatusCode)
	}

	var dom rdapDomain
	if err := json.NewDecoder(resp.Body).Decode(&dom); err != nil {
		return time.Time{}, fmt.Errorf("decode rdap: %w", err)
	}
	for _, ev := range dom.Events {
		if ev.Action != "registration" {
			continue
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z0700", "2006-01-02"} {
			if ts, err := time.Parse(layout, ev.Date); err == nil {
				return ts, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("rdap: no registration event")
}
