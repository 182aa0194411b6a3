// Package discovery runs the three best-effort URL sources that seed a
// crawl: robots directives, sitemap, and navigation links on the entry
// page. Failure of any one source is non-fatal; the scan proceeds with
// whatever succeeded.
package discovery

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/meridianpay/sitescan/internal/logging"
	"github.com/meridianpay/sitescan/internal/urlutil"
	"github.com/meridianpay/sitescan/internal/webclient"
)

// Source identifies where a candidate URL came from. Sitemap candidates
// are dispatched before navigation candidates.
type Source int

const (
	SourceSitemap Source = iota
	SourceNav
)

// Candidate is one normalized URL handed to the crawl orchestrator.
type Candidate struct {
	URL        string
	Source     Source
	AnchorText string
}

// Result is everything discovery learned before bulk fetching starts.
type Result struct {
	// Candidates is deduplicated and ordered sitemap-first.
	Candidates []Candidate

	Robots       *Robots
	RobotsFound  bool
	SitemapFound bool
}

// Config bounds the discovery lookups.
type Config struct {
	// MaxSitemapURLs caps how many sitemap entries are considered; large
	// sites list tens of thousands.
	MaxSitemapURLs int

	// MaxNavLinks caps navigation-sourced candidates.
	MaxNavLinks int
}

// DefaultConfig returns discovery limits sized to the 20-page crawl budget.
func DefaultConfig() Config {
	return Config{
		MaxSitemapURLs: 50,
		MaxNavLinks:    40,
	}
}

// Discoverer runs the sources.
type Discoverer struct {
	wc     webclient.WebClient
	cfg    Config
	logger logging.Logger
}

func New(wc webclient.WebClient, cfg Config, logger logging.Logger) *Discoverer {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Discoverer{
		wc:     wc,
		cfg:    cfg,
		logger: logger.With(logging.Field{Key: "component", Value: "discovery"}),
	}
}

// Discover runs robots, sitemap and nav-link extraction concurrently.
// entryURL must be canonical; entryDoc is the already-parsed entry page
// (may be nil, which skips nav extraction).
func (d *Discoverer) Discover(ctx context.Context, entryURL string, entryDoc *goquery.Document) *Result {
	res := &Result{}

	var (
		robots      *Robots
		sitemapURLs []string
		navLinks    []navLink
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r, err := d.fetchRobots(gctx, entryURL)
		if err != nil {
			d.logger.Warn("robots fetch failed",
				logging.Field{Key: "url", Value: entryURL},
				logging.Field{Key: "error", Value: err.Error()})
			return nil
		}
		robots = r
		return nil
	})

	g.Go(func() error {
		// Nav extraction is local to the already-fetched entry page.
		navLinks = d.navLinks(entryURL, entryDoc)
		return nil
	})

	// Sources never return errors; each degrades to "nothing found".
	_ = g.Wait()

	if robots != nil {
		res.Robots = robots
		res.RobotsFound = true
	}

	// The sitemap source depends on robots output (Sitemap: directives),
	// so it runs after the group.
	urls, found := d.fetchSitemap(ctx, entryURL, robots)
	sitemapURLs = urls
	res.SitemapFound = found

	res.Candidates = d.merge(entryURL, sitemapURLs, navLinks)
	return res
}

// merge normalizes, filters to same-host and dedupes, sitemap first.
func (d *Discoverer) merge(entryURL string, sitemapURLs []string, navLinks []navLink) []Candidate {
	seen := map[string]struct{}{}
	if canon, err := urlutil.Canonicalize(entryURL, urlutil.DefaultOptions); err == nil {
		seen[canon] = struct{}{} // never re-fetch the entry page
	}

	var out []Candidate
	add := func(raw string, src Source, anchor string) {
		canon, err := urlutil.Canonicalize(raw, urlutil.DefaultOptions)
		if err != nil {
			return
		}
		if !urlutil.SameHost(entryURL, canon) {
			return
		}
		if _, dup := seen[canon]; dup {
			return
		}
		seen[canon] = struct{}{}
		out = append(out, Candidate{URL: canon, Source: src, AnchorText: anchor})
	}

	for _, u := range sitemapURLs {
		add(u, SourceSitemap, "")
	}
	for _, l := range navLinks {
		add(l.href, SourceNav, l.text)
	}
	return out
}
