// Package crawl is the bounded-concurrency fetch scheduler. Workers fetch
// and process pages; completed records flow through a single results
// channel into one accumulating PageGraph, so the graph needs no locking.
package crawl

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/meridianpay/sitescan/internal/classify"
	"github.com/meridianpay/sitescan/internal/discovery"
	"github.com/meridianpay/sitescan/internal/logging"
	"github.com/meridianpay/sitescan/internal/model"
	"github.com/meridianpay/sitescan/internal/webclient"
)

// Crawler runs one scan's page fetches under the configured budgets.
type Crawler struct {
	wc         webclient.WebClient
	classifier *classify.Classifier
	cfg        Config
	logger     logging.Logger
}

// New builds a Crawler sharing the scan's web client.
func New(wc webclient.WebClient, classifier *classify.Classifier, cfg Config, logger logging.Logger) *Crawler {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Crawler{
		wc:         wc,
		classifier: classifier,
		cfg:        cfg,
		logger:     logger.With(logging.Field{Key: "component", Value: "crawl"}),
	}
}

type fetchJob struct {
	url    string
	anchor string
	source discovery.Source
	depth  int
}

type fetchResult struct {
	job   fetchJob
	rec   *model.PageRecord
	links []Link
	err   error
}

// Run fetches candidate pages until budgets are exhausted or the early
// exit condition is met. entry is the already-built entry record; disc
// carries robots rules and the seeded candidate set.
func (c *Crawler) Run(ctx context.Context, entry *model.PageRecord, entryLinks []Link, disc *discovery.Result) *model.PageGraph {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.ScanDeadline)
	defer cancel()

	graph := model.NewPageGraph()
	graph.RobotsFound = disc.RobotsFound
	graph.SitemapFound = disc.SitemapFound
	graph.Add(entry)

	var limiter *rate.Limiter
	if c.cfg.FetchesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(c.cfg.FetchesPerSecond), c.cfg.MaxConcurrency)
	}

	seen := map[string]struct{}{entry.CanonicalURL: {}}
	var queue []fetchJob
	enqueue := func(url, anchor string, src discovery.Source, depth int) {
		if depth > c.cfg.MaxDepth {
			return
		}
		if _, dup := seen[url]; dup {
			return
		}
		if !disc.Robots.Allowed(url) {
			c.logger.Debug("robots disallow", logging.Field{Key: "url", Value: url})
			return
		}
		seen[url] = struct{}{}
		queue = append(queue, fetchJob{url: url, anchor: anchor, source: src, depth: depth})
	}

	for _, cand := range disc.Candidates {
		enqueue(cand.URL, cand.AnchorText, cand.Source, 1)
	}
	for _, l := range entryLinks {
		enqueue(l.URL, l.Anchor, discovery.SourceNav, 1)
	}
	// Sitemap-sourced URLs dispatch before navigation-sourced ones.
	sort.SliceStable(queue, func(i, j int) bool { return queue[i].source < queue[j].source })

	jobs := make(chan fetchJob)
	results := make(chan fetchResult)
	for i := 0; i < c.cfg.MaxConcurrency; i++ {
		go c.worker(ctx, jobs, results, limiter)
	}

	inFlight := 0
	done := false
	for !done && (len(queue) > 0 || inFlight > 0) {
		var jobCh chan fetchJob
		var next fetchJob
		if len(queue) > 0 && graph.PagesFetched+inFlight < c.cfg.MaxPages {
			jobCh = jobs
			next = queue[0]
		} else if inFlight == 0 {
			// Queue non-empty but budget spent: nothing left to do.
			break
		}

		select {
		case jobCh <- next:
			queue = queue[1:]
			inFlight++

		case res := <-results:
			inFlight--
			if res.err != nil {
				c.logger.Warn("page fetch failed",
					logging.Field{Key: "url", Value: res.job.url},
					logging.Field{Key: "error", Value: res.err.Error()})
				continue
			}
			graph.Add(res.rec)
			for _, l := range res.links {
				enqueue(l.URL, l.Anchor, discovery.SourceNav, res.job.depth+1)
			}
			if c.earlyExit(graph) {
				graph.EarlyExit = true
				done = true
			}

		case <-ctx.Done():
			done = true
		}
	}

	// Cancel outstanding work and release workers; in-flight pages are
	// discarded rather than added to the graph.
	cancel()
	close(jobs)
	for ; inFlight > 0; inFlight-- {
		<-results
	}

	graph.Duration = time.Since(start)
	c.logger.Info("crawl finished",
		logging.Field{Key: "pages", Value: graph.PagesFetched},
		logging.Field{Key: "early_exit", Value: graph.EarlyExit},
		logging.Field{Key: "duration_ms", Value: graph.Duration.Milliseconds()})
	return graph
}

// earlyExit holds once the required pages (privacy AND terms) and one
// high-value page (about OR pricing) are all classified.
func (c *Crawler) earlyExit(g *model.PageGraph) bool {
	return g.HasType(model.PagePrivacy) && g.HasType(model.PageTerms) &&
		(g.HasType(model.PageAbout) || g.HasType(model.PagePricing))
}

func (c *Crawler) worker(ctx context.Context, jobs <-chan fetchJob, results chan<- fetchResult, limiter *rate.Limiter) {
	for job := range jobs {
		if ctx.Err() != nil {
			results <- fetchResult{job: job, err: ctx.Err()}
			continue
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				results <- fetchResult{job: job, err: err}
				continue
			}
		}

		resp, err := c.fetchWithRetry(ctx, job.url)
		if err != nil {
			results <- fetchResult{job: job, err: err}
			continue
		}

		rec, links := BuildRecord(resp, job.url, job.anchor, job.depth, c.classifier)
		results <- fetchResult{job: job, rec: rec, links: links}
	}
}

// fetchWithRetry retries one transient failure with doubling backoff.
func (c *Crawler) fetchWithRetry(ctx context.Context, url string) (*webclient.Response, error) {
	backoff := c.cfg.RetryBackoff
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
		}

		resp, err := webclient.Get(ctx, c.wc, url)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}
		if resp.StatusCode >= 500 || resp.StatusCode == 429 {
			lastErr = &transientStatusError{status: resp.StatusCode, url: url}
			continue
		}
		if resp.StatusCode >= 400 {
			return nil, &fetchStatusError{status: resp.StatusCode, url: url}
		}
		return resp, nil
	}
	return nil, lastErr
}

// Link seeds the frontier from links the engine found on the entry page.
type Link struct {
	URL    string
	Anchor string
}

type transientStatusError struct {
	status int
	url    string
}

func (e *transientStatusError) Error() string {
	return fmt.Sprintf("transient status %d fetching %s", e.status, e.url)
}

type fetchStatusError struct {
	status int
	url    string
}

func (e *fetchStatusError) Error() string {
	return fmt.Sprintf("status %d fetching %s", e.status, e.url)
}
