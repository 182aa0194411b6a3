// Package engine wires the scan pipeline together: validate the request,
// gate on domain health, discover and crawl pages, score the results,
// diff against the prior snapshot, and assemble the report.
package engine

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/meridianpay/sitescan/internal/changes"
	"github.com/meridianpay/sitescan/internal/classify"
	"github.com/meridianpay/sitescan/internal/crawl"
	"github.com/meridianpay/sitescan/internal/discovery"
	"github.com/meridianpay/sitescan/internal/health"
	"github.com/meridianpay/sitescan/internal/logging"
	"github.com/meridianpay/sitescan/internal/model"
	"github.com/meridianpay/sitescan/internal/report"
	"github.com/meridianpay/sitescan/internal/scoring"
	"github.com/meridianpay/sitescan/internal/snapshot"
	"github.com/meridianpay/sitescan/internal/urlutil"
	"github.com/meridianpay/sitescan/internal/webclient"
)

// Config aggregates the per-stage budgets.
type Config struct {
	Crawl     crawl.Config
	Discovery discovery.Config
	Health    health.Config
}

// DefaultConfig returns the standard scan budgets for every stage.
func DefaultConfig() Config {
	return Config{
		Crawl:     crawl.DefaultConfig(),
		Discovery: discovery.DefaultConfig(),
		Health:    health.DefaultConfig(),
	}
}

// Engine runs due-diligence scans. One Engine may serve many scans; each
// scan owns its own PageGraph, so there is no cross-scan state beyond the
// snapshot store.
type Engine struct {
	wc         webclient.WebClient
	store      snapshot.Store
	classifier *classify.Classifier
	validate   *validator.Validate
	cfg        Config
	logger     logging.Logger
	writes     sync.WaitGroup
}

// snapshotWriteTimeout bounds the detached snapshot write.
const snapshotWriteTimeout = 10 * time.Second

// New builds an Engine on the shared web client and snapshot store.
func New(wc webclient.WebClient, store snapshot.Store, cfg Config, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Engine{
		wc:         wc,
		store:      store,
		classifier: classify.New(),
		validate:   validator.New(),
		cfg:        cfg,
		logger:     logger.With(logging.Field{Key: "component", Value: "engine"}),
	}
}

// Scan executes one full scan and returns its report. An unreachable
// entry page yields a FAILED report, not an error; errors are reserved
// for invalid requests.
func (e *Engine) Scan(ctx context.Context, req model.ScanRequest) (*model.ScanReport, error) {
	if err := e.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid scan request: %w", err)
	}

	target, err := urlutil.Canonicalize(req.URL, urlutil.DefaultOptions)
	if err != nil {
		return nil, fmt.Errorf("invalid target url %q: %w", req.URL, err)
	}

	scanID := uuid.New().String()
	startedAt := time.Now().UTC()
	logger := e.logger.With(logging.Field{Key: "scan_id", Value: scanID})
	logger.Info("scan started", logging.Field{Key: "url", Value: target})

	checker := health.New(e.wc, e.cfg.Health, logger)
	domainHealth, entryResp := checker.Check(ctx, target)
	if entryResp == nil {
		logger.Warn("entry page unreachable",
			logging.Field{Key: "reason", Value: domainHealth.FailureReason})
		return report.Failed(scanID, target, req.BusinessName, startedAt, domainHealth), nil
	}

	// The entry response is fetched once and reused: parsed here for nav
	// discovery and again for the depth-0 record.
	entryDoc, docErr := goquery.NewDocumentFromReader(bytes.NewReader(entryResp.Body))
	if docErr != nil {
		logger.Warn("entry page not parseable as html",
			logging.Field{Key: "error", Value: docErr.Error()})
		entryDoc = nil
	}

	disc := discovery.New(e.wc, e.cfg.Discovery, logger).Discover(ctx, target, entryDoc)
	entry, entryLinks := crawl.BuildRecord(entryResp, target, "", 0, e.classifier)

	crawler := crawl.New(e.wc, e.classifier, e.cfg.Crawl, logger)
	graph := crawler.Run(ctx, entry, entryLinks, disc)

	bizContext := scoring.ClassifyContext(graph)

	var (
		compliance  model.ComplianceResult
		seo         model.SEOResult
		contentRisk model.ContentRisk
		mcc         model.MCCResult
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		compliance = scoring.Compliance(graph, domainHealth, bizContext)
		return nil
	})
	g.Go(func() error {
		seo = scoring.SEO(entry.SEO, graph.SitemapFound, graph.RobotsFound)
		return nil
	})
	g.Go(func() error {
		contentRisk = scoring.AnalyzeContentRisk(graph)
		return nil
	})
	g.Go(func() error {
		mcc = scoring.ClassifyMCC(graph)
		return nil
	})
	_ = g.Wait()

	signals := deriveSignals(graph)
	current := model.SnapshotFromGraph(target, scanID, graph, signals)

	prior, err := e.store.GetLatest(ctx, target)
	if err != nil && err != snapshot.ErrNotFound {
		// A broken store degrades to a baseline scan rather than failing.
		logger.Warn("prior snapshot lookup failed",
			logging.Field{Key: "error", Value: err.Error()})
		prior = nil
	}
	changeSet := changes.Detect(prior, current)

	rep := report.Assemble(report.Inputs{
		ScanID:       scanID,
		URL:          target,
		BusinessName: req.BusinessName,
		StartedAt:    startedAt,
		Health:       domainHealth,
		Graph:        graph,
		Context:      bizContext,
		Compliance:   &compliance,
		SEO:          &seo,
		ContentRisk:  &contentRisk,
		MCC:          &mcc,
		Changes:      changeSet,
	})

	// The write is fire-and-forget relative to report return; Flush waits
	// for it when the caller is about to close the store.
	e.writes.Add(1)
	go func() {
		defer e.writes.Done()
		wctx, cancel := context.WithTimeout(context.Background(), snapshotWriteTimeout)
		defer cancel()
		if err := e.store.Put(wctx, current); err != nil {
			logger.Warn("snapshot persist failed",
				logging.Field{Key: "error", Value: err.Error()})
		}
	}()

	logger.Info("scan finished",
		logging.Field{Key: "status", Value: string(rep.ScanStatus.Status)},
		logging.Field{Key: "pages", Value: graph.PagesFetched},
		logging.Field{Key: "compliance", Value: compliance.Score})
	return rep, nil
}

// Flush blocks until all pending snapshot writes have landed. Call it
// before closing the snapshot store.
func (e *Engine) Flush() {
	e.writes.Wait()
}

// deriveSignals pulls the few cross-scan signals out of the graph.
func deriveSignals(g *model.PageGraph) model.DerivedSignals {
	var signals model.DerivedSignals
	for _, p := range g.Pages {
		if cs := p.Commerce; cs != nil {
			if signals.PricingModel == "" {
				signals.PricingModel = cs.PricingModel
			}
			signals.ProductCount += cs.ProductCount
		}
		if p.Metadata != nil && signals.Summary == "" {
			signals.Summary = p.Metadata.Summary
		}
	}
	return signals
}
