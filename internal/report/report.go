// Package report assembles the final scan document. Assembly is pure
// aggregation: every path yields a well-formed report.
package report

import (
	"time"

	"github.com/meridianpay/sitescan/internal/model"
)

// Inputs collects everything a successful scan produced.
type Inputs struct {
	ScanID       string
	URL          string
	BusinessName string
	StartedAt    time.Time

	Health model.DomainHealth
	Graph  *model.PageGraph

	Context     model.BusinessContext
	Compliance  *model.ComplianceResult
	SEO         *model.SEOResult
	ContentRisk *model.ContentRisk
	MCC         *model.MCCResult
	Changes     *model.ChangeSet
}

// Assemble merges scan results into the final SUCCESS report.
func Assemble(in Inputs) *model.ScanReport {
	rep := &model.ScanReport{
		ScanID:       in.ScanID,
		URL:          in.URL,
		BusinessName: in.BusinessName,
		ScanStatus:   model.ScanStatusInfo{Status: model.StatusSuccess},
		Health:       in.Health,
		Compliance:   in.Compliance,
		SEO:          in.SEO,
		ContentRisk:  in.ContentRisk,
		Context:      in.Context,
		MCC:          in.MCC,
		Business:     businessSummary(in.Graph, in.BusinessName),
		Changes:      in.Changes,
		StartedAt:    in.StartedAt,
		CompletedAt:  time.Now().UTC(),
	}
	if in.Graph != nil {
		rep.Crawl = model.CrawlStats{
			PagesFetched: in.Graph.PagesFetched,
			MaxDepth:     in.Graph.MaxDepth,
			SitemapFound: in.Graph.SitemapFound,
			RobotsFound:  in.Graph.RobotsFound,
			EarlyExit:    in.Graph.EarlyExit,
			DurationMS:   in.Graph.Duration.Milliseconds(),
		}
	}
	return rep
}

// Failed produces the report for a scan whose entry page was unreachable.
// It carries only status and domain health.
func Failed(scanID, url, businessName string, startedAt time.Time, health model.DomainHealth) *model.ScanReport {
	return &model.ScanReport{
		ScanID:       scanID,
		URL:          url,
		BusinessName: businessName,
		ScanStatus: model.ScanStatusInfo{
			Status:    model.StatusFailed,
			Reason:    health.FailureReason,
			Retryable: health.Retryable,
		},
		Health:      health,
		StartedAt:   startedAt,
		CompletedAt: time.Now().UTC(),
	}
}

// businessSummary folds page-level metadata and commerce signals into the
// merged business view. The first page carrying a field wins; an explicit
// business-name hint outranks extraction.
func businessSummary(g *model.PageGraph, nameHint string) *model.BusinessSummary {
	if g == nil {
		return nil
	}
	sum := &model.BusinessSummary{Name: nameHint}
	for _, p := range g.Pages {
		if md := p.Metadata; md != nil {
			if sum.Name == "" {
				sum.Name = md.Name
			}
			if sum.Summary == "" {
				sum.Summary = md.Summary
			}
			sum.Emails = appendNew(sum.Emails, md.Emails)
			sum.Phones = appendNew(sum.Phones, md.Phones)
			sum.Social = appendNew(sum.Social, md.Social)
		}
		if cs := p.Commerce; cs != nil {
			if sum.Platform == "" {
				sum.Platform = cs.Platform
			}
			if sum.PricingModel == "" {
				sum.PricingModel = cs.PricingModel
			}
			sum.ProductCount += cs.ProductCount
		}
	}
	return sum
}

func appendNew(have, more []string) []string {
	seen := make(map[string]struct{}, len(have))
	for _, s := range have {
		seen[s] = struct{}{}
	}
	for _, s := range more {
		if _, dup := seen[s]; !dup {
			seen[s] = struct{}{}
			have = append(have, s)
		}
	}
	return have
}
