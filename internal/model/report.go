package model

import "time"

// BusinessSummary is the merged business/product view on the report.
type BusinessSummary struct {
	Name         string   `json:"name,omitempty"`
	Summary      string   `json:"summary,omitempty"`
	Emails       []string `json:"emails,omitempty"`
	Phones       []string `json:"phones,omitempty"`
	Social       []string `json:"social_links,omitempty"`
	Platform     string   `json:"platform,omitempty"`
	ProductCount int      `json:"product_count"`
	PricingModel string   `json:"pricing_model,omitempty"`
}

// CrawlStats summarizes what the orchestrator did.
type CrawlStats struct {
	PagesFetched int   `json:"pages_fetched"`
	MaxDepth     int   `json:"max_depth"`
	SitemapFound bool  `json:"sitemap_found"`
	RobotsFound  bool  `json:"robots_found"`
	EarlyExit    bool  `json:"early_exit"`
	DurationMS   int64 `json:"duration_ms"`
}

// ScanReport is the immutable final output of one scan. A FAILED report
// carries only scan status and domain health; everything else is nil.
type ScanReport struct {
	ScanID       string `json:"scan_id"`
	URL          string `json:"url"`
	BusinessName string `json:"business_name,omitempty"`

	ScanStatus ScanStatusInfo `json:"scan_status"`
	Health     DomainHealth   `json:"domain_health"`

	Compliance  *ComplianceResult `json:"compliance,omitempty"`
	SEO         *SEOResult        `json:"seo,omitempty"`
	ContentRisk *ContentRisk      `json:"content_risk,omitempty"`
	Context     BusinessContext   `json:"business_context,omitempty"`
	MCC         *MCCResult        `json:"mcc,omitempty"`
	Business    *BusinessSummary  `json:"business,omitempty"`
	Changes     *ChangeSet        `json:"changes,omitempty"`

	Crawl CrawlStats `json:"crawl"`

	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}
