package model

import "time"

// PageType is the semantic classification of a fetched page.
type PageType string

const (
	PageHome       PageType = "home"
	PagePrivacy    PageType = "privacy_policy"
	PageTerms      PageType = "terms_conditions"
	PageRefund     PageType = "refund_policy"
	PageShipping   PageType = "shipping_policy"
	PageContact    PageType = "contact"
	PageAbout      PageType = "about"
	PageFAQ        PageType = "faq"
	PageProduct    PageType = "product"
	PagePricing    PageType = "pricing"
	PageOther      PageType = "other"
)

// TechSignature is a single detected technology fingerprint.
type TechSignature struct {
	Name     string `json:"name"`
	Category string `json:"category"` // platform | framework | analytics | payments
}

// BusinessMetadata holds fields pulled from home/about/contact pages.
type BusinessMetadata struct {
	Name    string   `json:"name,omitempty"`
	Summary string   `json:"summary,omitempty"`
	Emails  []string `json:"emails,omitempty"`
	Phones  []string `json:"phones,omitempty"`
	Social  []string `json:"social_links,omitempty"`
}

// CommerceSignals are product/pricing indicators extracted from markup.
type CommerceSignals struct {
	HasCart         bool     `json:"has_cart"`
	HasPricingTable bool     `json:"has_pricing_table"`
	Platform        string   `json:"platform,omitempty"`
	ProductCount    int      `json:"product_count"`
	PricingModel    string   `json:"pricing_model,omitempty"` // subscription | one_time | unknown
	Currencies      []string `json:"currencies,omitempty"`
}

// RiskHit records matches of one restricted-keyword category on a page.
type RiskHit struct {
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
	Count    int      `json:"count"`
}

// SEOFacts are the on-page facts the SEO analyzer scores. They are only
// extracted for the entry page.
type SEOFacts struct {
	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
	H1Count         int    `json:"h1_count"`
	HasCanonical    bool   `json:"has_canonical"`
	Indexable       bool   `json:"indexable"`
}

// PageRecord is one successfully fetched page. Records are created once
// by the crawler and never mutated afterwards; the PageGraph owns them
// for the duration of a scan.
type PageRecord struct {
	URL          string   `json:"url"`
	CanonicalURL string   `json:"canonical_url"`
	StatusCode   int      `json:"status_code"`
	Depth        int      `json:"depth"`
	Type         PageType `json:"type"`

	// Fingerprint is a stable hash of the page's normalized visible text.
	Fingerprint string `json:"fingerprint"`

	// Text is the normalized visible text. Working-set only; it is not
	// serialized and does not outlive the scan.
	Text string `json:"-"`

	Title    string            `json:"title,omitempty"`
	Metadata *BusinessMetadata `json:"metadata,omitempty"`
	Tech     []TechSignature   `json:"tech,omitempty"`
	Commerce *CommerceSignals  `json:"commerce,omitempty"`
	Risk     []RiskHit         `json:"risk,omitempty"`
	SEO      *SEOFacts         `json:"seo,omitempty"`

	FetchedAt time.Time `json:"fetched_at"`
}

// PageGraph is the in-memory page set for one scan. It is built by a
// single writer (the crawl accumulator) so it carries no locking.
type PageGraph struct {
	Pages []*PageRecord

	PagesFetched int
	MaxDepth     int
	SitemapFound bool
	RobotsFound  bool
	EarlyExit    bool
	Duration     time.Duration

	byType map[PageType]*PageRecord
}

// NewPageGraph returns an empty graph.
func NewPageGraph() *PageGraph {
	return &PageGraph{byType: make(map[PageType]*PageRecord)}
}

// Add appends a record. The first record of each type wins the type slot.
func (g *PageGraph) Add(rec *PageRecord) {
	if rec == nil {
		return
	}
	g.Pages = append(g.Pages, rec)
	g.PagesFetched++
	if rec.Depth > g.MaxDepth {
		g.MaxDepth = rec.Depth
	}
	if _, ok := g.byType[rec.Type]; !ok {
		g.byType[rec.Type] = rec
	}
}

// HasType reports whether a page of the given type was fetched.
func (g *PageGraph) HasType(t PageType) bool {
	_, ok := g.byType[t]
	return ok
}

// FirstOfType returns the first record classified as t, or nil.
func (g *PageGraph) FirstOfType(t PageType) *PageRecord {
	return g.byType[t]
}

// Entry returns the depth-0 record, or nil for an empty graph.
func (g *PageGraph) Entry() *PageRecord {
	for _, p := range g.Pages {
		if p.Depth == 0 {
			return p
		}
	}
	return nil
}

// AllText concatenates the visible text of every page, used by the
// keyword-dictionary classifiers.
func (g *PageGraph) AllText() string {
	var total int
	for _, p := range g.Pages {
		total += len(p.Text) + 1
	}
	buf := make([]byte, 0, total)
	for _, p := range g.Pages {
		buf = append(buf, p.Text...)
		buf = append(buf, '\n')
	}
	return string(buf)
}
