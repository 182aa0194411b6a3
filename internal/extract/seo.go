package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/meridianpay/sitescan/internal/model"
)

// SEOFacts extracts the on-page facts the SEO analyzer scores. Only run
// on the entry page.
func SEOFacts(doc *goquery.Document) *model.SEOFacts {
	if doc == nil {
		return nil
	}
	facts := &model.SEOFacts{Indexable: true}

	facts.Title = strings.TrimSpace(doc.Find("head title").First().Text())
	if v, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		facts.MetaDescription = strings.TrimSpace(v)
	}
	facts.H1Count = doc.Find("h1").Length()
	facts.HasCanonical = doc.Find(`link[rel="canonical"]`).Length() > 0

	if v, ok := doc.Find(`meta[name="robots"]`).Attr("content"); ok {
		lower := strings.ToLower(v)
		if strings.Contains(lower, "noindex") || strings.Contains(lower, "none") {
			facts.Indexable = false
		}
	}
	return facts
}
