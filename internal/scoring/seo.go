package scoring

import (
	"fmt"

	"github.com/meridianpay/sitescan/internal/model"
)

// SEO scores the entry page's on-page facts plus the two site-level
// discovery facts on a fixed 100-point table. A nil facts value (entry
// page unparseable) zeroes the on-page checks but the site-level points
// still apply.
func SEO(facts *model.SEOFacts, sitemapFound, robotsFound bool) model.SEOResult {
	var res model.SEOResult
	add := func(name string, points, max int, detail string) {
		res.Checks = append(res.Checks, model.SEOCheck{
			Name: name, Points: points, Max: max, Detail: detail,
		})
		res.Score += points
	}

	if facts == nil {
		facts = &model.SEOFacts{}
	}

	switch n := len(facts.Title); {
	case n == 0:
		add("title", 0, 20, "missing")
	case n >= 10 && n <= 70:
		add("title", 20, 20, "")
	default:
		add("title", 10, 20, fmt.Sprintf("length %d outside 10-70", n))
	}

	switch n := len(facts.MetaDescription); {
	case n == 0:
		add("meta_description", 0, 20, "missing")
	case n >= 50 && n <= 160:
		add("meta_description", 20, 20, "")
	default:
		add("meta_description", 10, 20, fmt.Sprintf("length %d outside 50-160", n))
	}

	switch {
	case facts.H1Count == 1:
		add("h1", 15, 15, "")
	case facts.H1Count > 1:
		add("h1", 7, 15, fmt.Sprintf("%d h1 elements, want exactly one", facts.H1Count))
	default:
		add("h1", 0, 15, "missing")
	}

	if facts.HasCanonical {
		add("canonical", 10, 10, "")
	} else {
		add("canonical", 0, 10, "missing")
	}

	if facts.Indexable {
		add("indexable", 15, 15, "")
	} else {
		add("indexable", 0, 15, "page excluded from indexing")
	}

	if sitemapFound {
		add("sitemap", 10, 10, "")
	} else {
		add("sitemap", 0, 10, "no sitemap found")
	}

	if robotsFound {
		add("robots", 10, 10, "")
	} else {
		add("robots", 0, 10, "no robots.txt found")
	}

	return res
}
