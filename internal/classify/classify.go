// Package classify assigns a semantic page type to each fetched page
// using an ordered rule table matched against the URL path and, when
// available, the anchor text that linked to the page.
package classify

import (
	"net/url"
	"strings"

	"github.com/meridianpay/sitescan/internal/model"
)

// Rule maps a set of substring patterns to a page type. Rules are
// evaluated in table order; the first match wins.
type Rule struct {
	Patterns []string
	Type     model.PageType
}

// Rules is the default classification table. Policy pages come first so
// "/legal/privacy" beats the broader rules below it.
var Rules = []Rule{
	{Patterns: []string{"privacy", "gdpr", "datenschutz"}, Type: model.PagePrivacy},
	{Patterns: []string{"terms", "tos", "conditions", "legal-terms"}, Type: model.PageTerms},
	{Patterns: []string{"refund", "return", "cancellation", "money-back"}, Type: model.PageRefund},
	{Patterns: []string{"shipping", "delivery"}, Type: model.PageShipping},
	{Patterns: []string{"contact", "support", "help-center"}, Type: model.PageContact},
	{Patterns: []string{"about", "team", "company", "who-we-are"}, Type: model.PageAbout},
	{Patterns: []string{"faq", "frequently-asked"}, Type: model.PageFAQ},
	{Patterns: []string{"pricing", "plans", "price"}, Type: model.PagePricing},
	{Patterns: []string{"product", "shop", "store", "catalog", "collection"}, Type: model.PageProduct},
}

// Classifier matches pages against a rule table.
type Classifier struct {
	rules []Rule
}

// New returns a classifier over the default table.
func New() *Classifier {
	return &Classifier{rules: Rules}
}

// NewWithRules returns a classifier over a custom table. Used by tests to
// exercise the matcher independently of the shipped rules.
func NewWithRules(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify picks exactly one type for a page. rawURL is matched on its
// path; anchorText is the text of the link that discovered the page.
// A root path always classifies as home.
func (c *Classifier) Classify(rawURL, anchorText string) model.PageType {
	path := ""
	if u, err := url.Parse(rawURL); err == nil {
		path = strings.ToLower(u.Path)
	}
	if path == "" || path == "/" {
		return model.PageHome
	}

	if t, ok := c.match(path); ok {
		return t
	}
	if anchorText != "" {
		if t, ok := c.match(strings.ToLower(anchorText)); ok {
			return t
		}
	}
	return model.PageOther
}

func (c *Classifier) match(s string) (model.PageType, bool) {
	for _, rule := range c.rules {
		for _, p := range rule.Patterns {
			if strings.Contains(s, p) {
				return rule.Type, true
			}
		}
	}
	return model.PageOther, false
}
