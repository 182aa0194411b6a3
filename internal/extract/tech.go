package extract

import (
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/meridianpay/sitescan/internal/model"
)

// fingerprint is one detectable technology: any marker substring found in
// the raw markup, or any header key/value pair, counts as a detection.
type fingerprint struct {
	name     string
	category string
	markers  []string          // substrings of the raw HTML (lowercased)
	headers  map[string]string // header name -> value substring ("" = presence)
}

// techTable is the data-driven fingerprint set. Deliberately small: only
// signatures that matter for merchant due diligence (platform, payments,
// analytics, framework).
var techTable = []fingerprint{
	{name: "Shopify", category: "platform", markers: []string{"cdn.shopify.com", "shopify.theme"}, headers: map[string]string{"X-Shopid": ""}},
	{name: "WooCommerce", category: "platform", markers: []string{"woocommerce", "wp-content/plugins/woocommerce"}},
	{name: "Magento", category: "platform", markers: []string{"mage/cookies", "magento_", "/static/version"}},
	{name: "BigCommerce", category: "platform", markers: []string{"cdn11.bigcommerce.com"}},
	{name: "Squarespace", category: "platform", markers: []string{"static1.squarespace.com"}},
	{name: "Wix", category: "platform", markers: []string{"wix.com", "wixstatic.com"}},
	{name: "WordPress", category: "framework", markers: []string{"wp-content", "wp-includes"}},
	{name: "Next.js", category: "framework", markers: []string{"__next_data__", "/_next/static"}},
	{name: "Nuxt", category: "framework", markers: []string{"__nuxt"}},
	{name: "React", category: "framework", markers: []string{"data-reactroot", "react-dom"}},
	{name: "Google Analytics", category: "analytics", markers: []string{"google-analytics.com", "gtag(", "googletagmanager.com"}},
	{name: "Meta Pixel", category: "analytics", markers: []string{"connect.facebook.net/en_us/fbevents"}},
	{name: "Hotjar", category: "analytics", markers: []string{"static.hotjar.com"}},
	{name: "Stripe", category: "payments", markers: []string{"js.stripe.com", "checkout.stripe.com"}},
	{name: "PayPal", category: "payments", markers: []string{"paypal.com/sdk", "paypalobjects.com"}},
	{name: "Klarna", category: "payments", markers: []string{"klarna.com"}},
	{name: "Square", category: "payments", markers: []string{"squareup.com", "square.site"}},
	{name: "Cloudflare", category: "platform", headers: map[string]string{"Server": "cloudflare"}},
}

// TechSignatures detects technology fingerprints in markup and response
// headers.
func TechSignatures(doc *goquery.Document, headers http.Header) []model.TechSignature {
	var html string
	if doc != nil {
		raw, err := doc.Html()
		if err == nil {
			html = strings.ToLower(raw)
		}
	}

	var out []model.TechSignature
	for _, fp := range techTable {
		if matchFingerprint(fp, html, headers) {
			out = append(out, model.TechSignature{Name: fp.name, Category: fp.category})
		}
	}
	return out
}

func matchFingerprint(fp fingerprint, html string, headers http.Header) bool {
	for _, m := range fp.markers {
		if html != "" && strings.Contains(html, m) {
			return true
		}
	}
	if headers != nil {
		for name, want := range fp.headers {
			got := headers.Get(name)
			if got == "" {
				continue
			}
			if want == "" || strings.Contains(strings.ToLower(got), strings.ToLower(want)) {
				return true
			}
		}
	}
	return false
}
