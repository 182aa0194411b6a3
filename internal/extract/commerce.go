package extract

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/meridianpay/sitescan/internal/model"
)

var cartSelectors = []string{
	`a[href*="/cart"]`, `a[href*="/basket"]`, `form[action*="/cart/add"]`,
	`[class*="add-to-cart"]`, `[class*="cart-icon"]`, `button[name="add"]`,
}

var productSelectors = []string{
	`[class*="product-card"]`, `[class*="product-item"]`, `[itemtype*="schema.org/Product"]`,
	`li[class*="product"]`, `article[class*="product"]`,
}

var subscriptionWords = []string{
	"per month", "/month", "/mo", "monthly", "per year", "/year", "annually",
	"subscription", "subscribe", "free trial", "billed",
}

var oneTimeWords = []string{
	"add to cart", "buy now", "add to basket", "one-time", "checkout",
}

var currencyMarks = map[string]string{
	"$": "USD", "€": "EUR", "£": "GBP", "¥": "JPY", "₹": "INR",
}

// Commerce extracts product/pricing indicators from one page.
func Commerce(doc *goquery.Document) *model.CommerceSignals {
	if doc == nil {
		return nil
	}
	sig := &model.CommerceSignals{PricingModel: "unknown"}

	for _, sel := range cartSelectors {
		if doc.Find(sel).Length() > 0 {
			sig.HasCart = true
			break
		}
	}

	// A pricing table is a repeated plan/tier structure.
	for _, sel := range []string{`[class*="pricing-table"]`, `[class*="pricing-plan"]`, `[class*="price-card"]`, `[class*="plan-card"]`, `table[class*="pricing"]`} {
		if doc.Find(sel).Length() > 0 {
			sig.HasPricingTable = true
			break
		}
	}

	for _, sel := range productSelectors {
		if n := doc.Find(sel).Length(); n > sig.ProductCount {
			sig.ProductCount = n
		}
	}

	text := strings.ToLower(VisibleText(doc))
	subHits := countAny(text, subscriptionWords)
	oneHits := countAny(text, oneTimeWords)
	switch {
	case subHits > 0 && subHits >= oneHits:
		sig.PricingModel = "subscription"
	case oneHits > 0:
		sig.PricingModel = "one_time"
	}

	for mark, code := range currencyMarks {
		if strings.Contains(text, mark) {
			sig.Currencies = append(sig.Currencies, code)
		}
	}
	sort.Strings(sig.Currencies)

	if tech := TechSignatures(doc, nil); len(tech) > 0 {
		for _, t := range tech {
			if t.Category == "platform" {
				sig.Platform = t.Name
				break
			}
		}
	}

	if !sig.HasCart && !sig.HasPricingTable && sig.ProductCount == 0 &&
		sig.PricingModel == "unknown" && sig.Platform == "" {
		return nil
	}
	return sig
}

func countAny(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}
