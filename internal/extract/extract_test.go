package extract

import (
	"net/http"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestVisibleText_SkipsScriptsAndNormalizes(t *testing.T) {
	doc := parse(t, `<html><head><style>body{}</style></head><body>
		<h1>Hello   World</h1>
		<script>var x = "invisible";</script>
		<p>Second
		line</p></body></html>`)

	got := VisibleText(doc)
	if got != "Hello World Second line" {
		t.Errorf("VisibleText = %q", got)
	}
}

func TestFingerprint_StableAcrossWhitespace(t *testing.T) {
	a := Fingerprint(NormalizeText("Hello   World\n\n"))
	b := Fingerprint(NormalizeText(" Hello World "))
	if a != b {
		t.Error("fingerprints should be equal after normalization")
	}
	if a == Fingerprint(NormalizeText("Hello World!")) {
		t.Error("different text should not collide")
	}
}

func TestMetadata_NameSummaryContacts(t *testing.T) {
	doc := parse(t, `<html><head>
		<title>Acme Corp | Widgets for Everyone</title>
		<meta name="description" content="Acme sells the finest widgets.">
		</head><body>
		<a href="mailto:sales@acme.example">sales@acme.example</a>
		<a href="tel:+14155550123">Call us</a>
		<a href="https://twitter.com/acme">Twitter</a>
		<a href="https://www.linkedin.com/company/acme">LinkedIn</a>
		</body></html>`)

	md := Metadata(doc)
	if md == nil {
		t.Fatal("expected metadata")
	}
	if md.Name != "Acme Corp" {
		t.Errorf("Name = %q", md.Name)
	}
	if md.Summary != "Acme sells the finest widgets." {
		t.Errorf("Summary = %q", md.Summary)
	}
	if len(md.Emails) != 1 || md.Emails[0] != "sales@acme.example" {
		t.Errorf("Emails = %v", md.Emails)
	}
	if len(md.Phones) != 1 {
		t.Errorf("Phones = %v", md.Phones)
	}
	if len(md.Social) != 2 {
		t.Errorf("Social = %v", md.Social)
	}
}

func TestMetadata_PrefersOGSiteName(t *testing.T) {
	doc := parse(t, `<html><head>
		<meta property="og:site_name" content="Acme">
		<title>Welcome to the homepage</title>
		</head><body></body></html>`)

	md := Metadata(doc)
	if md == nil || md.Name != "Acme" {
		t.Fatalf("expected og:site_name to win, got %+v", md)
	}
}

func TestTechSignatures_MarkersAndHeaders(t *testing.T) {
	doc := parse(t, `<html><head>
		<script src="https://cdn.shopify.com/s/files/theme.js"></script>
		<script src="https://js.stripe.com/v3/"></script>
		<script>gtag('config', 'G-XYZ');</script>
		</head><body></body></html>`)

	headers := http.Header{}
	headers.Set("Server", "cloudflare")

	sigs := TechSignatures(doc, headers)
	found := map[string]string{}
	for _, s := range sigs {
		found[s.Name] = s.Category
	}
	for name, category := range map[string]string{
		"Shopify":          "platform",
		"Stripe":           "payments",
		"Google Analytics": "analytics",
		"Cloudflare":       "platform",
	} {
		if found[name] != category {
			t.Errorf("expected %s (%s) detected, got %v", name, category, found)
		}
	}
}

func TestCommerce_SubscriptionPricing(t *testing.T) {
	doc := parse(t, `<html><body>
		<div class="pricing-table">
			<div class="plan-card">Starter $9 per month</div>
			<div class="plan-card">Pro $29 per month, free trial</div>
		</div></body></html>`)

	sig := Commerce(doc)
	if sig == nil {
		t.Fatal("expected commerce signals")
	}
	if !sig.HasPricingTable {
		t.Error("expected pricing table")
	}
	if sig.PricingModel != "subscription" {
		t.Errorf("PricingModel = %q", sig.PricingModel)
	}
	if len(sig.Currencies) != 1 || sig.Currencies[0] != "USD" {
		t.Errorf("Currencies = %v", sig.Currencies)
	}
}

func TestCommerce_ShopWithProducts(t *testing.T) {
	doc := parse(t, `<html><body>
		<a href="/cart" class="cart-icon">Cart</a>
		<ul>
			<li class="product-item">Widget A <button>Buy now</button></li>
			<li class="product-item">Widget B</li>
			<li class="product-item">Widget C</li>
		</ul></body></html>`)

	sig := Commerce(doc)
	if sig == nil {
		t.Fatal("expected commerce signals")
	}
	if !sig.HasCart {
		t.Error("expected cart")
	}
	if sig.ProductCount != 3 {
		t.Errorf("ProductCount = %d", sig.ProductCount)
	}
	if sig.PricingModel != "one_time" {
		t.Errorf("PricingModel = %q", sig.PricingModel)
	}
}

func TestCommerce_EmptyPageReturnsNil(t *testing.T) {
	doc := parse(t, `<html><body><p>Just an article about gardening.</p></body></html>`)
	if sig := Commerce(doc); sig != nil {
		t.Errorf("expected nil, got %+v", sig)
	}
}

func TestRiskText_CategorizesHits(t *testing.T) {
	hits := RiskText("Play poker at our online casino. Pay with bitcoin today. Bitcoin accepted.")

	byCategory := map[string]int{}
	for _, h := range hits {
		byCategory[h.Category] = h.Count
	}
	if byCategory["gambling"] != 2 {
		t.Errorf("gambling count = %d, want 2", byCategory["gambling"])
	}
	if byCategory["cryptocurrency"] != 2 {
		t.Errorf("cryptocurrency count = %d, want 2", byCategory["cryptocurrency"])
	}
	if _, ok := byCategory["pharmacy"]; ok {
		t.Error("unexpected pharmacy hit")
	}
}

func TestRiskText_CleanTextHasNoHits(t *testing.T) {
	if hits := RiskText("We sell handmade wooden furniture."); len(hits) != 0 {
		t.Errorf("expected no hits, got %v", hits)
	}
}

func TestDummyText(t *testing.T) {
	if !DummyText("Lorem ipsum dolor sit amet, consectetur.") {
		t.Error("expected filler detection")
	}
	if DummyText("Our refund policy lasts 30 days.") {
		t.Error("false positive on normal text")
	}
}

func TestSEOFacts(t *testing.T) {
	doc := parse(t, `<html><head>
		<title>Acme Widgets</title>
		<meta name="description" content="Widgets and more widgets from Acme.">
		<link rel="canonical" href="https://acme.example/">
		</head><body><h1>One heading</h1></body></html>`)

	facts := SEOFacts(doc)
	if facts == nil {
		t.Fatal("expected facts")
	}
	if facts.Title != "Acme Widgets" {
		t.Errorf("Title = %q", facts.Title)
	}
	if facts.H1Count != 1 {
		t.Errorf("H1Count = %d", facts.H1Count)
	}
	if !facts.HasCanonical {
		t.Error("expected canonical")
	}
	if !facts.Indexable {
		t.Error("expected indexable")
	}
}

func TestSEOFacts_Noindex(t *testing.T) {
	doc := parse(t, `<html><head><meta name="robots" content="noindex, nofollow"></head><body></body></html>`)
	facts := SEOFacts(doc)
	if facts.Indexable {
		t.Error("expected noindex page to be non-indexable")
	}
}
