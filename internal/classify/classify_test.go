package classify

import (
	"testing"

	"github.com/meridianpay/sitescan/internal/model"
)

func TestClassify_URLPatterns(t *testing.T) {
	c := New()

	tests := []struct {
		url    string
		anchor string
		want   model.PageType
	}{
		{"https://example.com/", "", model.PageHome},
		{"https://example.com", "", model.PageHome},
		{"https://example.com/privacy-policy", "", model.PagePrivacy},
		{"https://example.com/legal/gdpr", "", model.PagePrivacy},
		{"https://example.com/terms-of-service", "", model.PageTerms},
		{"https://example.com/tos", "", model.PageTerms},
		{"https://example.com/refund-policy", "", model.PageRefund},
		{"https://example.com/returns", "", model.PageRefund},
		{"https://example.com/shipping", "", model.PageShipping},
		{"https://example.com/contact-us", "", model.PageContact},
		{"https://example.com/about", "", model.PageAbout},
		{"https://example.com/faq", "", model.PageFAQ},
		{"https://example.com/pricing", "", model.PagePricing},
		{"https://example.com/shop/widgets", "", model.PageProduct},
		{"https://example.com/blog/2024/post", "", model.PageOther},
	}

	for _, tt := range tests {
		if got := c.Classify(tt.url, tt.anchor); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestClassify_AnchorTextFallback(t *testing.T) {
	c := New()

	// Opaque path, but the link text says what it is.
	if got := c.Classify("https://example.com/p/8821", "Privacy Policy"); got != model.PagePrivacy {
		t.Errorf("anchor fallback = %q, want %q", got, model.PagePrivacy)
	}
	if got := c.Classify("https://example.com/p/8822", "Read our Terms"); got != model.PageTerms {
		t.Errorf("anchor fallback = %q, want %q", got, model.PageTerms)
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// "privacy" appears before "terms" in the table, so a path containing
	// both classifies as privacy.
	c := New()
	if got := c.Classify("https://example.com/privacy-and-terms", ""); got != model.PagePrivacy {
		t.Errorf("got %q, want %q", got, model.PagePrivacy)
	}
}

func TestClassify_CustomRules(t *testing.T) {
	c := NewWithRules([]Rule{
		{Patterns: []string{"kontakt"}, Type: model.PageContact},
	})
	if got := c.Classify("https://example.de/kontakt", ""); got != model.PageContact {
		t.Errorf("got %q, want %q", got, model.PageContact)
	}
	if got := c.Classify("https://example.de/privacy", ""); got != model.PageOther {
		t.Errorf("custom table should not know privacy, got %q", got)
	}
}
