package discovery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/meridianpay/sitescan/internal/urlutil"
)

type navLink struct {
	href string
	text string
}

// navRegions are where primary and secondary navigation live. Footer
// matters: policy links usually hide there.
var navRegions = []string{"nav", "header", "footer", `[role="navigation"]`, `[class*="navbar"]`, `[class*="menu"]`}

// navLinks extracts anchors from the entry page's navigation regions and
// resolves them against the entry URL.
func (d *Discoverer) navLinks(entryURL string, doc *goquery.Document) []navLink {
	if doc == nil {
		return nil
	}

	var out []navLink
	seen := map[string]struct{}{}

	collect := func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") ||
			strings.HasPrefix(href, "javascript:") {
			return
		}
		resolved, err := urlutil.ResolveRef(entryURL, href)
		if err != nil {
			return
		}
		if _, dup := seen[resolved]; dup {
			return
		}
		seen[resolved] = struct{}{}
		out = append(out, navLink{
			href: resolved,
			text: strings.TrimSpace(s.Text()),
		})
	}

	for _, region := range navRegions {
		doc.Find(region).Find("a[href]").Each(collect)
		if len(out) >= d.cfg.MaxNavLinks {
			break
		}
	}

	// Sparse navigation: fall back to all anchors on the page so tiny
	// sites without <nav> markup still seed the crawl.
	if len(out) == 0 {
		doc.Find("a[href]").Each(collect)
	}

	if len(out) > d.cfg.MaxNavLinks {
		out = out[:d.cfg.MaxNavLinks]
	}
	return out
}
