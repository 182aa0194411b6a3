package crawl

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/meridianpay/sitescan/internal/classify"
	"github.com/meridianpay/sitescan/internal/extract"
	"github.com/meridianpay/sitescan/internal/model"
	"github.com/meridianpay/sitescan/internal/urlutil"
	"github.com/meridianpay/sitescan/internal/webclient"
)

// metadataPages are the types the business-metadata extractor runs on.
var metadataPages = map[model.PageType]bool{
	model.PageHome:    true,
	model.PageAbout:   true,
	model.PageContact: true,
}

// BuildRecord classifies one fetched page and runs the extractors,
// producing the immutable PageRecord. It never fails: extraction errors
// just leave fields absent.
func BuildRecord(resp *webclient.Response, rawURL, anchorText string, depth int, classifier *classify.Classifier) (*model.PageRecord, []Link) {
	rec := &model.PageRecord{
		URL:        rawURL,
		StatusCode: resp.StatusCode,
		Depth:      depth,
		FetchedAt:  resp.FetchedAt,
	}
	if canon, err := urlutil.Canonicalize(rawURL, urlutil.DefaultOptions); err == nil {
		rec.CanonicalURL = canon
	} else {
		rec.CanonicalURL = rawURL
	}

	if depth == 0 {
		rec.Type = model.PageHome
	} else {
		rec.Type = classifier.Classify(rawURL, anchorText)
	}

	contentType := resp.Headers.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "text/html") {
		// Non-HTML still fingerprints on raw bytes so change detection
		// works for e.g. plain-text policy pages.
		text := extract.NormalizeText(string(resp.Body))
		rec.Text = text
		rec.Fingerprint = extract.Fingerprint(text)
		return rec, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		text := extract.NormalizeText(string(resp.Body))
		rec.Text = text
		rec.Fingerprint = extract.Fingerprint(text)
		return rec, nil
	}

	rec.Title = strings.TrimSpace(doc.Find("head title").First().Text())
	rec.Text = extract.VisibleText(doc)
	rec.Fingerprint = extract.Fingerprint(rec.Text)
	rec.Tech = extract.TechSignatures(doc, resp.Headers)
	rec.Commerce = extract.Commerce(doc)
	rec.Risk = extract.RiskText(rec.Text)
	if metadataPages[rec.Type] {
		rec.Metadata = extract.Metadata(doc)
	}
	if depth == 0 {
		rec.SEO = extract.SEOFacts(doc)
	}

	return rec, pageOutlinks(doc, rec.CanonicalURL)
}

func pageOutlinks(doc *goquery.Document, base string) []Link {
	var out []Link
	seen := map[string]struct{}{}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") ||
			strings.HasPrefix(href, "javascript:") {
			return
		}
		resolved, err := urlutil.ResolveRef(base, href)
		if err != nil {
			return
		}
		canon, err := urlutil.Canonicalize(resolved, urlutil.DefaultOptions)
		if err != nil {
			return
		}
		if !urlutil.SameHost(base, canon) {
			return
		}
		if _, dup := seen[canon]; dup {
			return
		}
		seen[canon] = struct{}{}
		out = append(out, Link{URL: canon, Anchor: strings.TrimSpace(s.Text())})
	})
	return out
}
