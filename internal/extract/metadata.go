package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/meridianpay/sitescan/internal/model"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?[0-9][0-9 ().\-]{7,16}[0-9]`)
)

// socialHosts maps hostname fragments to the networks we report.
var socialHosts = []string{
	"facebook.com", "instagram.com", "twitter.com", "x.com",
	"linkedin.com", "youtube.com", "tiktok.com", "github.com",
}

// Metadata extracts business name, summary and contact details. Intended
// for home/about/contact pages; callers skip it elsewhere.
func Metadata(doc *goquery.Document) *model.BusinessMetadata {
	if doc == nil {
		return nil
	}
	md := &model.BusinessMetadata{}

	if v, ok := doc.Find(`meta[property="og:site_name"]`).Attr("content"); ok {
		md.Name = strings.TrimSpace(v)
	}
	if md.Name == "" {
		title := strings.TrimSpace(doc.Find("title").First().Text())
		// "Acme Corp – Widgets for Everyone" -> "Acme Corp"
		for _, sep := range []string{" | ", " - ", " – ", " — ", " :: "} {
			if i := strings.Index(title, sep); i > 0 {
				title = title[:i]
				break
			}
		}
		md.Name = title
	}

	if v, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		md.Summary = NormalizeText(v)
	}
	if md.Summary == "" {
		doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := NormalizeText(s.Text())
			if len(text) >= 80 {
				md.Summary = text
				return false
			}
			return true
		})
	}
	if len(md.Summary) > 300 {
		md.Summary = md.Summary[:300]
	}

	body, _ := doc.Html()
	md.Emails = dedupe(emailRe.FindAllString(body, 10))

	// Phones only from tel: links and visible text; matching the raw HTML
	// drags in timestamps and IDs.
	var phoneSources []string
	doc.Find(`a[href^="tel:"]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		phoneSources = append(phoneSources, strings.TrimPrefix(href, "tel:"))
	})
	text := VisibleText(doc)
	phoneSources = append(phoneSources, phoneRe.FindAllString(text, 5)...)
	md.Phones = dedupe(filterPhones(phoneSources))

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		lower := strings.ToLower(href)
		for _, host := range socialHosts {
			if strings.Contains(lower, host) {
				md.Social = append(md.Social, href)
				return
			}
		}
	})
	md.Social = dedupe(md.Social)

	if md.Name == "" && md.Summary == "" && len(md.Emails) == 0 &&
		len(md.Phones) == 0 && len(md.Social) == 0 {
		return nil
	}
	return md
}

func filterPhones(candidates []string) []string {
	var out []string
	for _, c := range candidates {
		digits := 0
		for _, r := range c {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= 8 && digits <= 15 {
			out = append(out, strings.TrimSpace(c))
		}
	}
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, v := range in {
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
