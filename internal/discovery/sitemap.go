package discovery

import (
	"context"
	"encoding/xml"
	"net/url"

	"github.com/meridianpay/sitescan/internal/logging"
	"github.com/meridianpay/sitescan/internal/webclient"
)

// sitemap XML shapes. A fetch may return either a urlset or a sitemapindex
// referencing child sitemaps; one level of indirection is followed.
type urlset struct {
	URLs []struct {
		Loc      string  `xml:"loc"`
		Priority float64 `xml:"priority"`
	} `xml:"url"`
}

type sitemapindex struct {
	Sitemaps []struct {
		Loc string `xml:"loc"`
	} `xml:"sitemap"`
}

// fetchSitemap tries robots-declared sitemaps first, then the well-known
// path. Returns the capped URL list and whether any sitemap was found.
func (d *Discoverer) fetchSitemap(ctx context.Context, entryURL string, robots *Robots) ([]string, bool) {
	var locations []string
	if robots != nil {
		locations = append(locations, robots.Sitemaps...)
	}
	if u, err := url.Parse(entryURL); err == nil {
		locations = append(locations, u.Scheme+"://"+u.Host+"/sitemap.xml")
	}

	for _, loc := range locations {
		urls, ok := d.readSitemap(ctx, loc, true)
		if ok {
			if len(urls) > d.cfg.MaxSitemapURLs {
				urls = urls[:d.cfg.MaxSitemapURLs]
			}
			return urls, true
		}
	}
	return nil, false
}

func (d *Discoverer) readSitemap(ctx context.Context, loc string, followIndex bool) ([]string, bool) {
	resp, err := webclient.Get(ctx, d.wc, loc)
	if err != nil || resp.StatusCode != 200 {
		if err != nil {
			d.logger.Debug("sitemap fetch failed",
				logging.Field{Key: "url", Value: loc},
				logging.Field{Key: "error", Value: err.Error()})
		}
		return nil, false
	}

	var set urlset
	if err := xml.Unmarshal(resp.Body, &set); err == nil && len(set.URLs) > 0 {
		out := make([]string, 0, len(set.URLs))
		for _, u := range set.URLs {
			if u.Loc != "" {
				out = append(out, u.Loc)
			}
		}
		return out, true
	}

	if !followIndex {
		return nil, false
	}
	var index sitemapindex
	if err := xml.Unmarshal(resp.Body, &index); err != nil || len(index.Sitemaps) == 0 {
		return nil, false
	}
	var out []string
	for _, child := range index.Sitemaps {
		urls, ok := d.readSitemap(ctx, child.Loc, false)
		if ok {
			out = append(out, urls...)
		}
		if len(out) >= d.cfg.MaxSitemapURLs {
			break
		}
	}
	return out, len(out) > 0
}
