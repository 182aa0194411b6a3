package discovery

import (
	"context"
	"fmt"
	"net/url"

	"github.com/temoto/robotstxt"

	"github.com/meridianpay/sitescan/internal/webclient"
)

// Robots wraps parsed robots.txt directives for the crawl's user agent.
type Robots struct {
	group    *robotstxt.Group
	Sitemaps []string
}

// ParseRobots builds Robots from raw robots.txt bytes. Unparseable
// input yields nil, which allows everything.
func ParseRobots(raw []byte) *Robots {
	data, err := robotstxt.FromBytes(raw)
	if err != nil {
		return nil
	}
	return &Robots{
		group:    data.FindGroup("sitescan"),
		Sitemaps: data.Sitemaps,
	}
}

// Allowed reports whether the crawler may fetch the given URL. A nil
// receiver allows everything.
func (r *Robots) Allowed(rawURL string) bool {
	if r == nil || r.group == nil {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return r.group.Test(path)
}

func (d *Discoverer) fetchRobots(ctx context.Context, entryURL string) (*Robots, error) {
	u, err := url.Parse(entryURL)
	if err != nil {
		return nil, err
	}
	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"

	resp, err := webclient.Get(ctx, d.wc, robotsURL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("robots.txt status %d", resp.StatusCode)
	}

	data, err := robotstxt.FromBytes(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	return &Robots{
		group:    data.FindGroup("sitescan"),
		Sitemaps: data.Sitemaps,
	}, nil
}
