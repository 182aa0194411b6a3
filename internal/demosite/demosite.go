// Package demosite serves a small fake merchant site for exercising the
// scanner locally. Pages are versioned; control endpoints under /demo/
// flip versions so consecutive scans observe content changes.
package demosite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/meridianpay/sitescan/internal/logging"
)

// Server holds the mutable page-version state.
type Server struct {
	mu       sync.RWMutex
	versions map[string]int
	logger   logging.Logger
}

// New returns a Server with every page at version 1.
func New(logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop{}
	}
	versions := make(map[string]int, len(sitePages))
	for path := range sitePages {
		versions[path] = 1
	}
	return &Server{
		versions: versions,
		logger:   logger.With(logging.Field{Key: "component", Value: "demosite"}),
	}
}

// Router builds the site routes plus the /demo/ control endpoints.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	for path := range sitePages {
		r.Get(path, s.pageHandler(path))
	}
	r.Get("/robots.txt", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, robotsTxt)
	})
	r.Get("/sitemap.xml", s.sitemapHandler)

	r.Route("/demo", func(r chi.Router) {
		r.Post("/set-version", s.setVersionHandler)
		r.Post("/reset", s.resetHandler)
		r.Get("/versions", s.versionsHandler)
	})
	return r
}

// ListenAndServe runs the site on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("demosite listening", logging.Field{Key: "addr", Value: addr})
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) pageHandler(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.mu.RLock()
		version := s.versions[path]
		s.mu.RUnlock()

		pages := sitePages[path]
		if version < 1 || version > len(pages) {
			version = len(pages)
		}
		page := pages[version-1]

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, `<!doctype html>
<html><head>
<title>%s</title>
<meta name="description" content="Workshop tools and consumables for small manufacturers, shipped fast.">
<meta property="og:site_name" content="Orbit Supply Co.">
<link rel="canonical" href="%s">
</head><body>
%s
</body></html>`, page.Title, path, page.Body)
	}
}

func (s *Server) sitemapHandler(w http.ResponseWriter, r *http.Request) {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	paths := make([]string, 0, len(sitePages))
	for path := range sitePages {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	w.Header().Set("Content-Type", "application/xml")
	fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	fmt.Fprint(w, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`+"\n")
	for _, path := range paths {
		fmt.Fprintf(w, "  <url><loc>%s://%s%s</loc></url>\n", scheme, r.Host, path)
	}
	fmt.Fprint(w, "</urlset>\n")
}

// setVersionHandler flips one page to a specific version:
// POST /demo/set-version?path=/pricing&version=2
func (s *Server) setVersionHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	pages, ok := sitePages[path]
	if !ok {
		http.Error(w, "unknown path", http.StatusNotFound)
		return
	}
	version, err := strconv.Atoi(r.URL.Query().Get("version"))
	if err != nil || version < 1 || version > len(pages) {
		http.Error(w, fmt.Sprintf("version must be 1-%d", len(pages)), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.versions[path] = version
	s.mu.Unlock()

	s.logger.Info("page version set",
		logging.Field{Key: "path", Value: path},
		logging.Field{Key: "version", Value: version})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) resetHandler(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	for path := range s.versions {
		s.versions[path] = 1
	}
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) versionsHandler(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	out := make(map[string]int, len(s.versions))
	for k, v := range s.versions {
		out[k] = v
	}
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.logger.Warn("encode versions", logging.Field{Key: "error", Value: err.Error()})
	}
}
