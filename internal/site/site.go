// Package site renders the public directory pages: home, about, services,
// and the local and global listing sections.
package site

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/JaimeStill/bizz/internal/listings"
	"github.com/JaimeStill/bizz/internal/location"
	"github.com/JaimeStill/bizz/internal/seo"
	"github.com/JaimeStill/bizz/pkg/pagination"
	"github.com/JaimeStill/bizz/pkg/web"
)

//go:embed templates public static
var assets embed.FS

//go:embed static/favicon.svg
var favicon []byte

const (
	layout      = "layout"
	assetMaxAge = 24 * time.Hour
)

var (
	homeView      = web.ViewDef{Template: "home.html"}
	aboutView     = web.ViewDef{Template: "about.html", Title: "About Us"}
	marketingView = web.ViewDef{Template: "digital-marketing.html", Title: "Digital Marketing Services in Kuwait"}
	directoryView = web.ViewDef{Template: "listings.html", Title: "Business Listings"}
	listingView   = web.ViewDef{Template: "listing.html"}
	notFoundView  = web.ViewDef{Template: "not-found.html", Title: "Page Not Found"}
)

var views = []web.ViewDef{homeView, aboutView, marketingView, directoryView, listingView, notFoundView}

type cardData struct {
	Item    listings.Listing
	Section location.ListingContext
}

var funcs = template.FuncMap{
	"url": func(l listings.Listing, section location.ListingContext) string {
		return l.URL(section)
	},
	"cardOf": func(l listings.Listing, section location.ListingContext) cardData {
		return cardData{Item: l, Section: section}
	},
	"join": strings.Join,
}

// Head is the per-page head content shared by every view.
type Head struct {
	Language string
	Meta     seo.Metadata
	Tags     []seo.MetaTag
	Schemas  []seo.Document
}

// Site serves the server-rendered directory pages.
type Site struct {
	templates  *web.TemplateSet
	seo        *seo.Config
	listings   listings.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New parses the embedded templates and returns a Site backed by the listings system.
func New(cfg *seo.Config, sys listings.System, logger *slog.Logger, pagination pagination.Config) (*Site, error) {
	ts, err := web.NewTemplateSet(assets, "templates/layouts/*.html", "templates/views", "", funcs, views)
	if err != nil {
		return nil, fmt.Errorf("site templates: %w", err)
	}

	return &Site{
		templates:  ts,
		seo:        cfg,
		listings:   sys,
		logger:     logger.With("module", "site"),
		pagination: pagination,
	}, nil
}

// Router returns the page router. Unmatched paths render the 404 page.
func (s *Site) Router() *web.Router {
	r := web.NewRouter()

	r.HandleFunc("GET /{$}", s.home)
	r.HandleFunc("GET /about-us", s.about)
	r.HandleFunc("GET /services/digital-marketing", s.digitalMarketing)

	for _, section := range []location.ListingContext{location.ListingContextLocal, location.ListingContextGlobal} {
		prefix := location.URLPrefix(section)
		r.HandleFunc("GET "+prefix, s.directory(section))
		r.HandleFunc("GET "+prefix+"/{category}", s.directory(section))
		r.HandleFunc("GET "+prefix+"/{category}/{slug}", s.listing(section))
	}

	r.HandleFunc("GET /static/", web.MustStatic(assets, "static", "/static/", assetMaxAge))
	r.HandleFunc("GET /favicon.svg", web.ServeEmbeddedFile(favicon, "image/svg+xml", assetMaxAge))
	r.Routes(web.PublicFileRoutes(assets, "public", time.Hour, "robots.txt")...)

	r.SetFallback(s.notFound)
	return r
}

func (s *Site) head(meta seo.Metadata, tags []seo.MetaTag, schemas ...seo.Document) Head {
	docs := make([]seo.Document, 0, len(schemas))
	for _, d := range schemas {
		if d != nil {
			docs = append(docs, d)
		}
	}

	if tags == nil {
		tags = s.seo.GeoMetaTags()
	}

	return Head{
		Language: s.seo.ContentLanguage(),
		Meta:     meta,
		Tags:     tags,
		Schemas:  docs,
	}
}

func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, view web.ViewDef, head Head, data any) {
	title := head.Meta.Title
	if title == "" {
		title = s.seo.Title(view.Title)
	}

	err := s.templates.Render(w, status, layout, view.Template, web.ViewData{
		Title: title,
		Head:  head,
		Data:  data,
	})
	if err != nil {
		s.logger.Error("render failed", "view", view.Template, "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
