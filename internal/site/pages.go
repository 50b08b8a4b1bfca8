package site

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/JaimeStill/bizz/internal/listings"
	"github.com/JaimeStill/bizz/internal/location"
	"github.com/JaimeStill/bizz/internal/seo"
	"github.com/JaimeStill/bizz/pkg/pagination"
)

// Section is a block of listing cards linked under one directory prefix.
type Section struct {
	Context location.ListingContext
	Title   string
	Prefix  string
	Items   []listings.Listing
}

type homeData struct {
	Categories []Card
	Steps      []Card
	Local      Section
	Global     Section
}

type aboutData struct {
	Stats     []Stat
	Steps     []Card
	Values    []Card
	Offerings []Card
}

type marketingData struct {
	Services []Card
	Benefits []Card
}

type directoryData struct {
	Heading  string
	Category string
	Featured Section
	Results  Section
	Page     *pagination.PageResult[listings.Listing]
	Prev     string
	Next     string
}

type listingData struct {
	Listing  listings.Listing
	Section  location.ListingContext
	Category string
	Place    string
	Agent    seo.AgentContent
}

var sectionTitles = map[location.ListingContext]string{
	location.ListingContextLocal:  "Featured Businesses in Kuwait",
	location.ListingContextGlobal: "Featured International Businesses",
}

var directoryHeadings = map[location.ListingContext]string{
	location.ListingContextLocal:  "Business Listings in Kuwait",
	location.ListingContextGlobal: "Global Business Listings",
}

func newSection(ctx location.ListingContext, items []listings.Listing) Section {
	return Section{
		Context: ctx,
		Title:   sectionTitles[ctx],
		Prefix:  location.URLPrefix(ctx),
		Items:   items,
	}
}

func (s *Site) home(w http.ResponseWriter, r *http.Request) {
	var local, global []listings.Listing

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		local, err = s.listings.Featured(ctx, location.ListingContextLocal)
		return err
	})
	g.Go(func() error {
		var err error
		global, err = s.listings.Featured(ctx, location.ListingContextGlobal)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("featured sections unavailable", "error", err)
		local, global = nil, nil
	}

	content := s.seo.AgentContent("", "", s.seo.Country, s.seo.Description, seo.KindLocation)
	head := s.head(
		s.seo.Metadata("/"),
		s.seo.AgentMetaTags(content),
		s.seo.WebsiteSchema(),
		s.seo.OrganizationSchema(),
	)

	s.render(w, r, http.StatusOK, homeView, head, homeData{
		Categories: previewCategories,
		Steps:      processSteps,
		Local:      newSection(location.ListingContextLocal, local),
		Global:     newSection(location.ListingContextGlobal, global),
	})
}

func (s *Site) about(w http.ResponseWriter, r *http.Request) {
	head := s.head(s.seo.Metadata("/about-us"), nil, s.seo.OrganizationSchema())
	s.render(w, r, http.StatusOK, aboutView, head, aboutData{
		Stats:     aboutStats,
		Steps:     processSteps,
		Values:    values,
		Offerings: offerings,
	})
}

func (s *Site) digitalMarketing(w http.ResponseWriter, r *http.Request) {
	head := s.head(
		s.seo.Metadata("/services/digital-marketing"),
		nil,
		s.seo.OrganizationSchema(),
		s.seo.WebsiteSchema(),
	)
	s.render(w, r, http.StatusOK, marketingView, head, marketingData{
		Services: marketingServices,
		Benefits: marketingBenefits,
	})
}

// directory renders a section index, or a category page within the section
// when the path carries a category slug.
func (s *Site) directory(section location.ListingContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.PathValue("category")
		page := pagination.PageRequestFromQuery(r.URL.Query(), s.pagination)

		isGlobal := section == location.ListingContextGlobal
		filters := listings.Filters{IsGlobal: &isGlobal}
		if category != "" {
			filters.Category = &category
		}

		var (
			result   *pagination.PageResult[listings.Listing]
			featured []listings.Listing
		)

		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			result, err = s.listings.List(ctx, page, filters)
			return err
		})
		if category == "" {
			g.Go(func() error {
				var err error
				featured, err = s.listings.Featured(ctx, section)
				return err
			})
		}
		if err := g.Wait(); err != nil {
			s.logger.Error("directory query failed", "section", section, "category", category, "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		data := directoryData{
			Featured: newSection(section, featured),
			Results:  newSection(section, result.Data),
			Page:     result,
		}
		if result.HasPrevious() {
			data.Prev = r.URL.Path + pagination.PageQuery(r.URL.Query(), result.Page-1)
		}
		if result.HasNext() {
			data.Next = r.URL.Path + pagination.PageQuery(r.URL.Query(), result.Page+1)
		}

		var head Head
		if category != "" {
			data.Category = categoryName(category, result.Data)
			data.Heading = data.Category + " in " + sectionPlace(s.seo, section)
			meta := s.seo.Metadata(r.URL.Path)
			meta.Title = s.seo.Title(data.Heading)
			meta.OpenGraph.Title = meta.Title
			meta.Twitter.Title = meta.Title
			content := s.seo.AgentContent("", data.Category, sectionPlace(s.seo, section), "", seo.KindCategory)
			head = s.head(meta, s.seo.AgentMetaTags(content),
				s.seo.AgentSchema("", data.Category, sectionPlace(s.seo, section), "", seo.KindCategory)...)
		} else {
			data.Heading = directoryHeadings[section]
			if isGlobal {
				head = s.head(s.seo.Metadata(r.URL.Path), nil, s.seo.WebsiteSchema())
			} else {
				content := s.seo.AgentContent("", "", s.seo.Country, "", seo.KindLocation)
				head = s.head(s.seo.Metadata(r.URL.Path), s.seo.AgentMetaTags(content),
					s.seo.AgentSchema("", "", s.seo.Country, "", seo.KindLocation)...)
			}
		}

		s.render(w, r, http.StatusOK, directoryView, head, data)
	}
}

// listing renders a listing detail page. A listing requested under the wrong
// section or category is redirected to its canonical URL.
func (s *Site) listing(section location.ListingContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := s.listings.FindBySlug(r.Context(), r.PathValue("slug"))
		if err != nil {
			if errors.Is(err, listings.ErrNotFound) {
				s.notFound(w, r)
				return
			}
			s.logger.Error("listing lookup failed", "slug", r.PathValue("slug"), "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		canonical := l.URL(l.Section())
		if l.Section() != section || canonical != r.URL.Path {
			http.Redirect(w, r, canonical, http.StatusMovedPermanently)
			return
		}

		category := l.PrimaryCategory().Name
		if category == "" {
			category = "Business"
		}
		place := listingPlace(*l)

		content := s.seo.AgentContent(l.Title, category, place, l.Description, seo.KindListing)
		schemas := append(
			s.seo.AgentSchema(l.Title, category, place, l.Description, seo.KindListing),
			seo.FAQSchema(content.QA),
		)
		head := s.head(
			s.seo.ListingMetadata(canonical, l.Title, category, place, l.Description, l.ImageURL),
			s.seo.AgentMetaTags(content),
			schemas...,
		)

		s.render(w, r, http.StatusOK, listingView, head, listingData{
			Listing:  *l,
			Section:  section,
			Category: category,
			Place:    place,
			Agent:    content,
		})
	}
}

func (s *Site) notFound(w http.ResponseWriter, r *http.Request) {
	meta := s.seo.Metadata(r.URL.Path)
	meta.Title = s.seo.Title(notFoundView.Title)
	meta.Robots = "noindex, follow"
	s.render(w, r, http.StatusNotFound, notFoundView, s.head(meta, nil), nil)
}

// categoryName resolves a category slug to its display name, preferring the
// name stored on a matching listing.
func categoryName(slug string, items []listings.Listing) string {
	for _, l := range items {
		for _, c := range l.Categories {
			if c.Slug == slug && c.Name != "" {
				return c.Name
			}
		}
	}
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}

func sectionPlace(cfg *seo.Config, section location.ListingContext) string {
	if section == location.ListingContextGlobal {
		return "International Markets"
	}
	return cfg.Country
}

func listingPlace(l listings.Listing) string {
	switch {
	case l.City != "" && l.Location != "" && !strings.Contains(strings.ToLower(l.Location), strings.ToLower(l.City)):
		return l.City + ", " + l.Location
	case l.City != "":
		return l.City
	default:
		return l.Location
	}
}
