package seo

import "strings"

// OpenGraph holds og:* properties for a page.
type OpenGraph struct {
	Title       string
	Description string
	URL         string
	SiteName    string
	Image       string
	Type        string
	Locale      string
}

// Twitter holds twitter:* card properties for a page.
type Twitter struct {
	Card        string
	Site        string
	Title       string
	Description string
	Image       string
}

// Metadata is the head metadata rendered for a page.
type Metadata struct {
	Title       string
	Description string
	Keywords    []string
	Canonical   string
	Robots      string
	OpenGraph   OpenGraph
	Twitter     Twitter
}

type page struct {
	title       string
	description string
	keywords    []string
	robots      string
}

var pages = map[string]page{
	"/": {},
	"/about-us": {
		title:       "About Us",
		description: "Learn about Kuwait Bizz Directory, the trusted partner connecting customers with verified businesses across all 6 governorates of Kuwait.",
		keywords:    []string{"about Kuwait Bizz", "Kuwait business directory", "verified businesses Kuwait"},
	},
	"/services/digital-marketing": {
		title:       "Digital Marketing Services in Kuwait",
		description: "Grow your business with directory listings, SEO, social media marketing, and digital advertising across Kuwait.",
		keywords:    []string{"digital marketing Kuwait", "SEO Kuwait", "social media marketing Kuwait", "Google Ads Kuwait"},
	},
	"/listings": {
		title:       "Business Listings in Kuwait",
		description: "Browse verified business listings from Kuwait City, Hawalli, Salmiya, Farwaniya, Ahmadi, Jahra and beyond.",
		keywords:    []string{"business listings Kuwait", "Kuwait companies"},
	},
	"/global-listings": {
		title:       "Global Business Listings",
		description: "International businesses that serve, support, and trade with Kuwait.",
		keywords:    []string{"international suppliers Kuwait", "global business directory"},
	},
	"/add-listing": {
		title:       "Add Your Business",
		description: "List your business on Kuwait Bizz Directory for free and reach customers across Kuwait.",
		robots:      "noindex, follow",
	},
}

// Metadata returns head metadata for a site path. Unknown paths receive the
// site defaults with a canonical URL for the path.
func (c *Config) Metadata(path string) Metadata {
	p := pages[normalizePath(path)]
	return c.build(path, p)
}

// ListingMetadata returns head metadata for a listing detail page.
func (c *Config) ListingMetadata(path, name, category, location, description, image string) Metadata {
	p := page{
		title:       name,
		description: description,
		keywords:    []string{name, category, location, category + " " + c.Country},
	}
	if p.description == "" {
		p.description = name + " is a " + category + " business in " + location + ", " + c.Country + "."
	}
	m := c.build(path, p)
	if image != "" {
		m.OpenGraph.Image = c.Absolute(image)
		m.Twitter.Image = m.OpenGraph.Image
	}
	m.OpenGraph.Type = "business.business"
	return m
}

func (c *Config) build(path string, p page) Metadata {
	title := c.Title(p.title)
	description := p.description
	if description == "" {
		description = c.Description
	}
	robots := p.robots
	if robots == "" {
		robots = c.Robots
	}
	keywords := append(append([]string{}, p.keywords...), c.Keywords...)
	canonical := c.Absolute(normalizePath(path))
	image := c.Absolute(c.OGImage)

	return Metadata{
		Title:       title,
		Description: description,
		Keywords:    dedupe(keywords),
		Canonical:   canonical,
		Robots:      robots,
		OpenGraph: OpenGraph{
			Title:       title,
			Description: description,
			URL:         canonical,
			SiteName:    c.Name,
			Image:       image,
			Type:        c.OGType,
			Locale:      c.Locale,
		},
		Twitter: Twitter{
			Card:        "summary_large_image",
			Site:        c.TwitterHandle,
			Title:       title,
			Description: description,
			Image:       image,
		},
	}
}

func normalizePath(path string) string {
	if path == "" || path == "/" {
		return "/"
	}
	return "/" + strings.Trim(path, "/")
}
