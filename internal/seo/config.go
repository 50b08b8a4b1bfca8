package seo

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Business identifies the directory operator in structured data.
type Business struct {
	Name        string   `toml:"name"`
	LegalName   string   `toml:"legal_name"`
	Description string   `toml:"description"`
	Locality    string   `toml:"locality"`
	Region      string   `toml:"region"`
	CountryCode string   `toml:"country_code"`
	Telephone   string   `toml:"telephone"`
	ContactType string   `toml:"contact_type"`
	Languages   []string `toml:"languages"`
}

// Social holds the directory's social profile URLs.
type Social struct {
	Facebook  string `toml:"facebook"`
	Twitter   string `toml:"twitter"`
	Instagram string `toml:"instagram"`
	LinkedIn  string `toml:"linkedin"`
	Snapchat  string `toml:"snapchat"`
}

// Links returns the non-empty profile URLs in a stable order.
func (s Social) Links() []string {
	var links []string
	for _, v := range []string{s.Facebook, s.Twitter, s.Instagram, s.LinkedIn, s.Snapchat} {
		if v != "" {
			links = append(links, v)
		}
	}
	return links
}

// Config holds the site identity used for page metadata and structured data.
type Config struct {
	Name             string   `toml:"name"`
	DefaultTitle     string   `toml:"default_title"`
	TitleTemplate    string   `toml:"title_template"`
	Description      string   `toml:"description"`
	URL              string   `toml:"url"`
	OGImage          string   `toml:"og_image"`
	OGType           string   `toml:"og_type"`
	TwitterHandle    string   `toml:"twitter_handle"`
	Author           string   `toml:"author"`
	Locale           string   `toml:"locale"`
	SupportedLocales []string `toml:"supported_locales"`
	Robots           string   `toml:"robots"`
	Country          string   `toml:"country"`
	CountryCode      string   `toml:"country_code"`
	Keywords         []string `toml:"keywords"`
	Governorates     []string `toml:"governorates"`
	MajorCities      []string `toml:"major_cities"`
	Social           Social   `toml:"social"`
	Business         Business `toml:"business"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Name          string
	URL           string
	Description   string
	OGImage       string
	TwitterHandle string
	Locale        string
}

// Title applies the title template to a page title.
// An empty page title yields the default title.
func (c *Config) Title(page string) string {
	if page == "" {
		return c.DefaultTitle
	}
	return fmt.Sprintf(c.TitleTemplate, page)
}

// Absolute resolves a site-relative path against the site URL.
func (c *Config) Absolute(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(c.URL, "/") + "/" + strings.TrimLeft(path, "/")
}

// ContentLanguage returns the locale in BCP 47 form (en_KW becomes en-KW).
func (c *Config) ContentLanguage() string {
	return strings.ReplaceAll(c.Locale, "_", "-")
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Name != "" {
		c.Name = overlay.Name
	}
	if overlay.DefaultTitle != "" {
		c.DefaultTitle = overlay.DefaultTitle
	}
	if overlay.TitleTemplate != "" {
		c.TitleTemplate = overlay.TitleTemplate
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.URL != "" {
		c.URL = overlay.URL
	}
	if overlay.OGImage != "" {
		c.OGImage = overlay.OGImage
	}
	if overlay.OGType != "" {
		c.OGType = overlay.OGType
	}
	if overlay.TwitterHandle != "" {
		c.TwitterHandle = overlay.TwitterHandle
	}
	if overlay.Author != "" {
		c.Author = overlay.Author
	}
	if overlay.Locale != "" {
		c.Locale = overlay.Locale
	}
	if overlay.SupportedLocales != nil {
		c.SupportedLocales = overlay.SupportedLocales
	}
	if overlay.Robots != "" {
		c.Robots = overlay.Robots
	}
	if overlay.Country != "" {
		c.Country = overlay.Country
	}
	if overlay.CountryCode != "" {
		c.CountryCode = overlay.CountryCode
	}
	if overlay.Keywords != nil {
		c.Keywords = overlay.Keywords
	}
	if overlay.Governorates != nil {
		c.Governorates = overlay.Governorates
	}
	if overlay.MajorCities != nil {
		c.MajorCities = overlay.MajorCities
	}
	if overlay.Social != (Social{}) {
		c.Social = overlay.Social
	}
	if overlay.Business.Name != "" {
		c.Business = overlay.Business
	}
}

func (c *Config) loadDefaults() {
	if c.Name == "" {
		c.Name = "Kuwait Bizz Directory"
	}
	if c.DefaultTitle == "" {
		c.DefaultTitle = "Top Business Listing Directory in Kuwait | Kuwait Bizz Directory"
	}
	if c.TitleTemplate == "" {
		c.TitleTemplate = "%s | Kuwait Bizz Directory"
	}
	if c.Description == "" {
		c.Description = "Find trusted businesses across Kuwait with our comprehensive business directory. " +
			"Discover contacts, locations, reviews, and services from Kuwait City to Ahmadi across all 6 governorates."
	}
	if c.URL == "" {
		c.URL = "https://www.kuwaitbizzdirectory.com"
	}
	if c.OGImage == "" {
		c.OGImage = "/assets/img/logo/og-default.png"
	}
	if c.OGType == "" {
		c.OGType = "website"
	}
	if c.TwitterHandle == "" {
		c.TwitterHandle = "@kuwaitbizzdirectory"
	}
	if c.Author == "" {
		c.Author = c.Name
	}
	if c.Locale == "" {
		c.Locale = "en_KW"
	}
	if len(c.SupportedLocales) == 0 {
		c.SupportedLocales = []string{"en_KW", "ar_KW"}
	}
	if c.Robots == "" {
		c.Robots = "index, follow"
	}
	if c.Country == "" {
		c.Country = "Kuwait"
	}
	if c.CountryCode == "" {
		c.CountryCode = "KW"
	}
	if len(c.Keywords) == 0 {
		c.Keywords = []string{
			"Kuwait business directory",
			"businesses in Kuwait City",
			"Hawalli companies",
			"Salmiya business listings",
			"Ahmadi services",
			"Kuwait business contacts",
			"KW directory",
			"Kuwait companies",
			"business listings Kuwait",
			"find businesses in Kuwait",
		}
	}
	if len(c.Governorates) == 0 {
		c.Governorates = []string{
			"Capital Governorate (Al Asimah)",
			"Hawalli Governorate",
			"Farwaniya Governorate",
			"Ahmadi Governorate",
			"Jahra Governorate",
			"Mubarak Al-Kabeer Governorate",
		}
	}
	if len(c.MajorCities) == 0 {
		c.MajorCities = []string{
			"Kuwait City", "Hawalli", "Salmiya", "Farwaniya", "Ahmadi", "Jahra", "Fahaheel",
			"Mangaf", "Fintas", "Mahboula", "Jleeb Al-Shuyoukh", "Shuwaikh", "Sabah Al-Salem",
		}
	}
	if c.Social == (Social{}) {
		c.Social = Social{
			Facebook:  "https://facebook.com/kuwaitbizzdirectory",
			Twitter:   "https://twitter.com/kuwaitbizzdirectory",
			Instagram: "https://instagram.com/kuwaitbizzdirectory",
			LinkedIn:  "https://linkedin.com/company/kuwaitbizzdirectory",
			Snapchat:  "https://snapchat.com/add/kuwaitbizzdirectory",
		}
	}
	if c.Business.Name == "" {
		c.Business = Business{
			Name:        c.Name,
			LegalName:   c.Name,
			Description: "Kuwait's premier business directory connecting customers with trusted businesses across all 6 governorates",
			Locality:    "Kuwait City",
			Region:      "Capital Governorate",
			CountryCode: "KW",
			Telephone:   "+965-XXXX-XXXX",
			ContactType: "customer support",
			Languages:   []string{"English", "Arabic"},
		}
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Name != "" {
		if v := os.Getenv(env.Name); v != "" {
			c.Name = v
		}
	}
	if env.URL != "" {
		if v := os.Getenv(env.URL); v != "" {
			c.URL = v
		}
	}
	if env.Description != "" {
		if v := os.Getenv(env.Description); v != "" {
			c.Description = v
		}
	}
	if env.OGImage != "" {
		if v := os.Getenv(env.OGImage); v != "" {
			c.OGImage = v
		}
	}
	if env.TwitterHandle != "" {
		if v := os.Getenv(env.TwitterHandle); v != "" {
			c.TwitterHandle = v
		}
	}
	if env.Locale != "" {
		if v := os.Getenv(env.Locale); v != "" {
			c.Locale = v
		}
	}
}

func (c *Config) validate() error {
	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid url: %q", c.URL)
	}
	if strings.Count(c.TitleTemplate, "%s") != 1 {
		return fmt.Errorf("title_template must contain exactly one %%s")
	}
	return nil
}
