package openapi

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Config holds the document metadata. PublicURL, when set, is the
// externally visible origin (for example "https://kuwaitbizz.com") and
// is prepended to the API base path in the servers list.
type Config struct {
	Title        string `toml:"title"`
	Description  string `toml:"description"`
	ContactEmail string `toml:"contact_email"`
	PublicURL    string `toml:"public_url"`
}

// ConfigEnv names the environment variables that override Config.
type ConfigEnv struct {
	Title        string
	Description  string
	ContactEmail string
	PublicURL    string
}

// Finalize applies defaults and environment overrides, then checks that
// PublicURL is an absolute http(s) URL.
func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	c.PublicURL = strings.TrimRight(c.PublicURL, "/")
	if c.PublicURL != "" {
		u, err := url.Parse(c.PublicURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("public_url must be an absolute http(s) URL: %q", c.PublicURL)
		}
	}
	return nil
}

// Merge overwrites fields that are set in overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.ContactEmail != "" {
		c.ContactEmail = overlay.ContactEmail
	}
	if overlay.PublicURL != "" {
		c.PublicURL = overlay.PublicURL
	}
}

// ServerURL is the servers entry for an API mounted at basePath.
func (c *Config) ServerURL(basePath string) string {
	return c.PublicURL + basePath
}

func (c *Config) loadDefaults() {
	if c.Title == "" {
		c.Title = "Bizz API"
	}
	if c.Description == "" {
		c.Description = "Kuwait Bizz Directory listings, location review, and attachment service."
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	set := func(key string, dst *string) {
		if key == "" {
			return
		}
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(env.Title, &c.Title)
	set(env.Description, &c.Description)
	set(env.ContactEmail, &c.ContactEmail)
	set(env.PublicURL, &c.PublicURL)
}
