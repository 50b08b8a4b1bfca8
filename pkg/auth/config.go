package auth

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds OpenID Connect bearer token settings.
type Config struct {
	Enabled       bool   `toml:"enabled"`
	Issuer        string `toml:"issuer"`
	ClientID      string `toml:"client_id"`
	ReviewerClaim string `toml:"reviewer_claim"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Enabled       string
	Issuer        string
	ClientID      string
	ReviewerClaim string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. Enabled always applies.
func (c *Config) Merge(overlay *Config) {
	c.Enabled = overlay.Enabled
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.ClientID != "" {
		c.ClientID = overlay.ClientID
	}
	if overlay.ReviewerClaim != "" {
		c.ReviewerClaim = overlay.ReviewerClaim
	}
}

func (c *Config) loadDefaults() {
	if c.ReviewerClaim == "" {
		c.ReviewerClaim = "email"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Enabled != "" {
		if v := os.Getenv(env.Enabled); v != "" {
			if enabled, err := strconv.ParseBool(v); err == nil {
				c.Enabled = enabled
			}
		}
	}
	if env.Issuer != "" {
		if v := os.Getenv(env.Issuer); v != "" {
			c.Issuer = v
		}
	}
	if env.ClientID != "" {
		if v := os.Getenv(env.ClientID); v != "" {
			c.ClientID = v
		}
	}
	if env.ReviewerClaim != "" {
		if v := os.Getenv(env.ReviewerClaim); v != "" {
			c.ReviewerClaim = v
		}
	}
}

func (c *Config) validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Issuer == "" {
		return fmt.Errorf("issuer required when enabled")
	}
	if c.ClientID == "" {
		return fmt.Errorf("client_id required when enabled")
	}
	return nil
}
