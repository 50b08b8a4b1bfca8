package storage

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// Config selects the blob account and container. A connection string
// wins over AccountURL; AccountURL alone authenticates through the
// default Azure credential chain.
type Config struct {
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	AccountURL       string `toml:"account_url"`
	MaxListSize      int32  `toml:"max_list_size"`
	MaxRetries       int32  `toml:"max_retries"`
}

type Env struct {
	ContainerName    string
	ConnectionString string
	AccountURL       string
	MaxListSize      string
	MaxRetries       string
}

func (c *Config) UsesTokenCredential() bool {
	return c.ConnectionString == "" && c.AccountURL != ""
}

func (c *Config) Finalize(env *Env) error {
	if env != nil {
		c.loadEnv(env)
	}
	if c.ContainerName == "" {
		c.ContainerName = "listings"
	}
	if c.MaxListSize <= 0 {
		c.MaxListSize = 50
	}
	c.MaxListSize = min(c.MaxListSize, MaxListCap)
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	return c.validate()
}

func (c *Config) Merge(overlay *Config) {
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&c.ContainerName, overlay.ContainerName},
		{&c.ConnectionString, overlay.ConnectionString},
		{&c.AccountURL, overlay.AccountURL},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
	if overlay.MaxListSize != 0 {
		c.MaxListSize = overlay.MaxListSize
	}
	if overlay.MaxRetries != 0 {
		c.MaxRetries = overlay.MaxRetries
	}
}

func (c *Config) loadEnv(env *Env) {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int32) {
		if n, err := strconv.ParseInt(getenv(key), 10, 32); err == nil && n > 0 {
			*dst = int32(n)
		}
	}
	str(env.ContainerName, &c.ContainerName)
	str(env.ConnectionString, &c.ConnectionString)
	str(env.AccountURL, &c.AccountURL)
	num(env.MaxListSize, &c.MaxListSize)
	num(env.MaxRetries, &c.MaxRetries)
}

func (c *Config) validate() error {
	if c.ConnectionString == "" && c.AccountURL == "" {
		return fmt.Errorf("connection_string or account_url required")
	}
	if c.UsesTokenCredential() {
		if u, err := url.Parse(c.AccountURL); err != nil || u.Scheme != "https" || u.Host == "" {
			return fmt.Errorf("account_url must be an https URL: %q", c.AccountURL)
		}
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative")
	}
	return nil
}

func getenv(key string) string {
	if key == "" {
		return ""
	}
	return os.Getenv(key)
}
