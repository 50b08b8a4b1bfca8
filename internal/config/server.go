package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	EnvServerHost              = "BIZZ_SERVER_HOST"
	EnvServerPort              = "BIZZ_SERVER_PORT"
	EnvServerReadTimeout       = "BIZZ_SERVER_READ_TIMEOUT"
	EnvServerReadHeaderTimeout = "BIZZ_SERVER_READ_HEADER_TIMEOUT"
	EnvServerWriteTimeout      = "BIZZ_SERVER_WRITE_TIMEOUT"
	EnvServerIdleTimeout       = "BIZZ_SERVER_IDLE_TIMEOUT"
	EnvServerShutdownTimeout   = "BIZZ_SERVER_SHUTDOWN_TIMEOUT"
)

// ServerConfig holds the HTTP listener settings. Timeouts are Go
// duration strings. The write timeout has to cover the largest
// attachment upload.
type ServerConfig struct {
	Host              string `toml:"host"`
	Port              int    `toml:"port"`
	ReadTimeout       string `toml:"read_timeout"`
	ReadHeaderTimeout string `toml:"read_header_timeout"`
	WriteTimeout      string `toml:"write_timeout"`
	IdleTimeout       string `toml:"idle_timeout"`
	ShutdownTimeout   string `toml:"shutdown_timeout"`
}

func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *ServerConfig) ReadTimeoutDuration() time.Duration       { return duration(c.ReadTimeout) }
func (c *ServerConfig) ReadHeaderTimeoutDuration() time.Duration { return duration(c.ReadHeaderTimeout) }
func (c *ServerConfig) WriteTimeoutDuration() time.Duration      { return duration(c.WriteTimeout) }
func (c *ServerConfig) IdleTimeoutDuration() time.Duration       { return duration(c.IdleTimeout) }
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration   { return duration(c.ShutdownTimeout) }

// Finalize applies defaults and environment overrides, then validates.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites fields that are set in overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	for _, f := range c.timeouts() {
		if v := *f.get(overlay); v != "" {
			*f.get(c) = v
		}
	}
}

type timeoutField struct {
	name string
	env  string
	def  string
	get  func(*ServerConfig) *string
}

func (c *ServerConfig) timeouts() []timeoutField {
	return []timeoutField{
		{"read_timeout", EnvServerReadTimeout, "1m", func(s *ServerConfig) *string { return &s.ReadTimeout }},
		{"read_header_timeout", EnvServerReadHeaderTimeout, "10s", func(s *ServerConfig) *string { return &s.ReadHeaderTimeout }},
		{"write_timeout", EnvServerWriteTimeout, "2m", func(s *ServerConfig) *string { return &s.WriteTimeout }},
		{"idle_timeout", EnvServerIdleTimeout, "2m", func(s *ServerConfig) *string { return &s.IdleTimeout }},
		{"shutdown_timeout", EnvServerShutdownTimeout, "30s", func(s *ServerConfig) *string { return &s.ShutdownTimeout }},
	}
}

func (c *ServerConfig) loadDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	for _, f := range c.timeouts() {
		if p := f.get(c); *p == "" {
			*p = f.def
		}
	}
}

func (c *ServerConfig) loadEnv() {
	if v := os.Getenv(EnvServerHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvServerPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	for _, f := range c.timeouts() {
		if v := os.Getenv(f.env); v != "" {
			*f.get(c) = v
		}
	}
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	for _, f := range c.timeouts() {
		d, err := time.ParseDuration(*f.get(c))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", f.name, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid %s: must be positive", f.name)
		}
	}
	return nil
}

func duration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
