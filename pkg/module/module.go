// Package module mounts self-contained HTTP handlers under a single-segment
// path prefix such as "/api", each with its own middleware stack.
package module

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/JaimeStill/bizz/pkg/middleware"
)

// Module strips its prefix and hands requests to an inner router. The
// middleware stack is applied once, on the first request, so every Use
// call must happen before the module starts serving.
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System

	once    sync.Once
	handler http.Handler
}

// New creates a Module for a single-segment prefix. It panics on an
// empty, relative, or multi-segment prefix.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
	}
}

func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware. The first added runs outermost.
func (m *Module) Use(mws ...func(http.Handler) http.Handler) {
	for _, mw := range mws {
		m.middleware.Use(mw)
	}
}

// Handler returns the inner router wrapped in the module middleware.
func (m *Module) Handler() http.Handler {
	m.once.Do(func() {
		m.handler = m.middleware.Apply(m.router)
	})
	return m.handler
}

// Serve dispatches req to the inner router with the prefix removed from
// its path. The caller's request is not modified.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	m.Handler().ServeHTTP(w, withPath(req, strings.TrimPrefix(req.URL.Path, m.prefix)))
}

func withPath(req *http.Request, path string) *http.Request {
	if path == "" {
		path = "/"
	}
	u := *req.URL
	u.Path = path
	u.RawPath = ""

	clone := req.Clone(req.Context())
	clone.URL = &u
	return clone
}

func validatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("module prefix cannot be empty")
	case !strings.HasPrefix(prefix, "/"):
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	case strings.Count(prefix, "/") != 1 || prefix == "/":
		return fmt.Errorf("module prefix must be a single path segment: %s", prefix)
	}
	return nil
}

