package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/bizz/internal/api"
	"github.com/JaimeStill/bizz/internal/config"
	"github.com/JaimeStill/bizz/internal/infrastructure"
	"github.com/JaimeStill/bizz/internal/site"
	"github.com/JaimeStill/bizz/pkg/middleware"
	"github.com/JaimeStill/bizz/pkg/module"
)

// Modules holds the mounted API module and the root-level site pages.
type Modules struct {
	API  *module.Module
	Site http.Handler
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, domain, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	pages, err := site.New(&cfg.Site, domain.Listings, infra.Logger, cfg.API.Pagination)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API:  apiModule,
		Site: middleware.Logger(infra.Logger.With("module", "site"))(pages.Router()),
	}, nil
}

// Mount registers the API module by prefix and serves the site from the
// native fallback so its multi-level paths resolve.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.HandleNative("/", m.Site.ServeHTTP)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		status, code := "ready", http.StatusOK
		if !infra.Lifecycle.Ready() {
			status, code = "not ready", http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]any{
			"status":     status,
			"subsystems": infra.Lifecycle.Status(),
		})
	})

	router.HandleNative("GET /metrics", infra.Metrics.Handler().ServeHTTP)

	return router
}

// wrapRouter applies the server-wide middleware: request metrics and the
// per-route SEO and security headers.
func wrapRouter(router http.Handler, infra *infrastructure.Infrastructure, cfg *config.Config) http.Handler {
	return middleware.New(
		cfg.Site.Headers(),
		infra.Metrics.Middleware(),
	).Apply(router)
}
