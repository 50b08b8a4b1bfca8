// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/bizz/internal/config"
	"github.com/JaimeStill/bizz/internal/infrastructure"
	"github.com/JaimeStill/bizz/pkg/middleware"
	"github.com/JaimeStill/bizz/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// The returned Domain exposes the systems to the rest of the server, such as
// the site pages that render listings.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, *Domain, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, domain, nil
}
