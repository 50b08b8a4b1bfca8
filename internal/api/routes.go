package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/bizz/internal/config"
	"github.com/JaimeStill/bizz/pkg/openapi"
	"github.com/JaimeStill/bizz/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	guard := runtime.Auth.Middleware()

	routes.Register(
		mux,
		domain.Listings.Handler().Routes().WrapMethods(guard, "PUT", "DELETE"),
		domain.Attachments.Handler(cfg.API.MaxUploadSizeBytes()).Routes().WrapMethods(guard, "POST", "DELETE"),
		domain.Reviews.Handler().Routes().Wrap(guard),
		newStorageHandler(
			runtime.Storage,
			runtime.Logger,
			cfg.Storage.MaxListSize,
		).routes().Wrap(guard),
	)

	spec := newSpec(&cfg.API.OpenAPI, cfg.Version, cfg.API.BasePath)
	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return fmt.Errorf("marshal openapi spec: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	return nil
}
