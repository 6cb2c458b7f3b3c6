package api

import (
	"net/http"

	"github.com/JaimeStill/promptvault/internal/config"
	"github.com/JaimeStill/promptvault/internal/prompts"
	"github.com/JaimeStill/promptvault/pkg/middleware"
	"github.com/JaimeStill/promptvault/pkg/openapi"
	"github.com/JaimeStill/promptvault/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	runtime *Runtime,
	spec []byte,
) {
	createLimit := middleware.RateLimit(
		runtime.RateLimiter,
		"create",
		runtime.CreateRules,
		runtime.Logger,
	)

	routes.Register(
		mux,
		domain.Prompts.Handler(createLimit).Routes(),
	)

	mux.Handle("GET /openapi.json", openapi.ServeSpec(spec))
}

func buildSpec(cfg *config.Config) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)
	spec.Add(prompts.Spec())
	return openapi.MarshalJSON(spec)
}
