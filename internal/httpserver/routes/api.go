package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/langdocs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/langdocs/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/langdocs/internal/httpserver/mw"
)

func init() { Register(registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(r chi.Router) {
		r.Use(mw.RateLimit(mw.RateLimitConfig{
			Burst:      d.RateBurst,
			PerMinute:  d.RatePerMin,
			MaxClients: 10000,
			TrustProxy: d.TrustProxy,
		}))

		r.Get("/languages", handlers.Languages(d))
		r.Get("/languages/{lang}", handlers.Language(d))
		r.Get("/languages/{lang}/categories/{category}", handlers.Category(d))
		r.Get("/languages/{lang}/entries/{entry}", handlers.Entry(d))
		r.Get("/search", handlers.Search(d))

		r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)).Get("/diagnostics", handlers.Diagnostics(d))
	})
}
