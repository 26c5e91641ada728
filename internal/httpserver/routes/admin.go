package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/langdocs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/langdocs/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/langdocs/internal/httpserver/mw"
	"github.com/MrSnakeDoc/langdocs/internal/metrics"
)

func init() { Register(registerAdmin) }

func registerAdmin(r chi.Router, d deps.Deps) {
	admin := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))

	admin.Get("/status", handlers.Status(d))
	admin.Method("GET", "/metrics", metrics.Handler())
	admin.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Post("/reload", handlers.Reload(d))
}
