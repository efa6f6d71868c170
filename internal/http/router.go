package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/sebango-service/internal/http/handlers"
	"github.com/preston-bernstein/sebango-service/internal/http/middleware"
	"github.com/preston-bernstein/sebango-service/internal/metrics"
)

// NewRouter registers the HTTP routes. admin may be nil, which leaves the admin routes unmounted.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging(logger, recorder))
	r.Use(chimw.Recoverer)

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)
	r.Get("/years", handler.Years)

	r.Route("/years/{year}", func(r chi.Router) {
		r.Get("/players", handler.Players)
		r.Get("/players/{number}", handler.Player)
		r.Get("/numbers/{calc}", handler.Numbers)
		r.Get("/drill", handler.Drill)
		r.Post("/drill/answer", handler.DrillAnswer)
		r.Get("/lineup", handler.Lineup)
		r.Post("/lineup", handler.ShareLineup)
	})

	if admin != nil {
		r.Post("/admin/rosters/{year}/reload", admin.ReloadRoster)
	}
	return r
}
