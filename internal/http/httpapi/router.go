package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"
)

// NewRouter wires the escrow API. Mutating escrow routes sit behind the
// JWT middleware; finalize and the read views are public.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger, lookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.I18N(cfg.DefaultLocale, lookup),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORSOrigins),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/campaigns", func(r chi.Router) {
		r.Get("/", app.CampaignsList)
		r.Get("/{id}", app.CampaignsGet)
		r.Get("/{id}/donators", app.DonatorsList)
		r.Get("/{id}/contributions/{donor}", app.ContributionGet)
		r.Post("/{id}/finalize", app.CampaignFinalize)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthJWT(cfg.JWTSecret))
			r.Post("/", app.CampaignsCreate)
			r.Post("/{id}/donations", app.DonationsCreate)
			r.Post("/{id}/withdrawal", app.CampaignWithdraw)
			r.Post("/{id}/refund", app.CampaignRefund)
		})
	})

	r.Get("/v1/stats/summary", app.StatsSummary)

	return r
}
