package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tunnelsnakes/sandlot/controller"
	"github.com/unrolled/render"
)

type routerConfig struct {
	auth          *tokenAuth
	limiter       Limiter
	adminPassword string
	trustProxy    bool
}

func getRouter(ctrl controller.C, render *render.Render, cfg routerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if cfg.trustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		// Set a timeout value on the request context (ctx), that will signal
		// through ctx.Done() that the request has timed out and further
		// processing should be stopped.
		r.Use(middleware.Timeout(10 * time.Second))

		r.Get("/", rootHandler(ctrl, render))
		r.Get("/teams/{slug}/keepers", teamKeepersPageHandler(ctrl, render))
		r.Get("/draft-board", draftBoardPageHandler(ctrl, render))

		r.Route("/api", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(rateLimit(cfg.limiter, render))

				r.Get("/managers", managersHandler(ctrl, render))
				r.Get("/teams/{slug}/keepers", teamKeepersHandler(ctrl, render))
				r.Get("/draft-board", draftBoardHandler(ctrl, render))
				r.Get("/players", playerSearchHandler(ctrl, render))
				r.Get("/players/{playerID:\\d+}", getPlayerHandler(ctrl, render))
				r.Get("/keeper-records", keeperRecordsHandler(ctrl, render))
			})

			// Writes need to know who is asking.
			r.Group(func(r chi.Router) {
				r.Use(cfg.auth.requireCaller(render))
				r.Use(rateLimit(cfg.limiter, render))

				r.Post("/roster/{rosterID:\\d+}/keeper-status", updateKeeperStatusHandler(ctrl, render))
				r.Post("/roster/{rosterID:\\d+}/keeper-status/cycle", cycleKeeperStatusHandler(ctrl, render))
				r.Post("/draft-board/trades", recordTradeHandler(ctrl, render))
			})
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.BasicAuth("sandlot", map[string]string{"admin": cfg.adminPassword}))
		r.Use(middleware.Timeout(5 * time.Minute)) // Batches talk to outside services and take a while

		r.Post("/keeper-costs", recomputeKeeperCostsHandler(ctrl, render))
		r.Post("/na-eligibility", classifyNAHandler(ctrl, render))
		r.Post("/rankings", rankingsUploadHandler(ctrl, render))
		r.Post("/draft-costs", seedDraftCostsHandler(ctrl, render))
		r.Post("/keeper-records", keeperRecordsUploadHandler(ctrl, render))
		r.Post("/rosters", syncRostersHandler(ctrl, render))

		r.Get("/oauth/start", oauthLinkHandler(ctrl, render))
		r.Get("/oauth/callback", oauthRedirectHandler(ctrl, render))
	})

	return r
}
