package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tvannaman2000/PyNFL/controller"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/", rootHandler(ctrl, render))

	r.Route("/leagues/{leagueID:\\d+}/seasons/{season:\\d+}", func(r chi.Router) {
		r.Get("/standings", standingsHandler(ctrl, render))

		r.Route("/playoffs", func(r chi.Router) {
			r.Get("/", playoffPictureHandler(ctrl, render))
			r.Post("/wildcard", generateRoundHandler(ctrl.GenerateWildCardRound, render))
			r.Post("/divisional", generateRoundHandler(ctrl.GenerateDivisionalRound, render))
			r.Post("/conference", generateRoundHandler(ctrl.GenerateConferenceChampionships, render))
			r.Post("/championship", generateRoundHandler(ctrl.GenerateChampionship, render))
			r.Delete("/", clearHandler(ctrl.ClearPlayoffs, render))
		})

		r.Route("/preseason", func(r chi.Router) {
			r.Post("/", generateRoundHandler(ctrl.GeneratePreseason, render))
			r.Delete("/", clearHandler(ctrl.ClearPreseason, render))
		})
	})

	return r
}
