package routes

import (
	"github.com/Dosada05/pool-league/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	seasonHandler *handlers.SeasonHandler,
	playerHandler *handlers.PlayerHandler,
	teamHandler *handlers.TeamHandler,
	matchHandler *handlers.MatchHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.ListPlayers)
		r.Post("/", playerHandler.CreatePlayer)
		r.Get("/{playerID}", playerHandler.GetPlayer)
	})

	router.Route("/seasons", func(r chi.Router) {
		r.Get("/", seasonHandler.ListSeasons)
		r.Get("/current", seasonHandler.GetCurrentSeason)

		r.Route("/{seasonID}", func(r chi.Router) {
			r.Get("/", seasonHandler.GetSeason)
			r.Get("/standings", seasonHandler.GetStandings)
			r.Get("/bracket", seasonHandler.GetBracket)
			r.Get("/bracket/{seriesKey}", seasonHandler.GetSeries)

			r.Post("/schedule", seasonHandler.GenerateSchedule)
			r.Post("/force-start-playoffs", seasonHandler.ForceStartPlayoffs)
			r.Post("/fill-random-results", matchHandler.FillRandomResults)

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", teamHandler.ListTeams)
				r.Post("/", teamHandler.CreateTeam)
			})

			r.Get("/matches", matchHandler.ListMatches)
		})
	})

	router.Route("/teams/{teamID}", func(r chi.Router) {
		r.Get("/", teamHandler.GetTeam)
		r.Post("/logo", teamHandler.UploadLogo)
	})

	router.Route("/matches/{matchID}", func(r chi.Router) {
		r.Get("/", matchHandler.GetMatch)
		r.Post("/score", matchHandler.SubmitScore)
		r.Patch("/schedule", matchHandler.UpdateSchedule)
	})
}
