package routes

import (
	"github.com/aharonidan/bopdial/handlers"
	"github.com/aharonidan/bopdial/middleware"
	"github.com/aharonidan/bopdial/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	betHandler *handlers.BetHandler,
	matchHandler *handlers.MatchHandler,
	teamHandler *handlers.TeamHandler,
	accountHandler *handlers.AccountHandler,
	settingHandler *handlers.SettingHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	statsHandler *handlers.StatsHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Get("/matches", matchHandler.List)
	router.Get("/matches/{id}", matchHandler.GetByID)
	router.Get("/teams", teamHandler.List)
	router.Get("/accounts", accountHandler.List)
	router.Get("/accounts/{id}/users", accountHandler.ListUsers)
	router.Get("/settings", settingHandler.ListByName)

	// Player routes
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Get("/users/{id}", userHandler.GetByID)
		r.Put("/me/picks", userHandler.UpdateSpecialPicks)
		r.Post("/bets", betHandler.Place)
		r.Get("/me/bets", betHandler.ListOwn)
		r.Get("/me/daily-score", leaderboardHandler.DailyScore)
		r.Get("/me/best-day", leaderboardHandler.BestDay)
		r.Get("/me/today", leaderboardHandler.Today)
		r.Get("/me/outcomes", statsHandler.OwnOutcomes)
	})

	// Admin routes
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(middleware.Authorize(models.RoleAdmin))

		r.Post("/accounts", accountHandler.Create)
		r.Post("/teams", teamHandler.Create)
		r.Put("/teams/{id}/flag", teamHandler.UploadFlag)
		r.Post("/matches", matchHandler.Create)
		r.Put("/matches/{id}/result", matchHandler.RecordResult)
		r.Post("/settings", settingHandler.Publish)
	})
}
