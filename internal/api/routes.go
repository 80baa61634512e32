package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/pittman021/golf-game/internal/api/handlers"
	"github.com/pittman021/golf-game/internal/config"
	"github.com/pittman021/golf-game/internal/middleware"
	"github.com/redis/go-redis/v9"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *sqlx.DB, rdb *redis.Client, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		// Auth
		auth := v1.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db, cfg))
		}

		// Course data (public, fixed)
		course := v1.Group("/course")
		{
			course.GET("", handlers.GetCourse())
			course.GET("/hole/:number", handlers.GetHole())
			course.GET("/hole/:number/point", handlers.GetHolePoint())
		}
		v1.GET("/clubs", handlers.GetClubs())

		// Rounds. Creation needs a logged-in player; play itself is
		// authorized by the per-round player token.
		round := v1.Group("/round")
		{
			round.POST("", handlers.AuthMiddleware(cfg), handlers.CreateRound(db))
			round.GET("/ws", middleware.WebSocketCORSCheck(cfg), handlers.HandleRoundWebSocket())
			round.GET("/:token", handlers.GetRoundState(rdb))
			round.POST("/:token/shot", handlers.TakeShot())
			round.POST("/:token/preview", handlers.PreviewShot())
			round.GET("/:token/ideal-power", handlers.IdealPower())
			round.POST("/:token/abandon", handlers.AbandonRound())
		}

		// Players
		v1.GET("/me", handlers.AuthMiddleware(cfg), handlers.GetMe(db))
		v1.PUT("/me/display-name", handlers.AuthMiddleware(cfg), handlers.UpdateDisplayName(db))
		player := v1.Group("/player")
		{
			player.GET("/:username/stats", handlers.GetPlayerStats(db))
			player.GET("/:username/rounds", handlers.GetPlayerRounds(db))
		}
	}
}
