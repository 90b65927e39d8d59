package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/fan-faceoff/internal/api/handlers"
	"github.com/jstittsworth/fan-faceoff/internal/services"
)

// SetupRoutes configures all API routes on the given router group.
func SetupRoutes(group *gin.RouterGroup, aggregator handlers.Aggregator, ledger *services.QuotaLedger, picks *services.PickService) {
	playerHandler := handlers.NewPlayerHandler(aggregator)
	gameHandler := handlers.NewGameHandler(aggregator)
	pullHandler := handlers.NewPullHandler(ledger)
	pickHandler := handlers.NewPickHandler(picks)

	// Roster and game queries
	group.GET("/today-players", playerHandler.GetTodayPlayers)
	group.GET("/games-today", playerHandler.GetGamesToday)
	group.GET("/live-games", gameHandler.GetLiveGames)
	group.GET("/today-date", gameHandler.GetTodayDate)
	group.GET("/today-challenge", gameHandler.GetTodayChallenge)

	// Pull quota
	group.GET("/user-pulls", pullHandler.GetUserPulls)
	group.POST("/record-pull", pullHandler.RecordPull)

	// Picks and leaderboard
	group.POST("/save-pick", pickHandler.SavePick)
	group.GET("/leaderboard", pickHandler.GetLeaderboard)
}
