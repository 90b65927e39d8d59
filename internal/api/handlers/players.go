package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/fan-faceoff/internal/sports"
	"github.com/jstittsworth/fan-faceoff/pkg/utils"
)

// Aggregator is the eligibility pipeline surface the API consumes.
type Aggregator interface {
	TodayPlayers(ctx context.Context, sport sports.Sport) ([]string, error)
	HasGamesToday(ctx context.Context, sport sports.Sport) (bool, error)
	TodayGames(ctx context.Context, sport sports.Sport) ([]sports.GameEvent, error)
}

type PlayerHandler struct {
	aggregator Aggregator
}

func NewPlayerHandler(aggregator Aggregator) *PlayerHandler {
	return &PlayerHandler{aggregator: aggregator}
}

// GetTodayPlayers returns the roster of athletes from today's games for
// the requested sport. An empty list means no eligible athletes today —
// provider outages never surface here as errors.
func (h *PlayerHandler) GetTodayPlayers(c *gin.Context) {
	sport, err := sports.Parse(c.DefaultQuery("sport", "NBA"))
	if err != nil {
		utils.SendUnsupportedSport(c, c.Query("sport"))
		return
	}

	players, err := h.aggregator.TodayPlayers(c.Request.Context(), sport)
	if err != nil {
		utils.SendInternalError(c, "Server error")
		return
	}
	if players == nil {
		players = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"players": players})
}

// GetGamesToday reports whether the sport has any qualifying games,
// used to gate the feature and auto-switch the active sport.
func (h *PlayerHandler) GetGamesToday(c *gin.Context) {
	sport, err := sports.Parse(c.DefaultQuery("sport", "NBA"))
	if err != nil {
		utils.SendUnsupportedSport(c, c.Query("sport"))
		return
	}

	hasGames, err := h.aggregator.HasGamesToday(c.Request.Context(), sport)
	if err != nil {
		utils.SendInternalError(c, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"hasGames": hasGames})
}
