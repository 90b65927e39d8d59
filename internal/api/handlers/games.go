package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/fan-faceoff/internal/services"
	"github.com/jstittsworth/fan-faceoff/internal/sports"
	"github.com/jstittsworth/fan-faceoff/pkg/utils"
)

type GameHandler struct {
	aggregator Aggregator
	now        func() time.Time
}

func NewGameHandler(aggregator Aggregator) *GameHandler {
	return &GameHandler{
		aggregator: aggregator,
		now:        time.Now,
	}
}

// GetLiveGames returns today's filtered regular-season games for a sport.
func (h *GameHandler) GetLiveGames(c *gin.Context) {
	sport, err := sports.Parse(c.DefaultQuery("sport", "NBA"))
	if err != nil {
		utils.SendUnsupportedSport(c, c.Query("sport"))
		return
	}

	games, err := h.aggregator.TodayGames(c.Request.Context(), sport)
	if err != nil {
		utils.SendInternalError(c, "Server error")
		return
	}
	if games == nil {
		games = []sports.GameEvent{}
	}

	c.JSON(http.StatusOK, gin.H{"games": games})
}

// GetTodayDate returns the server's notion of today: a long display form
// and the ISO day every same-day comparison uses.
func (h *GameHandler) GetTodayDate(c *gin.Context) {
	today := h.now().UTC()
	c.JSON(http.StatusOK, gin.H{
		"date":    today.Format("Monday, January 2, 2006"),
		"isoDate": today.Format("2006-01-02"),
	})
}

// GetTodayChallenge returns the sport's challenge label for today. The
// label is a pure function of (day, sport) so every user sees the same
// challenge.
func (h *GameHandler) GetTodayChallenge(c *gin.Context) {
	sport, err := sports.Parse(c.DefaultQuery("sport", "NBA"))
	if err != nil {
		utils.SendUnsupportedSport(c, c.Query("sport"))
		return
	}

	challenge, err := services.SelectChallenge(sport, h.now())
	if err != nil {
		utils.SendUnsupportedSport(c, c.Query("sport"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"challenge": challenge})
}
