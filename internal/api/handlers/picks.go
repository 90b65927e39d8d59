package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/fan-faceoff/internal/services"
	"github.com/jstittsworth/fan-faceoff/internal/sports"
	"github.com/jstittsworth/fan-faceoff/internal/storage"
	"github.com/jstittsworth/fan-faceoff/pkg/utils"
)

type PickHandler struct {
	picks *services.PickService
}

func NewPickHandler(picks *services.PickService) *PickHandler {
	return &PickHandler{picks: picks}
}

// SavePick validates and appends a finalized pick to the log.
func (h *PickHandler) SavePick(c *gin.Context) {
	var req services.PickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "invalid request body")
		return
	}

	if _, err := h.picks.SavePick(c.Request.Context(), req); err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			utils.SendValidationError(c, validationErr.Error())
		case errors.Is(err, sports.ErrUnsupportedSport):
			utils.SendUnsupportedSport(c, req.Sport)
		default:
			utils.SendInternalError(c, "Server error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Pick saved successfully!",
	})
}

// GetLeaderboard returns the one-row-per-username projection of the pick
// log, most recent pick per username.
func (h *PickHandler) GetLeaderboard(c *gin.Context) {
	leaderboard, err := h.picks.Leaderboard(c.Request.Context())
	if err != nil {
		utils.SendInternalError(c, "Server error")
		return
	}
	if leaderboard == nil {
		leaderboard = []storage.Pick{}
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": leaderboard})
}
