package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/fan-faceoff/internal/services"
	"github.com/jstittsworth/fan-faceoff/internal/storage"
	"github.com/jstittsworth/fan-faceoff/pkg/utils"
)

type PullHandler struct {
	ledger *services.QuotaLedger
}

func NewPullHandler(ledger *services.QuotaLedger) *PullHandler {
	return &PullHandler{ledger: ledger}
}

type recordPullRequest struct {
	Email string `json:"email"`
}

// GetUserPulls reports the identity's pull usage for today. An identity
// never seen today reads as zero used.
func (h *PullHandler) GetUserPulls(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		utils.SendValidationError(c, "email is required")
		return
	}

	status, err := h.ledger.CheckQuota(c.Request.Context(), email)
	if err != nil {
		utils.SendInternalError(c, "Server error")
		return
	}

	c.JSON(http.StatusOK, status)
}

// RecordPull consumes one pull for the identity. The quota check and the
// increment are one atomic step in the ledger, so racing clients get the
// quota error from here rather than over-spending.
func (h *PullHandler) RecordPull(c *gin.Context) {
	var req recordPullRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		utils.SendValidationError(c, "email is required")
		return
	}

	status, err := h.ledger.RecordPull(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrQuotaExceeded) {
			utils.SendQuotaExceeded(c, "No pulls remaining for today")
			return
		}
		utils.SendInternalError(c, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"pullsUsed":      status.PullsUsed,
		"remainingPulls": status.RemainingPulls,
	})
}
