package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nothingdao/solana-support/internal/logger"
	"github.com/nothingdao/solana-support/internal/logic"
	"gorm.io/gorm"
)

// DonationHandler accepts donation claims from the widget.
type DonationHandler struct {
	donationLogic *logic.DonationLogic
}

func NewDonationHandler(db *gorm.DB, ledger logic.LedgerClient) *DonationHandler {
	return &DonationHandler{
		donationLogic: logic.NewDonationLogic(db, ledger),
	}
}

// SubmitDonation handles POST /donations.
func (h *DonationHandler) SubmitDonation(c *gin.Context) {
	var req donationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	claim := logic.DonationClaim{
		ProjectID:   req.ProjectID,
		DonorWallet: req.DonorWallet,
		Amount:      strings.Trim(strings.TrimSpace(string(req.Amount)), `"`),
		Message:     req.Message,
		TxSignature: req.TxSignature,
	}

	donation, err := h.donationLogic.SubmitDonation(c.Request.Context(), claim)
	if err != nil {
		switch {
		case errors.Is(err, logic.ErrMissingFields),
			errors.Is(err, logic.ErrInvalidDonorWallet),
			errors.Is(err, logic.ErrInvalidAmount),
			errors.Is(err, logic.ErrDuplicateSignature):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, logic.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record donation: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, donation)
}
