package handlers

import (
	"errors"
	"net/http"

	"github.com/communityevents/backend/internal/checkout"
	"github.com/gin-gonic/gin"
)

type SessionCreator interface {
	Configured() bool
	CreateSession(eventTitle string, amountPence int64) (string, error)
}

type CheckoutHandler struct {
	sessions SessionCreator
}

func NewCheckoutHandler(sessions SessionCreator) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions}
}

type checkoutRequest struct {
	EventTitle  string `json:"eventTitle" binding:"required"`
	AmountPence int64  `json:"amountPence" binding:"required,min=1"`
}

func (h *CheckoutHandler) CreateSession(ctx *gin.Context) {
	if !h.sessions.Configured() {
		RespondInternal(ctx, "Stripe not configured")
		return
	}

	var req checkoutRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.AmountPence < checkout.MinAmountPence {
		RespondBadRequest(ctx, "Min £0.50", nil)
		return
	}

	url, err := h.sessions.CreateSession(req.EventTitle, req.AmountPence)

	if err != nil {
		if errors.Is(err, checkout.ErrAmountTooSmall) {
			RespondBadRequest(ctx, "Min £0.50", nil)
			return
		}

		RespondInternal(ctx, "Could not create checkout session")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"url": url})
}
