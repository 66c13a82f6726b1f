package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/communityevents/backend/internal/config"
	"github.com/communityevents/backend/internal/domain/event"
	"github.com/communityevents/backend/internal/domain/signup"
	"github.com/gin-gonic/gin"
)

type SignupsRepo interface {
	Create(ctx context.Context, req signup.CreateSignupRequest) (signup.Signup, error)
	ListByEvent(ctx context.Context, eventID string) ([]signup.Signup, error)
}

type EventsResolver interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
}

type SignupsHandler struct {
	repo   SignupsRepo
	events EventsResolver
}

func NewSignupsHandler(repo SignupsRepo, events EventsResolver) *SignupsHandler {
	return &SignupsHandler{repo: repo, events: events}
}

// CreateSignup validates shape, resolves the referenced event, applies the
// event's price policy and only then writes. The lookup and the write are
// not transactional; see the signups repo for the accepted race.
func (h *SignupsHandler) CreateSignup(ctx *gin.Context) {
	var req signup.CreateSignupRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	ev, err := h.events.GetByID(cctx, req.EventID)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondError(ctx, http.StatusBadRequest, "invalid_reference", "Invalid eventId", nil)
			return
		}

		RespondInternal(ctx, "Could not create signup")
		return
	}

	err = signup.CheckPolicy(ev, req.AmountPence)

	if err != nil {
		switch {
		case errors.Is(err, signup.ErrFreeEvent):
			RespondError(ctx, http.StatusBadRequest, "policy_violation", "This event is free; no payment allowed", nil)
		case errors.Is(err, signup.ErrFixedPriceMismatch):
			RespondError(ctx, http.StatusBadRequest, "policy_violation", "Must pay fixed price", nil)
		default:
			RespondInternal(ctx, "Could not create signup")
		}
		return
	}

	s, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not create signup")
		return
	}

	ctx.JSON(http.StatusCreated, s)
}

// ListEventSignups returns every signup for one event, oldest first. The
// route sits behind the admin gate; attendee names and emails are not public.
func (h *SignupsHandler) ListEventSignups(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	_, err := h.events.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}

		RespondInternal(ctx, "Could not list signups")
		return
	}

	items, err := h.repo.ListByEvent(cctx, id)

	if err != nil {
		RespondInternal(ctx, "Could not list signups")
		return
	}

	ctx.JSON(http.StatusOK, items)
}
