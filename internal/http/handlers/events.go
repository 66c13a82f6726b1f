package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/communityevents/backend/internal/cache"
	"github.com/communityevents/backend/internal/config"
	"github.com/communityevents/backend/internal/domain/event"
	"github.com/communityevents/backend/internal/ics"
	"github.com/gin-gonic/gin"
)

type EventsRepo interface {
	Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error)
	GetByID(ctx context.Context, id string) (event.Event, error)
	List(ctx context.Context) ([]event.Event, error)
	Delete(ctx context.Context, id string) error
}

const listCacheKey = "events:list:v1"

type EventsHandler struct {
	repo        EventsRepo
	cache       *cache.Cache
	frontendURL string
}

func NewEventsHandler(repo EventsRepo, c *cache.Cache, frontendURL string) *EventsHandler {
	return &EventsHandler{repo: repo, cache: c, frontendURL: frontendURL}
}

func (h *EventsHandler) CreateEvent(ctx *gin.Context) {
	var req event.CreateEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// cross-field rules + normalization; all failures reported together
	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		RespondBadRequest(ctx, "Invalid event", gin.H{"fields": fieldErrs})
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	e, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not create event")
		return
	}

	if h.cache != nil {
		h.cache.Delete(listCacheKey)
	}

	ctx.JSON(http.StatusCreated, e)
}

func (h *EventsHandler) ListEvents(ctx *gin.Context) {
	if h.cache != nil {
		if v, ok := h.cache.Get(listCacheKey); ok {
			if events, ok := v.([]event.Event); ok {
				ctx.JSON(http.StatusOK, events)
				return
			}
		}
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	events, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list events")
		return
	}

	if h.cache != nil {
		h.cache.Set(listCacheKey, events)
	}

	ctx.JSON(http.StatusOK, events)
}

func (h *EventsHandler) GetEventByID(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	e, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}

		RespondInternal(ctx, "Could not fetch event")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, e)
}

func (h *EventsHandler) DeleteEvent(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}

		RespondInternal(ctx, "Could not delete event")
		return
	}

	if h.cache != nil {
		h.cache.Delete(listCacheKey)
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetEventICS serves the event as a downloadable calendar file.
func (h *EventsHandler) GetEventICS(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	e, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}

		RespondInternal(ctx, "Could not fetch event")
		return
	}

	start, end, ok := schedule(e)

	if !ok {
		RespondError(ctx, http.StatusBadRequest, "missing_schedule", "Event has no usable start or end time", nil)
		return
	}

	body, err := ics.Encode(ics.Event{
		UID:         e.ID,
		Summary:     e.Title,
		Description: e.Description,
		Location:    e.Location,
		URL:         h.frontendURL + "/events/" + e.ID,
		Start:       start,
		End:         end,
	}, time.Now())

	if err != nil {
		RespondError(ctx, http.StatusBadRequest, "missing_schedule", "Event has no usable start or end time", nil)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="event-`+e.ID+`.ics"`)
	ctx.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

func schedule(e event.Event) (time.Time, time.Time, bool) {
	if e.Start == nil || e.End == nil {
		return time.Time{}, time.Time{}, false
	}

	start, err := event.ParseTimestamp(*e.Start)

	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	end, err := event.ParseTimestamp(*e.End)

	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}
