package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/communityevents/backend/internal/config"
	"github.com/gin-gonic/gin"
)

type MovieLookup interface {
	Enabled() bool
	Search(ctx context.Context, query string) ([]byte, error)
	Movie(ctx context.Context, id string) ([]byte, error)
}

// MoviesHandler proxies the external movie-metadata API. The upstream
// payload passes through untouched; only the API key handling and caching
// live on this side.
type MoviesHandler struct {
	client MovieLookup
}

func NewMoviesHandler(client MovieLookup) *MoviesHandler {
	return &MoviesHandler{client: client}
}

func (h *MoviesHandler) Search(ctx *gin.Context) {
	if h.client == nil || !h.client.Enabled() {
		RespondNotFound(ctx, "Movie lookups are not enabled")
		return
	}

	query := strings.TrimSpace(ctx.Query("query"))

	if query == "" {
		RespondBadRequest(ctx, "query parameter is required", nil)
		return
	}

	cctx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	body, err := h.client.Search(cctx, query)

	if err != nil {
		h.respondUpstream(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "application/json", body)
}

func (h *MoviesHandler) GetByID(ctx *gin.Context) {
	if h.client == nil || !h.client.Enabled() {
		RespondNotFound(ctx, "Movie lookups are not enabled")
		return
	}

	cctx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	body, err := h.client.Movie(cctx, ctx.Param("id"))

	if err != nil {
		h.respondUpstream(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "application/json", body)
}

// never leak upstream detail (or the key) to the caller
func (h *MoviesHandler) respondUpstream(ctx *gin.Context, _ error) {
	RespondError(ctx, http.StatusBadGateway, "upstream_failure", "Movie lookup failed", nil)
}
