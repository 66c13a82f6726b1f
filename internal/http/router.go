package http

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/communityevents/backend/internal/cache"
	"github.com/communityevents/backend/internal/checkout"
	"github.com/communityevents/backend/internal/config"
	"github.com/communityevents/backend/internal/http/handlers"
	"github.com/communityevents/backend/internal/http/middlewares"
	"github.com/communityevents/backend/internal/observability"
	"github.com/communityevents/backend/internal/repo/postgres"
	"github.com/communityevents/backend/internal/tmdb"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(
	log *slog.Logger,
	cfg config.Config,
	pool *pgxpool.Pool,
	rdb *redis.Client,
	prom *observability.Prom,
	metrics nethttp.Handler,
) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(middlewares.CORSMiddleware(cfg.AllowOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(otelgin.Middleware("events-api"))

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}

	// wire up repositories
	eventsRepo := postgres.NewEventsRepo(pool, prom)
	signupsRepo := postgres.NewSignupsRepo(pool, prom)

	// short-lived read cache for the public events list
	listCache := cache.New(5 * time.Second)

	// wire up handlers
	eventsHandler := handlers.NewEventsHandler(eventsRepo, listCache, cfg.FrontendURL)
	signupsHandler := handlers.NewSignupsHandler(signupsRepo, eventsRepo)
	checkoutHandler := handlers.NewCheckoutHandler(checkout.New(cfg.StripeSecretKey, cfg.FrontendURL))
	moviesHandler := handlers.NewMoviesHandler(tmdb.New(cfg.TMDBAPIKey, rdb))

	admin := middlewares.RequireAdmin(cfg.AdminPasscode)
	signupLimiter := middlewares.NewRateLimiter(20, time.Minute)

	r.GET("/events", eventsHandler.ListEvents)
	r.GET("/events/:id", eventsHandler.GetEventByID)
	r.GET("/events/:id/ics", eventsHandler.GetEventICS)
	r.POST("/events", admin, eventsHandler.CreateEvent)
	r.DELETE("/events/:id", admin, eventsHandler.DeleteEvent)
	r.GET("/events/:id/signups", admin, signupsHandler.ListEventSignups)

	r.POST("/signups", signupLimiter.RateLimiterMiddleware(middlewares.KeyByIP), signupsHandler.CreateSignup)

	r.POST("/checkout", checkoutHandler.CreateSession)

	r.GET("/movies/search", moviesHandler.Search)
	r.GET("/movies/:id", moviesHandler.GetByID)

	return r
}
