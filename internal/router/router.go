// Package router assembles the echo instance: global middleware, the error
// handler and the route table.
package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/music-request-api/internal/config"
	"github.com/iliyamo/music-request-api/internal/handler"
	"github.com/iliyamo/music-request-api/internal/middleware"
	"github.com/iliyamo/music-request-api/internal/service"
)

// Services bundles everything the handlers depend on.
type Services struct {
	Users    *service.UserService
	Sessions *service.SessionService
	Requests *service.RequestService
	Comments *service.CommentService
}

// Options configures the cross-cutting middleware.  A nil Redis client
// disables caching and rate limiting.
type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
	Cache          config.CacheConfig
	RateLimit      config.RateLimitConfig
	Redis          *redis.Client
}

// New returns a fully wired echo instance.
func New(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			slog.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: opts.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
	}))
	if opts.RequestTimeout > 0 {
		e.Use(echomw.ContextTimeoutWithConfig(echomw.ContextTimeoutConfig{Timeout: opts.RequestTimeout}))
	}

	e.GET("/healthz", handler.Health)

	api := e.Group("/api",
		middleware.NewTokenBucket(opts.RateLimit, opts.Redis),
		middleware.NewRedisCache(opts.Cache, opts.Redis),
	)
	RegisterAPI(api, svc)
	return e
}

// RegisterAPI registers the route table on g, which is mounted at /api.
// Path parameters are always named "id" and refer to the entity named by
// the preceding segment.
func RegisterAPI(g *echo.Group, svc Services) {
	users := handler.NewUserHandler(svc.Users, svc.Sessions, svc.Requests)
	sessions := handler.NewSessionHandler(svc.Sessions, svc.Requests, svc.Comments)
	requests := handler.NewRequestHandler(svc.Requests, svc.Comments)
	comments := handler.NewCommentHandler(svc.Comments)

	g.GET("", handler.Endpoints)

	g.GET("/users", users.List)
	g.GET("/users/:id", users.Get)
	g.GET("/users/:id/sessions", users.ListSessions)
	g.GET("/users/:id/sessions/live", users.LiveSession)
	g.GET("/users/:id/sessions/live/requests", users.LiveSessionRequests)

	g.GET("/sessions/:id/requests", sessions.ListRequests)
	g.GET("/sessions/:id/comments", sessions.ListComments)
	g.POST("/sessions/:id/requests", sessions.CreateRequest)
	g.DELETE("/sessions/:id", sessions.Delete)
	g.DELETE("/sessions/:id/requests", sessions.DeleteRequests)

	g.GET("/requests/:id/comments", requests.ListComments)
	g.POST("/requests/:id/comments", requests.CreateComment)
	g.PATCH("/requests/:id/status", requests.UpdateStatus)
	g.PATCH("/requests/:id/votes", requests.UpdateVotes)
	g.DELETE("/requests/:id", requests.Delete)

	g.PATCH("/comments/:id/pinned", comments.UpdatePinned)
	g.DELETE("/comments/:id", comments.Delete)
}
