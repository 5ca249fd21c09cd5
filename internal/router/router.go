// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/seatforge/seatmap-service/internal/config"
	"github.com/seatforge/seatmap-service/internal/handler"
	"github.com/seatforge/seatmap-service/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints and the authenticated /v1/me.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "VIEWER"))
	auth.GET("/me", a.Me)
}

// RegisterSeatMap registers the seat-map API. Authoring routes require
// the ADMIN role; the rendered layout view and the per-event ledger
// read are public so booking/display surfaces can consume them, with
// Redis response caching and rate limiting applied when available.
func RegisterSeatMap(e *echo.Echo, l *handler.LayoutHandler, ev *handler.EventLayoutHandler, jwtSecret string, rdb *redis.Client) {
	admin := e.Group("/v1")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole("ADMIN"))
	admin.POST("/layouts", l.Create)
	admin.PUT("/layouts/:id", l.Update)
	admin.DELETE("/layouts/:id", l.Delete)
	admin.POST("/layouts/:id/duplicate", l.Duplicate)
	admin.GET("/layouts/:id", l.Get)
	admin.POST("/events/layout", ev.Submit)

	public := e.Group("/v1")
	if rdb != nil {
		public.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
		public.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	}
	public.GET("/layouts/:id/view", ev.View)
	public.GET("/events/:id/layout", ev.Get)
}
