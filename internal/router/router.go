// Package router wires HTTP routes to handlers and applies the
// authentication, role, cache and rate-limit middleware per route group.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/quickshow/quickshow-api/internal/config"
	"github.com/quickshow/quickshow-api/internal/handler"
	"github.com/quickshow/quickshow-api/internal/middleware"
	"github.com/quickshow/quickshow-api/internal/model"
)

// Handlers collects every handler registered by the router.
type Handlers struct {
	Auth     *handler.AuthHandler
	Catalog  *handler.CatalogHandler
	Showtime *handler.ShowtimeHandler
	Booking  *handler.BookingHandler
	Checkin  *handler.CheckinHandler
	Admin    *handler.AdminHandler
	Platform *handler.PlatformHandler
}

// Register mounts all routes on the Echo instance.
//
// Route groups and their role gates:
//
//	/healthz, /v1/auth/*, catalog     – public
//	/v1/me, /v1/bookings/*            – any authenticated role
//	/v1/admin/*                       – THEATER_ADMIN
//	/v1/checkin                       – THEATER_ADMIN
//	/v1/platform/*                    – PLATFORM_OWNER
//
// The response cache and rate limiter wrap only the public catalog reads:
// those are the hot, guest-facing paths, and caching authenticated
// responses would leak data across users.
func Register(e *echo.Echo, h Handlers, jwtSecret string, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	// Session bootstrap and token lifecycle.
	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/refresh-access", h.Auth.RefreshAccess)
	auth.POST("/logout", h.Auth.Logout)

	// Public catalog, cached and rate-limited.
	public := e.Group("/v1")
	public.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	public.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	public.GET("/movies", h.Catalog.ListMovies)
	public.GET("/movies/:id", h.Catalog.GetMovie)
	public.GET("/movies/:id/reviews", h.Catalog.ListReviews)
	public.GET("/movies/:id/showtimes", h.Showtime.ListForMovie)
	public.GET("/theaters", h.Catalog.ListTheaters)
	public.GET("/showtimes/:id/seats", h.Showtime.SeatMap)

	// Customer routes: any authenticated role can book and review.
	user := e.Group("/v1")
	user.Use(middleware.JWTAuth(jwtSecret))
	user.Use(middleware.RequireRole(model.RoleCustomer, model.RoleTheaterAdmin, model.RolePlatformOwner))
	user.GET("/me", h.Auth.Me)
	user.POST("/movies/:id/reviews", h.Catalog.CreateReview)
	user.POST("/showtimes/:id/bookings", h.Booking.Create)
	user.GET("/my-bookings", h.Booking.ListMine)
	user.GET("/bookings/:id", h.Booking.GetMine)
	user.DELETE("/bookings/:id", h.Booking.Cancel)
	user.GET("/bookings/:id/qr", h.Booking.TicketQR)
	user.GET("/bookings/:id/ticket", h.Booking.TicketPDF)

	// Theater-admin console.
	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleTheaterAdmin))
	admin.GET("/metrics", h.Admin.Metrics)
	admin.GET("/screens", h.Admin.ListScreens)

	// Venue check-in is an operator action.
	checkin := e.Group("/v1/checkin")
	checkin.Use(middleware.JWTAuth(jwtSecret))
	checkin.Use(middleware.RequireRole(model.RoleTheaterAdmin))
	checkin.POST("", h.Checkin.CheckIn)

	// Platform-owner console.
	platform := e.Group("/v1/platform")
	platform.Use(middleware.JWTAuth(jwtSecret))
	platform.Use(middleware.RequireRole(model.RolePlatformOwner))
	platform.GET("/metrics", h.Platform.Metrics)
	platform.GET("/theaters", h.Platform.ListTheaters)
	platform.PATCH("/theaters/:id", h.Platform.UpdateTheaterStatus)
}
