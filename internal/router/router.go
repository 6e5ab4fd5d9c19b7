// Package router wires handlers, middleware and route groups together.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/atelier/discography-api/internal/audit"
	"github.com/atelier/discography-api/internal/config"
	"github.com/atelier/discography-api/internal/handler"
	"github.com/atelier/discography-api/internal/middleware"
	"github.com/atelier/discography-api/internal/repository"
)

// Deps carries everything the route table needs.  Rdb may be nil, in which
// case caching and rate limiting disable themselves.
type Deps struct {
	Cfg       config.Config
	Rdb       *redis.Client
	Trail     *audit.Trail
	Users     *repository.UserRepo
	Auth      *handler.AuthHandler
	Catalog   *handler.CatalogHandler
	Orders    *handler.OrderHandler
	RateLimit config.RateLimitConfig
	Cache     config.CacheConfig
}

// Register builds the full route table.
//
//	/healthz                      liveness, no auth
//	/v1/auth/*                    register + login, no auth
//	/v1/artists, albums, ...      public catalog reads, response-cached
//	/v1/me, /v1/orders*           authenticated surface
//	/v1/admin/*                   admin surface
func Register(e *echo.Echo, d Deps) {
	e.Use(middleware.NewTokenBucket(d.RateLimit, d.Rdb))

	e.GET("/healthz", handler.Health)

	ag := e.Group("/v1/auth")
	ag.POST("/register", d.Auth.Register)
	ag.POST("/login", d.Auth.Login)

	// Public catalog reads sit behind the Redis response cache; the catalog
	// changes rarely and these endpoints take most of the traffic.
	pub := e.Group("/v1", middleware.NewRedisCache(d.Cache, d.Rdb))
	pub.GET("/artists", d.Catalog.ListArtists)
	pub.GET("/artists/:id", d.Catalog.GetArtist)
	pub.GET("/albums", d.Catalog.ListAlbums)
	pub.GET("/albums/:id", d.Catalog.GetAlbum)
	pub.GET("/tracks", d.Catalog.ListTracks)
	pub.GET("/awards", d.Catalog.ListAwards)

	auth := e.Group("/v1", middleware.JWTAuth(d.Cfg.JWTSecret, d.Trail))
	auth.GET("/me", d.Auth.Me)
	auth.POST("/orders", d.Orders.Create)
	auth.GET("/orders", d.Orders.ListMine)
	auth.GET("/orders/:id", d.Orders.GetByID)
	auth.PATCH("/orders/status", d.Orders.UpdateStatus, middleware.RequireAdmin(d.Users))

	admin := e.Group("/v1/admin", middleware.JWTAuth(d.Cfg.JWTSecret, d.Trail), middleware.RequireAdmin(d.Users))
	admin.GET("/orders", d.Orders.ListAll)
	admin.POST("/users/promote", d.Auth.PromoteAdmin)
	admin.POST("/albums", d.Catalog.CreateAlbum)
	admin.PUT("/albums/:id", d.Catalog.UpdateAlbum)
	admin.DELETE("/albums/:id", d.Catalog.DeleteAlbum)
	admin.POST("/tracks", d.Catalog.CreateTrack)
	admin.PUT("/tracks/:id", d.Catalog.UpdateTrack)
	admin.DELETE("/tracks/:id", d.Catalog.DeleteTrack)
}
