package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/atelier/discography-api/internal/audit"
	"github.com/atelier/discography-api/internal/config"
	"github.com/atelier/discography-api/internal/database"
	"github.com/atelier/discography-api/internal/handler"
	"github.com/atelier/discography-api/internal/logger"
	"github.com/atelier/discography-api/internal/queue"
	"github.com/atelier/discography-api/internal/repository"
	"github.com/atelier/discography-api/internal/router"
	"github.com/atelier/discography-api/internal/service"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.Env == "dev" {
		logger.InitLoggerDev()
	} else {
		logger.InitLogger()
	}
	defer logger.Sync()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Log.Fatalw("database connect failed", "err", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Log.Warnw("redis unavailable, cache and rate limiting disabled")
	}

	trail := audit.New(cfg.AuditLogPath)

	users := repository.NewUserRepo(db)
	artists := repository.NewArtistRepo(db)
	albums := repository.NewAlbumRepo(db)
	tracks := repository.NewTrackRepo(db)
	awards := repository.NewAwardRepo(db)
	orders := repository.NewOrderRepo(db)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, router.Deps{
		Cfg:       cfg,
		Rdb:       rdb,
		Trail:     trail,
		Users:     users,
		Auth:      handler.NewAuthHandler(cfg, users),
		Catalog:   handler.NewCatalogHandler(artists, albums, tracks, awards),
		Orders:    handler.NewOrderHandler(orders, trail, service.QueuePublisher{}),
		RateLimit: config.LoadRateLimitConfig(),
		Cache:     config.LoadCacheConfig(),
	})

	// Background consumer mirrors order events into logs/orders.log; it
	// reconnects on its own and never stops the server.
	go queue.StartOrderConsumer()

	addr := ":" + cfg.Port
	logger.Log.Infow("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		logger.Log.Fatalw("server stopped", "err", err)
	}
}
