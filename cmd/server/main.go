package main // Entry point package

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/quickshow/quickshow-api/internal/config"
	"github.com/quickshow/quickshow-api/internal/database"
	"github.com/quickshow/quickshow-api/internal/handler"
	"github.com/quickshow/quickshow-api/internal/queue"
	"github.com/quickshow/quickshow-api/internal/repository"
	"github.com/quickshow/quickshow-api/internal/router"
)

func main() {
	// .env is optional; real deployments inject variables directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.Env == "prod" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logrus.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	// nil when Redis is unreachable; cache and rate limiter degrade to
	// pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logrus.Warn("redis unavailable, response cache and rate limiting disabled")
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	movieRepo := repository.NewMovieRepo(db)
	theaterRepo := repository.NewTheaterRepo(db)
	screenRepo := repository.NewScreenRepo(db)
	showtimeRepo := repository.NewShowtimeRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	reviewRepo := repository.NewReviewRepo(db)
	metricsRepo := repository.NewMetricsRepo(db)

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, userRepo, tokenRepo),
		Catalog:  handler.NewCatalogHandler(movieRepo, theaterRepo, reviewRepo),
		Showtime: handler.NewShowtimeHandler(showtimeRepo, screenRepo, bookingRepo),
		Booking:  handler.NewBookingHandler(cfg, bookingRepo, showtimeRepo, screenRepo, userRepo),
		Checkin:  handler.NewCheckinHandler(bookingRepo),
		Admin:    handler.NewAdminHandler(theaterRepo, screenRepo, metricsRepo),
		Platform: handler.NewPlatformHandler(theaterRepo, metricsRepo),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	router.Register(e, h, cfg.JWTSecret, rdb)

	// Drains booking.created events into the rotating event log; runs a
	// reconnect loop for the life of the process.
	go queue.StartBookingConsumer(cfg.EventLogPath)

	addr := ":" + cfg.Port
	logrus.Infof("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		logrus.Fatal(err)
	}
}
