package main // entry point for the TrailWatch API server

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/trailwatch/trailwatch/internal/config"
	"github.com/trailwatch/trailwatch/internal/database"
	"github.com/trailwatch/trailwatch/internal/handler"
	"github.com/trailwatch/trailwatch/internal/queue"
	"github.com/trailwatch/trailwatch/internal/repository"
	"github.com/trailwatch/trailwatch/internal/router"
	qp "github.com/trailwatch/trailwatch/internal/service"
)

func main() {
	_ = godotenv.Load() // load .env if present; real env vars win

	cfg := config.Load()

	db, err := database.Open(database.Config{
		User:     cfg.DBUser,
		Password: cfg.DBPass,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Name:     cfg.DBName,
	})
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	trailRepo := repository.NewTrailRepo(db)
	trafficRepo := repository.NewTrafficRepo(db)
	userRepo := repository.NewUserRepo(db)
	favoriteRepo := repository.NewFavoriteRepo(db)
	resetTokenRepo := repository.NewResetTokenRepo(db)

	publisher := qp.New()

	deps := router.Deps{
		Cfg:     cfg,
		Trails:  handler.NewTrailHandler(trailRepo, favoriteRepo),
		Traffic: handler.NewTrafficHandler(trafficRepo, trailRepo, publisher),
		Auth:    handler.NewAuthHandler(cfg, userRepo, resetTokenRepo),
		Users:   handler.NewUserHandler(userRepo, favoriteRepo),
		Redis:   rdb,
	}

	// Background consumer; reconnects on its own if the broker drops.
	go func() {
		if err := queue.StartTrafficConsumer(); err != nil {
			log.Printf("traffic consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, deps)

	log.Fatal(e.Start(":" + cfg.Port))
}
