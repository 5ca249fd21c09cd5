package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/seatforge/seatmap-service/internal/config"
	"github.com/seatforge/seatmap-service/internal/database"
	"github.com/seatforge/seatmap-service/internal/handler"
	"github.com/seatforge/seatmap-service/internal/queue"
	"github.com/seatforge/seatmap-service/internal/repository"
	"github.com/seatforge/seatmap-service/internal/router"
	"github.com/seatforge/seatmap-service/internal/service"
)

func main() {
	// Load .env when present; real deployments set the environment.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	// Redis is optional: rate limiting, response caching and the live
	// hold overlay all degrade gracefully when it is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable; caching, rate limiting and hold overlay disabled")
	}

	layoutRepo := repository.NewLayoutRepo(db)
	ledgerRepo := repository.NewEventSeatStatusRepo(db)
	ticketRepo := repository.NewTicketRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	ledgerSvc := service.NewEventLayoutService(ledgerRepo)
	compositor := service.NewCompositor(layoutRepo, ledgerRepo, ticketRepo)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, userRepo, tokenRepo), cfg.JWTSecret)
	router.RegisterSeatMap(e,
		handler.NewLayoutHandler(layoutRepo),
		handler.NewEventLayoutHandler(ledgerSvc, compositor, rdb),
		cfg.JWTSecret, rdb)

	// Drain seatmap.submitted in the background; the consumer keeps
	// its own reconnect loop.
	go func() {
		if err := queue.StartSubmittedConsumer(); err != nil {
			log.Printf("seatmap consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
