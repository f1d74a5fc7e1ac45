package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/avesta-dev/campus-connect/internal/config"
	"github.com/avesta-dev/campus-connect/internal/database"
	"github.com/avesta-dev/campus-connect/internal/handler"
	"github.com/avesta-dev/campus-connect/internal/middleware"
	"github.com/avesta-dev/campus-connect/internal/queue"
	"github.com/avesta-dev/campus-connect/internal/repository"
	"github.com/avesta-dev/campus-connect/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client turns the limiter into a pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	events := repository.NewEventRepo(db)
	blogs := repository.NewBlogRepo(db)
	jobs := repository.NewJobRepo(db)
	appts := repository.NewAppointmentRepo(db)

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret, limiter)
	router.RegisterEvents(e, handler.NewEventHandler(events), cfg.JWTSecret, limiter)
	router.RegisterResources(e, handler.NewBlogHandler(blogs), handler.NewJobHandler(jobs), handler.NewAppointmentHandler(appts), cfg.JWTSecret)

	// Background consumer mirrors confirmed registrations into a log file.
	go func() {
		if err := queue.StartRegistrationConsumer(); err != nil {
			log.Printf("registration consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
