package server

import (
	"context"

	"github.com/Helmera83/gig-calc/internal/advisor"
	"github.com/Helmera83/gig-calc/internal/calc"
	"github.com/Helmera83/gig-calc/internal/config"
	"github.com/Helmera83/gig-calc/internal/db"
	"github.com/Helmera83/gig-calc/internal/ledger"
	"github.com/Helmera83/gig-calc/internal/prefs"
	"github.com/Helmera83/gig-calc/internal/stream"
	"github.com/Helmera83/gig-calc/internal/tracking"
	"github.com/Helmera83/gig-calc/internal/trip"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	Redis  *redis.Client
	Store  db.Store
	Stream *stream.Hub

	Ledger   *ledger.Service
	Prefs    *prefs.Service
	Trip     *trip.Service
	Tracking *tracking.Service
	Advisor  *advisor.Service
}

func NewServer(cfg config.Config, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	store := db.StoreFor(redisClient)
	ctx := context.Background()

	s := &Server{
		App:    app,
		Cfg:    cfg,
		Redis:  redisClient,
		Store:  store,
		Stream: stream.NewHub(redisClient),
	}

	s.Ledger = ledger.NewService(ctx, store)
	s.Prefs = prefs.NewService(store)
	s.Trip = trip.NewService(ctx, s.Ledger, s.Prefs)
	s.Tracking = tracking.NewService(s.Trip, s.Stream, cfg.TrackingEnabled)

	aiClient := advisor.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel)
	s.Advisor = advisor.NewService(aiClient, s.Trip, s.Prefs)

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	calc.RegisterRoutes(s.App.Group("/calc"))
	trip.RegisterRoutes(s.App.Group("/trip"), s.Trip)
	tracking.RegisterRoutes(s.App.Group("/tracking"), s.Tracking)
	ledger.RegisterRoutes(s.App.Group("/ledger"), s.Ledger)
	advisor.RegisterRoutes(s.App.Group("/advisor"), s.Advisor)
	prefs.RegisterRoutes(s.App.Group("/prefs"), s.Prefs)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
