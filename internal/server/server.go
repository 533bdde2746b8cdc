package server

import (
	"backend-erickshaw/internal/auth"
	"backend-erickshaw/internal/config"
	"backend-erickshaw/internal/demo"
	"backend-erickshaw/internal/profile"
	"backend-erickshaw/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
	Demo   *demo.Store
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	hub := stream.NewHub(redisClient)
	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: hub,
		Demo:   demo.NewStore(hub),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "demo_step": s.Demo.Step()})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	profiles := profile.NewService(s.DB)

	authService := auth.NewService(s.Cfg.JWTSecret, s.DB, profiles)
	authService.SetAdminEmails(s.Cfg.AdminEmailList())

	auth.RegisterRoutes(s.App.Group("/auth"), authService)
	profile.RegisterRoutes(s.App.Group("/profiles"), profiles, jwtMiddleware)
	demo.RegisterRoutes(s.App.Group("/demo"), s.Demo, jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
