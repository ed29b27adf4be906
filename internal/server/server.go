package server

import (
	"log"
	"time"

	"retail-storefront/internal/bootstrap"
	"retail-storefront/internal/config"
	"retail-storefront/internal/constant"
	"retail-storefront/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html/v2"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	// Server-rendered views share one layout with the nav shell.
	engine := html.New("./views", ".html")

	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Static assets skip the session work below.
	app.Static("/static", "./static")

	app.Use(serverutils.NewSessionMiddleware(serverutils.SessionConfig{
		Repository: container.SessionRepository,
		Secret:     cfg.Session.Secret,
		CookieName: constant.SessionCookieName,
		TTL:        time.Duration(cfg.Session.TTLHours) * time.Hour,
		Secure:     cfg.App.Environment == "production",
	}))

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Storefront is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	// Controllers group their own paths; pages sit at the root and JSON
	// endpoints under /api.
	c.StorefrontController.RegisterRoutes(app)
	c.CartController.RegisterRoutes(app)
	c.ChatController.RegisterRoutes(app)
	c.EventController.RegisterRoutes(app)
	c.OAuthController.RegisterRoutes(app)
}
