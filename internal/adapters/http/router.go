package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"

	"github.com/mapadf/pontos/internal/pkg/metrics"
)

// SetupRoutes registers middleware and all REST routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Health & readiness (no timeout, the checks are fast)
	app.Get("/health", HealthHandler(deps))
	app.Get("/ready", ReadyHandler(deps))

	// REST API with a 15s per-request timeout. Static paths under
	// /api/pontos register before the :id parameter route.
	api := app.Group("/api")
	api.Get("/pontos", timeout.NewWithContext(ListPointsHandler(deps), 15*time.Second))
	api.Post("/pontos", timeout.NewWithContext(CreatePointHandler(deps), 15*time.Second))
	api.Get("/pontos/proximos", timeout.NewWithContext(NearbyPointsHandler(deps), 15*time.Second))
	api.Get("/pontos/export/geojson", timeout.NewWithContext(ExportGeoJSONHandler(deps), 15*time.Second))
	api.Get("/pontos/:id", timeout.NewWithContext(GetPointHandler(deps), 15*time.Second))
	api.Put("/pontos/:id", timeout.NewWithContext(UpdatePointHandler(deps), 15*time.Second))
	api.Delete("/pontos/:id", timeout.NewWithContext(DeletePointHandler(deps), 15*time.Second))
	api.Get("/estatisticas", timeout.NewWithContext(StatisticsHandler(deps), 15*time.Second))
	api.Get("/regiao", timeout.NewWithContext(RegionHandler(deps), 15*time.Second))

	// API documentation (Swagger UI)
	SetupDocs(app)
}
