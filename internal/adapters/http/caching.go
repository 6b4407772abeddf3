package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses based on
// endpoint, unless the handler already set one.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != "GET" {
			return err
		}

		if existing := c.GetRespHeader("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		switch {
		case path == "/health" || path == "/ready":
			ttl = "public, max-age=10"

		case path == "/api/estatisticas":
			ttl = "public, max-age=60"

		case strings.HasPrefix(path, "/api/pontos/export"):
			ttl = "public, max-age=300"

		default:
			// Mutable catalog data: clients must revalidate.
			ttl = "no-cache"
		}

		c.Set("Cache-Control", ttl)
		return err
	}
}
