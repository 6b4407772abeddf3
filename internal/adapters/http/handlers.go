package http

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/mapadf/pontos/internal/core/domain"
	"github.com/mapadf/pontos/internal/core/usecases"
	"github.com/mapadf/pontos/internal/pkg/metrics"
)

// coordinate accepts a JSON number or a numeric string, which is what the
// map page's form submits. Absent, null and empty-string values all count
// as missing; a present but unparseable value decodes to NaN so the
// service can report them in its own validation order.
type coordinate struct {
	value   float64
	present bool
}

func (c *coordinate) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		c.value, c.present = math.NaN(), true
		return nil
	}
	c.value, c.present = f, true
	return nil
}

func (c coordinate) ptr() *float64 {
	if !c.present {
		return nil
	}
	v := c.value
	return &v
}

type pointRequest struct {
	Nome      string     `json:"nome"`
	Descricao string     `json:"descricao"`
	Latitude  coordinate `json:"latitude"`
	Longitude coordinate `json:"longitude"`
	Categoria string     `json:"categoria"`
}

// domainError maps service errors onto API responses: ValidationError →
// 400, ErrNotFound → 404, anything else → logged 500.
func domainError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		metrics.ValidationFailures.WithLabelValues(ve.Field).Inc()
		return errValidation(c, ve)
	case errors.Is(err, domain.ErrNotFound):
		return errNotFound(c, "ponto não encontrado")
	default:
		LoggerFromCtx(c.UserContext()).Error("operação falhou",
			"path", c.Path(), "error", err)
		return errInternal(c)
	}
}

// pointID parses the :id route parameter. A non-numeric id behaves like a
// missing point.
func pointID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil
}

// CreatePointHandler adds a point to the catalog.
func CreatePointHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req pointRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "corpo da requisição inválido")
		}

		p, err := deps.Catalog.AddPoint(c.UserContext(), domain.CreatePointInput{
			Name:        req.Nome,
			Description: req.Descricao,
			Latitude:    req.Latitude.ptr(),
			Longitude:   req.Longitude.ptr(),
			Category:    req.Categoria,
		})
		if err != nil {
			return domainError(c, err)
		}

		metrics.PointsCreated.WithLabelValues(p.Category).Inc()
		slog.Info("ponto adicionado", "id", p.ID, "categoria", p.Category)

		return c.Status(201).JSON(fiber.Map{
			"sucesso":  true,
			"ponto":    p,
			"mensagem": "Ponto adicionado com sucesso",
		})
	}
}

// ListPointsHandler lists points, optionally filtered by category and a
// free-text search over name and description.
func ListPointsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		points, err := deps.Catalog.ListPoints(c.UserContext(),
			c.Query("categoria"), c.Query("busca"))
		if err != nil {
			return domainError(c, err)
		}

		return c.JSON(fiber.Map{
			"sucesso": true,
			"pontos":  points,
			"total":   len(points),
		})
	}
}

// GetPointHandler returns a single point by id.
func GetPointHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pointID(c)
		if !ok {
			return errNotFound(c, "ponto não encontrado")
		}

		p, err := deps.Catalog.GetPoint(c.UserContext(), id)
		if err != nil {
			return domainError(c, err)
		}

		return c.JSON(fiber.Map{
			"sucesso": true,
			"ponto":   p,
		})
	}
}

// UpdatePointHandler rewrites a point's name, description and category.
// Coordinates are immutable; move a point by deleting and recreating it.
func UpdatePointHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pointID(c)
		if !ok {
			return errNotFound(c, "ponto não encontrado")
		}

		var req pointRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "corpo da requisição inválido")
		}

		p, err := deps.Catalog.UpdatePoint(c.UserContext(), id, domain.UpdatePointInput{
			Name:        req.Nome,
			Description: req.Descricao,
			Category:    req.Categoria,
		})
		if err != nil {
			return domainError(c, err)
		}

		return c.JSON(fiber.Map{
			"sucesso":  true,
			"ponto":    p,
			"mensagem": "Ponto atualizado com sucesso",
		})
	}
}

// DeletePointHandler removes a point permanently.
func DeletePointHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pointID(c)
		if !ok {
			return errNotFound(c, "ponto não encontrado")
		}

		if err := deps.Catalog.DeletePoint(c.UserContext(), id); err != nil {
			return domainError(c, err)
		}

		metrics.PointsDeleted.Inc()
		slog.Info("ponto deletado", "id", id)

		return c.JSON(fiber.Map{
			"sucesso":  true,
			"mensagem": "Ponto deletado com sucesso",
		})
	}
}

// StatisticsHandler returns per-category counts plus the static category
// metadata the map legend renders from.
func StatisticsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := deps.Catalog.Statistics(c.UserContext())
		if err != nil {
			return domainError(c, err)
		}

		total, err := deps.Catalog.TotalPoints(c.UserContext())
		if err != nil {
			return domainError(c, err)
		}

		return c.JSON(fiber.Map{
			"sucesso":      true,
			"total":        total,
			"estatisticas": stats,
			"categorias":   domain.Categories,
		})
	}
}

// ExportGeoJSONHandler exports the whole catalog as a GeoJSON
// FeatureCollection.
func ExportGeoJSONHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fc, err := deps.Catalog.ExportGeoJSON(c.UserContext())
		if err != nil {
			return domainError(c, err)
		}

		if err := c.JSON(fc); err != nil {
			return err
		}
		// c.JSON stamps application/json; override after the body is set.
		c.Set("Content-Type", "application/geo+json")
		return nil
	}
}

// NearbyPointsHandler returns points within a radius of a reference
// coordinate, closest first.
func NearbyPointsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		latRaw, lngRaw := c.Query("lat"), c.Query("lng")
		if latRaw == "" || lngRaw == "" {
			return errBadRequest(c, "parâmetros lat e lng são obrigatórios")
		}

		lat, errLat := strconv.ParseFloat(latRaw, 64)
		lng, errLng := strconv.ParseFloat(lngRaw, 64)
		raio := usecases.DefaultSearchRadius
		var errRaio error
		if raw := c.Query("raio"); raw != "" {
			raio, errRaio = strconv.ParseFloat(raw, 64)
		}
		if errLat != nil || errLng != nil || errRaio != nil {
			return errBadRequest(c, "coordenadas e raio devem ser números")
		}

		points, err := deps.Catalog.FindNear(c.UserContext(), lat, lng, raio)
		if err != nil {
			return domainError(c, err)
		}

		metrics.NearbySearchResults.Observe(float64(len(points)))

		return c.JSON(fiber.Map{
			"sucesso": true,
			"referencia": fiber.Map{
				"latitude":  lat,
				"longitude": lng,
			},
			"raio_metros":       raio,
			"total_encontrados": len(points),
			"pontos":            points,
		})
	}
}

// RegionHandler describes the accepted coordinate box and its approximate
// area.
func RegionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "public, max-age=3600")
		return c.JSON(deps.Catalog.Region())
	}
}
