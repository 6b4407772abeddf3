package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/mapadf/pontos/internal/core/domain"
	"github.com/mapadf/pontos/internal/core/ports"
	"github.com/mapadf/pontos/internal/pkg/geospatial"
)

const (
	maxNameLen        = 200
	maxDescriptionLen = 1000

	// DefaultSearchRadius is applied when a proximity query omits the
	// radius parameter.
	DefaultSearchRadius = 1000.0
)

// CatalogService enforces the domain rules of the point catalog and
// orchestrates the repository and the geospatial math. All validation
// happens here; the repository persists whatever it is handed.
type CatalogService struct {
	points ports.PointRepository
	events ports.EventPublisher
	bounds geospatial.Bounds
}

// NewCatalogService creates a CatalogService. events may be nil, in which
// case lifecycle events are simply not published.
func NewCatalogService(points ports.PointRepository, events ports.EventPublisher, bounds geospatial.Bounds) *CatalogService {
	return &CatalogService{points: points, events: events, bounds: bounds}
}

// Bounds returns the accepted region.
func (s *CatalogService) Bounds() geospatial.Bounds {
	return s.bounds
}

// AddPoint validates input and persists a new point. The checks run in a
// fixed order and the first violation wins: required fields, numeric
// coordinates, region bounds, category, name length, description length.
func (s *CatalogService) AddPoint(ctx context.Context, in domain.CreatePointInput) (*domain.Point, error) {
	if in.Name == "" || in.Latitude == nil || in.Longitude == nil {
		return nil, domain.Invalid("nome", "dados incompletos: nome, latitude e longitude são obrigatórios")
	}

	lat, lng := *in.Latitude, *in.Longitude
	if !isFinite(lat) || !isFinite(lng) {
		return nil, domain.Invalid("coordenadas", "coordenadas inválidas: devem ser números")
	}

	if !s.bounds.WithinBounds(lat, lng) {
		return nil, domain.Invalid("coordenadas", fmt.Sprintf(
			"coordenadas fora dos limites da região: latitude deve estar entre %v e %v, longitude entre %v e %v",
			s.bounds.MinLat, s.bounds.MaxLat, s.bounds.MinLon, s.bounds.MaxLon))
	}

	if !domain.ValidCategory(in.Category) {
		return nil, domain.Invalid("categoria",
			"categoria inválida. categorias válidas: "+strings.Join(domain.CategoryIDs(), ", "))
	}

	if utf8.RuneCountInString(in.Name) > maxNameLen {
		return nil, domain.Invalid("nome", fmt.Sprintf("nome muito longo (máximo %d caracteres)", maxNameLen))
	}

	if utf8.RuneCountInString(in.Description) > maxDescriptionLen {
		return nil, domain.Invalid("descricao", fmt.Sprintf("descrição muito longa (máximo %d caracteres)", maxDescriptionLen))
	}

	id, err := s.points.Create(ctx,
		strings.TrimSpace(in.Name), strings.TrimSpace(in.Description),
		lat, lng, in.Category)
	if err != nil {
		return nil, fmt.Errorf("criar ponto: %w", err)
	}

	p, err := s.points.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reler ponto %d: %w", id, err)
	}

	s.publish(ctx, func(ev ports.EventPublisher) error {
		return ev.PublishPointCreated(ctx, p)
	})
	return p, nil
}

// ListPoints returns points matching the optional category and search
// filters, newest first. The result is never nil.
func (s *CatalogService) ListPoints(ctx context.Context, category, search string) ([]domain.Point, error) {
	pts, err := s.points.List(ctx, domain.PointFilter{Category: category, Search: search})
	if err != nil {
		return nil, err
	}
	if pts == nil {
		pts = []domain.Point{}
	}
	return pts, nil
}

// GetPoint returns a single point or domain.ErrNotFound.
func (s *CatalogService) GetPoint(ctx context.Context, id int64) (*domain.Point, error) {
	return s.points.GetByID(ctx, id)
}

// UpdatePoint rewrites the mutable fields of a point. Coordinates and the
// creation timestamp never change.
func (s *CatalogService) UpdatePoint(ctx context.Context, id int64, in domain.UpdatePointInput) (*domain.Point, error) {
	if in.Name == "" {
		return nil, domain.Invalid("nome", "nome é obrigatório")
	}
	if !domain.ValidCategory(in.Category) {
		return nil, domain.Invalid("categoria",
			"categoria inválida. categorias válidas: "+strings.Join(domain.CategoryIDs(), ", "))
	}
	if utf8.RuneCountInString(in.Name) > maxNameLen {
		return nil, domain.Invalid("nome", fmt.Sprintf("nome muito longo (máximo %d caracteres)", maxNameLen))
	}
	if utf8.RuneCountInString(in.Description) > maxDescriptionLen {
		return nil, domain.Invalid("descricao", fmt.Sprintf("descrição muito longa (máximo %d caracteres)", maxDescriptionLen))
	}

	ok, err := s.points.Update(ctx, id,
		strings.TrimSpace(in.Name), strings.TrimSpace(in.Description), in.Category)
	if err != nil {
		return nil, fmt.Errorf("atualizar ponto %d: %w", id, err)
	}
	if !ok {
		return nil, domain.ErrNotFound
	}

	p, err := s.points.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reler ponto %d: %w", id, err)
	}

	s.publish(ctx, func(ev ports.EventPublisher) error {
		return ev.PublishPointUpdated(ctx, p)
	})
	return p, nil
}

// DeletePoint removes a point permanently. Returns domain.ErrNotFound if
// the id does not exist.
func (s *CatalogService) DeletePoint(ctx context.Context, id int64) error {
	ok, err := s.points.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deletar ponto %d: %w", id, err)
	}
	if !ok {
		return domain.ErrNotFound
	}

	s.publish(ctx, func(ev ports.EventPublisher) error {
		return ev.PublishPointDeleted(ctx, id)
	})
	return nil
}

// Statistics counts points grouped by category. Categories without points
// do not appear in the result.
func (s *CatalogService) Statistics(ctx context.Context) (map[string]int, error) {
	return s.points.CountByCategory(ctx)
}

// TotalPoints returns the catalog size.
func (s *CatalogService) TotalPoints(ctx context.Context) (int, error) {
	return s.points.Count(ctx)
}

// FindNear returns every point within radiusMeters of the reference
// coordinate, sorted by ascending distance. The scan is brute force over
// the whole catalog.
func (s *CatalogService) FindNear(ctx context.Context, lat, lng, radiusMeters float64) ([]domain.NearbyPoint, error) {
	if !isFinite(lat) || !isFinite(lng) || !isFinite(radiusMeters) {
		return nil, domain.Invalid("coordenadas", "coordenadas e raio devem ser números")
	}

	all, err := s.points.List(ctx, domain.PointFilter{})
	if err != nil {
		return nil, err
	}

	near := []domain.NearbyPoint{}
	for _, p := range all {
		d := geospatial.Haversine(lat, lng, p.Latitude, p.Longitude)
		if d <= radiusMeters {
			near = append(near, domain.NearbyPoint{
				Point:             p,
				DistanceMeters:    math.Round(d*100) / 100,
				DistanceFormatted: geospatial.FormatDistance(d),
			})
		}
	}

	// Stable keeps storage order for equidistant points.
	sort.SliceStable(near, func(i, j int) bool {
		return near[i].DistanceMeters < near[j].DistanceMeters
	})
	return near, nil
}

// ExportGeoJSON maps the whole catalog to a GeoJSON FeatureCollection.
// GeoJSON coordinates are [longitude, latitude], the reverse of the
// Point entity order.
func (s *CatalogService) ExportGeoJSON(ctx context.Context) (*geojson.FeatureCollection, error) {
	pts, err := s.points.List(ctx, domain.PointFilter{})
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	fc.ExtraMembers = geojson.Properties{
		"crs": map[string]any{
			"type":       "name",
			"properties": map[string]any{"name": "urn:ogc:def:crs:OGC:1.3:CRS84"},
		},
	}

	for _, p := range pts {
		meta := domain.Categories[p.Category]
		f := geojson.NewFeature(orb.Point{p.Longitude, p.Latitude})
		f.Properties = geojson.Properties{
			"id":             p.ID,
			"nome":           p.Name,
			"descricao":      p.Description,
			"categoria":      p.Category,
			"categoria_nome": meta.Name,
			"cor":            meta.Color,
			"data_criacao":   p.CreatedAt,
		}
		fc.Append(f)
	}
	return fc, nil
}

// RegionInfo describes the accepted region and its approximate area.
type RegionInfo struct {
	Bounds  geospatial.Bounds `json:"limites"`
	AreaKm2 float64           `json:"area_km2"`
}

// Region returns the configured bounds with their approximate area.
func (s *CatalogService) Region() RegionInfo {
	return RegionInfo{
		Bounds: s.bounds,
		AreaKm2: geospatial.BoundingBoxArea(
			s.bounds.MinLat, s.bounds.MinLon, s.bounds.MaxLat, s.bounds.MaxLon),
	}
}

func (s *CatalogService) publish(ctx context.Context, fn func(ports.EventPublisher) error) {
	if s.events == nil {
		return
	}
	if err := fn(s.events); err != nil {
		slog.Warn("publicação de evento falhou", "error", err)
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
