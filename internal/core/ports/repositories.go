package ports

import (
	"context"

	"github.com/mapadf/pontos/internal/core/domain"
)

// PointRepository persists points of interest. Implementations own all
// schema concerns and perform no input validation; any storage-engine
// failure propagates untouched.
type PointRepository interface {
	// Create inserts a point and returns the store-assigned id. The store
	// also assigns the creation timestamp.
	Create(ctx context.Context, name, description string, lat, lon float64, category string) (int64, error)
	// GetByID returns a point or domain.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Point, error)
	// List returns points matching the filter, newest first.
	List(ctx context.Context, filter domain.PointFilter) ([]domain.Point, error)
	// Update rewrites the mutable fields; reports whether a row matched.
	Update(ctx context.Context, id int64, name, description, category string) (bool, error)
	// Delete removes a point; reports whether a row matched.
	Delete(ctx context.Context, id int64) (bool, error)
	// CountByCategory counts points grouped by category. Categories with
	// no points are absent from the result.
	CountByCategory(ctx context.Context) (map[string]int, error)
	// Count returns the total number of points.
	Count(ctx context.Context) (int, error)
}
