package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mapadf/pontos/internal/core/domain"
)

// PointRepo implements ports.PointRepository with pgx. It performs no
// validation: it stores whatever the service hands it.
type PointRepo struct {
	db *DB
}

// NewPointRepo creates a new PointRepo.
func NewPointRepo(db *DB) *PointRepo {
	return &PointRepo{db: db}
}

const pointColumns = `id, name, COALESCE(description, ''), latitude, longitude, category, created_at`

// Create inserts a point; the database assigns id and created_at.
func (r *PointRepo) Create(ctx context.Context, name, description string, lat, lon float64, category string) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO points (name, description, latitude, longitude, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, name, description, lat, lon, category).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert point: %w", err)
	}
	return id, nil
}

// GetByID returns a single point or domain.ErrNotFound.
func (r *PointRepo) GetByID(ctx context.Context, id int64) (*domain.Point, error) {
	var p domain.Point
	err := r.db.Pool.QueryRow(ctx, `
		SELECT `+pointColumns+`
		FROM points WHERE id = $1
	`, id).Scan(
		&p.ID, &p.Name, &p.Description,
		&p.Latitude, &p.Longitude, &p.Category, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns points matching the filter, newest first. An empty filter
// field is ignored; both filters combine with AND. The search filter is a
// case-insensitive substring match on name or description.
func (r *PointRepo) List(ctx context.Context, filter domain.PointFilter) ([]domain.Point, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+pointColumns+`
		FROM points
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC, id DESC
	`, filter.Category, filter.Search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []domain.Point
	for rows.Next() {
		var p domain.Point
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description,
			&p.Latitude, &p.Longitude, &p.Category, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// Update rewrites the mutable fields, never coordinates or created_at.
func (r *PointRepo) Update(ctx context.Context, id int64, name, description, category string) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE points
		SET name = $2, description = $3, category = $4
		WHERE id = $1
	`, id, name, description, category)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a point permanently.
func (r *PointRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM points WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CountByCategory returns point counts grouped by category.
func (r *PointRepo) CountByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT category, count(*)
		FROM points
		GROUP BY category
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var total int
		if err := rows.Scan(&category, &total); err != nil {
			return nil, err
		}
		counts[category] = total
	}
	return counts, rows.Err()
}

// Count returns the total number of points.
func (r *PointRepo) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM points`).Scan(&total)
	return total, err
}
