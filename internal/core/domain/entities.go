package domain

import (
	"time"
)

// Point is a geo-tagged point of interest in the catalog. JSON field names
// follow the public API contract, which speaks Portuguese.
type Point struct {
	ID          int64     `json:"id"`
	Name        string    `json:"nome"`
	Description string    `json:"descricao"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Category    string    `json:"categoria"`
	CreatedAt   time.Time `json:"data_criacao"`
}

// NearbyPoint is a Point decorated with its distance from a reference
// coordinate, as returned by proximity search.
type NearbyPoint struct {
	Point
	DistanceMeters    float64 `json:"distancia_metros"`
	DistanceFormatted string  `json:"distancia_formatada"`
}

// PointFilter narrows a listing. Category is an exact match; Search is a
// case-insensitive substring match against name or description. Empty
// fields are ignored.
type PointFilter struct {
	Category string
	Search   string
}

// CreatePointInput carries the raw fields of a create request. Latitude
// and Longitude are pointers so the service can tell an absent coordinate
// from a present one; the HTTP adapter maps unparseable values to NaN.
type CreatePointInput struct {
	Name        string
	Description string
	Latitude    *float64
	Longitude   *float64
	Category    string
}

// UpdatePointInput carries the mutable fields of a point. Coordinates and
// creation time are immutable after insert.
type UpdatePointInput struct {
	Name        string
	Description string
	Category    string
}
