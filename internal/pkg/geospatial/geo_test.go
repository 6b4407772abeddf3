package geospatial

import (
	"math"
	"testing"
)

func TestHaversine_ZeroForIdenticalPoints(t *testing.T) {
	points := [][2]float64{
		{-15.7942, -47.8822}, // Praça dos Três Poderes
		{0, 0},
		{-16.0, -48.3},
		{89.9, 179.9},
	}
	for _, p := range points {
		if d := Haversine(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("Haversine(%v,%v -> same) = %v, want 0", p[0], p[1], d)
		}
	}
}

func TestHaversine_Symmetry(t *testing.T) {
	pairs := [][4]float64{
		{-15.7942, -47.8822, -15.8, -47.9},
		{-15.5, -47.3, -16.0, -48.3},
		{43.263, -2.935, -15.79, -47.88},
	}
	for _, p := range pairs {
		ab := Haversine(p[0], p[1], p[2], p[3])
		ba := Haversine(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("asymmetric: %v vs %v for %v", ab, ba, p)
		}
	}
}

func TestHaversine_KnownDistance(t *testing.T) {
	// Roughly one degree of latitude at the equator.
	d := Haversine(0, 0, 1, 0)
	if math.Abs(d-111195) > 100 {
		t.Errorf("one degree of latitude = %v m, want ~111195 m", d)
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{0, "0 m"},
		{42.4, "42 m"},
		{999, "999 m"},
		{1000, "1.00 km"},
		{1550, "1.55 km"},
		{12345, "12.35 km"},
	}
	for _, tt := range tests {
		if got := FormatDistance(tt.meters); got != tt.want {
			t.Errorf("FormatDistance(%v) = %q, want %q", tt.meters, got, tt.want)
		}
	}
}

func TestWithinBounds_Brasilia(t *testing.T) {
	tests := []struct {
		lat, lon float64
		want     bool
	}{
		{-15.7942, -47.8822, true},
		{-16.0, -48.3, true}, // exact corner, inclusive
		{-15.5, -47.3, true}, // opposite corner
		{-16.1, -47.8, false},
		{-15.79, -48.4, false},
		{-15.4, -47.8, false},
		{0, 0, false},
	}
	for _, tt := range tests {
		if got := BrasiliaBounds.WithinBounds(tt.lat, tt.lon); got != tt.want {
			t.Errorf("WithinBounds(%v, %v) = %v, want %v", tt.lat, tt.lon, got, tt.want)
		}
	}
}

func TestBoundsValidate(t *testing.T) {
	if err := BrasiliaBounds.Validate(); err != nil {
		t.Fatalf("default bounds invalid: %v", err)
	}
	bad := Bounds{MinLat: -15.5, MaxLat: -16.0, MinLon: -48.3, MaxLon: -47.3}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for inverted latitude bounds")
	}
}

func TestBoundingBoxArea(t *testing.T) {
	// The Brasília box spans 0.5° of latitude (~55.6 km) by 1.0° of
	// longitude (~107 km at -15.75°), so the area must land near 5900 km².
	area := BoundingBoxArea(-16.0, -48.3, -15.5, -47.3)
	if area < 5500 || area > 6300 {
		t.Errorf("area = %v km², want ~5900 km²", area)
	}

	// Degenerate box has zero area.
	if a := BoundingBoxArea(-15.8, -47.9, -15.8, -47.9); a != 0 {
		t.Errorf("degenerate box area = %v, want 0", a)
	}
}
