package geospatial

import (
	"fmt"
	"math"
)

// Mean Earth radius in meters.
const earthRadiusM = 6371000.0

// Bounds is an inclusive rectangular latitude/longitude box.
type Bounds struct {
	MinLat float64 `json:"lat_min"`
	MinLon float64 `json:"lng_min"`
	MaxLat float64 `json:"lat_max"`
	MaxLon float64 `json:"lng_max"`
}

// BrasiliaBounds is the default accepted region: a box around Brasília, DF.
var BrasiliaBounds = Bounds{
	MinLat: -16.0,
	MinLon: -48.3,
	MaxLat: -15.5,
	MaxLon: -47.3,
}

// Haversine calculates the great-circle distance in meters between two
// points given in degrees. It accepts any finite inputs and does not
// validate degree ranges.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}

// FormatDistance renders a distance for display: whole meters below one
// kilometer, kilometers with two decimals from there on.
func FormatDistance(meters float64) string {
	if meters >= 1000 {
		return fmt.Sprintf("%.2f km", meters/1000)
	}
	return fmt.Sprintf("%.0f m", meters)
}

// WithinBounds reports whether the point lies inside b, boundary included.
func (b Bounds) WithinBounds(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lon >= b.MinLon && lon <= b.MaxLon
}

// Validate checks that the box is well formed.
func (b Bounds) Validate() error {
	if b.MinLat >= b.MaxLat {
		return fmt.Errorf("lat_min %v must be below lat_max %v", b.MinLat, b.MaxLat)
	}
	if b.MinLon >= b.MaxLon {
		return fmt.Errorf("lng_min %v must be below lng_max %v", b.MinLon, b.MaxLon)
	}
	return nil
}

// BoundingBoxArea approximates the area of a lat/lng box in km² by taking
// the horizontal extent at the box's mid-latitude and the vertical extent
// at its mid-longitude. It is not an exact spherical-polygon area.
func BoundingBoxArea(latMin, lonMin, latMax, lonMax float64) float64 {
	midLat := (latMin + latMax) / 2
	horizontal := Haversine(midLat, lonMin, midLat, lonMax)

	midLon := (lonMin + lonMax) / 2
	vertical := Haversine(latMin, midLon, latMax, midLon)

	return horizontal * vertical / 1e6
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
