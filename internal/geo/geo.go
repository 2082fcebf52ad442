// internal/geo/geo.go

// Package geo holds the spherical geometry used by proximity search.
package geo

import (
	"errors"
	"fmt"
	"math"
)

const (
	// EarthRadiusKm is the sphere radius used for great-circle distances.
	EarthRadiusKm = 6371.0

	// KmPerDegree approximates one degree of latitude.
	KmPerDegree = 111.0

	// BoxMargin over-fetches the bounding box by 10% because a degree of
	// longitude is shorter than a degree of latitude away from the equator.
	// Removing it drops valid matches near the box edge.
	BoxMargin = 1.1
)

var ErrInvalidPoint = errors.New("invalid coordinates")

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidPoint, p.Lat)
	}
	if math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) || p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidPoint, p.Lng)
	}
	return nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Haversine returns the great-circle distance between a and b in kilometers.
func Haversine(a, b Point) float64 {
	lat1, lat2 := radians(a.Lat), radians(b.Lat)
	dLat := lat2 - lat1
	dLon := radians(b.Lng) - radians(a.Lng)

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)
	c := 2 * math.Asin(math.Sqrt(h))
	return c * EarthRadiusKm
}

// Box is an axis-aligned latitude/longitude rectangle, bounds inclusive.
type Box struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// BoundingBoxFor returns the pre-filter box for a radius search around origin.
func BoundingBoxFor(origin Point, radiusKm float64) Box {
	delta := (radiusKm / KmPerDegree) * BoxMargin
	return Box{
		MinLat: origin.Lat - delta,
		MaxLat: origin.Lat + delta,
		MinLng: origin.Lng - delta,
		MaxLng: origin.Lng + delta,
	}
}

func (b Box) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// Round2 rounds to two decimal places, the precision used at API boundaries.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
