// internal/services/proximity_service.go
package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/deliciae/discovery-core/internal/geo"
	"github.com/deliciae/discovery-core/internal/models"
)

// EstablishmentFinder is the read path proximity search runs on.
type EstablishmentFinder interface {
	FindInBox(ctx context.Context, box geo.Box) ([]models.Establishment, error)
}

type ProximityConfig struct {
	MaxRadiusKm float64
	// ParallelThreshold is the candidate count above which distances are
	// computed concurrently. Zero disables the parallel path.
	ParallelThreshold int
	Workers           int
}

type ProximityService struct {
	finder EstablishmentFinder
	cfg    ProximityConfig
}

type NearbyQuery struct {
	Origin   geo.Point
	RadiusKm float64
}

type EstablishmentSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	CuisineType string    `json:"cuisine_type"`
	Location    string    `json:"location"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Rating      float64   `json:"rating"`
	IsOpen      bool      `json:"is_open"`
}

type NearbyResult struct {
	Establishment EstablishmentSummary `json:"establishment"`
	DistanceKm    float64              `json:"distance_km"`
}

func NewProximityService(finder EstablishmentFinder, cfg ProximityConfig) *ProximityService {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &ProximityService{finder: finder, cfg: cfg}
}

func (q NearbyQuery) validate(maxRadius float64) error {
	if err := q.Origin.Validate(); err != nil {
		return invalidQuery("origin", "%v", err)
	}
	if math.IsNaN(q.RadiusKm) || math.IsInf(q.RadiusKm, 0) || q.RadiusKm <= 0 {
		return invalidQuery("radius", "must be a positive number of kilometers")
	}
	if maxRadius > 0 && q.RadiusKm > maxRadius {
		return invalidQuery("radius", "must not exceed %g km", maxRadius)
	}
	return nil
}

// FindNearby returns open establishments within RadiusKm of Origin, nearest
// first. Establishments at the same distance keep the finder's order.
func (s *ProximityService) FindNearby(ctx context.Context, q NearbyQuery) ([]NearbyResult, error) {
	if err := q.validate(s.cfg.MaxRadiusKm); err != nil {
		return nil, err
	}

	box := geo.BoundingBoxFor(q.Origin, q.RadiusKm)
	candidates, err := s.finder.FindInBox(ctx, box)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	distances, err := s.distances(ctx, q.Origin, candidates)
	if err != nil {
		return nil, err
	}

	type match struct {
		idx  int
		dist float64
	}
	matches := make([]match, 0, len(candidates))
	for i := range candidates {
		if !candidates[i].HasCoordinates() {
			continue
		}
		if distances[i] <= q.RadiusKm {
			matches = append(matches, match{idx: i, dist: distances[i]})
		}
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].dist < matches[b].dist
	})

	results := make([]NearbyResult, len(matches))
	for i, m := range matches {
		results[i] = NearbyResult{
			Establishment: summarize(&candidates[m.idx]),
			DistanceKm:    geo.Round2(m.dist),
		}
	}

	logrus.WithFields(logrus.Fields{
		"candidates": len(candidates),
		"matches":    len(results),
		"radius_km":  q.RadiusKm,
	}).Debug("Nearby search completed")

	return results, nil
}

// distances is index aligned with candidates. Entries for candidates without
// coordinates are left at zero and must be skipped by the caller.
func (s *ProximityService) distances(ctx context.Context, origin geo.Point, candidates []models.Establishment) ([]float64, error) {
	out := make([]float64, len(candidates))

	if s.cfg.ParallelThreshold <= 0 || len(candidates) <= s.cfg.ParallelThreshold {
		for i := range candidates {
			if p, ok := pointOf(&candidates[i]); ok {
				out[i] = geo.Haversine(origin, p)
			}
		}
		return out, nil
	}

	chunk := (len(candidates) + s.cfg.Workers - 1) / s.cfg.Workers
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for start := 0; start < len(candidates); start += chunk {
		start, end := start, min(start+chunk, len(candidates))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				if p, ok := pointOf(&candidates[i]); ok {
					out[i] = geo.Haversine(origin, p)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func pointOf(e *models.Establishment) (geo.Point, bool) {
	if !e.HasCoordinates() {
		return geo.Point{}, false
	}
	return geo.Point{Lat: *e.Latitude, Lng: *e.Longitude}, true
}

func summarize(e *models.Establishment) EstablishmentSummary {
	s := EstablishmentSummary{
		ID:          e.ID,
		Name:        e.Name,
		CuisineType: e.CuisineType,
		Location:    e.Location,
		Rating:      e.Rating,
		IsOpen:      e.IsOpen,
	}
	if p, ok := pointOf(e); ok {
		s.Latitude, s.Longitude = p.Lat, p.Lng
	}
	return s
}
