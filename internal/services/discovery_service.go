// internal/services/discovery_service.go
package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/deliciae/discovery-core/internal/cache"
	"github.com/deliciae/discovery-core/internal/models"
)

const (
	HighlightsPerSection = 5
	MaxViewLimit         = 100

	highlightsKey = "views:highlights"
)

type CatalogViews interface {
	Trending(ctx context.Context, limit int, exclude []uuid.UUID) ([]models.CatalogItem, error)
	FastSelling(ctx context.Context, limit int) ([]models.CatalogItem, error)
	SellingOut(ctx context.Context, limit int) ([]models.CatalogItem, error)
	TopRated(ctx context.Context, limit int) ([]models.CatalogItem, error)
}

type DiscoveryService struct {
	views         CatalogViews
	cache         cache.ViewCache
	highlightsTTL time.Duration
}

type Highlights struct {
	Trending    []models.CatalogItem `json:"trending"`
	FastSelling []models.CatalogItem `json:"fast_selling"`
	TopRated    []models.CatalogItem `json:"top_rated"`
}

func NewDiscoveryService(views CatalogViews, viewCache cache.ViewCache, highlightsTTL time.Duration) *DiscoveryService {
	return &DiscoveryService{views: views, cache: viewCache, highlightsTTL: highlightsTTL}
}

func validateLimit(limit int) error {
	if limit <= 0 || limit > MaxViewLimit {
		return invalidQuery("limit", "must be between 1 and %d", MaxViewLimit)
	}
	return nil
}

func (s *DiscoveryService) Trending(ctx context.Context, limit int) ([]models.CatalogItem, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	return nonNil(s.views.Trending(ctx, limit, nil))
}

func (s *DiscoveryService) FastSelling(ctx context.Context, limit int) ([]models.CatalogItem, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	return nonNil(s.views.FastSelling(ctx, limit))
}

func (s *DiscoveryService) SellingOut(ctx context.Context, limit int) ([]models.CatalogItem, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	return nonNil(s.views.SellingOut(ctx, limit))
}

func (s *DiscoveryService) TopRated(ctx context.Context, limit int) ([]models.CatalogItem, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	return nonNil(s.views.TopRated(ctx, limit))
}

// Highlights serves the dashboard sections, from cache when possible. Cache
// failures fall through to the database.
func (s *DiscoveryService) Highlights(ctx context.Context) (*Highlights, error) {
	if s.cache != nil {
		var cached Highlights
		hit, err := s.cache.Get(ctx, highlightsKey, &cached)
		if err != nil {
			logrus.WithError(err).Warn("Highlights cache read failed")
		}
		if hit {
			return &cached, nil
		}
	}

	h := &Highlights{}
	var err error
	if h.Trending, err = nonNil(s.views.Trending(ctx, HighlightsPerSection, nil)); err != nil {
		return nil, err
	}
	if h.FastSelling, err = nonNil(s.views.FastSelling(ctx, HighlightsPerSection)); err != nil {
		return nil, err
	}
	if h.TopRated, err = nonNil(s.views.TopRated(ctx, HighlightsPerSection)); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, highlightsKey, h, s.highlightsTTL); err != nil {
			logrus.WithError(err).Warn("Highlights cache write failed")
		}
	}
	return h, nil
}

// Invalidate drops cached views. Called after scores change.
func (s *DiscoveryService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, highlightsKey)
}

func nonNil(items []models.CatalogItem, err error) ([]models.CatalogItem, error) {
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.CatalogItem{}
	}
	return items, nil
}
