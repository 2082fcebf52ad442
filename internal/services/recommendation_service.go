// internal/services/recommendation_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/deliciae/discovery-core/internal/models"
	"github.com/deliciae/discovery-core/internal/repository"
)

type OrderHistory interface {
	RecentForCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]models.Order, error)
}

type RecommendationCatalog interface {
	Matching(ctx context.Context, filter repository.MatchFilter) ([]models.CatalogItem, error)
	Trending(ctx context.Context, limit int, exclude []uuid.UUID) ([]models.CatalogItem, error)
}

type RecommendationService struct {
	history OrderHistory
	catalog RecommendationCatalog
	// lookback is how many recent orders shape preferences.
	lookback int
	limit    int
}

// Preferences summarizes a customer's recent orders.
type Preferences struct {
	Category string
	Cuisine  string
	// Ordered holds each ordered item once, in order of first appearance.
	Ordered []uuid.UUID
}

func NewRecommendationService(history OrderHistory, catalog RecommendationCatalog, lookback, limit int) *RecommendationService {
	return &RecommendationService{history: history, catalog: catalog, lookback: lookback, limit: limit}
}

// BuildPreferences picks the most frequent category and cuisine. Equal counts
// resolve to the lexically smallest value.
func BuildPreferences(orders []models.Order) Preferences {
	categories := map[string]int{}
	cuisines := map[string]int{}
	seen := map[uuid.UUID]bool{}
	var prefs Preferences

	for _, order := range orders {
		for _, item := range order.Items {
			if !seen[item.ID] {
				seen[item.ID] = true
				prefs.Ordered = append(prefs.Ordered, item.ID)
			}
			if item.Category != "" {
				categories[item.Category]++
			}
			if item.Establishment != nil && item.Establishment.CuisineType != "" {
				cuisines[item.Establishment.CuisineType]++
			}
		}
	}

	prefs.Category = mostCommon(categories)
	prefs.Cuisine = mostCommon(cuisines)
	return prefs
}

func mostCommon(counts map[string]int) string {
	best, bestCount := "", 0
	for value, n := range counts {
		if n > bestCount || (n == bestCount && value < best) {
			best, bestCount = value, n
		}
	}
	return best
}

// Recommend ranks items similar to what the customer ordered recently and
// pads the list with trending items. Customers without history get the
// trending list.
func (s *RecommendationService) Recommend(ctx context.Context, customerID uuid.UUID) ([]models.CatalogItem, error) {
	orders, err := s.history.RecentForCustomer(ctx, customerID, s.lookback)
	if err != nil {
		return nil, fmt.Errorf("failed to load order history: %w", err)
	}

	prefs := BuildPreferences(orders)
	if len(orders) == 0 || prefs.Category == "" {
		return nonNil(s.catalog.Trending(ctx, s.limit, nil))
	}

	picked, err := s.catalog.Matching(ctx, repository.MatchFilter{
		Category: prefs.Category,
		Cuisine:  prefs.Cuisine,
		Exclude:  prefs.Ordered,
		Limit:    s.limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to match items: %w", err)
	}

	if len(picked) < s.limit {
		selected := make([]uuid.UUID, len(picked))
		for i := range picked {
			selected[i] = picked[i].ID
		}
		backfill, err := s.catalog.Trending(ctx, s.limit-len(picked), selected)
		if err != nil {
			return nil, fmt.Errorf("failed to backfill recommendations: %w", err)
		}
		picked = append(picked, backfill...)
	}

	return nonNil(picked, nil)
}
