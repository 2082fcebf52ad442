// internal/repository/catalog_repository.go
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/deliciae/discovery-core/internal/models"
)

// FastSellingMaxQuantity bounds the stock an item may have left and still
// count as fast selling.
const FastSellingMaxQuantity = 20

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) Create(ctx context.Context, item *models.CatalogItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create catalog item: %w", err)
	}
	return nil
}

func (r *catalogRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CatalogItem, error) {
	var item models.CatalogItem
	if err := r.db.WithContext(ctx).Preload("Establishment").First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *catalogRepository) ListAvailable(ctx context.Context) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	if err := r.available(ctx).Order("catalog_items.id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list available items: %w", err)
	}
	return items, nil
}

func (r *catalogRepository) UpdateScores(ctx context.Context, id uuid.UUID, update ScoreUpdate) error {
	// a map is used so a nil depletion time clears the column
	result := r.db.WithContext(ctx).Model(&models.CatalogItem{}).Where("id = ?", id).Updates(map[string]interface{}{
		"trend_score":            update.TrendScore,
		"estimated_depletion_at": update.EstimatedDepletionAt,
		"scored_at":              update.ScoredAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update scores for item %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *catalogRepository) SetPopularity(ctx context.Context, id uuid.UUID, score float64) error {
	result := r.db.WithContext(ctx).Model(&models.CatalogItem{}).Where("id = ?", id).Update("popularity_score", score)
	if result.Error != nil {
		return fmt.Errorf("failed to set popularity for item %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *catalogRepository) Trending(ctx context.Context, limit int, exclude []uuid.UUID) ([]models.CatalogItem, error) {
	query := r.available(ctx)
	if len(exclude) > 0 {
		query = query.Where("catalog_items.id NOT IN ?", exclude)
	}
	return r.list(query.Order("catalog_items.trend_score DESC"), limit, "trending")
}

func (r *catalogRepository) FastSelling(ctx context.Context, limit int) ([]models.CatalogItem, error) {
	query := r.available(ctx).
		Where("catalog_items.quantity_remaining > 0 AND catalog_items.quantity_remaining < ?", FastSellingMaxQuantity).
		Order("catalog_items.popularity_score DESC")
	return r.list(query, limit, "fast selling")
}

func (r *catalogRepository) SellingOut(ctx context.Context, limit int) ([]models.CatalogItem, error) {
	query := r.available(ctx).
		Where("catalog_items.estimated_depletion_at IS NOT NULL").
		Order("catalog_items.estimated_depletion_at ASC")
	return r.list(query, limit, "selling out")
}

func (r *catalogRepository) TopRated(ctx context.Context, limit int) ([]models.CatalogItem, error) {
	query := r.available(ctx).
		Order("catalog_items.popularity_score DESC").
		Order("catalog_items.trend_score DESC")
	return r.list(query, limit, "top rated")
}

func (r *catalogRepository) Matching(ctx context.Context, filter MatchFilter) ([]models.CatalogItem, error) {
	if filter.Category == "" && filter.Cuisine == "" {
		return nil, nil
	}

	query := r.available(ctx).
		Joins("JOIN establishments ON establishments.id = catalog_items.establishment_id AND establishments.deleted_at IS NULL")

	switch {
	case filter.Category != "" && filter.Cuisine != "":
		query = query.Where("(catalog_items.category = ? OR establishments.cuisine_type = ?)", filter.Category, filter.Cuisine)
	case filter.Category != "":
		query = query.Where("catalog_items.category = ?", filter.Category)
	default:
		query = query.Where("establishments.cuisine_type = ?", filter.Cuisine)
	}

	if len(filter.Exclude) > 0 {
		query = query.Where("catalog_items.id NOT IN ?", filter.Exclude)
	}

	query = query.
		Order("catalog_items.popularity_score DESC").
		Order("catalog_items.trend_score DESC")
	return r.list(query, filter.Limit, "matching")
}

func (r *catalogRepository) available(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.CatalogItem{}).Where("catalog_items.is_available = ?", true)
}

// list applies the id tie-break and limit shared by every view.
func (r *catalogRepository) list(query *gorm.DB, limit int, view string) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	query = query.Order("catalog_items.id").Preload("Establishment")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load %s items: %w", view, err)
	}
	return items, nil
}
