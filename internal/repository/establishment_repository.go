// internal/repository/establishment_repository.go
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/deliciae/discovery-core/internal/geo"
	"github.com/deliciae/discovery-core/internal/models"
)

type establishmentRepository struct {
	db *gorm.DB
}

func NewEstablishmentRepository(db *gorm.DB) EstablishmentRepository {
	return &establishmentRepository{db: db}
}

func (r *establishmentRepository) Create(ctx context.Context, e *models.Establishment) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("failed to create establishment: %w", err)
	}
	return nil
}

func (r *establishmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Establishment, error) {
	var e models.Establishment
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *establishmentRepository) FindInBox(ctx context.Context, box geo.Box) ([]models.Establishment, error) {
	var out []models.Establishment
	err := r.db.WithContext(ctx).
		Where("is_open = ?", true).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query establishments in box: %w", err)
	}
	return out, nil
}

func (r *establishmentRepository) UpdateLocation(ctx context.Context, id uuid.UUID, fields LocationFields) error {
	updates := map[string]interface{}{}
	if fields.Latitude != nil {
		updates["latitude"] = *fields.Latitude
	}
	if fields.Longitude != nil {
		updates["longitude"] = *fields.Longitude
	}
	if fields.Location != nil {
		updates["location"] = *fields.Location
	}
	if fields.MapURL != nil {
		updates["map_url"] = *fields.MapURL
	}
	if fields.IsOpen != nil {
		updates["is_open"] = *fields.IsOpen
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&models.Establishment{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update establishment location: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
