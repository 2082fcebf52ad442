// internal/repository/crowd_repository.go
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/deliciae/discovery-core/internal/models"
)

type crowdRepository struct {
	db *gorm.DB
}

func NewCrowdRepository(db *gorm.DB) CrowdRepository {
	return &crowdRepository{db: db}
}

func (r *crowdRepository) Append(ctx context.Context, snapshot *models.CrowdSnapshot) error {
	if err := r.db.WithContext(ctx).Create(snapshot).Error; err != nil {
		return fmt.Errorf("failed to append crowd snapshot: %w", err)
	}
	return nil
}

func (r *crowdRepository) Latest(ctx context.Context, establishmentID uuid.UUID) (*models.CrowdSnapshot, error) {
	var snapshot models.CrowdSnapshot
	err := r.db.WithContext(ctx).
		Where("establishment_id = ?", establishmentID).
		Order("recorded_at DESC").
		First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}
