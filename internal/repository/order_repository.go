// internal/repository/order_repository.go
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/deliciae/discovery-core/internal/models"
)

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// RecentForCustomer returns the newest orders first, with their items and
// the items' establishments loaded.
func (r *orderRepository) RecentForCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Establishment").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Order("id").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) CountActive(ctx context.Context, establishmentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("establishment_id = ?", establishmentID).
		Where("status IN ?", []models.OrderStatus{models.OrderStatusOrdered, models.OrderStatusPreparing}).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active orders: %w", err)
	}
	return count, nil
}
