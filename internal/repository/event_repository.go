// internal/repository/event_repository.go
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/deliciae/discovery-core/internal/models"
)

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

type kindCount struct {
	Kind  string
	Count int64
}

func (r *eventRepository) AppendInteraction(ctx context.Context, event *models.InteractionEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to append interaction event: %w", err)
	}
	return nil
}

func (r *eventRepository) AppendEngagement(ctx context.Context, event *models.EngagementEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to append engagement event: %w", err)
	}
	return nil
}

func (r *eventRepository) CountInteractions(ctx context.Context, itemID uuid.UUID, from, to time.Time) (map[models.InteractionKind]int64, error) {
	var rows []kindCount
	err := r.db.WithContext(ctx).Model(&models.InteractionEvent{}).
		Select("kind, COUNT(*) AS count").
		Where("item_id = ?", itemID).
		Where("(occurred_at IS NULL OR (occurred_at >= ? AND occurred_at <= ?))", from, to).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count interactions for item %s: %w", itemID, err)
	}

	counts := make(map[models.InteractionKind]int64, len(rows))
	for _, row := range rows {
		counts[models.InteractionKind(row.Kind)] = row.Count
	}
	return counts, nil
}

func (r *eventRepository) CountEngagements(ctx context.Context, itemID uuid.UUID) (map[models.EngagementKind]int64, error) {
	var rows []kindCount
	err := r.db.WithContext(ctx).Model(&models.EngagementEvent{}).
		Select("kind, COUNT(*) AS count").
		Where("item_id = ?", itemID).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count engagements for item %s: %w", itemID, err)
	}

	counts := make(map[models.EngagementKind]int64, len(rows))
	for _, row := range rows {
		counts[models.EngagementKind(row.Kind)] = row.Count
	}
	return counts, nil
}
