// internal/services/event_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/deliciae/discovery-core/internal/models"
	"github.com/deliciae/discovery-core/internal/utils"
)

type EventStore interface {
	AppendInteraction(ctx context.Context, event *models.InteractionEvent) error
	AppendEngagement(ctx context.Context, event *models.EngagementEvent) error
}

type ItemLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.CatalogItem, error)
}

// EventService is the intake for interaction and engagement events.
type EventService struct {
	events EventStore
	items  ItemLookup
	now    func() time.Time
}

type RecordInteractionRequest struct {
	ItemID uuid.UUID              `json:"item_id" validate:"required"`
	Kind   models.InteractionKind `json:"kind" validate:"required,interaction_kind"`
	// OccurredAt defaults to the time of intake.
	OccurredAt *time.Time `json:"occurred_at"`
}

type RecordEngagementRequest struct {
	ItemID uuid.UUID             `json:"item_id" validate:"required"`
	PostID *uuid.UUID            `json:"post_id"`
	Kind   models.EngagementKind `json:"kind" validate:"required,engagement_kind"`
}

func NewEventService(events EventStore, items ItemLookup) *EventService {
	return &EventService{
		events: events,
		items:  items,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *EventService) RecordInteraction(ctx context.Context, req RecordInteractionRequest) (*models.InteractionEvent, error) {
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	if _, err := s.items.GetByID(ctx, req.ItemID); err != nil {
		return nil, notFound(err, "catalog item")
	}

	occurredAt := s.now()
	if req.OccurredAt != nil {
		occurredAt = req.OccurredAt.UTC()
	}

	event := &models.InteractionEvent{ItemID: req.ItemID, Kind: req.Kind, OccurredAt: &occurredAt}
	if err := s.events.AppendInteraction(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// RecordEngagement appends a like or comment. userID is nil for anonymous
// callers.
func (s *EventService) RecordEngagement(ctx context.Context, userID *uuid.UUID, req RecordEngagementRequest) (*models.EngagementEvent, error) {
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	if _, err := s.items.GetByID(ctx, req.ItemID); err != nil {
		return nil, notFound(err, "catalog item")
	}

	event := &models.EngagementEvent{ItemID: req.ItemID, PostID: req.PostID, UserID: userID, Kind: req.Kind}
	if err := s.events.AppendEngagement(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}
