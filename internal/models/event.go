// internal/models/event.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InteractionEvent is an append-only fact about a catalog item. Legacy rows
// carry no OccurredAt and count as inside every scoring window.
type InteractionEvent struct {
	ID         uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	ItemID     uuid.UUID       `json:"item_id" gorm:"type:uuid;not null;index"`
	Kind       InteractionKind `json:"kind" gorm:"type:varchar(20);not null"`
	OccurredAt *time.Time      `json:"occurred_at"`
}

func (e *InteractionEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// EngagementEvent is a like or comment on a social post. ItemID is the catalog
// item the post features.
type EngagementEvent struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID      `json:"item_id" gorm:"type:uuid;not null;index"`
	PostID    *uuid.UUID     `json:"post_id,omitempty" gorm:"type:uuid;index"`
	UserID    *uuid.UUID     `json:"user_id,omitempty" gorm:"type:uuid"`
	Kind      EngagementKind `json:"kind" gorm:"type:varchar(20);not null"`
	CreatedAt time.Time      `json:"created_at"`
}

func (e *EngagementEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
