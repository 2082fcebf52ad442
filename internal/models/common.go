// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Enums
type InteractionKind string

const (
	InteractionView   InteractionKind = "view"
	InteractionSearch InteractionKind = "search"
	InteractionClick  InteractionKind = "click"
	InteractionOrder  InteractionKind = "order"
)

func (k InteractionKind) Valid() bool {
	switch k {
	case InteractionView, InteractionSearch, InteractionClick, InteractionOrder:
		return true
	}
	return false
}

type EngagementKind string

const (
	EngagementLike    EngagementKind = "like"
	EngagementComment EngagementKind = "comment"
)

func (k EngagementKind) Valid() bool {
	return k == EngagementLike || k == EngagementComment
}

type CrowdLevel string

const (
	CrowdLow    CrowdLevel = "Low"
	CrowdMedium CrowdLevel = "Medium"
	CrowdHigh   CrowdLevel = "High"
)

type OrderStatus string

const (
	OrderStatusOrdered   OrderStatus = "Ordered"
	OrderStatusPreparing OrderStatus = "Preparing"
	OrderStatusServed    OrderStatus = "Served"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusPaid      OrderStatus = "Paid"
)
