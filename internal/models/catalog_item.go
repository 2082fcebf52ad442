// internal/models/catalog_item.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type CatalogItem struct {
	BaseModel
	EstablishmentID      uuid.UUID  `json:"establishment_id" gorm:"type:uuid;not null;index"`
	Name                 string     `json:"name" gorm:"size:100;not null"`
	Description          string     `json:"description" gorm:"type:text"`
	Category             string     `json:"category" gorm:"size:50;index"`
	Price                float64    `json:"price" gorm:"type:decimal(8,2);not null"`
	IsAvailable          bool       `json:"is_available" gorm:"not null;index"`
	QuantityRemaining    int        `json:"quantity_remaining" gorm:"not null"`
	TrendScore           float64    `json:"trend_score" gorm:"not null;index"`
	PopularityScore      float64    `json:"popularity_score" gorm:"not null"`
	EstimatedDepletionAt *time.Time `json:"estimated_depletion_at"`
	PreparationMinutes   int        `json:"preparation_minutes"`
	ScoredAt             *time.Time `json:"scored_at,omitempty"`

	// Relationships
	Establishment *Establishment `json:"establishment,omitempty" gorm:"foreignKey:EstablishmentID"`
}
