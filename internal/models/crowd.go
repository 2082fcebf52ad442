// internal/models/crowd.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CrowdSnapshot rows are never updated; each classification appends one.
type CrowdSnapshot struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	EstablishmentID uuid.UUID  `json:"establishment_id" gorm:"type:uuid;not null;index"`
	Level           CrowdLevel `json:"crowd_level" gorm:"type:varchar(10);not null"`
	ActiveOrders    int        `json:"active_orders"`
	OccupiedTables  int        `json:"occupied_tables"`
	RecordedAt      time.Time  `json:"timestamp" gorm:"not null;index"`
}

func (c *CrowdSnapshot) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
