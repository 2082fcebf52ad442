// internal/models/establishment.go
package models

import (
	"github.com/google/uuid"
)

// Establishment is a restaurant or vendor with an optional physical location.
// Latitude and Longitude stay nil until the establishment is geocoded.
type Establishment struct {
	BaseModel
	OwnerID     uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	CuisineType string    `json:"cuisine_type" gorm:"size:50;index"`
	Location    string    `json:"location" gorm:"size:200"`
	MapURL      string    `json:"map_url,omitempty" gorm:"size:500"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Rating      float64   `json:"rating" gorm:"default:0"`
	IsOpen      bool      `json:"is_open" gorm:"not null;index"`

	// Relationships
	Items []CatalogItem `json:"items,omitempty" gorm:"foreignKey:EstablishmentID;constraint:OnDelete:CASCADE"`
}

func (e *Establishment) HasCoordinates() bool {
	return e.Latitude != nil && e.Longitude != nil
}
