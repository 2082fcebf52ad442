// internal/models/order.go
package models

import (
	"github.com/google/uuid"
)

// Order is written by the ordering collaborator; the discovery core only
// reads it to derive customer preferences.
type Order struct {
	BaseModel
	CustomerID      uuid.UUID   `json:"customer_id" gorm:"type:uuid;not null;index"`
	EstablishmentID uuid.UUID   `json:"establishment_id" gorm:"type:uuid;not null;index"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);default:'Ordered'"`

	// Relationships
	Items []CatalogItem `json:"items,omitempty" gorm:"many2many:order_items;"`
}
