// internal/repository/repository.go

// Package repository is the gorm-backed data access layer.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/deliciae/discovery-core/internal/geo"
	"github.com/deliciae/discovery-core/internal/models"
)

type EstablishmentRepository interface {
	Create(ctx context.Context, e *models.Establishment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Establishment, error)
	// FindInBox returns open establishments with coordinates inside box,
	// ordered by id.
	FindInBox(ctx context.Context, box geo.Box) ([]models.Establishment, error)
	UpdateLocation(ctx context.Context, id uuid.UUID, fields LocationFields) error
}

type CatalogRepository interface {
	Create(ctx context.Context, item *models.CatalogItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CatalogItem, error)
	ListAvailable(ctx context.Context) ([]models.CatalogItem, error)
	UpdateScores(ctx context.Context, id uuid.UUID, update ScoreUpdate) error
	SetPopularity(ctx context.Context, id uuid.UUID, score float64) error

	// Read views. All of them return available items only.
	Trending(ctx context.Context, limit int, exclude []uuid.UUID) ([]models.CatalogItem, error)
	FastSelling(ctx context.Context, limit int) ([]models.CatalogItem, error)
	SellingOut(ctx context.Context, limit int) ([]models.CatalogItem, error)
	TopRated(ctx context.Context, limit int) ([]models.CatalogItem, error)
	Matching(ctx context.Context, filter MatchFilter) ([]models.CatalogItem, error)
}

type EventRepository interface {
	AppendInteraction(ctx context.Context, event *models.InteractionEvent) error
	AppendEngagement(ctx context.Context, event *models.EngagementEvent) error
	// CountInteractions counts events per kind inside [from, to]. Events
	// without a timestamp are always counted.
	CountInteractions(ctx context.Context, itemID uuid.UUID, from, to time.Time) (map[models.InteractionKind]int64, error)
	CountEngagements(ctx context.Context, itemID uuid.UUID) (map[models.EngagementKind]int64, error)
}

type OrderRepository interface {
	RecentForCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]models.Order, error)
	// CountActive counts orders still being prepared at the establishment.
	CountActive(ctx context.Context, establishmentID uuid.UUID) (int64, error)
}

type CrowdRepository interface {
	Append(ctx context.Context, snapshot *models.CrowdSnapshot) error
	Latest(ctx context.Context, establishmentID uuid.UUID) (*models.CrowdSnapshot, error)
}

// LocationFields is a partial update; nil fields are left unchanged.
type LocationFields struct {
	Latitude  *float64
	Longitude *float64
	Location  *string
	MapURL    *string
	IsOpen    *bool
}

// ScoreUpdate is the tuple written back by a recompute pass.
// EstimatedDepletionAt is written even when nil.
type ScoreUpdate struct {
	TrendScore           float64
	EstimatedDepletionAt *time.Time
	ScoredAt             time.Time
}

// MatchFilter selects items in Category or served by an establishment of
// Cuisine. An empty field does not match anything.
type MatchFilter struct {
	Category string
	Cuisine  string
	Exclude  []uuid.UUID
	Limit    int
}
