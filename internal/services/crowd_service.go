// internal/services/crowd_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/deliciae/discovery-core/internal/models"
)

type CrowdStore interface {
	Append(ctx context.Context, snapshot *models.CrowdSnapshot) error
	Latest(ctx context.Context, establishmentID uuid.UUID) (*models.CrowdSnapshot, error)
}

type ActiveOrderCounter interface {
	CountActive(ctx context.Context, establishmentID uuid.UUID) (int64, error)
}

type EstablishmentLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Establishment, error)
}

type CrowdService struct {
	snapshots      CrowdStore
	orders         ActiveOrderCounter
	establishments EstablishmentLookup
	now            func() time.Time
}

// CrowdCounts is the input of a crowd reading. When ActiveOrders is nil the
// count of in-flight orders is used.
type CrowdCounts struct {
	ActiveOrders   *int `json:"active_orders" validate:"omitempty,min=0"`
	OccupiedTables int  `json:"occupied_tables" validate:"min=0"`
}

func NewCrowdService(snapshots CrowdStore, orders ActiveOrderCounter, establishments EstablishmentLookup) *CrowdService {
	return &CrowdService{
		snapshots:      snapshots,
		orders:         orders,
		establishments: establishments,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// ClassifyCrowd maps load counts to a crowd level.
func ClassifyCrowd(activeOrders, occupiedTables int) (models.CrowdLevel, error) {
	if activeOrders < 0 || occupiedTables < 0 {
		return "", invalidQuery("counts", "must not be negative")
	}
	switch {
	case activeOrders < 5 && occupiedTables < 3:
		return models.CrowdLow, nil
	case activeOrders < 15 && occupiedTables < 8:
		return models.CrowdMedium, nil
	default:
		return models.CrowdHigh, nil
	}
}

// Record classifies the current load and appends a snapshot. Only the owner
// or staff of the establishment may record.
func (s *CrowdService) Record(ctx context.Context, principal models.Principal, establishmentID uuid.UUID, counts CrowdCounts) (*models.CrowdSnapshot, error) {
	if !principal.Manages(establishmentID) {
		return nil, fmt.Errorf("recording crowd level: %w", ErrForbidden)
	}
	if _, err := s.establishments.GetByID(ctx, establishmentID); err != nil {
		return nil, notFound(err, "establishment")
	}

	var active int
	if counts.ActiveOrders != nil {
		active = *counts.ActiveOrders
	} else {
		n, err := s.orders.CountActive(ctx, establishmentID)
		if err != nil {
			return nil, err
		}
		active = int(n)
	}

	level, err := ClassifyCrowd(active, counts.OccupiedTables)
	if err != nil {
		return nil, err
	}

	snapshot := &models.CrowdSnapshot{
		EstablishmentID: establishmentID,
		Level:           level,
		ActiveOrders:    active,
		OccupiedTables:  counts.OccupiedTables,
		RecordedAt:      s.now(),
	}
	if err := s.snapshots.Append(ctx, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *CrowdService) Latest(ctx context.Context, establishmentID uuid.UUID) (*models.CrowdSnapshot, error) {
	snapshot, err := s.snapshots.Latest(ctx, establishmentID)
	if err != nil {
		return nil, notFound(err, "crowd snapshot")
	}
	return snapshot, nil
}
