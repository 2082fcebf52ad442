// internal/services/establishment_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/deliciae/discovery-core/internal/geo"
	"github.com/deliciae/discovery-core/internal/models"
	"github.com/deliciae/discovery-core/internal/repository"
	"github.com/deliciae/discovery-core/internal/utils"
)

type EstablishmentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Establishment, error)
	UpdateLocation(ctx context.Context, id uuid.UUID, fields repository.LocationFields) error
}

type MapLinkResolver interface {
	Resolve(ctx context.Context, raw string) (geo.Point, error)
}

type EstablishmentService struct {
	store    EstablishmentStore
	resolver MapLinkResolver
}

// LocationUpdate changes where an establishment is and whether it is open.
// Explicit coordinates win over MapURL.
type LocationUpdate struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Location  *string  `json:"location" validate:"omitempty,max=200"`
	MapURL    *string  `json:"map_url" validate:"omitempty,url,max=500"`
	IsOpen    *bool    `json:"is_open"`
}

func NewEstablishmentService(store EstablishmentStore, resolver MapLinkResolver) *EstablishmentService {
	return &EstablishmentService{store: store, resolver: resolver}
}

func (s *EstablishmentService) UpdateLocation(ctx context.Context, principal models.Principal, id uuid.UUID, req LocationUpdate) (*models.Establishment, error) {
	if !principal.Owns(id) {
		return nil, fmt.Errorf("updating establishment location: %w", ErrForbidden)
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return nil, notFound(err, "establishment")
	}

	fields := repository.LocationFields{
		Location: req.Location,
		MapURL:   req.MapURL,
		IsOpen:   req.IsOpen,
	}

	switch {
	case req.Latitude != nil || req.Longitude != nil:
		if req.Latitude == nil || req.Longitude == nil {
			return nil, invalidQuery("coordinates", "latitude and longitude must be given together")
		}
		p := geo.Point{Lat: *req.Latitude, Lng: *req.Longitude}
		if err := p.Validate(); err != nil {
			return nil, invalidQuery("coordinates", "%v", err)
		}
		fields.Latitude, fields.Longitude = &p.Lat, &p.Lng
	case req.MapURL != nil && strings.TrimSpace(*req.MapURL) != "":
		p, err := s.resolver.Resolve(ctx, *req.MapURL)
		if err != nil {
			return nil, invalidQuery("map_url", "%v", err)
		}
		fields.Latitude, fields.Longitude = &p.Lat, &p.Lng
	}

	if err := s.store.UpdateLocation(ctx, id, fields); err != nil {
		return nil, notFound(err, "establishment")
	}

	logrus.WithFields(logrus.Fields{
		"establishment_id": id,
		"geocoded":         fields.Latitude != nil,
	}).Info("Establishment location updated")

	updated, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "establishment")
	}
	return updated, nil
}
