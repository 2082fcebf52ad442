package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deliciae/discovery-core/internal/geo"
	"github.com/deliciae/discovery-core/internal/models"
	"github.com/deliciae/discovery-core/internal/repository"
)

type stubResolver struct {
	calls int
}

func (r *stubResolver) Resolve(_ context.Context, raw string) (geo.Point, error) {
	r.calls++
	if p, ok := geo.ParseMapLink(raw); ok {
		return p, nil
	}
	return geo.Point{}, fmt.Errorf("%w: no coordinates", geo.ErrInvalidPoint)
}

func newEstablishmentFixture(t *testing.T) (*EstablishmentService, *stubResolver, *models.Establishment, models.Principal) {
	db := newTestDB(t)
	repo := repository.NewEstablishmentRepository(db)
	est := &models.Establishment{OwnerID: uuid.New(), Name: "Kayal", IsOpen: false}
	require.NoError(t, repo.Create(context.Background(), est))

	resolver := &stubResolver{}
	owner := models.Principal{UserID: est.OwnerID, Role: models.RestaurantOwner{EstablishmentID: est.ID}}
	return NewEstablishmentService(repo, resolver), resolver, est, owner
}

func TestUpdateLocationWithCoordinates(t *testing.T) {
	svc, resolver, est, owner := newEstablishmentFixture(t)

	updated, err := svc.UpdateLocation(context.Background(), owner, est.ID, LocationUpdate{
		Latitude:  ptr(9.6902),
		Longitude: ptr(76.3422),
		IsOpen:    ptr(true),
		MapURL:    ptr("https://maps.google.com/?q=1.0,2.0"),
	})
	require.NoError(t, err)
	require.True(t, updated.HasCoordinates())
	assert.Equal(t, 9.6902, *updated.Latitude)
	assert.True(t, updated.IsOpen)
	assert.Zero(t, resolver.calls)
}

func TestUpdateLocationFromMapLink(t *testing.T) {
	svc, resolver, est, owner := newEstablishmentFixture(t)

	updated, err := svc.UpdateLocation(context.Background(), owner, est.ID, LocationUpdate{
		MapURL: ptr("https://www.google.com/maps/place/Kayal/@9.6902,76.3422,17z"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resolver.calls)
	require.True(t, updated.HasCoordinates())
	assert.Equal(t, 76.3422, *updated.Longitude)
	assert.False(t, updated.IsOpen)

	_, err = svc.UpdateLocation(context.Background(), owner, est.ID, LocationUpdate{
		MapURL: ptr("https://www.google.com/maps/place/Somewhere+Nice"),
	})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestUpdateLocationRejections(t *testing.T) {
	svc, _, est, owner := newEstablishmentFixture(t)
	ctx := context.Background()

	staff := models.Principal{UserID: uuid.New(), Role: models.Staff{EstablishmentID: est.ID}}
	_, err := svc.UpdateLocation(ctx, staff, est.ID, LocationUpdate{IsOpen: ptr(true)})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.UpdateLocation(ctx, owner, est.ID, LocationUpdate{Latitude: ptr(9.0)})
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = svc.UpdateLocation(ctx, owner, est.ID, LocationUpdate{Latitude: ptr(95.0), Longitude: ptr(0.0)})
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = svc.UpdateLocation(ctx, owner, est.ID, LocationUpdate{MapURL: ptr("not a url")})
	assert.ErrorIs(t, err, ErrInvalidQuery)

	missing := uuid.New()
	ghost := models.Principal{UserID: uuid.New(), Role: models.RestaurantOwner{EstablishmentID: missing}}
	_, err = svc.UpdateLocation(ctx, ghost, missing, LocationUpdate{IsOpen: ptr(true)})
	assert.ErrorIs(t, err, ErrNotFound)
}
