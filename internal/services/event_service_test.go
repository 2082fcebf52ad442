package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deliciae/discovery-core/internal/models"
	"github.com/deliciae/discovery-core/internal/repository"
)

func TestEventIntake(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	est := &models.Establishment{OwnerID: uuid.New(), Name: "Kayal", IsOpen: true}
	require.NoError(t, repository.NewEstablishmentRepository(db).Create(ctx, est))
	catalog := repository.NewCatalogRepository(db)
	item := &models.CatalogItem{EstablishmentID: est.ID, Name: "appam", Price: 40, IsAvailable: true}
	require.NoError(t, catalog.Create(ctx, item))

	events := repository.NewEventRepository(db)
	svc := NewEventService(events, catalog)
	svc.now = func() time.Time { return fixedNow }

	t.Run("interaction defaults to now", func(t *testing.T) {
		ev, err := svc.RecordInteraction(ctx, RecordInteractionRequest{ItemID: item.ID, Kind: models.InteractionOrder})
		require.NoError(t, err)
		require.NotNil(t, ev.OccurredAt)
		assert.Equal(t, fixedNow, *ev.OccurredAt)

		counts, err := events.CountInteractions(ctx, item.ID, fixedNow.Add(-time.Hour), fixedNow)
		require.NoError(t, err)
		assert.Equal(t, int64(1), counts[models.InteractionOrder])
	})

	t.Run("interaction keeps given time", func(t *testing.T) {
		at := fixedNow.Add(-30 * time.Minute)
		ev, err := svc.RecordInteraction(ctx, RecordInteractionRequest{ItemID: item.ID, Kind: models.InteractionView, OccurredAt: &at})
		require.NoError(t, err)
		assert.Equal(t, at, *ev.OccurredAt)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := svc.RecordInteraction(ctx, RecordInteractionRequest{ItemID: item.ID, Kind: "purchase"})
		assert.ErrorIs(t, err, ErrInvalidQuery)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := svc.RecordInteraction(ctx, RecordInteractionRequest{ItemID: uuid.New(), Kind: models.InteractionView})
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = svc.RecordEngagement(ctx, nil, RecordEngagementRequest{ItemID: uuid.New(), Kind: models.EngagementLike})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("engagement", func(t *testing.T) {
		user := uuid.New()
		ev, err := svc.RecordEngagement(ctx, &user, RecordEngagementRequest{ItemID: item.ID, Kind: models.EngagementComment})
		require.NoError(t, err)
		assert.Equal(t, &user, ev.UserID)

		_, err = svc.RecordEngagement(ctx, nil, RecordEngagementRequest{ItemID: item.ID, Kind: "share"})
		assert.ErrorIs(t, err, ErrInvalidQuery)

		counts, err := events.CountEngagements(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), counts[models.EngagementComment])
	})
}
