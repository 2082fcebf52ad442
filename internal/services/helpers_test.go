package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/deliciae/discovery-core/internal/database"
	"github.com/deliciae/discovery-core/internal/geo"
	"github.com/deliciae/discovery-core/internal/models"
	"github.com/deliciae/discovery-core/internal/repository"
)

func ptr[T any](v T) *T { return &v }

var fixedNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return db
}

func itemIDs(items []models.CatalogItem) []uuid.UUID {
	out := make([]uuid.UUID, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

// fakeFinder applies the same filters as the gorm repository.
type fakeFinder struct {
	establishments []models.Establishment
	// raw returns every establishment without filtering.
	raw  bool
	err  error
	last geo.Box
}

func (f *fakeFinder) FindInBox(_ context.Context, box geo.Box) ([]models.Establishment, error) {
	f.last = box
	if f.err != nil {
		return nil, f.err
	}
	if f.raw {
		return append([]models.Establishment(nil), f.establishments...), nil
	}
	var out []models.Establishment
	for _, e := range f.establishments {
		if !e.IsOpen || !e.HasCoordinates() {
			continue
		}
		if box.Contains(geo.Point{Lat: *e.Latitude, Lng: *e.Longitude}) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeScoreStore struct {
	mu         sync.Mutex
	items      []models.CatalogItem
	updates    map[uuid.UUID]repository.ScoreUpdate
	popularity map[uuid.UUID]float64
	failOn     uuid.UUID
	listErr    error
}

func newFakeScoreStore(items ...models.CatalogItem) *fakeScoreStore {
	return &fakeScoreStore{
		items:      items,
		updates:    map[uuid.UUID]repository.ScoreUpdate{},
		popularity: map[uuid.UUID]float64{},
	}
}

func (f *fakeScoreStore) ListAvailable(context.Context) ([]models.CatalogItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.CatalogItem(nil), f.items...), nil
}

func (f *fakeScoreStore) UpdateScores(_ context.Context, id uuid.UUID, update repository.ScoreUpdate) error {
	if id == f.failOn {
		return assertError
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates[id] = update
	return nil
}

func (f *fakeScoreStore) SetPopularity(_ context.Context, id uuid.UUID, score float64) error {
	for _, it := range f.items {
		if it.ID == id {
			f.popularity[id] = score
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeCounter struct {
	interactions map[uuid.UUID]map[models.InteractionKind]int64
	engagements  map[uuid.UUID]map[models.EngagementKind]int64
}

func (f *fakeCounter) CountInteractions(_ context.Context, id uuid.UUID, _, _ time.Time) (map[models.InteractionKind]int64, error) {
	return f.interactions[id], nil
}

func (f *fakeCounter) CountEngagements(_ context.Context, id uuid.UUID) (map[models.EngagementKind]int64, error) {
	return f.engagements[id], nil
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate(context.Context) error {
	c.calls++
	return nil
}

type testError string

func (e testError) Error() string { return string(e) }

const assertError = testError("store unavailable")
