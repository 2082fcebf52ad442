package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/deliciae/discovery-core/internal/models"
	"github.com/deliciae/discovery-core/internal/repository"
)

func orderOf(items ...models.CatalogItem) models.Order {
	return models.Order{Items: items}
}

func dish(category, cuisine string) models.CatalogItem {
	return models.CatalogItem{
		BaseModel:     models.BaseModel{ID: uuid.New()},
		Category:      category,
		Establishment: &models.Establishment{CuisineType: cuisine},
	}
}

func TestBuildPreferences(t *testing.T) {
	curry := dish("curry", "Kerala")
	prefs := BuildPreferences([]models.Order{
		orderOf(curry, dish("dessert", "Kerala")),
		orderOf(curry, dish("curry", "Chinese")),
	})

	assert.Equal(t, "curry", prefs.Category)
	assert.Equal(t, "Kerala", prefs.Cuisine)
	assert.Len(t, prefs.Ordered, 3)
	assert.Equal(t, curry.ID, prefs.Ordered[0])
}

func TestBuildPreferencesTieBreaksLexically(t *testing.T) {
	orders := []models.Order{
		orderOf(dish("snacks", "Thai"), dish("breakfast", "Kerala")),
		orderOf(dish("curry", "Arabian")),
	}
	for i := 0; i < 20; i++ {
		prefs := BuildPreferences(orders)
		assert.Equal(t, "breakfast", prefs.Category)
		assert.Equal(t, "Arabian", prefs.Cuisine)
	}
}

func TestBuildPreferencesEmpty(t *testing.T) {
	prefs := BuildPreferences(nil)
	assert.Empty(t, prefs.Category)
	assert.Empty(t, prefs.Cuisine)

	noCategory := models.CatalogItem{BaseModel: models.BaseModel{ID: uuid.New()}}
	prefs = BuildPreferences([]models.Order{orderOf(noCategory)})
	assert.Empty(t, prefs.Category)
	assert.Equal(t, []uuid.UUID{noCategory.ID}, prefs.Ordered)
}

type RecommendationSuite struct {
	suite.Suite
	ctx      context.Context
	db       *gorm.DB
	catalog  repository.CatalogRepository
	svc      *RecommendationService
	kerala   *models.Establishment
	chinese  *models.Establishment
	customer uuid.UUID
}

func (suite *RecommendationSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.db = newTestDB(suite.T())
	suite.catalog = repository.NewCatalogRepository(suite.db)
	suite.svc = NewRecommendationService(repository.NewOrderRepository(suite.db), suite.catalog, 10, 5)
	suite.customer = uuid.New()

	establishments := repository.NewEstablishmentRepository(suite.db)
	suite.kerala = &models.Establishment{OwnerID: uuid.New(), Name: "Kayal", CuisineType: "Kerala", IsOpen: true}
	suite.chinese = &models.Establishment{OwnerID: uuid.New(), Name: "Wok", CuisineType: "Chinese", IsOpen: true}
	require.NoError(suite.T(), establishments.Create(suite.ctx, suite.kerala))
	require.NoError(suite.T(), establishments.Create(suite.ctx, suite.chinese))
}

func (suite *RecommendationSuite) item(est *models.Establishment, name, category string, popularity, trend float64) *models.CatalogItem {
	it := &models.CatalogItem{
		EstablishmentID:   est.ID,
		Name:              name,
		Category:          category,
		Price:             90,
		IsAvailable:       true,
		QuantityRemaining: 30,
		PopularityScore:   popularity,
		TrendScore:        trend,
	}
	require.NoError(suite.T(), suite.catalog.Create(suite.ctx, it))
	return it
}

func (suite *RecommendationSuite) order(items ...*models.CatalogItem) {
	order := models.Order{CustomerID: suite.customer, EstablishmentID: items[0].EstablishmentID, Status: models.OrderStatusPaid}
	for _, it := range items {
		order.Items = append(order.Items, *it)
	}
	require.NoError(suite.T(), suite.db.Omit("Items.*").Create(&order).Error)
}

func uniqueIDs(items []models.CatalogItem) bool {
	seen := map[uuid.UUID]bool{}
	for _, it := range items {
		if seen[it.ID] {
			return false
		}
		seen[it.ID] = true
	}
	return true
}

func (suite *RecommendationSuite) TestColdStartReturnsTrending() {
	for i := 0; i < 8; i++ {
		suite.item(suite.chinese, "dish", "snacks", 0, float64(i))
	}

	got, err := suite.svc.Recommend(suite.ctx, suite.customer)
	require.NoError(suite.T(), err)

	trending, err := suite.catalog.Trending(suite.ctx, 5, nil)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), itemIDs(trending), itemIDs(got))
	assert.Len(suite.T(), got, 5)
}

func (suite *RecommendationSuite) TestColdStartEmptyCatalog() {
	got, err := suite.svc.Recommend(suite.ctx, suite.customer)
	require.NoError(suite.T(), err)
	assert.NotNil(suite.T(), got)
	assert.Empty(suite.T(), got)
}

func (suite *RecommendationSuite) TestMatchesRankedThenBackfilled() {
	ordered := suite.item(suite.kerala, "fish curry", "curry", 99, 99)
	suite.order(ordered)

	sameCuisine := suite.item(suite.kerala, "puttu", "breakfast", 80, 1)
	sameCategory := suite.item(suite.chinese, "chilli curry", "curry", 60, 2)
	other1 := suite.item(suite.chinese, "noodles", "noodles", 10, 50)
	other2 := suite.item(suite.chinese, "dumplings", "snacks", 10, 40)
	suite.item(suite.chinese, "spring roll", "snacks", 10, 1)

	got, err := suite.svc.Recommend(suite.ctx, suite.customer)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), got, 5)
	assert.True(suite.T(), uniqueIDs(got))

	// matches first, by popularity; ordered item is excluded from matches
	assert.Equal(suite.T(), sameCuisine.ID, got[0].ID)
	assert.Equal(suite.T(), sameCategory.ID, got[1].ID)
	// backfill by trend score, not repeating selections
	assert.Equal(suite.T(), []uuid.UUID{ordered.ID, other1.ID, other2.ID}, itemIDs(got[2:]))
}

func (suite *RecommendationSuite) TestBackfillStopsAtCatalogSize() {
	ordered := suite.item(suite.kerala, "fish curry", "curry", 50, 5)
	suite.order(ordered)
	suite.item(suite.kerala, "appam", "breakfast", 40, 3)
	suite.item(suite.chinese, "noodles", "noodles", 30, 4)

	got, err := suite.svc.Recommend(suite.ctx, suite.customer)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), got, 3)
	assert.True(suite.T(), uniqueIDs(got))
}

func (suite *RecommendationSuite) TestUnavailableItemsNeverRecommended() {
	ordered := suite.item(suite.kerala, "fish curry", "curry", 50, 5)
	suite.order(ordered)
	hidden := suite.item(suite.kerala, "sold out curry", "curry", 100, 100)
	require.NoError(suite.T(), suite.db.Model(hidden).Update("is_available", false).Error)

	got, err := suite.svc.Recommend(suite.ctx, suite.customer)
	require.NoError(suite.T(), err)
	assert.NotContains(suite.T(), itemIDs(got), hidden.ID)
}

func TestRecommendationSuite(t *testing.T) {
	suite.Run(t, new(RecommendationSuite))
}
