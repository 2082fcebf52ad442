// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/deliciae/discovery-core/internal/cache"
	"github.com/deliciae/discovery-core/internal/config"
	"github.com/deliciae/discovery-core/internal/geo"
	"github.com/deliciae/discovery-core/internal/handlers"
	"github.com/deliciae/discovery-core/internal/middleware"
	"github.com/deliciae/discovery-core/internal/models"
	"github.com/deliciae/discovery-core/internal/repository"
	"github.com/deliciae/discovery-core/internal/services"
	"github.com/deliciae/discovery-core/internal/utils"
)

const version = "1.0.0"

// Initialize builds the HTTP engine. The returned function releases
// background resources owned by the router.
func Initialize(db *gorm.DB, cfg *config.Config, viewCache cache.ViewCache) (*gin.Engine, func()) {
	// Repositories
	establishmentRepo := repository.NewEstablishmentRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	eventRepo := repository.NewEventRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	crowdRepo := repository.NewCrowdRepository(db)

	// Services
	discoveryService := services.NewDiscoveryService(catalogRepo, viewCache, cfg.Redis.HighlightsTTL())
	proximityService := services.NewProximityService(establishmentRepo, services.ProximityConfig{
		MaxRadiusKm:       cfg.Geo.MaxRadiusKm,
		ParallelThreshold: cfg.Geo.ParallelDistanceThreshold,
		Workers:           cfg.Scoring.Workers,
	})
	scoringService := services.NewScoringService(catalogRepo, eventRepo, discoveryService, services.ScoringConfig{
		Workers:        cfg.Scoring.Workers,
		SelloutHorizon: cfg.Scoring.SelloutHorizon(),
	})
	recommendationService := services.NewRecommendationService(orderRepo, catalogRepo,
		cfg.Scoring.RecommendationHistory, cfg.Scoring.RecommendationLimit)
	crowdService := services.NewCrowdService(crowdRepo, orderRepo, establishmentRepo)
	establishmentService := services.NewEstablishmentService(establishmentRepo,
		geo.NewMapLinkResolver(cfg.Geo.MapLinkTimeout()))
	eventService := services.NewEventService(eventRepo, catalogRepo)

	// Handlers
	nearbyHandler := handlers.NewNearbyHandler(proximityService, cfg.Geo.DefaultRadiusKm)
	discoveryHandler := handlers.NewDiscoveryHandler(discoveryService)
	scoresHandler := handlers.NewScoresHandler(scoringService, cfg.Scoring.Window())
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	demandHandler := handlers.NewDemandHandler()
	crowdHandler := handlers.NewCrowdHandler(crowdService)
	establishmentHandler := handlers.NewEstablishmentHandler(establishmentService)
	eventHandler := handlers.NewEventHandler(eventService)

	utils.SetJWTSecret(cfg.JWT.SecretKey)
	utils.SetJWTIssuer(cfg.JWT.Issuer)

	limiter := middleware.NewRateLimiterFromConfig(cfg.RateLimit)

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware())
	r.Use(limiter.Middleware())

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "degraded",
				"database": "down",
				"version":  version,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": "up",
			"version":  version,
		})
	})

	v1 := r.Group("/v1")
	{
		// Public discovery
		v1.GET("/nearby-restaurants", nearbyHandler.GetNearby)
		v1.GET("/trending", discoveryHandler.GetTrending)
		v1.GET("/fast-selling", discoveryHandler.GetFastSelling)
		v1.GET("/selling-out", discoveryHandler.GetSellingOut)
		v1.GET("/top-rated", discoveryHandler.GetTopRated)
		v1.GET("/smart-highlights", discoveryHandler.GetHighlights)
		v1.GET("/predict/demand", demandHandler.PredictDemand)
		v1.GET("/establishments/:id/crowd", crowdHandler.Latest)

		// Event intake
		v1.POST("/events", middleware.OptionalAuth(), eventHandler.RecordInteraction)
		v1.POST("/engagements", middleware.OptionalAuth(), eventHandler.RecordEngagement)

		protected := v1.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.GET("/recommendations", recommendationHandler.GetRecommendations)
			protected.POST("/trends/refresh", scoresHandler.Refresh)
			protected.POST("/establishments/:id/crowd", crowdHandler.Record)
			protected.PUT("/establishments/:id/location", establishmentHandler.UpdateLocation)
		}

		// Popularity comes from establishment-side tooling
		popularity := protected.Group("")
		popularity.Use(middleware.RoleRequired(models.RoleRestaurant, models.RoleStaff))
		{
			popularity.PUT("/items/:id/popularity", scoresHandler.SetPopularity)
		}
	}

	return r, limiter.Stop
}
