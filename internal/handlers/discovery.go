// internal/handlers/discovery.go
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/deliciae/discovery-core/internal/i18n"
	"github.com/deliciae/discovery-core/internal/models"
	"github.com/deliciae/discovery-core/internal/services"
	"github.com/deliciae/discovery-core/internal/utils"
)

const defaultViewLimit = 10

type DiscoveryHandler struct {
	discoveryService *services.DiscoveryService
}

func NewDiscoveryHandler(discoveryService *services.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{discoveryService: discoveryService}
}

type viewFunc func(ctx context.Context, limit int) ([]models.CatalogItem, error)

func (h *DiscoveryHandler) serveView(c *gin.Context, view viewFunc) {
	limit, err := utils.QueryLimit(c, defaultViewLimit)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	items, err := view(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, i18n.KeyItemNotFound)
		return
	}
	utils.SuccessResponseWithMeta(c, items, gin.H{"count": len(items), "limit": limit})
}

// GET /trending
func (h *DiscoveryHandler) GetTrending(c *gin.Context) {
	h.serveView(c, h.discoveryService.Trending)
}

// GET /fast-selling
func (h *DiscoveryHandler) GetFastSelling(c *gin.Context) {
	h.serveView(c, h.discoveryService.FastSelling)
}

// GET /selling-out
func (h *DiscoveryHandler) GetSellingOut(c *gin.Context) {
	h.serveView(c, h.discoveryService.SellingOut)
}

// GET /top-rated
func (h *DiscoveryHandler) GetTopRated(c *gin.Context) {
	h.serveView(c, h.discoveryService.TopRated)
}

// GET /smart-highlights
func (h *DiscoveryHandler) GetHighlights(c *gin.Context) {
	highlights, err := h.discoveryService.Highlights(c.Request.Context())
	if err != nil {
		respondError(c, err, i18n.KeyItemNotFound)
		return
	}
	utils.SuccessResponse(c, highlights)
}
